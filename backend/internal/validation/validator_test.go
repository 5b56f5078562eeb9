package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "harmonify/backend/pkg/errors"
)

type sample struct {
	Kind  string   `json:"kind" validate:"required,oneof=user song"`
	Items []string `json:"items" validate:"min=1,max=2"`
}

func TestStruct(t *testing.T) {
	assert.NoError(t, Struct(sample{Kind: "user", Items: []string{"a"}}))

	err := Struct(sample{Kind: "album", Items: []string{"a", "b", "c"}})
	var invalid *apperrors.ErrInvalidRequest
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "kind", invalid.Field)
	assert.Contains(t, invalid.Reason, "kind must be one of: user song")
	assert.Contains(t, invalid.Reason, "items must have at most 2 entries")
}

func TestGet_IsShared(t *testing.T) {
	assert.Same(t, Get(), Get())
}
