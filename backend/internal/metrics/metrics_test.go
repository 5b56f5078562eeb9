package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordGraphLoad(t *testing.T) {
	RecordGraphLoad(10*time.Millisecond, 3, 5, 4, nil)
	assert.Equal(t, 3.0, testutil.ToFloat64(GraphVertices.WithLabelValues("user")))
	assert.Equal(t, 5.0, testutil.ToFloat64(GraphVertices.WithLabelValues("song")))
	assert.Equal(t, 4.0, testutil.ToFloat64(GraphEdges))

	before := testutil.ToFloat64(GraphLoadErrors)
	RecordGraphLoad(time.Millisecond, 0, 0, 0, errors.New("boom"))
	assert.Equal(t, before+1, testutil.ToFloat64(GraphLoadErrors))
	// A failed load leaves the last good size in place
	assert.Equal(t, 3.0, testutil.ToFloat64(GraphVertices.WithLabelValues("user")))
}

func TestRecordRecommendation(t *testing.T) {
	tests := []struct {
		name    string
		outcome string
	}{
		{name: "matched", outcome: OutcomeMatched},
		{name: "no match", outcome: OutcomeNoMatch},
		{name: "invalid", outcome: OutcomeInvalid},
		{name: "error", outcome: OutcomeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(RecommendationsTotal.WithLabelValues(tt.outcome))
			RecordRecommendation(tt.outcome, time.Millisecond, 50)
			assert.Equal(t, before+1, testutil.ToFloat64(RecommendationsTotal.WithLabelValues(tt.outcome)))
		})
	}
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/songs", "200"))
	RecordAPIRequest("GET", "/api/songs", "200", 2*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/songs", "200")))
}
