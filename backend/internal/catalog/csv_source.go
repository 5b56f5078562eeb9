// Package catalog reads the song catalogue and user-listening CSV files that
// a graph is loaded from.
package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// CSVSource reads rows from a catalogue file and a listening file.
// It implements graph.RowSource.
type CSVSource struct {
	SongsPath   string
	ListensPath string
	HasHeader   bool // skip the first row of each file
}

// NewCSVSource creates a row source over two CSV files
func NewCSVSource(songsPath, listensPath string, hasHeader bool) *CSVSource {
	return &CSVSource{
		SongsPath:   songsPath,
		ListensPath: listensPath,
		HasHeader:   hasHeader,
	}
}

// SongRows returns the catalogue rows
func (s *CSVSource) SongRows(ctx context.Context) ([][]string, error) {
	return readFile(ctx, s.SongsPath, s.HasHeader)
}

// ListeningRows returns the user-listening rows
func (s *CSVSource) ListeningRows(ctx context.Context) ([][]string, error) {
	return readFile(ctx, s.ListensPath, s.HasHeader)
}

func readFile(ctx context.Context, path string, hasHeader bool) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := ReadRows(ctx, f, hasHeader)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return rows, nil
}

// ReadRows parses CSV records from r. Rows may have differing column counts;
// blank lines are skipped and cells are trimmed.
func ReadRows(ctx context.Context, r io.Reader, hasHeader bool) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = false

	var rows [][]string
	for line := 0; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if line == 0 && hasHeader {
			continue
		}
		// Check cancellation every so often on large files
		if line%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		for i := range record {
			record[i] = strings.TrimSpace(record[i])
		}
		rows = append(rows, record)
	}
	return rows, nil
}
