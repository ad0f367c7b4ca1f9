package reader

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/hstree/hstree/internal/schedule"
)

// CSVReader handles CSV schedule exports.
type CSVReader struct {
	Mapping Mapping
}

func (p *CSVReader) Read(r io.Reader, filename string) ([]schedule.Row, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// First row is headers.
	return rowsFromTable(records[0], records[1:], p.Mapping), nil
}
