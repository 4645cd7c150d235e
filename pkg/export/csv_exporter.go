package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// Dataset is the tabular content of a generated sheet. Row cells are keyed
// by header name; cells missing from a row render empty.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// CSVExporter renders a Dataset as CSV, cells ordered by the header row.
type CSVExporter struct{}

// NewCSVExporter constructs the exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render encodes the dataset.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("csv sheet needs at least one column")
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(data.Headers); err != nil {
		return nil, fmt.Errorf("write sheet header: %w", err)
	}
	for _, row := range data.Rows {
		record := make([]string, len(data.Headers))
		for i, column := range data.Headers {
			record[i] = row[column]
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write sheet row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush sheet: %w", err)
	}
	return buf.Bytes(), nil
}
