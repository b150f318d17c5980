package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// CSVExporter renders a summary dataset as CSV bytes.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render encodes the header row followed by every summary row, columns in
// dataset header order.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("summary dataset has no columns")
	}
	records := make([][]string, 0, len(data.Rows)+1)
	records = append(records, data.Headers)
	for _, row := range data.Rows {
		records = append(records, data.record(row))
	}

	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.WriteAll(records); err != nil {
		return nil, fmt.Errorf("encode summary csv: %w", err)
	}
	return buf.Bytes(), nil
}
