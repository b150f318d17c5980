package export

// Dataset defines tabular export content. Rows are keyed by header name so
// every renderer emits the columns in the same order.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// record flattens one row into header order. Missing columns render as
// empty cells.
func (d Dataset) record(row map[string]string) []string {
	record := make([]string, len(d.Headers))
	for i, header := range d.Headers {
		record[i] = row[header]
	}
	return record
}
