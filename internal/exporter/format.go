package exporter

import (
	"payrolletl/pkg/contracts/domain"
)

// formatValue renders a cell for CSV output. Missing cells are empty.
func formatValue(v domain.Value) string {
	if v.IsMissing() {
		return ""
	}
	return v.Text
}

// formatRecord renders a record in column order
func formatRecord(rec domain.Record) []string {
	out := make([]string, len(rec))
	for i, v := range rec {
		out[i] = formatValue(v)
	}
	return out
}
