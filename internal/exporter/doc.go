// Package exporter writes the payroll result table to disk.
//
// CSVWriter produces RESULT.csv: a header row followed by every record,
// comma separated, with missing cells left empty and no index column.
//
//	w := exporter.NewCSVWriter(logger)
//	path, err := w.WriteDataset(ctx, "data/output", ds)
//
// WriteDataset recovers from exactly one failure: a missing output
// directory is created and the write retried once.
package exporter
