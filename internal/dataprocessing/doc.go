// Package dataprocessing turns a folder of tab-separated employee files into
// the payroll result table.
//
// # Stages
//
// Each stage takes a *domain.Dataset and returns a new one; inputs are never
// mutated.
//
//  1. Ingestor reads every file on a bounded worker pool and Concat joins the
//     tables in file order, taking the union of their columns.
//  2. Cleaner drops every column that holds a missing value, keeps the first
//     record per id and fills what is left with "0".
//  3. SalaryCalculator appends gross_salary and the two summary rows.
//
// # Usage
//
//	ds, err := dataprocessing.NewIngestor(logger, 4).Ingest(ctx, paths)
//	if err != nil {
//	    return err
//	}
//	ds, report, err := dataprocessing.NewCleaner(logger).Clean(ctx, ds)
//
// # Missing values
//
// A cell is missing when its row is shorter than the header or when its text
// is one of the NA markers listed by IsMissingToken. Missing cells survive
// until cleaning and are written as empty fields.
//
// # Errors
//
// Parse failures are PARSING errors carrying the file and line. Absent
// columns are VALIDATION errors wrapping errors.ErrMissingColumn.
package dataprocessing
