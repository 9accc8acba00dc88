package testutil

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// EmployeeHeader is the column layout used by most fixtures
var EmployeeHeader = []string{"id", "first_name", "last_name", "basic_salary", "allowances"}

// WriteTSV writes a tab-separated file with header and rows into dir and
// returns its path. Rows are written verbatim; an empty string is an empty cell.
func WriteTSV(t *testing.T, dir, name string, header []string, rows ...[]string) string {
	t.Helper()

	var b strings.Builder
	b.WriteString(strings.Join(header, "\t"))
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(strings.Join(row, "\t"))
		b.WriteString("\n")
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		t.Fatalf("write fixture %s: %v", path, err)
	}
	return path
}

// Employee builds a fixture row in EmployeeHeader order
func Employee(id, basic, allowances string) []string {
	return []string{id, "First" + id, "Last" + id, basic, allowances}
}

// ReadCSV reads a comma separated file fully, header included
func ReadCSV(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return rows
}
