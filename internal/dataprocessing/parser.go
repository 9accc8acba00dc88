package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"payrolletl/internal/errors"
	"payrolletl/pkg/contracts/domain"
)

// missingTokens are the cell texts read as missing values. The list matches
// the NA markers common tabular tools write, so files exported from them
// round-trip.
var missingTokens = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// IsMissingToken reports whether a raw cell text denotes a missing value
func IsMissingToken(text string) bool {
	_, ok := missingTokens[text]
	return ok
}

// ParseFile reads a tab-separated file whose first line is the header.
func ParseFile(filePath string) (*domain.Dataset, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, errors.NewStorageError(fmt.Sprintf("failed to open %s", filePath), err).
			WithContext("file", filePath)
	}
	defer f.Close()

	ds, err := ParseTSV(f, filePath)
	if err != nil {
		return nil, err
	}
	return ds, nil
}

// ParseTSV parses tab-separated text from r. name identifies the source in
// errors. Blank lines are skipped; short rows are padded with missing values;
// rows wider than the header are rejected.
func ParseTSV(r io.Reader, name string) (*domain.Dataset, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.NewParsingError(fmt.Sprintf("%s: no header row", name), nil).
			WithContext("file", name)
	}
	if err != nil {
		return nil, errors.NewParsingError(fmt.Sprintf("%s: failed to read header", name), err).
			WithContext("file", name)
	}

	ds := domain.NewDataset(normalizeHeader(header)...)
	width := ds.Width()

	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewParsingError(fmt.Sprintf("%s: failed to read row", name), err).
				WithContext("file", name)
		}

		if len(fields) > width {
			line, _ := reader.FieldPos(0)
			return nil, errors.NewParsingError(
				fmt.Sprintf("%s: expected %d fields in line %d, saw %d", name, width, line, len(fields)), nil).
				WithContext("file", name).
				WithContext("line", line)
		}

		rec := make(domain.Record, width)
		for i, field := range fields {
			if !IsMissingToken(field) {
				rec[i] = domain.Present(field)
			}
		}
		ds.Records = append(ds.Records, rec)
	}

	return ds, nil
}

// normalizeHeader strips a UTF-8 byte order mark and makes duplicate names
// unique by suffixing ".1", ".2", ... so columns stay addressable by name.
func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	used := make(map[string]bool, len(header))
	suffix := make(map[string]int)
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		base := name
		for used[name] {
			suffix[base]++
			name = base + "." + strconv.Itoa(suffix[base])
		}
		used[name] = true
		out[i] = name
	}
	return out
}

// Concat outer-concatenates tables in order. The result's columns are the
// union of all columns in first-seen order; a table lacking a column
// contributes missing values for it.
func Concat(tables ...*domain.Dataset) *domain.Dataset {
	var columns []string
	index := make(map[string]int)
	total := 0
	for _, t := range tables {
		if t == nil {
			continue
		}
		total += t.Len()
		for _, col := range t.Columns {
			if _, ok := index[col]; !ok {
				index[col] = len(columns)
				columns = append(columns, col)
			}
		}
	}

	out := domain.NewDataset(columns...)
	out.Records = make([]domain.Record, 0, total)
	for _, t := range tables {
		if t == nil {
			continue
		}
		positions := make([]int, len(t.Columns))
		for i, col := range t.Columns {
			positions[i] = index[col]
		}
		for _, rec := range t.Records {
			row := make(domain.Record, len(columns))
			for i, v := range rec {
				row[positions[i]] = v
			}
			out.Records = append(out.Records, row)
		}
	}
	return out
}
