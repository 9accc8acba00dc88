package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"payrolletl/internal/errors"
	"payrolletl/pkg/contracts/domain"
)

// DefaultFillValue replaces missing cells that survive column dropping
const DefaultFillValue = "0"

// CleanReport describes what cleaning removed or changed
type CleanReport struct {
	DroppedColumns    []string `json:"dropped_columns"`
	DuplicatesRemoved int      `json:"duplicates_removed"`
	CellsFilled       int      `json:"cells_filled"`
}

// Cleaner applies the cleaning policy: drop every column holding a missing
// value, keep the first record per key, fill what is still missing.
type Cleaner struct {
	logger    *slog.Logger
	keyColumn string
	fillValue string
}

// NewCleaner creates a cleaner deduplicating on the id column
func NewCleaner(logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{
		logger:    logger,
		keyColumn: domain.ColumnID,
		fillValue: DefaultFillValue,
	}
}

// Clean runs the three cleaning steps in order and returns a new dataset.
func (c *Cleaner) Clean(ctx context.Context, ds *domain.Dataset) (*domain.Dataset, CleanReport, error) {
	var report CleanReport

	out, dropped := DropIncompleteColumns(ds)
	report.DroppedColumns = dropped
	if len(dropped) > 0 {
		c.logger.WarnContext(ctx, "Dropped columns with missing values",
			slog.String("columns", strings.Join(dropped, ",")),
			slog.Int("count", len(dropped)))
	}

	out, removed, err := DeduplicateByKey(out, c.keyColumn)
	if err != nil {
		return nil, report, err
	}
	report.DuplicatesRemoved = removed

	out, filled := FillMissing(out, c.fillValue)
	report.CellsFilled = filled

	c.logger.InfoContext(ctx, "Cleaned dataset",
		slog.Int("record_count", out.Len()),
		slog.Int("column_count", out.Width()),
		slog.Int("dropped_columns", len(dropped)),
		slog.Int("duplicates_removed", removed))

	return out, report, nil
}

// DropIncompleteColumns removes every column that contains at least one
// missing value anywhere in the dataset. Rows are never dropped. It returns
// the new dataset and the names of the removed columns in original order.
func DropIncompleteColumns(ds *domain.Dataset) (*domain.Dataset, []string) {
	keep := make([]int, 0, ds.Width())
	var dropped []string

	for col, name := range ds.Columns {
		complete := true
		for _, rec := range ds.Records {
			if rec[col].IsMissing() {
				complete = false
				break
			}
		}
		if complete {
			keep = append(keep, col)
		} else {
			dropped = append(dropped, name)
		}
	}

	columns := make([]string, len(keep))
	for i, col := range keep {
		columns[i] = ds.Columns[col]
	}

	out := domain.NewDataset(columns...)
	out.Records = make([]domain.Record, len(ds.Records))
	for r, rec := range ds.Records {
		row := make(domain.Record, len(keep))
		for i, col := range keep {
			row[i] = rec[col]
		}
		out.Records[r] = row
	}
	return out, dropped
}

// DeduplicateByKey keeps the first record for each key value in current
// order. Keys compare numerically when every key in the column is numeric,
// so "7" and "07" collide; otherwise they compare as text. Missing keys are
// equal to each other.
func DeduplicateByKey(ds *domain.Dataset, key string) (*domain.Dataset, int, error) {
	idx := ds.ColumnIndex(key)
	if idx < 0 {
		return nil, 0, errors.NewValidationError(fmt.Sprintf("cannot deduplicate: column %q", key), errors.ErrMissingColumn).
			WithContext("column", key)
	}

	values, _ := ds.Column(key)
	normalize := keyNormalizer(values)

	out := domain.NewDataset(ds.Columns...)
	seen := make(map[string]struct{}, ds.Len())
	removed := 0
	for _, rec := range ds.Records {
		k := normalize(rec[idx])
		if _, dup := seen[k]; dup {
			removed++
			continue
		}
		seen[k] = struct{}{}
		out.Records = append(out.Records, append(domain.Record(nil), rec...))
	}
	return out, removed, nil
}

// keyNormalizer picks the comparison form for a key column: integer, then
// float, then raw text.
func keyNormalizer(values []domain.Value) func(domain.Value) string {
	allInt, allFloat := true, true
	for _, v := range values {
		if v.IsMissing() {
			continue
		}
		text := strings.TrimSpace(v.Text)
		if _, err := strconv.ParseInt(text, 10, 64); err != nil {
			allInt = false
		}
		if _, err := strconv.ParseFloat(text, 64); err != nil {
			allFloat = false
		}
	}

	const missingKey = "\x00missing"
	switch {
	case allInt:
		return func(v domain.Value) string {
			if v.IsMissing() {
				return missingKey
			}
			n, _ := strconv.ParseInt(strings.TrimSpace(v.Text), 10, 64)
			return strconv.FormatInt(n, 10)
		}
	case allFloat:
		return func(v domain.Value) string {
			if v.IsMissing() {
				return missingKey
			}
			f, _ := strconv.ParseFloat(strings.TrimSpace(v.Text), 64)
			return strconv.FormatFloat(f, 'g', -1, 64)
		}
	default:
		return func(v domain.Value) string {
			if v.IsMissing() {
				return missingKey
			}
			return "s:" + v.Text
		}
	}
}

// FillMissing replaces every missing cell with fill and returns how many
// cells it filled.
func FillMissing(ds *domain.Dataset, fill string) (*domain.Dataset, int) {
	out := ds.Clone()
	filled := 0
	for _, rec := range out.Records {
		for i, v := range rec {
			if v.IsMissing() {
				rec[i] = domain.Present(fill)
				filled++
			}
		}
	}
	return out, filled
}
