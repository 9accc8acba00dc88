package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/go-gota/gota/series"

	"payrolletl/internal/errors"
	"payrolletl/pkg/contracts/domain"
)

// Amount is a numeric cell. Integral amounts keep exact int64 arithmetic and
// render without a decimal point.
type Amount struct {
	Int      int64
	Float    float64
	Integral bool
}

// IntAmount creates an integral amount
func IntAmount(n int64) Amount {
	return Amount{Int: n, Float: float64(n), Integral: true}
}

// FloatAmount creates a floating point amount
func FloatAmount(f float64) Amount {
	return Amount{Float: f}
}

// String renders integral amounts as integers and floats in their shortest
// round-trip form with at least one decimal, e.g. "300" and "300.0".
func (a Amount) String() string {
	if a.Integral {
		return strconv.FormatInt(a.Int, 10)
	}
	return FormatFloat(a.Float)
}

// FormatFloat renders f in shortest round-trip form, always with a decimal
// point or exponent. Magnitudes below 1e-4 or from 1e16 use exponent form.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// SalarySummary holds the two figures appended to the result
type SalarySummary struct {
	SecondHighest Amount  `json:"second_highest"`
	Average       float64 `json:"average"`
}

// SecondHighestLabel renders the second-highest summary row label
func (s SalarySummary) SecondHighestLabel() string {
	return fmt.Sprintf("%s = %s", domain.LabelSecondHighestSalary, s.SecondHighest)
}

// AverageLabel renders the average summary row label
func (s SalarySummary) AverageLabel() string {
	return fmt.Sprintf("%s = %s", domain.LabelAverageSalary, FormatFloat(s.Average))
}

// SalaryCalculator derives gross salary and the summary rows
type SalaryCalculator struct {
	logger *slog.Logger
}

// NewSalaryCalculator creates a calculator
func NewSalaryCalculator(logger *slog.Logger) *SalaryCalculator {
	if logger == nil {
		logger = slog.Default()
	}
	return &SalaryCalculator{logger: logger}
}

// Derive appends gross_salary to a copy of ds and returns it with the
// computed amounts in record order.
func (c *SalaryCalculator) Derive(ctx context.Context, ds *domain.Dataset) (*domain.Dataset, []Amount, error) {
	out, gross, err := DeriveGrossSalary(ds)
	if err != nil {
		return nil, nil, err
	}
	c.logger.InfoContext(ctx, "Derived gross salary",
		slog.Int("record_count", len(gross)),
		slog.Bool("integral", len(gross) > 0 && gross[0].Integral))
	return out, gross, nil
}

// Summarize computes the summary figures over gross and appends the two
// summary rows to a copy of ds.
func (c *SalaryCalculator) Summarize(ctx context.Context, ds *domain.Dataset, gross []Amount) (*domain.Dataset, SalarySummary, error) {
	second, err := SecondHighest(gross)
	if err != nil {
		return nil, SalarySummary{}, err
	}
	summary := SalarySummary{
		SecondHighest: second,
		Average:       Average(gross),
	}

	c.logger.InfoContext(ctx, "Computed salary summary",
		slog.String("second_highest", summary.SecondHighest.String()),
		slog.String("average", FormatFloat(summary.Average)))

	return AppendSummary(ds, summary), summary, nil
}

// DeriveGrossSalary appends gross_salary = basic_salary + allowances. Both
// columns must exist and hold numbers. The sum is integral only when both
// columns are integral throughout.
func DeriveGrossSalary(ds *domain.Dataset) (*domain.Dataset, []Amount, error) {
	basic, err := numericColumn(ds, domain.ColumnBasicSalary)
	if err != nil {
		return nil, nil, err
	}
	allowances, err := numericColumn(ds, domain.ColumnAllowances)
	if err != nil {
		return nil, nil, err
	}

	integral := allIntegral(basic) && allIntegral(allowances)
	gross := make([]Amount, len(basic))
	for i := range basic {
		if integral {
			gross[i] = IntAmount(basic[i].Int + allowances[i].Int)
		} else {
			gross[i] = FloatAmount(basic[i].Float + allowances[i].Float)
		}
	}

	columns := append(append([]string(nil), ds.Columns...), domain.ColumnGrossSalary)
	out := domain.NewDataset(columns...)
	out.Records = make([]domain.Record, len(ds.Records))
	for i, rec := range ds.Records {
		row := make(domain.Record, 0, len(columns))
		row = append(row, rec...)
		row = append(row, domain.Present(gross[i].String()))
		out.Records[i] = row
	}
	return out, gross, nil
}

// SecondHighest returns the value at index 1 of gross sorted descending.
// Ties are not collapsed: for [500, 500, 300] it returns 500.
func SecondHighest(gross []Amount) (Amount, error) {
	if len(gross) < 2 {
		return Amount{}, errors.NewValidationError(
			fmt.Sprintf("second highest salary needs at least 2 records, have %d", len(gross)),
			errors.ErrInsufficientRows)
	}
	order := floatSeries(gross).Order(true)
	return gross[order[1]], nil
}

// Average returns the mean of gross rounded to 2 decimals, half to even on
// the scaled value. An empty slice yields NaN.
func Average(gross []Amount) float64 {
	if len(gross) == 0 {
		return math.NaN()
	}
	mean := floatSeries(gross).Mean()
	return math.RoundToEven(mean*100) / 100
}

// AppendSummary returns a copy of ds with the second-highest and average rows
// appended. Each row carries its label in the first column and missing
// values elsewhere.
func AppendSummary(ds *domain.Dataset, summary SalarySummary) *domain.Dataset {
	out := ds.Clone()
	for _, label := range []string{summary.SecondHighestLabel(), summary.AverageLabel()} {
		row := make(domain.Record, out.Width())
		if len(row) > 0 {
			row[0] = domain.Present(label)
		}
		out.Records = append(out.Records, row)
	}
	return out
}

func floatSeries(amounts []Amount) series.Series {
	values := make([]float64, len(amounts))
	for i, a := range amounts {
		values[i] = a.Float
	}
	return series.Floats(values)
}

func numericColumn(ds *domain.Dataset, name string) ([]Amount, error) {
	values, ok := ds.Column(name)
	if !ok {
		return nil, errors.NewValidationError(fmt.Sprintf("cannot compute gross salary: column %q", name), errors.ErrMissingColumn).
			WithContext("column", name)
	}

	amounts := make([]Amount, len(values))
	for i, v := range values {
		a, err := ParseAmount(v)
		if err != nil {
			return nil, errors.NewParsingError(fmt.Sprintf("column %q row %d", name, i+1), err).
				WithContext("column", name).
				WithContext("row", i+1)
		}
		amounts[i] = a
	}
	return amounts, nil
}

// ParseAmount reads a numeric cell. Missing cells are an error.
func ParseAmount(v domain.Value) (Amount, error) {
	if v.IsMissing() {
		return Amount{}, fmt.Errorf("missing value")
	}
	text := strings.TrimSpace(v.Text)
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return IntAmount(n), nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Amount{}, fmt.Errorf("%q is not a number", v.Text)
	}
	return FloatAmount(f), nil
}

func allIntegral(amounts []Amount) bool {
	for _, a := range amounts {
		if !a.Integral {
			return false
		}
	}
	return true
}
