package dataprocessing

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payrolletl/internal/errors"
	"payrolletl/internal/shared/testutil"
	"payrolletl/pkg/contracts/domain"
)

func amounts(values ...int64) []Amount {
	out := make([]Amount, len(values))
	for i, v := range values {
		out[i] = IntAmount(v)
	}
	return out
}

func TestDeriveGrossSalary(t *testing.T) {
	tests := []struct {
		name      string
		rows      [][]string
		wantGross []string
	}{
		{
			name:      "integers stay integral",
			rows:      [][]string{{"1", "100", "200"}, {"2", "1000", "0"}},
			wantGross: []string{"300", "1000"},
		},
		{
			name:      "floats",
			rows:      [][]string{{"1", "100.5", "0.25"}, {"2", "10.0", "5.0"}},
			wantGross: []string{"100.75", "15.0"},
		},
		{
			name:      "one float makes the whole column float",
			rows:      [][]string{{"1", "100", "200"}, {"2", "1.5", "1"}},
			wantGross: []string{"300.0", "2.5"},
		},
		{
			name:      "surrounding spaces are tolerated",
			rows:      [][]string{{"1", " 100", "200 "}},
			wantGross: []string{"300"},
		},
		{
			name:      "negative amounts",
			rows:      [][]string{{"1", "-50", "20"}},
			wantGross: []string{"-30"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := dataset([]string{"id", "basic_salary", "allowances"}, tt.rows...)

			out, gross, err := DeriveGrossSalary(ds)
			require.NoError(t, err)

			assert.Equal(t, []string{"id", "basic_salary", "allowances", "gross_salary"}, out.Columns)
			values, ok := out.Column(domain.ColumnGrossSalary)
			require.True(t, ok)
			for i, want := range tt.wantGross {
				assert.Equal(t, want, values[i].Text)
				assert.Equal(t, want, gross[i].String())
			}
			assert.Equal(t, 3, ds.Width(), "input must not change")
		})
	}
}

func TestDeriveGrossSalary_RoundTrip(t *testing.T) {
	ds := dataset([]string{"id", "basic_salary", "allowances"},
		[]string{"1", "1234", "566"},
		[]string{"2", "99.5", "0.5"},
	)

	_, gross, err := DeriveGrossSalary(ds)
	require.NoError(t, err)

	for i, rec := range ds.Records {
		basic, err := ParseAmount(rec[1])
		require.NoError(t, err)
		allowances, err := ParseAmount(rec[2])
		require.NoError(t, err)
		assert.InDelta(t, basic.Float+allowances.Float, gross[i].Float, 1e-9)
	}
}

func TestDeriveGrossSalary_Errors(t *testing.T) {
	tests := []struct {
		name     string
		columns  []string
		rows     [][]string
		wantType errors.ErrorType
		contains string
	}{
		{
			name:     "missing basic_salary",
			columns:  []string{"id", "allowances"},
			rows:     [][]string{{"1", "10"}},
			wantType: errors.ErrTypeValidation,
			contains: "basic_salary",
		},
		{
			name:     "missing allowances",
			columns:  []string{"id", "basic_salary"},
			rows:     [][]string{{"1", "10"}},
			wantType: errors.ErrTypeValidation,
			contains: "allowances",
		},
		{
			name:     "non numeric value",
			columns:  []string{"id", "basic_salary", "allowances"},
			rows:     [][]string{{"1", "10", "5"}, {"2", "ten", "5"}},
			wantType: errors.ErrTypeParsing,
			contains: "row 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DeriveGrossSalary(dataset(tt.columns, tt.rows...))
			require.Error(t, err)
			assert.True(t, errors.IsType(err, tt.wantType))
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestSecondHighest(t *testing.T) {
	tests := []struct {
		name  string
		gross []Amount
		want  string
	}{
		{name: "ties below the maximum", gross: amounts(500, 300, 300), want: "300"},
		{name: "tied maximum is not collapsed", gross: amounts(500, 500, 300), want: "500"},
		{name: "unsorted input", gross: amounts(100, 900, 400, 700), want: "700"},
		{name: "two rows", gross: amounts(1, 2), want: "1"},
		{name: "floats", gross: []Amount{FloatAmount(1.5), FloatAmount(3.25), FloatAmount(2.0)}, want: "2.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SecondHighest(tt.gross)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestSecondHighest_InsufficientRows(t *testing.T) {
	for _, gross := range [][]Amount{nil, amounts(100)} {
		_, err := SecondHighest(gross)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrInsufficientRows))
	}
}

func TestAverage(t *testing.T) {
	tests := []struct {
		name  string
		gross []Amount
		want  float64
	}{
		{name: "whole mean", gross: amounts(100, 200, 300), want: 200},
		{name: "rounded to two decimals", gross: amounts(1, 1, 2), want: 1.33},
		{name: "single value", gross: amounts(42), want: 42},
		{name: "floats", gross: []Amount{FloatAmount(0.1), FloatAmount(0.2)}, want: 0.15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Average(tt.gross), 1e-9)
		})
	}

	assert.True(t, math.IsNaN(Average(nil)))
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{200, "200.0"},
		{0, "0.0"},
		{1.33, "1.33"},
		{-2.5, "-2.5"},
		{0.0001, "0.0001"},
		{0.00001, "1e-05"},
		{1e16, "1e+16"},
		{123456789.5, "123456789.5"},
		{math.NaN(), "nan"},
		{math.Inf(1), "inf"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatFloat(tt.in))
		})
	}
}

func TestAppendSummary(t *testing.T) {
	ds := dataset([]string{"id", "basic_salary", "allowances", "gross_salary"},
		[]string{"1", "100", "0", "100"},
		[]string{"2", "200", "0", "200"},
		[]string{"3", "300", "0", "300"},
	)
	summary := SalarySummary{SecondHighest: IntAmount(200), Average: 200}

	out := AppendSummary(ds, summary)

	require.Equal(t, 5, out.Len())
	assert.Equal(t, 3, ds.Len(), "input must not change")

	second := out.Records[3]
	average := out.Records[4]
	require.Len(t, second, 4)
	require.Len(t, average, 4)
	assert.Equal(t, "Second Highest Salary = 200", second[0].Text)
	assert.Equal(t, "Average Salary = 200.0", average[0].Text)
	for i := 1; i < 4; i++ {
		assert.True(t, second[i].IsMissing())
		assert.True(t, average[i].IsMissing())
	}
}

func TestSalaryCalculator_DeriveAndSummarize(t *testing.T) {
	ds := dataset([]string{"id", "basic_salary", "allowances"},
		[]string{"1", "50", "50"},
		[]string{"2", "150", "50"},
		[]string{"3", "250", "50"},
	)

	logger, handler := testutil.NewTestLogger(t)
	calc := NewSalaryCalculator(logger)

	derived, gross, err := calc.Derive(context.Background(), ds)
	require.NoError(t, err)
	out, summary, err := calc.Summarize(context.Background(), derived, gross)
	require.NoError(t, err)

	assert.Equal(t, ds.Len()+2, out.Len())
	assert.Equal(t, "200", summary.SecondHighest.String())
	assert.Equal(t, 200.0, summary.Average)
	assert.Equal(t, "Average Salary = 200.0", out.Records[4][0].Text)
	assert.True(t, handler.ContainsMessage("Computed salary summary"))
}

func TestSalaryCalculator_SummarizeSingleRow(t *testing.T) {
	ds := dataset([]string{"id", "basic_salary", "allowances"}, []string{"1", "1", "1"})
	calc := NewSalaryCalculator(nil)

	derived, gross, err := calc.Derive(context.Background(), ds)
	require.NoError(t, err)

	_, _, err = calc.Summarize(context.Background(), derived, gross)
	assert.True(t, errors.Is(err, errors.ErrInsufficientRows))
}
