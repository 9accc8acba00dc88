package domain

// Columns the pipeline reads or writes by name. Every other column in an
// input file is carried through untouched.
const (
	ColumnID          = "id"
	ColumnBasicSalary = "basic_salary"
	ColumnAllowances  = "allowances"
	ColumnGrossSalary = "gross_salary"
)

// Summary row labels. The figure is appended after " = ".
const (
	LabelSecondHighestSalary = "Second Highest Salary"
	LabelAverageSalary       = "Average Salary"
)
