package operations

import (
	"time"
)

// Step identifiers, in execution order
const (
	StepIDIngest    = "ingest"
	StepIDClean     = "clean"
	StepIDDerive    = "derive"
	StepIDSummarize = "summarize"
	StepIDWrite     = "write"
)

// Step names
const (
	StepNameIngest    = "Read Input Files"
	StepNameClean     = "Clean Dataset"
	StepNameDerive    = "Derive Gross Salary"
	StepNameSummarize = "Append Salary Summary"
	StepNameWrite     = "Write Result"
)

// RunResult summarizes a finished run
type RunResult struct {
	RunID             string        `json:"run_id"`
	FilesRead         int           `json:"files_read"`
	RowsRead          int           `json:"rows_read"`
	RowsWritten       int           `json:"rows_written"`
	DroppedColumns    []string      `json:"dropped_columns"`
	DuplicatesRemoved int           `json:"duplicates_removed"`
	SecondHighest     string        `json:"second_highest_salary"`
	AverageSalary     float64       `json:"average_salary"`
	OutputPath        string        `json:"output_path"`
	Duration          time.Duration `json:"duration"`
	Steps             []StepReport  `json:"steps"`
}

// StepReport is the final status of one step
type StepReport struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Status   StepStatus    `json:"status"`
	Duration time.Duration `json:"duration"`
}
