package operations

import (
	"time"

	"payrolletl/internal/dataprocessing"
	"payrolletl/internal/files"
	"payrolletl/pkg/contracts/domain"
)

// RunStatus represents the overall run status
type RunStatus string

const (
	RunStatusPending   RunStatus = "pending"
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// RunState carries one run's data between steps. Each step replaces Dataset
// with the dataset it produced; the previous value is left untouched.
// A RunState is owned by the single goroutine executing the run.
type RunState struct {
	ID        string     `json:"id"`
	Status    RunStatus  `json:"status"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`

	// Step states, keyed by step ID, plus their execution order
	Steps     map[string]*StepState `json:"steps"`
	StepOrder []string              `json:"step_order"`

	InputFolder  string `json:"input_folder"`
	OutputFolder string `json:"output_folder"`

	Files       []files.FileInfo             `json:"files"`
	Dataset     *domain.Dataset              `json:"-"`
	RowsRead    int                          `json:"rows_read"`
	CleanReport dataprocessing.CleanReport   `json:"clean_report"`
	Gross       []dataprocessing.Amount      `json:"-"`
	Summary     dataprocessing.SalarySummary `json:"summary"`
	OutputPath  string                       `json:"output_path"`

	Error error `json:"error,omitempty"`
}

// NewRunState creates a pending run state
func NewRunState(id string, cfg Config) *RunState {
	return &RunState{
		ID:           id,
		Status:       RunStatusPending,
		StartTime:    time.Now(),
		Steps:        make(map[string]*StepState),
		InputFolder:  cfg.InputFolder,
		OutputFolder: cfg.OutputFolder,
	}
}

// Start marks the run as running
func (s *RunState) Start() {
	s.Status = RunStatusRunning
	s.StartTime = time.Now()
}

// Complete marks the run as completed
func (s *RunState) Complete() {
	now := time.Now()
	s.EndTime = &now
	s.Status = RunStatusCompleted
}

// Fail marks the run as failed
func (s *RunState) Fail(err error) {
	now := time.Now()
	s.EndTime = &now
	s.Status = RunStatusFailed
	s.Error = err
}

// AddStep registers the state of a step in execution order
func (s *RunState) AddStep(state *StepState) {
	if _, exists := s.Steps[state.ID]; !exists {
		s.StepOrder = append(s.StepOrder, state.ID)
	}
	s.Steps[state.ID] = state
}

// GetStep returns the state of a specific Step
func (s *RunState) GetStep(stepID string) *StepState {
	return s.Steps[stepID]
}

// OrderedSteps returns step states in execution order
func (s *RunState) OrderedSteps() []*StepState {
	out := make([]*StepState, 0, len(s.StepOrder))
	for _, id := range s.StepOrder {
		out = append(out, s.Steps[id])
	}
	return out
}

// HasFailures returns true if any Step has failed
func (s *RunState) HasFailures() bool {
	for _, step := range s.Steps {
		if step.GetStatus() == StepStatusFailed {
			return true
		}
	}
	return false
}

// Duration returns the duration of the run
func (s *RunState) Duration() time.Duration {
	if s.EndTime != nil {
		return s.EndTime.Sub(s.StartTime)
	}
	return time.Since(s.StartTime)
}
