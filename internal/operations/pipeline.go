package operations

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"payrolletl/internal/infrastructure"
)

// Pipeline runs the registered steps once, strictly in sequence. A failing
// step ends the run; later steps are marked skipped and nothing is retried.
type Pipeline struct {
	registry *Registry
	config   Config
	logger   *slog.Logger
	tracer   *RunTracer
}

// NewPipeline creates a pipeline with the standard steps
func NewPipeline(cfg Config, logger *slog.Logger, metrics *infrastructure.PipelineMetrics) (*Pipeline, error) {
	if logger == nil {
		logger = slog.Default()
	}

	registry := NewRegistry()
	for _, step := range StageFactory(cfg, logger) {
		if err := registry.Register(step); err != nil {
			return nil, fmt.Errorf("failed to register step: %w", err)
		}
	}
	return NewPipelineWithRegistry(cfg, registry, logger, metrics), nil
}

// NewPipelineWithRegistry creates a pipeline running the steps of registry
func NewPipelineWithRegistry(cfg Config, registry *Registry, logger *slog.Logger, metrics *infrastructure.PipelineMetrics) *Pipeline {
	if registry == nil {
		registry = NewRegistry()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		registry: registry,
		config:   cfg,
		logger:   logger,
		tracer:   NewRunTracer(metrics),
	}
}

// GetRegistry returns the registry holding the pipeline's steps
func (p *Pipeline) GetRegistry() *Registry {
	return p.registry
}

// GetConfig returns the run configuration
func (p *Pipeline) GetConfig() Config {
	return p.config
}

// Run executes every step in order. The run ID is the context's trace ID,
// generated when absent.
func (p *Pipeline) Run(ctx context.Context) (*RunResult, error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	state := NewRunState(infrastructure.GetTraceID(ctx), p.config)

	steps := p.registry.List()
	for _, step := range steps {
		state.AddStep(NewStepState(step.ID(), step.Name()))
	}

	ctx, span := p.tracer.TraceRun(ctx, state)
	defer span.End()

	state.Start()
	p.logRunStart(ctx, state)

	err := p.executeSequential(ctx, state, steps)
	if err != nil {
		state.Fail(err)
		p.tracer.RecordRunCompletion(span, state, err)
		p.logRunError(ctx, state, err)
		p.logStepSummary(ctx, state)
		return nil, err
	}

	state.Complete()
	p.tracer.RecordRunCompletion(span, state, nil)
	p.logRunComplete(ctx, state)
	p.logStepSummary(ctx, state)

	return p.createResult(state), nil
}

// executeSequential runs steps in order and stops at the first failure
func (p *Pipeline) executeSequential(ctx context.Context, state *RunState, steps []Step) error {
	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			p.logger.WarnContext(ctx, "run_cancelled",
				slog.String("run_id", state.ID),
				slog.String("step", step.ID()))
			p.skipRemaining(state, steps[i:], "run cancelled")
			return NewCancellationError(step.ID(), err)
		}

		p.logger.InfoContext(ctx, "executing_step",
			slog.String("run_id", state.ID),
			slog.String("step", step.ID()),
			slog.Int("step_number", i+1),
			slog.Int("total_steps", len(steps)))

		if err := p.executeStep(ctx, state, step); err != nil {
			p.skipRemaining(state, steps[i+1:], fmt.Sprintf("previous step %s failed", step.ID()))
			return err
		}
	}
	return nil
}

// executeStep runs a single Step inside its own span
func (p *Pipeline) executeStep(ctx context.Context, state *RunState, step Step) error {
	stepState := state.GetStep(step.ID())
	if stepState == nil {
		return NewValidationError(step.ID(), "step state not found")
	}

	stepCtx, span := p.tracer.TraceStep(ctx, state.ID, step.ID())
	defer span.End()

	p.logStepStart(stepCtx, state.ID, step.ID())
	stepState.Start()

	start := time.Now()
	err := step.Execute(stepCtx, state)
	duration := time.Since(start)

	p.tracer.RecordStepCompletion(span, step.ID(), duration, err)

	if err != nil {
		stepState.Fail(err)
		p.logStepError(stepCtx, state.ID, step.ID(), err)
		var stepErr *StepError
		if errors.As(err, &stepErr) {
			return err
		}
		return NewExecutionError(step.ID(), err)
	}

	stepState.Complete()
	p.logStepComplete(stepCtx, state.ID, step.ID(), duration)
	return nil
}

// skipRemaining marks steps that will not run
func (p *Pipeline) skipRemaining(state *RunState, steps []Step, reason string) {
	for _, step := range steps {
		if s := state.GetStep(step.ID()); s != nil && s.GetStatus() == StepStatusPending {
			s.Skip(reason)
		}
	}
}

// createResult builds the run result from a completed state
func (p *Pipeline) createResult(state *RunState) *RunResult {
	result := &RunResult{
		RunID:             state.ID,
		FilesRead:         len(state.Files),
		RowsRead:          state.RowsRead,
		DroppedColumns:    state.CleanReport.DroppedColumns,
		DuplicatesRemoved: state.CleanReport.DuplicatesRemoved,
		SecondHighest:     state.Summary.SecondHighest.String(),
		AverageSalary:     state.Summary.Average,
		OutputPath:        state.OutputPath,
		Duration:          state.Duration(),
	}
	if state.Dataset != nil {
		result.RowsWritten = state.Dataset.Len()
	}
	for _, s := range state.OrderedSteps() {
		result.Steps = append(result.Steps, StepReport{
			ID:       s.ID,
			Name:     s.Name,
			Status:   s.GetStatus(),
			Duration: s.Duration(),
		})
	}
	return result
}
