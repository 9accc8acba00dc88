package operations

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

func (p *Pipeline) logRunStart(ctx context.Context, state *RunState) {
	p.logger.InfoContext(ctx, "run_start",
		slog.String("run_id", state.ID),
		slog.String("input_folder", state.InputFolder),
		slog.String("output_folder", state.OutputFolder),
		slog.Int("step_count", len(state.StepOrder)))
}

func (p *Pipeline) logRunComplete(ctx context.Context, state *RunState) {
	p.logger.InfoContext(ctx, "run_complete",
		slog.String("run_id", state.ID),
		slog.String("status", string(state.Status)),
		slog.Duration("duration", state.Duration()),
		slog.Int("files_read", len(state.Files)),
		slog.Int("rows_read", state.RowsRead),
		slog.String("dropped_columns", strings.Join(state.CleanReport.DroppedColumns, ",")),
		slog.Int("duplicates_removed", state.CleanReport.DuplicatesRemoved),
		slog.String("output_path", state.OutputPath))
}

func (p *Pipeline) logRunError(ctx context.Context, state *RunState, err error) {
	errorMsg := "unknown error"
	if err != nil {
		errorMsg = err.Error()
	}
	p.logger.ErrorContext(ctx, "run_error",
		slog.String("run_id", state.ID),
		slog.String("step", FailedStep(err)),
		slog.String("error", errorMsg))
}

func (p *Pipeline) logStepStart(ctx context.Context, runID, stepID string) {
	p.logger.DebugContext(ctx, "step_start",
		slog.String("run_id", runID),
		slog.String("step", stepID))
}

func (p *Pipeline) logStepComplete(ctx context.Context, runID, stepID string, duration time.Duration) {
	p.logger.InfoContext(ctx, "step_complete",
		slog.String("run_id", runID),
		slog.String("step", stepID),
		slog.Duration("duration", duration))
}

func (p *Pipeline) logStepError(ctx context.Context, runID, stepID string, err error) {
	p.logger.ErrorContext(ctx, "step_error",
		slog.String("run_id", runID),
		slog.String("step", stepID),
		slog.String("error", err.Error()))
}

// logStepSummary logs the final status and timing of every step
func (p *Pipeline) logStepSummary(ctx context.Context, state *RunState) {
	for _, s := range state.OrderedSteps() {
		p.logger.InfoContext(ctx, "step_summary",
			slog.String("run_id", state.ID),
			slog.String("step", s.ID),
			slog.String("status", string(s.GetStatus())),
			slog.Duration("duration", s.Duration()))
	}
}
