package operations

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"payrolletl/internal/infrastructure"
)

// RunTracer instruments a run with spans and run metrics
type RunTracer struct {
	tracer  trace.Tracer
	metrics *infrastructure.PipelineMetrics
}

// NewRunTracer creates a tracer on the current global provider. A nil
// metrics gets a private, unexported registry.
func NewRunTracer(metrics *infrastructure.PipelineMetrics) *RunTracer {
	if metrics == nil {
		metrics = infrastructure.NewPipelineMetrics()
	}
	return &RunTracer{
		tracer:  infrastructure.Tracer(),
		metrics: metrics,
	}
}

// TraceRun creates a span for the entire run
func (rt *RunTracer) TraceRun(ctx context.Context, state *RunState) (context.Context, trace.Span) {
	return rt.tracer.Start(ctx, "run.execute",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("run.id", state.ID),
			attribute.String("run.input_folder", state.InputFolder),
			attribute.String("run.output_folder", state.OutputFolder),
		),
	)
}

// TraceStep creates a span for a single step
func (rt *RunTracer) TraceStep(ctx context.Context, runID, stepID string) (context.Context, trace.Span) {
	spanName := fmt.Sprintf("run.step.%s", stepID)
	return rt.tracer.Start(ctx, spanName,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.String("step.id", stepID),
		),
	)
}

// RecordStepCompletion closes out a step span and records its duration
func (rt *RunTracer) RecordStepCompletion(span trace.Span, stepID string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}

	span.SetAttributes(
		attribute.String("step.status", status),
		attribute.Float64("step.duration_seconds", duration.Seconds()),
	)

	rt.metrics.StepDuration.WithLabelValues(stepID).Set(duration.Seconds())

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "step execution failed")
		return
	}
	span.SetStatus(codes.Ok, "step completed successfully")
}

// RecordRunCompletion closes out the run span and records run totals
func (rt *RunTracer) RecordRunCompletion(span trace.Span, state *RunState, err error) {
	span.SetAttributes(
		attribute.String("run.status", string(state.Status)),
		attribute.Float64("run.duration_seconds", state.Duration().Seconds()),
		attribute.Int("run.files_read", len(state.Files)),
		attribute.Int("run.rows_read", state.RowsRead),
	)

	rt.metrics.FilesRead.Add(float64(len(state.Files)))
	rt.metrics.RowsRead.Add(float64(state.RowsRead))
	rt.metrics.ColumnsDropped.Add(float64(len(state.CleanReport.DroppedColumns)))
	rt.metrics.DuplicatesRemoved.Add(float64(state.CleanReport.DuplicatesRemoved))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "run failed")
		return
	}

	if state.Dataset != nil {
		rt.metrics.RowsWritten.Set(float64(state.Dataset.Len()))
	}
	rt.metrics.LastSuccess.SetToCurrentTime()
	span.SetStatus(codes.Ok, "run completed successfully")
}
