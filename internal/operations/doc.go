// Package operations orchestrates one payroll run.
//
// A run executes five steps strictly in sequence:
//
//	ingest -> clean -> derive -> summarize -> write
//
// Steps implement the Step interface and exchange data through a RunState:
// each step reads state.Dataset, builds a new dataset and stores it back.
// The first failing step ends the run; remaining steps are marked skipped.
// There are no retries between steps.
//
// Core components:
//
// Pipeline: runs the steps of a Registry, wraps each in an OpenTelemetry
// span, records step timings in the run metrics and returns a RunResult.
//
// StepState: status and timing of one step, logged as a summary at the end
// of the run.
//
// Usage:
//
//	p, err := operations.NewPipeline(operations.NewConfig(cfg), logger, metrics)
//	if err != nil {
//	    return err
//	}
//	result, err := p.Run(ctx)
package operations
