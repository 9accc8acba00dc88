package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"payrolletl/internal/config"
	"payrolletl/internal/infrastructure"
	"payrolletl/internal/operations"
	"payrolletl/pkg/contracts"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		slog.Error("Run failed", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run executes one ETL run with the given command line arguments
func run(ctx context.Context, args []string, stdout io.Writer) error {
	flags := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	inDir := flags.String("in", "", "input folder of tab-separated employee files (overrides config)")
	outDir := flags.String("out", "", "output folder for RESULT.csv (overrides config)")
	configFile := flags.String("config", "", "path to a YAML config file (defaults to config.yaml or configs/config.yaml)")
	workers := flags.Int("workers", -1, "concurrent file reads, 0 for one per CPU (overrides config)")
	showVersion := flags.Bool("version", false, "print version information and exit")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return nil
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		return err
	}
	if *inDir != "" {
		cfg.Paths.InputFolder = *inDir
	}
	if *outDir != "" {
		cfg.Paths.OutputFolder = *outDir
	}
	if *workers >= 0 {
		cfg.Processing.Workers = *workers
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	paths, err := config.ResolvePaths(cfg)
	if err != nil {
		return err
	}
	paths.Apply(cfg)

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer infrastructure.CloseLogFile()

	paths.LogPathResolution(logger)

	ctx = infrastructure.EnsureTraceID(ctx)

	shutdown, err := infrastructure.InitTracing(cfg.Telemetry, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Warn("Failed to flush traces", slog.String("error", err.Error()))
		}
	}()

	logger.InfoContext(ctx, "Starting payroll ETL",
		slog.String("version", contracts.Version),
		slog.String("input_folder", cfg.Paths.InputFolder),
		slog.String("output_folder", cfg.Paths.OutputFolder),
		slog.Int("workers", cfg.Processing.Workers))

	metrics := infrastructure.NewPipelineMetrics()
	pipeline, err := operations.NewPipeline(operations.NewConfig(cfg),
		infrastructure.WithComponent(logger, "pipeline"), metrics)
	if err != nil {
		return err
	}

	result, runErr := pipeline.Run(ctx)

	if path := cfg.Telemetry.MetricsFile; path != "" {
		if err := metrics.WriteTextfile(path); err != nil {
			logger.WarnContext(ctx, "Failed to write metrics file",
				slog.String("path", path),
				slog.String("error", err.Error()))
		}
	}

	if runErr != nil {
		return runErr
	}

	logger.InfoContext(ctx, "Run summary",
		slog.String("output_path", result.OutputPath),
		slog.Int("rows_written", result.RowsWritten),
		slog.String("dropped_columns", strings.Join(result.DroppedColumns, ",")),
		slog.String("second_highest_salary", result.SecondHighest),
		slog.Float64("average_salary", result.AverageSalary))

	fmt.Fprintln(stdout, "Task completed")
	return nil
}
