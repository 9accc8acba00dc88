package operations

import (
	"context"
	"fmt"
	"log/slog"

	"payrolletl/internal/dataprocessing"
	"payrolletl/internal/errors"
	"payrolletl/internal/exporter"
	"payrolletl/internal/files"
	"payrolletl/internal/validation"
)

// IngestStage validates the input folder, lists its files in name order and
// reads them into one dataset
type IngestStage struct {
	BaseStage
	logger      *slog.Logger
	validator   *validation.FileValidator
	discovery   *files.Discovery
	ingestor    *dataprocessing.Ingestor
	filePattern string
}

// NewIngestStage creates the ingest Step
func NewIngestStage(cfg Config, logger *slog.Logger) *IngestStage {
	logger = stageLogger(logger, StepIDIngest)
	return &IngestStage{
		BaseStage:   NewBaseStage(StepIDIngest, StepNameIngest),
		logger:      logger,
		validator:   validation.NewFileValidator(logger),
		discovery:   files.NewDiscovery(""),
		ingestor:    dataprocessing.NewIngestor(logger, cfg.Workers),
		filePattern: cfg.FilePattern,
	}
}

// Execute reads every input file into state.Dataset
func (s *IngestStage) Execute(ctx context.Context, state *RunState) error {
	if err := s.validator.ValidateInputDirectory(state.InputFolder); err != nil {
		return err
	}

	var (
		found []files.FileInfo
		err   error
	)
	if s.filePattern != "" {
		found, err = s.discovery.FindFilesByPattern(state.InputFolder, s.filePattern)
	} else {
		found, err = s.discovery.ListFiles(state.InputFolder)
	}
	if err != nil {
		return errors.NewStorageError("failed to list input files", err).
			WithContext("directory", state.InputFolder)
	}
	state.Files = found

	s.logger.InfoContext(ctx, "Discovered input files",
		slog.String("directory", state.InputFolder),
		slog.Int("file_count", len(found)))

	ds, err := s.ingestor.Ingest(ctx, files.Paths(found))
	if err != nil {
		return err
	}

	state.Dataset = ds
	state.RowsRead = ds.Len()
	return nil
}

// CleanStage drops incomplete columns, deduplicates and fills
type CleanStage struct {
	BaseStage
	cleaner *dataprocessing.Cleaner
}

// NewCleanStage creates the clean Step
func NewCleanStage(logger *slog.Logger) *CleanStage {
	return &CleanStage{
		BaseStage: NewBaseStage(StepIDClean, StepNameClean),
		cleaner:   dataprocessing.NewCleaner(stageLogger(logger, StepIDClean)),
	}
}

// Execute replaces state.Dataset with its cleaned copy
func (s *CleanStage) Execute(ctx context.Context, state *RunState) error {
	if err := requireDataset(s.ID(), state); err != nil {
		return err
	}

	ds, report, err := s.cleaner.Clean(ctx, state.Dataset)
	state.CleanReport = report
	if err != nil {
		return err
	}
	state.Dataset = ds
	return nil
}

// DeriveStage appends gross_salary
type DeriveStage struct {
	BaseStage
	calculator *dataprocessing.SalaryCalculator
}

// NewDeriveStage creates the derive Step
func NewDeriveStage(logger *slog.Logger) *DeriveStage {
	return &DeriveStage{
		BaseStage:  NewBaseStage(StepIDDerive, StepNameDerive),
		calculator: dataprocessing.NewSalaryCalculator(stageLogger(logger, StepIDDerive)),
	}
}

// Execute replaces state.Dataset with a copy carrying gross_salary
func (s *DeriveStage) Execute(ctx context.Context, state *RunState) error {
	if err := requireDataset(s.ID(), state); err != nil {
		return err
	}

	ds, gross, err := s.calculator.Derive(ctx, state.Dataset)
	if err != nil {
		return err
	}
	state.Dataset = ds
	state.Gross = gross
	return nil
}

// SummarizeStage appends the second-highest and average salary rows
type SummarizeStage struct {
	BaseStage
	calculator *dataprocessing.SalaryCalculator
}

// NewSummarizeStage creates the summarize Step
func NewSummarizeStage(logger *slog.Logger) *SummarizeStage {
	return &SummarizeStage{
		BaseStage:  NewBaseStage(StepIDSummarize, StepNameSummarize),
		calculator: dataprocessing.NewSalaryCalculator(stageLogger(logger, StepIDSummarize)),
	}
}

// Execute replaces state.Dataset with a copy carrying the summary rows
func (s *SummarizeStage) Execute(ctx context.Context, state *RunState) error {
	if err := requireDataset(s.ID(), state); err != nil {
		return err
	}
	if len(state.Gross) != state.Dataset.Len() {
		return NewValidationError(s.ID(), "gross salary has not been derived")
	}

	ds, summary, err := s.calculator.Summarize(ctx, state.Dataset, state.Gross)
	if err != nil {
		return err
	}
	state.Dataset = ds
	state.Summary = summary
	return nil
}

// WriteStage writes the final dataset to the output folder
type WriteStage struct {
	BaseStage
	writer *exporter.CSVWriter
}

// NewWriteStage creates the write Step
func NewWriteStage(logger *slog.Logger) *WriteStage {
	return &WriteStage{
		BaseStage: NewBaseStage(StepIDWrite, StepNameWrite),
		writer:    exporter.NewCSVWriter(stageLogger(logger, StepIDWrite)),
	}
}

// Execute writes state.Dataset and records the output path
func (s *WriteStage) Execute(ctx context.Context, state *RunState) error {
	if err := requireDataset(s.ID(), state); err != nil {
		return err
	}

	path, err := s.writer.WriteDataset(ctx, state.OutputFolder, state.Dataset)
	if err != nil {
		return err
	}
	state.OutputPath = path
	return nil
}

// StageFactory returns the steps of a run in execution order
func StageFactory(cfg Config, logger *slog.Logger) []Step {
	return []Step{
		NewIngestStage(cfg, logger),
		NewCleanStage(logger),
		NewDeriveStage(logger),
		NewSummarizeStage(logger),
		NewWriteStage(logger),
	}
}

func stageLogger(logger *slog.Logger, stepID string) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return logger.With(slog.String("step", stepID))
}

func requireDataset(stepID string, state *RunState) error {
	if state.Dataset == nil {
		return NewValidationError(stepID, fmt.Sprintf("no dataset to process; run %s first", StepIDIngest))
	}
	return nil
}
