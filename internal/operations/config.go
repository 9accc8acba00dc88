package operations

import (
	"payrolletl/internal/config"
)

// Config holds what a run needs from the application configuration
type Config struct {
	InputFolder  string `json:"input_folder"`
	OutputFolder string `json:"output_folder"`

	// Workers bounds concurrent file reads. Zero means one per CPU.
	Workers int `json:"workers"`

	// FilePattern restricts input files to a glob. Empty reads every file.
	FilePattern string `json:"file_pattern"`
}

// NewConfig returns the run configuration derived from cfg
func NewConfig(cfg *config.Config) Config {
	if cfg == nil {
		cfg = config.Default()
	}
	return Config{
		InputFolder:  cfg.Paths.InputFolder,
		OutputFolder: cfg.Paths.OutputFolder,
		Workers:      cfg.Processing.Workers,
		FilePattern:  cfg.Processing.FilePattern,
	}
}
