package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths holds the absolute locations a run touches.
// Relative configuration values resolve against the working directory.
type Paths struct {
	WorkingDir   string
	InputFolder  string
	OutputFolder string
	ResultFile   string
	LogFile      string
}

// ResolvePaths returns absolute paths for cfg. Nothing is created or checked
// for existence; the output folder is allowed to be missing.
func ResolvePaths(cfg *Config) (*Paths, error) {
	if cfg == nil {
		cfg = Default()
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	paths := &Paths{
		WorkingDir:   wd,
		InputFolder:  resolve(wd, cfg.Paths.InputFolder),
		OutputFolder: resolve(wd, cfg.Paths.OutputFolder),
	}
	paths.ResultFile = filepath.Join(paths.OutputFolder, ResultFileName)
	if cfg.Logging.Output != "console" {
		paths.LogFile = resolve(wd, cfg.Logging.FilePath)
	}

	return paths, nil
}

func resolve(base, p string) string {
	if p == "" {
		return ""
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}

// Apply writes the resolved folders back into cfg
func (p *Paths) Apply(cfg *Config) {
	cfg.Paths.InputFolder = p.InputFolder
	cfg.Paths.OutputFolder = p.OutputFolder
	if p.LogFile != "" {
		cfg.Logging.FilePath = p.LogFile
	}
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LogPathResolution logs the resolved paths for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Debug("Path resolution summary",
		slog.Group("directories",
			slog.String("working", p.WorkingDir),
			slog.String("input", p.InputFolder),
			slog.String("output", p.OutputFolder),
		),
		slog.Group("files",
			slog.String("result", p.ResultFile),
			slog.String("log", p.LogFile),
		),
		slog.Bool("output_exists", FileExists(p.OutputFolder)))
}
