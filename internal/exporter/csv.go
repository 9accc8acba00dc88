package exporter

import (
	"context"
	"encoding/csv"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"payrolletl/internal/config"
	"payrolletl/internal/errors"
	"payrolletl/pkg/contracts/domain"
)

// CSVWriter writes datasets as comma separated files
type CSVWriter struct {
	logger   *slog.Logger
	fileName string
}

// NewCSVWriter creates a writer producing config.ResultFileName
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{
		logger:   logger,
		fileName: config.ResultFileName,
	}
}

// WriteDataset writes ds to <dir>/RESULT.csv and returns the file path.
// When dir does not exist it is created with its parents and the write is
// retried once. Every other failure is returned as is.
func (w *CSVWriter) WriteDataset(ctx context.Context, dir string, ds *domain.Dataset) (string, error) {
	path, err := w.Write(dir, ds)
	if !errors.Is(err, errors.ErrOutputDirMissing) {
		return path, err
	}

	w.logger.WarnContext(ctx, "Cannot save file into a non-existent directory",
		slog.String("directory", dir))

	if err := os.MkdirAll(dir, config.DirPermission); err != nil {
		return "", errors.NewStorageError(fmt.Sprintf("failed to create directory %s", dir), err).
			WithContext("directory", dir)
	}

	w.logger.InfoContext(ctx, "Created output directory", slog.String("directory", dir))

	return w.Write(dir, ds)
}

// Write writes ds to <dir>/RESULT.csv without creating dir. A missing dir is
// reported as a STORAGE error wrapping errors.ErrOutputDirMissing.
func (w *CSVWriter) Write(dir string, ds *domain.Dataset) (string, error) {
	path := filepath.Join(dir, w.fileName)

	w.logger.Info("Writing CSV file",
		slog.String("file_path", path),
		slog.Int("record_count", ds.Len()),
		slog.Int("column_count", ds.Width()))

	stream, err := createStreamWriter(path, ds.Columns)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !dirExists(dir) {
			return "", errors.NewStorageError(fmt.Sprintf("cannot write %s", path), errors.ErrOutputDirMissing).
				WithContext("directory", dir)
		}
		return "", errors.NewStorageError(fmt.Sprintf("failed to create %s", path), err).
			WithContext("file", path)
	}

	for i, rec := range ds.Records {
		if err := stream.WriteRecord(formatRecord(rec)); err != nil {
			stream.Close()
			return "", errors.NewStorageError(fmt.Sprintf("failed to write record %d", i), err).
				WithContext("file", path)
		}
	}

	if err := stream.Close(); err != nil {
		return "", errors.NewStorageError(fmt.Sprintf("failed to write %s", path), err).
			WithContext("file", path)
	}
	return path, nil
}

func dirExists(dir string) bool {
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}

// streamWriter writes records one at a time
type streamWriter struct {
	file   *os.File
	writer *csv.Writer
}

// createStreamWriter creates path and writes the header row
func createStreamWriter(path string, headers []string) (*streamWriter, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, config.FilePermission)
	if err != nil {
		return nil, err
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(headers); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to write headers: %w", err)
	}

	return &streamWriter{
		file:   file,
		writer: writer,
	}, nil
}

// WriteRecord writes a single record to the stream
func (s *streamWriter) WriteRecord(record []string) error {
	return s.writer.Write(record)
}

// Close flushes and closes the stream writer
func (s *streamWriter) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}
