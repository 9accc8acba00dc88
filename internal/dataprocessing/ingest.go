package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"payrolletl/internal/errors"
	"payrolletl/pkg/contracts/domain"
)

// Ingestor reads input files on a bounded worker pool and concatenates them.
type Ingestor struct {
	logger   *slog.Logger
	workers  int
	readFile func(path string) (*domain.Dataset, error)
}

// NewIngestor creates an ingestor. workers <= 0 uses one worker per CPU.
func NewIngestor(logger *slog.Logger, workers int) *Ingestor {
	if logger == nil {
		logger = slog.Default()
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Ingestor{
		logger:   logger,
		workers:  workers,
		readFile: ParseFile,
	}
}

// Workers returns the pool size
func (i *Ingestor) Workers() int {
	return i.workers
}

// Ingest reads every path and concatenates the tables in the order of paths,
// independent of completion order. All reads finish before concatenation
// starts. The first failing read fails the whole call.
func (i *Ingestor) Ingest(ctx context.Context, paths []string) (*domain.Dataset, error) {
	if len(paths) == 0 {
		return nil, errors.NewNotFoundError("input files", errors.ErrNoInputFiles)
	}

	i.logger.InfoContext(ctx, "Reading input files",
		slog.Int("file_count", len(paths)),
		slog.Int("workers", i.workers))

	tables := make([]*domain.Dataset, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(i.workers)

	for idx, path := range paths {
		idx, path := idx, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			table, err := i.readFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			i.logger.DebugContext(gctx, "Read input file",
				slog.String("file", path),
				slog.Int("record_count", table.Len()),
				slog.Int("column_count", table.Width()))

			tables[idx] = table
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		i.logger.ErrorContext(ctx, "Failed to read input files", slog.String("error", err.Error()))
		return nil, err
	}

	ds := Concat(tables...)

	i.logger.InfoContext(ctx, "Concatenated input files",
		slog.Int("record_count", ds.Len()),
		slog.Int("column_count", ds.Width()))

	return ds, nil
}
