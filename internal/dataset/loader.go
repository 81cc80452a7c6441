package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"traderoutes/pkg/contracts/domain"
)

// Load reads both files concurrently and returns the Dataset.
// The first error cancels the other read and is returned.
func Load(ctx context.Context, src Source, logger *slog.Logger) (*Dataset, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "dataset"))
	start := time.Now()

	var (
		records    []domain.TradeRecord
		boundaries []domain.BoundaryFeature
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = LoadTrades(gctx, src.TradeFile)
		return err
	})
	g.Go(func() error {
		var err error
		boundaries, err = LoadBoundaries(gctx, src.BoundaryFile)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.ErrorContext(ctx, "Failed to load dataset",
			slog.String("trade_file", src.TradeFile),
			slog.String("boundary_file", src.BoundaryFile),
			slog.String("error", err.Error()))
		return nil, err
	}

	d := New(records, boundaries)
	d.source = src

	logger.InfoContext(ctx, "Dataset loaded",
		slog.String("trade_file", src.TradeFile),
		slog.String("boundary_file", src.BoundaryFile),
		slog.Int("records", d.RecordCount()),
		slog.Int("boundaries", d.BoundaryCount()),
		slog.Int("countries", len(d.countries)),
		slog.Int("trade_types", len(d.tradeTypes)),
		slog.Duration("duration", time.Since(start)))

	return d, nil
}

// LoadTrades opens and parses a trade data file.
func LoadTrades(ctx context.Context, path string) ([]domain.TradeRecord, error) {
	format, err := TradeFormatFromPath(path)
	if err != nil {
		return nil, fmt.Errorf("trade file %s: %w", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trade file: %w", err)
	}
	defer f.Close()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	records, err := ParseTrades(f, format)
	if err != nil {
		return nil, fmt.Errorf("trade file %s: %w", path, err)
	}
	return records, nil
}

// LoadBoundaries reads and parses a GeoJSON boundary file.
func LoadBoundaries(ctx context.Context, path string) ([]domain.BoundaryFeature, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open boundary file: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	features, err := ParseBoundaries(data)
	if err != nil {
		return nil, fmt.Errorf("boundary file %s: %w", path, err)
	}
	return features, nil
}
