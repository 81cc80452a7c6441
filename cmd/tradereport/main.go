// Command tradereport builds one dashboard view from the trade and boundary
// files and writes it as csv, xlsx, png or geojson.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"traderoutes/internal/app"
	"traderoutes/internal/config"
	"traderoutes/internal/dataset"
	"traderoutes/internal/exporter"
	"traderoutes/internal/infrastructure"
	"traderoutes/internal/services"
	"traderoutes/pkg/contracts/domain"
)

func main() {
	logger := infrastructure.NewLoggerWithWriter(os.Stderr, "info")
	if err := run(context.Background(), os.Args[1:], logger); err != nil {
		logger.Error("Trade report failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

type options struct {
	trade      string
	boundaries string
	country    string
	types      string
	typesSet   bool
	format     string
	out        string
}

func parseFlags(args []string, cfg *config.Config, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("tradereport", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.trade, "trade", cfg.Data.TradeFile, "trade data file (.csv or .xlsx)")
	fs.StringVar(&opts.boundaries, "boundaries", cfg.Data.BoundaryFile, "country boundary GeoJSON file")
	fs.StringVar(&opts.country, "country", "", "country to report on (defaults to the first country in the file)")
	fs.StringVar(&opts.types, "types", "", "comma-separated trade types (defaults to all; empty value selects none)")
	fs.StringVar(&opts.format, "format", string(exporter.FormatCSV), "output format: csv, xlsx, png or geojson")
	fs.StringVar(&opts.out, "out", "", "output file (defaults to a generated name under the export directory)")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "types" {
			opts.typesSet = true
		}
	})
	return opts, nil
}

// selection converts the flags into widget state; -types absent means every type.
func (o options) selection() domain.SelectionRequest {
	var req domain.SelectionRequest
	if o.country != "" {
		country := o.country
		req.Country = &country
	}
	if o.typesSet {
		req.TradeTypes = []string{}
		for _, t := range strings.Split(o.types, ",") {
			if t = strings.TrimSpace(t); t != "" {
				req.TradeTypes = append(req.TradeTypes, t)
			}
		}
	}
	return req
}

func run(ctx context.Context, args []string, logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	opts, err := parseFlags(args, cfg, os.Stderr)
	if err != nil {
		return err
	}

	format, err := exporter.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	data, err := dataset.Load(ctx, dataset.Source{TradeFile: opts.trade, BoundaryFile: opts.boundaries}, logger)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}

	exp := exporter.New(exporter.Options{BOMPrefix: cfg.Data.BOMPrefix})
	svc := services.NewDashboardService(services.DashboardServiceConfig{
		Dataset:           data,
		Settings:          app.MapSettingsFrom(cfg.Map),
		Exporter:          exp,
		SimplifyTolerance: cfg.Data.SimplifyTolerance,
		Logger:            logger,
	})

	view, err := svc.View(services.WithSource(ctx, services.SourceCLI), opts.selection())
	if err != nil {
		return fmt.Errorf("failed to build view: %w", err)
	}

	path := opts.out
	if path == "" {
		path = filepath.Join(cfg.Data.ExportDir, exporter.FileName(view.Selection.Country, format))
	}
	if err := exp.ExportFile(path, format, view); err != nil {
		return fmt.Errorf("failed to write %s export: %w", format, err)
	}

	logger.Info("Trade report written",
		slog.String("file_path", path),
		slog.String("country", view.Selection.Country),
		slog.Int("record_count", len(view.Records)),
		slog.Float64("total_volume", view.TotalVolume))
	return nil
}
