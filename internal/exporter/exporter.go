package exporter

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"traderoutes/pkg/contracts/domain"
)

// Options configures an Exporter.
type Options struct {
	BOMPrefix bool
	Chart     ChartOptions
}

// Exporter writes a View in any supported Format.
type Exporter struct {
	opts Options
}

// New creates an Exporter. A zero Chart size falls back to DefaultChartOptions.
func New(opts Options) *Exporter {
	if opts.Chart.Width == 0 || opts.Chart.Height == 0 {
		opts.Chart = DefaultChartOptions()
	}
	return &Exporter{opts: opts}
}

// Export writes view to w in the given format.
func (e *Exporter) Export(w io.Writer, format Format, view *domain.View) error {
	switch format {
	case FormatCSV:
		return WriteRecordsCSV(w, view.Records, e.opts.BOMPrefix)
	case FormatXLSX:
		return WriteWorkbook(w, view)
	case FormatPNG:
		opts := e.opts.Chart
		if view.Selection.Country != "" {
			opts.Title = fmt.Sprintf("%s: %s", opts.Title, view.Selection.Country)
		}
		return RenderBarChart(w, view.PartnerVolumes, opts)
	case FormatGeoJSON:
		return WriteGeoJSON(w, view.Choropleth, view.ColorScale)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// ExportFile writes view to path, creating parent directories.
func (e *Exporter) ExportFile(path string, format Format, view *domain.View) error {
	slog.Info("Writing export file",
		slog.String("file_path", path),
		slog.String("format", string(format)),
		slog.Int("record_count", len(view.Records)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if err := e.Export(file, format, view); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
