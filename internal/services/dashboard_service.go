package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/paulmach/orb/geojson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"traderoutes/internal/dashboard"
	"traderoutes/internal/dataset"
	"traderoutes/internal/exporter"
	"traderoutes/internal/infrastructure"
	api "traderoutes/pkg/contracts/api/v1"
	"traderoutes/pkg/contracts/domain"
)

// Interaction sources used as metric attributes.
const (
	SourceHTTP      = "http"
	SourceWebSocket = "websocket"
	SourceCLI       = "cli"
)

type sourceKey struct{}

// WithSource tags ctx with the transport that triggered a recomputation.
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, sourceKey{}, source)
}

func sourceFrom(ctx context.Context) string {
	if s, ok := ctx.Value(sourceKey{}).(string); ok {
		return s
	}
	return SourceHTTP
}

// DashboardServiceConfig holds the dependencies of a DashboardService.
type DashboardServiceConfig struct {
	Dataset           *dataset.Dataset
	Settings          dashboard.MapSettings
	Exporter          *exporter.Exporter
	SimplifyTolerance float64
	Tracer            trace.Tracer
	Metrics           *infrastructure.DashboardMetrics
	Logger            *slog.Logger
}

// DashboardService runs the dashboard pipeline for each interaction.
type DashboardService struct {
	data              *dataset.Dataset
	settings          dashboard.MapSettings
	exporter          *exporter.Exporter
	simplifyTolerance float64
	tracer            trace.Tracer
	metrics           *infrastructure.DashboardMetrics
	logger            *slog.Logger
}

// NewDashboardService creates a dashboard service. Missing tracer, exporter and
// logger are replaced by no-op or default implementations.
func NewDashboardService(cfg DashboardServiceConfig) *DashboardService {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Tracer == nil {
		cfg.Tracer = noop.NewTracerProvider().Tracer(infrastructure.InstrumentationName)
	}
	if cfg.Exporter == nil {
		cfg.Exporter = exporter.New(exporter.Options{})
	}

	logger := cfg.Logger.With(slog.String("component", "dashboard_service"))
	if cfg.Dataset != nil {
		logger.Info("DashboardService initialized",
			slog.Int("records", cfg.Dataset.RecordCount()),
			slog.Int("boundaries", cfg.Dataset.BoundaryCount()),
			slog.Int("countries", len(cfg.Dataset.Countries())))
	}

	return &DashboardService{
		data:              cfg.Dataset,
		settings:          cfg.Settings,
		exporter:          cfg.Exporter,
		simplifyTolerance: cfg.SimplifyTolerance,
		tracer:            cfg.Tracer,
		metrics:           cfg.Metrics,
		logger:            logger,
	}
}

// Dataset returns the loaded dataset, or nil.
func (s *DashboardService) Dataset() *dataset.Dataset {
	return s.data
}

// Options returns the values the filter widgets can take.
func (s *DashboardService) Options(ctx context.Context) (domain.DashboardOptions, error) {
	if s.data == nil {
		return domain.DashboardOptions{}, ErrNoDataset
	}
	return s.data.Options(), nil
}

// ResolveSelection applies the widget defaults: an absent country becomes the
// first country in the data and absent trade types become every trade type.
func (s *DashboardService) ResolveSelection(req domain.SelectionRequest) (domain.FilterSelection, error) {
	if s.data == nil {
		return domain.FilterSelection{}, ErrNoDataset
	}

	sel := domain.FilterSelection{Country: s.data.DefaultCountry()}
	if req.Country != nil {
		sel.Country = *req.Country
	}

	if req.TradeTypes == nil {
		sel.TradeTypes = s.data.TradeTypes()
	} else {
		sel.TradeTypes = slices.Clone(req.TradeTypes)
	}
	return sel, nil
}

// View builds the full dashboard state for one selection.
func (s *DashboardService) View(ctx context.Context, req domain.SelectionRequest) (*domain.View, error) {
	ctx, span := s.tracer.Start(ctx, "dashboard.view")
	defer span.End()

	start := time.Now()

	sel, err := s.ResolveSelection(req)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}
	span.SetAttributes(
		attribute.String("selection.country", sel.Country),
		attribute.Int("selection.trade_types", len(sel.TradeTypes)),
	)

	view, err := dashboard.Build(s.data, sel, s.settings)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, fmt.Errorf("build view: %w", err)
	}

	duration := time.Since(start)
	span.SetAttributes(
		attribute.Int("view.records", len(view.Records)),
		attribute.Bool("view.fallback", view.Map.Fallback),
	)
	s.metrics.RecordView(ctx, sourceFrom(ctx), len(view.Records), duration)

	s.logger.DebugContext(ctx, "view built",
		slog.String("country", sel.Country),
		slog.Int("trade_types", len(sel.TradeTypes)),
		slog.Int("records", len(view.Records)),
		slog.Duration("duration", duration))

	return view, nil
}

// Records returns the filtered subset with its map camera and marker style.
func (s *DashboardService) Records(ctx context.Context, req domain.SelectionRequest) (api.RecordsResponse, error) {
	ctx, span := s.tracer.Start(ctx, "dashboard.records")
	defer span.End()

	sel, err := s.ResolveSelection(req)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return api.RecordsResponse{}, err
	}

	subset := dashboard.Filter(s.data.Records(), sel)
	span.SetAttributes(attribute.Int("view.records", len(subset)))

	return api.RecordsResponse{
		Country: sel.Country,
		Count:   len(subset),
		Records: subset,
		Marker:  s.settings.Marker,
		Map:     dashboard.MapCenter(subset, s.settings),
	}, nil
}

// Aggregates sums the filtered subset's volume grouped by key.
func (s *DashboardService) Aggregates(ctx context.Context, req domain.SelectionRequest, key domain.GroupKey) (api.AggregatesResponse, error) {
	ctx, span := s.tracer.Start(ctx, "dashboard.aggregates",
		trace.WithAttributes(attribute.String("group_by", string(key))))
	defer span.End()

	sel, err := s.ResolveSelection(req)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return api.AggregatesResponse{}, err
	}

	subset := dashboard.Filter(s.data.Records(), sel)
	rows, err := dashboard.Aggregate(subset, key)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return api.AggregatesResponse{}, err
	}

	return api.AggregatesResponse{
		GroupBy:     key,
		Rows:        rows,
		TotalVolume: dashboard.TotalVolume(subset),
	}, nil
}

// Choropleth returns the boundary collection joined with per-country volumes
// for the selected trade types. A nil tolerance uses the configured default;
// an explicit zero keeps the geometry as loaded.
func (s *DashboardService) Choropleth(ctx context.Context, req domain.SelectionRequest, tolerance *float64) (*geojson.FeatureCollection, error) {
	ctx, span := s.tracer.Start(ctx, "dashboard.choropleth")
	defer span.End()

	view, err := s.View(ctx, req)
	if err != nil {
		return nil, err
	}

	tol := s.tolerance(tolerance)
	span.SetAttributes(
		attribute.Float64("simplify.tolerance", tol),
		attribute.Int("features", len(view.Choropleth)),
	)

	features := dashboard.Simplify(view.Choropleth, tol)
	return exporter.ChoroplethCollection(features, view.ColorScale), nil
}

func (s *DashboardService) tolerance(requested *float64) float64 {
	if requested == nil {
		return s.simplifyTolerance
	}
	return *requested
}

// Export builds the view for req and writes it to w in the given format.
// The returned view lets callers name the download.
func (s *DashboardService) Export(ctx context.Context, w io.Writer, format exporter.Format, req domain.SelectionRequest) (*domain.View, error) {
	ctx, span := s.tracer.Start(ctx, "dashboard.export",
		trace.WithAttributes(attribute.String("export.format", string(format))))
	defer span.End()

	view, err := s.View(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.exporter.Export(w, format, view); err != nil {
		infrastructure.RecordError(ctx, err)
		s.metrics.RecordExport(ctx, string(format), false)
		s.logger.ErrorContext(ctx, "export failed",
			slog.String("format", string(format)),
			slog.String("country", view.Selection.Country),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("export %s: %w", format, err)
	}

	s.metrics.RecordExport(ctx, string(format), true)
	s.logger.InfoContext(ctx, "export written",
		slog.String("format", string(format)),
		slog.String("country", view.Selection.Country),
		slog.Int("records", len(view.Records)))
	return view, nil
}
