package http

import (
	"context"
	"io"

	"github.com/paulmach/orb/geojson"

	"traderoutes/internal/exporter"
	api "traderoutes/pkg/contracts/api/v1"
	"traderoutes/pkg/contracts/domain"
)

// DashboardServiceInterface defines the dashboard operations the handlers need
type DashboardServiceInterface interface {
	Options(ctx context.Context) (domain.DashboardOptions, error)
	View(ctx context.Context, req domain.SelectionRequest) (*domain.View, error)
	Records(ctx context.Context, req domain.SelectionRequest) (api.RecordsResponse, error)
	Aggregates(ctx context.Context, req domain.SelectionRequest, key domain.GroupKey) (api.AggregatesResponse, error)
	Choropleth(ctx context.Context, req domain.SelectionRequest, tolerance *float64) (*geojson.FeatureCollection, error)
	Export(ctx context.Context, w io.Writer, format exporter.Format, req domain.SelectionRequest) (*domain.View, error)
}
