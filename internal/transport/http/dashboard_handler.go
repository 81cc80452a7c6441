package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"traderoutes/internal/dashboard"
	apierrors "traderoutes/internal/errors"
	"traderoutes/internal/exporter"
	"traderoutes/internal/middleware"
	"traderoutes/internal/services"
	api "traderoutes/pkg/contracts/api/v1"
	"traderoutes/pkg/contracts/domain"
)

// MaxSimplifyTolerance bounds the simplify query parameter, in degrees.
const MaxSimplifyTolerance = 10

// DashboardHandler handles dashboard HTTP requests with RFC 7807 compliance
type DashboardHandler struct {
	service      DashboardServiceInterface
	validation   *middleware.ValidationMiddleware
	queries      *middleware.QueryParamValidator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		validation:   middleware.NewValidationMiddleware(logger, errorHandler),
		queries:      middleware.NewQueryParamValidator(logger, errorHandler),
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the dashboard routes
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/options", h.GetOptions)
	r.Get("/view", h.GetView)
	r.With(
		middleware.ContentTypeValidator(h.errorHandler, "application/json"),
		h.validation.ValidateRequest,
	).Post("/view", h.PostView)
	r.Get("/records", h.GetRecords)
	r.Get("/aggregates", h.GetAggregates)
	r.Get("/choropleth", h.GetChoropleth)
	r.Get("/export/{format}", h.GetExport)

	return r
}

// GetOptions handles GET /api/dashboard/options
func (h *DashboardHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := h.service.Options(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, api.NewSuccess(opts))
}

// GetView handles GET /api/dashboard/view
func (h *DashboardHandler) GetView(w http.ResponseWriter, r *http.Request) {
	query, ok := h.parseQuery(w, r)
	if !ok {
		return
	}
	h.renderView(w, r, query.Selection())
}

// PostView handles POST /api/dashboard/view with a SelectionRequest body.
func (h *DashboardHandler) PostView(w http.ResponseWriter, r *http.Request) {
	var req domain.SelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrInvalidRequest)
		return
	}
	if err := h.validation.ValidateStruct(api.QueryFromSelection(req)); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	h.renderView(w, r, req)
}

func (h *DashboardHandler) renderView(w http.ResponseWriter, r *http.Request, req domain.SelectionRequest) {
	view, err := h.service.View(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, api.NewSuccess(view))
}

// GetRecords handles GET /api/dashboard/records
func (h *DashboardHandler) GetRecords(w http.ResponseWriter, r *http.Request) {
	query, ok := h.parseQuery(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Records(r.Context(), query.Selection())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, api.NewSuccess(resp))
}

// GetAggregates handles GET /api/dashboard/aggregates
func (h *DashboardHandler) GetAggregates(w http.ResponseWriter, r *http.Request) {
	query, ok := h.parseQuery(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Aggregates(r.Context(), query.Selection(), domain.GroupKey(query.GroupBy))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, api.NewSuccess(resp))
}

// GetChoropleth handles GET /api/dashboard/choropleth. The body is a bare
// GeoJSON FeatureCollection so map libraries can load it directly.
func (h *DashboardHandler) GetChoropleth(w http.ResponseWriter, r *http.Request) {
	query, ok := h.parseQuery(w, r)
	if !ok {
		return
	}

	fc, err := h.service.Choropleth(r.Context(), query.Selection(), query.Simplify)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		h.errorHandler.HandleError(w, r, fmt.Errorf("marshal choropleth: %w", err))
		return
	}
	w.Header().Set("Content-Type", exporter.FormatGeoJSON.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// GetExport handles GET /api/dashboard/export/{format}
func (h *DashboardHandler) GetExport(w http.ResponseWriter, r *http.Request) {
	format, err := exporter.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	query, ok := h.parseQuery(w, r)
	if !ok {
		return
	}

	// Buffer so a failed export still yields a problem document.
	var buf bytes.Buffer
	view, err := h.service.Export(r.Context(), &buf, format, query.Selection())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", exporter.FileName(view.Selection.Country, format)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// parseQuery reads the selection widgets and per-endpoint options from the
// query string and validates them. It writes the problem response itself.
func (h *DashboardHandler) parseQuery(w http.ResponseWriter, r *http.Request) (api.DashboardQuery, bool) {
	values := r.URL.Query()

	var query api.DashboardQuery
	if v, ok := values[api.ParamCountry]; ok && len(v) > 0 {
		country := strings.TrimSpace(v[0])
		query.Country = &country
	}
	query.TradeTypes = parseTradeTypes(values)

	groupBy, ok := h.queries.ValidateEnum(w, r, api.ParamGroupBy,
		[]string{string(domain.GroupByPartner), string(domain.GroupByCountry)},
		string(domain.GroupByPartner))
	if !ok {
		return query, false
	}
	query.GroupBy = groupBy

	if values.Get(api.ParamSimplify) != "" {
		simplify, ok := h.queries.ValidateFloat(w, r, api.ParamSimplify, 0, MaxSimplifyTolerance, 0)
		if !ok {
			return query, false
		}
		query.Simplify = &simplify
	}

	if err := h.validation.ValidateStruct(query); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return query, false
	}
	return query, true
}

// parseTradeTypes returns nil when the types parameter is absent and a
// non-nil, possibly empty, slice when it is present.
func parseTradeTypes(values url.Values) []string {
	raw, ok := values[api.ParamTypes]
	if !ok {
		return nil
	}

	types := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, v := range raw {
		for _, t := range strings.Split(v, ",") {
			t = strings.TrimSpace(t)
			if t == "" {
				continue
			}
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			types = append(types, t)
		}
	}
	return types
}

// handleServiceError maps service and pipeline errors to API errors.
func (h *DashboardHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrNoDataset):
		h.errorHandler.HandleError(w, r, apierrors.NewWithDetails(
			http.StatusServiceUnavailable,
			apierrors.CodeServiceUnavailable,
			"Trade data is not loaded",
			err.Error(),
		))
	case errors.Is(err, dashboard.ErrUnknownGroupKey):
		h.errorHandler.HandleError(w, r, apierrors.NewWithDetails(
			http.StatusBadRequest,
			apierrors.CodeUnknownGroupKey,
			"Unknown group key",
			map[string]interface{}{"allowed": []domain.GroupKey{domain.GroupByPartner, domain.GroupByCountry}},
		))
	case errors.Is(err, exporter.ErrUnsupportedFormat):
		h.errorHandler.HandleError(w, r, apierrors.NewWithDetails(
			http.StatusBadRequest,
			apierrors.CodeUnsupportedFormat,
			"Unsupported export format",
			map[string]interface{}{"supported": exporter.Formats},
		))
	default:
		h.logger.ErrorContext(r.Context(), "dashboard request failed",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.GetRequestID(r.Context())),
			slog.String("path", r.URL.Path),
		)
		h.errorHandler.HandleError(w, r, err)
	}
}
