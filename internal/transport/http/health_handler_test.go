package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"traderoutes/internal/services"
	"traderoutes/internal/shared/testutil"
)

func TestHealthHandler(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)

	tests := []struct {
		name       string
		loaded     bool
		path       string
		wantStatus int
	}{
		{name: "health", path: "/api/health", wantStatus: http.StatusOK},
		{name: "live", path: "/api/health/live", wantStatus: http.StatusOK},
		{name: "ready", loaded: true, path: "/api/health/ready", wantStatus: http.StatusOK},
		{name: "not ready", path: "/api/health/ready", wantStatus: http.StatusServiceUnavailable},
		{name: "version", path: "/api/version", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := services.NewHealthService("0.1.0", nil, nil, logger)
			if tt.loaded {
				svc = services.NewHealthService("0.1.0", testutil.LoadSampleDataset(t), nil, logger)
			}
			h := NewHealthHandler(svc, logger)

			r := chi.NewRouter()
			r.Mount("/api/health", h.Routes())
			r.Get("/api/version", h.Version)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
		})
	}
}
