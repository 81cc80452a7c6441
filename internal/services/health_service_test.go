package services

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"traderoutes/internal/shared/testutil"
)

type mockHub struct {
	mock.Mock
}

func (m *mockHub) ClientCount() int {
	return m.Called().Int(0)
}

func TestHealthService_ReadinessCheck(t *testing.T) {
	tests := []struct {
		name       string
		loaded     bool
		hub        bool
		wantStatus string
	}{
		{name: "ready with hub", loaded: true, hub: true, wantStatus: StatusReady},
		{name: "ready without hub", loaded: true, wantStatus: StatusReady},
		{name: "no dataset", loaded: false, hub: true, wantStatus: StatusNotReady},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, handler := testutil.NewTestLogger(t)

			var hub ClientCounter
			if tt.hub {
				h := &mockHub{}
				h.On("ClientCount").Return(2)
				hub = h
			}
			hs := NewHealthService("0.1.0", nil, hub, logger)
			if tt.loaded {
				hs = NewHealthService("0.1.0", testutil.LoadSampleDataset(t), hub, logger)
			}

			status := hs.ReadinessCheck(context.Background())
			assert.Equal(t, tt.wantStatus, status.Status)
			assert.Contains(t, status.Services, "dataset")

			if tt.loaded {
				ds := status.Services["dataset"]
				assert.Equal(t, 6, ds.Details["records"])
				assert.Equal(t, 3, ds.Details["boundaries"])
			} else {
				testutil.AssertLogContains(t, handler, slog.LevelWarn, "service not ready")
			}
			if tt.hub {
				assert.Equal(t, 2, status.Services["websocket"].Details["clients"])
			}
		})
	}
}

func TestHealthService_LivenessAndVersion(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	hs := NewHealthService("0.1.0", nil, nil, logger)
	ctx := context.Background()

	assert.Equal(t, StatusOK, hs.HealthCheck(ctx).Status)

	live := hs.LivenessCheck(ctx)
	assert.Equal(t, StatusAlive, live.Status)
	assert.Contains(t, live.Runtime, "goroutines")

	v := hs.Version()
	assert.Equal(t, "0.1.0", v["version"])
	assert.Equal(t, "v1", v["api_version"])
}
