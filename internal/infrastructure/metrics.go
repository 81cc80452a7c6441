package infrastructure

import (
	"context"
	"errors"
	"runtime"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// DashboardMetrics holds all application-specific metrics
type DashboardMetrics struct {
	// HTTP metrics
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
	HTTPActiveRequests  metric.Int64UpDownCounter

	// Dashboard metrics
	ViewsTotal      metric.Int64Counter
	ViewDuration    metric.Float64Histogram
	RecordsSelected metric.Int64Histogram
	ExportsTotal    metric.Int64Counter

	// WebSocket metrics
	WebSocketConnections metric.Int64UpDownCounter
	WebSocketMessages    metric.Int64Counter
}

// CreateDashboardMetrics creates the instruments on meter.
func CreateDashboardMetrics(meter metric.Meter) (*DashboardMetrics, error) {
	var (
		m    DashboardMetrics
		errs []error
		err  error
	)

	m.HTTPRequestsTotal, err = meter.Int64Counter("http_requests_total",
		metric.WithDescription("Total number of HTTP requests"))
	errs = append(errs, err)

	m.HTTPRequestDuration, err = meter.Float64Histogram("http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"))
	errs = append(errs, err)

	m.HTTPActiveRequests, err = meter.Int64UpDownCounter("http_active_requests",
		metric.WithDescription("Number of active HTTP requests"))
	errs = append(errs, err)

	m.ViewsTotal, err = meter.Int64Counter("dashboard_views_total",
		metric.WithDescription("Total number of dashboard views built"))
	errs = append(errs, err)

	m.ViewDuration, err = meter.Float64Histogram("dashboard_view_duration_seconds",
		metric.WithDescription("Time to build a dashboard view in seconds"),
		metric.WithUnit("s"))
	errs = append(errs, err)

	m.RecordsSelected, err = meter.Int64Histogram("dashboard_records_selected",
		metric.WithDescription("Number of trade records selected per view"))
	errs = append(errs, err)

	m.ExportsTotal, err = meter.Int64Counter("dashboard_exports_total",
		metric.WithDescription("Total number of dashboard exports"))
	errs = append(errs, err)

	m.WebSocketConnections, err = meter.Int64UpDownCounter("websocket_connections_active",
		metric.WithDescription("Number of open WebSocket connections"))
	errs = append(errs, err)

	m.WebSocketMessages, err = meter.Int64Counter("websocket_messages_total",
		metric.WithDescription("Total number of WebSocket messages handled"))
	errs = append(errs, err)

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &m, nil
}

// RecordView records one dashboard view build.
func (m *DashboardMetrics) RecordView(ctx context.Context, source string, records int, duration time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("source", source))
	m.ViewsTotal.Add(ctx, 1, attrs)
	m.ViewDuration.Record(ctx, duration.Seconds(), attrs)
	m.RecordsSelected.Record(ctx, int64(records), attrs)
}

// RecordExport records one export in the given format.
func (m *DashboardMetrics) RecordExport(ctx context.Context, format string, success bool) {
	if m == nil {
		return
	}
	status := "success"
	if !success {
		status = "failure"
	}
	m.ExportsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("format", format),
		attribute.String("status", status)))
}

// RecordWebSocketConnection adjusts the open connection count.
func (m *DashboardMetrics) RecordWebSocketConnection(ctx context.Context, delta int64) {
	if m == nil {
		return
	}
	m.WebSocketConnections.Add(ctx, delta)
}

// RecordWebSocketMessage counts a handled message by type.
func (m *DashboardMetrics) RecordWebSocketMessage(ctx context.Context, msgType string) {
	if m == nil {
		return
	}
	m.WebSocketMessages.Add(ctx, 1, metric.WithAttributes(attribute.String("type", msgType)))
}

// RegisterRuntimeMetrics publishes goroutine and heap gauges read at
// collection time.
func RegisterRuntimeMetrics(meter metric.Meter) error {
	goroutines, err := meter.Int64ObservableGauge("system_goroutines",
		metric.WithDescription("Number of active goroutines"))
	if err != nil {
		return err
	}
	heapAlloc, err := meter.Int64ObservableGauge("system_memory_allocated_bytes",
		metric.WithDescription("Heap bytes allocated by the Go runtime"),
		metric.WithUnit("By"))
	if err != nil {
		return err
	}

	_, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		o.ObserveInt64(goroutines, int64(runtime.NumGoroutine()))
		o.ObserveInt64(heapAlloc, int64(ms.HeapAlloc))
		return nil
	}, goroutines, heapAlloc)
	return err
}
