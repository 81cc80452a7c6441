// Package app wires the trade dashboard together and manages its lifecycle.
//
// # Initialization Flow
//
//	1. Load configuration from defaults, the YAML file and the environment
//	2. Initialize logging and OpenTelemetry (tracing, Prometheus metrics)
//	3. Load the trade and boundary files into an immutable Dataset
//	4. Create the dashboard, health and WebSocket services
//	5. Set up HTTP handlers and middleware
//
// A dataset that fails to load fails construction; the caller decides how
// to exit.
//
// # Graceful Shutdown
//
// Run serves until its context is cancelled or SIGINT/SIGTERM arrives. Stop
// then broadcasts server:shutdown to WebSocket clients, drains in-flight HTTP
// requests and flushes the telemetry providers.
package app
