// Package services implements the business logic layer of the trade dashboard.
// It sits between the HTTP and WebSocket transports and the pure pipeline in
// internal/dashboard.
//
// # Services
//
//   - DashboardService resolves widget state into a FilterSelection, runs the
//     Filter, Aggregate and Join stages over the loaded Dataset and hands the
//     result to exporters. Every call is traced and measured.
//   - HealthService reports liveness, readiness (dataset loaded, counts) and
//     version information.
//
// # Selection Defaults
//
// A SelectionRequest mirrors the dashboard widgets. An absent country resolves
// to the first country in the data. Absent trade types resolve to every trade
// type, while an explicit empty list selects nothing:
//
//	sel, err := svc.ResolveSelection(domain.SelectionRequest{})
//	// sel.Country == first country, sel.TradeTypes == all types
//
// Services never mutate the Dataset, so a single instance is shared by all
// requests without locking.
package services
