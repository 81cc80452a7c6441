// Package dashboard implements the data pipeline behind the trade dashboard.
//
// Every function here is a pure transformation over immutable inputs:
//
//	records ──Filter──▶ subset ──Aggregate(Trade_Partner)──▶ bar chart rows
//	records ──FilterTradeTypes──▶ Aggregate(Country) ──Join(boundaries)──▶ choropleth
//	subset  ──MapCenter──▶ initial map camera
//
// Build composes the stages into a single View for one FilterSelection. It is
// called once per interaction by the HTTP and WebSocket transports; nothing in
// this package holds state between calls.
package dashboard
