// Package api contains the HTTP request and response contracts of the dashboard.
// Version v1 represents the current stable API version.
package api

import (
	"traderoutes/pkg/contracts/domain"
)

// Query parameter names
const (
	ParamCountry  = "country"
	ParamTypes    = "types"
	ParamGroupBy  = "group_by"
	ParamSimplify = "simplify"
	ParamFormat   = "format"
)

// DashboardQuery is the parsed query string of the dashboard endpoints.
// TradeTypes is nil when the types parameter was absent. Simplify is nil
// when the simplify parameter was absent.
type DashboardQuery struct {
	Country    *string  `json:"country,omitempty" validate:"omitempty,max=128,printable"`
	TradeTypes []string `json:"types,omitempty" validate:"max=64,dive,max=128,printable"`
	GroupBy    string   `json:"group_by,omitempty" validate:"omitempty,oneof=Trade_Partner Country"`
	Simplify   *float64 `json:"simplify,omitempty" validate:"omitempty,gte=0,lte=10"`
}

// Selection returns the widget state the query describes.
func (q DashboardQuery) Selection() domain.SelectionRequest {
	return domain.SelectionRequest{Country: q.Country, TradeTypes: q.TradeTypes}
}

// QueryFromSelection lifts a widget state sent as JSON into a query so both
// transports validate the same way.
func QueryFromSelection(req domain.SelectionRequest) DashboardQuery {
	return DashboardQuery{Country: req.Country, TradeTypes: req.TradeTypes}
}

// Response is the success envelope of every JSON endpoint.
type Response struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data"`
}

// RecordsResponse is the payload of the records endpoint.
type RecordsResponse struct {
	Country string               `json:"country"`
	Count   int                  `json:"count"`
	Records []domain.TradeRecord `json:"records"`
	Marker  domain.MarkerStyle   `json:"marker"`
	Map     domain.MapView       `json:"map"`
}

// AggregatesResponse is the payload of the aggregates endpoint.
type AggregatesResponse struct {
	GroupBy     domain.GroupKey       `json:"group_by"`
	Rows        []domain.AggregateRow `json:"rows"`
	TotalVolume float64               `json:"total_volume"`
}

// NewSuccess wraps data in the success envelope.
func NewSuccess(data interface{}) Response {
	return Response{Status: "success", Data: data}
}
