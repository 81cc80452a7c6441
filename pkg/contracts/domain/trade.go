package domain

import (
	"github.com/paulmach/orb"
)

// TradeRecord is a single row of the trade data file.
// Records are immutable once loaded; JSON names follow the source columns.
type TradeRecord struct {
	Country      string  `json:"Country" validate:"required"`
	TradePartner string  `json:"Trade_Partner" validate:"required"`
	TradeType    string  `json:"Trade_Type" validate:"required"`
	TradeVolume  float64 `json:"Trade_Volume" validate:"gte=0"`
	Latitude     float64 `json:"Latitude" validate:"gte=-90,lte=90"`
	Longitude    float64 `json:"Longitude" validate:"gte=-180,lte=180"`
}

// BoundaryFeature is one country polygon from the boundary file.
// TradeVolume is nil until a join supplies a value for Name.
type BoundaryFeature struct {
	Name        string       `json:"name"`
	Geometry    orb.Geometry `json:"-"`
	TradeVolume *float64     `json:"Trade_Volume"`
}

// Column names of the trade data file.
const (
	ColumnCountry      = "Country"
	ColumnTradePartner = "Trade_Partner"
	ColumnTradeType    = "Trade_Type"
	ColumnTradeVolume  = "Trade_Volume"
	ColumnLatitude     = "Latitude"
	ColumnLongitude    = "Longitude"
)

// TradeColumns lists the required columns in canonical order.
var TradeColumns = []string{
	ColumnCountry,
	ColumnTradePartner,
	ColumnTradeType,
	ColumnTradeVolume,
	ColumnLatitude,
	ColumnLongitude,
}
