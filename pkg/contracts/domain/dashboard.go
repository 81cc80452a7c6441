package domain

// GroupKey names the column an aggregation groups by.
type GroupKey string

const (
	GroupByPartner GroupKey = ColumnTradePartner
	GroupByCountry GroupKey = ColumnCountry
)

// Valid reports whether k is a supported grouping column.
func (k GroupKey) Valid() bool {
	return k == GroupByPartner || k == GroupByCountry
}

// FilterSelection is the resolved widget state for one interaction.
// An empty TradeTypes set selects nothing.
type FilterSelection struct {
	Country    string   `json:"country"`
	TradeTypes []string `json:"trade_types"`
}

// SelectionRequest is the raw widget state sent by the presentation layer.
// A nil Country means the country widget was left at its default; a nil
// TradeTypes means every trade type, while an empty non-nil slice means none.
type SelectionRequest struct {
	Country    *string  `json:"country,omitempty" validate:"omitempty,max=128"`
	TradeTypes []string `json:"trade_types" validate:"max=64,dive,max=128"`
}

// AggregateRow is one group of a grouped volume sum.
type AggregateRow struct {
	Key         string  `json:"key"`
	TotalVolume float64 `json:"total_volume"`
}

// MapView is the initial camera of the scatter map.
// Fallback is set when the selection was empty and the default centre was used.
type MapView struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Zoom      float64 `json:"zoom"`
	Pitch     float64 `json:"pitch"`
	Fallback  bool    `json:"fallback"`
}

// MarkerStyle describes how the presentation layer draws scatter markers.
type MarkerStyle struct {
	RadiusMeters float64  `json:"radius_meters"`
	Color        [3]uint8 `json:"color"`
}

// View is everything the presentation layer needs to draw one dashboard state.
type View struct {
	Selection      FilterSelection   `json:"selection"`
	Records        []TradeRecord     `json:"records"`
	PartnerVolumes []AggregateRow    `json:"partner_volumes"`
	CountryVolumes []AggregateRow    `json:"country_volumes"`
	Choropleth     []BoundaryFeature `json:"choropleth"`
	Map            MapView           `json:"map"`
	Marker         MarkerStyle       `json:"marker"`
	ColorScale     string            `json:"color_scale"`
	TotalVolume    float64           `json:"total_volume"`
}

// Bounds is a lon/lat bounding box.
type Bounds struct {
	MinLongitude float64 `json:"min_longitude"`
	MinLatitude  float64 `json:"min_latitude"`
	MaxLongitude float64 `json:"max_longitude"`
	MaxLatitude  float64 `json:"max_latitude"`
}

// DashboardOptions lists the values the filter widgets can take.
type DashboardOptions struct {
	Countries      []string `json:"countries"`
	TradeTypes     []string `json:"trade_types"`
	DefaultCountry string   `json:"default_country"`
	Bounds         *Bounds  `json:"bounds,omitempty"`
	RecordCount    int      `json:"record_count"`
	BoundaryCount  int      `json:"boundary_count"`
}
