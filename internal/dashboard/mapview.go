package dashboard

import (
	"traderoutes/pkg/contracts/domain"
)

// MapSettings holds the fixed parameters of the scatter map.
type MapSettings struct {
	DefaultLatitude  float64
	DefaultLongitude float64
	Zoom             float64
	Pitch            float64
	Marker           domain.MarkerStyle
	ColorScale       string
}

// DefaultMapSettings centres the map on the Middle East.
func DefaultMapSettings() MapSettings {
	return MapSettings{
		DefaultLatitude:  29.0,
		DefaultLongitude: 45.0,
		Zoom:             5,
		Pitch:            45,
		Marker: domain.MarkerStyle{
			RadiusMeters: 200000,
			Color:        [3]uint8{255, 0, 0},
		},
		ColorScale: "Viridis",
	}
}

// MapCenter returns the mean Latitude/Longitude of subset. The mean of an
// empty subset is undefined, so the default centre is used and Fallback set.
func MapCenter(subset []domain.TradeRecord, settings MapSettings) domain.MapView {
	view := domain.MapView{
		Latitude:  settings.DefaultLatitude,
		Longitude: settings.DefaultLongitude,
		Zoom:      settings.Zoom,
		Pitch:     settings.Pitch,
		Fallback:  true,
	}
	if len(subset) == 0 {
		return view
	}

	var lat, lon float64
	for _, rec := range subset {
		lat += rec.Latitude
		lon += rec.Longitude
	}
	n := float64(len(subset))
	view.Latitude = lat / n
	view.Longitude = lon / n
	view.Fallback = false
	return view
}
