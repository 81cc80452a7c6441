package exporter

import (
	"fmt"
	"io"

	"github.com/paulmach/orb/geojson"

	"traderoutes/pkg/contracts/domain"
)

// ChoroplethCollection converts joined boundaries into a FeatureCollection
// with "name" and "Trade_Volume" properties. A nil volume is written as null.
func ChoroplethCollection(features []domain.BoundaryFeature, colorScale string) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, b := range features {
		f := geojson.NewFeature(b.Geometry)
		f.Properties["name"] = b.Name
		if b.TradeVolume != nil {
			f.Properties[domain.ColumnTradeVolume] = *b.TradeVolume
		} else {
			f.Properties[domain.ColumnTradeVolume] = nil
		}
		fc.Append(f)
	}
	if colorScale != "" {
		fc.ExtraMembers = geojson.Properties{"color_scale": colorScale}
	}
	return fc
}

// WriteGeoJSON writes the choropleth collection to w.
func WriteGeoJSON(w io.Writer, features []domain.BoundaryFeature, colorScale string) error {
	data, err := ChoroplethCollection(features, colorScale).MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal geojson: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write geojson: %w", err)
	}
	return nil
}
