package dataset

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"traderoutes/pkg/contracts/domain"
)

// NameProperty is the feature property joined against Country.
const NameProperty = "name"

// ParseBoundaries decodes a GeoJSON FeatureCollection into boundary features.
func ParseBoundaries(data []byte) ([]domain.BoundaryFeature, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decode geojson: %w", err)
	}

	features := make([]domain.BoundaryFeature, 0, len(fc.Features))
	for i, f := range fc.Features {
		name, ok := f.Properties[NameProperty].(string)
		if !ok {
			return nil, fmt.Errorf("%w: feature %d has no string %q property", ErrInvalidBoundary, i, NameProperty)
		}

		switch f.Geometry.(type) {
		case orb.Polygon, orb.MultiPolygon:
		case nil:
			return nil, fmt.Errorf("%w: feature %d (%s) has no geometry", ErrInvalidBoundary, i, name)
		default:
			return nil, fmt.Errorf("%w: feature %d (%s) has %s geometry", ErrInvalidBoundary, i, name, f.Geometry.GeoJSONType())
		}

		features = append(features, domain.BoundaryFeature{
			Name:     name,
			Geometry: f.Geometry,
		})
	}
	return features, nil
}
