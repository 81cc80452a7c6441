package dashboard

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"

	"traderoutes/pkg/contracts/domain"
)

// Simplify returns copies of features with Douglas-Peucker simplified
// geometry. A tolerance <= 0 returns the features unchanged.
func Simplify(features []domain.BoundaryFeature, tolerance float64) []domain.BoundaryFeature {
	if tolerance <= 0 {
		return features
	}

	s := simplify.DouglasPeucker(tolerance)
	out := make([]domain.BoundaryFeature, len(features))
	for i, f := range features {
		if f.Geometry != nil {
			f.Geometry = s.Simplify(orb.Clone(f.Geometry))
		}
		out[i] = f
	}
	return out
}
