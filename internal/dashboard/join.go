package dashboard

import (
	"traderoutes/pkg/contracts/domain"
)

// Join attaches aggregate volumes to boundaries by Name == Key.
// It is a left-outer join: the result has one entry per boundary, in the same
// order, with TradeVolume nil where no row matched. Inputs are not modified.
// If aggregates repeats a key, the first row wins.
func Join(boundaries []domain.BoundaryFeature, aggregates []domain.AggregateRow) []domain.BoundaryFeature {
	volumes := make(map[string]float64, len(aggregates))
	for _, row := range aggregates {
		if _, seen := volumes[row.Key]; !seen {
			volumes[row.Key] = row.TotalVolume
		}
	}

	joined := make([]domain.BoundaryFeature, len(boundaries))
	for i, b := range boundaries {
		b.TradeVolume = nil
		if v, ok := volumes[b.Name]; ok {
			b.TradeVolume = &v
		}
		joined[i] = b
	}
	return joined
}
