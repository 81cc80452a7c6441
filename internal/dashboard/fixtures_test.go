package dashboard

import (
	"github.com/paulmach/orb"

	"traderoutes/pkg/contracts/domain"
)

func sampleRecords() []domain.TradeRecord {
	return []domain.TradeRecord{
		{Country: "Iraq", TradePartner: "Turkey", TradeType: "Export", TradeVolume: 120.5, Latitude: 33.3, Longitude: 44.4},
		{Country: "Iraq", TradePartner: "Iran", TradeType: "Import", TradeVolume: 80, Latitude: 33.3, Longitude: 44.4},
		{Country: "Iraq", TradePartner: "Turkey", TradeType: "Import", TradeVolume: 40.25, Latitude: 36.2, Longitude: 43.9},
		{Country: "Jordan", TradePartner: "Iraq", TradeType: "Export", TradeVolume: 60, Latitude: 31.9, Longitude: 35.9},
		{Country: "Jordan", TradePartner: "Egypt", TradeType: "Re-export", TradeVolume: 10.1, Latitude: 31.9, Longitude: 35.9},
		{Country: "Kuwait", TradePartner: "Iraq", TradeType: "Export", TradeVolume: 0.2, Latitude: 29.4, Longitude: 47.9},
	}
}

type staticSource struct {
	records    []domain.TradeRecord
	boundaries []domain.BoundaryFeature
}

func (s staticSource) Records() []domain.TradeRecord        { return s.records }
func (s staticSource) Boundaries() []domain.BoundaryFeature { return s.boundaries }

func square(minX, minY, size float64) orb.Polygon {
	return orb.Polygon{orb.Ring{
		{minX, minY}, {minX + size, minY}, {minX + size, minY + size}, {minX, minY + size}, {minX, minY},
	}}
}

func floatPtr(v float64) *float64 { return &v }
