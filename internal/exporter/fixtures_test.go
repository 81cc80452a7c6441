package exporter

import (
	"github.com/paulmach/orb"

	"traderoutes/pkg/contracts/domain"
)

func sampleView() *domain.View {
	vol := 120.5
	return &domain.View{
		Selection: domain.FilterSelection{Country: "Iraq", TradeTypes: []string{"Export"}},
		Records: []domain.TradeRecord{
			{Country: "Iraq", TradePartner: "Turkey", TradeType: "Export", TradeVolume: 120.5, Latitude: 33.3, Longitude: 44.4},
		},
		PartnerVolumes: []domain.AggregateRow{{Key: "Turkey", TotalVolume: 120.5}},
		CountryVolumes: []domain.AggregateRow{{Key: "Iraq", TotalVolume: 120.5}, {Key: "Jordan", TotalVolume: 60}},
		Choropleth: []domain.BoundaryFeature{
			{Name: "Iraq", Geometry: orb.Polygon{orb.Ring{{39, 29}, {48, 29}, {48, 37}, {39, 29}}}, TradeVolume: &vol},
			{Name: "Syria", Geometry: orb.Polygon{orb.Ring{{36, 32}, {42, 32}, {42, 37}, {36, 32}}}},
		},
		ColorScale:  "Viridis",
		TotalVolume: 120.5,
	}
}
