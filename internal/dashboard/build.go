package dashboard

import (
	"fmt"

	"traderoutes/pkg/contracts/domain"
)

// Source is the read-only dataset a View is built from.
type Source interface {
	Records() []domain.TradeRecord
	Boundaries() []domain.BoundaryFeature
}

// Build runs the whole pipeline for one selection.
func Build(src Source, sel domain.FilterSelection, settings MapSettings) (*domain.View, error) {
	records := src.Records()
	subset := Filter(records, sel)

	partners, err := Aggregate(subset, domain.GroupByPartner)
	if err != nil {
		return nil, fmt.Errorf("aggregate partners: %w", err)
	}

	countries, err := Aggregate(FilterTradeTypes(records, sel.TradeTypes), domain.GroupByCountry)
	if err != nil {
		return nil, fmt.Errorf("aggregate countries: %w", err)
	}

	return &domain.View{
		Selection:      sel,
		Records:        subset,
		PartnerVolumes: partners,
		CountryVolumes: countries,
		Choropleth:     Join(src.Boundaries(), countries),
		Map:            MapCenter(subset, settings),
		Marker:         settings.Marker,
		ColorScale:     settings.ColorScale,
		TotalVolume:    TotalVolume(subset),
	}, nil
}
