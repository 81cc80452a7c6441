package dataset

import (
	"slices"
	"sort"
	"time"

	"github.com/paulmach/orb"

	"traderoutes/pkg/contracts/domain"
)

// Source names the files a Dataset was loaded from.
type Source struct {
	TradeFile    string
	BoundaryFile string
}

// Dataset is the immutable result of loading both input files.
type Dataset struct {
	records    []domain.TradeRecord
	boundaries []domain.BoundaryFeature
	countries  []string
	tradeTypes []string
	countrySet map[string]struct{}
	bounds     *domain.Bounds
	source     Source
	loadedAt   time.Time
}

// New builds a Dataset from already parsed records and boundaries.
// The slices are copied.
func New(records []domain.TradeRecord, boundaries []domain.BoundaryFeature) *Dataset {
	d := &Dataset{
		records:    slices.Clone(records),
		boundaries: slices.Clone(boundaries),
		countrySet: make(map[string]struct{}),
		loadedAt:   time.Now(),
	}

	types := make(map[string]struct{})
	for _, rec := range d.records {
		if _, ok := d.countrySet[rec.Country]; !ok {
			d.countrySet[rec.Country] = struct{}{}
			d.countries = append(d.countries, rec.Country)
		}
		types[rec.TradeType] = struct{}{}
	}

	d.tradeTypes = make([]string, 0, len(types))
	for t := range types {
		d.tradeTypes = append(d.tradeTypes, t)
	}
	sort.Strings(d.tradeTypes)

	d.bounds = boundsOf(d.boundaries)
	return d
}

// Records returns a copy of the trade records in load order.
func (d *Dataset) Records() []domain.TradeRecord {
	return slices.Clone(d.records)
}

// Boundaries returns a copy of the boundary features in file order.
// Geometries are shared and must be treated as read-only.
func (d *Dataset) Boundaries() []domain.BoundaryFeature {
	return slices.Clone(d.boundaries)
}

// Countries returns the distinct countries in first-seen order.
func (d *Dataset) Countries() []string {
	return slices.Clone(d.countries)
}

// TradeTypes returns the distinct trade types, sorted.
func (d *Dataset) TradeTypes() []string {
	return slices.Clone(d.tradeTypes)
}

// DefaultCountry is the first country in the data, or "" for an empty dataset.
func (d *Dataset) DefaultCountry() string {
	if len(d.countries) == 0 {
		return ""
	}
	return d.countries[0]
}

// HasCountry reports whether any record has the given country.
func (d *Dataset) HasCountry(country string) bool {
	_, ok := d.countrySet[country]
	return ok
}

func (d *Dataset) RecordCount() int   { return len(d.records) }
func (d *Dataset) BoundaryCount() int { return len(d.boundaries) }
func (d *Dataset) Source() Source     { return d.source }
func (d *Dataset) LoadedAt() time.Time {
	return d.loadedAt
}

// Options describes the values the filter widgets can take.
func (d *Dataset) Options() domain.DashboardOptions {
	opts := domain.DashboardOptions{
		Countries:      d.Countries(),
		TradeTypes:     d.TradeTypes(),
		DefaultCountry: d.DefaultCountry(),
		RecordCount:    d.RecordCount(),
		BoundaryCount:  d.BoundaryCount(),
	}
	if opts.Countries == nil {
		opts.Countries = []string{}
	}
	if d.bounds != nil {
		b := *d.bounds
		opts.Bounds = &b
	}
	return opts
}

func boundsOf(features []domain.BoundaryFeature) *domain.Bounds {
	var (
		bound orb.Bound
		found bool
	)
	for _, f := range features {
		if f.Geometry == nil {
			continue
		}
		if !found {
			bound = f.Geometry.Bound()
			found = true
			continue
		}
		bound = bound.Union(f.Geometry.Bound())
	}
	if !found {
		return nil
	}
	return &domain.Bounds{
		MinLongitude: bound.Min.Lon(),
		MinLatitude:  bound.Min.Lat(),
		MaxLongitude: bound.Max.Lon(),
		MaxLatitude:  bound.Max.Lat(),
	}
}
