package dashboard

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"traderoutes/pkg/contracts/domain"
)

// ErrUnknownGroupKey is returned when a grouping column is not supported.
var ErrUnknownGroupKey = errors.New("unknown group key")

// Aggregate groups subset by key and sums Trade_Volume per group.
// Sums are accumulated in decimal so a group total does not depend on record
// order. Rows are sorted by Key; an empty subset gives an empty slice.
func Aggregate(subset []domain.TradeRecord, key domain.GroupKey) ([]domain.AggregateRow, error) {
	keyOf, err := keyFunc(key)
	if err != nil {
		return nil, err
	}

	sums := make(map[string]decimal.Decimal)
	for _, rec := range subset {
		k := keyOf(rec)
		sums[k] = sums[k].Add(decimal.NewFromFloat(rec.TradeVolume))
	}

	keys := make([]string, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]domain.AggregateRow, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, domain.AggregateRow{
			Key:         k,
			TotalVolume: sums[k].InexactFloat64(),
		})
	}
	return rows, nil
}

// TotalVolume returns the exact decimal sum of Trade_Volume over records.
func TotalVolume(records []domain.TradeRecord) float64 {
	total := decimal.Zero
	for _, rec := range records {
		total = total.Add(decimal.NewFromFloat(rec.TradeVolume))
	}
	return total.InexactFloat64()
}

func keyFunc(key domain.GroupKey) (func(domain.TradeRecord) string, error) {
	switch key {
	case domain.GroupByPartner:
		return func(r domain.TradeRecord) string { return r.TradePartner }, nil
	case domain.GroupByCountry:
		return func(r domain.TradeRecord) string { return r.Country }, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGroupKey, key)
	}
}
