package dashboard

import (
	"traderoutes/pkg/contracts/domain"
)

// Filter returns the records whose Country equals sel.Country and whose
// Trade_Type is one of sel.TradeTypes, in input order. An unknown country or
// an empty trade-type set yields an empty, non-nil slice.
func Filter(records []domain.TradeRecord, sel domain.FilterSelection) []domain.TradeRecord {
	types := typeSet(sel.TradeTypes)
	out := make([]domain.TradeRecord, 0)
	if len(types) == 0 {
		return out
	}

	for _, rec := range records {
		if rec.Country != sel.Country {
			continue
		}
		if _, ok := types[rec.TradeType]; ok {
			out = append(out, rec)
		}
	}
	return out
}

// FilterTradeTypes applies only the trade-type predicate, keeping every country.
func FilterTradeTypes(records []domain.TradeRecord, tradeTypes []string) []domain.TradeRecord {
	types := typeSet(tradeTypes)
	out := make([]domain.TradeRecord, 0)
	if len(types) == 0 {
		return out
	}

	for _, rec := range records {
		if _, ok := types[rec.TradeType]; ok {
			out = append(out, rec)
		}
	}
	return out
}

func typeSet(tradeTypes []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tradeTypes))
	for _, t := range tradeTypes {
		set[t] = struct{}{}
	}
	return set
}
