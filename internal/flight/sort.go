package flight

import (
	"sort"
	"strings"
)

// sortOffers returns a stably sorted copy. Unknown orderBy values keep the input order.
func sortOffers(offers []Offer, orderBy string) []Offer {
	sorted := make([]Offer, len(offers))
	copy(sorted, offers)

	switch strings.ToLower(strings.TrimSpace(orderBy)) {
	case OrderByPrice:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Price < sorted[j].Price
		})
	case OrderByTransfers:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].TransferCount < sorted[j].TransferCount
		})
	}

	return sorted
}
