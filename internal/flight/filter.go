package flight

// ApplyQuery filters then orders offers. The input slice is never modified.
func ApplyQuery(offers []Offer, q QuerySpec) []Offer {
	return sortOffers(filterOffers(offers, q), q.OrderBy)
}

// filterContext holds the query so the per-offer check stays allocation free
type filterContext struct {
	q QuerySpec
}

func filterOffers(offers []Offer, q QuerySpec) []Offer {
	fc := filterContext{q: q}

	filtered := make([]Offer, 0, len(offers))
	for _, o := range offers {
		if fc.matches(o) {
			filtered = append(filtered, o)
		}
	}
	return filtered
}

// matches returns true only if every present filter passes
func (fc filterContext) matches(o Offer) bool {
	if fc.q.CompanyName != "" && o.CompanyName != fc.q.CompanyName {
		return false
	}
	if fc.q.DepartureAirport != "" && o.DepartureAirport != fc.q.DepartureAirport {
		return false
	}
	if fc.q.ArrivalAirport != "" && o.ArrivalAirport != fc.q.ArrivalAirport {
		return false
	}

	// Price bounds are inclusive
	if fc.q.MinPrice != nil && o.Price < *fc.q.MinPrice {
		return false
	}
	if fc.q.MaxPrice != nil && o.Price > *fc.q.MaxPrice {
		return false
	}

	return true
}
