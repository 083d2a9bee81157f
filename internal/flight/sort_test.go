package flight

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortOffers(t *testing.T) {
	offers := []Offer{
		{OfferID: "a", Price: 300, TransferCount: 2},
		{OfferID: "b", Price: 100, TransferCount: 1},
		{OfferID: "c", Price: 300, TransferCount: 0},
		{OfferID: "d", Price: 100, TransferCount: 1},
		{OfferID: "e", Price: 200, TransferCount: 0},
	}

	tests := []struct {
		name    string
		orderBy string
		want    []string
	}{
		{name: "price is stable", orderBy: "price", want: []string{"b", "d", "e", "a", "c"}},
		{name: "price case insensitive", orderBy: "PRICE", want: []string{"b", "d", "e", "a", "c"}},
		{name: "transfers is stable", orderBy: "transfers", want: []string{"c", "e", "b", "d", "a"}},
		{name: "transfers mixed case", orderBy: "Transfers", want: []string{"c", "e", "b", "d", "a"}},
		{name: "unknown keeps order", orderBy: "duration", want: []string{"a", "b", "c", "d", "e"}},
		{name: "unset keeps order", orderBy: "", want: []string{"a", "b", "c", "d", "e"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sortOffers(offers, tt.orderBy)
			assert.Equal(t, tt.want, ids(got))
		})
	}

	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, ids(offers), "input must stay untouched")
}

func TestSortOffers_PriceNonDecreasing(t *testing.T) {
	got := ApplyQuery(mergedAB(), QuerySpec{OrderBy: OrderByPrice})

	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].Price, got[i].Price)
	}
}

func TestSortOffers_Empty(t *testing.T) {
	assert.Empty(t, sortOffers(nil, OrderByPrice))
}
