package flight

import (
	"context"
	"errors"
	"fmt"
)

// Provider is implemented by every upstream adapter. FetchOffers must honor ctx and
// surface its expiry as a wrapped context error. BookOffer returns ErrOfferNotFound
// when offerID is not one of its own offers.
type Provider interface {
	ID() ProviderID
	Name() string
	FetchOffers(ctx context.Context) ([]Offer, error)
	BookOffer(ctx context.Context, offerID string) (Offer, error)
}

// Registry is the immutable set of adapters, kept in registration order.
type Registry struct {
	providers []Provider
	byID      map[ProviderID]Provider
}

func NewRegistry(providers ...Provider) (*Registry, error) {
	r := &Registry{
		providers: make([]Provider, 0, len(providers)),
		byID:      make(map[ProviderID]Provider, len(providers)),
	}
	for _, p := range providers {
		if p == nil {
			return nil, errors.New("flight: nil provider")
		}
		if existing, ok := r.byID[p.ID()]; ok {
			return nil, fmt.Errorf("flight: provider id %d registered twice (%s, %s)", p.ID(), existing.Name(), p.Name())
		}
		r.providers = append(r.providers, p)
		r.byID[p.ID()] = p
	}
	return r, nil
}

func (r *Registry) All() []Provider {
	return r.providers
}

func (r *Registry) Lookup(id ProviderID) (Provider, bool) {
	p, ok := r.byID[id]
	return p, ok
}

func (r *Registry) Len() int {
	return len(r.providers)
}
