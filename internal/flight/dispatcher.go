package flight

import (
	"context"
	"fmt"

	"flights/pkg/logger"
)

// Dispatcher routes a booking to the provider that produced the offer.
type Dispatcher struct {
	registry *Registry
	logger   logger.Client
	metrics  *Metrics
}

func NewDispatcher(registry *Registry, log logger.Client, metrics *Metrics) *Dispatcher {
	if metrics == nil {
		metrics = NewNopMetrics()
	}
	return &Dispatcher{registry: registry, logger: log, metrics: metrics}
}

// Book returns ErrUnknownProvider for an unregistered id. Adapter errors are returned as is.
func (d *Dispatcher) Book(ctx context.Context, providerID ProviderID, offerID string) (Offer, error) {
	p, ok := d.registry.Lookup(providerID)
	if !ok {
		d.logger.Warn("booking rejected, unknown provider", logger.Field{Key: "provider_id", Value: int(providerID)})
		d.metrics.recordBooking(ctx, providerID, ErrUnknownProvider)
		return Offer{}, fmt.Errorf("%w: %d", ErrUnknownProvider, providerID)
	}

	offer, err := p.BookOffer(ctx, offerID)
	d.metrics.recordBooking(ctx, providerID, err)
	if err != nil {
		d.logger.Warn("booking failed",
			logger.Field{Key: "provider", Value: p.Name()},
			logger.Field{Key: "offer_id", Value: offerID},
			logger.Err(err),
		)
		return Offer{}, err
	}

	offer.ProviderID = p.ID()
	d.logger.Info("offer booked",
		logger.Field{Key: "provider", Value: p.Name()},
		logger.Field{Key: "offer_id", Value: offerID},
	)
	return offer, nil
}
