package flight

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flights/pkg/events"
	"flights/pkg/idgen"
	"flights/pkg/logger"
)

const BookedEventType = "offer.booked"

type ServiceConfig struct {
	CacheTTL           time.Duration
	AggregationTimeout time.Duration
	BookingTimeout     time.Duration
}

// BookedEvent is published after a successful booking.
type BookedEvent struct {
	Type       string     `json:"type"`
	Reference  string     `json:"reference"`
	ProviderID ProviderID `json:"providerId"`
	OfferID    string     `json:"offerId"`
	Price      float64    `json:"price"`
	BookedAt   time.Time  `json:"bookedAt"`
}

type Service struct {
	aggregator *Aggregator
	cache      *OfferCache
	dispatcher *Dispatcher
	ids        idgen.Generator
	events     events.Publisher
	cfg        ServiceConfig
	logger     logger.Client
	now        func() time.Time
}

func NewService(
	aggregator *Aggregator,
	cache *OfferCache,
	dispatcher *Dispatcher,
	ids idgen.Generator,
	publisher events.Publisher,
	cfg ServiceConfig,
	log logger.Client,
) *Service {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Service{
		aggregator: aggregator,
		cache:      cache,
		dispatcher: dispatcher,
		ids:        ids,
		events:     publisher,
		cfg:        cfg,
		logger:     log,
		now:        time.Now,
	}
}

// GetAllOffers serves the merged set of every provider, from cache while it is fresh.
func (s *Service) GetAllOffers(ctx context.Context) (*OffersResponse, error) {
	start := time.Now()

	res, hit, err := s.cache.GetOrCompute(ctx, AllOffersCacheKey, s.cfg.CacheTTL, s.aggregate)
	if err != nil {
		return nil, err
	}
	if len(res.Offers) == 0 {
		return nil, ErrNoOffersAvailable
	}

	return &OffersResponse{
		Metadata: s.metadata(res, len(res.Offers), hit, time.Since(start)),
		Offers:   res.Offers,
	}, nil
}

// SearchOffers aggregates fresh and applies the query. An empty filtered result is not an error.
func (s *Service) SearchOffers(ctx context.Context, q QuerySpec) (*OffersResponse, error) {
	if err := q.Validate(); err != nil {
		return nil, NewValidationError(err)
	}

	start := time.Now()
	res, err := s.aggregate(ctx)
	if err != nil {
		return nil, err
	}

	offers := ApplyQuery(res.Offers, q)
	return &OffersResponse{
		Metadata: s.metadata(res, len(offers), false, time.Since(start)),
		Offers:   offers,
	}, nil
}

func (s *Service) BookOffer(ctx context.Context, req BookingRequest) (*Booking, error) {
	if req.OfferID == "" {
		return nil, NewValidationError(errors.New("offerId is required"))
	}

	if s.cfg.BookingTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.BookingTimeout)
		defer cancel()
	}

	offer, err := s.dispatcher.Book(ctx, req.ProviderID, req.OfferID)
	if err != nil {
		return nil, classifyBookingError(req.ProviderID, err)
	}

	booking := &Booking{
		Reference: s.ids.NextReference(),
		Offer:     offer,
		BookedAt:  s.now().UTC(),
	}

	event := BookedEvent{
		Type:       BookedEventType,
		Reference:  booking.Reference,
		ProviderID: offer.ProviderID,
		OfferID:    offer.OfferID,
		Price:      offer.Price,
		BookedAt:   booking.BookedAt,
	}
	if err := s.events.Publish(context.WithoutCancel(ctx), booking.Reference, event); err != nil {
		s.logger.Warn("booking event not published",
			logger.Field{Key: "reference", Value: booking.Reference},
			logger.Err(err),
		)
	}

	return booking, nil
}

// classifyBookingError tags untyped adapter errors as provider failures so the
// transport can tell them apart from internal faults. Sentinels pass through.
func classifyBookingError(id ProviderID, err error) error {
	var provErr *ProviderError
	if errors.Is(err, ErrUnknownProvider) || errors.Is(err, ErrOfferNotFound) || errors.As(err, &provErr) {
		return err
	}
	code := ErrorCodeProviderFailure
	if isContextErr(err) {
		code = ErrorCodeTimeout
	}
	return &ProviderError{
		ProviderID: id,
		Provider:   fmt.Sprintf("provider-%d", id),
		Code:       code,
		Err:        err,
	}
}

// aggregate runs one aggregation under a fresh deadline derived from the caller's ctx.
func (s *Service) aggregate(ctx context.Context) (AggregateResult, error) {
	if s.cfg.AggregationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.AggregationTimeout)
		defer cancel()
	}
	return s.aggregator.Aggregate(ctx)
}

func (s *Service) metadata(res AggregateResult, total int, hit bool, elapsed time.Duration) Metadata {
	succeeded := res.succeeded()
	return Metadata{
		TotalResults:       total,
		ProvidersQueried:   len(res.Outcomes),
		ProvidersSucceeded: succeeded,
		ProvidersFailed:    len(res.Outcomes) - succeeded,
		Providers:          res.Outcomes,
		SearchTimeMs:       elapsed.Milliseconds(),
		CacheHit:           hit,
	}
}
