package flight

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"flights/pkg/logger"
)

// Aggregator fans a fetch out to every registered provider and merges whatever comes back.
// A failing or slow provider is recorded and dropped from the merge; it never fails the others.
type Aggregator struct {
	registry        *Registry
	providerTimeout time.Duration
	logger          logger.Client
	metrics         *Metrics
	tracer          trace.Tracer
}

func NewAggregator(registry *Registry, providerTimeout time.Duration, log logger.Client, metrics *Metrics) *Aggregator {
	if metrics == nil {
		metrics = NewNopMetrics()
	}
	return &Aggregator{
		registry:        registry,
		providerTimeout: providerTimeout,
		logger:          log,
		metrics:         metrics,
		tracer:          otel.Tracer(instrumentationName),
	}
}

type fetchResult struct {
	offers  []Offer
	outcome ProviderOutcome
}

// Aggregate queries all providers under the deadline carried by ctx. It returns
// ErrNoOffersAvailable when the merge is empty; if ctx expired on the way, the
// error also matches ctx.Err().
func (a *Aggregator) Aggregate(ctx context.Context) (AggregateResult, error) {
	start := time.Now()
	ctx, span := a.tracer.Start(ctx, "flight.Aggregate",
		trace.WithAttributes(attribute.Int("providers", a.registry.Len())))
	defer span.End()

	providers := a.registry.All()
	a.logger.Info("aggregation started", logger.Field{Key: "providers", Value: len(providers)})

	results := make([]fetchResult, len(providers))
	// Failures land in each provider's outcome; no goroutine returns an error.
	var g errgroup.Group
	for i, p := range providers {
		g.Go(func() error {
			results[i] = a.fetch(ctx, p)
			return nil
		})
	}
	_ = g.Wait()

	res := AggregateResult{Outcomes: make([]ProviderOutcome, 0, len(results))}
	for _, r := range results {
		res.Offers = append(res.Offers, r.offers...)
		res.Outcomes = append(res.Outcomes, r.outcome)
	}
	res.Duration = time.Since(start)

	succeeded := res.succeeded()
	span.SetAttributes(
		attribute.Int("offers", len(res.Offers)),
		attribute.Int("providers.succeeded", succeeded),
	)
	a.logger.Info("aggregation finished",
		logger.Field{Key: "offers", Value: len(res.Offers)},
		logger.Field{Key: "succeeded", Value: succeeded},
		logger.Field{Key: "failed", Value: len(res.Outcomes) - succeeded},
		logger.Field{Key: "elapsed", Value: res.Duration},
	)

	if len(res.Offers) == 0 {
		err := ErrNoOffersAvailable
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w: %w", ErrNoOffersAvailable, ctxErr)
		}
		span.SetStatus(codes.Error, err.Error())
		return res, err
	}
	return res, nil
}

func (a *Aggregator) fetch(ctx context.Context, p Provider) fetchResult {
	outcome := ProviderOutcome{ProviderID: p.ID(), Provider: p.Name()}
	log := a.logger.With(
		logger.Field{Key: "provider", Value: p.Name()},
		logger.Field{Key: "provider_id", Value: int(p.ID())},
	)

	// global deadline already gone: don't start the call at all
	if err := ctx.Err(); err != nil {
		provErr := newProviderError(p, err)
		outcome.Status = ProviderStatusTimeout
		outcome.Code = provErr.Code
		outcome.Error = provErr.Error()
		log.Warn("provider skipped, aggregation deadline elapsed", logger.Err(err))
		a.metrics.recordProvider(ctx, outcome, 0)
		return fetchResult{outcome: outcome}
	}

	callCtx := ctx
	if a.providerTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, a.providerTimeout)
		defer cancel()
	}

	callCtx, span := a.tracer.Start(callCtx, "flight.Provider.FetchOffers",
		trace.WithAttributes(attribute.String("provider", p.Name())))
	defer span.End()

	start := time.Now()
	offers, err := p.FetchOffers(callCtx)
	elapsed := time.Since(start)
	outcome.DurationMs = elapsed.Milliseconds()

	if err != nil {
		provErr := newProviderError(p, err)
		outcome.Code = provErr.Code
		outcome.Error = provErr.Error()
		if provErr.Timeout() {
			outcome.Status = ProviderStatusTimeout
			log.Warn("provider timed out", logger.Err(err), logger.Field{Key: "elapsed", Value: elapsed})
		} else {
			outcome.Status = ProviderStatusFailed
			log.Error("provider failed", logger.Err(err), logger.Field{Key: "elapsed", Value: elapsed})
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, provErr.Error())
		a.metrics.recordProvider(ctx, outcome, elapsed)
		return fetchResult{outcome: outcome}
	}

	stamped := make([]Offer, len(offers))
	for i, o := range offers {
		o.ProviderID = p.ID()
		stamped[i] = o
	}

	outcome.Status = ProviderStatusSuccess
	outcome.Offers = len(stamped)
	span.SetAttributes(attribute.Int("offers", len(stamped)))
	log.Debug("provider responded",
		logger.Field{Key: "offers", Value: len(stamped)},
		logger.Field{Key: "elapsed", Value: elapsed},
	)
	a.metrics.recordProvider(ctx, outcome, elapsed)
	return fetchResult{offers: stamped, outcome: outcome}
}
