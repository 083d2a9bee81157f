package flight

import (
	"errors"
	"time"
)

// ProviderID identifies the upstream an offer came from. It is the key used to route bookings.
type ProviderID int

type ErrorCode string

const (
	ErrorCodeTimeout         ErrorCode = "TIMEOUT"
	ErrorCodeProviderFailure ErrorCode = "PROVIDER_FAILURE"
	ErrorCodeInternalFailure ErrorCode = "INTERNAL_FAILURE"
	ErrorCodeValidation      ErrorCode = "VALIDATION_ERROR"
	ErrorCodeNoOffers        ErrorCode = "NO_OFFERS_AVAILABLE"
	ErrorCodeUnknownProvider ErrorCode = "UNKNOWN_PROVIDER"
	ErrorCodeOfferNotFound   ErrorCode = "OFFER_NOT_FOUND"
)

const (
	OrderByPrice     = "price"
	OrderByTransfers = "transfers"
)

// Offer is the canonical flight shape every provider is mapped into.
type Offer struct {
	ProviderID       ProviderID `json:"providerId"`
	OfferID          string     `json:"offerId"`
	CompanyName      string     `json:"companyName"`
	DepartureAirport string     `json:"departureAirport"`
	DepartureTime    *time.Time `json:"departureTime"`
	ArrivalAirport   string     `json:"arrivalAirport"`
	ArrivalTime      *time.Time `json:"arrivalTime"`
	TransferCount    int        `json:"transferCount"`
	Price            float64    `json:"price"`
}

// QuerySpec narrows and orders a merged offer set. Empty strings and nil bounds are pass-through.
type QuerySpec struct {
	CompanyName      string   `form:"companyName" json:"companyName,omitempty"`
	DepartureAirport string   `form:"departureAirport" json:"departureAirport,omitempty"`
	ArrivalAirport   string   `form:"arrivalAirport" json:"arrivalAirport,omitempty"`
	MinPrice         *float64 `form:"minPrice" json:"minPrice,omitempty" binding:"omitempty,gte=0"`
	MaxPrice         *float64 `form:"maxPrice" json:"maxPrice,omitempty" binding:"omitempty,gte=0"`
	OrderBy          string   `form:"orderBy" json:"orderBy,omitempty"`
}

func (q QuerySpec) Validate() error {
	if q.MinPrice != nil && q.MaxPrice != nil && *q.MinPrice > *q.MaxPrice {
		return errors.New("minPrice must not be greater than maxPrice")
	}
	return nil
}

type BookingRequest struct {
	ProviderID ProviderID `json:"providerId" binding:"required"`
	OfferID    string     `json:"offerId" binding:"required"`
}

// Booking confirms a booked offer. Nothing is persisted; the reference only correlates logs and events.
type Booking struct {
	Reference string    `json:"reference"`
	Offer     Offer     `json:"offer"`
	BookedAt  time.Time `json:"bookedAt"`
}

type ProviderStatus string

const (
	ProviderStatusSuccess ProviderStatus = "success"
	ProviderStatusFailed  ProviderStatus = "failed"
	ProviderStatusTimeout ProviderStatus = "timeout"
)

// ProviderOutcome records how one adapter fared during an aggregation.
type ProviderOutcome struct {
	ProviderID ProviderID     `json:"providerId"`
	Provider   string         `json:"provider"`
	Status     ProviderStatus `json:"status"`
	Offers     int            `json:"offers"`
	DurationMs int64          `json:"durationMs"`
	Code       ErrorCode      `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
}

type AggregateResult struct {
	Offers   []Offer
	Outcomes []ProviderOutcome
	Duration time.Duration
}

func (r AggregateResult) succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == ProviderStatusSuccess {
			n++
		}
	}
	return n
}

type Metadata struct {
	TotalResults       int               `json:"totalResults"`
	ProvidersQueried   int               `json:"providersQueried"`
	ProvidersSucceeded int               `json:"providersSucceeded"`
	ProvidersFailed    int               `json:"providersFailed"`
	Providers          []ProviderOutcome `json:"providers,omitempty"`
	SearchTimeMs       int64             `json:"searchTimeMs"`
	CacheHit           bool              `json:"cacheHit"`
}

type OffersResponse struct {
	Metadata Metadata `json:"metadata"`
	Offers   []Offer  `json:"offers"`
}
