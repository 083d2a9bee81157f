package flightclient

import (
	"context"
	"fmt"
	"time"

	"flights/internal/flight"
	"flights/pkg/logger"
)

const AviaOneID flight.ProviderID = 1

// AviaOneClient simulates an upstream that answers slowly with structured times.
type AviaOneClient struct {
	flights []aviaOneFlight
	latency time.Duration
	logger  logger.Client
}

type aviaOneFlight struct {
	GuID                   string
	AviaCompanyName        string
	DepartureAirportName   string
	DepartureTime          *time.Time
	DestinationAirportName string
	DestinationTime        *time.Time
	NumberOfTransfers      int
	TotalAmount            float64
}

func NewAviaOneClient(latency time.Duration, logger logger.Client) *AviaOneClient {
	return &AviaOneClient{
		flights: aviaOneCatalog(time.Now().UTC()),
		latency: latency,
		logger:  logger,
	}
}

func aviaOneCatalog(now time.Time) []aviaOneFlight {
	return []aviaOneFlight{
		{GuID: "ABC123", AviaCompanyName: "Airline A", DepartureAirportName: "Airport X", DepartureTime: hoursFrom(now, 0), DestinationAirportName: "Airport Y", DestinationTime: hoursFrom(now, 3), NumberOfTransfers: 1, TotalAmount: 250},
		{GuID: "GTF689", AviaCompanyName: "Airline D", DepartureAirportName: "Airport Y", DepartureTime: hoursFrom(now, 2), DestinationAirportName: "Airport Z", DestinationTime: hoursFrom(now, 6), NumberOfTransfers: 1, TotalAmount: 440},
		{GuID: "XYZ789", AviaCompanyName: "Airline B", DepartureAirportName: "Airport X", DepartureTime: hoursFrom(now, 4), DestinationAirportName: "Airport Z", DestinationTime: hoursFrom(now, 7), NumberOfTransfers: 2, TotalAmount: 350},
		{GuID: "JHT647", AviaCompanyName: "Airline F", DepartureAirportName: "Airport V", DepartureTime: hoursFrom(now, 3), DestinationAirportName: "Airport X", DestinationTime: hoursFrom(now, 8), NumberOfTransfers: 0, TotalAmount: 310},
		{GuID: "JRY749", AviaCompanyName: "Airline A", DepartureAirportName: "Airport Z", DepartureTime: hoursFrom(now, 1), DestinationAirportName: "Airport Y", DestinationTime: hoursFrom(now, 4), NumberOfTransfers: 1, TotalAmount: 420},
	}
}

func (c *AviaOneClient) ID() flight.ProviderID { return AviaOneID }
func (c *AviaOneClient) Name() string          { return "avia-one" }

func (c *AviaOneClient) FetchOffers(ctx context.Context) ([]flight.Offer, error) {
	if err := simulateLatency(ctx, c.latency); err != nil {
		return nil, fmt.Errorf("aviaone: fetch offers: %w", err)
	}
	return mapAviaOneFlights(c.flights), nil
}

func (c *AviaOneClient) BookOffer(ctx context.Context, offerID string) (flight.Offer, error) {
	if err := simulateLatency(ctx, c.latency); err != nil {
		return flight.Offer{}, fmt.Errorf("aviaone: book %q: %w", offerID, err)
	}
	for _, f := range c.flights {
		if f.GuID == offerID {
			return mapAviaOneFlight(f), nil
		}
	}
	return flight.Offer{}, fmt.Errorf("aviaone: offer %q: %w", offerID, flight.ErrOfferNotFound)
}

func mapAviaOneFlights(flights []aviaOneFlight) []flight.Offer {
	offers := make([]flight.Offer, 0, len(flights))
	for _, f := range flights {
		offers = append(offers, mapAviaOneFlight(f))
	}
	return offers
}

func mapAviaOneFlight(f aviaOneFlight) flight.Offer {
	return flight.Offer{
		ProviderID:       AviaOneID,
		OfferID:          f.GuID,
		CompanyName:      f.AviaCompanyName,
		DepartureAirport: f.DepartureAirportName,
		DepartureTime:    f.DepartureTime,
		ArrivalAirport:   f.DestinationAirportName,
		ArrivalTime:      f.DestinationTime,
		TransferCount:    max(f.NumberOfTransfers, 0),
		Price:            f.TotalAmount,
	}
}
