package flightclient

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"flights/internal/flight"
	"flights/pkg/logger"
)

const AviaTwoID flight.ProviderID = 2

// AviaTwoClient simulates a fast upstream whose payload is all strings.
type AviaTwoClient struct {
	flights []aviaTwoFlight
	latency time.Duration
	logger  logger.Client
}

type aviaTwoFlight struct {
	ID                string
	CompanyName       string
	DepAirport        string
	DepTime           string // RFC 3339
	DestAirport       string
	DestTime          string // RFC 3339
	TransfersQuantity int
	FlightCost        string // decimal
}

func NewAviaTwoClient(latency time.Duration, logger logger.Client) *AviaTwoClient {
	return &AviaTwoClient{
		flights: aviaTwoCatalog(time.Now().UTC()),
		latency: latency,
		logger:  logger,
	}
}

func aviaTwoCatalog(now time.Time) []aviaTwoFlight {
	at := func(h int) string { return hoursFrom(now, h).Format(time.RFC3339) }
	return []aviaTwoFlight{
		{ID: "FL001", CompanyName: "Airline A", DepAirport: "JFK", DepTime: at(3), DestAirport: "LHR", DestTime: at(10), TransfersQuantity: 1, FlightCost: "250.50"},
		{ID: "FL002", CompanyName: "Airline B", DepAirport: "ORD", DepTime: at(1), DestAirport: "CDG", DestTime: at(6), TransfersQuantity: 2, FlightCost: "350.00"},
		{ID: "FL003", CompanyName: "Airline C", DepAirport: "LAX", DepTime: at(2), DestAirport: "HKG", DestTime: at(4), TransfersQuantity: 0, FlightCost: "180.00"},
		{ID: "FL004", CompanyName: "Airline D", DepAirport: "DFW", DepTime: at(3), DestAirport: "SYD", DestTime: at(8), TransfersQuantity: 1, FlightCost: "220.25"},
		{ID: "FL005", CompanyName: "Airline E", DepAirport: "ATL", DepTime: at(1), DestAirport: "NRT", DestTime: at(9), TransfersQuantity: 3, FlightCost: "440.80"},
	}
}

func (c *AviaTwoClient) ID() flight.ProviderID { return AviaTwoID }
func (c *AviaTwoClient) Name() string          { return "avia-two" }

func (c *AviaTwoClient) FetchOffers(ctx context.Context) ([]flight.Offer, error) {
	if err := simulateLatency(ctx, c.latency); err != nil {
		return nil, fmt.Errorf("aviatwo: fetch offers: %w", err)
	}
	return c.mapFlights(c.flights), nil
}

func (c *AviaTwoClient) BookOffer(ctx context.Context, offerID string) (flight.Offer, error) {
	if err := simulateLatency(ctx, c.latency); err != nil {
		return flight.Offer{}, fmt.Errorf("aviatwo: book %q: %w", offerID, err)
	}
	for _, f := range c.flights {
		if f.ID != offerID {
			continue
		}
		o, err := mapAviaTwoFlight(f)
		if err != nil {
			return flight.Offer{}, fmt.Errorf("aviatwo: book %q: %w", offerID, err)
		}
		return o, nil
	}
	return flight.Offer{}, fmt.Errorf("aviatwo: offer %q: %w", offerID, flight.ErrOfferNotFound)
}

// mapFlights drops records whose cost cannot be read.
func (c *AviaTwoClient) mapFlights(flights []aviaTwoFlight) []flight.Offer {
	offers := make([]flight.Offer, 0, len(flights))
	for _, f := range flights {
		o, err := mapAviaTwoFlight(f)
		if err != nil {
			c.logger.Warn("aviatwo: skipping flight", logger.Field{Key: "flight_id", Value: f.ID}, logger.Err(err))
			continue
		}
		offers = append(offers, o)
	}
	return offers
}

func mapAviaTwoFlight(f aviaTwoFlight) (flight.Offer, error) {
	price, err := strconv.ParseFloat(f.FlightCost, 64)
	if err != nil {
		return flight.Offer{}, fmt.Errorf("invalid cost %q: %w", f.FlightCost, err)
	}
	if price < 0 {
		return flight.Offer{}, fmt.Errorf("negative cost %q", f.FlightCost)
	}

	return flight.Offer{
		ProviderID:       AviaTwoID,
		OfferID:          f.ID,
		CompanyName:      f.CompanyName,
		DepartureAirport: f.DepAirport,
		DepartureTime:    parseTime(f.DepTime),
		ArrivalAirport:   f.DestAirport,
		ArrivalTime:      parseTime(f.DestTime),
		TransferCount:    max(f.TransfersQuantity, 0),
		Price:            price,
	}, nil
}

// parseTime yields nil for empty or malformed input.
func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}
