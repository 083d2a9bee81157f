package flightclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"flights/internal/flight"
	"flights/pkg/logger"
)

// RemoteClient talks to an HTTP upstream (see mock/ for the simulated one).
type RemoteClient struct {
	id         flight.ProviderID
	httpClient *http.Client
	baseURL    string
	logger     logger.Client
}

func NewRemoteClient(id flight.ProviderID, httpClient *http.Client, baseURL string, logger logger.Client) *RemoteClient {
	return &RemoteClient{
		id:         id,
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger,
	}
}

type remoteOffersResponse struct {
	Offers []remoteOffer `json:"offers"`
}

type remoteOffer struct {
	ID        string     `json:"id"`
	Carrier   string     `json:"carrier"`
	From      string     `json:"from"`
	To        string     `json:"to"`
	DepartsAt string     `json:"departs_at"`
	ArrivesAt string     `json:"arrives_at"`
	Stops     int        `json:"stops"`
	Fare      remoteFare `json:"fare"`
}

type remoteFare struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

func (c *RemoteClient) ID() flight.ProviderID { return c.id }
func (c *RemoteClient) Name() string          { return "remote" }

func (c *RemoteClient) FetchOffers(ctx context.Context) ([]flight.Offer, error) {
	endpoint := c.baseURL + "/v1/offers"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("remote: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote: fetch offers: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("remote: fetch offers: unexpected status %d", resp.StatusCode)
	}

	var apiResp remoteOffersResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("remote: decode offers: %w", err)
	}

	return c.mapOffers(apiResp.Offers), nil
}

func (c *RemoteClient) BookOffer(ctx context.Context, offerID string) (flight.Offer, error) {
	endpoint := fmt.Sprintf("%s/v1/offers/%s/book", c.baseURL, url.PathEscape(offerID))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return flight.Offer{}, fmt.Errorf("remote: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return flight.Offer{}, fmt.Errorf("remote: book %q: %w", offerID, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return flight.Offer{}, fmt.Errorf("remote: offer %q: %w", offerID, flight.ErrOfferNotFound)
	default:
		return flight.Offer{}, fmt.Errorf("remote: book %q: unexpected status %d", offerID, resp.StatusCode)
	}

	var o remoteOffer
	if err := json.NewDecoder(resp.Body).Decode(&o); err != nil {
		return flight.Offer{}, fmt.Errorf("remote: decode booking: %w", err)
	}
	return c.mapOffer(o), nil
}

func (c *RemoteClient) mapOffers(raw []remoteOffer) []flight.Offer {
	offers := make([]flight.Offer, 0, len(raw))
	for _, o := range raw {
		if o.Fare.Amount < 0 {
			c.logger.Warn("remote: skipping offer with negative fare", logger.Field{Key: "offer_id", Value: o.ID})
			continue
		}
		offers = append(offers, c.mapOffer(o))
	}
	return offers
}

func (c *RemoteClient) mapOffer(o remoteOffer) flight.Offer {
	return flight.Offer{
		ProviderID:       c.id,
		OfferID:          o.ID,
		CompanyName:      o.Carrier,
		DepartureAirport: o.From,
		DepartureTime:    parseTime(o.DepartsAt),
		ArrivalAirport:   o.To,
		ArrivalTime:      parseTime(o.ArrivesAt),
		TransferCount:    max(o.Stops, 0),
		Price:            o.Fare.Amount,
	}
}
