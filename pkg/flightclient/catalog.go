package flightclient

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"flights/internal/flight"
	"flights/pkg/logger"
)

// CatalogClient serves a fixed set of offers declared in a YAML file, so extra
// providers can be registered through configuration alone.
type CatalogClient struct {
	id      flight.ProviderID
	name    string
	latency time.Duration
	offers  []flight.Offer
	logger  logger.Client
}

type catalogFile struct {
	Provider catalogProvider `yaml:"provider"`
	Offers   []catalogOffer  `yaml:"offers"`
}

type catalogProvider struct {
	ID      int           `yaml:"id"`
	Name    string        `yaml:"name"`
	Latency time.Duration `yaml:"latency"`
}

type catalogOffer struct {
	ID        string     `yaml:"id"`
	Company   string     `yaml:"company"`
	From      string     `yaml:"from"`
	To        string     `yaml:"to"`
	Departure *time.Time `yaml:"departure"`
	Arrival   *time.Time `yaml:"arrival"`
	Transfers int        `yaml:"transfers"`
	Price     float64    `yaml:"price"`
}

func LoadCatalogClient(path string, log logger.Client) (*CatalogClient, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	c, err := NewCatalogClient(data, log)
	if err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", path, err)
	}
	log.Info("catalog provider loaded",
		logger.Field{Key: "provider", Value: c.name},
		logger.Field{Key: "provider_id", Value: int(c.id)},
		logger.Field{Key: "offers", Value: len(c.offers)},
	)
	return c, nil
}

func NewCatalogClient(data []byte, log logger.Client) (*CatalogClient, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if err := file.validate(); err != nil {
		return nil, err
	}

	id := flight.ProviderID(file.Provider.ID)
	offers := make([]flight.Offer, 0, len(file.Offers))
	for _, o := range file.Offers {
		offers = append(offers, flight.Offer{
			ProviderID:       id,
			OfferID:          o.ID,
			CompanyName:      o.Company,
			DepartureAirport: o.From,
			DepartureTime:    o.Departure,
			ArrivalAirport:   o.To,
			ArrivalTime:      o.Arrival,
			TransferCount:    o.Transfers,
			Price:            o.Price,
		})
	}

	return &CatalogClient{
		id:      id,
		name:    file.Provider.Name,
		latency: file.Provider.Latency,
		offers:  offers,
		logger:  log,
	}, nil
}

func (f catalogFile) validate() error {
	var errs []error
	if f.Provider.ID <= 0 {
		errs = append(errs, errors.New("provider.id must be positive"))
	}
	if f.Provider.Name == "" {
		errs = append(errs, errors.New("provider.name is required"))
	}

	seen := make(map[string]struct{}, len(f.Offers))
	for i, o := range f.Offers {
		if o.ID == "" {
			errs = append(errs, fmt.Errorf("offers[%d]: id is required", i))
			continue
		}
		if _, dup := seen[o.ID]; dup {
			errs = append(errs, fmt.Errorf("offers[%d]: duplicate id %q", i, o.ID))
		}
		seen[o.ID] = struct{}{}
		if o.Price < 0 {
			errs = append(errs, fmt.Errorf("offers[%d]: negative price", i))
		}
		if o.Transfers < 0 {
			errs = append(errs, fmt.Errorf("offers[%d]: negative transfers", i))
		}
	}
	return errors.Join(errs...)
}

func (c *CatalogClient) ID() flight.ProviderID { return c.id }
func (c *CatalogClient) Name() string          { return c.name }

func (c *CatalogClient) FetchOffers(ctx context.Context) ([]flight.Offer, error) {
	if err := simulateLatency(ctx, c.latency); err != nil {
		return nil, fmt.Errorf("%s: fetch offers: %w", c.name, err)
	}
	offers := make([]flight.Offer, len(c.offers))
	copy(offers, c.offers)
	return offers, nil
}

func (c *CatalogClient) BookOffer(ctx context.Context, offerID string) (flight.Offer, error) {
	if err := simulateLatency(ctx, c.latency); err != nil {
		return flight.Offer{}, fmt.Errorf("%s: book %q: %w", c.name, offerID, err)
	}
	for _, o := range c.offers {
		if o.OfferID == offerID {
			return o, nil
		}
	}
	return flight.Offer{}, fmt.Errorf("%s: offer %q: %w", c.name, offerID, flight.ErrOfferNotFound)
}
