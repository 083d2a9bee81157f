package flightclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flights/internal/flight"
	"flights/pkg/logger"
)

const remoteOffersBody = `{"offers":[
 {"id":"R1","carrier":"Airline R","from":"AMS","to":"BCN","departs_at":"2025-11-01T06:00:00Z","arrives_at":"2025-11-01T08:10:00Z","stops":0,"fare":{"amount":129.5,"currency":"EUR"}},
 {"id":"R2","carrier":"Airline R","from":"BCN","to":"AMS","departs_at":"","arrives_at":"","stops":1,"fare":{"amount":-1,"currency":"EUR"}}
]}`

func newRemoteServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/offers", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(remoteOffersBody))
	})
	mux.HandleFunc("POST /v1/offers/{id}/book", func(w http.ResponseWriter, r *http.Request) {
		switch r.PathValue("id") {
		case "R1":
			_, _ = w.Write([]byte(`{"id":"R1","carrier":"Airline R","from":"AMS","to":"BCN","stops":0,"fare":{"amount":129.5,"currency":"EUR"}}`))
		case "BROKEN":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRemoteClient_FetchOffers(t *testing.T) {
	srv := newRemoteServer(t)
	c := NewRemoteClient(3, srv.Client(), srv.URL+"/", logger.NewNop())

	offers, err := c.FetchOffers(context.Background())

	require.NoError(t, err)
	require.Len(t, offers, 1, "negative fare is dropped")
	assert.Equal(t, flight.Offer{
		ProviderID:       3,
		OfferID:          "R1",
		CompanyName:      "Airline R",
		DepartureAirport: "AMS",
		DepartureTime:    parseTime("2025-11-01T06:00:00Z"),
		ArrivalAirport:   "BCN",
		ArrivalTime:      parseTime("2025-11-01T08:10:00Z"),
		TransferCount:    0,
		Price:            129.5,
	}, offers[0])
}

func TestRemoteClient_FetchOffers_Errors(t *testing.T) {
	t.Run("non-200", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, err := NewRemoteClient(3, srv.Client(), srv.URL, logger.NewNop()).FetchOffers(context.Background())
		assert.ErrorContains(t, err, "503")
	})

	t.Run("bad json", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"offers":`))
		}))
		defer srv.Close()

		_, err := NewRemoteClient(3, srv.Client(), srv.URL, logger.NewNop()).FetchOffers(context.Background())
		assert.Error(t, err)
	})

	t.Run("deadline", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()
		defer close(release)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
		defer cancel()

		_, err := NewRemoteClient(3, srv.Client(), srv.URL, logger.NewNop()).FetchOffers(ctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestRemoteClient_BookOffer(t *testing.T) {
	srv := newRemoteServer(t)
	c := NewRemoteClient(3, srv.Client(), srv.URL, logger.NewNop())
	ctx := context.Background()

	o, err := c.BookOffer(ctx, "R1")
	require.NoError(t, err)
	assert.Equal(t, flight.ProviderID(3), o.ProviderID)
	assert.Nil(t, o.DepartureTime)

	_, err = c.BookOffer(ctx, "R9")
	assert.ErrorIs(t, err, flight.ErrOfferNotFound)

	_, err = c.BookOffer(ctx, "BROKEN")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, flight.ErrOfferNotFound)
}
