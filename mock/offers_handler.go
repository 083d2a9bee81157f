package main

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"time"
)

type offersResponse struct {
	Offers []remoteOffer `json:"offers"`
}

type remoteOffer struct {
	ID        string `json:"id"`
	Carrier   string `json:"carrier"`
	From      string `json:"from"`
	To        string `json:"to"`
	DepartsAt string `json:"departs_at"`
	ArrivesAt string `json:"arrives_at"`
	Stops     int    `json:"stops"`
	Fare      fare   `json:"fare"`
}

type fare struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type offerServer struct {
	offers   []remoteOffer
	minDelay time.Duration
	maxDelay time.Duration
	failRate float64
}

func newOfferServer(now time.Time, minDelay, maxDelay time.Duration, failRate float64) *offerServer {
	at := func(h int) string { return now.Add(time.Duration(h) * time.Hour).Format(time.RFC3339) }
	return &offerServer{
		offers: []remoteOffer{
			{ID: "RM101", Carrier: "Airline R", From: "AMS", To: "BCN", DepartsAt: at(2), ArrivesAt: at(4), Stops: 0, Fare: fare{Amount: 129.50, Currency: "EUR"}},
			{ID: "RM102", Carrier: "Airline R", From: "BCN", To: "AMS", DepartsAt: at(6), ArrivesAt: at(8), Stops: 0, Fare: fare{Amount: 141.00, Currency: "EUR"}},
			{ID: "RM201", Carrier: "Airline S", From: "AMS", To: "JFK", DepartsAt: at(5), ArrivesAt: at(14), Stops: 1, Fare: fare{Amount: 512.75, Currency: "EUR"}},
			{ID: "RM202", Carrier: "Airline S", From: "JFK", To: "AMS", DepartsAt: at(20), ArrivesAt: at(28), Stops: 1, Fare: fare{Amount: 498.10, Currency: "EUR"}},
		},
		minDelay: minDelay,
		maxDelay: maxDelay,
		failRate: failRate,
	}
}

func (s *offerServer) listOffers(w http.ResponseWriter, r *http.Request) {
	if !s.simulate(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, offersResponse{Offers: s.offers})
}

func (s *offerServer) bookOffer(w http.ResponseWriter, r *http.Request) {
	if !s.simulate(w, r) {
		return
	}

	id := r.PathValue("id")
	for _, o := range s.offers {
		if o.ID == id {
			writeJSON(w, http.StatusOK, o)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "offer not found"})
}

// simulate applies random latency and failures. It reports false when the request was already answered.
func (s *offerServer) simulate(w http.ResponseWriter, r *http.Request) bool {
	delay := s.minDelay
	if spread := s.maxDelay - s.minDelay; spread > 0 {
		delay += time.Duration(rand.Int63n(int64(spread)))
	}

	select {
	case <-time.After(delay):
	case <-r.Context().Done():
		return false
	}

	if s.failRate > 0 && rand.Float64() < s.failRate {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "upstream unavailable"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
