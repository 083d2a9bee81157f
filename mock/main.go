package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"
)

func main() {
	port := flag.String("port", "8081", "listen port")
	minDelay := flag.Duration("min-delay", 50*time.Millisecond, "minimum simulated latency")
	maxDelay := flag.Duration("max-delay", 400*time.Millisecond, "maximum simulated latency")
	failRate := flag.Float64("fail-rate", 0, "fraction of requests answered with 503")
	flag.Parse()

	srv := newOfferServer(time.Now().UTC(), *minDelay, *maxDelay, *failRate)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/offers", srv.listOffers)
	mux.HandleFunc("POST /v1/offers/{id}/book", srv.bookOffer)

	addr := fmt.Sprintf(":%s", *port)
	fmt.Printf("Go Mock Server running on port %s...\n", *port)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal(err)
	}
}
