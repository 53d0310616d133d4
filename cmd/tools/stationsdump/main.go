// cmd/tools/stationsdump/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/lookacat/RoadsurferCodingChallenge/internal/config"
	"github.com/lookacat/RoadsurferCodingChallenge/internal/stations"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "Path to config file")
		baseURL    = flag.String("base-url", "", "Override upstream base URL")
		bookingID  = flag.String("booking", "", "Fetch a single booking (requires -station)")
		stationID  = flag.String("station", "", "Station ID for booking lookup")
		timeout    = flag.Duration("timeout", 15*time.Second, "Total request timeout")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *baseURL != "" {
		cfg.Upstream.BaseURL = *baseURL
	}

	client := stations.NewClient(stations.ClientConfig{
		BaseURL:      cfg.Upstream.BaseURL,
		StationsPath: cfg.Upstream.StationsPath,
		BookingPath:  cfg.Upstream.BookingPath,
		Timeout:      cfg.Upstream.Timeout(),
	}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var result any
	if *bookingID != "" {
		if *stationID == "" {
			log.Println("-booking requires -station:")
			flag.PrintDefaults()
			os.Exit(1)
		}
		booking, err := client.FetchBooking(ctx, *stationID, *bookingID)
		if err != nil {
			log.Fatalf("Failed to fetch booking: %v", err)
		}
		result = booking
	} else {
		list, err := client.FetchStations(ctx)
		if err != nil {
			log.Fatalf("Failed to fetch stations: %v", err)
		}
		result = list
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		log.Fatalf("Failed to encode output: %v", err)
	}
}
