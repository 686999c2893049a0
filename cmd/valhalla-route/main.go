// Command valhalla-route computes a route between two points and prints a
// short summary. Configuration comes from the environment (optionally a
// .env file); see internal/config.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	valhalla "github.com/elliveny/valhalla-go"
	"github.com/elliveny/valhalla-go/internal/config"
	"github.com/elliveny/valhalla-go/polyline"
)

func main() {
	from := flag.String("from", "", "origin as lat,lon")
	to := flag.String("to", "", "destination as lat,lon")
	costing := flag.String("costing", "auto", "costing model")
	alternates := flag.Int("alternates", 0, "number of alternate routes to request")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables from OS")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	origin, err := parsePoint(*from)
	if err != nil {
		log.Fatalf("Invalid -from: %v", err)
	}
	dest, err := parsePoint(*to)
	if err != nil {
		log.Fatalf("Invalid -to: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	opts := []valhalla.Option{
		valhalla.WithTimeout(cfg.Timeout),
		valhalla.WithLogger(logger),
		valhalla.WithVerbose(cfg.Verbose),
	}
	if cfg.APIKeyHeader != "" {
		opts = append(opts, valhalla.WithAPIKey(cfg.APIKeyHeader, cfg.APIKey))
	}
	client := valhalla.New(cfg.BaseURL, opts...)

	resp, err := client.Route(context.Background(), &valhalla.RouteRequest{
		Locations:  []valhalla.Location{origin, dest},
		Costing:    *costing,
		Alternates: *alternates,
	})
	if err != nil {
		log.Fatalf("Route failed: %v", err)
	}

	for i, trip := range resp.Trips {
		kind := "primary"
		if i > 0 {
			kind = fmt.Sprintf("alternate %d", i)
		}
		fmt.Printf("%s: %.1f %s, %.0f s\n", kind, trip.Summary.Length, trip.Units, trip.Summary.Time)
		for _, leg := range trip.Legs {
			pts, err := polyline.Decode(leg.Shape, polyline.DefaultPrecision)
			if err != nil {
				log.Fatalf("Decode leg shape: %v", err)
			}
			fmt.Printf("  leg: %.1f %s, %d shape points\n", leg.Summary.Length, trip.Units, len(pts))
		}
	}
}

func parsePoint(s string) (valhalla.Location, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return valhalla.Location{}, fmt.Errorf("want lat,lon, got %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return valhalla.Location{}, fmt.Errorf("latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return valhalla.Location{}, fmt.Errorf("longitude: %w", err)
	}
	return valhalla.Location{Lat: lat, Lon: lon}, nil
}
