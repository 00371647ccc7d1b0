// Command riskcheck runs a one-off flood-risk assessment from the command
// line, using the same upstream providers as the API server.
//
// Usage:
//
//	go run ./cmd/riskcheck -address "100 Washington St, Hoboken NJ"
//	go run ./cmd/riskcheck -address "..." -advise -specs "finished basement"
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sahilb1203/aquaalert-backend/internal/adapter/advice"
	"github.com/sahilb1203/aquaalert-backend/internal/adapter/nominatim"
	"github.com/sahilb1203/aquaalert-backend/internal/adapter/nws"
	"github.com/sahilb1203/aquaalert-backend/internal/adapter/openmeteo"
	"github.com/sahilb1203/aquaalert-backend/internal/assessment"
	"github.com/sahilb1203/aquaalert-backend/internal/config"
	"github.com/sahilb1203/aquaalert-backend/internal/domain"
	"github.com/sahilb1203/aquaalert-backend/internal/observability"
)

func main() {
	address := flag.String("address", "", "street address to assess")
	advise := flag.Bool("advise", false, "also generate preparedness advice (requires OPENAI_API_KEY)")
	specs := flag.String("specs", "", "free-text home specs passed to the advice generator")
	flag.Parse()

	if *address == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*address, *advise, *specs); code != 0 {
		os.Exit(code)
	}
}

func run(address string, advise bool, specs string) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}

	// Keep stdout clean for the JSON result.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	metrics := observability.NewMetricsForTesting()

	geocoder := nominatim.NewClient(cfg.GeocoderBaseURL, cfg.UserAgent, cfg.GeocoderTimeout, logger)
	weather := openmeteo.NewClient(cfg.UserAgent, cfg.ElevationTimeout, cfg.RainfallTimeout, logger)
	alerts := nws.NewClient(cfg.UserAgent, cfg.AlertTimeout, logger)

	var generator domain.AdviceGenerator
	if cfg.AdviceEnabled() {
		generator = advice.NewGenerator(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAITimeout, logger)
	}

	assessor := assessment.New(geocoder, weather, weather, alerts, generator, nil,
		cfg.ReferenceYear, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	if advise {
		result, text, err := assessor.Advise(ctx, address, specs)
		if err != nil {
			fmt.Fprintf(os.Stderr, "advise: %v\n", err)
			return 1
		}
		if err := enc.Encode(result); err != nil {
			fmt.Fprintf(os.Stderr, "encode result: %v\n", err)
			return 1
		}
		fmt.Printf("\n%s\n", text)
		return 0
	}

	result, err := assessor.Assess(ctx, address)
	if err != nil {
		fmt.Fprintf(os.Stderr, "assess: %v\n", err)
		return 1
	}
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "encode result: %v\n", err)
		return 1
	}
	return 0
}
