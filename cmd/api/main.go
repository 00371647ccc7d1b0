package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sahilb1203/aquaalert-backend/internal/adapter/advice"
	"github.com/sahilb1203/aquaalert-backend/internal/adapter/httpapi"
	kafkaadapter "github.com/sahilb1203/aquaalert-backend/internal/adapter/kafka"
	"github.com/sahilb1203/aquaalert-backend/internal/adapter/nominatim"
	"github.com/sahilb1203/aquaalert-backend/internal/adapter/nws"
	"github.com/sahilb1203/aquaalert-backend/internal/adapter/openmeteo"
	"github.com/sahilb1203/aquaalert-backend/internal/assessment"
	"github.com/sahilb1203/aquaalert-backend/internal/config"
	"github.com/sahilb1203/aquaalert-backend/internal/domain"
	"github.com/sahilb1203/aquaalert-backend/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	geocoder := nominatim.NewClient(cfg.GeocoderBaseURL, cfg.UserAgent, cfg.GeocoderTimeout, logger)
	weather := openmeteo.NewClient(cfg.UserAgent, cfg.ElevationTimeout, cfg.RainfallTimeout, logger)
	alerts := nws.NewClient(cfg.UserAgent, cfg.AlertTimeout, logger)

	// Advice generation is feature-flagged via OPENAI_API_KEY.
	var generator domain.AdviceGenerator
	if cfg.AdviceEnabled() {
		generator = advice.NewGenerator(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAITimeout, logger)
		metrics.AdviceEnabled.Set(1)
		logger.Info("advice generation enabled", "model", cfg.OpenAIModel)
	} else {
		logger.Info("advice generation disabled")
	}

	// Advisory publishing is feature-flagged via KAFKA_BROKERS.
	var publisher *kafkaadapter.Publisher
	var assessorPublisher assessment.Publisher
	if cfg.PublisherEnabled() {
		publisher = kafkaadapter.NewPublisher(cfg, logger)
		assessorPublisher = publisher
		metrics.PublisherEnabled.Set(1)
		logger.Info("advisory publishing enabled", "topic", cfg.KafkaAdvisoryTopic)
	} else {
		logger.Info("advisory publishing disabled")
	}

	assessor := assessment.New(
		geocoder, weather, weather, alerts,
		generator, assessorPublisher,
		cfg.ReferenceYear, logger, metrics,
	)

	srv := httpapi.NewServer(cfg.HTTPAddr, assessor, cfg.CORSAllowedOrigins, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
