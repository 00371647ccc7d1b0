// Package assessment orchestrates one flood-risk assessment: geocode the
// address, look up elevation and historical rainfall, classify, fuse live
// alerts, and select tips. The upstream lookups run sequentially; each
// adapter enforces its own timeout and there are no retries.
package assessment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sahilb1203/aquaalert-backend/internal/domain"
	"github.com/sahilb1203/aquaalert-backend/internal/observability"
)

// ErrAdviceDisabled is returned by Advise when no advice generator is
// configured (no OpenAI API key).
var ErrAdviceDisabled = errors.New("advice generation is not configured")

// Publisher emits a completed assessment to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, a domain.RiskAssessment) error
}

// Assessor wires the upstream providers into the domain's risk functions.
// The publisher and advice generator are optional; a nil publisher disables
// publishing and a nil generator makes Advise return ErrAdviceDisabled.
type Assessor struct {
	geocoder      domain.Geocoder
	elevation     domain.ElevationProvider
	rainfall      domain.RainfallProvider
	alerts        domain.AlertProvider
	generator     domain.AdviceGenerator
	publisher     Publisher
	referenceYear int
	logger        *slog.Logger
	metrics       *observability.Metrics
}

// New creates an Assessor.
func New(
	geocoder domain.Geocoder,
	elevation domain.ElevationProvider,
	rainfall domain.RainfallProvider,
	alerts domain.AlertProvider,
	generator domain.AdviceGenerator,
	publisher Publisher,
	referenceYear int,
	logger *slog.Logger,
	metrics *observability.Metrics,
) *Assessor {
	return &Assessor{
		geocoder:      geocoder,
		elevation:     elevation,
		rainfall:      rainfall,
		alerts:        alerts,
		generator:     generator,
		publisher:     publisher,
		referenceYear: referenceYear,
		logger:        logger,
		metrics:       metrics,
	}
}

// CheckReadiness returns nil when all required providers are wired.
func (a *Assessor) CheckReadiness(_ context.Context) error {
	if a.geocoder == nil || a.elevation == nil || a.rainfall == nil || a.alerts == nil {
		return errors.New("assessor is missing an upstream provider")
	}
	return nil
}

// Assess computes the full risk profile for a street address.
// Geocoding, elevation, and rainfall failures propagate to the caller;
// alert lookup failures degrade to "no alerts found".
func (a *Assessor) Assess(ctx context.Context, address string) (domain.RiskAssessment, error) {
	start := time.Now()

	loc, err := a.lookupLocation(ctx, address)
	if err != nil {
		if errors.Is(err, domain.ErrAddressNotFound) {
			a.metrics.AssessmentsTotal.WithLabelValues("not_found").Inc()
			return domain.RiskAssessment{}, err
		}
		a.metrics.AssessmentsTotal.WithLabelValues("upstream_error").Inc()
		return domain.RiskAssessment{}, err
	}

	elevation, err := a.lookupElevation(ctx, loc)
	if err != nil {
		a.metrics.AssessmentsTotal.WithLabelValues("upstream_error").Inc()
		return domain.RiskAssessment{}, err
	}

	monthly, err := a.lookupRainfall(ctx, loc)
	if err != nil {
		a.metrics.AssessmentsTotal.WithLabelValues("upstream_error").Inc()
		return domain.RiskAssessment{}, err
	}

	alerts := a.lookupAlerts(ctx, loc)

	result := domain.NewAssessment(loc, address, elevation, monthly, alerts)
	result.ID = uuid.NewString()

	a.metrics.AssessmentsTotal.WithLabelValues("ok").Inc()
	a.metrics.AssessmentDuration.Observe(time.Since(start).Seconds())
	a.metrics.RiskTierTotal.WithLabelValues(result.Tier.String()).Inc()
	if result.BumpApplied {
		a.metrics.AlertBumps.Inc()
		if domain.HasSevereFloodAlert(alerts) {
			a.metrics.SeverityOverrides.Inc()
		}
	}

	a.logger.Info("assessment complete",
		"assessment_id", result.ID,
		"risk_level", result.Tier.String(),
		"base_risk_level", result.BaseTier.String(),
		"bump_applied", result.BumpApplied,
		"flood_alerts_matched", result.MatchedAlerts,
	)

	a.publish(ctx, result)
	return result, nil
}

// Advise runs an assessment and turns the resulting profile into free-text
// preparedness advice.
func (a *Assessor) Advise(ctx context.Context, address, specs string) (domain.RiskAssessment, string, error) {
	if a.generator == nil {
		return domain.RiskAssessment{}, "", ErrAdviceDisabled
	}

	result, err := a.Assess(ctx, address)
	if err != nil {
		return domain.RiskAssessment{}, "", err
	}

	text, err := a.generator.GenerateAdvice(ctx, domain.AdviceRequest{
		Address:          result.Address,
		ElevationM:       result.ElevationM,
		AvgMonthlyRainMM: result.AvgMonthlyRainMM,
		RiskLevel:        result.Tier.String(),
		Specs:            specs,
	})
	if err != nil {
		a.metrics.AdviceRequests.WithLabelValues("error").Inc()
		return domain.RiskAssessment{}, "", fmt.Errorf("generate advice: %w", err)
	}

	a.metrics.AdviceRequests.WithLabelValues("success").Inc()
	return result, text, nil
}

func (a *Assessor) lookupLocation(ctx context.Context, address string) (domain.GeocodedAddress, error) {
	start := time.Now()
	loc, err := a.geocoder.Geocode(ctx, address)
	a.observeUpstream("geocode", start, err)
	if err != nil {
		if errors.Is(err, domain.ErrAddressNotFound) {
			return domain.GeocodedAddress{}, err
		}
		return domain.GeocodedAddress{}, fmt.Errorf("geocode address: %w", err)
	}
	return loc, nil
}

func (a *Assessor) lookupElevation(ctx context.Context, loc domain.GeocodedAddress) (float64, error) {
	start := time.Now()
	elevation, err := a.elevation.Elevation(ctx, loc.Lat, loc.Lon)
	a.observeUpstream("elevation", start, err)
	if err != nil {
		return 0, fmt.Errorf("elevation lookup: %w", err)
	}
	return elevation, nil
}

func (a *Assessor) lookupRainfall(ctx context.Context, loc domain.GeocodedAddress) ([]float64, error) {
	start := time.Now()
	monthly, err := a.rainfall.MonthlyPrecipitation(ctx, loc.Lat, loc.Lon, a.referenceYear)
	a.observeUpstream("rainfall", start, err)
	if err != nil {
		return nil, fmt.Errorf("rainfall lookup: %w", err)
	}
	return monthly, nil
}

// lookupAlerts queries alerts at the exact coordinate first; when that
// yields nothing flood-relevant and a region code is known, it widens to a
// region query and merges the two result sets. Any failure is logged and
// treated as "no alerts found" so a dead alert feed never fails the
// assessment.
func (a *Assessor) lookupAlerts(ctx context.Context, loc domain.GeocodedAddress) []domain.Alert {
	start := time.Now()
	alerts, err := a.alerts.ActiveAlerts(ctx, loc.Lat, loc.Lon)
	a.observeUpstream("alerts", start, err)
	if err != nil {
		a.metrics.AlertLookupFailures.Inc()
		a.logger.Warn("point alert lookup failed, continuing without alerts",
			"lat", loc.Lat, "lon", loc.Lon, "error", err)
		alerts = nil
	}

	if domain.CountFloodRelevant(alerts) > 0 || loc.RegionCode == "" {
		return alerts
	}

	start = time.Now()
	areaAlerts, err := a.alerts.ActiveAreaAlerts(ctx, loc.RegionCode)
	a.observeUpstream("alerts", start, err)
	if err != nil {
		a.metrics.AlertLookupFailures.Inc()
		a.logger.Warn("area alert lookup failed, continuing without area alerts",
			"region_code", loc.RegionCode, "error", err)
		return alerts
	}

	return append(alerts, areaAlerts...)
}

func (a *Assessor) publish(ctx context.Context, result domain.RiskAssessment) {
	if a.publisher == nil {
		return
	}
	if err := a.publisher.Publish(ctx, result); err != nil {
		a.logger.Warn("assessment publish failed", "assessment_id", result.ID, "error", err)
		return
	}
	a.metrics.AssessmentsPublished.Inc()
}

func (a *Assessor) observeUpstream(service string, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	a.metrics.UpstreamRequests.WithLabelValues(service, outcome).Inc()
	a.metrics.UpstreamDuration.WithLabelValues(service).Observe(time.Since(start).Seconds())
}
