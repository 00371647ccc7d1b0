package domain

import (
	"context"
	"errors"
)

// ErrAddressNotFound is returned by a Geocoder when no location matches the
// requested address.
var ErrAddressNotFound = errors.New("address not found")

// GeocodedAddress is a resolved street address. RegionCode is the two-letter
// administrative subdivision (e.g. "NJ") and may be empty when the provider
// cannot determine one.
type GeocodedAddress struct {
	Lat         float64
	Lon         float64
	DisplayName string
	RegionCode  string
}

// Geocoder resolves a free-text street address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (GeocodedAddress, error)
}

// ElevationProvider looks up terrain elevation in meters for a coordinate.
type ElevationProvider interface {
	Elevation(ctx context.Context, lat, lon float64) (float64, error)
}

// RainfallProvider returns the twelve monthly precipitation sums (mm) for a
// coordinate over the given reference year.
type RainfallProvider interface {
	MonthlyPrecipitation(ctx context.Context, lat, lon float64, year int) ([]float64, error)
}

// AlertProvider retrieves currently active weather alerts. Implementations
// return only alerts with actual/active status.
type AlertProvider interface {
	// ActiveAlerts queries alerts covering the exact coordinate.
	ActiveAlerts(ctx context.Context, lat, lon float64) ([]Alert, error)

	// ActiveAreaAlerts queries alerts for a two-letter region code, used as
	// a wider fallback when the point query yields nothing flood-relevant.
	ActiveAreaAlerts(ctx context.Context, regionCode string) ([]Alert, error)
}

// AdviceRequest carries the computed risk profile into the advice generator.
type AdviceRequest struct {
	Address          string
	ElevationM       float64
	AvgMonthlyRainMM float64
	RiskLevel        string
	Specs            string
}

// AdviceGenerator turns a risk profile into free-text preparedness advice.
type AdviceGenerator interface {
	GenerateAdvice(ctx context.Context, req AdviceRequest) (string, error)
}
