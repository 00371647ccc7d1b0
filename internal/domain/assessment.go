package domain

import "time"

// RiskAssessment is the complete computed risk profile for one address.
// Assessments are ephemeral: built fresh per request, never persisted or
// mutated after creation.
type RiskAssessment struct {
	ID               string    `json:"id"`
	Address          string    `json:"address"`
	Lat              float64   `json:"lat"`
	Lon              float64   `json:"lon"`
	RegionCode       string    `json:"region_code,omitempty"`
	ElevationM       float64   `json:"elevation_m"`
	AvgMonthlyRainMM float64   `json:"avg_monthly_rain_mm"`
	BaseTier         RiskTier  `json:"base_risk_level"`
	Tier             RiskTier  `json:"risk_level"`
	BumpApplied      bool      `json:"alert_bump_applied"`
	MatchedAlerts    int       `json:"flood_alerts_matched"`
	Tips             []string  `json:"tips"`
	GeneratedAt      time.Time `json:"generated_at"`
}

// NewAssessment derives the risk profile from the resolved location data and
// live alerts, and stamps it with the current clock time. The caller assigns
// the ID.
func NewAssessment(loc GeocodedAddress, address string, elevationM float64, monthlyRainMM []float64, alerts []Alert) RiskAssessment {
	avgRain := AverageMonthlyRain(monthlyRainMM)
	base := Classify(elevationM, avgRain)
	fused := FuseAlerts(base, alerts)

	return RiskAssessment{
		Address:          address,
		Lat:              loc.Lat,
		Lon:              loc.Lon,
		RegionCode:       loc.RegionCode,
		ElevationM:       elevationM,
		AvgMonthlyRainMM: avgRain,
		BaseTier:         base,
		Tier:             fused.FinalTier,
		BumpApplied:      fused.BumpApplied,
		MatchedAlerts:    fused.MatchedCount,
		Tips:             TipsFor(fused.FinalTier),
		GeneratedAt:      clock.Now().UTC(),
	}
}
