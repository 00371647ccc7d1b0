package domain

import "strings"

// Alert is a live weather alert as reported by the alert provider.
// Severity may be empty when the upstream record omits it.
type Alert struct {
	Event    string `json:"event"`
	Severity string `json:"severity,omitempty"`
}

// floodKeywords classify an alert as flood-relevant by case-insensitive
// substring match against the event name.
var floodKeywords = []string{"flood", "flash", "coastal", "surge"}

// IsFloodRelevant reports whether the alert's event name matches one of the
// flood keywords.
func IsFloodRelevant(a Alert) bool {
	event := strings.ToLower(a.Event)
	for _, kw := range floodKeywords {
		if strings.Contains(event, kw) {
			return true
		}
	}
	return false
}

// CountFloodRelevant returns how many alerts are flood-relevant.
func CountFloodRelevant(alerts []Alert) int {
	n := 0
	for _, a := range alerts {
		if IsFloodRelevant(a) {
			n++
		}
	}
	return n
}

// HasSevereFloodAlert reports whether any flood-relevant alert carries
// severity "severe" or "extreme", i.e. whether fusion applies the hard
// override to TierHigh.
func HasSevereFloodAlert(alerts []Alert) bool {
	for _, a := range alerts {
		if !IsFloodRelevant(a) {
			continue
		}
		sev := strings.ToLower(a.Severity)
		if sev == "severe" || sev == "extreme" {
			return true
		}
	}
	return false
}

// FusionResult is the outcome of fusing live alerts into a base tier.
type FusionResult struct {
	FinalTier    RiskTier
	BumpApplied  bool
	MatchedCount int
}

// FuseAlerts escalates a base tier using live alert evidence. Flood-relevant
// alerts with severity "severe" or "extreme" force the tier to TierHigh;
// any other flood-relevant alert promotes the base tier one step, clamped
// at TierVeryHigh. No flood-relevant alerts leaves the tier untouched.
//
// The severe/extreme rule is an unconditional override carried over from the
// original advisory policy: a TierVeryHigh base is lowered to TierHigh.
// Callers relying on monotonicity must account for that exception.
func FuseAlerts(base RiskTier, alerts []Alert) FusionResult {
	matched := 0
	override := false
	for _, a := range alerts {
		if !IsFloodRelevant(a) {
			continue
		}
		matched++
		sev := strings.ToLower(a.Severity)
		if sev == "severe" || sev == "extreme" {
			override = true
		}
	}

	if matched == 0 {
		return FusionResult{FinalTier: base, BumpApplied: false, MatchedCount: 0}
	}

	final := base.Bump()
	if override {
		final = TierHigh
	}
	return FusionResult{FinalTier: final, BumpApplied: true, MatchedCount: matched}
}
