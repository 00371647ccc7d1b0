package domain

import (
	"encoding/json"
	"fmt"
)

// RiskTier is an ordinal flood-risk level. Tiers are totally ordered by
// severity: TierVeryLow < TierLow < TierModerate < TierHigh < TierVeryHigh.
type RiskTier int

const (
	TierVeryLow RiskTier = iota
	TierLow
	TierModerate
	TierHigh
	TierVeryHigh
)

var tierNames = [...]string{"Very Low", "Low", "Moderate", "High", "Very High"}

// String returns the user-facing tier label, e.g. "Very High".
func (t RiskTier) String() string {
	if t < TierVeryLow || t > TierVeryHigh {
		return fmt.Sprintf("RiskTier(%d)", int(t))
	}
	return tierNames[t]
}

// Bump returns the tier promoted one step, clamped at TierVeryHigh.
func (t RiskTier) Bump() RiskTier {
	if t >= TierVeryHigh {
		return TierVeryHigh
	}
	return t + 1
}

// MarshalJSON encodes the tier as its user-facing label.
func (t RiskTier) MarshalJSON() ([]byte, error) {
	if t < TierVeryLow || t > TierVeryHigh {
		return nil, fmt.Errorf("marshal risk tier: invalid tier %d", int(t))
	}
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes a tier from its user-facing label.
func (t *RiskTier) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("unmarshal risk tier: %w", err)
	}
	for i, name := range tierNames {
		if name == s {
			*t = RiskTier(i)
			return nil
		}
	}
	return fmt.Errorf("unmarshal risk tier: unknown tier %q", s)
}
