package domain

// Advisory tips are fixed per tier group. Tip selection is a function of the
// final tier only, never of the raw elevation or rainfall values.
var (
	highRiskTips = []string{
		"Install a sump pump with backup power.",
		"Seal foundation cracks and window wells.",
		"Redirect downspouts 3–6 ft from foundation.",
	}
	moderateRiskTips = []string{
		"Consider a French drain.",
		"Regrade soil to slope away from the house.",
		"Use native plants for absorption.",
	}
	lowRiskTips = []string{
		"Maintain gutters/downspouts.",
		"Keep a basic emergency kit.",
		"Sign up for local weather alerts.",
	}
)

// TipsFor returns the three advisory tips for a tier. The returned slice is
// a copy; callers may mutate it freely.
func TipsFor(tier RiskTier) []string {
	var tips []string
	switch {
	case tier >= TierHigh:
		tips = highRiskTips
	case tier == TierModerate:
		tips = moderateRiskTips
	default:
		tips = lowRiskTips
	}

	out := make([]string, len(tips))
	copy(out, tips)
	return out
}
