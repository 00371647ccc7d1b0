package domain

// Classify maps terrain elevation (meters) and average monthly rainfall
// (millimeters) to a base flood-risk tier. It is total over all float
// inputs: out-of-range values land in the extreme buckets.
func Classify(elevationM, avgRainMM float64) RiskTier {
	score := elevationBucket(elevationM) + rainBucket(avgRainMM)

	switch {
	case score <= 1:
		return TierVeryLow
	case score <= 3:
		return TierLow
	case score <= 4:
		return TierModerate
	case score <= 5:
		return TierHigh
	default:
		return TierVeryHigh
	}
}

// elevationBucket scores elevation 0-3, higher = worse. Low-lying terrain
// drains poorly and floods first.
func elevationBucket(elevationM float64) int {
	switch {
	case elevationM >= 20:
		return 0
	case elevationM >= 10:
		return 1
	case elevationM >= 5:
		return 2
	default:
		return 3
	}
}

// rainBucket scores average monthly rainfall 0-3, higher = worse.
func rainBucket(avgRainMM float64) int {
	switch {
	case avgRainMM <= 50:
		return 0
	case avgRainMM <= 90:
		return 1
	case avgRainMM <= 120:
		return 2
	default:
		return 3
	}
}

// AverageMonthlyRain returns the mean of monthly precipitation sums.
// Returns 0 for an empty slice.
func AverageMonthlyRain(monthlyMM []float64) float64 {
	if len(monthlyMM) == 0 {
		return 0
	}
	var total float64
	for _, mm := range monthlyMM {
		total += mm
	}
	return total / float64(len(monthlyMM))
}
