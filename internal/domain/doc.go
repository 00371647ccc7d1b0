// Package domain models flood-risk classification for street addresses.
//
// # Risk Tiers
//
// Risk is expressed as one of five ordered tiers: Very Low, Low, Moderate,
// High, Very High. The classifier derives a base tier from two static
// signals, terrain elevation and historical rainfall; live weather alerts
// may then escalate it. See [Classify] and [FuseAlerts].
//
// # Bucketing
//
// Elevation (meters above sea level) and average monthly rainfall
// (millimeters) are each mapped to a 0-3 bucket where higher is worse:
//
//	Elevation: ≥20m → 0 | 10-20m → 1 | 5-10m → 2 | <5m → 3
//	Rainfall:  ≤50mm → 0 | 50-90mm → 1 | 90-120mm → 2 | >120mm → 3
//
// Boundaries are closed on the safer side, so every value lands in exactly
// one bucket; negative or implausible inputs fall into the extreme buckets
// rather than erroring. The bucket sum (0-6) maps onto the five tiers.
//
// # Alert Fusion
//
// An alert is flood-relevant when its event name contains one of the
// keywords flood, flash, coastal, or surge (case-insensitive). Fusion never
// lowers the base tier, with one documented exception: a severe or extreme
// flood alert forces the tier to High even when the base tier is already
// Very High. That behavior is inherited from the original advisory policy
// and is preserved verbatim; see the note on [FuseAlerts].
//
// # Purity
//
// Everything in this package is a total, side-effect-free function of its
// inputs. Upstream lookups (geocoding, elevation, rainfall, alerts) sit
// behind the provider interfaces and are supplied by the adapter packages.
package domain
