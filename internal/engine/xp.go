package engine

import (
	"math"

	"github.com/salinovbadr/ramadhan-adventure-sub000/internal/storage"
)

// Tier multipliers. Unknown tiers score like a cadet rather than failing;
// mission scoring must never error on malformed crew data.
func TierMultiplier(t Tier) float64 {
	switch t {
	case TierCadet:
		return 1.0
	case TierPilot:
		return 1.25
	case TierCommander:
		return 1.5
	case TierCaptain:
		return 2.0
	default:
		return 1.0
	}
}

// Score converts a recorded value into stars for one mission.
//
// Boolean missions award round(baseXP * multiplier) when done, otherwise 0.
// Partial missions award round(baseXP * min(achieved/target, 1) * multiplier).
// Rounding is applied once, on the final product, so that summing per-mission
// awards reproduces the day total exactly. Unknown mission types score 0.
func Score(m storage.Mission, v storage.RecordedValue, tier Tier) int {
	mult := TierMultiplier(tier)

	switch MissionType(m.Type) {
	case MissionBoolean:
		if v.Done == nil || !*v.Done {
			return 0
		}
		return clampStars(math.Round(float64(m.BaseXP) * mult))
	case MissionPartial:
		achieved := 0.0
		if v.Achieved != nil && *v.Achieved > 0 && !math.IsInf(*v.Achieved, 0) && !math.IsNaN(*v.Achieved) {
			achieved = *v.Achieved
		}
		target := resolveTarget(m, v)
		ratio := achieved / target
		if ratio > 1 {
			ratio = 1
		}
		return clampStars(math.Round(float64(m.BaseXP) * ratio * mult))
	default:
		return 0
	}
}

// MaxScore is the ceiling for one mission: the same formula at full
// completion (ratio = 1 / done = true).
func MaxScore(m storage.Mission, tier Tier) int {
	if !MissionType(m.Type).IsValid() {
		return 0
	}
	return clampStars(math.Round(float64(m.BaseXP) * TierMultiplier(tier)))
}

// resolveTarget returns a usable positive target for a partial value. A
// stored value with a missing or non-positive target is repaired with the
// mission's current default target, never silently dropped.
func resolveTarget(m storage.Mission, v storage.RecordedValue) float64 {
	if v.Target != nil && *v.Target > 0 && !math.IsInf(*v.Target, 0) && !math.IsNaN(*v.Target) {
		return *v.Target
	}
	if m.DefaultTarget > 0 && !math.IsInf(m.DefaultTarget, 0) && !math.IsNaN(m.DefaultTarget) {
		return m.DefaultTarget
	}
	return 1
}

func clampStars(v float64) int {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return int(v)
}
