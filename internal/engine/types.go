package engine

import "strings"

type MissionType string

const (
	MissionBoolean MissionType = "boolean"
	MissionPartial MissionType = "partial"
)

func (t MissionType) IsValid() bool {
	switch t {
	case MissionBoolean, MissionPartial:
		return true
	default:
		return false
	}
}

// Tier is a crew member's difficulty tier. Each tier maps to a fixed XP
// multiplier; unknown tiers fall back to the cadet multiplier.
type Tier string

const (
	TierCadet     Tier = "cadet"
	TierPilot     Tier = "pilot"
	TierCommander Tier = "commander"
	TierCaptain   Tier = "captain"
)

func (t Tier) IsValid() bool {
	switch t {
	case TierCadet, TierPilot, TierCommander, TierCaptain:
		return true
	default:
		return false
	}
}

// DefaultTier is used when user input is missing/invalid.
const DefaultTier = TierCadet

// ParseTier parses user input to a Tier. Empty or unrecognized input
// returns DefaultTier.
func ParseTier(input string) Tier {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "cadet", "":
		return TierCadet
	case "pilot":
		return TierPilot
	case "commander", "cmdr":
		return TierCommander
	case "captain", "capt":
		return TierCaptain
	default:
		return DefaultTier
	}
}
