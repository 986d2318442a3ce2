package engine

import "github.com/salinovbadr/ramadhan-adventure-sub000/internal/storage"

// EnabledSet converts the settings allow-list into a lookup set. A nil result
// means every mission is enabled.
func EnabledSet(settings storage.Settings) map[string]bool {
	if settings.EnabledMissions == nil {
		return nil
	}
	set := make(map[string]bool, len(settings.EnabledMissions))
	for _, id := range settings.EnabledMissions {
		set[id] = true
	}
	return set
}

// Applicable reports whether a mission counts for a crew member on a cycle
// day. Three independent filters, all must pass:
//
//  1. the enabled allow-list (nil = all missions enabled)
//  2. the mission's active days (unset or empty = every day)
//  3. the mission's crew assignment (nil = every crew member)
func Applicable(m storage.Mission, enabled map[string]bool, memberID string, day int) bool {
	if enabled != nil && !enabled[m.ID] {
		return false
	}
	if len(m.ActiveDays) > 0 && !containsInt(m.ActiveDays, day) {
		return false
	}
	if m.AssignedTo != nil && !containsString(m.AssignedTo, memberID) {
		return false
	}
	return true
}

func containsInt(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func containsString(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
