package engine

import (
	"sort"

	"github.com/google/uuid"

	"github.com/salinovbadr/ramadhan-adventure-sub000/internal/storage"
)

// CustomIDPrefix guarantees custom mission ids never collide with built-ins.
const CustomIDPrefix = "custom-"

func NewCustomMissionID() string {
	return CustomIDPrefix + uuid.NewString()
}

// BuiltinMissions returns a fresh copy of the built-in catalog, ordered by
// sort key. Callers may mutate the result freely.
func BuiltinMissions() []storage.Mission {
	return []storage.Mission{
		{ID: "fasting", Name: "Full Day Fast", Description: "Fast from Fajr to Maghrib", Type: "boolean", BaseXP: 150, SortKey: 10},
		{ID: "fajr", Name: "Fajr Prayer", Type: "boolean", BaseXP: 50, SortKey: 20},
		{ID: "dhuhr", Name: "Dhuhr Prayer", Type: "boolean", BaseXP: 50, SortKey: 30},
		{ID: "asr", Name: "Asr Prayer", Type: "boolean", BaseXP: 50, SortKey: 40},
		{ID: "maghrib", Name: "Maghrib Prayer", Type: "boolean", BaseXP: 50, SortKey: 50},
		{ID: "isha", Name: "Isha Prayer", Type: "boolean", BaseXP: 50, SortKey: 60},
		{ID: "taraweeh", Name: "Taraweeh", Description: "Night prayer at home or the masjid", Type: "boolean", BaseXP: 80, SortKey: 70},
		{ID: "quran", Name: "Quran Reading", Description: "Pages read today", Type: "partial", BaseXP: 100, DefaultTarget: 20, Unit: "pages", SortKey: 80},
		{ID: "dhikr", Name: "Dhikr", Description: "Remembrance count", Type: "partial", BaseXP: 60, DefaultTarget: 100, Unit: "counts", SortKey: 90},
		{ID: "sadaqah", Name: "Sadaqah", Description: "Give charity, any amount", Type: "boolean", BaseXP: 60, SortKey: 100},
		{ID: "help-crew", Name: "Help a Crewmate", Description: "Lend a hand around the ship", Type: "boolean", BaseXP: 40, SortKey: 110},
		{ID: "laylatul-qadr", Name: "Laylatul Qadr Watch", Description: "Extra worship on the odd last-ten nights", Type: "boolean", BaseXP: 200, ActiveDays: []int{21, 23, 25, 27, 29}, SortKey: 120},
		{ID: "eid-prep", Name: "Eid Preparation", Description: "Get the ship ready for landing day", Type: "boolean", BaseXP: 50, ActiveDays: []int{29, 30}, SortKey: 130},
	}
}

// ApplyPatch shallow-merges a sparse patch over a base mission: a set patch
// field wins, an unset field falls through to the base. The base id is always
// preserved. MemberTargets merge key-wise; AssignedTo and ActiveDays replace
// wholesale when set.
func ApplyPatch(base storage.Mission, p storage.MissionPatch) storage.Mission {
	out := cloneMission(base)

	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.BaseXP != nil {
		out.BaseXP = *p.BaseXP
	}
	if p.DefaultTarget != nil {
		out.DefaultTarget = *p.DefaultTarget
	}
	if p.Unit != nil {
		out.Unit = *p.Unit
	}
	if len(p.MemberTargets) > 0 {
		if out.MemberTargets == nil {
			out.MemberTargets = make(map[string]storage.MemberTarget, len(p.MemberTargets))
		}
		for id, t := range p.MemberTargets {
			out.MemberTargets[id] = t
		}
	}
	if p.AssignedTo != nil {
		out.AssignedTo = cloneStrings(*p.AssignedTo)
	}
	if p.ActiveDays != nil {
		out.ActiveDays = cloneInts(*p.ActiveDays)
	}
	if p.SortKey != nil {
		out.SortKey = *p.SortKey
	}
	return out
}

// MergePatches layers next over prev so that repeated SetOverride calls are
// patch-merges, never full replacements.
func MergePatches(prev, next storage.MissionPatch) storage.MissionPatch {
	out := prev
	if next.Name != nil {
		out.Name = next.Name
	}
	if next.Description != nil {
		out.Description = next.Description
	}
	if next.BaseXP != nil {
		out.BaseXP = next.BaseXP
	}
	if next.DefaultTarget != nil {
		out.DefaultTarget = next.DefaultTarget
	}
	if next.Unit != nil {
		out.Unit = next.Unit
	}
	if len(next.MemberTargets) > 0 {
		merged := make(map[string]storage.MemberTarget, len(prev.MemberTargets)+len(next.MemberTargets))
		for id, t := range prev.MemberTargets {
			merged[id] = t
		}
		for id, t := range next.MemberTargets {
			merged[id] = t
		}
		out.MemberTargets = merged
	}
	if next.AssignedTo != nil {
		out.AssignedTo = next.AssignedTo
	}
	if next.ActiveDays != nil {
		out.ActiveDays = next.ActiveDays
	}
	if next.SortKey != nil {
		out.SortKey = next.SortKey
	}
	return out
}

// EffectiveMissions merges stored overrides over the built-in catalog and
// appends custom missions verbatim, ordered by sort key then id.
func EffectiveMissions(settings storage.Settings, customs []storage.Mission) []storage.Mission {
	builtins := BuiltinMissions()
	out := make([]storage.Mission, 0, len(builtins)+len(customs))
	for _, m := range builtins {
		if patch, ok := settings.Overrides[m.ID]; ok {
			m = ApplyPatch(m, patch)
		}
		out = append(out, m)
	}
	for _, c := range customs {
		out = append(out, cloneMission(c))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SortKey != out[j].SortKey {
			return out[i].SortKey < out[j].SortKey
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func cloneMission(m storage.Mission) storage.Mission {
	out := m
	out.AssignedTo = cloneStrings(m.AssignedTo)
	out.ActiveDays = cloneInts(m.ActiveDays)
	if m.MemberTargets != nil {
		out.MemberTargets = make(map[string]storage.MemberTarget, len(m.MemberTargets))
		for id, t := range m.MemberTargets {
			out.MemberTargets[id] = t
		}
	}
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func cloneInts(s []int) []int {
	if s == nil {
		return nil
	}
	out := make([]int, len(s))
	copy(out, s)
	return out
}
