package engine

import (
	"context"

	"github.com/salinovbadr/ramadhan-adventure-sub000/internal/storage"
)

type SaveDayResult struct {
	Day      int
	XPEarned int
	Missions int // missions scored by this save
}

// Log returns the member's full 30-slot day log, creating an empty one on
// first access.
func (s *Service) Log(ctx context.Context, memberID string) (storage.DayLog, error) {
	if _, err := s.Member(ctx, memberID); err != nil {
		return storage.DayLog{}, err
	}
	return s.store.Log(ctx, memberID)
}

// SaveDay recomputes one cycle day from the submitted value set. For every
// mission currently applicable to (member, day), the submitted value (empty
// when absent) is scored with the member's tier and the mission's per-member
// target if present, then written into the day's result map. Results for
// missions no longer applicable are left untouched so that configuration
// changes never destroy recorded history. The day total is recomputed as the
// sum of every stored award, the day is marked completed and stamped.
func (s *Service) SaveDay(ctx context.Context, memberID string, day int, values map[string]storage.RecordedValue) (*SaveDayResult, error) {
	if day < 1 || day > storage.CycleDays {
		return nil, DayOutOfRangeError{Day: day}
	}

	member, err := s.Member(ctx, memberID)
	if err != nil {
		return nil, err
	}
	tier := ParseTier(member.Tier)

	settings, err := s.store.Settings(ctx)
	if err != nil {
		return nil, err
	}
	customs, err := s.store.CustomMissions(ctx)
	if err != nil {
		return nil, err
	}
	missions := EffectiveMissions(settings, customs)
	enabled := EnabledSet(settings)

	log, err := s.store.Log(ctx, memberID)
	if err != nil {
		return nil, err
	}
	entry := &log.Days[day-1]
	if entry.Results == nil {
		entry.Results = make(map[string]storage.MissionResult)
	}

	scored := 0
	for _, m := range missions {
		if !Applicable(m, enabled, memberID, day) {
			continue
		}
		value := normalizeValue(m, memberID, values[m.ID])
		entry.Results[m.ID] = storage.MissionResult{
			Value:     value,
			XPAwarded: Score(m, value, tier),
		}
		scored++
	}

	total := 0
	for _, r := range entry.Results {
		if r.XPAwarded > 0 {
			total += r.XPAwarded
		}
	}
	entry.XPEarned = total
	entry.Completed = true
	now := s.now()
	entry.SavedAt = &now

	if err := s.store.SaveLog(ctx, log); err != nil {
		return nil, err
	}
	s.markDirty()

	return &SaveDayResult{Day: day, XPEarned: total, Missions: scored}, nil
}

// normalizeValue repairs a partial value before scoring: a missing or
// non-positive target is replaced with the member's target override when one
// exists, else the mission's default target.
func normalizeValue(m storage.Mission, memberID string, v storage.RecordedValue) storage.RecordedValue {
	if MissionType(m.Type) != MissionPartial {
		return v
	}
	if v.Target != nil && *v.Target > 0 {
		return v
	}
	target := m.DefaultTarget
	if mt, ok := m.MemberTargets[memberID]; ok && mt.Target > 0 {
		target = mt.Target
	}
	if target > 0 {
		v.Target = &target
	}
	return v
}

// EffectiveTarget is the partial-mission target shown for a member: their
// per-member override when present, else the mission default.
func EffectiveTarget(m storage.Mission, memberID string) (float64, string) {
	if mt, ok := m.MemberTargets[memberID]; ok && mt.Target > 0 {
		unit := mt.Unit
		if unit == "" {
			unit = m.Unit
		}
		return mt.Target, unit
	}
	return m.DefaultTarget, m.Unit
}
