package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/salinovbadr/ramadhan-adventure-sub000/internal/storage"
)

// Service is the single mutation surface over the local store. Every write
// goes through one of its methods; each successful mutation fires the dirty
// hook so the sync engine can schedule a push.
type Service struct {
	store  *storage.Store
	now    func() time.Time
	notify func()
}

func NewService(store *storage.Store) *Service {
	return &Service{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) Store() *storage.Store { return s.store }

// SetNotify registers the hook fired after every local mutation.
func (s *Service) SetNotify(fn func()) { s.notify = fn }

func (s *Service) markDirty() {
	if s.notify != nil {
		s.notify()
	}
}

func normalizeCallsign(callsign string) (string, error) {
	c := strings.TrimSpace(callsign)
	if c == "" {
		return "", fmt.Errorf("callsign is required")
	}
	return c, nil
}

func (s *Service) Crew(ctx context.Context) ([]storage.CrewMember, error) {
	return s.store.Crew(ctx)
}

func (s *Service) Member(ctx context.Context, id string) (*storage.CrewMember, error) {
	crew, err := s.store.Crew(ctx)
	if err != nil {
		return nil, err
	}
	for i := range crew {
		if crew[i].ID == id {
			m := crew[i]
			return &m, nil
		}
	}
	return nil, fmt.Errorf("member %s: %w", id, ErrUnknownMember)
}

// AddCrewMember appends a member and pre-populates their 30-slot log. A
// duplicate id is rejected as a no-op: the existing member is never
// overwritten and the returned bool is false.
func (s *Service) AddCrewMember(ctx context.Context, m storage.CrewMember) (bool, error) {
	callsign, err := normalizeCallsign(m.Callsign)
	if err != nil {
		return false, err
	}
	m.Callsign = callsign
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	m.Tier = string(ParseTier(m.Tier))

	crew, err := s.store.Crew(ctx)
	if err != nil {
		return false, err
	}
	for i := range crew {
		if crew[i].ID == m.ID {
			return false, nil
		}
	}

	crew = append(crew, m)
	if err := s.store.SaveCrew(ctx, crew); err != nil {
		return false, err
	}
	if _, err := s.store.Log(ctx, m.ID); err != nil {
		return false, err
	}

	settings, err := s.store.Settings(ctx)
	if err != nil {
		return false, err
	}
	if settings.ActiveMemberID == "" {
		settings.ActiveMemberID = m.ID
		if err := s.store.SaveSettings(ctx, settings); err != nil {
			return false, err
		}
	}

	s.markDirty()
	return true, nil
}

func (s *Service) UpdateCrewMember(ctx context.Context, m storage.CrewMember) error {
	callsign, err := normalizeCallsign(m.Callsign)
	if err != nil {
		return err
	}
	m.Callsign = callsign
	m.Tier = string(ParseTier(m.Tier))

	crew, err := s.store.Crew(ctx)
	if err != nil {
		return err
	}
	for i := range crew {
		if crew[i].ID == m.ID {
			crew[i] = m
			if err := s.store.SaveCrew(ctx, crew); err != nil {
				return err
			}
			s.markDirty()
			return nil
		}
	}
	return fmt.Errorf("member %s: %w", m.ID, ErrUnknownMember)
}

// RemoveCrewMember deletes a member and cascades to their day log.
func (s *Service) RemoveCrewMember(ctx context.Context, id string) error {
	crew, err := s.store.Crew(ctx)
	if err != nil {
		return err
	}

	kept := crew[:0]
	found := false
	for _, m := range crew {
		if m.ID == id {
			found = true
			continue
		}
		kept = append(kept, m)
	}
	if !found {
		return fmt.Errorf("member %s: %w", id, ErrUnknownMember)
	}

	if err := s.store.SaveCrew(ctx, kept); err != nil {
		return err
	}
	if err := s.store.DeleteLog(ctx, id); err != nil {
		return err
	}

	settings, err := s.store.Settings(ctx)
	if err != nil {
		return err
	}
	if settings.ActiveMemberID == id {
		settings.ActiveMemberID = ""
		if len(kept) > 0 {
			settings.ActiveMemberID = kept[0].ID
		}
		if err := s.store.SaveSettings(ctx, settings); err != nil {
			return err
		}
	}

	s.markDirty()
	return nil
}

func (s *Service) SetActiveMember(ctx context.Context, id string) error {
	if _, err := s.Member(ctx, id); err != nil {
		return err
	}
	settings, err := s.store.Settings(ctx)
	if err != nil {
		return err
	}
	settings.ActiveMemberID = id
	if err := s.store.SaveSettings(ctx, settings); err != nil {
		return err
	}
	s.markDirty()
	return nil
}

func (s *Service) Settings(ctx context.Context) (storage.Settings, error) {
	return s.store.Settings(ctx)
}

// SetEnabledMissions replaces the allow-list. A nil list re-enables every
// mission; an empty non-nil list disables all of them.
func (s *Service) SetEnabledMissions(ctx context.Context, ids []string) error {
	settings, err := s.store.Settings(ctx)
	if err != nil {
		return err
	}
	settings.EnabledMissions = ids
	if err := s.store.SaveSettings(ctx, settings); err != nil {
		return err
	}
	s.markDirty()
	return nil
}

// Missions returns the effective catalog: built-ins with overrides applied,
// then custom missions, in display order.
func (s *Service) Missions(ctx context.Context) ([]storage.Mission, error) {
	settings, err := s.store.Settings(ctx)
	if err != nil {
		return nil, err
	}
	customs, err := s.store.CustomMissions(ctx)
	if err != nil {
		return nil, err
	}
	return EffectiveMissions(settings, customs), nil
}

// SetOverride patch-merges fields onto the stored override for a built-in
// mission. Unspecified fields keep their previously overridden (or built-in)
// values.
func (s *Service) SetOverride(ctx context.Context, missionID string, patch storage.MissionPatch) error {
	if !isBuiltinMission(missionID) {
		return fmt.Errorf("mission %s: %w", missionID, ErrUnknownMission)
	}
	settings, err := s.store.Settings(ctx)
	if err != nil {
		return err
	}
	if settings.Overrides == nil {
		settings.Overrides = make(map[string]storage.MissionPatch)
	}
	settings.Overrides[missionID] = MergePatches(settings.Overrides[missionID], patch)
	if err := s.store.SaveSettings(ctx, settings); err != nil {
		return err
	}
	s.markDirty()
	return nil
}

func (s *Service) ClearOverride(ctx context.Context, missionID string) error {
	settings, err := s.store.Settings(ctx)
	if err != nil {
		return err
	}
	if _, ok := settings.Overrides[missionID]; !ok {
		return nil
	}
	delete(settings.Overrides, missionID)
	if err := s.store.SaveSettings(ctx, settings); err != nil {
		return err
	}
	s.markDirty()
	return nil
}

// AddCustomMission stores a user-authored mission under a generated
// custom-prefixed id and returns it.
func (s *Service) AddCustomMission(ctx context.Context, m storage.Mission) (*storage.Mission, error) {
	name := strings.TrimSpace(m.Name)
	if name == "" {
		return nil, fmt.Errorf("mission name is required")
	}
	m.Name = name
	if !MissionType(m.Type).IsValid() {
		return nil, fmt.Errorf("invalid mission type: %q", m.Type)
	}
	if m.BaseXP < 0 {
		return nil, fmt.Errorf("base XP must not be negative")
	}
	m.ID = NewCustomMissionID()

	customs, err := s.store.CustomMissions(ctx)
	if err != nil {
		return nil, err
	}
	customs = append(customs, m)
	if err := s.store.SaveCustomMissions(ctx, customs); err != nil {
		return nil, err
	}
	s.markDirty()
	return &m, nil
}

// UpdateCustomMission patch-merges onto a stored custom mission.
func (s *Service) UpdateCustomMission(ctx context.Context, id string, patch storage.MissionPatch) error {
	customs, err := s.store.CustomMissions(ctx)
	if err != nil {
		return err
	}
	for i := range customs {
		if customs[i].ID == id {
			customs[i] = ApplyPatch(customs[i], patch)
			if err := s.store.SaveCustomMissions(ctx, customs); err != nil {
				return err
			}
			s.markDirty()
			return nil
		}
	}
	return fmt.Errorf("mission %s: %w", id, ErrUnknownMission)
}

func (s *Service) RemoveCustomMission(ctx context.Context, id string) error {
	customs, err := s.store.CustomMissions(ctx)
	if err != nil {
		return err
	}
	kept := customs[:0]
	found := false
	for _, c := range customs {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return fmt.Errorf("mission %s: %w", id, ErrUnknownMission)
	}
	if err := s.store.SaveCustomMissions(ctx, kept); err != nil {
		return err
	}
	s.markDirty()
	return nil
}

func isBuiltinMission(id string) bool {
	for _, m := range BuiltinMissions() {
		if m.ID == id {
			return true
		}
	}
	return false
}
