package engine

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/salinovbadr/ramadhan-adventure-sub000/internal/storage"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	ctx := context.Background()
	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewService(storage.NewStore(db))
}

func addMember(t *testing.T, svc *Service, id, callsign string, tier Tier) {
	t.Helper()
	added, err := svc.AddCrewMember(context.Background(), storage.CrewMember{
		ID: id, Callsign: callsign, Tier: string(tier),
	})
	if err != nil {
		t.Fatalf("add %s: %v", callsign, err)
	}
	if !added {
		t.Fatalf("add %s: unexpected duplicate", callsign)
	}
}

func TestAddCrewMember(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	added, err := svc.AddCrewMember(ctx, storage.CrewMember{Callsign: "Amira", Tier: "cadet"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !added {
		t.Fatalf("first add should succeed")
	}

	crew, err := svc.Crew(ctx)
	if err != nil {
		t.Fatalf("crew: %v", err)
	}
	if len(crew) != 1 || crew[0].ID == "" {
		t.Fatalf("expected one member with a generated id, got %+v", crew)
	}

	// First member becomes active and gets a pre-populated log.
	settings, err := svc.Settings(ctx)
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if settings.ActiveMemberID != crew[0].ID {
		t.Fatalf("first member should be active, got %q", settings.ActiveMemberID)
	}
	log, err := svc.Log(ctx, crew[0].ID)
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if len(log.Days) != storage.CycleDays {
		t.Fatalf("log should have %d days, got %d", storage.CycleDays, len(log.Days))
	}
}

func TestAddCrewMemberDuplicateIsNoop(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	addMember(t, svc, "amira", "Amira", TierPilot)

	added, err := svc.AddCrewMember(ctx, storage.CrewMember{ID: "amira", Callsign: "Impostor", Tier: "captain"})
	if err != nil {
		t.Fatalf("duplicate add: %v", err)
	}
	if added {
		t.Fatalf("duplicate id should be rejected")
	}

	m, err := svc.Member(ctx, "amira")
	if err != nil {
		t.Fatalf("member: %v", err)
	}
	if m.Callsign != "Amira" || m.Tier != string(TierPilot) {
		t.Fatalf("existing member was overwritten: %+v", m)
	}
}

func TestRemoveCrewMemberCascades(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	addMember(t, svc, "amira", "Amira", TierCadet)
	addMember(t, svc, "zayd", "Zayd", TierCadet)

	done := true
	if _, err := svc.SaveDay(ctx, "amira", 1, map[string]storage.RecordedValue{
		"fajr": {Done: &done},
	}); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := svc.RemoveCrewMember(ctx, "amira"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	if _, err := svc.Member(ctx, "amira"); !errors.Is(err, ErrUnknownMember) {
		t.Fatalf("expected ErrUnknownMember, got %v", err)
	}
	settings, err := svc.Settings(ctx)
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if settings.ActiveMemberID != "zayd" {
		t.Fatalf("active member should move to zayd, got %q", settings.ActiveMemberID)
	}

	// The removed member's history is gone from the store.
	log, err := svc.Store().Log(ctx, "amira")
	if err != nil {
		t.Fatalf("store log: %v", err)
	}
	if log.Days[0].SavedAt != nil {
		t.Fatalf("removed member's log should not survive")
	}
}

func TestRemoveUnknownMember(t *testing.T) {
	svc := newTestService(t)
	if err := svc.RemoveCrewMember(context.Background(), "ghost"); !errors.Is(err, ErrUnknownMember) {
		t.Fatalf("expected ErrUnknownMember, got %v", err)
	}
}

func TestSetOverridePatchMergesAcrossCalls(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.SetOverride(ctx, "quran", storage.MissionPatch{BaseXP: intptr(120)}); err != nil {
		t.Fatalf("first override: %v", err)
	}
	if err := svc.SetOverride(ctx, "quran", storage.MissionPatch{Name: strptr("Night Reading")}); err != nil {
		t.Fatalf("second override: %v", err)
	}

	m := missionByID(t, svc, "quran")
	if m.BaseXP != 120 || m.Name != "Night Reading" {
		t.Fatalf("overrides should accumulate, got %+v", m)
	}
	// Fields never overridden keep their built-in values.
	if m.DefaultTarget != 20 || m.Unit != "pages" {
		t.Fatalf("built-in fields lost: %+v", m)
	}

	if err := svc.ClearOverride(ctx, "quran"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	m = missionByID(t, svc, "quran")
	if m.BaseXP != 100 || m.Name != "Quran Reading" {
		t.Fatalf("clear should restore built-in, got %+v", m)
	}
	// Clearing an absent override is a no-op.
	if err := svc.ClearOverride(ctx, "quran"); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestSetOverrideRejectsNonBuiltins(t *testing.T) {
	svc := newTestService(t)
	err := svc.SetOverride(context.Background(), "custom-xyz", storage.MissionPatch{BaseXP: intptr(1)})
	if !errors.Is(err, ErrUnknownMission) {
		t.Fatalf("expected ErrUnknownMission, got %v", err)
	}
}

func TestCustomMissionLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.AddCustomMission(ctx, storage.Mission{
		Name: "  Family Iftar Help  ", Type: "boolean", BaseXP: 30,
	})
	if err != nil {
		t.Fatalf("add custom: %v", err)
	}
	if !strings.HasPrefix(created.ID, CustomIDPrefix) {
		t.Fatalf("custom id missing prefix: %s", created.ID)
	}
	if created.Name != "Family Iftar Help" {
		t.Fatalf("name should be trimmed, got %q", created.Name)
	}

	if err := svc.UpdateCustomMission(ctx, created.ID, storage.MissionPatch{BaseXP: intptr(45)}); err != nil {
		t.Fatalf("update custom: %v", err)
	}
	if m := missionByID(t, svc, created.ID); m.BaseXP != 45 {
		t.Fatalf("update not applied: %+v", m)
	}

	if err := svc.RemoveCustomMission(ctx, created.ID); err != nil {
		t.Fatalf("remove custom: %v", err)
	}
	missions, err := svc.Missions(ctx)
	if err != nil {
		t.Fatalf("missions: %v", err)
	}
	for _, m := range missions {
		if m.ID == created.ID {
			t.Fatalf("removed custom still listed")
		}
	}
}

func TestAddCustomMissionValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddCustomMission(ctx, storage.Mission{Name: "  ", Type: "boolean"}); err == nil {
		t.Fatalf("blank name should be rejected")
	}
	if _, err := svc.AddCustomMission(ctx, storage.Mission{Name: "X", Type: "counter"}); err == nil {
		t.Fatalf("unknown type should be rejected")
	}
	if _, err := svc.AddCustomMission(ctx, storage.Mission{Name: "X", Type: "boolean", BaseXP: -5}); err == nil {
		t.Fatalf("negative base XP should be rejected")
	}
}

func TestNotifyFiresOnMutations(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	fired := 0
	svc.SetNotify(func() { fired++ })

	addMember(t, svc, "amira", "Amira", TierCadet)
	if fired != 1 {
		t.Fatalf("add should notify once, got %d", fired)
	}

	if _, err := svc.Crew(ctx); err != nil {
		t.Fatalf("crew: %v", err)
	}
	if fired != 1 {
		t.Fatalf("reads must not notify, got %d", fired)
	}

	if err := svc.SetEnabledMissions(ctx, []string{"fajr"}); err != nil {
		t.Fatalf("enable: %v", err)
	}
	if fired != 2 {
		t.Fatalf("settings write should notify, got %d", fired)
	}
}

func missionByID(t *testing.T, svc *Service, id string) storage.Mission {
	t.Helper()
	missions, err := svc.Missions(context.Background())
	if err != nil {
		t.Fatalf("missions: %v", err)
	}
	for _, m := range missions {
		if m.ID == id {
			return m
		}
	}
	t.Fatalf("mission %s not in catalog", id)
	return storage.Mission{}
}
