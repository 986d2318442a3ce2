package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/salinovbadr/ramadhan-adventure-sub000/internal/storage"
)

func TestSaveDayCadetScenario(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	addMember(t, svc, "zayd", "Zayd", TierCadet)
	if err := svc.SetEnabledMissions(ctx, []string{"fajr", "quran"}); err != nil {
		t.Fatalf("enable: %v", err)
	}

	done := true
	res, err := svc.SaveDay(ctx, "zayd", 1, map[string]storage.RecordedValue{
		"fajr":  {Done: &done},
		"quran": {Achieved: f64(10)},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	// fajr 50 + quran round(100 * 10/20) = 100
	if res.XPEarned != 100 {
		t.Fatalf("day total=%d, want 100", res.XPEarned)
	}
	if res.Missions != 2 {
		t.Fatalf("missions scored=%d, want 2", res.Missions)
	}

	log, err := svc.Log(ctx, "zayd")
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	entry := log.Days[0]
	if !entry.Completed || entry.SavedAt == nil {
		t.Fatalf("day should be completed and stamped: %+v", entry)
	}
	if entry.Results["fajr"].XPAwarded != 50 || entry.Results["quran"].XPAwarded != 50 {
		t.Fatalf("per-mission awards wrong: %+v", entry.Results)
	}
}

func TestSaveDayIsIdempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	addMember(t, svc, "zayd", "Zayd", TierCommander)

	done := true
	values := map[string]storage.RecordedValue{
		"fasting": {Done: &done},
		"quran":   {Achieved: f64(7)},
	}
	first, err := svc.SaveDay(ctx, "zayd", 3, values)
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	second, err := svc.SaveDay(ctx, "zayd", 3, values)
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if first.XPEarned != second.XPEarned {
		t.Fatalf("resave changed the total: %d vs %d", first.XPEarned, second.XPEarned)
	}
}

func TestSaveDayTotalIsSumOfAwards(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	addMember(t, svc, "zayd", "Zayd", TierPilot)

	done := true
	res, err := svc.SaveDay(ctx, "zayd", 21, map[string]storage.RecordedValue{
		"fasting":       {Done: &done},
		"fajr":          {Done: &done},
		"quran":         {Achieved: f64(13)},
		"laylatul-qadr": {Done: &done}, // active on day 21
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	log, err := svc.Log(ctx, "zayd")
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	sum := 0
	for _, r := range log.Days[20].Results {
		sum += r.XPAwarded
	}
	if sum != res.XPEarned || sum != log.Days[20].XPEarned {
		t.Fatalf("total %d must equal sum of awards %d", res.XPEarned, sum)
	}
}

func TestSaveDayMissingSubmissionsScoreZero(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	addMember(t, svc, "zayd", "Zayd", TierCadet)
	if err := svc.SetEnabledMissions(ctx, []string{"fajr", "dhuhr"}); err != nil {
		t.Fatalf("enable: %v", err)
	}

	done := true
	if _, err := svc.SaveDay(ctx, "zayd", 5, map[string]storage.RecordedValue{
		"fajr": {Done: &done},
	}); err != nil {
		t.Fatalf("save: %v", err)
	}

	log, err := svc.Log(ctx, "zayd")
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	entry := log.Days[4]
	r, ok := entry.Results["dhuhr"]
	if !ok {
		t.Fatalf("unsubmitted applicable mission should still be recorded")
	}
	if r.XPAwarded != 0 {
		t.Fatalf("unsubmitted mission awarded %d, want 0", r.XPAwarded)
	}
	if entry.XPEarned != 50 {
		t.Fatalf("day total=%d, want 50", entry.XPEarned)
	}
}

func TestSaveDayPreservesInapplicableHistory(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	addMember(t, svc, "zayd", "Zayd", TierCadet)
	if err := svc.SetEnabledMissions(ctx, []string{"fajr", "quran"}); err != nil {
		t.Fatalf("enable: %v", err)
	}

	done := true
	if _, err := svc.SaveDay(ctx, "zayd", 2, map[string]storage.RecordedValue{
		"fajr":  {Done: &done},
		"quran": {Achieved: f64(20)},
	}); err != nil {
		t.Fatalf("first save: %v", err)
	}

	// Narrow the allow-list, then resave the day with only the remaining
	// mission. The quran result must survive and still count.
	if err := svc.SetEnabledMissions(ctx, []string{"fajr"}); err != nil {
		t.Fatalf("narrow: %v", err)
	}
	res, err := svc.SaveDay(ctx, "zayd", 2, map[string]storage.RecordedValue{
		"fajr": {Done: &done},
	})
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if res.Missions != 1 {
		t.Fatalf("only fajr should be rescored, got %d", res.Missions)
	}

	log, err := svc.Log(ctx, "zayd")
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	entry := log.Days[1]
	if entry.Results["quran"].XPAwarded != 100 {
		t.Fatalf("historical quran result lost: %+v", entry.Results)
	}
	if entry.XPEarned != 150 {
		t.Fatalf("day total=%d, want 150 (50 fajr + 100 kept quran)", entry.XPEarned)
	}
}

func TestSaveDayRepairsInvalidTarget(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	addMember(t, svc, "zayd", "Zayd", TierCadet)
	if err := svc.SetEnabledMissions(ctx, []string{"quran"}); err != nil {
		t.Fatalf("enable: %v", err)
	}

	res, err := svc.SaveDay(ctx, "zayd", 1, map[string]storage.RecordedValue{
		"quran": {Achieved: f64(10), Target: f64(-4)},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if res.XPEarned != 50 {
		t.Fatalf("repaired target should yield 50, got %d", res.XPEarned)
	}

	log, err := svc.Log(ctx, "zayd")
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	v := log.Days[0].Results["quran"].Value
	if v.Target == nil || *v.Target != 20 {
		t.Fatalf("stored value should carry the repaired target, got %+v", v)
	}
}

func TestSaveDayUsesMemberTarget(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	addMember(t, svc, "zayd", "Zayd", TierCadet)
	if err := svc.SetEnabledMissions(ctx, []string{"quran"}); err != nil {
		t.Fatalf("enable: %v", err)
	}
	// A younger reader gets a lower page target.
	if err := svc.SetOverride(ctx, "quran", storage.MissionPatch{
		MemberTargets: map[string]storage.MemberTarget{"zayd": {Target: 10}},
	}); err != nil {
		t.Fatalf("override: %v", err)
	}

	res, err := svc.SaveDay(ctx, "zayd", 1, map[string]storage.RecordedValue{
		"quran": {Achieved: f64(10)},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if res.XPEarned != 100 {
		t.Fatalf("member target should apply: got %d, want 100", res.XPEarned)
	}
}

func TestSaveDayValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	addMember(t, svc, "zayd", "Zayd", TierCadet)

	for _, day := range []int{0, -1, storage.CycleDays + 1} {
		_, err := svc.SaveDay(ctx, "zayd", day, nil)
		var oor DayOutOfRangeError
		if !errors.As(err, &oor) {
			t.Fatalf("day %d: expected DayOutOfRangeError, got %v", day, err)
		}
	}

	if _, err := svc.SaveDay(ctx, "ghost", 1, nil); !errors.Is(err, ErrUnknownMember) {
		t.Fatalf("expected ErrUnknownMember, got %v", err)
	}
}

func TestEffectiveTarget(t *testing.T) {
	m := storage.Mission{
		ID: "quran", Type: "partial", DefaultTarget: 20, Unit: "pages",
		MemberTargets: map[string]storage.MemberTarget{
			"zayd":  {Target: 10},
			"amira": {Target: 2, Unit: "juz"},
		},
	}

	if target, unit := EffectiveTarget(m, "someone"); target != 20 || unit != "pages" {
		t.Fatalf("default target: %v %q", target, unit)
	}
	if target, unit := EffectiveTarget(m, "zayd"); target != 10 || unit != "pages" {
		t.Fatalf("member target should inherit mission unit: %v %q", target, unit)
	}
	if target, unit := EffectiveTarget(m, "amira"); target != 2 || unit != "juz" {
		t.Fatalf("member unit should win: %v %q", target, unit)
	}
}
