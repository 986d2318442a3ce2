package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SyncDebounce != 2*time.Second {
		t.Fatalf("debounce default=%v, want 2s", cfg.SyncDebounce)
	}
	if cfg.ListenAddr != ":8787" {
		t.Fatalf("listen default=%q", cfg.ListenAddr)
	}
	if cfg.PrayerAPIBase != "https://api.aladhan.com" {
		t.Fatalf("prayer api default=%q", cfg.PrayerAPIBase)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("RA_DB", "/tmp/ra.db")
	t.Setenv("RA_REMOTE_URL", "https://mirror.example.com")
	t.Setenv("RA_SYNC_KEY", "house-1")
	t.Setenv("RA_SYNC_DEBOUNCE", "5s")
	t.Setenv("RA_LAT", "21.42")
	t.Setenv("RA_LON", "39.83")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != "/tmp/ra.db" || cfg.RemoteURL != "https://mirror.example.com" || cfg.SyncKey != "house-1" {
		t.Fatalf("env values not applied: %+v", cfg)
	}
	if cfg.SyncDebounce != 5*time.Second {
		t.Fatalf("debounce=%v, want 5s", cfg.SyncDebounce)
	}
	if cfg.Latitude != 21.42 || cfg.Longitude != 39.83 {
		t.Fatalf("coordinates not applied: %+v", cfg)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("RA_SYNC_DEBOUNCE", "soon")
	if _, err := Load(); err == nil {
		t.Fatalf("invalid duration should fail")
	}
}
