package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

const (
	keyCrew           = "crew"
	keySettings       = "settings"
	keyCustomMissions = "custom_missions"
	keySyncState      = "sync_state"
	keyDeviceID       = "device_id"

	logKeyPrefix = "log:"
)

func logKey(memberID string) string { return logKeyPrefix + memberID }

// Store persists every logical collection as a whole-value JSON blob. All
// reads return fresh unmarshaled copies, so callers cannot alias stored state.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) getBlob(ctx context.Context, key string) ([]byte, bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT value FROM collections WHERE key = ?`, key)
	var raw string
	if err := row.Scan(&raw); err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("collection get %s: %w", key, err)
	}
	return []byte(raw), true, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func putBlob(ctx context.Context, e execer, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	_, err = e.ExecContext(ctx, `
		INSERT INTO collections (key, value, saved_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, saved_at = CURRENT_TIMESTAMP
	`, key, string(data))
	if err != nil {
		return fmt.Errorf("collection put %s: %w", key, err)
	}
	return nil
}

func (s *Store) putJSON(ctx context.Context, key string, v any) error {
	return putBlob(ctx, s.db, key, v)
}

func getJSON[T any](ctx context.Context, s *Store, key string, out *T) (bool, error) {
	raw, ok, err := s.getBlob(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) Crew(ctx context.Context) ([]CrewMember, error) {
	var crew []CrewMember
	if _, err := getJSON(ctx, s, keyCrew, &crew); err != nil {
		return nil, err
	}
	return crew, nil
}

func (s *Store) SaveCrew(ctx context.Context, crew []CrewMember) error {
	return s.putJSON(ctx, keyCrew, crew)
}

func (s *Store) Settings(ctx context.Context) (Settings, error) {
	var st Settings
	if _, err := getJSON(ctx, s, keySettings, &st); err != nil {
		return Settings{}, err
	}
	return st, nil
}

func (s *Store) SaveSettings(ctx context.Context, st Settings) error {
	return s.putJSON(ctx, keySettings, st)
}

func (s *Store) CustomMissions(ctx context.Context) ([]Mission, error) {
	var customs []Mission
	if _, err := getJSON(ctx, s, keyCustomMissions, &customs); err != nil {
		return nil, err
	}
	return customs, nil
}

func (s *Store) SaveCustomMissions(ctx context.Context, customs []Mission) error {
	return s.putJSON(ctx, keyCustomMissions, customs)
}

// Log returns the member's day log, creating and persisting an empty
// 30-slot log on first access. Logs edited by hand to the wrong length are
// padded or truncated back to CycleDays before use.
func (s *Store) Log(ctx context.Context, memberID string) (DayLog, error) {
	var log DayLog
	ok, err := getJSON(ctx, s, logKey(memberID), &log)
	if err != nil {
		return DayLog{}, err
	}
	if !ok {
		log = NewDayLog(memberID)
		if err := s.SaveLog(ctx, log); err != nil {
			return DayLog{}, err
		}
		return log, nil
	}
	log.MemberID = memberID
	for len(log.Days) < CycleDays {
		log.Days = append(log.Days, DayEntry{})
	}
	log.Days = log.Days[:CycleDays]
	return log, nil
}

func (s *Store) SaveLog(ctx context.Context, log DayLog) error {
	if log.MemberID == "" {
		return fmt.Errorf("save log: member id is required")
	}
	return s.putJSON(ctx, logKey(log.MemberID), log)
}

func (s *Store) DeleteLog(ctx context.Context, memberID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM collections WHERE key = ?`, logKey(memberID))
	if err != nil {
		return fmt.Errorf("delete log %s: %w", memberID, err)
	}
	return nil
}

func (s *Store) SyncState(ctx context.Context) (SyncState, error) {
	var st SyncState
	if _, err := getJSON(ctx, s, keySyncState, &st); err != nil {
		return SyncState{}, err
	}
	return st, nil
}

func (s *Store) SaveSyncState(ctx context.Context, st SyncState) error {
	return s.putJSON(ctx, keySyncState, st)
}

// DeviceID returns the installation's device id, generating and persisting
// one on first use.
func (s *Store) DeviceID(ctx context.Context) (string, error) {
	var id string
	ok, err := getJSON(ctx, s, keyDeviceID, &id)
	if err != nil {
		return "", err
	}
	if ok && id != "" {
		return id, nil
	}
	id = uuid.NewString()
	if err := s.putJSON(ctx, keyDeviceID, id); err != nil {
		return "", err
	}
	return id, nil
}

// Snapshot assembles the full local state for a sync push. Logs are included
// for every current crew member.
func (s *Store) Snapshot(ctx context.Context) (Snapshot, error) {
	crew, err := s.Crew(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	settings, err := s.Settings(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	customs, err := s.CustomMissions(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	logs := make(map[string]DayLog, len(crew))
	for _, m := range crew {
		log, err := s.Log(ctx, m.ID)
		if err != nil {
			return Snapshot{}, err
		}
		logs[m.ID] = log
	}
	return Snapshot{
		Crew:           crew,
		Logs:           logs,
		Settings:       settings,
		CustomMissions: customs,
	}, nil
}

// ReplaceAll overwrites every local collection with the snapshot's contents
// in one transaction. Logs for members no longer in the snapshot are removed.
func (s *Store) ReplaceAll(ctx context.Context, snap Snapshot) error {
	return WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := putBlob(ctx, tx, keyCrew, snap.Crew); err != nil {
			return err
		}
		if err := putBlob(ctx, tx, keySettings, snap.Settings); err != nil {
			return err
		}
		if err := putBlob(ctx, tx, keyCustomMissions, snap.CustomMissions); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM collections WHERE key LIKE ?`, logKeyPrefix+"%"); err != nil {
			return fmt.Errorf("clear logs: %w", err)
		}
		for memberID, log := range snap.Logs {
			log.MemberID = memberID
			if err := putBlob(ctx, tx, logKey(memberID), log); err != nil {
				return err
			}
		}
		return nil
	})
}
