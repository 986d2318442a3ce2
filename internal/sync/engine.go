package sync

import (
	"context"
	"log/slog"
	stdsync "sync"
	"time"

	"github.com/salinovbadr/ramadhan-adventure-sub000/internal/storage"
)

// DefaultDebounce is how long the engine waits after the last local mutation
// before pushing. Bursts of writes inside the window coalesce into one push.
const DefaultDebounce = 2 * time.Second

// Config holds the options for New.
type Config struct {
	Store    *storage.Store
	Remote   Remote // nil disables syncing entirely
	Key      string // household sync key the remote document is stored under
	Debounce time.Duration
	Logger   *slog.Logger
}

// Engine reconciles the local store with a remote snapshot mirror. Conflict
// policy is last-writer-wins over the whole snapshot: on load the remote copy
// replaces local state only when strictly newer than the last local sync, and
// every local mutation schedules a debounced full-state push. Remote failures
// are logged and never propagate into local operation.
type Engine struct {
	store    *storage.Store
	remote   Remote
	key      string
	debounce time.Duration
	logger   *slog.Logger

	mu     stdsync.Mutex
	timer  *time.Timer
	closed bool
}

func New(cfg Config) *Engine {
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		store:    cfg.Store,
		remote:   cfg.Remote,
		key:      cfg.Key,
		debounce: debounce,
		logger:   logger,
	}
}

func (e *Engine) Enabled() bool {
	return e != nil && e.remote != nil && e.key != ""
}

// ReconcileOnLoad fetches the remote snapshot and overwrites every local
// collection iff the remote copy is strictly newer than the last local sync.
// An absent document, an equal-or-older one, or any fetch failure leaves
// local state untouched.
func (e *Engine) ReconcileOnLoad(ctx context.Context) error {
	if !e.Enabled() {
		return nil
	}

	snap, err := e.remote.Fetch(ctx, e.key)
	if err != nil {
		e.logger.Warn("sync: fetch failed, keeping local state", "error", err)
		return nil
	}
	if snap == nil {
		return nil
	}

	state, err := e.store.SyncState(ctx)
	if err != nil {
		return err
	}
	var lastSync time.Time
	if state.LastSync != nil {
		lastSync = *state.LastSync
	}
	if !snap.UpdatedAt.After(lastSync) {
		return nil
	}

	if err := e.store.ReplaceAll(ctx, *snap); err != nil {
		return err
	}
	now := time.Now().UTC()
	if err := e.store.SaveSyncState(ctx, storage.SyncState{LastSync: &now}); err != nil {
		return err
	}
	e.logger.Info("sync: adopted remote snapshot", "remoteUpdatedAt", snap.UpdatedAt, "device", snap.DeviceID)
	return nil
}

// Notify schedules a debounced push. A pending timer is cancelled and
// re-armed, so only the state after the last mutation in a burst is pushed.
func (e *Engine) Notify() {
	if !e.Enabled() {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = time.AfterFunc(e.debounce, func() {
		if err := e.push(context.Background()); err != nil {
			e.logger.Warn("sync: push failed, will retry on next change", "error", err)
		}
	})
}

// Flush cancels any pending debounce and pushes immediately. Short-lived CLI
// invocations call this on exit; the debounce window proper only matters for
// long-running sessions.
func (e *Engine) Flush(ctx context.Context) error {
	if !e.Enabled() {
		return nil
	}

	e.mu.Lock()
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.mu.Unlock()

	return e.push(ctx)
}

func (e *Engine) push(ctx context.Context) error {
	snap, err := e.store.Snapshot(ctx)
	if err != nil {
		return err
	}
	deviceID, err := e.store.DeviceID(ctx)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	snap.DeviceID = deviceID
	snap.UpdatedAt = now

	if err := e.remote.Push(ctx, e.key, snap); err != nil {
		return err
	}
	return e.store.SaveSyncState(ctx, storage.SyncState{LastSync: &now})
}

// Close stops any pending push timer. In-flight pushes run to completion.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}
