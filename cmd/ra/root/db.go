package root

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/salinovbadr/ramadhan-adventure-sub000/internal/config"
	"github.com/salinovbadr/ramadhan-adventure-sub000/internal/engine"
	"github.com/salinovbadr/ramadhan-adventure-sub000/internal/storage"
	syncx "github.com/salinovbadr/ramadhan-adventure-sub000/internal/sync"
	"github.com/salinovbadr/ramadhan-adventure-sub000/internal/ui"
)

// session wires the store, the service, and the sync engine for one CLI
// invocation. Mutating commands mark the session dirty; cleanup flushes the
// pending push before the process exits (the debounce window would otherwise
// outlive us).
type session struct {
	cfg   config.Config
	svc   *engine.Service
	sync  *syncx.Engine
	dirty bool
}

func openSession(ctx context.Context) (*session, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	path, err := storage.ResolveDBPath(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}

	store := storage.NewStore(db)
	svc := engine.NewService(store)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	var remote syncx.Remote
	key := cfg.SyncKey
	if cfg.RemoteURL != "" {
		remote = syncx.NewHTTPRemote(cfg.RemoteURL)
		if key == "" {
			key, err = store.DeviceID(ctx)
			if err != nil {
				_ = db.Close()
				return nil, nil, err
			}
		}
	}
	syncEngine := syncx.New(syncx.Config{
		Store:    store,
		Remote:   remote,
		Key:      key,
		Debounce: cfg.SyncDebounce,
		Logger:   logger,
	})

	if err := syncEngine.ReconcileOnLoad(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	s := &session{cfg: cfg, svc: svc, sync: syncEngine}
	svc.SetNotify(func() {
		s.dirty = true
		syncEngine.Notify()
	})

	cleanup := func() {
		if s.dirty {
			if err := syncEngine.Flush(context.Background()); err != nil {
				fmt.Fprintln(os.Stderr, ui.Muted.Render(ui.IconWarn+" sync push failed; changes stay local: "+err.Error()))
			}
		}
		syncEngine.Close()
		_ = db.Close()
	}
	return s, cleanup, nil
}

// activeMemberID resolves the explicit flag value or falls back to the
// configured active crew member.
func (s *session) activeMemberID(ctx context.Context, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	settings, err := s.svc.Settings(ctx)
	if err != nil {
		return "", err
	}
	if settings.ActiveMemberID == "" {
		return "", fmt.Errorf("no active crew member; add one with `ra crew add` or pass --member")
	}
	return settings.ActiveMemberID, nil
}
