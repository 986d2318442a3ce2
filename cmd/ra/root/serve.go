package root

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/salinovbadr/ramadhan-adventure-sub000/internal/config"
	"github.com/salinovbadr/ramadhan-adventure-sub000/internal/storage"
	syncx "github.com/salinovbadr/ramadhan-adventure-sub000/internal/sync"
)

func newServeCmd() *cobra.Command {
	var addr string
	var dbPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a self-hosted snapshot mirror server",
		Long: `Run the household's sync endpoint. Devices point RA_REMOTE_URL at this
server and share one document via RA_SYNC_KEY.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.ListenAddr
			}
			if dbPath == "" {
				dbPath = cfg.DBPath
			}

			ctx := context.Background()
			path, err := storage.ResolveDBPath(dbPath)
			if err != nil {
				return err
			}
			db, err := storage.Open(ctx, path)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
			return syncx.ListenAndServe(addr, storage.NewDocumentRepo(db), logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from RA_LISTEN)")
	cmd.Flags().StringVar(&dbPath, "db", "", "Database path (default from RA_DB)")
	return cmd
}
