package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salinovbadr/ramadhan-adventure-sub000/internal/storage"
	"github.com/salinovbadr/ramadhan-adventure-sub000/internal/tui"
)

func newBoardCmd() *cobra.Command {
	var day int

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the daily mission board (TUI)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if day < 1 || day > storage.CycleDays {
				return fmt.Errorf("day must be between 1 and %d", storage.CycleDays)
			}
			ctx := context.Background()
			s, cleanup, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.RunBoard(ctx, s.svc, day, cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVarP(&day, "day", "d", 1, "Cycle day (1-30)")
	return cmd
}
