package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salinovbadr/ramadhan-adventure-sub000/internal/ui"
)

func newOverrideCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "override",
		Short: "Patch built-in missions without editing the catalog",
	}
	cmd.AddCommand(newOverrideSetCmd(), newOverrideClearCmd())
	return cmd
}

func newOverrideSetCmd() *cobra.Command {
	var flags missionFlags

	cmd := &cobra.Command{
		Use:   "set <mission id>",
		Short: "Merge field overrides onto a built-in mission",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("mission id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := flags.patch(cmd)
			if err != nil {
				return err
			}

			ctx := context.Background()
			s, cleanup, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := s.svc.SetOverride(ctx, args[0], patch); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Override saved for %s\n", ui.Good.Render(ui.IconDone), ui.Muted.Render(args[0]))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func newOverrideClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <mission id>",
		Short: "Drop every override for a built-in mission",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("mission id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, cleanup, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := s.svc.ClearOverride(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Override cleared for %s\n", ui.Good.Render(ui.IconDone), ui.Muted.Render(args[0]))
			return nil
		},
	}
}
