package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salinovbadr/ramadhan-adventure-sub000/internal/storage"
	"github.com/salinovbadr/ramadhan-adventure-sub000/internal/ui"
)

func newCustomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "custom",
		Short: "Manage user-authored missions",
	}
	cmd.AddCommand(newCustomAddCmd(), newCustomUpdateCmd(), newCustomRemoveCmd())
	return cmd
}

func newCustomAddCmd() *cobra.Command {
	var missionType string
	var flags missionFlags

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a custom mission",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("mission name is required")
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

			mission := storage.Mission{
				Name:          args[0],
				Description:   flags.description,
				Type:          missionType,
				BaseXP:        flags.baseXP,
				DefaultTarget: flags.target,
				Unit:          flags.unit,
				SortKey:       flags.sortKey,
			}
			if cmd.Flags().Changed("days") {
				mission.ActiveDays = flags.days
			}
			if cmd.Flags().Changed("assign") {
				mission.AssignedTo = flags.assign
			}

			created, err := s.svc.AddCustomMission(ctx, mission)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s added as %s\n",
				ui.Good.Render(ui.IconRocket+" Mission"), created.Name, ui.Muted.Render(created.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&missionType, "type", "boolean", "Mission type (boolean|partial)")
	flags.register(cmd)
	return cmd
}

func newCustomUpdateCmd() *cobra.Command {
	var flags missionFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Patch a custom mission (unset flags keep their values)",
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

			if err := s.svc.UpdateCustomMission(ctx, args[0], patch); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Mission %s updated\n", ui.Good.Render(ui.IconDone), ui.Muted.Render(args[0]))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func newCustomRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a custom mission",
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

			if err := s.svc.RemoveCustomMission(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconWarn+" Custom mission removed. Saved history keeps its scores."))
			return nil
		},
	}
}
