package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salinovbadr/ramadhan-adventure-sub000/internal/storage"
	"github.com/salinovbadr/ramadhan-adventure-sub000/internal/ui"
)

func newCrewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crew",
		Short: "Manage the crew roster",
	}
	cmd.AddCommand(
		newCrewAddCmd(),
		newCrewListCmd(),
		newCrewRemoveCmd(),
		newCrewUseCmd(),
		newCrewTierCmd(),
	)
	return cmd
}

func newCrewAddCmd() *cobra.Command {
	var id string
	var tier string
	var avatar string

	cmd := &cobra.Command{
		Use:   "add <callsign>",
		Short: "Add a crew member (creates their 30-day log)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("callsign is required")
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

			member := storage.CrewMember{ID: id, Callsign: args[0], Tier: tier, Avatar: avatar}
			added, err := s.svc.AddCrewMember(ctx, member)
			if err != nil {
				return err
			}
			if !added {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconWarn+" A crew member with that id already exists; nothing changed."))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s joined the crew %s\n",
				ui.Good.Render(ui.IconCrew+" Welcome aboard,"), args[0], ui.TierBadge(tier))
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Explicit member id (default: generated)")
	cmd.Flags().StringVarP(&tier, "tier", "t", "cadet", "Difficulty tier (cadet|pilot|commander|captain)")
	cmd.Flags().StringVar(&avatar, "avatar", "", "Avatar reference")
	return cmd
}

func newCrewListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List crew members",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, cleanup, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			crew, err := s.svc.Crew(ctx)
			if err != nil {
				return err
			}
			settings, err := s.svc.Settings(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconCrew, "Crew Roster"))
			if len(crew) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No crew yet. Add one with `ra crew add <callsign>`."))
				return nil
			}
			for _, m := range crew {
				marker := "  "
				if m.ID == settings.ActiveMemberID {
					marker = ui.Good.Render("▶ ")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s%s %s %s\n", marker, m.Callsign, ui.TierBadge(m.Tier), ui.Muted.Render(m.ID))
			}
			return nil
		},
	}
}

func newCrewRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a crew member (deletes their log)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("member id is required")
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

			if err := s.svc.RemoveCrewMember(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconWarn+" Crew member removed; their log is gone."))
			return nil
		},
	}
}

func newCrewUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use <id>",
		Short: "Set the active crew member",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("member id is required")
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

			if err := s.svc.SetActiveMember(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone+" Active crew member set."))
			return nil
		},
	}
}

func newCrewTierCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tier <id> <tier>",
		Short: "Change a crew member's difficulty tier",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("member id and tier are required")
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

			member, err := s.svc.Member(ctx, args[0])
			if err != nil {
				return err
			}
			member.Tier = args[1]
			if err := s.svc.UpdateCrewMember(ctx, *member); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s is now %s\n", ui.Good.Render(ui.IconDone), member.Callsign, ui.TierBadge(args[1]))
			return nil
		},
	}
}
