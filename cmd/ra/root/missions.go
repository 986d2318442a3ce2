package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/salinovbadr/ramadhan-adventure-sub000/internal/engine"
	"github.com/salinovbadr/ramadhan-adventure-sub000/internal/ui"
)

func newMissionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "missions",
		Short: "Show and configure the mission catalog",
	}
	cmd.AddCommand(newMissionsListCmd(), newMissionsEnableCmd())
	return cmd
}

func newMissionsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List effective missions (built-ins with overrides, then customs)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, cleanup, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			missions, err := s.svc.Missions(ctx)
			if err != nil {
				return err
			}
			settings, err := s.svc.Settings(ctx)
			if err != nil {
				return err
			}
			enabled := engine.EnabledSet(settings)

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconRocket, "Mission Catalog"))
			for _, m := range missions {
				state := ui.Good.Render("on ")
				if enabled != nil && !enabled[m.ID] {
					state = ui.Bad.Render("off")
				}
				detail := fmt.Sprintf("%d%s", m.BaseXP, ui.IconStar)
				if engine.MissionType(m.Type) == engine.MissionPartial {
					detail = fmt.Sprintf("%d%s per %.0f %s", m.BaseXP, ui.IconStar, m.DefaultTarget, m.Unit)
				}
				days := ""
				if len(m.ActiveDays) > 0 {
					days = ui.Muted.Render(fmt.Sprintf(" days %v", m.ActiveDays))
				}
				assigned := ""
				if m.AssignedTo != nil {
					assigned = ui.Muted.Render(fmt.Sprintf(" crew %v", m.AssignedTo))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-16s %-28s %s%s%s\n",
					state, ui.Muted.Render(m.ID), m.Name, detail, days, assigned)
			}
			return nil
		},
	}
}

func newMissionsEnableCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "enable [mission ids...]",
		Short: "Restrict the catalog to an allow-list (or --all to re-enable everything)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && len(args) == 0 {
				return fmt.Errorf("pass mission ids or --all")
			}
			ctx := context.Background()
			s, cleanup, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if all {
				if err := s.svc.SetEnabledMissions(ctx, nil); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone+" All missions enabled."))
				return nil
			}
			if err := s.svc.SetEnabledMissions(ctx, args); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Enabled: %s\n", ui.Good.Render(ui.IconDone), strings.Join(args, ", "))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Clear the allow-list (every mission enabled)")
	return cmd
}
