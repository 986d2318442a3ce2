package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salinovbadr/ramadhan-adventure-sub000/internal/ui"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show crew totals, streaks, and team progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, cleanup, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			stats, err := s.svc.TeamStats(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconMoon, "Crew Status"))
			if len(stats.Members) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No crew yet. Add one with `ra crew add <callsign>`."))
				return nil
			}

			for _, ms := range stats.Members {
				streak := ui.Muted.Render("no streak")
				if ms.Streak > 0 {
					streak = ui.Good.Render(fmt.Sprintf("%d-day streak", ms.Streak))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "- %s %s  %s  %s\n",
					ms.Member.Callsign, ui.TierBadge(ms.Member.Tier),
					ui.Gold.Render(fmt.Sprintf("%d%s", ms.TotalStars, ui.IconStar)), streak)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "")

			fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render(ui.IconRocket+" Team Progress"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Stars", fmt.Sprintf("%d of %d possible", stats.TotalStars, stats.MaxStars)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.ProgressBar(stats.TotalStars, stats.MaxStars, 30))

			state, err := s.svc.Store().SyncState(ctx)
			if err != nil {
				return err
			}
			if state.LastSync != nil {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(fmt.Sprintf("%s last sync %s", ui.IconSync, state.LastSync.Format("2006-01-02 15:04:05"))))
			}
			return nil
		},
	}
}
