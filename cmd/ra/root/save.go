package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salinovbadr/ramadhan-adventure-sub000/internal/ui"
)

func newSaveCmd() *cobra.Command {
	var day int
	var member string
	var done []string
	var progress []string

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Record a cycle day for a crew member",
		Long: `Record one day's mission results and score them into stars.

Examples:
  ra save --day 3 --done fasting,fajr,taraweeh --progress quran=12
  ra save --day 3 --member <id> --done fasting

Saving recomputes the whole day from the given values; missions that are not
applicable on that day keep whatever history they already have.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseValues(done, progress)
			if err != nil {
				return err
			}

			ctx := context.Background()
			s, cleanup, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			memberID, err := s.activeMemberID(ctx, member)
			if err != nil {
				return err
			}

			res, err := s.svc.SaveDay(ctx, memberID, day, values)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Day %d saved: %d missions scored, %s\n",
				ui.Good.Render(ui.IconDone), res.Day, res.Missions,
				ui.Gold.Render(fmt.Sprintf("%d%s", res.XPEarned, ui.IconStar)))
			return nil
		},
	}

	cmd.Flags().IntVarP(&day, "day", "d", 1, "Cycle day (1-30)")
	cmd.Flags().StringVarP(&member, "member", "m", "", "Crew member id (default: active member)")
	cmd.Flags().StringSliceVar(&done, "done", nil, "Boolean mission ids completed today")
	cmd.Flags().StringSliceVar(&progress, "progress", nil, "Partial progress, missionID=amount")
	return cmd
}
