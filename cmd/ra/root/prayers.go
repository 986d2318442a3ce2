package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/salinovbadr/ramadhan-adventure-sub000/internal/config"
	"github.com/salinovbadr/ramadhan-adventure-sub000/internal/prayertime"
	"github.com/salinovbadr/ramadhan-adventure-sub000/internal/ui"
)

func newPrayersCmd() *cobra.Command {
	var lat, lon float64

	cmd := &cobra.Command{
		Use:   "prayers",
		Short: "Show today's prayer times for the configured coordinates",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("lat") {
				lat = cfg.Latitude
			}
			if !cmd.Flags().Changed("lon") {
				lon = cfg.Longitude
			}
			if lat == 0 && lon == 0 {
				return fmt.Errorf("no coordinates; set RA_LAT/RA_LON or pass --lat/--lon")
			}

			client := prayertime.NewClient(cfg.PrayerAPIBase)
			times, err := client.Timings(context.Background(), time.Now(), lat, lon)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconClock, "Prayer Times"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Fajr", times.Fajr))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Dhuhr", times.Dhuhr))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Asr", times.Asr))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Maghrib", times.Maghrib))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Isha", times.Isha))
			return nil
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "Latitude")
	cmd.Flags().Float64Var(&lon, "lon", 0, "Longitude")
	return cmd
}
