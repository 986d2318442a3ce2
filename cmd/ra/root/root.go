package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/salinovbadr/ramadhan-adventure-sub000/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "ra",
	Short:         "Ramadhan Adventure: local-first family mission tracker",
	Long:          "Ramadhan Adventure tracks your crew's daily missions across the 30-day cycle, scores them into stars, and mirrors everything to an optional sync server.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newCrewCmd(),
		newMissionsCmd(),
		newOverrideCmd(),
		newCustomCmd(),
		newSaveCmd(),
		newStatusCmd(),
		newBoardCmd(),
		newSyncCmd(),
		newServeCmd(),
		newPrayersCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
