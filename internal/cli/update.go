package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var updateCheck bool

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Check for a newer spotatui release",
	Long: `Check for a newer spotatui release.

This is a stub: spotatui has no release channel wired up yet, so it only
reports the running version rather than fetching and installing one.`,
	Run: func(cmd *cobra.Command, args []string) {
		if JSONOutput() {
			info := map[string]string{
				"current_version": Version,
				"status":          "up-to-date",
			}
			out, _ := json.MarshalIndent(info, "", "  ")
			fmt.Println(string(out))
			return
		}

		fmt.Printf("spotatui %s is the version currently installed.\n", Version)
		if updateCheck {
			fmt.Println("no release channel is configured; install a newer build manually.")
		}
	},
}

func init() {
	updateCmd.Flags().BoolVar(&updateCheck, "check", false, "Only check, don't attempt to install")
	rootCmd.AddCommand(updateCmd)
}
