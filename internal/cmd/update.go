package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/stevedore/internal/ui"
	"github.com/cameronsjo/stevedore/internal/update"
)

var updateCheck bool

// updateCmd represents the update command.
var updateCmd = &cobra.Command{
	Use:     "update",
	Aliases: []string{"upgrade", "selfupdate"},
	Short:   "Update stevedore to the latest release",
	Long: `Check GitHub releases for a newer stevedore build and install it in place
of the running binary.

Examples:
  stevedore update           # Install the newest release
  stevedore update --check   # Report whether one exists, install nothing`,
	Run: runUpdate,
}

func init() {
	updateCmd.Flags().BoolVar(&updateCheck, "check", false, "Only report whether a newer release exists")

	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) {
	ui.Info("stevedore %s (%s)", version, update.PlatformInfo())

	if updateCheck {
		reportAvailable()
		return
	}
	installLatest()
}

func reportAvailable() {
	release, available, err := update.CheckForUpdate(version)
	if err != nil {
		ui.Error("Check for updates: %v", err)
		return
	}
	if !available {
		ui.Success("Already on the newest release")
		return
	}

	ui.Success("Release %s available (published %s)", release.Version, release.PublishedAt)
	ui.Info("Run: stevedore update")

	if release.Changelog != "" {
		fmt.Println()
		ui.Header("Changes:")
		for _, line := range headLines(release.Changelog, 10) {
			fmt.Println("  " + line)
		}
	}
}

func installLatest() {
	release, err := update.Update(version)
	if err != nil {
		ui.Error("Update: %v", err)
		return
	}
	if release == nil {
		ui.Success("Already on the newest release")
		return
	}

	ui.Success("Updated to %s", release.Version)
	ui.Info("Release notes: %s", release.ReleaseURL)
}

// headLines returns at most n leading lines of s.
func headLines(s string, n int) []string {
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return lines
}
