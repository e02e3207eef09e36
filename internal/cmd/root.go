// Package cmd provides the CLI commands for stevedore.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

const version = "0.3.0"

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "stevedore",
	Short: "Load your models onto the cluster - InferenceService manifests from simple configs",
	Long: `stevedore - InferenceService manifests from simple configs

Turns a declarative model config (YAML or JSON file, or plain flags) into a
KServe InferenceService manifest, with sensible defaults for resources,
scaling, and runtime selection.

MANIFEST COMMANDS
  generate              Render a manifest from a config file or flags
    --config, -c <file> Config file (.yaml, .yml, or .json)
    --dry-run, -n       Print the manifest instead of writing it
    --validate-only     Check config and rendered output, write nothing
  validate              Validate a config file end to end
  sample <preset>       Emit a starter config (basic, gpu, complete)

PROJECT COMMANDS
  init [dir]            Scaffold a project (configs/, manifests/, starter config)
  history               List previously written manifests
    --prune             Drop records beyond the retention limit

MAINTENANCE
  update                Update stevedore to the latest release
  completion            Generate shell completions`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetVersionTemplate("stevedore version {{.Version}}\n")
}
