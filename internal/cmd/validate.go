package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/stevedore/internal/config"
	"github.com/cameronsjo/stevedore/internal/manifest"
	"github.com/cameronsjo/stevedore/internal/ui"
)

var validateConfigFile string

// validateCmd represents the validate command.
var validateCmd = &cobra.Command{
	Use:     "validate",
	Aliases: []string{"lint"},
	Short:   "Validate a config file end to end",
	Long: `Validate a config file without writing anything.

This command performs validation checks:
  1. File format and schema (required sections, enumeration values)
  2. Canonical record (name pattern, storage URI, replica bounds, quantities)
  3. Rendering and structural check of the rendered manifest

Use this before committing config changes to catch problems early.

Examples:
  stevedore validate -c model.yaml`,
	Run: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateConfigFile, "config", "c", "", "Config file to validate")
	validateCmd.MarkFlagRequired("config")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) {
	ui.Header("=== Config Validation ===")
	fmt.Println()

	errors := 0

	ui.Blue.Println("--- File & Schema ---")
	raw, err := config.Load(validateConfigFile)
	if err != nil {
		ui.Error("%v", err)
		os.Exit(1)
	}
	ui.Green.Printf("  * Loaded %s\n", validateConfigFile)

	if err := config.CheckSchema(raw); err != nil {
		ui.Red.Printf("  x %v\n", err)
		errors++
	} else {
		ui.Green.Println("  * Schema checks passed")
	}
	fmt.Println()

	var cfg *config.Config
	if errors == 0 {
		ui.Blue.Println("--- Record ---")
		cfg = config.FromRaw(raw)
		if err := cfg.Validate(); err != nil {
			ui.Red.Printf("  x %v\n", err)
			errors++
		} else {
			ui.Green.Printf("  * Record is valid (%s/%s, runtime %s)\n", cfg.Namespace, cfg.Name, cfg.RuntimeType)
		}
		fmt.Println()
	}

	if errors == 0 {
		ui.Blue.Println("--- Rendered Manifest ---")
		doc, err := manifest.Render(cfg)
		if err != nil {
			ui.Red.Printf("  x render: %v\n", err)
			errors++
		} else {
			data, err := manifest.Marshal(doc)
			if err != nil {
				ui.Red.Printf("  x marshal: %v\n", err)
				errors++
			} else {
				result := manifest.Check(data, cfg.StorageURI)
				if result.Valid {
					ui.Green.Println("  * Rendered manifest is structurally valid")
				} else {
					for _, msg := range result.Errors {
						ui.Red.Printf("  x %s\n", msg)
					}
					errors++
				}
			}
		}
		fmt.Println()
	}

	if errors > 0 {
		ui.Red.Println("Validation failed. Fix errors before deploying.")
		os.Exit(1)
	}
	ui.Green.Println("Configuration is valid!")
}
