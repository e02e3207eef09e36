package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/stevedore/internal/config"
	"github.com/cameronsjo/stevedore/internal/fileutil"
	"github.com/cameronsjo/stevedore/internal/ui"
)

var (
	sampleOutput    string
	sampleName      string
	sampleNamespace string
	sampleStdout    bool
)

// sampleCmd represents the sample command.
var sampleCmd = &cobra.Command{
	Use:   "sample <preset>",
	Short: "Emit a starter config file",
	Long: `Emit a canned config file to bootstrap a new service.

Available presets:
  basic     Minimal cluster-runtime config
  gpu       GPU resources, node selector, RawDeployment mode
  complete  Every supported section populated

Examples:
  stevedore sample basic
  stevedore sample gpu --name bert-large -o bert.yaml
  stevedore sample complete --stdout`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: config.SamplePresets,
	Run:       runSample,
}

func init() {
	sampleCmd.Flags().StringVarP(&sampleOutput, "output", "o", "", "Output path (default: <preset>-config.yaml)")
	sampleCmd.Flags().StringVar(&sampleName, "name", "", "Service name to bake into the sample")
	sampleCmd.Flags().StringVar(&sampleNamespace, "namespace", "", "Namespace to bake into the sample")
	sampleCmd.Flags().BoolVar(&sampleStdout, "stdout", false, "Print to stdout instead of writing a file")

	rootCmd.AddCommand(sampleCmd)
}

func runSample(cmd *cobra.Command, args []string) {
	preset := strings.ToLower(args[0])

	data, err := config.RenderSample(preset, sampleName, sampleNamespace)
	if err != nil {
		ui.Fatal("%v", err)
	}

	if sampleStdout {
		fmt.Print(string(data))
		return
	}

	path := sampleOutput
	if path == "" {
		path = preset + "-config.yaml"
	}
	if fileutil.Exists(path) {
		ui.Fatal("Refusing to overwrite existing file: %s", path)
	}
	if err := fileutil.WriteAtomic(path, data, 0644); err != nil {
		ui.Fatal("Write sample: %v", err)
	}

	ui.Success("Wrote %s", path)
	ui.Info("Edit it, then run: stevedore generate -c %s", path)
}
