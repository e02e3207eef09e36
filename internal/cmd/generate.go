package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/stevedore/internal/config"
	"github.com/cameronsjo/stevedore/internal/history"
	"github.com/cameronsjo/stevedore/internal/manifest"
	"github.com/cameronsjo/stevedore/internal/ui"
)

var (
	genConfigFile   string
	genName         string
	genNamespace    string
	genStorageURI   string
	genFramework    string
	genRuntimeType  string
	genRuntimeName  string
	genCustomImage  string
	genDeployMode   string
	genCPURequest   string
	genCPULimit     string
	genMemRequest   string
	genMemLimit     string
	genGPULimit     string
	genMinReplicas  int
	genMaxReplicas  int
	genScaleTarget  int
	genScaleMetric  string
	genOutputDir    string
	genOutputFile   string
	genDryRun       bool
	genValidateOnly bool
)

// generateCmd represents the generate command.
var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Render an InferenceService manifest",
	Long: `Render an InferenceService manifest from a config file, flags, or both.

Flags override values loaded from the config file. Without --config, --name
and --storage-uri are required.

Examples:
  # From a config file
  stevedore generate -c model.yaml

  # Entirely from flags
  stevedore generate --name my-model --storage-uri s3://models/my-model/

  # Override the namespace from the file and preview without writing
  stevedore generate -c model.yaml --namespace staging --dry-run

  # Validate everything but write nothing
  stevedore generate -c model.yaml --validate-only`,
	Run: runGenerate,
}

func init() {
	flags := generateCmd.Flags()
	flags.StringVarP(&genConfigFile, "config", "c", "", "Config file (.yaml, .yml, or .json)")
	flags.StringVar(&genName, "name", "", "Service name (overrides config file)")
	flags.StringVar(&genNamespace, "namespace", "", "Target namespace (overrides config file)")
	flags.StringVar(&genStorageURI, "storage-uri", "", "Model artifact location (s3://, gs://, pvc://, ...)")
	flags.StringVar(&genFramework, "framework", "", "Serving framework (triton)")
	flags.StringVar(&genRuntimeType, "runtime-type", "", "Runtime selection: builtin, cluster, or custom")
	flags.StringVar(&genRuntimeName, "runtime-name", "", "Cluster-registered runtime name")
	flags.StringVar(&genCustomImage, "custom-image", "", "Container image for custom runtime type")
	flags.StringVar(&genDeployMode, "deployment-mode", "", "Deployment mode: Knative or RawDeployment")
	flags.StringVar(&genCPURequest, "cpu-request", "", "CPU request")
	flags.StringVar(&genCPULimit, "cpu-limit", "", "CPU limit")
	flags.StringVar(&genMemRequest, "memory-request", "", "Memory request")
	flags.StringVar(&genMemLimit, "memory-limit", "", "Memory limit")
	flags.StringVar(&genGPULimit, "gpu-limit", "", "GPU limit (nvidia.com/gpu)")
	flags.IntVar(&genMinReplicas, "min-replicas", 0, "Minimum replicas (0 allows scale-to-zero)")
	flags.IntVar(&genMaxReplicas, "max-replicas", 0, "Maximum replicas")
	flags.IntVar(&genScaleTarget, "scale-target", 0, "Autoscaling target value")
	flags.StringVar(&genScaleMetric, "scale-metric", "", "Autoscaling metric name")
	flags.StringVarP(&genOutputDir, "output-dir", "o", "", "Output directory (default: manifests/)")
	flags.StringVar(&genOutputFile, "output", "", "Output filename (default: derived from name and timestamp)")
	flags.BoolVarP(&genDryRun, "dry-run", "n", false, "Print the manifest instead of writing it")
	flags.BoolVar(&genValidateOnly, "validate-only", false, "Validate config and rendered output, write nothing")

	registerEnumCompletions(generateCmd)
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) {
	cfg := buildConfig(cmd)

	doc, err := manifest.Render(cfg)
	if err != nil {
		ui.Fatal("Render failed: %v", err)
	}
	data, err := manifest.Marshal(doc)
	if err != nil {
		ui.Fatal("Render failed: %v", err)
	}

	if genValidateOnly {
		result := manifest.Check(data, cfg.StorageURI)
		if !result.Valid {
			for _, msg := range result.Errors {
				ui.Error("%s", msg)
			}
			os.Exit(1)
		}
		ui.Success("Config and rendered manifest are valid (%s/%s)", cfg.Namespace, cfg.Name)
		return
	}

	if genDryRun {
		fmt.Print(string(data))
		return
	}

	path, err := manifest.Write(data, genOutputDir, genOutputFile, cfg.Name, string(cfg.Framework))
	if err != nil {
		ui.Fatal("Write failed: %v", err)
	}

	outputDir := genOutputDir
	if outputDir == "" {
		outputDir = manifest.DefaultOutputDir
	}
	rec := history.NewRecord(path, cfg.Name, string(cfg.Framework))
	if err := history.Append(outputDir, rec); err != nil {
		ui.Warning("Could not record history: %v", err)
	}

	ui.Success("Wrote %s", path)
}

// buildConfig assembles the canonical record from the config file (if any)
// with flag overrides layered on top, then validates it. Exits on any error.
func buildConfig(cmd *cobra.Command) *config.Config {
	raw := &config.Raw{}
	if genConfigFile != "" {
		loaded, err := config.Load(genConfigFile)
		if err != nil {
			ui.Fatal("%v", err)
		}
		raw = loaded
	}

	applyFlagOverrides(cmd, raw)

	if err := config.CheckSchema(raw); err != nil {
		ui.Fatal("%v", err)
	}

	cfg := config.FromRaw(raw)
	if err := cfg.Validate(); err != nil {
		ui.Fatal("%v", err)
	}
	return cfg
}

// applyFlagOverrides copies explicitly set flags onto the raw config. Only
// changed flags override file values.
func applyFlagOverrides(cmd *cobra.Command, raw *config.Raw) {
	flags := cmd.Flags()

	if flags.Changed("name") {
		raw.Metadata.Name = genName
	}
	if flags.Changed("namespace") {
		raw.Metadata.Namespace = genNamespace
	}
	if flags.Changed("storage-uri") {
		raw.Storage.URI = genStorageURI
	}
	if flags.Changed("framework") {
		raw.Runtime.Framework = genFramework
	}
	if flags.Changed("runtime-type") {
		raw.Runtime.Type = genRuntimeType
	}
	if flags.Changed("runtime-name") {
		raw.Runtime.Name = genRuntimeName
	}
	if flags.Changed("custom-image") {
		raw.Runtime.CustomImage = genCustomImage
	}
	if flags.Changed("deployment-mode") {
		raw.Runtime.DeploymentMode = genDeployMode
	}
	if flags.Changed("cpu-request") {
		raw.Resources.CPURequest = genCPURequest
	}
	if flags.Changed("cpu-limit") {
		raw.Resources.CPULimit = genCPULimit
	}
	if flags.Changed("memory-request") {
		raw.Resources.MemoryRequest = genMemRequest
	}
	if flags.Changed("memory-limit") {
		raw.Resources.MemoryLimit = genMemLimit
	}
	if flags.Changed("gpu-limit") {
		raw.Resources.GPULimit = genGPULimit
	}
	if flags.Changed("min-replicas") {
		min := genMinReplicas
		raw.Scaling.MinReplicas = &min
	}
	if flags.Changed("max-replicas") {
		max := genMaxReplicas
		raw.Scaling.MaxReplicas = &max
	}
	if flags.Changed("scale-target") {
		target := genScaleTarget
		raw.Scaling.ScaleTarget = &target
	}
	if flags.Changed("scale-metric") {
		raw.Scaling.ScaleMetric = genScaleMetric
	}
}
