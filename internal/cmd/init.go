package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/cameronsjo/stevedore/internal/config"
	"github.com/cameronsjo/stevedore/internal/fileutil"
	"github.com/cameronsjo/stevedore/internal/ui"
)

// initCmd represents the init command.
var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Scaffold a new project",
	Long: `Initialize a project directory for managing inference service configs.

This creates:
  - configs/           Service config files
    - example.yaml     Starter config (basic preset)
  - manifests/         Rendered manifest output
  - README.md          Workflow notes for the project
  - .gitignore         Ignores tool-private state

If no directory is specified, the current directory is used.

Use --yes to skip all interactive prompts (useful for non-TTY environments).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

var initYes bool

func init() {
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "Skip interactive prompts")

	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	targetDir := "."
	if len(args) > 0 {
		targetDir = args[0]
	}

	absDir, err := filepath.Abs(targetDir)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	targetDir = absDir

	ui.Header("Initializing project in %s", targetDir)
	fmt.Println()

	configsDir := filepath.Join(targetDir, "configs")
	starterPath := filepath.Join(configsDir, "example.yaml")
	if fileutil.Exists(starterPath) {
		ui.Warning("This directory already has a stevedore project.")
		if !initYes {
			response, err := promptYesNo("Reinitialize? This won't overwrite existing files.")
			if err != nil {
				return err
			}
			if !response {
				fmt.Println("Aborted.")
				return nil
			}
		}
	}

	serviceName := "my-model"
	if !initYes && isInteractive() {
		answer, err := promptString(fmt.Sprintf("Service name [%s]: ", serviceName))
		if err != nil {
			return err
		}
		if answer != "" {
			serviceName = answer
		}
	}

	ui.Info("Creating project structure...")
	for _, dir := range []string{configsDir, filepath.Join(targetDir, "manifests")} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	if !fileutil.Exists(starterPath) {
		sample, err := config.RenderSample(config.PresetBasic, serviceName, "")
		if err != nil {
			return fmt.Errorf("render starter config: %w", err)
		}
		if err := fileutil.WriteAtomic(starterPath, sample, 0644); err != nil {
			return fmt.Errorf("write starter config: %w", err)
		}
		ui.Success("configs/example.yaml")
	}

	readmePath := filepath.Join(targetDir, "README.md")
	if !fileutil.Exists(readmePath) {
		readme := fmt.Sprintf(`# %s

Inference service configs managed with stevedore.

## Workflow

1. Edit a config under configs/
2. Validate it: stevedore validate -c configs/example.yaml
3. Render the manifest: stevedore generate -c configs/example.yaml
4. Apply the result from manifests/ with your usual deployment tooling
`, serviceName)
		if err := fileutil.WriteAtomic(readmePath, []byte(readme), 0644); err != nil {
			return fmt.Errorf("write README: %w", err)
		}
		ui.Success("README.md")
	}

	gitignorePath := filepath.Join(targetDir, ".gitignore")
	if !fileutil.Exists(gitignorePath) {
		gitignore := "manifests/.stevedore/\n"
		if err := fileutil.WriteAtomic(gitignorePath, []byte(gitignore), 0644); err != nil {
			return fmt.Errorf("write .gitignore: %w", err)
		}
		ui.Success(".gitignore")
	}

	fmt.Println()
	ui.Success("Project initialized")
	ui.Info("Next: edit configs/example.yaml, then run: stevedore generate -c configs/example.yaml")
	return nil
}

// isInteractive reports whether stdin is a terminal.
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// promptString reads a single trimmed line from stdin.
func promptString(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptYesNo asks a yes/no question, defaulting to no.
func promptYesNo(question string) (bool, error) {
	if !isInteractive() {
		return false, nil
	}
	answer, err := promptString(question + " [y/N]: ")
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}
