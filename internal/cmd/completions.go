package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cameronsjo/stevedore/internal/config"
)

// registerEnumCompletions wires shell completion for the closed-set flags on
// a command. Errors are ignored: a flag without completion still works.
func registerEnumCompletions(cmd *cobra.Command) {
	cmd.RegisterFlagCompletionFunc("framework", completeEnum(frameworkValues()))
	cmd.RegisterFlagCompletionFunc("runtime-type", completeEnum(runtimeTypeValues()))
	cmd.RegisterFlagCompletionFunc("deployment-mode", completeEnum(deploymentModeValues()))
}

// completeEnum returns a completion function over a fixed value set.
func completeEnum(values []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

func frameworkValues() []string {
	values := make([]string, 0, len(config.SupportedFrameworks))
	for _, fw := range config.SupportedFrameworks {
		values = append(values, string(fw))
	}
	return values
}

func runtimeTypeValues() []string {
	values := make([]string, 0, len(config.SupportedRuntimeTypes))
	for _, rt := range config.SupportedRuntimeTypes {
		values = append(values, string(rt))
	}
	return values
}

func deploymentModeValues() []string {
	values := make([]string, 0, len(config.SupportedDeploymentModes))
	for _, m := range config.SupportedDeploymentModes {
		values = append(values, string(m))
	}
	return values
}
