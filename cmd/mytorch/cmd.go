package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mytorch/mytorch"
	"github.com/mytorch/mytorch/internal/envconfig"
)

func appendEnvDocs(cmd *cobra.Command, envs []envconfig.EnvVar) {
	if len(envs) == 0 {
		return
	}

	envUsage := `
Environment Variables:
`
	for _, e := range envs {
		envUsage += fmt.Sprintf("      %-24s   %s\n", e.Name, e.Description)
	}

	cmd.SetUsageTemplate(cmd.UsageTemplate() + envUsage)
}

// NewCLI builds the root command with all subcommands.
func NewCLI() *cobra.Command {
	cobra.EnableCommandSorting = false

	rootCmd := &cobra.Command{
		Use:           "mytorch",
		Short:         "Reverse-mode automatic differentiation playground",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		Run: func(cmd *cobra.Command, args []string) {
			if version, _ := cmd.Flags().GetBool("version"); version {
				versionHandler(cmd, args)
				return
			}

			cmd.Print(cmd.UsageString())
		},
	}

	rootCmd.Flags().BoolP("version", "v", false, "Show version information")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run:   versionHandler,
	}

	demoCmd := newDemoCmd()
	fitCmd := newFitCmd()

	envVars := envconfig.AsMap()
	appendEnvDocs(demoCmd, []envconfig.EnvVar{envVars["MYTORCH_DEBUG"]})
	appendEnvDocs(fitCmd, []envconfig.EnvVar{
		envVars["MYTORCH_DEBUG"],
		envVars["MYTORCH_SEED"],
		envVars["MYTORCH_FIT_STEPS"],
	})

	rootCmd.AddCommand(
		versionCmd,
		demoCmd,
		fitCmd,
	)

	return rootCmd
}

func versionHandler(cmd *cobra.Command, _ []string) {
	cmd.Printf("mytorch version %s\n", mytorch.Version())
}
