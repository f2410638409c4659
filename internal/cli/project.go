package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/crudgen/internal/wire"
)

// Persistent flag names registered on the root command.
const (
	FlagProject = "project"
	FlagConfig  = "config"
	FlagVerbose = "verbose"
)

// AddPersistentFlags registers the project-selection flags on root.
func AddPersistentFlags(root *cobra.Command) {
	root.PersistentFlags().StringP(FlagProject, "p", ".", "Laravel project directory")
	root.PersistentFlags().String(FlagConfig, "", "config file (default <project>/.crudgen.yaml)")
	root.PersistentFlags().BoolP(FlagVerbose, "v", false, "debug logging on stderr")
}

// wireOptions reads the persistent flags of cmd.
func wireOptions(cmd *cobra.Command) wire.Options {
	project, _ := cmd.Flags().GetString(FlagProject)
	configPath, _ := cmd.Flags().GetString(FlagConfig)
	verbose, _ := cmd.Flags().GetBool(FlagVerbose)
	return wire.Options{
		ProjectDir: project,
		ConfigPath: configPath,
		Verbose:    verbose,
	}
}

// initProject loads the project's configuration and builds the services.
func initProject(cmd *cobra.Command) error {
	return wire.Init(wireOptions(cmd))
}
