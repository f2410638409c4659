package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/crudgen/internal/cli"
	"github.com/example/crudgen/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "crudgen",
		Short:   "crudgen - Laravel scaffolding generator",
		Version: version.String(),
		Long: `crudgen generates Laravel code into an existing project: CRUD modules for
Eloquent models, session and token authentication, and a role/permission
admin panel.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cli.AddPersistentFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.DoctorCmd())
	rootCmd.AddCommand(cli.ScaffoldCmd())
	rootCmd.AddCommand(cli.VersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
