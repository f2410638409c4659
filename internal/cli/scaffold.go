package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/crudgen/internal/ports/primary"
	"github.com/example/crudgen/internal/wire"
)

// ScaffoldCmd returns the scaffold command
func ScaffoldCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scaffold",
		Short: "Generate Laravel code into the project",
		Long: `Generate Laravel controllers, requests, views, migrations and routes.

Every file is reported with what happened to it:
  CREATE    - new file written
  OVERWRITE - existing file replaced
  SKIP      - existing file kept
  APPEND    - route block added
  EXISTS    - route block already present`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initProject(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return wire.Close()
		},
	}

	cmd.PersistentFlags().Bool("dry-run", false, "Print what would be written without touching the project")

	cmd.AddCommand(scaffoldCrudCmd())
	cmd.AddCommand(scaffoldWebAuthCmd())
	cmd.AddCommand(scaffoldAPIAuthCmd())
	cmd.AddCommand(scaffoldRBACCmd())

	return cmd
}

func scaffoldCrudCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "crud <Name>",
		Short: "Generate a CRUD module for an existing model",
		Long: `Generate resource, form requests, controller, views and a resource route
for an existing Eloquent model. Validation rules and form inputs are derived
from the model's fillable columns.

Examples:
  crudgen scaffold crud Product
  crudgen scaffold crud Product --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			resp, err := wire.CrudService().ScaffoldCrud(context.Background(), primary.CrudRequest{
				Name:   args[0],
				DryRun: dryRun,
			})
			return report(resp, err)
		},
	}
}

func scaffoldWebAuthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "web-auth",
		Short: "Generate session-based register, login and profile pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			resp, err := wire.AuthService().ScaffoldWebAuth(context.Background(), primary.AuthRequest{DryRun: dryRun})
			return report(resp, err)
		},
	}
}

func scaffoldAPIAuthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "api-auth",
		Short: "Generate token-based API authentication endpoints",
		Long: `Generate register, login, logout and profile API endpoints.
Installs laravel/sanctum with 'php artisan install:sanctum' when it is missing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			resp, err := wire.AuthService().ScaffoldAPIAuth(context.Background(), primary.AuthRequest{DryRun: dryRun})
			return report(resp, err)
		},
	}
}

func scaffoldRBACCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rbac",
		Short: "Generate the role and permission admin panel",
		Long: `Generate models, migrations, controllers and views for roles, permission
groups and permissions, run the migrations, and create one permission per
named route.

Permissions are created from the routes that exist when the command runs.
Run it again after adding routes to pick them up.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			resp, err := wire.RbacService().ScaffoldRBAC(context.Background(), primary.RBACRequest{DryRun: dryRun})
			return report(resp, err)
		},
	}
}

// report prints whatever was done before returning the error, so a failed
// write still shows the files that made it to disk.
func report(resp *primary.ScaffoldResponse, err error) error {
	if resp != nil {
		displayScaffold(os.Stdout, resp)
	}
	return err
}
