package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/crudgen/internal/adapters/cueschema"
	"github.com/example/crudgen/internal/adapters/laravel"
	"github.com/example/crudgen/internal/config"
	"github.com/example/crudgen/internal/wire"
)

// Check status symbols.
const (
	statusOK   = "✓"
	statusWarn = "⚠"
	statusFail = "✗"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string // "✓", "⚠", "✗"
	Details string // Only shown if Status != "✓"
}

// DoctorCmd returns the doctor command for environment validation
func DoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that the project can be scaffolded",
		Long: `Health check for a Laravel project.

Validates:
- Config file (.crudgen.yaml) parses and validates
- Project layout (artisan, composer.json, app/, routes/)
- PHP binary and artisan
- Schema source (models directory or CUE manifest)
- Database reachability
- Token package for api-auth

Examples:
  crudgen doctor              # Run full health check
  crudgen doctor --quiet      # Exit code only (0=healthy, 1=issues)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := initProject(cmd); err != nil {
				return err
			}
			defer wire.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			root := wire.ProjectRoot()
			cfg := wire.Config()

			results := []CheckResult{
				checkLayout(root),
				checkPHP(ctx, root, cfg.PHP),
				checkSchema(root, cfg),
				checkDatabase(ctx),
				checkSanctum(root),
			}

			if !quiet {
				printChecks(os.Stdout, results)
			}
			if hasFailures(results) {
				return fmt.Errorf("project validation failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode - exit code only")

	return cmd
}

func printChecks(out io.Writer, results []CheckResult) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Check              Status")
	fmt.Fprintln(out, "─────────────────────────")
	for _, r := range results {
		fmt.Fprintf(out, "%-18s %s\n", r.Name, r.Status)
	}
	fmt.Fprintln(out)

	hasDetails := false
	for _, r := range results {
		if r.Status != statusOK && r.Details != "" {
			if !hasDetails {
				fmt.Fprintln(out, "Details:")
				hasDetails = true
			}
			fmt.Fprintf(out, "\n%s:\n%s\n", r.Name, r.Details)
		}
	}

	if hasFailures(results) {
		fmt.Fprintln(out, "\n⚠ Issues found.")
	} else {
		fmt.Fprintln(out, "All checks passed.")
	}
}

func hasFailures(results []CheckResult) bool {
	for _, r := range results {
		if r.Status == statusFail {
			return true
		}
	}
	return false
}

// checkLayout validates that root looks like a Laravel project
func checkLayout(root string) CheckResult {
	var missing []string
	for _, p := range []string{"artisan", "composer.json", "app", "routes"} {
		if _, err := os.Stat(filepath.Join(root, p)); err != nil {
			missing = append(missing, "  "+p)
		}
	}
	if len(missing) > 0 {
		return CheckResult{
			Name:    "Project",
			Status:  statusFail,
			Details: fmt.Sprintf("  Not a Laravel project: %s\n  Missing:\n%s", root, strings.Join(missing, "\n")),
		}
	}
	return CheckResult{Name: "Project", Status: statusOK}
}

// checkPHP validates the PHP binary and that artisan runs
func checkPHP(ctx context.Context, root, php string) CheckResult {
	if _, err := exec.LookPath(php); err != nil {
		return CheckResult{
			Name:    "PHP",
			Status:  statusFail,
			Details: fmt.Sprintf("  %s not found in PATH (set 'php' in %s)", php, config.FileName),
		}
	}

	version, err := laravel.NewArtisanRunner(root, php, wire.Logger()).Version(ctx)
	if err != nil {
		return CheckResult{Name: "PHP", Status: statusFail, Details: "  " + err.Error()}
	}
	return CheckResult{Name: "PHP", Status: statusOK, Details: "  " + version}
}

// checkSchema validates the configured schema source
func checkSchema(root string, cfg *config.Config) CheckResult {
	if cfg.Schema.Source == config.SchemaCUE {
		path := config.ResolvePath(root, cfg.Schema.Manifest)
		data, err := os.ReadFile(path)
		if err != nil {
			return CheckResult{Name: "Schema", Status: statusFail, Details: "  " + err.Error()}
		}
		models, err := cueschema.ParseManifest(data, path)
		if err != nil {
			return CheckResult{Name: "Schema", Status: statusFail, Details: "  " + err.Error()}
		}
		if len(models) == 0 {
			return CheckResult{Name: "Schema", Status: statusWarn, Details: "  Manifest defines no models"}
		}
		return CheckResult{Name: "Schema", Status: statusOK}
	}

	if _, err := os.Stat(filepath.Join(root, "app", "Models")); err != nil {
		return CheckResult{Name: "Schema", Status: statusWarn, Details: "  app/Models not found; models are looked up in app/"}
	}
	if cfg.Schema.Columns == config.ColumnsMigrations {
		if _, err := os.Stat(filepath.Join(root, "database", "migrations")); err != nil {
			return CheckResult{Name: "Schema", Status: statusFail, Details: "  database/migrations not found"}
		}
	}
	return CheckResult{Name: "Schema", Status: statusOK}
}

// checkDatabase validates that the configured database answers
func checkDatabase(ctx context.Context) CheckResult {
	gdb, err := wire.Database()
	if errors.Is(err, wire.ErrNoDatabase) {
		return CheckResult{
			Name:    "Database",
			Status:  statusWarn,
			Details: "  " + err.Error() + "\n  Permission synthesis and database column types are unavailable",
		}
	}
	if err != nil {
		return CheckResult{Name: "Database", Status: statusFail, Details: "  " + err.Error()}
	}

	conn, err := gdb.DB()
	if err == nil {
		err = conn.PingContext(ctx)
	}
	if err != nil {
		return CheckResult{Name: "Database", Status: statusFail, Details: "  " + err.Error()}
	}
	return CheckResult{Name: "Database", Status: statusOK}
}

// checkSanctum reports whether api-auth will need to install sanctum
func checkSanctum(root string) CheckResult {
	if _, err := os.Stat(filepath.Join(root, "vendor", "laravel", "sanctum")); err != nil {
		return CheckResult{
			Name:    "Sanctum",
			Status:  statusWarn,
			Details: "  laravel/sanctum not installed; 'crudgen scaffold api-auth' will install it",
		}
	}
	return CheckResult{Name: "Sanctum", Status: statusOK}
}
