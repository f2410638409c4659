package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/example/crudgen/internal/config"
	"github.com/example/crudgen/internal/templates"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var force, cue bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a .crudgen.yaml with defaults",
		Long: `Write .crudgen.yaml into the project directory with default settings.

With --cue, also write an example crudgen.cue model manifest and point the
schema source at it.

Examples:
  crudgen init
  crudgen init --project ../shop --cue`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd.OutOrStdout(), wireOptions(cmd).ProjectDir, force, cue)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config")
	cmd.Flags().BoolVar(&cue, "cue", false, "Use a CUE model manifest as the schema source")

	return cmd
}

func runInit(out io.Writer, dir string, force, cue bool) error {
	path := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to check config: %w", err)
	}

	cfg := config.Default()
	if cue {
		cfg.Schema.Source = config.SchemaCUE
		if err := writeManifestExample(out, config.ResolvePath(dir, cfg.Schema.Manifest)); err != nil {
			return err
		}
	}

	if err := config.SaveConfig(dir, cfg); err != nil {
		return err
	}
	fmt.Fprintf(out, "✓ Wrote %s\n", path)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  crudgen doctor")
	fmt.Fprintln(out, "  crudgen scaffold crud <Model>")
	return nil
}

// writeManifestExample leaves an existing manifest alone.
func writeManifestExample(out io.Writer, path string) error {
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(out, "  Keeping existing %s\n", path)
		return nil
	}

	content, err := templates.GetManifestExample()
	if err != nil {
		return fmt.Errorf("failed to load manifest example: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	fmt.Fprintf(out, "✓ Wrote %s\n", path)
	return nil
}
