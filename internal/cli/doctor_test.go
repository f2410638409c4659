package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/crudgen/internal/config"
)

func laravelProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, dir := range []string{"app/Models", "routes", "database/migrations"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0755))
	}
	for _, file := range []string{"artisan", "composer.json"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, file), []byte("{}"), 0644))
	}
	return root
}

func TestCheckLayout(t *testing.T) {
	root := laravelProject(t)
	assert.Equal(t, statusOK, checkLayout(root).Status)

	result := checkLayout(t.TempDir())
	assert.Equal(t, statusFail, result.Status)
	assert.Contains(t, result.Details, "artisan")
}

func TestCheckSchema(t *testing.T) {
	root := laravelProject(t)

	tests := []struct {
		name  string
		setup func(cfg *config.Config)
		want  string
	}{
		{
			name:  "laravel models with migrations",
			setup: func(cfg *config.Config) {},
			want:  statusOK,
		},
		{
			name: "missing manifest",
			setup: func(cfg *config.Config) {
				cfg.Schema.Source = config.SchemaCUE
				cfg.Schema.Manifest = "missing.cue"
			},
			want: statusFail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.setup(cfg)
			assert.Equal(t, tt.want, checkSchema(root, cfg).Status)
		})
	}

	t.Run("valid manifest", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(root, "crudgen.cue"), []byte("#Product: {\n\tname: string\n}\n"), 0644))
		cfg := config.Default()
		cfg.Schema.Source = config.SchemaCUE
		assert.Equal(t, statusOK, checkSchema(root, cfg).Status)
	})
}

func TestCheckSanctum(t *testing.T) {
	root := laravelProject(t)
	assert.Equal(t, statusWarn, checkSanctum(root).Status)

	require.NoError(t, os.MkdirAll(filepath.Join(root, "vendor", "laravel", "sanctum"), 0755))
	assert.Equal(t, statusOK, checkSanctum(root).Status)
}

func TestPrintChecks(t *testing.T) {
	var buf bytes.Buffer
	printChecks(&buf, []CheckResult{
		{Name: "Project", Status: statusOK},
		{Name: "Database", Status: statusFail, Details: "  connection refused"},
	})

	out := buf.String()
	assert.Contains(t, out, fmt.Sprintf("%-18s %s", "Project", statusOK))
	assert.Contains(t, out, "Database:\n  connection refused")
	assert.Contains(t, out, "Issues found")
}
