package laravel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/example/crudgen/internal/ports/secondary"
)

// ArtisanRunner runs artisan commands in a project directory.
// It implements both secondary.Artisan and secondary.RouteCatalog.
type ArtisanRunner struct {
	root   string
	php    string
	logger *zap.Logger
}

var (
	_ secondary.Artisan      = (*ArtisanRunner)(nil)
	_ secondary.RouteCatalog = (*ArtisanRunner)(nil)
)

// NewArtisanRunner creates a runner using the given PHP binary.
func NewArtisanRunner(root, php string, logger *zap.Logger) *ArtisanRunner {
	if php == "" {
		php = "php"
	}
	return &ArtisanRunner{root: root, php: php, logger: logger}
}

// Migrate runs pending migrations without the production prompt.
func (a *ArtisanRunner) Migrate(ctx context.Context) error {
	_, err := a.run(ctx, "migrate", "--force")
	return err
}

// InstallSanctum installs and publishes the token authentication package.
func (a *ArtisanRunner) InstallSanctum(ctx context.Context) error {
	_, err := a.run(ctx, "install:sanctum", "--no-interaction")
	return err
}

// Version returns the framework version line, e.g. "Laravel Framework 11.9.2".
func (a *ArtisanRunner) Version(ctx context.Context) (string, error) {
	out, err := a.run(ctx, "--version")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// ListNamedRoutes reads the router's table through route:list --json.
func (a *ArtisanRunner) ListNamedRoutes(ctx context.Context) ([]string, error) {
	out, err := a.run(ctx, "route:list", "--json")
	if err != nil {
		return nil, err
	}
	return ParseRouteListJSON(out)
}

// ParseRouteListJSON extracts route names from route:list --json output.
func ParseRouteListJSON(data []byte) ([]string, error) {
	var routes []struct {
		Name *string `json:"name"`
	}
	if err := json.Unmarshal(data, &routes); err != nil {
		return nil, fmt.Errorf("failed to parse route list: %w", err)
	}

	var names []string
	for _, r := range routes {
		if r.Name != nil && *r.Name != "" {
			names = append(names, *r.Name)
		}
	}
	return names, nil
}

// run executes `php artisan <args>` and returns stdout.
func (a *ArtisanRunner) run(ctx context.Context, args ...string) ([]byte, error) {
	argv := append([]string{"artisan"}, args...)
	a.logger.Debug("running artisan", zap.String("dir", a.root), zap.Strings("args", args))

	cmd := exec.CommandContext(ctx, a.php, argv...)
	cmd.Dir = a.root
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("php artisan %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
