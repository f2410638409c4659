// Package wire provides dependency injection for crudgen.
// Init builds the services for one project; the database is opened lazily
// on first use.
package wire

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/example/crudgen/internal/adapters/cueschema"
	"github.com/example/crudgen/internal/adapters/filesystem"
	"github.com/example/crudgen/internal/adapters/laravel"
	"github.com/example/crudgen/internal/app"
	"github.com/example/crudgen/internal/config"
	"github.com/example/crudgen/internal/db"
	"github.com/example/crudgen/internal/logging"
	"github.com/example/crudgen/internal/ports/primary"
	"github.com/example/crudgen/internal/ports/secondary"
	"github.com/example/crudgen/internal/scaffold"
)

// Options selects the project and how it is configured.
type Options struct {
	ProjectDir string // Laravel project root; defaults to the working directory
	ConfigPath string // overrides <ProjectDir>/.crudgen.yaml
	Verbose    bool
}

var (
	projectRoot string
	cfg         *config.Config
	logger      *zap.Logger

	crudService primary.CrudService
	authService primary.AuthService
	rbacService primary.RbacService

	dbOnce   sync.Once
	database *gorm.DB
	dbErr    error
)

// Init loads configuration and builds every service. It must be called
// before any accessor.
func Init(opts Options) error {
	root := opts.ProjectDir
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("failed to resolve project directory: %w", err)
	}
	projectRoot = abs
	resetDatabase()

	if opts.ConfigPath != "" {
		cfg, err = config.LoadFile(opts.ConfigPath)
	} else {
		cfg, err = config.LoadConfig(projectRoot)
	}
	if err != nil {
		return err
	}

	logger = logging.New(opts.Verbose)
	logger.Debug("loaded config",
		zap.String("project", projectRoot),
		zap.String("schema", cfg.Schema.Source),
		zap.String("routes", cfg.Routes.Source))

	initServices()
	return nil
}

// ProjectRoot returns the absolute project directory.
func ProjectRoot() string { return projectRoot }

// Config returns the loaded configuration.
func Config() *config.Config { return cfg }

// Logger returns the shared logger.
func Logger() *zap.Logger { return logger }

// CrudService returns the singleton CrudService instance.
func CrudService() primary.CrudService { return crudService }

// AuthService returns the singleton AuthService instance.
func AuthService() primary.AuthService { return authService }

// RbacService returns the singleton RbacService instance.
func RbacService() primary.RbacService { return rbacService }

// initServices wires adapters into services.
func initServices() {
	// Create secondary adapters
	writer := filesystem.NewWriter(projectRoot)
	artisan := laravel.NewArtisanRunner(projectRoot, cfg.PHP, logger)
	generator := scaffold.NewGenerator(scaffold.LayoutOptions{
		Brand:      cfg.Layout.Brand,
		FooterText: cfg.Layout.FooterText,
		FooterURL:  cfg.Layout.FooterURL,
	})
	executor := app.NewArtifactExecutor(writer, logger)

	var routes secondary.RouteCatalog = artisan
	if cfg.Routes.Source == config.RoutesFile {
		routes = laravel.NewRouteFileCatalog(projectRoot)
	}

	// Create services (primary ports implementation)
	crudService = app.NewCrudService(schemaProvider(), generator, executor, logger)
	authService = app.NewAuthService(generator, executor, writer, artisan, logger)
	rbacService = app.NewRbacService(generator, executor, writer, artisan, routes, permissionStore(), logger)
}

func schemaProvider() secondary.SchemaProvider {
	if cfg.Schema.Source == config.SchemaCUE {
		return cueschema.NewProvider(config.ResolvePath(projectRoot, cfg.Schema.Manifest))
	}

	var columns secondary.ColumnSource = laravel.NewMigrationColumns(projectRoot)
	if cfg.Schema.Columns == config.ColumnsDatabase {
		columns = &lazyColumns{}
	}
	return laravel.NewModelProvider(projectRoot, columns)
}

// permissionStore returns nil when no database is configured.
func permissionStore() secondary.PermissionStore {
	if cfg.Database.Driver == "" {
		return nil
	}
	return &lazyPermissionStore{}
}

// Database returns the project database, opening it on first use.
// A sqlite file that does not exist yet yields ErrNoDatabase.
func Database() (*gorm.DB, error) {
	dbOnce.Do(func() {
		database, dbErr = openDatabase()
	})
	return database, dbErr
}

// ErrNoDatabase is returned when the configured database is not available.
var ErrNoDatabase = errors.New("no database available")

func openDatabase() (*gorm.DB, error) {
	driver, dsn := cfg.Database.Driver, cfg.Database.DSN
	if driver == "" {
		return nil, ErrNoDatabase
	}
	if driver == db.DriverSQLite {
		dsn = config.ResolvePath(projectRoot, dsn)
		if _, err := os.Stat(dsn); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrNoDatabase, dsn)
		}
	}

	logger.Debug("opening database", zap.String("driver", driver))
	return db.Open(driver, dsn, logger)
}

// resetDatabase forgets the previous project's connection so the next
// Database call opens the current one.
func resetDatabase() {
	if database != nil {
		_ = db.Close(database)
	}
	dbOnce = sync.Once{}
	database, dbErr = nil, nil
}

// Close releases the database connection if one was opened.
func Close() error {
	if database == nil {
		return nil
	}
	return db.Close(database)
}
