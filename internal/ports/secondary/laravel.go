package secondary

import "context"

// Artisan defines the secondary port for running framework console commands
// inside the target project.
type Artisan interface {
	// Migrate runs pending migrations.
	Migrate(ctx context.Context) error

	// InstallSanctum installs the token authentication package.
	InstallSanctum(ctx context.Context) error
}

// RouteCatalog defines the secondary port for listing the project's routes.
type RouteCatalog interface {
	// ListNamedRoutes returns route names in registration order.
	// Unnamed routes are omitted.
	ListNamedRoutes(ctx context.Context) ([]string, error)
}

// PermissionStore defines the secondary port for RBAC permission persistence.
// Both Ensure operations are find-or-create and safe to repeat.
type PermissionStore interface {
	// Ready reports whether the permission tables exist.
	Ready(ctx context.Context) (bool, error)

	// EnsureGroup finds or creates an active group by name.
	EnsureGroup(ctx context.Context, name string) (*PermissionGroupRecord, error)

	// EnsurePermission finds or creates a permission by key.
	EnsurePermission(ctx context.Context, groupID int64, key, name string) (*PermissionRecord, error)
}

// PermissionGroupRecord represents a permission group as stored in persistence.
type PermissionGroupRecord struct {
	ID       int64
	Name     string
	IsActive bool
	Created  bool // true when this call inserted the row
}

// PermissionRecord represents a permission as stored in persistence.
type PermissionRecord struct {
	ID                int64
	Name              string
	Key               string
	PermissionGroupID int64
	IsActive          bool
	Created           bool
}
