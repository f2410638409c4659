// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces the CLI drives.
package primary

import "context"

// CrudService defines the primary port for CRUD module generation.
type CrudService interface {
	// ScaffoldCrud generates a CRUD module for an existing model.
	ScaffoldCrud(ctx context.Context, req CrudRequest) (*ScaffoldResponse, error)
}

// AuthService defines the primary port for authentication scaffolding.
type AuthService interface {
	// ScaffoldWebAuth generates session-based register/login/profile pages.
	ScaffoldWebAuth(ctx context.Context, req AuthRequest) (*ScaffoldResponse, error)

	// ScaffoldAPIAuth generates token-based API authentication endpoints,
	// installing the token package first when it is missing.
	ScaffoldAPIAuth(ctx context.Context, req AuthRequest) (*ScaffoldResponse, error)
}

// RbacService defines the primary port for the role/permission admin panel.
type RbacService interface {
	// ScaffoldRBAC generates models, migrations, controllers and views,
	// runs migrations, and synthesizes permissions from named routes.
	ScaffoldRBAC(ctx context.Context, req RBACRequest) (*ScaffoldResponse, error)
}

// CrudRequest contains parameters for CRUD generation.
type CrudRequest struct {
	Name   string // model class name, e.g. "Product"
	DryRun bool
}

// AuthRequest contains parameters for auth scaffolding.
type AuthRequest struct {
	DryRun bool
}

// RBACRequest contains parameters for RBAC scaffolding.
type RBACRequest struct {
	DryRun bool
}

// OpStatus is what happened (or would happen) to one file.
type OpStatus string

const (
	OpCreate    OpStatus = "CREATE"
	OpOverwrite OpStatus = "OVERWRITE"
	OpSkip      OpStatus = "SKIP"
	OpAppend    OpStatus = "APPEND"
	OpExists    OpStatus = "EXISTS" // route block already present
)

// FileReport describes one generated file.
type FileReport struct {
	Path    string
	Kind    string
	Status  OpStatus
	Content string // populated for dry runs only
}

// PermissionReport summarizes permission synthesis.
type PermissionReport struct {
	Skipped            bool
	SkipReason         string
	Groups             int
	GroupsCreated      int
	Permissions        int
	PermissionsCreated int
}

// ScaffoldResponse contains the result of a scaffold command.
type ScaffoldResponse struct {
	Target      string // model name for crud, command name otherwise
	DryRun      bool
	Files       []FileReport
	Migrated    bool
	Permissions *PermissionReport // rbac only
	Warnings    []string
	NextSteps   []string
}
