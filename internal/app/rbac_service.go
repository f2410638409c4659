package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/example/crudgen/internal/core/permission"
	"github.com/example/crudgen/internal/ports/primary"
	"github.com/example/crudgen/internal/ports/secondary"
	"github.com/example/crudgen/internal/scaffold"
)

// RbacServiceImpl implements the RbacService interface.
type RbacServiceImpl struct {
	generator *scaffold.Generator
	executor  ArtifactExecutor
	writer    secondary.ArtifactWriter
	artisan   secondary.Artisan
	routes    secondary.RouteCatalog
	store     secondary.PermissionStore // nil when no database is configured
	now       func() time.Time
	logger    *zap.Logger
}

// NewRbacService creates a new RbacService with injected dependencies.
// store may be nil, in which case permission synthesis is skipped.
func NewRbacService(
	generator *scaffold.Generator,
	executor ArtifactExecutor,
	writer secondary.ArtifactWriter,
	artisan secondary.Artisan,
	routes secondary.RouteCatalog,
	store secondary.PermissionStore,
	logger *zap.Logger,
) *RbacServiceImpl {
	return &RbacServiceImpl{
		generator: generator,
		executor:  executor,
		writer:    writer,
		artisan:   artisan,
		routes:    routes,
		store:     store,
		now:       time.Now,
		logger:    logger,
	}
}

// ScaffoldRBAC runs the RBAC pipeline in order: models, migrations, migrate,
// controllers, permission synthesis, views, layout, routes. A failed
// migration is reported and the pipeline continues; a failed write stops it.
func (s *RbacServiceImpl) ScaffoldRBAC(ctx context.Context, req primary.RBACRequest) (*primary.ScaffoldResponse, error) {
	// 1. Find migrations already present in the project
	existing := make(map[string]bool)
	for _, name := range scaffold.RBACMigrations {
		found, err := s.writer.GlobExists("database/migrations/*_" + name + ".php")
		if err != nil {
			return nil, fmt.Errorf("failed to check migration %s: %w", name, err)
		}
		existing[name] = found
	}

	// 2. Render everything up front (pure)
	result, err := s.generator.GenerateRBAC(scaffold.RBACInput{
		Now:                s.now(),
		ExistingMigrations: existing,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render rbac: %w", err)
	}

	resp := &primary.ScaffoldResponse{
		Target:    "rbac",
		DryRun:    req.DryRun,
		NextSteps: result.NextSteps,
	}

	if req.DryRun {
		resp.Files, err = s.executor.Preview(ctx, result.Files)
		resp.Files = append(resp.Files, existingMigrationReports(existing)...)
		resp.Warnings = append(resp.Warnings, "dry run: migrations and permission synthesis not run")
		return resp, err
	}

	// 3. Models, then migrations
	if err := s.execute(ctx, resp, result.Only(scaffold.KindModel)); err != nil {
		return resp, err
	}
	if err := s.execute(ctx, resp, result.Only(scaffold.KindMigration)); err != nil {
		return resp, err
	}
	resp.Files = append(resp.Files, existingMigrationReports(existing)...)

	// 4. Migrate; failure is tolerated
	if err := s.artisan.Migrate(ctx); err != nil {
		err = fmt.Errorf("%w: %w", ErrMigrationFailed, err)
		s.logger.Warn("migrations failed, continuing", zap.Error(err))
		resp.Warnings = append(resp.Warnings, err.Error())
	} else {
		resp.Migrated = true
	}

	// 5. Controllers
	if err := s.execute(ctx, resp, result.Only(scaffold.KindController)); err != nil {
		return resp, err
	}

	// 6. Permission synthesis
	report, err := s.SynthesizePermissions(ctx)
	if err != nil {
		return resp, err
	}
	resp.Permissions = report
	if report.Skipped {
		resp.Warnings = append(resp.Warnings, "permission synthesis skipped: "+report.SkipReason)
	}

	// 7. Views, layout, routes
	for _, kind := range []scaffold.ArtifactKind{scaffold.KindView, scaffold.KindLayout, scaffold.KindRouteFragment} {
		if err := s.execute(ctx, resp, result.Only(kind)); err != nil {
			return resp, err
		}
	}

	resp.NextSteps = append(resp.NextSteps, "Run 'crudgen scaffold rbac' again to create permissions for the rbac routes added by this run")
	return resp, nil
}

// SynthesizePermissions turns the project's named routes into permission
// groups and permissions. It is skipped when no database is configured,
// the routes cannot be listed, or the permission tables do not exist.
func (s *RbacServiceImpl) SynthesizePermissions(ctx context.Context) (*primary.PermissionReport, error) {
	if s.store == nil {
		return &primary.PermissionReport{Skipped: true, SkipReason: "no database configured"}, nil
	}

	ready, err := s.store.Ready(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check permission tables: %w", err)
	}
	if !ready {
		return &primary.PermissionReport{Skipped: true, SkipReason: "permission tables not found"}, nil
	}

	names, err := s.routes.ListNamedRoutes(ctx)
	if err != nil {
		s.logger.Warn("failed to list routes", zap.Error(err))
		return &primary.PermissionReport{Skipped: true, SkipReason: "routes could not be listed: " + err.Error()}, nil
	}

	plan := permission.BuildPlan(names)
	report := &primary.PermissionReport{
		Groups:      len(plan.Groups),
		Permissions: plan.PermissionCount(),
	}

	for _, g := range plan.Groups {
		group, err := s.store.EnsureGroup(ctx, g.Name)
		if err != nil {
			return nil, err
		}
		if group.Created {
			report.GroupsCreated++
		}

		for _, entry := range g.Entries {
			perm, err := s.store.EnsurePermission(ctx, group.ID, entry.Key, entry.Name)
			if err != nil {
				return nil, err
			}
			if perm.Created {
				report.PermissionsCreated++
			}
		}
	}

	s.logger.Debug("synthesized permissions",
		zap.Int("groups", report.Groups),
		zap.Int("permissions", report.Permissions),
		zap.Int("created", report.PermissionsCreated))
	return report, nil
}

func (s *RbacServiceImpl) execute(ctx context.Context, resp *primary.ScaffoldResponse, files []scaffold.GeneratedFile) error {
	reports, err := s.executor.Execute(ctx, files)
	resp.Files = append(resp.Files, reports...)
	return err
}

func existingMigrationReports(existing map[string]bool) []primary.FileReport {
	var reports []primary.FileReport
	for _, name := range scaffold.RBACMigrations {
		if existing[name] {
			reports = append(reports, primary.FileReport{
				Path:   "database/migrations/*_" + name + ".php",
				Kind:   string(scaffold.KindMigration),
				Status: primary.OpSkip,
			})
		}
	}
	return reports
}
