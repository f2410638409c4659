package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/example/crudgen/internal/ports/primary"
	"github.com/example/crudgen/internal/scaffold"
)

type rbacFixture struct {
	svc     *RbacServiceImpl
	writer  *mockWriter
	artisan *mockArtisan
	routes  *mockRouteCatalog
	store   *mockPermissionStore
}

func newRbacFixture() *rbacFixture {
	f := &rbacFixture{
		writer:  newMockWriter(),
		artisan: &mockArtisan{},
		routes: &mockRouteCatalog{names: []string{
			"login",
			"products.index",
			"products.create",
			"products.store",
			"roles.index",
			"roles.store",
		}},
		store: newMockPermissionStore(),
	}
	f.svc = NewRbacService(testGenerator(), testExecutor(f.writer), f.writer, f.artisan, f.routes, f.store, zap.NewNop())
	f.svc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return f
}

func TestScaffoldRBAC_Order(t *testing.T) {
	f := newRbacFixture()

	var writesAtMigrate int
	f.artisan.onMigrate = func() { writesAtMigrate = len(f.writer.writes) }

	resp, err := f.svc.ScaffoldRBAC(context.Background(), primary.RBACRequest{})
	require.NoError(t, err)
	assert.True(t, resp.Migrated)
	assert.Equal(t, 1, f.artisan.migrateCalls)

	// models and migrations are on disk before migrate runs
	assert.Equal(t, 10, writesAtMigrate)
	for _, p := range f.writer.writes[:5] {
		assert.True(t, strings.HasPrefix(p, "app/Models/"), p)
	}
	for _, p := range f.writer.writes[5:10] {
		assert.True(t, strings.HasPrefix(p, "database/migrations/"), p)
	}
	assert.Equal(t, scaffold.WebRoutes, f.writer.writes[len(f.writer.writes)-1])
	assert.Contains(t, f.writer.files[scaffold.WebRoutes], scaffold.RBACMarker)
}

func TestScaffoldRBAC_Permissions(t *testing.T) {
	f := newRbacFixture()

	resp, err := f.svc.ScaffoldRBAC(context.Background(), primary.RBACRequest{})
	require.NoError(t, err)

	require.NotNil(t, resp.Permissions)
	assert.False(t, resp.Permissions.Skipped)
	assert.Equal(t, 2, resp.Permissions.Groups)
	assert.Equal(t, 2, resp.Permissions.GroupsCreated)
	assert.Equal(t, 5, resp.Permissions.Permissions)
	assert.Equal(t, 5, resp.Permissions.PermissionsCreated)

	assert.Equal(t, []string{"PRODUCTS", "ROLES"}, f.store.groupOrder)
	perm := f.store.permissions["products.index"]
	require.NotNil(t, perm)
	assert.Equal(t, "Products Index", perm.Name)
	assert.Equal(t, f.store.groups["PRODUCTS"].ID, perm.PermissionGroupID)
	assert.NotContains(t, f.store.permissions, "login")
}

func TestSynthesizePermissions_Idempotent(t *testing.T) {
	f := newRbacFixture()
	ctx := context.Background()

	_, err := f.svc.SynthesizePermissions(ctx)
	require.NoError(t, err)

	report, err := f.svc.SynthesizePermissions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, report.GroupsCreated)
	assert.Equal(t, 0, report.PermissionsCreated)
	assert.Len(t, f.store.groups, 2)
	assert.Len(t, f.store.permissions, 5)
}

func TestSynthesizePermissions_Skipped(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(f *rbacFixture)
		reason string
	}{
		{
			name:   "no database",
			setup:  func(f *rbacFixture) { f.svc.store = nil },
			reason: "no database configured",
		},
		{
			name:   "tables missing",
			setup:  func(f *rbacFixture) { f.store.ready = false },
			reason: "permission tables not found",
		},
		{
			name:   "routes unavailable",
			setup:  func(f *rbacFixture) { f.routes.err = errors.New("artisan not found") },
			reason: "routes could not be listed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRbacFixture()
			tt.setup(f)

			report, err := f.svc.SynthesizePermissions(context.Background())
			require.NoError(t, err)
			assert.True(t, report.Skipped)
			assert.Contains(t, report.SkipReason, tt.reason)
			assert.Empty(t, f.store.permissions)
		})
	}
}

func TestSynthesizePermissions_StoreError(t *testing.T) {
	f := newRbacFixture()
	f.store.ensureErr = errors.New("database is locked")

	_, err := f.svc.SynthesizePermissions(context.Background())
	assert.Error(t, err)
}

func TestSynthesizePermissions_DatabaseUnreachable(t *testing.T) {
	f := newRbacFixture()
	f.store.readyErr = errors.New("dial tcp 127.0.0.1:3306: connection refused")

	report, err := f.svc.SynthesizePermissions(context.Background())
	require.Error(t, err)
	assert.Nil(t, report)
	assert.Contains(t, err.Error(), "failed to check permission tables")
}

func TestScaffoldRBAC_MigrationFailureContinues(t *testing.T) {
	f := newRbacFixture()
	f.artisan.migrateErr = errors.New("SQLSTATE[HY000]")
	f.store.ready = false

	resp, err := f.svc.ScaffoldRBAC(context.Background(), primary.RBACRequest{})
	require.NoError(t, err)

	assert.False(t, resp.Migrated)
	require.NotEmpty(t, resp.Warnings)
	assert.Contains(t, resp.Warnings[0], ErrMigrationFailed.Error())
	assert.True(t, resp.Permissions.Skipped)
	assert.Contains(t, f.writer.files[scaffold.WebRoutes], scaffold.RBACMarker, "views and routes still written")
}

func TestScaffoldRBAC_ExistingMigrationsSkipped(t *testing.T) {
	f := newRbacFixture()
	f.writer.files["database/migrations/2023_01_01_000000_create_roles_table.php"] = "<?php\n"

	resp, err := f.svc.ScaffoldRBAC(context.Background(), primary.RBACRequest{})
	require.NoError(t, err)

	var created, skipped int
	for _, r := range resp.Files {
		if r.Kind != string(scaffold.KindMigration) {
			continue
		}
		switch r.Status {
		case primary.OpCreate:
			created++
		case primary.OpSkip:
			skipped++
			assert.Equal(t, "database/migrations/*_create_roles_table.php", r.Path)
		}
	}
	assert.Equal(t, 4, created)
	assert.Equal(t, 1, skipped)
	assert.NotContains(t, f.writer.files, "database/migrations/2024_05_01_120000_create_roles_table.php")
}

func TestScaffoldRBAC_SecondRun(t *testing.T) {
	f := newRbacFixture()
	ctx := context.Background()

	_, err := f.svc.ScaffoldRBAC(ctx, primary.RBACRequest{})
	require.NoError(t, err)
	routes := f.writer.files[scaffold.WebRoutes]

	resp, err := f.svc.ScaffoldRBAC(ctx, primary.RBACRequest{})
	require.NoError(t, err)

	assert.Equal(t, routes, f.writer.files[scaffold.WebRoutes])
	assert.Equal(t, 0, resp.Permissions.PermissionsCreated)
	for _, r := range resp.Files {
		if r.Kind == string(scaffold.KindModel) || r.Kind == string(scaffold.KindMigration) {
			assert.Equal(t, primary.OpSkip, r.Status, r.Path)
		}
	}
}

func TestScaffoldRBAC_WriteFailure(t *testing.T) {
	f := newRbacFixture()
	f.writer.writeErr["app/Models/Role.php"] = errors.New("permission denied")

	_, err := f.svc.ScaffoldRBAC(context.Background(), primary.RBACRequest{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrWriteFailed))
	assert.Equal(t, 0, f.artisan.migrateCalls)
}

func TestScaffoldRBAC_DryRun(t *testing.T) {
	f := newRbacFixture()

	resp, err := f.svc.ScaffoldRBAC(context.Background(), primary.RBACRequest{DryRun: true})
	require.NoError(t, err)

	assert.Empty(t, f.writer.writes)
	assert.Equal(t, 0, f.artisan.migrateCalls)
	assert.Empty(t, f.store.permissions)
	assert.NotEmpty(t, resp.Files)
	assert.NotEmpty(t, resp.Warnings)
}
