package app

import (
	"context"
	"errors"
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/example/crudgen/internal/core/field"
	"github.com/example/crudgen/internal/ports/secondary"
	"github.com/example/crudgen/internal/scaffold"
)

// ============================================================================
// Mock Implementations
// ============================================================================

var _ secondary.SchemaProvider = (*mockSchemaProvider)(nil)

// mockSchemaProvider serves a fixed set of models.
type mockSchemaProvider struct {
	models  map[string]*secondary.ModelDescriptor
	columns map[string]field.ColumnType // "table.column"
}

func newMockSchemaProvider() *mockSchemaProvider {
	return &mockSchemaProvider{
		models:  make(map[string]*secondary.ModelDescriptor),
		columns: make(map[string]field.ColumnType),
	}
}

func (m *mockSchemaProvider) DescribeModel(ctx context.Context, model string) (*secondary.ModelDescriptor, error) {
	desc, ok := m.models[model]
	if !ok {
		return nil, secondary.ErrModelNotFound
	}
	return desc, nil
}

func (m *mockSchemaProvider) ColumnType(ctx context.Context, table, column string) (field.ColumnType, error) {
	ct, ok := m.columns[table+"."+column]
	if !ok {
		return field.Unknown, errors.New("unknown column " + column)
	}
	return ct, nil
}

var _ secondary.ArtifactWriter = (*mockWriter)(nil)

// mockWriter keeps files in memory and mimics the filesystem writer's policies.
type mockWriter struct {
	files    map[string]string
	dirs     map[string]bool
	writes   []string // paths in write order
	writeErr map[string]error
}

func newMockWriter() *mockWriter {
	return &mockWriter{
		files:    make(map[string]string),
		dirs:     make(map[string]bool),
		writeErr: make(map[string]error),
	}
}

func (m *mockWriter) Write(ctx context.Context, f scaffold.GeneratedFile) (secondary.WriteOutcome, error) {
	if err := m.writeErr[f.Path]; err != nil {
		return "", err
	}
	outcome, err := m.Preview(ctx, f)
	if err != nil {
		return "", err
	}
	switch outcome {
	case secondary.OutcomeCreated, secondary.OutcomeOverwritten:
		m.files[f.Path] = f.Content
	case secondary.OutcomeAppended:
		current, ok := m.files[f.Path]
		if !ok {
			current = "<?php\n"
		}
		m.files[f.Path] = current + "\n" + f.Content
	}
	m.writes = append(m.writes, f.Path)
	return outcome, nil
}

func (m *mockWriter) Preview(ctx context.Context, f scaffold.GeneratedFile) (secondary.WriteOutcome, error) {
	current, exists := m.files[f.Path]
	switch f.Policy {
	case scaffold.SkipIfExists:
		if exists {
			return secondary.OutcomeSkipped, nil
		}
		return secondary.OutcomeCreated, nil
	case scaffold.Overwrite:
		if exists {
			return secondary.OutcomeOverwritten, nil
		}
		return secondary.OutcomeCreated, nil
	case scaffold.AppendIfAbsent:
		if strings.Contains(current, f.Marker) && exists {
			return secondary.OutcomeUnchanged, nil
		}
		return secondary.OutcomeAppended, nil
	}
	return "", errors.New("unknown policy")
}

func (m *mockWriter) Exists(p string) (bool, error) {
	_, isFile := m.files[p]
	return isFile || m.dirs[p], nil
}

func (m *mockWriter) GlobExists(pattern string) (bool, error) {
	for p := range m.files {
		if ok, _ := path.Match(pattern, p); ok {
			return true, nil
		}
	}
	return false, nil
}

var _ secondary.Artisan = (*mockArtisan)(nil)

type mockArtisan struct {
	migrateErr   error
	sanctumErr   error
	migrateCalls int
	sanctumCalls int
	onMigrate    func()
}

func (m *mockArtisan) Migrate(ctx context.Context) error {
	m.migrateCalls++
	if m.onMigrate != nil {
		m.onMigrate()
	}
	return m.migrateErr
}

func (m *mockArtisan) InstallSanctum(ctx context.Context) error {
	m.sanctumCalls++
	return m.sanctumErr
}

var _ secondary.RouteCatalog = (*mockRouteCatalog)(nil)

type mockRouteCatalog struct {
	names []string
	err   error
}

func (m *mockRouteCatalog) ListNamedRoutes(ctx context.Context) ([]string, error) {
	return m.names, m.err
}

var _ secondary.PermissionStore = (*mockPermissionStore)(nil)

// mockPermissionStore implements find-or-create over maps.
type mockPermissionStore struct {
	ready       bool
	readyErr    error
	groups      map[string]*secondary.PermissionGroupRecord
	permissions map[string]*secondary.PermissionRecord
	groupOrder  []string
	nextID      int64
	ensureErr   error
}

func newMockPermissionStore() *mockPermissionStore {
	return &mockPermissionStore{
		ready:       true,
		groups:      make(map[string]*secondary.PermissionGroupRecord),
		permissions: make(map[string]*secondary.PermissionRecord),
	}
}

func (m *mockPermissionStore) Ready(ctx context.Context) (bool, error) {
	return m.ready, m.readyErr
}

func (m *mockPermissionStore) EnsureGroup(ctx context.Context, name string) (*secondary.PermissionGroupRecord, error) {
	if m.ensureErr != nil {
		return nil, m.ensureErr
	}
	if g, ok := m.groups[name]; ok {
		found := *g
		found.Created = false
		return &found, nil
	}
	m.nextID++
	g := &secondary.PermissionGroupRecord{ID: m.nextID, Name: name, IsActive: true, Created: true}
	m.groups[name] = g
	m.groupOrder = append(m.groupOrder, name)
	return g, nil
}

func (m *mockPermissionStore) EnsurePermission(ctx context.Context, groupID int64, key, name string) (*secondary.PermissionRecord, error) {
	if p, ok := m.permissions[key]; ok {
		found := *p
		found.Created = false
		return &found, nil
	}
	m.nextID++
	p := &secondary.PermissionRecord{ID: m.nextID, Key: key, Name: name, PermissionGroupID: groupID, IsActive: true, Created: true}
	m.permissions[key] = p
	return p, nil
}

func testGenerator() *scaffold.Generator {
	return scaffold.NewGenerator(scaffold.LayoutOptions{Brand: "Admin Panel", FooterText: "Laravel", FooterURL: "https://laravel.com"})
}

func testExecutor(w *mockWriter) *DefaultArtifactExecutor {
	return NewArtifactExecutor(w, zap.NewNop())
}
