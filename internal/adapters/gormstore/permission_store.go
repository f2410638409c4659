package gormstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/example/crudgen/internal/ports/secondary"
)

// PermissionStore implements secondary.PermissionStore.
type PermissionStore struct {
	db *gorm.DB
}

var _ secondary.PermissionStore = (*PermissionStore)(nil)

// NewPermissionStore creates a PermissionStore.
func NewPermissionStore(db *gorm.DB) *PermissionStore {
	return &PermissionStore{db: db}
}

// Ready reports whether both permission tables exist.
func (s *PermissionStore) Ready(ctx context.Context) (bool, error) {
	m := s.db.WithContext(ctx).Migrator()
	return m.HasTable(&PermissionGroup{}) && m.HasTable(&Permission{}), nil
}

// EnsureGroup finds a group by name or creates it active.
func (s *PermissionStore) EnsureGroup(ctx context.Context, name string) (*secondary.PermissionGroupRecord, error) {
	var g PermissionGroup
	result := s.db.WithContext(ctx).
		Where(PermissionGroup{Name: name}).
		Attrs(PermissionGroup{IsActive: true}).
		FirstOrCreate(&g)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to ensure permission group %s: %w", name, result.Error)
	}

	return &secondary.PermissionGroupRecord{
		ID:       g.ID,
		Name:     g.Name,
		IsActive: g.IsActive,
		Created:  result.RowsAffected > 0,
	}, nil
}

// EnsurePermission finds a permission by key or creates it in groupID.
// An existing permission keeps its name and group.
func (s *PermissionStore) EnsurePermission(ctx context.Context, groupID int64, key, name string) (*secondary.PermissionRecord, error) {
	var p Permission
	result := s.db.WithContext(ctx).
		Where(Permission{Key: key}).
		Attrs(Permission{Name: name, PermissionGroupID: groupID, IsActive: true}).
		FirstOrCreate(&p)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to ensure permission %s: %w", key, result.Error)
	}

	return &secondary.PermissionRecord{
		ID:                p.ID,
		Name:              p.Name,
		Key:               p.Key,
		PermissionGroupID: p.PermissionGroupID,
		IsActive:          p.IsActive,
		Created:           result.RowsAffected > 0,
	}, nil
}
