package wire

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/crudgen/internal/adapters/gormstore"
	"github.com/example/crudgen/internal/ports/secondary"
)

// lazyColumns reads column types from the live database. The connection is
// opened on the first lookup so commands that never introspect do not need it.
type lazyColumns struct{}

var _ secondary.ColumnSource = (*lazyColumns)(nil)

func (l *lazyColumns) RawColumnType(ctx context.Context, table, column string) (string, error) {
	gdb, err := Database()
	if err != nil {
		return "", fmt.Errorf("failed to open database for column types: %w", err)
	}
	return gormstore.NewColumnInspector(gdb).RawColumnType(ctx, table, column)
}

// lazyPermissionStore defers opening the database until synthesis runs,
// which is after migrations may have created it.
type lazyPermissionStore struct {
	store *gormstore.PermissionStore
}

var _ secondary.PermissionStore = (*lazyPermissionStore)(nil)

// Ready reports false when there is no database yet. A configured
// database that fails to open is an error.
func (l *lazyPermissionStore) Ready(ctx context.Context) (bool, error) {
	if l.store == nil {
		gdb, err := Database()
		if errors.Is(err, ErrNoDatabase) {
			logger.Debug("no database for permissions", zap.Error(err))
			return false, nil
		}
		if err != nil {
			return false, err
		}
		l.store = gormstore.NewPermissionStore(gdb)
	}
	return l.store.Ready(ctx)
}

func (l *lazyPermissionStore) EnsureGroup(ctx context.Context, name string) (*secondary.PermissionGroupRecord, error) {
	if l.store == nil {
		return nil, ErrNoDatabase
	}
	return l.store.EnsureGroup(ctx, name)
}

func (l *lazyPermissionStore) EnsurePermission(ctx context.Context, groupID int64, key, name string) (*secondary.PermissionRecord, error) {
	if l.store == nil {
		return nil, ErrNoDatabase
	}
	return l.store.EnsurePermission(ctx, groupID, key, name)
}
