package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOpen_SQLite(t *testing.T) {
	gdb, err := Open(DriverSQLite, ":memory:", zap.NewNop())
	require.NoError(t, err)
	defer Close(gdb)

	require.NoError(t, gdb.Exec(GetSchemaSQL()).Error)

	for _, table := range []string{"roles", "permission_groups", "permissions", "role_permissions", "user_roles"} {
		assert.True(t, gdb.Migrator().HasTable(table), table)
	}

	var fk int
	require.NoError(t, gdb.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk)
}

func TestOpen_Errors(t *testing.T) {
	tests := []struct {
		name   string
		driver string
		dsn    string
	}{
		{"missing dsn", DriverSQLite, ""},
		{"unknown driver", "oracle", "scott/tiger"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(tt.driver, tt.dsn, zap.NewNop())
			assert.Error(t, err)
		})
	}
}
