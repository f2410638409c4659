package gormstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/example/crudgen/internal/ports/secondary"
)

// ColumnInspector implements secondary.ColumnSource against a live database.
type ColumnInspector struct {
	db *gorm.DB
}

var _ secondary.ColumnSource = (*ColumnInspector)(nil)

// NewColumnInspector creates a ColumnInspector.
func NewColumnInspector(db *gorm.DB) *ColumnInspector {
	return &ColumnInspector{db: db}
}

// RawColumnType returns the column's full database type, e.g.
// "bigint unsigned" on MySQL or "character varying" on Postgres.
func (c *ColumnInspector) RawColumnType(ctx context.Context, table, column string) (string, error) {
	m := c.db.WithContext(ctx).Migrator()
	if !m.HasTable(table) {
		return "", fmt.Errorf("table %s does not exist", table)
	}

	columns, err := m.ColumnTypes(table)
	if err != nil {
		return "", fmt.Errorf("failed to read columns of %s: %w", table, err)
	}
	for _, col := range columns {
		if col.Name() != column {
			continue
		}
		if full, ok := col.ColumnType(); ok && full != "" {
			return full, nil
		}
		return col.DatabaseTypeName(), nil
	}
	return "", fmt.Errorf("column %s.%s does not exist", table, column)
}
