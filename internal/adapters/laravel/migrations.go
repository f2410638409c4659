package laravel

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/example/crudgen/internal/ports/secondary"
)

var (
	schemaBlockPattern = regexp.MustCompile(`Schema::(?:create|table)\(\s*['"]([^'"]+)['"]\s*,\s*(?:static\s+)?function\s*\(\s*Blueprint\s+\$(\w+)`)
	// column calls on the closure's Blueprint variable; group 1 is the variable name
	blueprintCallPattern = regexp.MustCompile(`\$(\w+)->(\w+)\(\s*['"]([^'"]+)['"]([^;]*);`)
	renamePattern        = regexp.MustCompile(`^\s*,\s*['"]([^'"]+)['"]`)
)

// Blueprint methods that take a column name but do not define a column.
var nonColumnMethods = map[string]bool{
	"index":        true,
	"unique":       true,
	"primary":      true,
	"foreign":      true,
	"fullText":     true,
	"spatialIndex": true,
	"dropIndex":    true,
	"dropUnique":   true,
	"dropPrimary":  true,
	"dropForeign":  true,
	"comment":      true,
}

// MigrationColumns implements secondary.ColumnSource by reading the
// project's migration files instead of a live database.
type MigrationColumns struct {
	dir    string
	tables map[string]map[string]string
}

var _ secondary.ColumnSource = (*MigrationColumns)(nil)

// NewMigrationColumns creates a column source over <root>/database/migrations.
func NewMigrationColumns(root string) *MigrationColumns {
	return &MigrationColumns{dir: filepath.Join(root, "database", "migrations")}
}

// RawColumnType returns the Blueprint method that last defined the column,
// with " unsigned" appended when the definition chains ->unsigned().
func (m *MigrationColumns) RawColumnType(ctx context.Context, table, column string) (string, error) {
	if m.tables == nil {
		if err := m.load(); err != nil {
			return "", err
		}
	}

	cols, ok := m.tables[table]
	if !ok {
		return "", fmt.Errorf("table %s not found in migrations", table)
	}
	raw, ok := cols[column]
	if !ok {
		return "", fmt.Errorf("column %s.%s not found in migrations", table, column)
	}
	return raw, nil
}

func (m *MigrationColumns) load() error {
	paths, err := filepath.Glob(filepath.Join(m.dir, "*.php"))
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}
	// timestamp prefixes sort chronologically
	sort.Strings(paths)

	tables := make(map[string]map[string]string)
	for _, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", filepath.Base(path), err)
		}
		ParseMigration(string(src), tables)
	}
	m.tables = tables
	return nil
}

// ParseMigration applies the Schema::create and Schema::table blocks in src
// to tables (table -> column -> raw type). Only the up() method is read.
func ParseMigration(src string, tables map[string]map[string]string) {
	if i := strings.Index(src, "function down("); i >= 0 {
		src = src[:i]
	}

	blocks := schemaBlockPattern.FindAllStringSubmatchIndex(src, -1)
	for i, loc := range blocks {
		table := src[loc[2]:loc[3]]
		variable := src[loc[4]:loc[5]]

		end := len(src)
		if i+1 < len(blocks) {
			end = blocks[i+1][0]
		}

		cols, ok := tables[table]
		if !ok {
			cols = make(map[string]string)
			tables[table] = cols
		}
		applyBlueprint(src[loc[1]:end], variable, cols)
	}
}

func applyBlueprint(body, variable string, cols map[string]string) {
	for _, m := range blueprintCallPattern.FindAllStringSubmatch(body, -1) {
		if m[1] != variable {
			continue
		}
		method, column, rest := m[2], m[3], m[4]

		switch {
		case method == "dropColumn":
			delete(cols, column)
		case method == "renameColumn":
			if to := renamePattern.FindStringSubmatch(rest); to != nil {
				if raw, ok := cols[column]; ok {
					cols[to[1]] = raw
					delete(cols, column)
				}
			}
		case nonColumnMethods[method]:
		default:
			raw := method
			if strings.Contains(rest, "->unsigned()") {
				raw += " unsigned"
			}
			cols[column] = raw
		}
	}
}
