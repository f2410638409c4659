// Package laravel contains adapters that read a Laravel project's source tree
// and drive its artisan console.
package laravel

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/crudgen/internal/core/field"
	"github.com/example/crudgen/internal/core/naming"
	"github.com/example/crudgen/internal/ports/secondary"
)

// ModelProvider implements secondary.SchemaProvider by reading Eloquent model
// classes. Column types come from a ColumnSource.
type ModelProvider struct {
	root    string
	columns secondary.ColumnSource
}

var _ secondary.SchemaProvider = (*ModelProvider)(nil)

// NewModelProvider creates a ModelProvider for the project at root.
func NewModelProvider(root string, columns secondary.ColumnSource) *ModelProvider {
	return &ModelProvider{root: root, columns: columns}
}

// DescribeModel reads app/Models/<model>.php, falling back to app/<model>.php.
func (p *ModelProvider) DescribeModel(ctx context.Context, model string) (*secondary.ModelDescriptor, error) {
	candidates := []string{
		filepath.Join(p.root, "app", "Models", model+".php"),
		filepath.Join(p.root, "app", model+".php"),
	}

	for _, path := range candidates {
		src, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read model %s: %w", model, err)
		}
		return ParseModel(model, string(src))
	}

	return nil, fmt.Errorf("%w: %s (looked in app/Models and app)", secondary.ErrModelNotFound, model)
}

// ColumnType looks up and normalizes the column's type.
func (p *ModelProvider) ColumnType(ctx context.Context, table, column string) (field.ColumnType, error) {
	raw, err := p.columns.RawColumnType(ctx, table, column)
	if err != nil {
		return field.Unknown, err
	}
	return field.ParseColumnType(raw), nil
}

// ParseModel extracts $fillable, $table and $enumValues from model source.
//
// $enumValues maps a field to either a list of values or an array with
// "values" and an optional "default":
//
//	public $enumValues = [
//	    'status' => ['values' => ['draft', 'live'], 'default' => 'draft'],
//	    'size'   => ['s', 'm', 'l'],
//	];
func ParseModel(name, src string) (*secondary.ModelDescriptor, error) {
	desc := &secondary.ModelDescriptor{
		Name:  name,
		Table: naming.Table(name),
		Enums: make(map[string]field.Enum),
	}

	fillable, ok, err := findProperty(src, "fillable")
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", name, err)
	}
	if ok {
		desc.Fillable = fillable.scalars()
	}

	table, ok, err := findProperty(src, "table")
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", name, err)
	}
	if ok && !table.isArray && table.str != "" {
		desc.Table = table.str
	}

	enums, ok, err := findProperty(src, "enumValues")
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", name, err)
	}
	if ok {
		for _, item := range enums.items {
			if !item.hasKey || !item.value.isArray {
				continue
			}
			desc.Enums[item.key] = parseEnum(item.value)
		}
	}

	return desc, nil
}

func parseEnum(v phpValue) field.Enum {
	values, ok := v.lookup("values")
	if !ok {
		return field.Enum{Values: v.scalars()}
	}

	e := field.Enum{Values: values.scalars()}
	if def, ok := v.lookup("default"); ok && !def.isArray && !def.isNull() {
		e.Default = def.str
	}
	return e
}
