package app

import (
	"context"
	"fmt"

	"github.com/example/crudgen/internal/core/field"
	"github.com/example/crudgen/internal/ports/secondary"
)

// Introspect returns the model's descriptor and its writable fields with
// column types, in declaration order. Any column lookup failure is fatal.
func Introspect(ctx context.Context, provider secondary.SchemaProvider, model string) (*secondary.ModelDescriptor, []field.Spec, error) {
	desc, err := provider.DescribeModel(ctx, model)
	if err != nil {
		return nil, nil, err
	}
	if len(desc.Fillable) == 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrNoWritableFields, model)
	}

	fields := make([]field.Spec, 0, len(desc.Fillable))
	for _, name := range desc.Fillable {
		ct, err := provider.ColumnType(ctx, desc.Table, name)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to resolve column type of %s.%s: %w", desc.Table, name, err)
		}

		spec := field.Spec{Name: name, Column: ct}
		if e, ok := desc.Enums[name]; ok && len(e.Values) > 0 {
			enum := e
			spec.Enum = &enum
		}
		fields = append(fields, spec)
	}
	return desc, fields, nil
}
