// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives the Laravel project.
package secondary

import (
	"context"
	"errors"

	"github.com/example/crudgen/internal/core/field"
)

// ErrModelNotFound is returned by a SchemaProvider when the named model does not exist.
var ErrModelNotFound = errors.New("model not found")

// SchemaProvider defines the secondary port for model introspection.
type SchemaProvider interface {
	// DescribeModel returns the writable field list and metadata of a model.
	// Returns ErrModelNotFound (wrapped) when the model is absent.
	DescribeModel(ctx context.Context, model string) (*ModelDescriptor, error)

	// ColumnType returns the storage type of one column.
	ColumnType(ctx context.Context, table, column string) (field.ColumnType, error)
}

// ModelDescriptor describes a model as declared in the project.
type ModelDescriptor struct {
	Name     string
	Table    string                // resolved table name
	Fillable []string              // writable fields in declaration order
	Enums    map[string]field.Enum // keyed by field name
}

// ColumnSource defines the secondary port for raw column type lookups.
// Raw types are driver or Blueprint spellings, normalized by field.ParseColumnType.
type ColumnSource interface {
	RawColumnType(ctx context.Context, table, column string) (string, error)
}
