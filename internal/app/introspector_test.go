package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/crudgen/internal/core/field"
	"github.com/example/crudgen/internal/ports/secondary"
)

func TestIntrospect(t *testing.T) {
	provider := newMockSchemaProvider()
	provider.models["Product"] = &secondary.ModelDescriptor{
		Name:     "Product",
		Table:    "products",
		Fillable: []string{"name", "status", "category_id"},
		Enums:    map[string]field.Enum{"status": {Values: []string{"draft", "live"}, Default: "draft"}},
	}
	provider.columns["products.name"] = field.String
	provider.columns["products.status"] = field.String
	provider.columns["products.category_id"] = field.UnsignedBigInteger

	desc, fields, err := Introspect(context.Background(), provider, "Product")
	require.NoError(t, err)
	assert.Equal(t, "products", desc.Table)

	require.Len(t, fields, 3)
	assert.Equal(t, "name", fields[0].Name)
	assert.Nil(t, fields[0].Enum)
	require.NotNil(t, fields[1].Enum)
	assert.Equal(t, "draft", fields[1].Enum.Default)
	assert.Equal(t, field.UnsignedBigInteger, fields[2].Column)
}

func TestIntrospect_Errors(t *testing.T) {
	provider := newMockSchemaProvider()
	provider.models["Empty"] = &secondary.ModelDescriptor{Name: "Empty", Table: "empties"}
	provider.models["Broken"] = &secondary.ModelDescriptor{Name: "Broken", Table: "brokens", Fillable: []string{"ghost"}}

	tests := []struct {
		name    string
		model   string
		wantErr error
	}{
		{"model missing", "Missing", ErrModelNotFound},
		{"no fillable fields", "Empty", ErrNoWritableFields},
		{"column lookup fails", "Broken", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Introspect(context.Background(), provider, tt.model)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			}
		})
	}
}
