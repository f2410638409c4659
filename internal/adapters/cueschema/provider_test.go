package cueschema

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/crudgen/internal/core/field"
	"github.com/example/crudgen/internal/ports/secondary"
	"github.com/example/crudgen/internal/templates"
)

const manifest = `package models

#Product: {
	id:          int
	name:        string
	description: string @text()
	price:       number
	category_id: int @unsigned()
	stock:       int
	is_active:   bool
	status:      *"draft" | "published"
	released_on: string @date()
}

#Person: {
	email: string
} @table(staff)
`

func TestParseManifest(t *testing.T) {
	models, err := ParseManifest([]byte(manifest), "crudgen.cue")
	require.NoError(t, err)
	require.Contains(t, models, "Product")

	product := models["Product"]
	assert.Equal(t, "products", product.Descriptor.Table)
	assert.Equal(t, []string{
		"name", "description", "price", "category_id", "stock", "is_active", "status", "released_on",
	}, product.Descriptor.Fillable)

	tests := []struct {
		column string
		want   field.ColumnType
	}{
		{"name", field.String},
		{"description", field.Text},
		{"price", field.Decimal},
		{"category_id", field.UnsignedBigInteger},
		{"stock", field.Integer},
		{"is_active", field.Boolean},
		{"status", field.String},
		{"released_on", field.Date},
	}
	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			assert.Equal(t, tt.want, product.Columns[tt.column])
		})
	}

	status, ok := product.Descriptor.Enums["status"]
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"draft", "published"}, status.Values)
	assert.Equal(t, "draft", status.Default)
	assert.NotContains(t, product.Descriptor.Enums, "name")

	assert.Equal(t, "staff", models["Person"].Descriptor.Table)
}

func TestParseManifest_Invalid(t *testing.T) {
	_, err := ParseManifest([]byte(`#Product: { name: string`), "broken.cue")
	assert.Error(t, err)
}

func TestProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crudgen.cue")
	require.NoError(t, os.WriteFile(path, []byte(manifest), 0o644))

	p := NewProvider(path)
	ctx := context.Background()

	desc, err := p.DescribeModel(ctx, "Person")
	require.NoError(t, err)
	assert.Equal(t, []string{"email"}, desc.Fillable)

	ct, err := p.ColumnType(ctx, "staff", "email")
	require.NoError(t, err)
	assert.Equal(t, field.String, ct)

	_, err = p.ColumnType(ctx, "staff", "phone")
	assert.Error(t, err)

	_, err = p.DescribeModel(ctx, "Order")
	assert.True(t, errors.Is(err, secondary.ErrModelNotFound))
}

func TestProvider_MissingManifest(t *testing.T) {
	p := NewProvider(filepath.Join(t.TempDir(), "none.cue"))
	_, err := p.DescribeModel(context.Background(), "Product")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, secondary.ErrModelNotFound))
}

func TestParseManifest_InitExample(t *testing.T) {
	example, err := templates.GetManifestExample()
	require.NoError(t, err)

	models, err := ParseManifest([]byte(example), "crudgen.cue")
	require.NoError(t, err)

	require.Contains(t, models, "Product")
	assert.Equal(t, "draft", models["Product"].Descriptor.Enums["status"].Default)
	assert.Equal(t, "clients", models["Customer"].Descriptor.Table)
}
