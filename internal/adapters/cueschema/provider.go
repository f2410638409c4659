// Package cueschema implements a schema provider over a CUE manifest of
// model definitions, for projects where no database or migrations are at hand.
//
// Each definition is one model; its regular fields are the writable fields
// in declaration order:
//
//	#Product: {
//		name:        string
//		description: string @text()
//		price:       number
//		category_id: int @unsigned()
//		is_active:   bool
//		status:      *"draft" | "published"
//		released_on: string @date()
//	} @table(products)
package cueschema

import (
	"context"
	"fmt"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/example/crudgen/internal/core/field"
	"github.com/example/crudgen/internal/core/naming"
	"github.com/example/crudgen/internal/ports/secondary"
)

// Model is one definition read from a manifest.
type Model struct {
	Descriptor secondary.ModelDescriptor
	Columns    map[string]field.ColumnType
}

// Provider implements secondary.SchemaProvider over a CUE manifest file.
type Provider struct {
	path   string
	models map[string]*Model
}

var _ secondary.SchemaProvider = (*Provider)(nil)

// NewProvider creates a Provider reading the manifest at path.
func NewProvider(path string) *Provider {
	return &Provider{path: path}
}

// DescribeModel returns the definition named #<model>.
func (p *Provider) DescribeModel(ctx context.Context, model string) (*secondary.ModelDescriptor, error) {
	if err := p.load(); err != nil {
		return nil, err
	}
	m, ok := p.models[model]
	if !ok {
		return nil, fmt.Errorf("%w: #%s not defined in %s", secondary.ErrModelNotFound, model, p.path)
	}
	desc := m.Descriptor
	return &desc, nil
}

// ColumnType returns the column type declared for a field of the model
// mapped to table.
func (p *Provider) ColumnType(ctx context.Context, table, column string) (field.ColumnType, error) {
	if err := p.load(); err != nil {
		return field.Unknown, err
	}
	for _, m := range p.models {
		if m.Descriptor.Table != table {
			continue
		}
		if ct, ok := m.Columns[column]; ok {
			return ct, nil
		}
		return field.Unknown, fmt.Errorf("field %s not declared on table %s", column, table)
	}
	return field.Unknown, fmt.Errorf("no model maps to table %s", table)
}

func (p *Provider) load() error {
	if p.models != nil {
		return nil
	}
	data, err := os.ReadFile(p.path)
	if err != nil {
		return fmt.Errorf("failed to read CUE manifest: %w", err)
	}
	models, err := ParseManifest(data, p.path)
	if err != nil {
		return err
	}
	p.models = models
	return nil
}

// ParseManifest compiles a manifest and returns its models keyed by name.
func ParseManifest(data []byte, filename string) (map[string]*Model, error) {
	ctx := cuecontext.New()
	val := ctx.CompileBytes(data, cue.Filename(filename))
	if err := val.Err(); err != nil {
		return nil, fmt.Errorf("failed to compile %s: %w", filename, err)
	}

	models := make(map[string]*Model)
	iter, err := val.Fields(cue.Definitions(true))
	if err != nil {
		return nil, fmt.Errorf("failed to read definitions: %w", err)
	}
	for iter.Next() {
		label := iter.Selector().String()
		if !strings.HasPrefix(label, "#") {
			continue
		}
		name := strings.TrimPrefix(label, "#")
		m, err := parseModel(name, iter.Value())
		if err != nil {
			return nil, fmt.Errorf("#%s: %w", name, err)
		}
		models[name] = m
	}
	return models, nil
}

func parseModel(name string, def cue.Value) (*Model, error) {
	m := &Model{
		Descriptor: secondary.ModelDescriptor{
			Name:  name,
			Table: naming.Table(name),
			Enums: make(map[string]field.Enum),
		},
		Columns: make(map[string]field.ColumnType),
	}
	if a := def.Attribute("table"); a.Err() == nil {
		if table, err := a.String(0); err == nil && table != "" {
			m.Descriptor.Table = table
		}
	}

	iter, err := def.Fields(cue.Optional(true))
	if err != nil {
		return nil, err
	}
	for iter.Next() {
		label := strings.TrimSuffix(iter.Selector().String(), "?")
		if label == "id" || strings.HasPrefix(label, "_") {
			continue
		}
		v := iter.Value()

		if e, ok := enumOf(v); ok {
			m.Descriptor.Enums[label] = e
		}
		m.Descriptor.Fillable = append(m.Descriptor.Fillable, label)
		m.Columns[label] = columnTypeOf(v)
	}
	return m, nil
}

// columnTypeOf maps a field's CUE kind and attributes to a column type.
func columnTypeOf(v cue.Value) field.ColumnType {
	has := func(attr string) bool {
		a := v.Attribute(attr)
		return a.Err() == nil
	}

	switch v.IncompleteKind() {
	case cue.StringKind:
		switch {
		case has("text"):
			return field.Text
		case has("date"):
			return field.Date
		case has("datetime"):
			return field.DateTime
		case has("timestamp"):
			return field.Timestamp
		}
		return field.String
	case cue.IntKind:
		switch {
		case has("unsigned"):
			return field.UnsignedBigInteger
		case has("bigint"):
			return field.BigInt
		}
		return field.Integer
	case cue.FloatKind, cue.NumberKind:
		return field.Decimal
	case cue.BoolKind:
		return field.Boolean
	}
	return field.Unknown
}

// enumOf extracts a string disjunction such as *"draft" | "published".
func enumOf(v cue.Value) (field.Enum, bool) {
	if v.IncompleteKind() != cue.StringKind {
		return field.Enum{}, false
	}
	op, args := v.Expr()
	if op != cue.OrOp || len(args) < 2 {
		return field.Enum{}, false
	}

	var e field.Enum
	seen := make(map[string]bool)
	for _, a := range args {
		s, err := a.String()
		if err != nil {
			d, ok := a.Default()
			if !ok {
				return field.Enum{}, false
			}
			if s, err = d.String(); err != nil {
				return field.Enum{}, false
			}
		}
		if !seen[s] {
			seen[s] = true
			e.Values = append(e.Values, s)
		}
	}

	if d, ok := v.Default(); ok {
		if s, err := d.String(); err == nil {
			e.Default = s
		}
	}
	return e, true
}
