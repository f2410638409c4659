package scaffold

import (
	"fmt"
	"regexp"

	"github.com/example/crudgen/internal/core/field"
	"github.com/example/crudgen/internal/core/naming"
	"github.com/example/crudgen/internal/core/rules"
)

// DefaultPerPage is the index page size used by generated controllers.
const DefaultPerPage = 10

var modelNamePattern = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)

// ValidateModelName checks that name is a usable PHP class name.
func ValidateModelName(name string) error {
	if name == "" {
		return fmt.Errorf("model name is required")
	}
	if !modelNamePattern.MatchString(name) {
		return fmt.Errorf("invalid model name %q: must be a PascalCase class name", name)
	}
	return nil
}

// BuildArtifactSpec derives rules and inputs for every field and assembles
// the CRUD template input. Enum options for select inputs are taken from the
// deriver's scratch map, which Derive fills in the same pass.
func BuildArtifactSpec(name, table string, fields []field.Spec, d *rules.Deriver) (*ArtifactSpec, error) {
	if err := ValidateModelName(name); err != nil {
		return nil, err
	}
	if table == "" {
		table = naming.Table(name)
	}

	views := make([]FieldView, 0, len(fields))
	for _, f := range fields {
		rule, input := d.Derive(f)
		if input.Type == rules.InputSelect {
			if e, ok := d.EnumFor(f.Name); ok {
				input.Options = e.Values
				input.Default = e.Default
			}
		}
		views = append(views, FieldView{
			Name:   f.Name,
			Column: f.Column,
			Rule:   rule,
			Input:  input,
		})
	}

	return &ArtifactSpec{
		Name:    name,
		Slug:    naming.Slug(name),
		Table:   table,
		Fields:  views,
		PerPage: DefaultPerPage,
	}, nil
}
