// Package scaffold renders Laravel artifacts from embedded templates.
// Rendering is pure: nothing here touches the filesystem.
package scaffold

import (
	"github.com/example/crudgen/internal/core/field"
	"github.com/example/crudgen/internal/core/rules"
)

// ArtifactKind identifies one generated file type.
type ArtifactKind string

// Artifact kinds.
const (
	KindModel         ArtifactKind = "model"
	KindMigration     ArtifactKind = "migration"
	KindResource      ArtifactKind = "resource"
	KindStoreRequest  ArtifactKind = "storeRequest"
	KindUpdateRequest ArtifactKind = "updateRequest"
	KindRequest       ArtifactKind = "request"
	KindController    ArtifactKind = "controller"
	KindIndexView     ArtifactKind = "indexView"
	KindCreateView    ArtifactKind = "createView"
	KindEditView      ArtifactKind = "editView"
	KindShowView      ArtifactKind = "showView"
	KindView          ArtifactKind = "view"
	KindLayout        ArtifactKind = "layout"
	KindStylesheet    ArtifactKind = "stylesheet"
	KindRouteFragment ArtifactKind = "routeFragment"
)

// Policy decides what the writer does when the destination already exists.
type Policy string

// Write policies.
const (
	// SkipIfExists leaves an existing file untouched.
	SkipIfExists Policy = "skip_if_exists"
	// Overwrite replaces the file unconditionally.
	Overwrite Policy = "overwrite"
	// AppendIfAbsent appends Content unless Marker is already present.
	AppendIfAbsent Policy = "append_if_absent"
)

// ArtifactSpec carries everything the CRUD templates need for one target.
type ArtifactSpec struct {
	Name    string      // PascalCase model name: "Product"
	Slug    string      // lower-cased plural: "products"
	Table   string      // database table: "products"
	Fields  []FieldView // writable fields, in model order
	PerPage int         // index pagination size
}

// FieldView is a field with its derived rule and input.
type FieldView struct {
	Name   string
	Column field.ColumnType
	Rule   rules.Rule
	Input  rules.Input
}

// IsSelect reports whether the field renders as a select element.
func (f FieldView) IsSelect() bool { return f.Input.Type == rules.InputSelect }

// IsCheckbox reports whether the field renders as a hidden-zero + checkbox pair.
func (f FieldView) IsCheckbox() bool { return f.Input.Type == rules.InputCheckbox }

// LayoutOptions configures the shared admin layout.
type LayoutOptions struct {
	Brand      string
	FooterText string
	FooterURL  string
}

// GeneratedFile is one rendered artifact and the policy for writing it.
type GeneratedFile struct {
	Kind    ArtifactKind
	Path    string // relative to the project root
	Content string
	Policy  Policy
	Marker  string // AppendIfAbsent only
}

// GeneratorResult contains the result of a scaffold operation.
type GeneratorResult struct {
	Files     []GeneratedFile
	NextSteps []string
}
