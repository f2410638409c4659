// Package scaffold provides templates for Laravel code generation.
//
// Templates use [[ ]] as action delimiters so that Blade's {{ }} echoes
// pass through untouched.
package scaffold

import (
	"embed"
	"text/template"

	"github.com/example/crudgen/internal/core/naming"
)

//go:embed crud/*.tmpl auth/*.tmpl api/*.tmpl rbac/*.tmpl layout/*.tmpl
var scaffoldTemplates embed.FS

// Action delimiters shared by every scaffold template.
const (
	LeftDelim  = "[["
	RightDelim = "]]"
)

// GetTemplate returns the content of a template, e.g. "crud/controller.php".
func GetTemplate(name string) (string, error) {
	content, err := scaffoldTemplates.ReadFile(name + ".tmpl")
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// TemplateFuncs returns the template function map for scaffold templates.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"headline": naming.Headline,
	}
}
