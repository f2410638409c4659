// Package templates embeds the starter files written by "crudgen init".
package templates

import (
	"embed"
)

//go:embed project/*.tmpl
var projectTemplates embed.FS

// GetManifestExample returns the example CUE model manifest.
func GetManifestExample() (string, error) {
	content, err := projectTemplates.ReadFile("project/crudgen.cue.tmpl")
	if err != nil {
		return "", err
	}
	return string(content), nil
}
