package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetManifestExample(t *testing.T) {
	content, err := GetManifestExample()
	require.NoError(t, err)
	assert.Contains(t, content, "package models")
	assert.Contains(t, content, "#Product:")
}
