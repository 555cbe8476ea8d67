package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTemplate(t *testing.T) {
	out, err := RenderTemplate(
		`{{upper .kind}} for {{default "team" .audience}}: {{join ", " .tags}} / {{truncate 8 .body}}`,
		map[string]any{"kind": "blog", "tags": []string{"go", "ai"}, "body": "a very long body"},
	)
	require.NoError(t, err)
	assert.Equal(t, "BLOG for team: go, ai / a ver...", out)
}

func TestRenderTemplate_NoMarkers(t *testing.T) {
	out, err := RenderTemplate("plain <b>text</b>", nil)
	require.NoError(t, err)
	assert.Equal(t, "plain <b>text</b>", out)
}

func TestRenderTemplate_NoEscaping(t *testing.T) {
	out, err := RenderTemplate("{{.v}}", map[string]any{"v": "<release & notes>"})
	require.NoError(t, err)
	assert.Equal(t, "<release & notes>", out)
}

func TestRenderTemplate_MissingKey(t *testing.T) {
	out, err := RenderTemplate("[{{.missing}}]", map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, "[]", out)
}

func TestRenderTemplate_ParseError(t *testing.T) {
	_, err := RenderTemplate("{{.unclosed", nil)
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate(10, "short"))
	assert.Equal(t, "ab", Truncate(2, "abcdef"))
	assert.Equal(t, "héllo", Truncate(0, "héllo"))
}
