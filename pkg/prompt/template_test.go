package prompt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePromptTemplate(t *testing.T) {
	tmpl, err := ParsePromptTemplate("greeting", "Hello, {{.Name}}!", nil)
	require.NoError(t, err)

	out, err := tmpl.Render(map[string]string{"Name": "analyst"})
	require.NoError(t, err)
	require.Equal(t, "Hello, analyst!", out)
	require.Len(t, tmpl.Digest(), 64)
}

func TestParsePromptTemplateMissingKey(t *testing.T) {
	tmpl, err := ParsePromptTemplate("strict", "{{.Missing}}", nil)
	require.NoError(t, err)

	_, err = tmpl.Render(map[string]string{})
	require.Error(t, err)
}

func TestNewPromptTemplateFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "user.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("Price: {{.Price}}"), 0o644))

	tmpl, err := NewPromptTemplate(path, nil)
	require.NoError(t, err)

	out, err := tmpl.Render(map[string]string{"Price": "$1,800.00"})
	require.NoError(t, err)
	require.Equal(t, "Price: $1,800.00", out)

	require.NoError(t, os.WriteFile(path, []byte("Now: {{.Price}}"), 0o644))
	require.NoError(t, tmpl.Reload())
	out, err = tmpl.Render(map[string]string{"Price": "x"})
	require.NoError(t, err)
	require.Equal(t, "Now: x", out)
}

func TestDigestString(t *testing.T) {
	require.Equal(t, DigestString("abc"), DigestString("abc"))
	require.NotEqual(t, DigestString("abc"), DigestString("abd"))
}
