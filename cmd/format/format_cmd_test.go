package format

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaroVoltix/TestLint/internal/app"
	"github.com/JaroVoltix/TestLint/internal/testhelpers"
)

const goManifest = `{
  "name": "Tools",
  "projects": {
    "Tools": {
      "name": "Tools",
      "path": "Tools",
      "targets": [
        {"name": "Tools", "sources": ["bad.go", "good.go"]}
      ]
    }
  }
}
`

const unformatted = "package tools\nfunc  F( ) {}\n"

func newGoProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	testhelpers.WriteFile(t, filepath.Join(root, "graph.json"), goManifest)
	testhelpers.WriteFile(t, filepath.Join(root, ".tuist-lint.yml"), "provider: manifest\nformatter:\n  engine: goimports\n")
	testhelpers.WriteFile(t, filepath.Join(root, "Tools", "bad.go"), unformatted)
	testhelpers.WriteFile(t, filepath.Join(root, "Tools", "good.go"), "package tools\n\nfunc G() {}\n")
	return root
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestFormatCommand_LintReportsWithoutWriting(t *testing.T) {
	root := newGoProject(t)

	out, err := execute(t, "--path", root, "--lint")

	require.Error(t, err)
	assert.ErrorIs(t, err, app.ErrFailed)
	assert.Contains(t, out, "bad.go:2: file is not goimports-formatted (goimports)")
	assert.NotContains(t, out, "good.go")
	assert.Contains(t, out, "1/2 files require formatting")

	data, err := os.ReadFile(filepath.Join(root, "Tools", "bad.go"))
	require.NoError(t, err)
	assert.Equal(t, unformatted, string(data))
}

func TestFormatCommand_RewritesFiles(t *testing.T) {
	root := newGoProject(t)

	out, err := execute(t, "--path", root, "-t", "Tools")

	require.NoError(t, err)
	assert.Contains(t, out, "1/2 files formatted")

	data, err := os.ReadFile(filepath.Join(root, "Tools", "bad.go"))
	require.NoError(t, err)
	assert.Equal(t, "package tools\n\nfunc F() {}\n", string(data))
}

func TestFormatCommand_ExplicitPath(t *testing.T) {
	root := newGoProject(t)

	out, err := execute(t, "--path", root, "--lint", filepath.Join(root, "Tools", "good.go"))

	require.NoError(t, err)
	assert.Contains(t, out, "0/1 files require formatting")
}
