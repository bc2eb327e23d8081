// Package testhelpers builds on-disk project fixtures for command tests.
package testhelpers

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// ReportingLinterConfig lints with sh, reporting one warning per file it receives.
const ReportingLinterConfig = `provider: manifest
linter:
  engine: command
  command: sh
  args:
    - -c
    - 'for f in "$@"; do echo "$f:1:1: warning: Avoid force unwrapping (force_unwrapping)"; done'
    - sh
`

// Manifest is a graph with an internal App project and an external Vendor project.
const Manifest = `{
  "name": "Fixture",
  "projects": {
    "App": {
      "name": "App",
      "path": "App",
      "isExternal": false,
      "targets": [
        {
          "name": "App",
          "sources": ["Sources/App.swift"],
          "dependencies": [{"target": {"name": "Core"}}]
        },
        {
          "name": "Core",
          "sources": ["Sources/Core.swift"]
        }
      ]
    },
    "Vendor": {
      "name": "Vendor",
      "path": "Vendor",
      "isExternal": true,
      "targets": [
        {"name": "Alamofire", "sources": ["AF.swift"]}
      ]
    }
  }
}
`

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// RequireShell skips the test when sh is not available.
func RequireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

// NewProject writes Manifest, its sources and config to a temporary directory and returns it.
func NewProject(t *testing.T, config string) string {
	t.Helper()
	root := t.TempDir()

	WriteFile(t, filepath.Join(root, "graph.json"), Manifest)
	WriteFile(t, filepath.Join(root, "App", "Sources", "App.swift"), "let app = App()\n")
	WriteFile(t, filepath.Join(root, "App", "Sources", "Core.swift"), "struct Core {}\n")
	WriteFile(t, filepath.Join(root, "Vendor", "AF.swift"), "enum AF {}\n")
	if config != "" {
		WriteFile(t, filepath.Join(root, ".tuist-lint.yml"), config)
	}
	return root
}
