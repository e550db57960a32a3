package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns captured output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// writeFile drops content into dir and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const sampleScene = `roots:
  - id: hero
    name: hero
    kind: node2d
    children:
      - id: sword
        name: sword
        kind: node2d
  - id: goblin
    name: goblin
    kind: node2d
    groups: [enemies]
`

const invalidScene = `roots:
  - id: dup
    name: a
    kind: node2d
  - id: dup
    name: b
    kind: node2d
`
