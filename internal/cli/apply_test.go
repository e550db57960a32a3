package cli

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/stagehand/internal/scene"
	"github.com/roach88/stagehand/internal/sceneio"
)

func TestApply_GroupThenUndoLeavesSceneUnchanged(t *testing.T) {
	dir := t.TempDir()
	scenePath := writeFile(t, dir, "scene.yaml", sampleScene)
	scriptPath := writeFile(t, dir, "script.yaml", `steps:
  - op: group
    nodes: [hero, goblin]
    name: Cast
  - op: undo
`)
	outPath := writeFile(t, dir, "out.yaml", "")

	_, err := execute(t, "apply", scenePath, scriptPath, "--out", outPath, "--seq-ids")
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	g, err := sceneio.LoadScene(string(data))
	require.NoError(t, err)
	require.Len(t, g.Roots(), 2, "undo removed the container again")
	assert.Equal(t, scene.NodeID("hero"), g.Roots()[0].ID)
	assert.Equal(t, scene.NodeID("goblin"), g.Roots()[1].ID)
}

func TestApply_DuplicateWritesClone(t *testing.T) {
	dir := t.TempDir()
	scenePath := writeFile(t, dir, "scene.yaml", sampleScene)
	scriptPath := writeFile(t, dir, "script.yaml", `steps:
  - op: duplicate
    nodes: [goblin]
`)
	outPath := writeFile(t, dir, "out.yaml", "")

	_, err := execute(t, "apply", scenePath, scriptPath, "--out", outPath, "--seq-ids")
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	g, err := sceneio.LoadScene(string(data))
	require.NoError(t, err)
	require.Len(t, g.Roots(), 3)

	clone := g.Node("gen-1")
	require.NotNil(t, clone)
	assert.Equal(t, "goblin (copy)", clone.Name)
	assert.Len(t, g.GroupMembers("enemies"), 2, "clone keeps the group tag")
}

func TestApply_UnknownStepFails(t *testing.T) {
	dir := t.TempDir()
	scenePath := writeFile(t, dir, "scene.yaml", sampleScene)
	scriptPath := writeFile(t, dir, "script.yaml", `steps:
  - op: teleport
`)

	_, err := execute(t, "apply", scenePath, scriptPath)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestApply_MissingSceneIsCommandError(t *testing.T) {
	dir := t.TempDir()
	scriptPath := writeFile(t, dir, "script.yaml", "steps: []\n")

	_, err := execute(t, "apply", "nope.yaml", scriptPath)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestApply_JournalAndHistoryRoundTrip(t *testing.T) {
	dir := t.TempDir()
	scenePath := writeFile(t, dir, "scene.yaml", sampleScene)
	scriptPath := writeFile(t, dir, "script.yaml", `steps:
  - op: group
    nodes: [hero, goblin]
  - op: undo
`)
	dbPath := dir + "/history.db"
	outPath := writeFile(t, dir, "out.yaml", "")

	_, err := execute(t, "apply", scenePath, scriptPath, "--out", outPath, "--seq-ids", "--journal", dbPath)
	require.NoError(t, err)

	out, err := execute(t, "history", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "push")
	assert.Contains(t, out, "undo")
	assert.Contains(t, out, "group")
}

func TestHistory_MissingDatabase(t *testing.T) {
	_, err := execute(t, "history", "missing.db")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
