package ops

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/stagehand/internal/ident"
	"github.com/roach88/stagehand/internal/scene"
	"github.com/roach88/stagehand/internal/sceneio"
	"github.com/roach88/stagehand/internal/uistate"
)

// newTestEnv builds an Env with deterministic IDs, an in-memory file writer
// and a recording UI store.
func newTestEnv() (*Env, *sceneio.MemWriter, *uistate.Memory) {
	files := sceneio.NewMemWriter()
	ui := uistate.NewMemory()
	env := &Env{
		Graph: scene.New(),
		IDs:   ident.NewSequence("gen"),
		Files: files,
		UI:    ui,
	}
	return env, files, ui
}

// mustPerform runs an operation and requires a mutation with a commit.
func mustPerform(t *testing.T, env *Env, op Operation) Result {
	t.Helper()
	res, err := op.Perform(context.Background(), env)
	require.NoError(t, err)
	require.True(t, res.DidMutate)
	require.NotNil(t, res.Commit)
	require.NoError(t, env.Graph.Check())
	return res
}

// mustNoop runs an operation and requires a validation no-op.
func mustNoop(t *testing.T, env *Env, op Operation) {
	t.Helper()
	res, err := op.Perform(context.Background(), env)
	require.NoError(t, err)
	require.False(t, res.DidMutate)
	require.Nil(t, res.Commit)
	require.NoError(t, env.Graph.Check())
}

// rootIDs flattens the root sequence for order assertions.
func rootIDs(g *scene.Graph) []scene.NodeID {
	var ids []scene.NodeID
	for _, r := range g.Roots() {
		ids = append(ids, r.ID)
	}
	return ids
}

func childIDs(n *scene.Node) []scene.NodeID {
	var ids []scene.NodeID
	for _, c := range n.Children() {
		ids = append(ids, c.ID)
	}
	return ids
}

func undo(t *testing.T, env *Env, res Result) {
	t.Helper()
	require.NoError(t, res.Commit.Undo(context.Background()))
	require.NoError(t, env.Graph.Check())
}

func redo(t *testing.T, env *Env, res Result) {
	t.Helper()
	require.NoError(t, res.Commit.Redo(context.Background()))
	require.NoError(t, env.Graph.Check())
}
