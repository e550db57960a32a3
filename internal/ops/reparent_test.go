package ops

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/stagehand/internal/scene"
)

func TestReparent_OntoSelfIsNoOp(t *testing.T) {
	env, _, ui := newTestEnv()
	a := scene.NewNode("a", "a", scene.KindNode2D)
	env.Graph.Insert(a, nil, 0)

	mustNoop(t, env, Reparent{NodeID: "a", NewParentID: "a"})

	assert.Equal(t, []scene.NodeID{"a"}, rootIDs(env.Graph), "graph unchanged")
	assert.False(t, ui.Dirty(), "no-ops never reach the UI store")
}

func TestReparent_MissingIDsAreNoOps(t *testing.T) {
	env, _, _ := newTestEnv()
	env.Graph.Insert(scene.NewNode("a", "a", scene.KindNode2D), nil, 0)

	mustNoop(t, env, Reparent{NodeID: "ghost"})
	mustNoop(t, env, Reparent{NodeID: "a", NewParentID: "ghost"})
}

func TestReparent_UnderDescendantIsNoOp(t *testing.T) {
	env, _, _ := newTestEnv()
	p := scene.NewNode("p", "p", scene.KindNode2D)
	c := scene.NewNode("c", "c", scene.KindNode2D)
	env.Graph.Insert(p, nil, 0)
	env.Graph.Insert(c, p, 0)

	mustNoop(t, env, Reparent{NodeID: "p", NewParentID: "c"})
}

func TestReparent_UnderInstanceIsNoOp(t *testing.T) {
	env, _, _ := newTestEnv()
	env.Graph.Insert(scene.NewNode("a", "a", scene.KindNode2D), nil, 0)
	env.Graph.Insert(scene.NewNode("i", "i", scene.KindInstance), nil, 1)

	mustNoop(t, env, Reparent{NodeID: "a", NewParentID: "i"})
}

func TestReparent_MovesAndRoundTrips(t *testing.T) {
	env, _, ui := newTestEnv()
	g := env.Graph
	p := scene.NewNode("p", "p", scene.KindNode2D)
	q := scene.NewNode("q", "q", scene.KindNode2D)
	c := scene.NewNode("c", "c", scene.KindNode2D)
	p.Transform.Translation = scene.Vec3{X: 10}
	g.Insert(p, nil, 0)
	g.Insert(q, nil, 1)
	g.Insert(c, p, 0)
	worldBefore := scene.WorldTransform(c)

	res := mustPerform(t, env, Reparent{NodeID: "c", NewParentID: "q", Index: 0})

	assert.Equal(t, []scene.NodeID{"c"}, childIDs(q))
	assert.Equal(t, 0, p.ChildCount())
	world := scene.WorldTransform(c)
	assert.InDelta(t, worldBefore.Translation.X, world.Translation.X, 1e-9)
	assert.True(t, ui.Dirty())
	assert.Equal(t, scene.NodeID("c"), ui.Selection().Primary)

	undo(t, env, res)
	assert.Equal(t, []scene.NodeID{"c"}, childIDs(p), "undo restores the recorded owner")
	assert.Equal(t, 0, q.ChildCount())

	redo(t, env, res)
	assert.Equal(t, []scene.NodeID{"c"}, childIDs(q))
}

func TestReparent_ToRootClampsDriftedIndex(t *testing.T) {
	env, _, _ := newTestEnv()
	g := env.Graph
	p := scene.NewNode("p", "p", scene.KindNode2D)
	c := scene.NewNode("c", "c", scene.KindNode2D)
	g.Insert(p, nil, 0)
	g.Insert(c, p, 0)

	// Requested index far beyond the current root count clamps, not throws.
	res := mustPerform(t, env, Reparent{NodeID: "c", Index: 99})

	assert.Equal(t, []scene.NodeID{"p", "c"}, rootIDs(g))
	require.NoError(t, res.Commit.Undo(context.Background()))
	assert.Equal(t, []scene.NodeID{"c"}, childIDs(p))
}
