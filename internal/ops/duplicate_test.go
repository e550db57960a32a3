package ops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/stagehand/internal/scene"
)

func TestDuplicate_EmptySelectionIsNoOp(t *testing.T) {
	env, _, _ := newTestEnv()
	mustNoop(t, env, Duplicate{})
	mustNoop(t, env, Duplicate{NodeIDs: []scene.NodeID{"ghost"}})
}

func TestDuplicate_TopLevelFilter(t *testing.T) {
	// Root has children [p(children:[c])]. Duplicating ["p","c"] drops "c"
	// and clones p exactly once, with its own clone of c inside.
	env, _, ui := newTestEnv()
	g := env.Graph
	p := scene.NewNode("p", "p", scene.KindNode2D)
	c := scene.NewNode("c", "c", scene.KindNode2D)
	g.Insert(p, nil, 0)
	g.Insert(c, p, 0)

	res := mustPerform(t, env, Duplicate{NodeIDs: []scene.NodeID{"p", "c"}, Primary: "p"})

	require.Len(t, g.Roots(), 2)
	clone := g.Roots()[1]
	assert.NotEqual(t, p.ID, clone.ID)
	assert.Equal(t, "p (copy)", clone.Name)
	require.Equal(t, 1, clone.ChildCount())
	inner := clone.Children()[0]
	assert.NotEqual(t, c.ID, inner.ID, "nested IDs are regenerated")
	assert.NotNil(t, g.Node(inner.ID), "clone descendants are indexed")

	sel := ui.Selection()
	assert.Equal(t, []scene.NodeID{clone.ID}, sel.NodeIDs)
	assert.Equal(t, clone.ID, sel.Primary)

	undo(t, env, res)
	assert.Equal(t, []scene.NodeID{"p"}, rootIDs(g))
	assert.Nil(t, g.Node(clone.ID))
	sel = ui.Selection()
	assert.Equal(t, []scene.NodeID{"p", "c"}, sel.NodeIDs, "undo restores the prior selection")
	assert.Equal(t, scene.NodeID("p"), sel.Primary)

	redo(t, env, res)
	require.Len(t, g.Roots(), 2)
	assert.Same(t, clone, g.Roots()[1], "redo reinserts the same clone instance")
	assert.Equal(t, clone.ID, ui.Selection().Primary)
}

func TestDuplicate_SiblingOrderAndOffsets(t *testing.T) {
	// Duplicating [b, a] (selection order reversed) still places clones in
	// source pre-order, each immediately after its source: [a, a', b, b', c].
	// The trailing untouched sibling must stay last.
	env, _, _ := newTestEnv()
	g := env.Graph
	for i, id := range []scene.NodeID{"a", "b", "c"} {
		g.Insert(scene.NewNode(id, string(id), scene.KindNode2D), nil, i)
	}

	res := mustPerform(t, env, Duplicate{NodeIDs: []scene.NodeID{"b", "a"}})

	assertCloneOrder := func() {
		t.Helper()
		ids := rootIDs(g)
		require.Len(t, ids, 5)
		assert.Equal(t, scene.NodeID("a"), ids[0])
		assert.Equal(t, "a (copy)", g.Roots()[1].Name)
		assert.Equal(t, scene.NodeID("b"), ids[2])
		assert.Equal(t, "b (copy)", g.Roots()[3].Name)
		assert.Equal(t, scene.NodeID("c"), ids[4])
	}
	assertCloneOrder()

	// The recorded placements replay to the same order.
	undo(t, env, res)
	assert.Equal(t, []scene.NodeID{"a", "b", "c"}, rootIDs(g))
	redo(t, env, res)
	assertCloneOrder()
}

func TestDuplicate_DeduplicatesRequestedIDs(t *testing.T) {
	env, _, _ := newTestEnv()
	g := env.Graph
	g.Insert(scene.NewNode("a", "a", scene.KindNode2D), nil, 0)

	mustPerform(t, env, Duplicate{NodeIDs: []scene.NodeID{"a", "a", "a"}})

	assert.Len(t, g.Roots(), 2, "one clone, not three")
}

func TestDuplicate_RegeneratesComponentIDs(t *testing.T) {
	env, _, _ := newTestEnv()
	g := env.Graph
	a := scene.NewNode("a", "a", scene.KindNode2D)
	a.Components = append(a.Components, &scene.Component{ID: "comp-1", Kind: "script"})
	g.Insert(a, nil, 0)

	mustPerform(t, env, Duplicate{NodeIDs: []scene.NodeID{"a"}})

	clone := g.Roots()[1]
	require.Len(t, clone.Components, 1)
	assert.NotEqual(t, a.Components[0].ID, clone.Components[0].ID)
}

func TestDuplicate_ClonesCarryGroupTags(t *testing.T) {
	env, _, _ := newTestEnv()
	g := env.Graph
	a := scene.NewNode("a", "a", scene.KindNode2D)
	g.Insert(a, nil, 0)
	g.Tag(a, "enemies")

	res := mustPerform(t, env, Duplicate{NodeIDs: []scene.NodeID{"a"}})
	assert.Len(t, g.GroupMembers("enemies"), 2)

	undo(t, env, res)
	assert.Len(t, g.GroupMembers("enemies"), 1)
}
