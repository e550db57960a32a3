package sceneio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/stagehand/internal/ident"
	"github.com/roach88/stagehand/internal/scene"
)

func sampleSubtree() *scene.Node {
	p := scene.NewNode("p", "Player", scene.KindNode2D)
	p.Transform.Translation = scene.Vec3{X: 10, Y: 5}
	p.SetGroups([]string{"actors"})
	p.Components = append(p.Components, &scene.Component{
		ID:    "comp-1",
		Kind:  "script",
		Props: map[string]any{"path": "player.lua"},
	})
	p.SetMeta("note", "hero")

	c := scene.NewNode("c", "Sprite", scene.KindNode2D)
	c.Transform.Rotation = scene.Vec3{Z: 45}
	p.AppendChild(c)
	return p
}

func TestSerialize_Materialize_RoundTrip(t *testing.T) {
	src := sampleSubtree()

	text, err := Serialize(src)
	require.NoError(t, err)

	got, err := Materialize(text)
	require.NoError(t, err)

	assert.Equal(t, src.ID, got.ID)
	assert.Equal(t, src.Name, got.Name)
	assert.Equal(t, src.Kind, got.Kind)
	assert.Equal(t, src.Transform, got.Transform)
	assert.Equal(t, src.Groups(), got.Groups())
	assert.Equal(t, src.Meta, got.Meta)
	require.Len(t, got.Components, 1)
	assert.Equal(t, scene.ComponentID("comp-1"), got.Components[0].ID)

	require.Equal(t, 1, got.ChildCount())
	child := got.Children()[0]
	assert.Equal(t, scene.NodeID("c"), child.ID)
	assert.Equal(t, src.Children()[0].Transform, child.Transform)
	assert.Same(t, got, child.Parent(), "materialized children carry parent back-references")
}

func TestMaterialize_UnknownKind(t *testing.T) {
	_, err := Materialize("id: x\nkind: portal\n")
	assert.ErrorContains(t, err, "unknown node kind")
}

func TestMaterialize_MissingID(t *testing.T) {
	_, err := Materialize("name: x\nkind: node2d\n")
	assert.ErrorContains(t, err, "missing id")
}

func TestBuildSubtree_InstanceRejectsChildren(t *testing.T) {
	def := NodeDef{
		ID:       "i",
		Kind:     "instance",
		Children: []NodeDef{{ID: "c", Kind: "node2d"}},
	}
	_, err := BuildSubtree(def)
	assert.ErrorContains(t, err, "may not carry children")
}

func TestInstanceDefinition_Materializes(t *testing.T) {
	text, err := InstanceDefinition("inst-1", "Unit", "res://unit.def")
	require.NoError(t, err)

	n, err := Materialize(text)
	require.NoError(t, err)
	assert.Equal(t, scene.NodeID("inst-1"), n.ID)
	assert.Equal(t, scene.KindInstance, n.Kind)
	assert.Equal(t, "res://unit.def", n.Meta[MetaSource])
	assert.False(t, n.Kind.SupportsChildren())
}

func TestRewriteIDs_RegeneratesEveryID(t *testing.T) {
	src := sampleSubtree()
	text, err := Serialize(src)
	require.NoError(t, err)

	def, err := ParseDefinition(text)
	require.NoError(t, err)

	reserved := map[string]struct{}{"p": {}, "c": {}, "comp-1": {}}
	gen := ident.NewSequence("dup")
	require.NoError(t, RewriteIDs(&def, gen, reserved))

	assert.Equal(t, "dup-1", def.ID)
	assert.Equal(t, "dup-2", def.Components[0].ID)
	assert.Equal(t, "dup-3", def.Children[0].ID)
	assert.Contains(t, reserved, "dup-1", "fresh IDs join the reservation set")
	assert.Contains(t, reserved, "dup-3")

	clone, err := BuildSubtree(def)
	require.NoError(t, err)
	assert.Equal(t, src.Children()[0].Transform, clone.Children()[0].Transform,
		"rewriting touches identifiers only")
}

func TestLoadScene_SaveScene_RoundTrip(t *testing.T) {
	g := scene.New()
	g.Insert(sampleSubtree(), nil, 0)
	g.Insert(scene.NewNode("q", "Extra", scene.KindNode3D), nil, 1)

	text, err := SaveScene(g)
	require.NoError(t, err)

	loaded, err := LoadScene(text)
	require.NoError(t, err)
	require.NoError(t, loaded.Check())

	require.Len(t, loaded.Roots(), 2)
	assert.Equal(t, scene.NodeID("p"), loaded.Roots()[0].ID)
	assert.Equal(t, scene.NodeID("q"), loaded.Roots()[1].ID)
	assert.NotNil(t, loaded.Node("c"), "descendants are indexed on load")
	require.Len(t, loaded.GroupMembers("actors"), 1)
}

func TestLoadScene_DuplicateIDFails(t *testing.T) {
	text := "roots:\n  - id: a\n    kind: node2d\n  - id: a\n    kind: node2d\n"
	_, err := LoadScene(text)
	assert.ErrorContains(t, err, "inconsistent")
}

func TestWriters(t *testing.T) {
	mem := NewMemWriter()
	require.NoError(t, mem.WriteFile("res://unit.def", []byte("id: x\n")))
	data, ok := mem.File("res://unit.def")
	require.True(t, ok)
	assert.Equal(t, "id: x\n", string(data))

	fail := FailWriter{Err: assert.AnError}
	err := fail.WriteFile("res://unit.def", nil)
	assert.ErrorIs(t, err, assert.AnError)
}
