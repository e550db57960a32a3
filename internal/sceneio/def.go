// Package sceneio is the persistence collaborator for the scene core.
//
// It owns the YAML definition schema for subtrees, the serialize/materialize
// pair used by duplication and extraction, definition-level ID rewriting, and
// the file writer abstraction behind extract-to-reusable-unit.
package sceneio

import (
	"fmt"

	"github.com/roach88/stagehand/internal/scene"
)

// VecDef is the serialized form of a Vec3.
type VecDef struct {
	X float64 `yaml:"x,omitempty"`
	Y float64 `yaml:"y,omitempty"`
	Z float64 `yaml:"z,omitempty"`
}

// TransformDef is the serialized form of a TRS pose.
type TransformDef struct {
	Translation VecDef `yaml:"translation,omitempty"`
	Rotation    VecDef `yaml:"rotation,omitempty"`
	Scale       VecDef `yaml:"scale,omitempty"`
}

// ComponentDef is the serialized form of an attached component.
type ComponentDef struct {
	ID    string         `yaml:"id"`
	Kind  string         `yaml:"kind"`
	Props map[string]any `yaml:"props,omitempty"`
}

// NodeDef is the structural definition of one node and its subtree.
type NodeDef struct {
	ID         string            `yaml:"id"`
	Name       string            `yaml:"name,omitempty"`
	Kind       string            `yaml:"kind"`
	Transform  *TransformDef     `yaml:"transform,omitempty"`
	Groups     []string          `yaml:"groups,omitempty"`
	Components []ComponentDef    `yaml:"components,omitempty"`
	Meta       map[string]string `yaml:"meta,omitempty"`
	Children   []NodeDef         `yaml:"children,omitempty"`
}

// SceneDef is the on-disk form of a whole scene: its ordered root subtrees.
type SceneDef struct {
	Roots []NodeDef `yaml:"roots"`
}

var kindNames = map[scene.NodeKind]string{
	scene.KindNode2D:      "node2d",
	scene.KindNode3D:      "node3d",
	scene.KindContainer2D: "container2d",
	scene.KindContainer3D: "container3d",
	scene.KindInstance:    "instance",
}

// KindName returns the serialized name of a node kind.
func KindName(k scene.NodeKind) string { return kindNames[k] }

// ParseKind resolves a serialized kind name.
func ParseKind(s string) (scene.NodeKind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("sceneio: unknown node kind %q", s)
}

// DefFromNode serializes a subtree into its structural definition.
func DefFromNode(n *scene.Node) NodeDef {
	def := NodeDef{
		ID:     string(n.ID),
		Name:   n.Name,
		Kind:   kindNames[n.Kind],
		Groups: n.Groups(),
	}
	if n.Transform != scene.IdentityTransform() {
		def.Transform = &TransformDef{
			Translation: vecDef(n.Transform.Translation),
			Rotation:    vecDef(n.Transform.Rotation),
			Scale:       vecDef(n.Transform.Scale),
		}
	}
	for _, c := range n.Components {
		def.Components = append(def.Components, ComponentDef{
			ID:    string(c.ID),
			Kind:  c.Kind,
			Props: c.Props,
		})
	}
	if len(n.Meta) > 0 {
		def.Meta = make(map[string]string, len(n.Meta))
		for k, v := range n.Meta {
			def.Meta[k] = v
		}
	}
	for _, child := range n.Children() {
		def.Children = append(def.Children, DefFromNode(child))
	}
	return def
}

// BuildSubtree materializes a detached subtree from a definition.
// The result carries no owner; callers hand it to Graph.Insert, which indexes
// every contained node.
func BuildSubtree(def NodeDef) (*scene.Node, error) {
	if def.ID == "" {
		return nil, fmt.Errorf("sceneio: node definition missing id")
	}
	kind, err := ParseKind(def.Kind)
	if err != nil {
		return nil, err
	}
	n := scene.NewNode(scene.NodeID(def.ID), def.Name, kind)
	if def.Transform != nil {
		n.Transform = scene.Transform{
			Translation: vecFromDef(def.Transform.Translation),
			Rotation:    vecFromDef(def.Transform.Rotation),
			Scale:       vecFromDef(def.Transform.Scale),
		}
	}
	n.SetGroups(def.Groups)
	for _, cd := range def.Components {
		n.Components = append(n.Components, &scene.Component{
			ID:    scene.ComponentID(cd.ID),
			Kind:  cd.Kind,
			Props: cd.Props,
		})
	}
	for k, v := range def.Meta {
		n.SetMeta(k, v)
	}
	if len(def.Children) > 0 && !kind.SupportsChildren() {
		return nil, fmt.Errorf("sceneio: %s node %q may not carry children", def.Kind, def.ID)
	}
	for _, cd := range def.Children {
		child, err := BuildSubtree(cd)
		if err != nil {
			return nil, fmt.Errorf("child of %q: %w", def.ID, err)
		}
		n.AppendChild(child)
	}
	return n, nil
}

func vecDef(v scene.Vec3) VecDef { return VecDef{v.X, v.Y, v.Z} }
func vecFromDef(d VecDef) scene.Vec3 { return scene.Vec3{X: d.X, Y: d.Y, Z: d.Z} }
