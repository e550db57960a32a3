package sceneio

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/roach88/stagehand/internal/scene"
)

// MetaSource is the metadata key on instance nodes holding the path of the
// persisted definition they stand in for.
const MetaSource = "source"

// Serialize renders a subtree as definition text.
func Serialize(n *scene.Node) (string, error) {
	out, err := yaml.Marshal(DefFromNode(n))
	if err != nil {
		return "", fmt.Errorf("sceneio: serialize %q: %w", n.ID, err)
	}
	return string(out), nil
}

// ParseDefinition decodes definition text without building nodes.
// Duplication rewrites IDs at this level before materializing.
func ParseDefinition(text string) (NodeDef, error) {
	var def NodeDef
	if err := yaml.Unmarshal([]byte(text), &def); err != nil {
		return NodeDef{}, fmt.Errorf("sceneio: parse definition: %w", err)
	}
	return def, nil
}

// Materialize builds a detached subtree from definition text.
func Materialize(text string) (*scene.Node, error) {
	def, err := ParseDefinition(text)
	if err != nil {
		return nil, err
	}
	return BuildSubtree(def)
}

// InstanceDefinition renders the small definition of an instance node that
// stands in for a subtree persisted at path.
func InstanceDefinition(id scene.NodeID, name, path string) (string, error) {
	def := NodeDef{
		ID:   string(id),
		Name: name,
		Kind: kindNames[scene.KindInstance],
		Meta: map[string]string{MetaSource: path},
	}
	out, err := yaml.Marshal(def)
	if err != nil {
		return "", fmt.Errorf("sceneio: instance definition: %w", err)
	}
	return string(out), nil
}

// LoadScene builds a graph from serialized scene text.
func LoadScene(text string) (*scene.Graph, error) {
	var def SceneDef
	if err := yaml.Unmarshal([]byte(text), &def); err != nil {
		return nil, fmt.Errorf("sceneio: parse scene: %w", err)
	}
	g := scene.New()
	for i, rd := range def.Roots {
		root, err := BuildSubtree(rd)
		if err != nil {
			return nil, fmt.Errorf("sceneio: root %d: %w", i, err)
		}
		g.Insert(root, nil, i)
	}
	if err := g.Check(); err != nil {
		return nil, fmt.Errorf("sceneio: loaded scene is inconsistent: %w", err)
	}
	return g, nil
}

// SaveScene renders a graph's root forest as scene text.
func SaveScene(g *scene.Graph) (string, error) {
	var def SceneDef
	for _, root := range g.Roots() {
		def.Roots = append(def.Roots, DefFromNode(root))
	}
	out, err := yaml.Marshal(def)
	if err != nil {
		return "", fmt.Errorf("sceneio: save scene: %w", err)
	}
	return string(out), nil
}
