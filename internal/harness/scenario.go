// Package harness runs YAML-defined scenarios against the full stack:
// scene graph, operations and engine. Scenarios pair operation steps with
// assertions and optional golden snapshots of the resulting tree.
package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/stagehand/internal/sceneio"
)

// Scenario is one conformance scenario.
type Scenario struct {
	// Name uniquely identifies the scenario; also the golden file name.
	Name string `yaml:"name"`

	// Description explains what the scenario validates.
	Description string `yaml:"description,omitempty"`

	// Scene is the initial scene definition.
	Scene sceneio.SceneDef `yaml:"scene"`

	// Steps are executed in order through the engine.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final graph, selection and written files.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step is one engine call: an operation by name, or undo/redo.
type Step struct {
	// Op is one of create, remove, reparent, duplicate, group, extract,
	// undo, redo.
	Op string `yaml:"op"`

	Node    string   `yaml:"node,omitempty"`
	Nodes   []string `yaml:"nodes,omitempty"`
	Parent  string   `yaml:"parent,omitempty"`
	Index   int      `yaml:"index,omitempty"`
	Kind    string   `yaml:"kind,omitempty"`
	Name    string   `yaml:"name,omitempty"`
	Path    string   `yaml:"path,omitempty"`
	Primary string   `yaml:"primary,omitempty"`
}

// Assertion validates one aspect of the final state.
type Assertion struct {
	// Type is one of root_order, node_parent, node_absent, group_members,
	// selection, file_exists, no_mutation.
	Type string `yaml:"type"`

	Node    string   `yaml:"node,omitempty"`
	Parent  string   `yaml:"parent,omitempty"`
	Index   *int     `yaml:"index,omitempty"`
	IDs     []string `yaml:"ids,omitempty"`
	Group   string   `yaml:"group,omitempty"`
	Primary string   `yaml:"primary,omitempty"`
	Path    string   `yaml:"path,omitempty"`
}

// LoadScenario reads and decodes a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("harness: read scenario: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("harness: parse scenario %s: %w", path, err)
	}
	if s.Name == "" {
		return nil, fmt.Errorf("harness: scenario %s has no name", path)
	}
	return &s, nil
}
