package harness

import (
	"context"
	"fmt"

	"github.com/roach88/stagehand/internal/engine"
	"github.com/roach88/stagehand/internal/ident"
	"github.com/roach88/stagehand/internal/ops"
	"github.com/roach88/stagehand/internal/scene"
	"github.com/roach88/stagehand/internal/sceneio"
	"github.com/roach88/stagehand/internal/uistate"
)

// Result is the full state after a scenario run.
type Result struct {
	Graph  *scene.Graph
	Engine *engine.Engine
	Files  *sceneio.MemWriter
	UI     *uistate.Memory

	// LastMutated reports whether the final step mutated anything: false for
	// a rejected operation, or an undo/redo against an empty stack.
	LastMutated bool
}

// Run builds the scenario's scene, executes every step through a fresh
// engine, and returns the resulting state. IDs come from a sequence
// generator, so generated identifiers are stable across runs.
func Run(ctx context.Context, s *Scenario) (*Result, error) {
	g := scene.New()
	for i, rd := range s.Scene.Roots {
		root, err := sceneio.BuildSubtree(rd)
		if err != nil {
			return nil, fmt.Errorf("harness: scenario %s: root %d: %w", s.Name, i, err)
		}
		g.Insert(root, nil, i)
	}
	if err := g.Check(); err != nil {
		return nil, fmt.Errorf("harness: scenario %s: initial scene: %w", s.Name, err)
	}

	res := &Result{
		Graph: g,
		Files: sceneio.NewMemWriter(),
		UI:    uistate.NewMemory(),
	}
	res.Engine = engine.New(&ops.Env{
		Graph: g,
		IDs:   ident.NewSequence("gen"),
		Files: res.Files,
		UI:    res.UI,
	})

	for i, step := range s.Steps {
		mutated, err := runStep(ctx, res.Engine, step)
		if err != nil {
			return nil, fmt.Errorf("harness: scenario %s: step %d (%s): %w", s.Name, i, step.Op, err)
		}
		res.LastMutated = mutated
	}

	if err := g.Check(); err != nil {
		return nil, fmt.Errorf("harness: scenario %s: final graph: %w", s.Name, err)
	}
	return res, nil
}

func runStep(ctx context.Context, e *engine.Engine, step Step) (bool, error) {
	switch step.Op {
	case "undo":
		return e.Undo(ctx)
	case "redo":
		return e.Redo(ctx)
	default:
		op, err := BuildOperation(step)
		if err != nil {
			return false, err
		}
		return e.InvokeAndPush(ctx, op)
	}
}

// BuildOperation maps a step to its operation payload. Shared with the CLI
// script runner; undo and redo are engine calls, not operations, and are
// handled by the caller.
func BuildOperation(step Step) (ops.Operation, error) {
	switch step.Op {
	case "create":
		kind, err := sceneio.ParseKind(step.Kind)
		if err != nil {
			return nil, err
		}
		return ops.Create{
			ParentID: scene.NodeID(step.Parent),
			Index:    step.Index,
			Kind:     kind,
			NodeName: step.Name,
		}, nil
	case "remove":
		return ops.Remove{NodeIDs: nodeIDs(step.Nodes)}, nil
	case "reparent":
		return ops.Reparent{
			NodeID:      scene.NodeID(step.Node),
			NewParentID: scene.NodeID(step.Parent),
			Index:       step.Index,
		}, nil
	case "duplicate":
		return ops.Duplicate{
			NodeIDs: nodeIDs(step.Nodes),
			Primary: scene.NodeID(step.Primary),
		}, nil
	case "group":
		return ops.Group{NodeIDs: nodeIDs(step.Nodes), ContainerName: step.Name}, nil
	case "extract":
		return ops.Extract{NodeID: scene.NodeID(step.Node), Path: step.Path}, nil
	default:
		return nil, fmt.Errorf("unknown op %q", step.Op)
	}
}

func nodeIDs(ids []string) []scene.NodeID {
	out := make([]scene.NodeID, 0, len(ids))
	for _, id := range ids {
		out = append(out, scene.NodeID(id))
	}
	return out
}
