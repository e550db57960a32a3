package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/stagehand/internal/engine"
	"github.com/roach88/stagehand/internal/harness"
	"github.com/roach88/stagehand/internal/ident"
	"github.com/roach88/stagehand/internal/journal"
	"github.com/roach88/stagehand/internal/ops"
	"github.com/roach88/stagehand/internal/sceneio"
	"github.com/roach88/stagehand/internal/uistate"
)

// Script is an ordered list of edit steps applied to a scene.
type Script struct {
	Steps []harness.Step `yaml:"steps"`
}

// ApplyResult summarizes an apply run for JSON output.
type ApplyResult struct {
	Applied int    `json:"applied"`
	NoOps   int    `json:"noops"`
	Undone  int    `json:"undone"`
	Out     string `json:"out,omitempty"`
}

type applyOptions struct {
	out         string
	journalPath string
	undo        int
	seqIDs      bool
}

// NewApplyCommand creates the apply command.
func NewApplyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &applyOptions{}
	cmd := &cobra.Command{
		Use:   "apply <scene.yaml> <script.yaml>",
		Short: "Apply an edit script to a scene file",
		Long: `Apply runs an edit script against a scene through the operation engine.

Each step is one operation (create, remove, reparent, duplicate, group,
extract) or an undo/redo. Rejected operations are counted as no-ops; a
failing step aborts the run with the scene file unwritten.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(rootOpts, opts, args[0], args[1], cmd)
		},
	}
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "write the mutated scene here (default: stdout)")
	cmd.Flags().StringVar(&opts.journalPath, "journal", "", "record history events to this sqlite database")
	cmd.Flags().IntVar(&opts.undo, "undo", 0, "undo the last N mutations after the script runs")
	cmd.Flags().BoolVar(&opts.seqIDs, "seq-ids", false, "use sequential generated IDs (for reproducible output)")
	return cmd
}

func runApply(rootOpts *RootOptions, opts *applyOptions, scenePath, scriptPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}

	g, err := loadSceneFile(scenePath)
	if err != nil {
		_ = formatter.Error(err.Error())
		return WrapExitError(ExitCommandError, "load scene", err)
	}

	scriptData, err := os.ReadFile(scriptPath)
	if err != nil {
		_ = formatter.Error(err.Error())
		return WrapExitError(ExitCommandError, "read script", err)
	}
	var script Script
	if err := yaml.Unmarshal(scriptData, &script); err != nil {
		_ = formatter.Error(err.Error())
		return WrapExitError(ExitCommandError, "parse script", err)
	}

	var ids ident.Generator = ident.TimeRandom{}
	if opts.seqIDs {
		ids = ident.NewSequence("gen")
	}
	env := &ops.Env{
		Graph: g,
		IDs:   ids,
		Files: sceneio.OSWriter{},
		UI:    uistate.NewMemory(),
	}

	engineOpts := []engine.Option{engine.WithLogger(commandLogger(rootOpts, cmd))}
	if opts.journalPath != "" {
		j, err := journal.Open(opts.journalPath)
		if err != nil {
			_ = formatter.Error(err.Error())
			return WrapExitError(ExitCommandError, "open journal", err)
		}
		defer j.Close()
		engineOpts = append(engineOpts, engine.WithJournal(j))
	}
	e := engine.New(env, engineOpts...)

	ctx := cmd.Context()
	result := ApplyResult{Out: opts.out}
	for i, step := range script.Steps {
		mutated, err := runScriptStep(ctx, e, step)
		if err != nil {
			msg := fmt.Sprintf("step %d (%s): %v", i, step.Op, err)
			_ = formatter.Error(msg)
			return NewExitError(ExitFailure, msg)
		}
		if mutated {
			result.Applied++
		} else {
			result.NoOps++
			formatter.VerboseLog("step %d (%s) was a no-op", i, step.Op)
		}
	}

	for n := 0; n < opts.undo; n++ {
		done, err := e.Undo(ctx)
		if err != nil {
			_ = formatter.Error(err.Error())
			return WrapExitError(ExitFailure, "undo", err)
		}
		if !done {
			break
		}
		result.Undone++
	}

	text, err := sceneio.SaveScene(g)
	if err != nil {
		_ = formatter.Error(err.Error())
		return WrapExitError(ExitFailure, "save scene", err)
	}
	if opts.out != "" {
		if err := os.WriteFile(opts.out, []byte(text), 0o644); err != nil {
			_ = formatter.Error(err.Error())
			return WrapExitError(ExitCommandError, "write scene", err)
		}
	} else if rootOpts.Format != "json" {
		fmt.Fprint(cmd.OutOrStdout(), text)
	}

	if rootOpts.Format == "json" {
		return formatter.Success(result)
	}
	formatter.VerboseLog("applied %d, no-ops %d, undone %d", result.Applied, result.NoOps, result.Undone)
	return nil
}

// runScriptStep executes one script step. Undo and redo are engine calls;
// everything else maps to an operation payload.
func runScriptStep(ctx context.Context, e *engine.Engine, step harness.Step) (bool, error) {
	switch step.Op {
	case "undo":
		return e.Undo(ctx)
	case "redo":
		return e.Redo(ctx)
	default:
		op, err := harness.BuildOperation(step)
		if err != nil {
			return false, err
		}
		return e.InvokeAndPush(ctx, op)
	}
}

// commandLogger builds the engine's logger: quiet unless verbose, and always
// on stderr so structured log lines never mix into command output.
func commandLogger(rootOpts *RootOptions, cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if rootOpts.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}
