package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/stagehand/internal/sceneio"
)

// ValidationResult holds validation output.
type ValidationResult struct {
	Valid bool   `json:"valid"`
	Nodes int    `json:"nodes,omitempty"`
	Error string `json:"error,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <scene.yaml>",
		Short: "Check a scene file's structural invariants",
		Long: `Validate parses a scene file, materializes the graph and verifies its
invariants: unique identifiers, consistent parent/child links, and
group index correctness.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runValidate(rootOpts *RootOptions, scenePath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}

	data, err := os.ReadFile(scenePath)
	if err != nil {
		_ = formatter.Error(err.Error())
		return WrapExitError(ExitCommandError, "read scene", err)
	}

	g, err := sceneio.LoadScene(string(data))
	if err != nil {
		if rootOpts.Format == "json" {
			_ = formatter.Success(ValidationResult{Valid: false, Error: err.Error()})
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "✗ %s: %v\n", scenePath, err)
		}
		return WrapExitError(ExitFailure, "scene invalid", err)
	}

	if rootOpts.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Nodes: g.Len()})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: %d node(s), all invariants hold\n", scenePath, g.Len())
	return nil
}
