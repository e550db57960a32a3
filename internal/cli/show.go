package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/stagehand/internal/scene"
	"github.com/roach88/stagehand/internal/sceneio"
)

// ShowResult holds the scene summary for JSON output.
type ShowResult struct {
	Nodes  int                 `json:"nodes"`
	Tree   string              `json:"tree"`
	Groups map[string][]string `json:"groups,omitempty"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "show <scene.yaml>",
		Short:         "Print a scene's tree and group membership",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runShow(rootOpts *RootOptions, scenePath string, cmd *cobra.Command) error {
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

	result := ShowResult{
		Nodes:  g.Len(),
		Tree:   renderTree(g),
		Groups: groupListing(g),
	}
	if rootOpts.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprint(cmd.OutOrStdout(), result.Tree)
	if len(result.Groups) > 0 {
		tags := make([]string, 0, len(result.Groups))
		for tag := range result.Groups {
			tags = append(tags, tag)
		}
		sortDisplay(tags)
		fmt.Fprintln(cmd.OutOrStdout(), "groups:")
		for _, tag := range tags {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s: %s\n", tag, strings.Join(result.Groups[tag], ", "))
		}
	}
	return nil
}

// renderTree prints the root forest in document order, one node per line.
func renderTree(g *scene.Graph) string {
	var b strings.Builder
	var walk func(n *scene.Node, depth int)
	walk = func(n *scene.Node, depth int) {
		b.WriteString(strings.Repeat("  ", depth))
		fmt.Fprintf(&b, "%s (%s, id=%s)", n.Name, sceneio.KindName(n.Kind), n.ID)
		if src := n.Meta[sceneio.MetaSource]; src != "" {
			fmt.Fprintf(&b, " <- %s", src)
		}
		b.WriteByte('\n')
		for _, child := range n.Children() {
			walk(child, depth+1)
		}
	}
	for _, root := range g.Roots() {
		walk(root, 0)
	}
	return b.String()
}

// groupListing maps each tag to its member display names, collation-sorted.
func groupListing(g *scene.Graph) map[string][]string {
	tags := g.GroupTags()
	if len(tags) == 0 {
		return nil
	}
	out := make(map[string][]string, len(tags))
	for _, tag := range tags {
		names := make([]string, 0)
		for _, n := range g.GroupMembers(tag) {
			names = append(names, n.Name)
		}
		sortDisplay(names)
		out[tag] = names
	}
	return out
}
