package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/stagehand/internal/journal"
)

// HistoryEntry is one journal row shaped for output.
type HistoryEntry struct {
	Seq     int64  `json:"seq"`
	Kind    string `json:"kind"`
	Op      string `json:"op"`
	Label   string `json:"label"`
	Payload string `json:"payload,omitempty"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "history <journal.db>",
		Short:         "List the history events recorded by an apply run",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runHistory(rootOpts *RootOptions, dbPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}

	if _, err := os.Stat(dbPath); err != nil {
		_ = formatter.Error(err.Error())
		return WrapExitError(ExitCommandError, "journal not found", err)
	}
	j, err := journal.Open(dbPath)
	if err != nil {
		_ = formatter.Error(err.Error())
		return WrapExitError(ExitCommandError, "open journal", err)
	}
	defer j.Close()

	recs, err := j.List(cmd.Context())
	if err != nil {
		_ = formatter.Error(err.Error())
		return WrapExitError(ExitFailure, "list history", err)
	}

	entries := make([]HistoryEntry, 0, len(recs))
	for _, rec := range recs {
		entries = append(entries, HistoryEntry{
			Seq:     rec.Seq,
			Kind:    string(rec.Kind),
			Op:      rec.Op,
			Label:   rec.Label,
			Payload: string(rec.Payload),
		})
	}

	if rootOpts.Format == "json" {
		return formatter.Success(entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no history recorded")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(cmd.OutOrStdout(), "#%d %-4s %-10s %s", e.Seq, e.Kind, e.Op, e.Label)
		if e.Payload != "" && rootOpts.Verbose {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s", e.Payload)
		}
		fmt.Fprintln(cmd.OutOrStdout())
	}
	return nil
}
