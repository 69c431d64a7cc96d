package cli

import (
	"context"
	"fmt"
	"reflect"

	"github.com/spf13/cobra"

	"github.com/tessaro/storefront/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
}

// ReplayResult holds the replay verification output.
type ReplayResult struct {
	Records       int          `json:"records"`
	Deterministic bool         `json:"deterministic"`
	State         StateSummary `json:"state"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay the journal and verify determinism",
		Long: `Replay the action journal and verify the rebuild is deterministic.

The journal is folded through the reducer twice. Both passes must produce
the same state tree; a divergence means a record decodes differently on
each pass and the journal cannot be trusted.

Exit codes:
  0 - Replay is deterministic
  1 - The two replay passes diverged
  2 - Command error (journal not found, corrupt record)

Examples:
  storefront replay --db ./store.db
  storefront replay --db ./store.db --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to the journal database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	ctx := context.Background()
	w := cmd.OutOrStdout()

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	defer st.Close()

	records, err := st.ReadAll(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read journal", err)
	}

	first, err := st.Replay(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "first replay pass failed", err)
	}
	second, err := st.Replay(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "second replay pass failed", err)
	}

	result := ReplayResult{
		Records:       len(records),
		Deterministic: reflect.DeepEqual(first, second),
		State:         summarize(first),
	}

	if opts.Format == "json" {
		resp := Response{Status: "ok", Data: result}
		if !result.Deterministic {
			resp.Status = "error"
			resp.Error = &ResponseError{Code: ErrCodeReplay, Message: "replay verification failed"}
		}
		if err := writeJSON(w, resp); err != nil {
			return err
		}
		if !result.Deterministic {
			return NewExitError(ExitFailure, "replay verification failed")
		}
		return nil
	}

	fmt.Fprintf(w, "Replayed %d record(s)\n", result.Records)
	printSummary(w, result.State)
	if !result.Deterministic {
		fmt.Fprintln(w, "✗ Replay verification failed: passes diverged")
		return NewExitError(ExitFailure, "replay verification failed")
	}
	fmt.Fprintln(w, "✓ Replay verified deterministic")
	return nil
}
