package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tessaro/storefront/internal/store"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database string
	UserKey  string // optional, restrict to one user key
	Action   string // optional, restrict to one action name
}

// TraceEvent is one journal record in the trace timeline.
type TraceEvent struct {
	Seq       int64           `json:"seq"`
	UserKey   string          `json:"user_key"`
	Name      string          `json:"name"`
	Payload   json.RawMessage `json:"payload"`
	AppliedAt time.Time       `json:"applied_at"`
}

// TraceResult holds the complete trace output.
type TraceResult struct {
	Timeline []TraceEvent `json:"timeline"`
	Total    int          `json:"total"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Print the journaled action timeline",
		Long: `Print the journaled action timeline in sequence order.

Every state change went through the journal, so the timeline is a complete
causal record: what happened, for whom, in what order.

Examples:
  storefront trace --db ./store.db
  storefront trace --db ./store.db --user u1
  storefront trace --db ./store.db --action cart.add_item --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to the journal database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.UserKey, "user", "", "restrict to one user key")
	cmd.Flags().StringVar(&opts.Action, "action", "", "restrict to one action name")

	return cmd
}

func runTrace(opts *TraceOptions, cmd *cobra.Command) error {
	ctx := context.Background()
	w := cmd.OutOrStdout()

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	defer st.Close()

	var records []store.Record
	if opts.UserKey != "" {
		records, err = st.ReadUser(ctx, opts.UserKey)
	} else {
		records, err = st.ReadAll(ctx)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read journal", err)
	}

	result := TraceResult{Timeline: []TraceEvent{}}
	for _, rec := range records {
		if opts.Action != "" && rec.Name != opts.Action {
			continue
		}
		result.Timeline = append(result.Timeline, TraceEvent{
			Seq:       rec.Seq,
			UserKey:   rec.UserKey,
			Name:      rec.Name,
			Payload:   json.RawMessage(rec.Payload),
			AppliedAt: rec.AppliedAt,
		})
	}
	result.Total = len(result.Timeline)

	if opts.Format == "json" {
		return writeJSON(w, Response{Status: "ok", Data: result})
	}

	if result.Total == 0 {
		fmt.Fprintln(w, "No matching records.")
		return nil
	}

	for _, ev := range result.Timeline {
		fmt.Fprintf(w, "%6d  %-24s %-28s %s\n",
			ev.Seq, ev.UserKey, ev.Name, ev.AppliedAt.Format(time.RFC3339))
		if opts.Verbose {
			fmt.Fprintf(w, "        %s\n", ev.Payload)
		}
	}
	fmt.Fprintf(w, "%d record(s)\n", result.Total)
	return nil
}
