package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tessaro/storefront/internal/action"
	"github.com/tessaro/storefront/internal/dispatch"
	"github.com/tessaro/storefront/internal/store"
)

// InvokeOptions holds flags for the invoke command.
type InvokeOptions struct {
	*RootOptions
	Database string
	Payload  string
}

// NewInvokeCommand creates the invoke command.
func NewInvokeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InvokeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "invoke <action>",
		Short: "Dispatch one action against the journal",
		Long: `Dispatch a single action against the journaled state machine.

The journal is replayed to rebuild current state, the action is applied,
and the resulting record is appended. Actions are named by their type tag.

Examples:
  storefront invoke session.sign_in --db ./store.db --payload '{"user_id":"u1"}'
  storefront invoke cart.add_item --db ./store.db --payload '{"product":{"id":"p1","name":"Hammer","price":1299,"category":"tools","in_stock":true}}'
  storefront invoke cart.clear --db ./store.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInvoke(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to the journal database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Payload, "payload", "{}", "action payload as JSON")

	return cmd
}

func runInvoke(opts *InvokeOptions, name string, cmd *cobra.Command) error {
	ctx := context.Background()
	w := cmd.OutOrStdout()

	a, err := decodeAction(name, opts.Payload)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid action", err)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open journal", err)
	}
	defer st.Close()

	d, err := dispatch.Resume(ctx, st, dispatch.UUIDv7Generator{})
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to replay journal", err)
	}

	next, err := d.Dispatch(ctx, a)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("dispatch %s", name), err)
	}

	summary := summarize(next)
	if opts.Format == "json" {
		return writeJSON(w, Response{Status: "ok", Data: summary})
	}

	fmt.Fprintf(w, "Dispatched %s\n", name)
	printSummary(w, summary)
	return nil
}

// decodeAction builds the type-tagged envelope the codec expects and
// decodes it, so unknown names and malformed payloads fail here rather
// than deep inside dispatch.
func decodeAction(name, payload string) (action.Action, error) {
	if !json.Valid([]byte(payload)) {
		return nil, fmt.Errorf("payload is not valid JSON")
	}
	env, err := json.Marshal(map[string]json.RawMessage{
		"type":    json.RawMessage(fmt.Sprintf("%q", name)),
		"payload": json.RawMessage(payload),
	})
	if err != nil {
		return nil, err
	}
	return action.Unmarshal(env)
}
