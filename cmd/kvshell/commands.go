package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jekaa-labs/nestedmvcc/engine"
)

// buildCommandTree wires one *cobra.Command per engine operation: set,
// get, delete, begin, commit, rollback, snapshot, flush, in-transaction,
// and close.
func buildCommandTree(e *engine.Engine, logger *slog.Logger) *cobra.Command {
	root := &cobra.Command{Use: "kvshell"}

	var defaultValue string
	hasDefault := false

	get := &cobra.Command{
		Use:   "get <key>",
		Short: "Read a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if hasDefault {
				fmt.Println(e.GetOr(args[0], defaultValue))
				return nil
			}
			v, ok := e.Get(args[0])
			if !ok {
				fmt.Println("<absent>")
				return nil
			}
			fmt.Println(v)
			return nil
		},
	}
	get.Flags().StringVar(&defaultValue, "default", "", "value to report if the key is absent")
	get.PreRun = func(cmd *cobra.Command, args []string) {
		hasDefault = cmd.Flags().Changed("default")
	}

	set := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Write a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e.Set(args[0], args[1])
			return nil
		},
	}

	del := &cobra.Command{
		Use:     "delete <key>",
		Aliases: []string{"del"},
		Short:   "Delete a key",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e.Delete(args[0])
			return nil
		},
	}

	begin := &cobra.Command{
		Use:   "begin",
		Short: "Start a nested transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e.Begin()
			return nil
		},
	}

	commit := &cobra.Command{
		Use:   "commit",
		Short: "Commit the innermost transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := e.Commit(); err != nil {
				var conflict *engine.WriteConflictError
				if errors.As(err, &conflict) {
					return fmt.Errorf("conflict on key %q", conflict.Key)
				}
				return err
			}
			return nil
		},
	}

	rollback := &cobra.Command{
		Use:   "rollback",
		Short: "Discard the innermost transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.Rollback()
		},
	}

	snapshot := &cobra.Command{
		Use:   "snapshot",
		Short: "Print the current logical view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for k, v := range e.Snapshot() {
				fmt.Printf("%s=%s\n", k, v)
			}
			return nil
		},
	}

	flush := &cobra.Command{
		Use:   "flush",
		Short: "Persist committed state to the durable mirror",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.Flush()
		},
	}

	inTx := &cobra.Command{
		Use:   "in-transaction",
		Short: "Report whether a transaction is open",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(e.InTransaction())
			return nil
		},
	}

	closeCmd := &cobra.Command{
		Use:   "close",
		Short: "Release the durable mirror, if any",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return e.Close()
		},
	}

	root.AddCommand(get, set, del, begin, commit, rollback, snapshot, flush, inTx, closeCmd)
	return root
}
