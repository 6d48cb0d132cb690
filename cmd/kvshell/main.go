// Command kvshell is an interactive, line-oriented front end for the
// nested-transaction MVCC engine, with one *cobra.Command per verb.
package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jekaa-labs/nestedmvcc/engine"
	"github.com/jekaa-labs/nestedmvcc/mirror"
)

func main() {
	var mirrorPath string

	sessionID := uuid.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})).
		With("session_id", sessionID)

	root := &cobra.Command{
		Use:   "kvshell",
		Short: "Interactive shell for the nested-transaction MVCC engine",
		RunE:  func(*cobra.Command, []string) error { return nil },
	}
	root.PersistentFlags().StringVar(&mirrorPath, "mirror-path", "",
		"sqlite file backing the durable mirror (absent = purely in-memory)")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	opts := []engine.Option{engine.WithLogger(logger)}
	if mirrorPath != "" {
		m, err := mirror.OpenSQLiteMirror(mirrorPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "open mirror:", err)
			os.Exit(1)
		}
		defer m.Close()
		opts = append(opts, engine.WithMirror(m))
	}

	e, err := engine.New(opts...)
	if err != nil {
		fmt.Fprintln(os.Stderr, "start engine:", err)
		os.Exit(1)
	}
	defer e.Close()

	runREPL(e, logger)
}

// runREPL reads one command per line from stdin and dispatches it through
// a fresh command tree each iteration, so "begin"/"commit"/"rollback" act
// on the same long-lived Engine across lines — unlike a one-shot CLI
// invocation, a transaction only makes sense if state survives between
// commands.
func runREPL(e *engine.Engine, logger *slog.Logger) {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("kvshell ready. Commands: set get delete begin commit rollback snapshot flush close quit")

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return
		}

		args := strings.Fields(line)
		cmd := buildCommandTree(e, logger)
		cmd.SetArgs(args)
		if err := cmd.Execute(); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
	}
}
