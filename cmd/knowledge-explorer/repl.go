package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ntutangyun/ai-ran-sim/clipboard"
	"github.com/ntutangyun/ai-ran-sim/errors"
	"github.com/ntutangyun/ai-ran-sim/knowledge"
	"github.com/ntutangyun/ai-ran-sim/knowledge/routegraph"
)

// repl is the interactive command loop of the dashboard. All knowledge
// exchanges are asynchronous: a command sends a request, a later "show" or
// "answer" renders whatever state the responses have produced so far.
type repl struct {
	explorer *knowledge.Explorer
	exporter *clipboard.Exporter
	logger   *slog.Logger
	in       io.Reader
	out      io.Writer
}

func newREPL(explorer *knowledge.Explorer, exporter *clipboard.Exporter, logger *slog.Logger) *repl {
	return &repl{
		explorer: explorer,
		exporter: exporter,
		logger:   logger,
		in:       os.Stdin,
		out:      os.Stdout,
	}
}

// Run reads commands until EOF, "quit" or context cancellation. A Scan on
// an interactive stdin cannot be interrupted, so Run never waits on the
// reader goroutine: it is abandoned at return and unblocks through done if
// it was parked on a send.
func (r *repl) Run(ctx context.Context) error {
	lines := make(chan string)
	done := make(chan struct{})
	defer close(done)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		if err := scanner.Err(); err != nil {
			r.logger.Warn("input reader failed", "error", err)
		}
	}()

	fmt.Fprintln(r.out, "knowledge explorer ready, type 'help' for commands")
	r.prompt()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if quit := r.execute(ctx, line); quit {
				return nil
			}
			r.prompt()
		}
	}
}

func (r *repl) prompt() {
	fmt.Fprint(r.out, "> ")
}

// execute runs one command line, returning true when the session ends
func (r *repl) execute(ctx context.Context, line string) bool {
	command, argument, _ := strings.Cut(strings.TrimSpace(line), " ")

	switch strings.ToLower(command) {
	case "":
	case "help":
		r.printHelp()
	case "routes":
		if err := r.explorer.RequestRoutes(ctx); err != nil {
			r.reportError(err)
		} else {
			fmt.Fprintln(r.out, "route listing requested, run 'show' once it arrives")
		}
	case "show":
		r.showRoutes()
	case "query":
		if err := r.explorer.QueryKnowledge(ctx, argument); err != nil {
			r.reportError(err)
		} else {
			fmt.Fprintln(r.out, "query sent, run 'answer' once the response arrives")
		}
	case "answer":
		r.showAnswer()
	case "docs":
		fmt.Fprintln(r.out, "suggested starting queries:")
		for _, route := range knowledge.DocRoutes {
			fmt.Fprintf(r.out, "  %s\n", route)
		}
	case "graph":
		if dot, ok := r.buildDOT(); ok {
			fmt.Fprint(r.out, dot)
		}
	case "copy":
		if dot, ok := r.buildDOT(); ok {
			if err := r.exporter.Export(ctx, dot); err != nil {
				r.reportError(err)
			} else {
				fmt.Fprintln(r.out, "graph copied to clipboard")
			}
		}
	case "quit", "exit":
		return true
	default:
		fmt.Fprintf(r.out, "unknown command %q, type 'help' for commands\n", command)
	}

	return false
}

func (r *repl) showRoutes() {
	set := r.explorer.Routes()
	if set == nil {
		fmt.Fprintln(r.out, "no route listing yet, run 'routes' first")
		return
	}

	fmt.Fprintf(r.out, "%d routes known:\n", len(set.ExplainerRoutes))
	for _, route := range set.ExplainerRoutes {
		fmt.Fprintf(r.out, "  %s\n", route.Pattern)
		for _, related := range route.Related {
			fmt.Fprintf(r.out, "    -[%s]-> %s\n", related.Relationship, related.Pattern)
		}
	}
}

func (r *repl) showAnswer() {
	pending := r.explorer.Query()
	if pending.Text == "" {
		fmt.Fprintln(r.out, "no query submitted yet")
		return
	}
	if !pending.HasResponse {
		fmt.Fprintf(r.out, "no response yet for %s\n", pending.Text)
		return
	}
	fmt.Fprintf(r.out, "%s:\n%s\n", pending.Text, pending.Response)
}

// buildDOT derives the graph from the current route set and serializes it
func (r *repl) buildDOT() (string, bool) {
	graph, err := routegraph.Build(r.explorer.Routes())
	if err != nil {
		r.reportError(err)
		return "", false
	}
	return routegraph.Serialize(graph), true
}

// reportError renders an error to the operator and logs it; no error ends
// the session.
func (r *repl) reportError(err error) {
	switch {
	case errors.IsInvalid(err):
		fmt.Fprintf(r.out, "rejected: %v\n", err)
	default:
		fmt.Fprintf(r.out, "failed: %v\n", err)
	}
	r.logger.Debug("command failed", "error", err)
}

func (r *repl) printHelp() {
	fmt.Fprint(r.out, `commands:
  routes         request the route listing from the registry
  show           print the current route listing
  query <key>    query a knowledge key path (e.g. /docs/cells)
  answer         print the latest query response
  docs           print suggested documentation entry points
  graph          print the route graph as DOT text
  copy           copy the DOT text to the system clipboard
  quit           end the session
`)
}
