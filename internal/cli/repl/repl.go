package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/yndnr/easycar-go/internal/core/session"
)

// Executor runs one shell command line split into arguments.
type Executor func(ctx context.Context, args []string) error

// REPL represents the Read-Eval-Print Loop.
type REPL struct {
	input     *bufio.Reader
	output    io.Writer
	completer *Completer
	history   *History
	graph     func() session.Graph
	exec      Executor
}

// New creates a shell reading from in and writing to out. graph reports
// the navigation graph currently mounted.
func New(in io.Reader, out io.Writer, history *History, graph func() session.Graph, exec Executor) *REPL {
	if history == nil {
		history = NewHistory("")
	}
	return &REPL{
		input:     bufio.NewReader(in),
		output:    out,
		completer: NewCompleter(),
		history:   history,
		graph:     graph,
		exec:      exec,
	}
}

// Input returns the reader the shell consumes. Commands that prompt must
// read from it so buffered input is not lost.
func (r *REPL) Input() io.Reader {
	return r.input
}

// Prompt returns the prompt for the current graph.
func (r *REPL) Prompt() string {
	switch g := r.graph(); g {
	case session.GraphMain:
		return "easycar> "
	default:
		return fmt.Sprintf("easycar (%s)> ", g)
	}
}

// Run reads and executes lines until exit, end of input or ctx is done.
// Command errors are printed and the loop continues.
func (r *REPL) Run(ctx context.Context) error {
	if err := r.history.Load(); err != nil {
		fmt.Fprintf(r.output, "Warning: history not loaded: %v\n", err)
	}
	defer r.history.Save()

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		fmt.Fprint(r.output, r.Prompt())

		line, err := r.input.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		eof := errors.Is(err, io.EOF)

		line = strings.TrimSpace(line)
		if line == "" {
			if eof {
				fmt.Fprintln(r.output)
				return nil
			}
			continue
		}

		r.history.Add(line)

		args := strings.Fields(line)
		switch args[0] {
		case "exit", "quit":
			return nil
		case "help", "?":
			r.help(strings.Join(args[1:], " "))
		default:
			if err := r.exec(ctx, args); err != nil {
				fmt.Fprintf(r.output, "Error: %v\n", err)
			}
		}

		if eof {
			return nil
		}
	}
}

func (r *REPL) help(prefix string) {
	cmds := r.completer.Complete(r.graph(), prefix)
	if len(cmds) == 0 {
		fmt.Fprintf(r.output, "No commands match %q here.\n", prefix)
		return
	}
	fmt.Fprintln(r.output, "Available commands:")
	for _, cmd := range cmds {
		fmt.Fprintf(r.output, "  %s\n", cmd)
	}
}
