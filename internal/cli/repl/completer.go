package repl

import (
	"strings"

	"github.com/yndnr/easycar-go/internal/core/session"
)

var common = []string{"status", "config show", "config path", "help", "exit", "quit"}

// Completer lists the commands reachable from each navigation graph.
type Completer struct {
	commands map[session.Graph][]string
}

// NewCompleter creates a new Completer.
func NewCompleter() *Completer {
	return &Completer{
		commands: map[session.Graph][]string{
			session.GraphSplash: {"help", "exit", "quit"},
			session.GraphLogin:  append([]string{"login"}, common...),
			session.GraphMain: append([]string{
				"vehicle list", "vehicle add", "vehicle delete",
				"logout",
			}, common...),
		},
	}
}

// Commands returns every command available in graph.
func (c *Completer) Commands(graph session.Graph) []string {
	return c.commands[graph]
}

// Complete returns the commands in graph starting with prefix.
func (c *Completer) Complete(graph session.Graph, prefix string) []string {
	var suggestions []string
	for _, cmd := range c.commands[graph] {
		if strings.HasPrefix(cmd, prefix) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}
