package session

import (
	"fmt"
	"sync"
)

// Graph identifies the set of screens (commands, in the CLI) that is
// mounted for a session state.
type Graph int

const (
	// GraphSplash is shown while the session is hydrating.
	GraphSplash Graph = iota
	// GraphLogin is the unauthenticated graph.
	GraphLogin
	// GraphMain is the authenticated graph.
	GraphMain
)

func (g Graph) String() string {
	switch g {
	case GraphSplash:
		return "splash"
	case GraphLogin:
		return "login"
	case GraphMain:
		return "main"
	default:
		return fmt.Sprintf("Graph(%d)", int(g))
	}
}

// Project selects the graph for s. Only IsLoading and Token matter.
func Project(s State) Graph {
	switch {
	case s.IsLoading:
		return GraphSplash
	case s.HasToken():
		return GraphMain
	default:
		return GraphLogin
	}
}

// Mounter swaps the active graph.
type Mounter interface {
	Mount(g Graph)
}

// MounterFunc adapts a function to Mounter.
type MounterFunc func(Graph)

// Mount calls f(g).
func (f MounterFunc) Mount(g Graph) { f(g) }

// Source publishes session states. *Controller implements it.
type Source interface {
	Subscribe(fn func(State)) (unsubscribe func())
}

// Gate mounts the graph projected from each observed state, calling the
// Mounter only when the graph changes.
type Gate struct {
	mounter Mounter

	mu      sync.Mutex
	current Graph
	mounted bool
}

// NewGate creates a gate that mounts graphs on m.
func NewGate(m Mounter) *Gate {
	return &Gate{mounter: m}
}

// Observe re-projects s and mounts the result if it differs from the
// mounted graph.
func (g *Gate) Observe(s State) {
	next := Project(s)

	g.mu.Lock()
	if g.mounted && g.current == next {
		g.mu.Unlock()
		return
	}
	g.current = next
	g.mounted = true
	g.mu.Unlock()

	if g.mounter != nil {
		g.mounter.Mount(next)
	}
}

// Attach subscribes the gate to src. The current state is observed before
// Attach returns.
func (g *Gate) Attach(src Source) (detach func()) {
	return src.Subscribe(g.Observe)
}

// Current returns the mounted graph; GraphSplash before the first state.
func (g *Gate) Current() Graph {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current
}
