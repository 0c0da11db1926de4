package session

import "fmt"

// State is the client's belief about whether the user is authenticated.
// An empty Token means no token.
type State struct {
	IsLoading   bool
	IsSignedOut bool
	Token       string
}

// InitialState is the state of a freshly started process.
func InitialState() State {
	return State{IsLoading: true}
}

// HasToken reports whether a token is present.
func (s State) HasToken() bool {
	return s.Token != ""
}

// Phase classifies the state.
func (s State) Phase() Phase {
	switch {
	case s.IsLoading:
		return PhaseBooting
	case s.HasToken():
		return PhaseSignedIn
	default:
		return PhaseSignedOut
	}
}

// Phase is the coarse lifecycle position of a session.
type Phase int

const (
	PhaseBooting Phase = iota
	PhaseSignedOut
	PhaseSignedIn
)

func (p Phase) String() string {
	switch p {
	case PhaseBooting:
		return "booting"
	case PhaseSignedOut:
		return "signed_out"
	case PhaseSignedIn:
		return "signed_in"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// PhaseNames lists every phase label, for metrics.
func PhaseNames() []string {
	return []string{PhaseBooting.String(), PhaseSignedOut.String(), PhaseSignedIn.String()}
}
