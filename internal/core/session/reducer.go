package session

import "fmt"

// Reduce returns the state that follows s after e. It has no side effects.
// An event type outside this package's set is a programming error and
// panics.
func Reduce(s State, e Event) State {
	switch e := e.(type) {
	case HydrateResult:
		s.Token = e.Token
		s.IsLoading = false
	case LoginSucceeded:
		s.IsSignedOut = false
		s.Token = e.Token
	case LogoutRequested:
		s.IsSignedOut = true
		s.Token = ""
	default:
		panic(fmt.Sprintf("session: unknown event %T", e))
	}
	return s
}
