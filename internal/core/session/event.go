package session

// Event is a session event. The set of events is closed: only the types
// in this file implement it.
type Event interface {
	// Name is a stable snake_case label used in logs and metrics.
	Name() string
	sessionEvent()
}

// HydrateResult carries the outcome of the startup token read. An empty
// Token is a valid outcome meaning signed out.
type HydrateResult struct {
	Token string
}

// LoginSucceeded carries a token obtained from the auth service.
type LoginSucceeded struct {
	Token string
}

// LogoutRequested ends the session.
type LogoutRequested struct{}

func (HydrateResult) Name() string   { return "hydrate_result" }
func (LoginSucceeded) Name() string  { return "login_succeeded" }
func (LogoutRequested) Name() string { return "logout_requested" }

func (HydrateResult) sessionEvent()   {}
func (LoginSucceeded) sessionEvent()  {}
func (LogoutRequested) sessionEvent() {}
