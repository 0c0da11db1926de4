// Package session implements the authentication session lifecycle of
// easycar: acquiring, persisting, propagating and invalidating a token.
//
//   - state.go, event.go, reducer.go: the pure session reducer
//   - controller.go: the controller bridging the reducer to the token store
//   - gate.go: the navigation gate projecting state onto a command graph
//
// State is owned by a single controller goroutine. Every mutation is an
// event applied through Reduce; subscribers observe each resulting state
// on that goroutine, in order.
package session
