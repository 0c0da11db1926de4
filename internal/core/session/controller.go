package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/yndnr/easycar-go/internal/storage"
	"github.com/yndnr/easycar-go/internal/telemetry/logger"
	"github.com/yndnr/easycar-go/internal/telemetry/metric"
)

// Controller errors.
var (
	ErrClosed         = errors.New("session: controller closed")
	ErrAlreadyStarted = errors.New("session: already started")
	ErrEmptyToken     = errors.New("session: empty token")
)

// Actions is the part of the controller handed to commands that sign the
// user in or out.
type Actions interface {
	SignIn(ctx context.Context, token string) error
	SignOut(ctx context.Context) error
}

// Controller owns the session state. A single goroutine applies events
// through Reduce and notifies subscribers; all other methods talk to it
// over a channel.
//
// Subscribers run on that goroutine and must not call back into the
// controller synchronously.
type Controller struct {
	store  storage.TokenStore
	opts   options
	logger logger.Logger

	cmds chan command
	quit chan struct{}
	done chan struct{}

	closeOnce sync.Once
	started   atomic.Bool
	closed    atomic.Bool
	snapshot  atomic.Pointer[State]
}

type command struct {
	event     Event
	subscribe *subscription
	reply     chan State
}

type subscription struct {
	fn      func(State)
	removed atomic.Bool
}

var (
	_ Actions = (*Controller)(nil)
	_ Source  = (*Controller)(nil)
)

// NewController creates a controller over store and starts its event
// loop. The state is InitialState until Start hydrates it.
func NewController(store storage.TokenStore, opts ...Option) *Controller {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	c := &Controller{
		store:  store,
		opts:   o,
		logger: o.logger.With("component", "session"),
		cmds:   make(chan command),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	initial := InitialState()
	c.snapshot.Store(&initial)

	if o.metrics != nil {
		phase := metric.NewPhaseCollector(PhaseNames(), func() string { return c.State().Phase().String() })
		if err := o.metrics.Register(phase); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				c.logger.Warn("register session metrics", "error", err)
			}
		}
	}

	go c.loop(initial)
	return c
}

func (c *Controller) loop(state State) {
	defer close(c.done)

	var (
		subs          []*subscription
		userEventSeen bool
	)

	for {
		select {
		case <-c.quit:
			return
		case cmd := <-c.cmds:
			if cmd.subscribe != nil {
				subs = append(subs, cmd.subscribe)
				cmd.subscribe.fn(state)
				cmd.reply <- state
				continue
			}

			event := cmd.event
			switch event.(type) {
			case HydrateResult:
				if c.opts.supersede && userEventSeen {
					event = HydrateResult{Token: state.Token}
				}
			default:
				userEventSeen = true
			}

			prev := state
			state = Reduce(state, event)
			next := state
			c.snapshot.Store(&next)
			c.opts.metrics.SessionTransition(event.Name())

			if prev.Phase() != state.Phase() {
				c.logger.Info("session phase changed",
					"event", event.Name(),
					"from", prev.Phase().String(),
					"to", state.Phase().String())
			} else {
				c.logger.Debug("session event applied", "event", event.Name(), "phase", state.Phase().String())
			}

			live := subs[:0]
			for _, sub := range subs {
				if sub.removed.Load() {
					continue
				}
				live = append(live, sub)
				sub.fn(state)
			}
			subs = live

			cmd.reply <- state
		}
	}
}

// dispatch hands cmd to the loop and waits for the resulting state. A
// command the loop applied is reported as applied even if Close races it.
func (c *Controller) dispatch(cmd command) (State, error) {
	cmd.reply = make(chan State, 1)

	select {
	case c.cmds <- cmd:
	case <-c.quit:
		return State{}, ErrClosed
	}

	select {
	case s := <-cmd.reply:
		return s, nil
	case <-c.quit:
	}

	// The loop replies before it looks at quit again, so once it has
	// exited an applied command has its state buffered.
	<-c.done
	select {
	case s := <-cmd.reply:
		return s, nil
	default:
		return State{}, ErrClosed
	}
}

// Start hydrates the session from the token store. A store failure is
// logged and treated as "no token". After the hydrate delay it dispatches
// HydrateResult and returns. The delay is cut short by ctx or Close, in
// which case nothing is dispatched.
func (c *Controller) Start(ctx context.Context) error {
	if c.closed.Load() {
		return ErrClosed
	}
	if !c.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	token, ok, err := c.store.Get(ctx, c.opts.tokenKey)
	switch {
	case err != nil:
		c.logger.Warn("token store read failed, starting signed out", "error", err)
		c.opts.metrics.StoreError("get")
		token = ""
	case !ok:
		c.logger.Debug("no stored token")
		token = ""
	}

	if d := c.opts.hydrateDelay; d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		case <-c.quit:
			return ErrClosed
		}
	}

	_, err = c.dispatch(command{event: HydrateResult{Token: token}})
	return err
}

// SignIn persists token and dispatches LoginSucceeded. An empty token is
// rejected without side effects. A store failure never blocks the
// transition; whether it is returned depends on the persist policy.
func (c *Controller) SignIn(ctx context.Context, token string) error {
	if token == "" {
		return ErrEmptyToken
	}
	if c.closed.Load() {
		return ErrClosed
	}

	persistErr := c.persist("set", c.store.Set(ctx, c.opts.tokenKey, token))
	if _, err := c.dispatch(command{event: LoginSucceeded{Token: token}}); err != nil {
		return err
	}
	return persistErr
}

// SignOut removes the stored token and dispatches LogoutRequested, with the
// same failure handling as SignIn.
func (c *Controller) SignOut(ctx context.Context) error {
	if c.closed.Load() {
		return ErrClosed
	}

	persistErr := c.persist("remove", c.store.Remove(ctx, c.opts.tokenKey))
	if _, err := c.dispatch(command{event: LogoutRequested{}}); err != nil {
		return err
	}
	return persistErr
}

func (c *Controller) persist(op string, err error) error {
	if err == nil {
		return nil
	}
	c.opts.metrics.StoreError(op)
	c.logger.Warn("token store write failed", "op", op, "policy", c.opts.persist.String(), "error", err)
	if c.opts.persist == PersistSurface {
		return err
	}
	return nil
}

// State returns the latest applied state.
func (c *Controller) State() State {
	return *c.snapshot.Load()
}

// Subscribe registers fn to receive every state applied from now on. fn is
// called with the current state before Subscribe returns. After Close,
// fn is never called.
func (c *Controller) Subscribe(fn func(State)) (unsubscribe func()) {
	sub := &subscription{fn: fn}
	if _, err := c.dispatch(command{subscribe: sub}); err != nil {
		return func() {}
	}
	return func() { sub.removed.Store(true) }
}

// Close stops the event loop and cancels a pending hydration. It does not
// close the token store. Later calls return ErrClosed from every method.
func (c *Controller) Close() error {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		close(c.quit)
	})
	<-c.done
	return nil
}
