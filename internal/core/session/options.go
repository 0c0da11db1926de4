package session

import (
	"fmt"
	"time"

	"github.com/yndnr/easycar-go/internal/storage"
	"github.com/yndnr/easycar-go/internal/telemetry/logger"
	"github.com/yndnr/easycar-go/internal/telemetry/metric"
)

// DefaultHydrateDelay holds back the first state so a fast store read
// does not flash the login graph.
const DefaultHydrateDelay = time.Second

// PersistPolicy decides what SignIn and SignOut do when the token store
// fails.
type PersistPolicy int

const (
	// PersistSwallow logs the failure and reports success. The in-memory
	// transition is applied either way.
	PersistSwallow PersistPolicy = iota
	// PersistSurface applies the transition and returns the storage error.
	PersistSurface
)

func (p PersistPolicy) String() string {
	switch p {
	case PersistSwallow:
		return "swallow"
	case PersistSurface:
		return "surface"
	default:
		return fmt.Sprintf("PersistPolicy(%d)", int(p))
	}
}

// ParsePersistPolicy parses "swallow" or "surface". Empty means swallow.
func ParsePersistPolicy(s string) (PersistPolicy, error) {
	switch s {
	case "", "swallow":
		return PersistSwallow, nil
	case "surface":
		return PersistSurface, nil
	default:
		return PersistSwallow, fmt.Errorf("unknown persist policy %q (want swallow or surface)", s)
	}
}

type options struct {
	logger       logger.Logger
	metrics      *metric.Registry
	hydrateDelay time.Duration
	tokenKey     string
	persist      PersistPolicy
	supersede    bool
}

func defaultOptions() options {
	return options{
		logger:       logger.Default(),
		hydrateDelay: DefaultHydrateDelay,
		tokenKey:     storage.DefaultTokenKey,
	}
}

// Option configures a Controller.
type Option func(*options)

// WithLogger sets the controller logger.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics counts transitions and store failures on r and registers
// the session phase collector.
func WithMetrics(r *metric.Registry) Option {
	return func(o *options) { o.metrics = r }
}

// WithHydrateDelay sets the pause between the startup store read and the
// hydration dispatch. Zero dispatches immediately.
func WithHydrateDelay(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.hydrateDelay = d
		}
	}
}

// WithTokenKey overrides the store key holding the token.
func WithTokenKey(key string) Option {
	return func(o *options) {
		if key != "" {
			o.tokenKey = key
		}
	}
}

// WithPersistPolicy sets how store failures in SignIn and SignOut are
// reported.
func WithPersistPolicy(p PersistPolicy) Option {
	return func(o *options) { o.persist = p }
}

// WithSupersedeHydration makes a sign-in or sign-out applied before the
// hydration dispatch win over the stored token. Hydration then only ends
// loading. Without it the later dispatch wins.
func WithSupersedeHydration(on bool) Option {
	return func(o *options) { o.supersede = on }
}
