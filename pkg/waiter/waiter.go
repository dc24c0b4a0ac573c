// Package waiter repeats an operation call until a declared condition is met
// or attempts are exhausted.
//
// Waiter definitions come from the service's auxiliary waiter document
// (version 2 schema): each waiter names an operation, a delay in seconds
// between attempts, a maximum attempt count, and a list of acceptors. After
// every call the acceptors are evaluated in order; the first match decides
// whether the waiter succeeds, fails, or sleeps and retries. A waiter is
// bound to one operation on one client and re-invokes the client's own call
// path, exactly like a paginator.
package waiter

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/jmespath/go-jmespath"

	"github.com/thejcannon/botocore/internal/jsoncodec"
)

// Acceptor states.
const (
	StateSuccess = "success"
	StateFailure = "failure"
	StateRetry   = "retry"
)

// Acceptor matchers.
const (
	MatcherPath    = "path"
	MatcherPathAll = "pathAll"
	MatcherPathAny = "pathAny"
	MatcherStatus  = "status"
	MatcherError   = "error"
)

// Caller is the slice of the client surface a waiter needs.
type Caller interface {
	Call(ctx context.Context, operation string, params map[string]any) (map[string]any, error)
}

// StatusCoder is implemented by service errors that carry an HTTP status
// code; the "status" matcher consults it.
type StatusCoder interface {
	HTTPStatusCode() int
}

// ErrorCoder is implemented by service errors that carry a decoded error
// code; the "error" matcher consults it.
type ErrorCoder interface {
	ErrorCode() string
}

// Config is a parsed waiter document.
type Config struct {
	Version int                    `json:"version"`
	Waiters map[string]*Definition `json:"waiters"`
}

// Definition is one waiter as declared, keyed in Config.Waiters by its
// PascalCase name.
type Definition struct {
	Operation   string     `json:"operation"`
	Delay       int        `json:"delay"` // seconds between attempts
	MaxAttempts int        `json:"maxAttempts"`
	Acceptors   []Acceptor `json:"acceptors"`
}

// Acceptor is one condition evaluated against a call outcome.
type Acceptor struct {
	State    string `json:"state"`
	Matcher  string `json:"matcher"`
	Argument string `json:"argument"` // JMESPath expression for path matchers
	Expected any    `json:"expected"`
}

// ParseConfig decodes a raw waiter document. Only version 2 documents are
// understood.
func ParseConfig(raw []byte) (*Config, error) {
	var cfg Config
	if err := jsoncodec.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse waiter config: %w", err)
	}
	if cfg.Version != 2 {
		return nil, fmt.Errorf("unsupported waiter config version %d", cfg.Version)
	}
	if cfg.Waiters == nil {
		cfg.Waiters = map[string]*Definition{}
	}
	return &cfg, nil
}

// Waiter polls one operation until an acceptor resolves the wait.
type Waiter struct {
	name      string // declared waiter name
	operation string // normalized operation name, as exposed on the client
	def       *Definition
	caller    Caller

	// sleep is swappable for tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// New binds a waiter definition to an operation on a client.
func New(name string, caller Caller, operation string, def *Definition) *Waiter {
	return &Waiter{
		name:      name,
		operation: operation,
		def:       def,
		caller:    caller,
		sleep:     sleepCtx,
	}
}

// Name returns the declared waiter name.
func (w *Waiter) Name() string {
	return w.name
}

// Wait polls until an acceptor reports success, an acceptor reports failure,
// an unmatched error occurs, or MaxAttempts is exhausted. The delay between
// attempts honors ctx cancellation; no other deadline is imposed.
func (w *Waiter) Wait(ctx context.Context, params map[string]any) error {
	delay := time.Duration(w.def.Delay) * time.Second

	for attempt := 1; ; attempt++ {
		out, callErr := w.caller.Call(ctx, w.operation, params)

		state, matched := w.resolve(out, callErr)
		switch {
		case matched && state == StateSuccess:
			return nil
		case matched && state == StateFailure:
			return &Error{
				Name:         w.name,
				Reason:       "a failure acceptor matched",
				LastResponse: out,
			}
		case !matched && callErr != nil:
			// An error no acceptor accounts for is terminal.
			return fmt.Errorf("waiter %s: %w", w.name, callErr)
		}

		if attempt >= w.def.MaxAttempts {
			return &Error{
				Name:         w.name,
				Reason:       fmt.Sprintf("exceeded %d attempts", w.def.MaxAttempts),
				LastResponse: out,
			}
		}
		if err := w.sleep(ctx, delay); err != nil {
			return fmt.Errorf("waiter %s: %w", w.name, err)
		}
	}
}

// resolve evaluates the acceptors in declaration order and returns the state
// of the first match.
func (w *Waiter) resolve(out map[string]any, callErr error) (string, bool) {
	for _, a := range w.def.Acceptors {
		if a.matches(out, callErr) {
			return a.State, true
		}
	}
	return "", false
}

func (a *Acceptor) matches(out map[string]any, callErr error) bool {
	switch a.Matcher {
	case MatcherStatus:
		code := 200
		var sc StatusCoder
		if errors.As(callErr, &sc) {
			code = sc.HTTPStatusCode()
		} else if callErr != nil {
			return false
		}
		expected, ok := toInt(a.Expected)
		return ok && code == expected
	case MatcherError:
		var ec ErrorCoder
		if !errors.As(callErr, &ec) {
			return false
		}
		return ec.ErrorCode() == a.Expected
	case MatcherPath:
		if callErr != nil {
			return false
		}
		result, err := jmespath.Search(a.Argument, map[string]any(out))
		if err != nil {
			return false
		}
		return equal(result, a.Expected)
	case MatcherPathAll, MatcherPathAny:
		if callErr != nil {
			return false
		}
		result, err := jmespath.Search(a.Argument, map[string]any(out))
		if err != nil {
			return false
		}
		items, ok := result.([]any)
		if !ok || len(items) == 0 {
			return false
		}
		matched := 0
		for _, item := range items {
			if equal(item, a.Expected) {
				matched++
			}
		}
		if a.Matcher == MatcherPathAll {
			return matched == len(items)
		}
		return matched > 0
	}
	return false
}

// equal compares a JMESPath result with an expected document value,
// tolerating the int/float64 mismatch JSON decoding introduces.
func equal(got, want any) bool {
	if g, ok := toFloat(got); ok {
		if w, ok := toFloat(want); ok {
			return g == w
		}
	}
	return reflect.DeepEqual(got, want)
}

func toInt(v any) (int, bool) {
	f, ok := toFloat(v)
	return int(f), ok
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case float64:
		return t, true
	default:
		return 0, false
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Error reports a wait that ended without success.
type Error struct {
	Name         string
	Reason       string
	LastResponse map[string]any
}

func (e *Error) Error() string {
	return fmt.Sprintf("waiter %s did not succeed: %s", e.Name, e.Reason)
}
