// Package hooks implements a synchronous publish/subscribe registry keyed by
// hierarchical dotted event names.
//
// A handler registered under "before-call" observes every event whose name
// starts with that prefix, e.g. "before-call.myservice.TestOperation".
// Handlers registered under a more specific name run first. Emission is
// synchronous and ordered: all handlers run on the caller's goroutine before
// Emit returns, and the first handler error aborts the remaining handlers and
// propagates to the emitting call site. Handlers are observers; their non-error
// results are ignored.
//
// An emitter is always an explicitly passed collaborator. There is no
// process-wide default, so multiple clients with independent event scopes can
// coexist in one process.
package hooks

import "sync"

// Event is the context delivered to handlers on each emission.
type Event struct {
	// Name is the full dotted event name that was emitted.
	Name string
	// Service is the logical service identity of the emitting client.
	Service string
	// Operation is the model-declared operation name.
	Operation string
	// InvocationID identifies one client call; before-call and after-call
	// events of the same call share it.
	InvocationID string
	// Params are the caller-supplied call parameters.
	Params map[string]any
	// Response carries the decoded response body on after-call events.
	Response map[string]any
}

// Handler observes an event. A non-nil error aborts the emitting call.
type Handler func(Event) error

// Emitter is the publish/subscribe contract consumed by the client runtime.
type Emitter interface {
	Register(name string, h Handler)
	Emit(ev Event) error
}

// HierarchicalEmitter is the default Emitter. Safe for concurrent use.
type HierarchicalEmitter struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

// NewHierarchicalEmitter returns an empty emitter.
func NewHierarchicalEmitter() *HierarchicalEmitter {
	return &HierarchicalEmitter{handlers: make(map[string][]Handler)}
}

// Register subscribes h to the given event name. The name may be any dotted
// prefix of the emitted names ("before-call", "before-call.myservice", ...).
// Handlers registered under the same name run in registration order.
func (e *HierarchicalEmitter) Register(name string, h Handler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers[name] = append(e.handlers[name], h)
}

// Emit delivers ev to every handler registered under ev.Name or any of its
// dotted prefixes, most specific first. It returns the first handler error.
func (e *HierarchicalEmitter) Emit(ev Event) error {
	e.mu.RLock()
	var matched []Handler
	for _, prefix := range dottedPrefixes(ev.Name) {
		matched = append(matched, e.handlers[prefix]...)
	}
	e.mu.RUnlock()

	for _, h := range matched {
		if err := h(ev); err != nil {
			return err
		}
	}
	return nil
}

// dottedPrefixes expands "a.b.c" into ["a.b.c", "a.b", "a"].
func dottedPrefixes(name string) []string {
	prefixes := []string{name}
	for i := len(name) - 1; i > 0; i-- {
		if name[i] == '.' {
			prefixes = append(prefixes, name[:i])
		}
	}
	return prefixes
}
