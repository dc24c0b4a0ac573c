// Package client synthesizes fully-functional typed service clients from
// declarative service models at runtime. It is the orchestrator of the
// module: given a logical service name and a region, the Creator resolves the
// service's model, builds a transport endpoint, and returns a Client exposing
// one callable operation per model-declared action, with parameter
// validation, event instrumentation, error classification, and lazily
// attached pagination and waiting capabilities. No per-operation code is ever
// written by hand.
//
// # Creating Clients
//
// A Creator is wired from three collaborators: a model loader, an endpoint
// creator, and an event emitter.
//
//	creator := client.NewCreator(
//		loader.NewFileLoader("/path/to/data"),
//		transport.NewHTTPCreator(),
//		hooks.NewHierarchicalEmitter(),
//	)
//
//	svc, err := creator.CreateClient("myservice", "us-west-2", nil)
//
// The client's operation surface is entirely determined by the model.
// Operations are exposed under the deterministic snake_case form of their
// model-declared names ("TestOperation" becomes "test_operation") and are
// invoked through the single dispatch entry point:
//
//	out, err := svc.Call(ctx, "test_operation", map[string]any{"Foo": "one"})
//
// # The Invocation Pipeline
//
// Every call runs the same pipeline:
//
//  1. Parameters are validated against the operation's input shape. A
//     validation failure surfaces as *validate.ParamValidationError before
//     any I/O happens.
//  2. A before-call event is published on the emitter under
//     "before-call.<service>.<OperationName>"; handlers registered on any
//     dotted prefix observe it. Publication is synchronous and strictly
//     ordered before transport dispatch; a handler error aborts the call.
//  3. The endpoint performs the round trip.
//  4. The response is classified: a status code of 300 or above, or a body
//     carrying an Error entry, raises *ClientError with the decoded code and
//     message. Anything else publishes an after-call event and returns the
//     decoded body.
//
// # Capabilities
//
// Pagination and waiter configuration are auxiliary per-service documents,
// loaded lazily on first use and cached for the client's lifetime, including
// the "document absent" outcome, which is a normal condition meaning the
// capability is simply not available. Lookups are keyed by the client's
// logical service name, never by the model's endpointPrefix; the two differ
// whenever several logical services share one wire prefix.
//
//	if ok, _ := svc.CanPaginate("test_operation"); ok {
//		p, _ := svc.GetPaginator("test_operation")
//		it := p.Paginate(ctx, nil)
//		...
//	}
//
// # Error Taxonomy
//
// Callers distinguish outcomes by error kind, never by string matching:
// *loader.UnknownServiceError (creation), *validate.ParamValidationError
// (bad input, no I/O performed), *ClientError (service rejected the call),
// *OperationNotPageableError and *UnknownWaiterError (capability requested
// that the operation or service does not have). The core never retries and
// never recovers silently.
//
// # Concurrency
//
// A Client is safe for concurrent use. The model and endpoint binding are
// immutable after creation; only the auxiliary config caches are mutated, and
// those are serialized behind a mutex.
package client
