// Package transport defines the request/response boundary of the client
// runtime and provides a default HTTP implementation.
//
// The core hands an Endpoint one operation descriptor and one parameter
// mapping per call and gets back a status code and a decoded body. Everything
// protocol-specific (serialization rules, request signing, retries) lives
// behind this boundary. The default HTTP endpoint uses a plain JSON body
// encoding and a no-op signer; production protocols plug in their own
// Serializer and Signer.
package transport

import (
	"context"
	"time"

	"github.com/thejcannon/botocore/pkg/credentials"
	"github.com/thejcannon/botocore/pkg/model"
)

// Response is one transport round trip result: the HTTP status code and the
// decoded response body. Body is never nil for a completed round trip.
type Response struct {
	StatusCode int
	Body       map[string]any
}

// Endpoint performs request/response round trips against one service
// deployment. Implementations must be safe for concurrent use.
type Endpoint interface {
	// MakeRequest dispatches one operation call. It returns an error only
	// for connection-level faults; service-level errors come back as a
	// Response with a non-2xx status or an error body, classification being
	// the caller's job.
	MakeRequest(ctx context.Context, op *model.Operation, params map[string]any) (*Response, error)
	// Close releases any held connections. Safe to call more than once.
	Close() error
}

// Options carries the client configuration relevant to endpoint construction.
type Options struct {
	// Secure selects https for region-derived endpoints.
	Secure bool
	// EndpointURL overrides the region-derived endpoint when non-empty.
	EndpointURL string
	// Verify toggles TLS certificate verification; nil keeps the transport
	// default (verification on).
	Verify *bool
	// Credentials are the explicit credentials, or nil when resolution is
	// left to the transport.
	Credentials *credentials.Credentials
	// DialTimeout and RequestTimeout bound connection setup and the full
	// round trip. Zero means no bound.
	DialTimeout    time.Duration
	RequestTimeout time.Duration
}

// Creator builds endpoints bound to a region and configuration.
type Creator interface {
	CreateEndpoint(m *model.ServiceModel, region string, opts Options) (Endpoint, error)
}
