package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/thejcannon/botocore/internal/jsoncodec"
	"github.com/thejcannon/botocore/pkg/credentials"
	"github.com/thejcannon/botocore/pkg/model"
)

// Signer prepares an outgoing request for authentication. The default signer
// does nothing; signature algorithms are an external collaborator's concern.
type Signer interface {
	Sign(req *http.Request, creds *credentials.Credentials) error
}

type noopSigner struct{}

func (noopSigner) Sign(*http.Request, *credentials.Credentials) error { return nil }

// HTTPCreator builds HTTP endpoints. The zero value is usable; Signer may be
// set to plug in a real signature implementation shared by all endpoints the
// creator builds.
type HTTPCreator struct {
	Signer Signer
}

// NewHTTPCreator returns a creator with the no-op signer.
func NewHTTPCreator() *HTTPCreator {
	return &HTTPCreator{Signer: noopSigner{}}
}

// CreateEndpoint binds an HTTP endpoint to the given region and options.
// When no endpoint URL override is supplied, the URL is derived from the
// model's endpointPrefix and the region:
//
//	<scheme>://<endpointPrefix>.<region>.amazonaws.com
func (c *HTTPCreator) CreateEndpoint(m *model.ServiceModel, region string, opts Options) (Endpoint, error) {
	baseURL := opts.EndpointURL
	if baseURL == "" {
		if region == "" {
			return nil, fmt.Errorf("region is required to derive an endpoint for %s", m.ServiceName())
		}
		scheme := "https"
		if !opts.Secure {
			scheme = "http"
		}
		baseURL = fmt.Sprintf("%s://%s.%s.amazonaws.com", scheme, m.Metadata().EndpointPrefix, region)
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	httpTransport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout: opts.DialTimeout,
		}).DialContext,
	}
	if opts.Verify != nil && !*opts.Verify {
		httpTransport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	signer := c.Signer
	if signer == nil {
		signer = noopSigner{}
	}

	zap.L().Debug("endpoint created",
		zap.String("service", m.ServiceName()),
		zap.String("region", region),
		zap.String("url", baseURL),
		zap.Stringer("credentials", opts.Credentials))

	return &HTTPEndpoint{
		baseURL: baseURL,
		creds:   opts.Credentials,
		signer:  signer,
		client: &http.Client{
			Transport: httpTransport,
			Timeout:   opts.RequestTimeout,
		},
	}, nil
}

// HTTPEndpoint is the default Endpoint. One instance is bound to one base URL
// and credential set for its whole lifetime.
type HTTPEndpoint struct {
	baseURL string
	creds   *credentials.Credentials
	signer  Signer
	client  *http.Client
}

// BaseURL returns the resolved endpoint base URL.
func (e *HTTPEndpoint) BaseURL() string {
	return e.baseURL
}

// MakeRequest performs one round trip: parameters are JSON-encoded into the
// request body, the operation's HTTP binding selects method and URI, and the
// response body is decoded back into a mapping. An unreadable connection is
// an error; any completed exchange, whatever its status code, is returned as
// a Response.
func (e *HTTPEndpoint) MakeRequest(ctx context.Context, op *model.Operation, params map[string]any) (*Response, error) {
	if params == nil {
		params = map[string]any{}
	}
	body, err := jsoncodec.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("encode request for %s: %w", op.Name, err)
	}

	method := op.HTTP.Method
	if method == "" {
		method = http.MethodPost
	}
	req, err := http.NewRequestWithContext(ctx, method, e.baseURL+op.HTTP.RequestURI, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", op.Name, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Target", op.Name)

	if err := e.signer.Sign(req, e.creds); err != nil {
		return nil, fmt.Errorf("sign request for %s: %w", op.Name, err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request to %s: %w", op.Name, e.baseURL, err)
	}
	defer resp.Body.Close()

	decoded, err := decodeBody(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode %s response: %w", op.Name, err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: decoded}, nil
}

// Close drops idle connections held by the endpoint's HTTP client.
func (e *HTTPEndpoint) Close() error {
	e.client.CloseIdleConnections()
	return nil
}

func decodeBody(r io.Reader) (map[string]any, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]any{}, nil
	}
	var decoded map[string]any
	if err := jsoncodec.Unmarshal(raw, &decoded); err != nil {
		return nil, err
	}
	if decoded == nil {
		decoded = map[string]any{}
	}
	return decoded, nil
}
