package client

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/thejcannon/botocore/internal/ids"
	"github.com/thejcannon/botocore/internal/naming"
	"github.com/thejcannon/botocore/pkg/config"
	"github.com/thejcannon/botocore/pkg/hooks"
	"github.com/thejcannon/botocore/pkg/loader"
	"github.com/thejcannon/botocore/pkg/model"
	"github.com/thejcannon/botocore/pkg/transport"
	"github.com/thejcannon/botocore/pkg/validate"
)

// init configures a default global zap logger. Applications may replace it
// with zap.ReplaceGlobals(...) if they need custom logging.
func init() {
	c := zap.Config{
		Level:            zap.NewAtomicLevelAt(zap.InfoLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := c.Build()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
}

// Creator builds clients from service models. One Creator can produce any
// number of clients; they share its loader, endpoint creator, and emitter.
type Creator struct {
	loader    loader.Loader
	endpoints transport.Creator
	emitter   hooks.Emitter
}

// NewCreator wires a client factory from its collaborators. The emitter is
// an explicit dependency rather than a process-wide default so that clients
// with independent event scopes can coexist; passing nil installs a fresh
// private emitter.
func NewCreator(l loader.Loader, ec transport.Creator, em hooks.Emitter) *Creator {
	if em == nil {
		em = hooks.NewHierarchicalEmitter()
	}
	return &Creator{loader: l, endpoints: ec, emitter: em}
}

// Client is a generated service client. Its operation surface is entirely
// determined by the service model it was built from. Immutable after
// creation except for the lazily-memoized auxiliary config caches.
type Client struct {
	serviceName string
	region      string
	model       *model.ServiceModel
	endpoint    transport.Endpoint
	emitter     hooks.Emitter
	loader      loader.Loader

	// operations maps the normalized (snake_case) operation name to its
	// model, the client's dispatch table.
	operations map[string]*model.Operation

	capabilities capabilityCache
}

// CreateClient resolves the model for serviceName, binds an endpoint to the
// given region, and synthesizes the client. serviceName is the logical
// service identity: it keys model resolution and all auxiliary-config
// lookups, and may differ from the model metadata's endpointPrefix.
func (c *Creator) CreateClient(serviceName, region string, cfg *config.Config) (*Client, error) {
	if cfg == nil {
		cfg = &config.Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	raw, err := c.loader.LoadServiceModel(serviceName)
	if err != nil {
		return nil, err
	}
	m, err := model.New(serviceName, raw)
	if err != nil {
		return nil, err
	}

	endpoint, err := c.endpoints.CreateEndpoint(m, region, transport.Options{
		Secure:         cfg.IsSecure(),
		EndpointURL:    cfg.EndpointURL,
		Verify:         cfg.Verify,
		Credentials:    cfg.Credentials(),
		DialTimeout:    cfg.Timeouts.Dial,
		RequestTimeout: cfg.Timeouts.Request,
	})
	if err != nil {
		return nil, fmt.Errorf("create endpoint for %s: %w", serviceName, err)
	}

	operations := make(map[string]*model.Operation, len(m.OperationNames()))
	for _, name := range m.OperationNames() {
		op, _ := m.Operation(name)
		operations[naming.ToSnake(name)] = op
	}

	zap.L().Debug("client created",
		zap.String("service", serviceName),
		zap.String("region", region),
		zap.Int("operations", len(operations)))

	return &Client{
		serviceName: serviceName,
		region:      region,
		model:       m,
		endpoint:    endpoint,
		emitter:     c.emitter,
		loader:      c.loader,
		operations:  operations,
	}, nil
}

// ServiceName returns the logical service identity the client was created
// under.
func (c *Client) ServiceName() string {
	return c.serviceName
}

// Region returns the region the client's endpoint is bound to.
func (c *Client) Region() string {
	return c.region
}

// Model returns the client's service model.
func (c *Client) Model() *model.ServiceModel {
	return c.model
}

// SupportsOperation reports whether the client exposes the given normalized
// operation name.
func (c *Client) SupportsOperation(name string) bool {
	_, ok := c.operations[name]
	return ok
}

// Operations returns the normalized names of every exposed operation, sorted.
func (c *Client) Operations() []string {
	names := make([]string, 0, len(c.operations))
	for name := range c.operations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call invokes one operation by its normalized name. The pipeline is:
// validate parameters, publish before-call, dispatch through the endpoint,
// classify the response, publish after-call on success. Validation and event
// failures abort before any transport I/O.
func (c *Client) Call(ctx context.Context, operation string, params map[string]any) (map[string]any, error) {
	op, ok := c.operations[operation]
	if !ok {
		return nil, &model.UnknownOperationError{Name: operation}
	}
	if params == nil {
		params = map[string]any{}
	}

	if err := validate.Params(c.model, op, params); err != nil {
		return nil, err
	}

	invocationID := ids.NewInvocationID()
	if err := c.emitter.Emit(hooks.Event{
		Name:         "before-call." + c.serviceName + "." + op.Name,
		Service:      c.serviceName,
		Operation:    op.Name,
		InvocationID: invocationID,
		Params:       params,
	}); err != nil {
		return nil, fmt.Errorf("before-call handler for %s: %w", op.Name, err)
	}

	resp, err := c.endpoint.MakeRequest(ctx, op, params)
	if err != nil {
		return nil, err
	}

	if svcErr := classify(op, resp); svcErr != nil {
		return nil, svcErr
	}

	body := resp.Body
	if body == nil {
		body = map[string]any{}
	}

	if err := c.emitter.Emit(hooks.Event{
		Name:         "after-call." + c.serviceName + "." + op.Name,
		Service:      c.serviceName,
		Operation:    op.Name,
		InvocationID: invocationID,
		Params:       params,
		Response:     body,
	}); err != nil {
		return nil, fmt.Errorf("after-call handler for %s: %w", op.Name, err)
	}

	return body, nil
}

// Close releases the endpoint's resources. Safe to call more than once.
func (c *Client) Close() error {
	return c.endpoint.Close()
}

// classify decides whether a completed transport exchange is a service
// error. A status of 300 or above, or a decoded Error entry in the body,
// is; anything else is success.
func classify(op *model.Operation, resp *transport.Response) *ClientError {
	errEntry, hasErrEntry := resp.Body["Error"].(map[string]any)
	if resp.StatusCode < 300 && !hasErrEntry {
		return nil
	}

	ce := &ClientError{
		Operation:  op.Name,
		StatusCode: resp.StatusCode,
		Code:       "Unknown",
		Message:    "no error information returned",
	}
	if hasErrEntry {
		if code, ok := errEntry["Code"].(string); ok {
			ce.Code = code
		}
		if msg, ok := errEntry["Message"].(string); ok {
			ce.Message = msg
		}
	}
	return ce
}
