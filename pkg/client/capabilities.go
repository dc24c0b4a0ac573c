package client

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/thejcannon/botocore/internal/naming"
	"github.com/thejcannon/botocore/pkg/loader"
	"github.com/thejcannon/botocore/pkg/paginate"
	"github.com/thejcannon/botocore/pkg/waiter"
)

// capabilityCache memoizes the lazily-loaded auxiliary configuration. A nil
// config with its loaded flag set records the normal "document absent"
// outcome, so absence is only probed once per client. Loader faults other
// than not-found are never cached.
type capabilityCache struct {
	mu sync.Mutex

	pagination       *paginate.Config
	paginationLoaded bool

	waiters       *waiter.Config
	waitersLoaded bool
}

// paginationConfig loads and caches the service's pagination document.
// Returns (nil, nil) when the service has none.
func (c *Client) paginationConfig() (*paginate.Config, error) {
	c.capabilities.mu.Lock()
	defer c.capabilities.mu.Unlock()

	if c.capabilities.paginationLoaded {
		return c.capabilities.pagination, nil
	}

	path := c.dataPath("paginators")
	raw, err := c.loader.LoadData(path)
	if err != nil {
		if loader.IsDataNotFound(err) {
			zap.L().Debug("service has no pagination config", zap.String("path", path))
			c.capabilities.paginationLoaded = true
			return nil, nil
		}
		return nil, err
	}

	cfg, err := paginate.ParseConfig(raw)
	if err != nil {
		return nil, err
	}
	c.capabilities.pagination = cfg
	c.capabilities.paginationLoaded = true
	return cfg, nil
}

// waiterConfig loads and caches the service's waiter document. Returns
// (nil, nil) when the service has none.
func (c *Client) waiterConfig() (*waiter.Config, error) {
	c.capabilities.mu.Lock()
	defer c.capabilities.mu.Unlock()

	if c.capabilities.waitersLoaded {
		return c.capabilities.waiters, nil
	}

	path := c.dataPath("waiters")
	raw, err := c.loader.LoadData(path)
	if err != nil {
		if loader.IsDataNotFound(err) {
			zap.L().Debug("service has no waiter config", zap.String("path", path))
			c.capabilities.waitersLoaded = true
			return nil, nil
		}
		return nil, err
	}

	cfg, err := waiter.ParseConfig(raw)
	if err != nil {
		return nil, err
	}
	c.capabilities.waiters = cfg
	c.capabilities.waitersLoaded = true
	return cfg, nil
}

// dataPath builds the auxiliary document path for this client. The key is
// the logical service name the client was created under, never the model's
// endpointPrefix: several logical services can share one wire prefix, and
// their auxiliary documents differ.
func (c *Client) dataPath(kind string) string {
	return "aws/" + c.serviceName + "/" + c.model.Metadata().APIVersion + "." + kind
}

// CanPaginate reports whether the named operation is pageable. The name is
// the normalized form; the pagination document is keyed by the
// model-declared name, so the client translates. A service without a
// pagination document is simply not pageable; only loader faults other than
// not-found surface as errors.
func (c *Client) CanPaginate(operation string) (bool, error) {
	cfg, err := c.paginationConfig()
	if err != nil {
		return false, err
	}
	if cfg == nil {
		return false, nil
	}
	op, ok := c.operations[operation]
	if !ok {
		return false, nil
	}
	_, pageable := cfg.Operations[op.Name]
	return pageable, nil
}

// GetPaginator returns a paginator bound to the named operation on this
// client. It fails with *OperationNotPageableError when CanPaginate is
// false.
func (c *Client) GetPaginator(operation string) (*paginate.Paginator, error) {
	ok, err := c.CanPaginate(operation)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &OperationNotPageableError{Operation: operation}
	}

	cfg, err := c.paginationConfig()
	if err != nil {
		return nil, err
	}
	op := c.operations[operation]
	return paginate.New(c, operation, cfg.Operations[op.Name]), nil
}

// WaiterNames returns the normalized names of the service's declared
// waiters, sorted. A service without a waiter document has none; that is an
// empty list, not an error.
func (c *Client) WaiterNames() ([]string, error) {
	cfg, err := c.waiterConfig()
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return []string{}, nil
	}

	names := make([]string, 0, len(cfg.Waiters))
	for declared := range cfg.Waiters {
		names = append(names, naming.ToSnake(declared))
	}
	sort.Strings(names)
	return names, nil
}

// GetWaiter returns a waiter bound to this client by its normalized name.
// It fails with *UnknownWaiterError for names the service does not declare.
func (c *Client) GetWaiter(name string) (*waiter.Waiter, error) {
	cfg, err := c.waiterConfig()
	if err != nil {
		return nil, err
	}
	if cfg != nil {
		for declared, def := range cfg.Waiters {
			if naming.ToSnake(declared) == name {
				return waiter.New(declared, c, naming.ToSnake(def.Operation), def), nil
			}
		}
	}

	available, _ := c.WaiterNames()
	return nil, &UnknownWaiterError{Name: name, Available: available}
}
