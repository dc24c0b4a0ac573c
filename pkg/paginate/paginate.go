// Package paginate turns a pageable operation into an iterator. A Paginator
// is bound to one operation on one client and re-invokes that client's own
// call path for every page; it never talks to the transport directly.
//
// The per-operation configuration comes from the service's auxiliary
// pagination document. Token and result fields are JMESPath expressions
// evaluated against each decoded page.
package paginate

import (
	"context"
	"fmt"

	"github.com/jmespath/go-jmespath"

	"github.com/thejcannon/botocore/internal/jsoncodec"
)

// Caller is the slice of the client surface a paginator needs: the
// operation-invocation entry point.
type Caller interface {
	Call(ctx context.Context, operation string, params map[string]any) (map[string]any, error)
}

// Config is a parsed pagination document: one entry per pageable operation,
// keyed by the model-declared operation name.
type Config struct {
	Operations map[string]*OperationConfig `json:"pagination"`
}

// OperationConfig describes how one operation pages.
type OperationConfig struct {
	// InputToken is the request member carrying the continuation token.
	InputToken string `json:"input_token"`
	// OutputToken is a JMESPath expression extracting the next token from a
	// page.
	OutputToken string `json:"output_token"`
	// MoreResults optionally names a boolean expression that is false on the
	// final page.
	MoreResults string `json:"more_results"`
	// LimitKey optionally names the request member bounding page size.
	LimitKey string `json:"limit_key"`
	// ResultKey is the expression selecting the page's result list.
	ResultKey string `json:"result_key"`
}

// ParseConfig decodes a raw pagination document.
func ParseConfig(raw []byte) (*Config, error) {
	var cfg Config
	if err := jsoncodec.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse pagination config: %w", err)
	}
	if cfg.Operations == nil {
		cfg.Operations = map[string]*OperationConfig{}
	}
	return &cfg, nil
}

// Paginator repeats one operation, advancing the continuation token until the
// service reports the result set exhausted.
type Paginator struct {
	caller    Caller
	operation string // normalized operation name, as exposed on the client
	cfg       *OperationConfig
}

// New binds a paginator to an operation on a client.
func New(caller Caller, operation string, cfg *OperationConfig) *Paginator {
	return &Paginator{caller: caller, operation: operation, cfg: cfg}
}

// Paginate starts an iteration with the given base parameters. The parameter
// mapping is copied; the caller's map is never mutated.
func (p *Paginator) Paginate(ctx context.Context, params map[string]any) *PageIterator {
	base := make(map[string]any, len(params))
	for k, v := range params {
		base[k] = v
	}
	return &PageIterator{
		paginator: p,
		ctx:       ctx,
		params:    base,
	}
}

// BuildFullResult drains the iterator and merges every page's result list
// into a single mapping keyed by the configured result expression.
func (p *Paginator) BuildFullResult(ctx context.Context, params map[string]any) (map[string]any, error) {
	var merged []any
	it := p.Paginate(ctx, params)
	for it.Next() {
		page := it.Page()
		result, err := search(p.cfg.ResultKey, page)
		if err != nil {
			return nil, err
		}
		if items, ok := result.([]any); ok {
			merged = append(merged, items...)
		}
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return map[string]any{p.cfg.ResultKey: merged}, nil
}

// PageIterator walks the pages of one Paginate call. Typical use:
//
//	it := paginator.Paginate(ctx, params)
//	for it.Next() {
//		page := it.Page()
//		...
//	}
//	if err := it.Err(); err != nil {
//		...
//	}
type PageIterator struct {
	paginator *Paginator
	ctx       context.Context
	params    map[string]any

	page      map[string]any
	nextToken any
	started   bool
	done      bool
	err       error
}

// Next fetches the next page. It returns false when the result set is
// exhausted or an error occurred.
func (it *PageIterator) Next() bool {
	if it.done || it.err != nil {
		return false
	}

	params := it.params
	if it.started {
		params = make(map[string]any, len(it.params)+1)
		for k, v := range it.params {
			params[k] = v
		}
		params[it.paginator.cfg.InputToken] = it.nextToken
	}

	page, err := it.paginator.caller.Call(it.ctx, it.paginator.operation, params)
	if err != nil {
		it.err = err
		return false
	}
	it.started = true
	it.page = page

	token, err := it.advance(page)
	if err != nil {
		it.err = err
		it.page = nil
		return false
	}
	it.nextToken = token
	if token == nil {
		it.done = true
	}
	return true
}

// Page returns the most recently fetched page.
func (it *PageIterator) Page() map[string]any {
	return it.page
}

// Err returns the first error the iteration hit, if any.
func (it *PageIterator) Err() error {
	return it.err
}

// advance extracts the continuation token for the next request, or nil when
// the current page is the last one.
func (it *PageIterator) advance(page map[string]any) (any, error) {
	cfg := it.paginator.cfg

	if cfg.MoreResults != "" {
		more, err := search(cfg.MoreResults, page)
		if err != nil {
			return nil, err
		}
		if !truthy(more) {
			return nil, nil
		}
	}

	token, err := search(cfg.OutputToken, page)
	if err != nil {
		return nil, err
	}
	if !truthy(token) {
		return nil, nil
	}
	return token, nil
}

func search(expr string, data map[string]any) (any, error) {
	result, err := jmespath.Search(expr, map[string]any(data))
	if err != nil {
		return nil, fmt.Errorf("evaluate %q: %w", expr, err)
	}
	return result, nil
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}
