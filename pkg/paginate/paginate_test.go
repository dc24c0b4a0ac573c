package paginate

import (
	"context"
	"errors"
	"testing"
)

// scriptedCaller returns canned pages in order and records the parameters of
// every call.
type scriptedCaller struct {
	pages []map[string]any
	calls []map[string]any
	err   error
}

func (c *scriptedCaller) Call(_ context.Context, _ string, params map[string]any) (map[string]any, error) {
	c.calls = append(c.calls, params)
	if c.err != nil && len(c.calls) > len(c.pages) {
		return nil, c.err
	}
	if len(c.calls) > len(c.pages) {
		return map[string]any{}, nil
	}
	return c.pages[len(c.calls)-1], nil
}

var usersConfig = &OperationConfig{
	InputToken:  "Marker",
	OutputToken: "Marker",
	MoreResults: "IsTruncated",
	LimitKey:    "MaxItems",
	ResultKey:   "Users",
}

func TestParseConfig(t *testing.T) {
	raw := `{
		"pagination": {
			"TestOperation": {
				"input_token": "Marker",
				"output_token": "Marker",
				"more_results": "IsTruncated",
				"limit_key": "MaxItems",
				"result_key": "Users"
			}
		}
	}`

	cfg, err := ParseConfig([]byte(raw))
	if err != nil {
		t.Fatalf("ParseConfig returned error: %v", err)
	}
	op := cfg.Operations["TestOperation"]
	if op == nil {
		t.Fatal("missing TestOperation entry")
	}
	if op.InputToken != "Marker" || op.ResultKey != "Users" {
		t.Fatalf("unexpected config: %+v", op)
	}
}

func TestParseConfigEmptyDocument(t *testing.T) {
	cfg, err := ParseConfig([]byte(`{}`))
	if err != nil {
		t.Fatalf("ParseConfig returned error: %v", err)
	}
	if cfg.Operations == nil || len(cfg.Operations) != 0 {
		t.Fatalf("expected empty operation table, got %v", cfg.Operations)
	}
}

func TestIterationAdvancesToken(t *testing.T) {
	caller := &scriptedCaller{pages: []map[string]any{
		{"Users": []any{"a"}, "IsTruncated": true, "Marker": "m1"},
		{"Users": []any{"b"}, "IsTruncated": true, "Marker": "m2"},
		{"Users": []any{"c"}, "IsTruncated": false},
	}}

	p := New(caller, "test_operation", usersConfig)
	it := p.Paginate(context.Background(), map[string]any{"MaxItems": 1})

	var pages int
	for it.Next() {
		pages++
	}
	if err := it.Err(); err != nil {
		t.Fatalf("iteration error: %v", err)
	}
	if pages != 3 {
		t.Fatalf("expected 3 pages, got %d", pages)
	}

	if len(caller.calls) != 3 {
		t.Fatalf("expected 3 calls, got %d", len(caller.calls))
	}
	if _, present := caller.calls[0]["Marker"]; present {
		t.Error("first call must not carry a token")
	}
	if caller.calls[1]["Marker"] != "m1" || caller.calls[2]["Marker"] != "m2" {
		t.Errorf("token did not advance: %v", caller.calls)
	}
	// The base parameters ride along on every call.
	for i, call := range caller.calls {
		if call["MaxItems"] != 1 {
			t.Errorf("call %d lost base params: %v", i, call)
		}
	}
}

func TestStopsWithoutMoreResultsKey(t *testing.T) {
	cfg := &OperationConfig{InputToken: "NextToken", OutputToken: "NextToken", ResultKey: "Items"}
	caller := &scriptedCaller{pages: []map[string]any{
		{"Items": []any{"a"}, "NextToken": "t1"},
		{"Items": []any{"b"}},
	}}

	it := New(caller, "list_items", cfg).Paginate(context.Background(), nil)
	var pages int
	for it.Next() {
		pages++
	}
	if err := it.Err(); err != nil {
		t.Fatalf("iteration error: %v", err)
	}
	if pages != 2 {
		t.Fatalf("expected 2 pages, got %d", pages)
	}
}

func TestCallerParamsNotMutated(t *testing.T) {
	caller := &scriptedCaller{pages: []map[string]any{
		{"Users": []any{"a"}, "IsTruncated": true, "Marker": "m1"},
		{"Users": []any{"b"}, "IsTruncated": false},
	}}

	params := map[string]any{"MaxItems": 1}
	it := New(caller, "test_operation", usersConfig).Paginate(context.Background(), params)
	for it.Next() {
	}

	if _, present := params["Marker"]; present {
		t.Fatal("caller-supplied params were mutated")
	}
}

func TestBuildFullResult(t *testing.T) {
	caller := &scriptedCaller{pages: []map[string]any{
		{"Users": []any{"a", "b"}, "IsTruncated": true, "Marker": "m1"},
		{"Users": []any{"c"}, "IsTruncated": false},
	}}

	full, err := New(caller, "test_operation", usersConfig).BuildFullResult(context.Background(), nil)
	if err != nil {
		t.Fatalf("BuildFullResult returned error: %v", err)
	}

	users, ok := full["Users"].([]any)
	if !ok || len(users) != 3 {
		t.Fatalf("unexpected merged result: %v", full)
	}
	if users[0] != "a" || users[1] != "b" || users[2] != "c" {
		t.Fatalf("merged result out of order: %v", users)
	}
}

func TestCallErrorSurfacesThroughErr(t *testing.T) {
	boom := errors.New("boom")
	caller := &scriptedCaller{
		pages: []map[string]any{
			{"Users": []any{"a"}, "IsTruncated": true, "Marker": "m1"},
		},
		err: boom,
	}

	it := New(caller, "test_operation", usersConfig).Paginate(context.Background(), nil)
	var pages int
	for it.Next() {
		pages++
	}
	if pages != 1 {
		t.Fatalf("expected 1 page before the error, got %d", pages)
	}
	if !errors.Is(it.Err(), boom) {
		t.Fatalf("expected the call error, got %v", it.Err())
	}
}
