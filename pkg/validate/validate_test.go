package validate

import (
	"errors"
	"testing"

	"github.com/thejcannon/botocore/pkg/model"
)

const validateModelDoc = `{
	"metadata": {"apiVersion": "2014-01-01", "endpointPrefix": "myservice", "protocol": "query"},
	"operations": {
		"TestOperation": {
			"name": "TestOperation",
			"http": {"method": "POST", "requestUri": "/"},
			"input": {"shape": "TestOperationRequest"}
		},
		"NoInputOperation": {
			"name": "NoInputOperation",
			"http": {"method": "GET", "requestUri": "/"}
		}
	},
	"shapes": {
		"TestOperationRequest": {
			"type": "structure",
			"required": ["Foo"],
			"members": {
				"Foo": {"shape": "StringType"},
				"Bar": {"shape": "StringType"},
				"Config": {"shape": "ConfigShape"},
				"Tags": {"shape": "TagList"}
			}
		},
		"ConfigShape": {
			"type": "structure",
			"required": ["Name"],
			"members": {"Name": {"shape": "StringType"}}
		},
		"TagList": {"type": "list", "member": {"shape": "ConfigShape"}},
		"StringType": {"type": "string"}
	}
}`

func newTestModel(t *testing.T) *model.ServiceModel {
	t.Helper()
	m, err := model.New("myservice", []byte(validateModelDoc))
	if err != nil {
		t.Fatalf("model.New returned error: %v", err)
	}
	return m
}

func mustOperation(t *testing.T, m *model.ServiceModel, name string) *model.Operation {
	t.Helper()
	op, err := m.Operation(name)
	if err != nil {
		t.Fatalf("Operation(%q) returned error: %v", name, err)
	}
	return op
}

func TestMissingRequiredParameter(t *testing.T) {
	m := newTestModel(t)
	op := mustOperation(t, m, "TestOperation")

	err := Params(m, op, map[string]any{"Bar": "two"})
	var pve *ParamValidationError
	if !errors.As(err, &pve) {
		t.Fatalf("expected ParamValidationError, got %v", err)
	}
	if pve.Path != "Foo" {
		t.Errorf("expected violation at Foo, got %q", pve.Path)
	}
	if pve.Operation != "TestOperation" {
		t.Errorf("expected operation name in error, got %q", pve.Operation)
	}
}

func TestRequiredPresent(t *testing.T) {
	m := newTestModel(t)
	op := mustOperation(t, m, "TestOperation")

	if err := Params(m, op, map[string]any{"Foo": "one"}); err != nil {
		t.Fatalf("expected no error with required member present, got %v", err)
	}
}

func TestExtraParametersTolerated(t *testing.T) {
	// Undeclared members pass through; only required membership is enforced.
	m := newTestModel(t)
	op := mustOperation(t, m, "TestOperation")

	err := Params(m, op, map[string]any{"Foo": "one", "Undeclared": 42})
	if err != nil {
		t.Fatalf("extra parameters must be tolerated, got %v", err)
	}
}

func TestNoInputShapeIgnoresArguments(t *testing.T) {
	m := newTestModel(t)
	op := mustOperation(t, m, "NoInputOperation")

	if err := Params(m, op, map[string]any{"Whatever": true}); err != nil {
		t.Fatalf("operations without input shape accept anything, got %v", err)
	}
}

func TestNestedStructureRequired(t *testing.T) {
	m := newTestModel(t)
	op := mustOperation(t, m, "TestOperation")

	err := Params(m, op, map[string]any{
		"Foo":    "one",
		"Config": map[string]any{},
	})
	var pve *ParamValidationError
	if !errors.As(err, &pve) {
		t.Fatalf("expected ParamValidationError, got %v", err)
	}
	if pve.Path != "Config.Name" {
		t.Errorf("expected violation at Config.Name, got %q", pve.Path)
	}
}

func TestListMemberValidation(t *testing.T) {
	m := newTestModel(t)
	op := mustOperation(t, m, "TestOperation")

	err := Params(m, op, map[string]any{
		"Foo": "one",
		"Tags": []any{
			map[string]any{"Name": "ok"},
			map[string]any{},
		},
	})
	var pve *ParamValidationError
	if !errors.As(err, &pve) {
		t.Fatalf("expected ParamValidationError, got %v", err)
	}
	if pve.Path != "Tags[1].Name" {
		t.Errorf("expected violation at Tags[1].Name, got %q", pve.Path)
	}
}

func TestWrongShapeKind(t *testing.T) {
	m := newTestModel(t)
	op := mustOperation(t, m, "TestOperation")

	err := Params(m, op, map[string]any{"Foo": "one", "Config": "not a structure"})
	var pve *ParamValidationError
	if !errors.As(err, &pve) {
		t.Fatalf("expected ParamValidationError, got %v", err)
	}
}
