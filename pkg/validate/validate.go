// Package validate rejects malformed call parameters before any network I/O
// happens.
//
// Validation is intentionally lenient about extra fields: members that are
// not declared in the input shape pass through untouched, because the model
// gives us no way to validate what the service will return for them. Only the
// declared "required" set is enforced, recursively for nested structures that
// the caller actually supplied. Validation is pure: it never touches the
// transport or the event bus.
package validate

import (
	"fmt"
	"sort"

	"github.com/thejcannon/botocore/pkg/model"
)

// ParamValidationError reports the first structural violation found in the
// caller-supplied parameters. The caller can always recover by correcting
// input; the error is raised before any I/O occurs.
type ParamValidationError struct {
	Operation string
	Path      string // dotted path to the offending member, e.g. "Config.Foo"
	Reason    string
}

func (e *ParamValidationError) Error() string {
	return fmt.Sprintf("parameter validation failed for %s: %s: %s", e.Operation, e.Path, e.Reason)
}

// Params checks the supplied parameter mapping against the operation's input
// shape. Operations without a declared input shape accept anything.
// Required members are checked in declaration order, so the first reported
// violation is deterministic.
func Params(m *model.ServiceModel, op *model.Operation, params map[string]any) error {
	if op.Input == nil {
		return nil
	}
	shape, err := m.Resolve(op.Input)
	if err != nil {
		return err
	}
	return checkShape(m, op.Name, "", shape, params)
}

func checkShape(m *model.ServiceModel, opName, path string, shape *model.Shape, value any) error {
	if shape == nil {
		return nil
	}

	switch shape.Type {
	case model.TypeStructure:
		mapping, ok := value.(map[string]any)
		if !ok {
			return &ParamValidationError{
				Operation: opName,
				Path:      orRoot(path),
				Reason:    fmt.Sprintf("expected a structure, got %T", value),
			}
		}
		for _, required := range shape.Required {
			if _, present := mapping[required]; !present {
				return &ParamValidationError{
					Operation: opName,
					Path:      join(path, required),
					Reason:    "missing required parameter",
				}
			}
		}
		// Descend in sorted member order so the first reported violation
		// does not depend on map iteration order.
		for _, name := range sortedMemberNames(shape.Members) {
			v, present := mapping[name]
			if !present {
				continue
			}
			member, err := m.Resolve(shape.Members[name])
			if err != nil {
				return err
			}
			if err := checkShape(m, opName, join(path, name), member, v); err != nil {
				return err
			}
		}
	case model.TypeList:
		items, ok := value.([]any)
		if !ok {
			return &ParamValidationError{
				Operation: opName,
				Path:      orRoot(path),
				Reason:    fmt.Sprintf("expected a list, got %T", value),
			}
		}
		member, err := m.Resolve(shape.Member)
		if err != nil {
			return err
		}
		for i, item := range items {
			if err := checkShape(m, opName, fmt.Sprintf("%s[%d]", path, i), member, item); err != nil {
				return err
			}
		}
	}
	// Scalars and maps pass through: the serializer collaborator owns
	// protocol-level coercion rules.
	return nil
}

func sortedMemberNames(members map[string]*model.ShapeRef) []string {
	names := make([]string, 0, len(members))
	for name := range members {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func join(path, member string) string {
	if path == "" {
		return member
	}
	return path + "." + member
}

func orRoot(path string) string {
	if path == "" {
		return "(input)"
	}
	return path
}
