package model

import (
	"fmt"
	"sort"

	"github.com/thejcannon/botocore/internal/jsoncodec"
)

// Shape type names as they appear in model documents.
const (
	TypeStructure = "structure"
	TypeString    = "string"
	TypeList      = "list"
	TypeMap       = "map"
	TypeInteger   = "integer"
	TypeLong      = "long"
	TypeFloat     = "float"
	TypeDouble    = "double"
	TypeBoolean   = "boolean"
	TypeBlob      = "blob"
	TypeTimestamp = "timestamp"
)

// Metadata carries the service-wide attributes of a model document.
type Metadata struct {
	APIVersion       string `json:"apiVersion"`
	EndpointPrefix   string `json:"endpointPrefix"`
	SignatureVersion string `json:"signatureVersion"`
	Protocol         string `json:"protocol"`
}

// HTTPBinding describes how an operation maps onto an HTTP request.
type HTTPBinding struct {
	Method     string `json:"method"`
	RequestURI string `json:"requestUri"`
}

// ShapeRef is a by-name reference into the owning model's shape table.
type ShapeRef struct {
	Shape string `json:"shape"`
}

// Operation is one named remote action with its HTTP binding and optional
// input/output shape references. Immutable after the model is built.
type Operation struct {
	Name   string      `json:"name"`
	HTTP   HTTPBinding `json:"http"`
	Input  *ShapeRef   `json:"input"`
	Output *ShapeRef   `json:"output"`
}

// Shape is a named data-type definition. Type selects which of the remaining
// fields are meaningful: structures use Required/Members, lists use Member,
// maps use Key/Value, scalars use none.
type Shape struct {
	Type     string               `json:"type"`
	Required []string             `json:"required"`
	Members  map[string]*ShapeRef `json:"members"`
	Member   *ShapeRef            `json:"member"`
	Key      *ShapeRef            `json:"key"`
	Value    *ShapeRef            `json:"value"`
}

// ServiceModel is the immutable in-memory form of one service+version model
// document, addressable by operation and shape name.
type ServiceModel struct {
	serviceName string
	metadata    Metadata
	operations  map[string]*Operation
	shapes      map[string]*Shape
}

type modelDocument struct {
	Metadata   Metadata              `json:"metadata"`
	Operations map[string]*Operation `json:"operations"`
	Shapes     map[string]*Shape     `json:"shapes"`
}

// New parses a raw model document and validates its internal references.
// serviceName is the logical identity the client was created under; it is
// kept separate from metadata.endpointPrefix on purpose (see package docs).
func New(serviceName string, raw []byte) (*ServiceModel, error) {
	var doc modelDocument
	if err := jsoncodec.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse model document for %q: %w", serviceName, err)
	}

	m := &ServiceModel{
		serviceName: serviceName,
		metadata:    doc.Metadata,
		operations:  doc.Operations,
		shapes:      doc.Shapes,
	}
	if m.operations == nil {
		m.operations = map[string]*Operation{}
	}
	if m.shapes == nil {
		m.shapes = map[string]*Shape{}
	}

	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// ServiceName returns the logical service identity used for auxiliary-config
// lookups. This is not the wire endpointPrefix.
func (m *ServiceModel) ServiceName() string {
	return m.serviceName
}

// Metadata returns the service-wide metadata section.
func (m *ServiceModel) Metadata() Metadata {
	return m.metadata
}

// Operation resolves a model-declared operation name.
func (m *ServiceModel) Operation(name string) (*Operation, error) {
	op, ok := m.operations[name]
	if !ok {
		return nil, &UnknownOperationError{Name: name}
	}
	return op, nil
}

// OperationNames returns the declared operation names in sorted order.
func (m *ServiceModel) OperationNames() []string {
	names := make([]string, 0, len(m.operations))
	for name := range m.operations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Shape resolves a shape by name.
func (m *ServiceModel) Shape(name string) (*Shape, error) {
	s, ok := m.shapes[name]
	if !ok {
		return nil, &UnknownShapeError{Name: name}
	}
	return s, nil
}

// Resolve follows a shape reference. A nil reference resolves to nil.
func (m *ServiceModel) Resolve(ref *ShapeRef) (*Shape, error) {
	if ref == nil {
		return nil, nil
	}
	return m.Shape(ref.Shape)
}

// validate checks every reference in the document. The invariant that each
// required member name exists in the members table is enforced here, once,
// so per-call validation can trust the model.
func (m *ServiceModel) validate() error {
	for opName, op := range m.operations {
		if op == nil {
			return &InvalidModelError{Context: opName, Reason: "operation is null"}
		}
		for _, ref := range []*ShapeRef{op.Input, op.Output} {
			if ref == nil {
				continue
			}
			if _, ok := m.shapes[ref.Shape]; !ok {
				return &InvalidModelError{
					Context: opName,
					Reason:  fmt.Sprintf("references undeclared shape %q", ref.Shape),
				}
			}
		}
	}

	for shapeName, shape := range m.shapes {
		if shape == nil {
			return &InvalidModelError{Context: shapeName, Reason: "shape is null"}
		}
		for memberName, ref := range shape.Members {
			if ref == nil || ref.Shape == "" {
				return &InvalidModelError{
					Context: shapeName,
					Reason:  fmt.Sprintf("member %q has no shape reference", memberName),
				}
			}
			if _, ok := m.shapes[ref.Shape]; !ok {
				return &InvalidModelError{
					Context: shapeName,
					Reason:  fmt.Sprintf("member %q references undeclared shape %q", memberName, ref.Shape),
				}
			}
		}
		for _, ref := range []*ShapeRef{shape.Member, shape.Key, shape.Value} {
			if ref == nil {
				continue
			}
			if _, ok := m.shapes[ref.Shape]; !ok {
				return &InvalidModelError{
					Context: shapeName,
					Reason:  fmt.Sprintf("references undeclared shape %q", ref.Shape),
				}
			}
		}
		for _, required := range shape.Required {
			if _, ok := shape.Members[required]; !ok {
				return &InvalidModelError{
					Context: shapeName,
					Reason:  fmt.Sprintf("required member %q is not declared in members", required),
				}
			}
		}
	}
	return nil
}
