package model

import "fmt"

// UnknownOperationError reports a lookup of an operation name the model does
// not declare.
type UnknownOperationError struct {
	Name string
}

func (e *UnknownOperationError) Error() string {
	return fmt.Sprintf("unknown operation: %s", e.Name)
}

// UnknownShapeError reports a lookup of a shape name the model does not
// declare.
type UnknownShapeError struct {
	Name string
}

func (e *UnknownShapeError) Error() string {
	return fmt.Sprintf("unknown shape: %s", e.Name)
}

// InvalidModelError reports a malformed model document, such as a dangling
// shape reference or a required member missing from the member table. It is
// fatal at load time.
type InvalidModelError struct {
	Context string // operation or shape name the problem was found in
	Reason  string
}

func (e *InvalidModelError) Error() string {
	return fmt.Sprintf("invalid model: %s: %s", e.Context, e.Reason)
}
