package loader

import (
	"errors"
	"fmt"
)

// UnknownServiceError reports a service name no model document exists for.
// It is fatal at client-creation time.
type UnknownServiceError struct {
	Service string
}

func (e *UnknownServiceError) Error() string {
	return fmt.Sprintf("unknown service: %s", e.Service)
}

// DataNotFoundError is the distinguished "document absent" signal. Consumers
// rely on telling it apart from any other loader fault: absence of an
// auxiliary document means "no capability", while other faults propagate.
type DataNotFoundError struct {
	Path string
}

func (e *DataNotFoundError) Error() string {
	return fmt.Sprintf("data not found at path: %s", e.Path)
}

// IsDataNotFound reports whether err is (or wraps) a DataNotFoundError.
func IsDataNotFound(err error) bool {
	var notFound *DataNotFoundError
	return errors.As(err, &notFound)
}
