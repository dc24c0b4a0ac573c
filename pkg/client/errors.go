package client

import "fmt"

// ClientError reports that the remote service rejected a call: the response
// carried an error status code or a decoded error body. The core never
// retries these; retry policy belongs to an outer collaborator.
type ClientError struct {
	Operation  string // model-declared operation name
	StatusCode int
	Code       string
	Message    string
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("an error occurred (%s) when calling %s: %s", e.Code, e.Operation, e.Message)
}

// HTTPStatusCode returns the response status; waiter status acceptors
// consult it.
func (e *ClientError) HTTPStatusCode() int {
	return e.StatusCode
}

// ErrorCode returns the decoded service error code; waiter error acceptors
// consult it.
func (e *ClientError) ErrorCode() string {
	return e.Code
}

// OperationNotPageableError reports a pagination request for an operation the
// service's pagination configuration does not cover. No I/O is performed.
type OperationNotPageableError struct {
	Operation string
}

func (e *OperationNotPageableError) Error() string {
	return fmt.Sprintf("operation cannot be paginated: %s", e.Operation)
}

// UnknownWaiterError reports a waiter name the service does not declare.
type UnknownWaiterError struct {
	Name      string
	Available []string
}

func (e *UnknownWaiterError) Error() string {
	return fmt.Sprintf("waiter does not exist: %s (available: %v)", e.Name, e.Available)
}
