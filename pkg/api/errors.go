package api

import (
	"fmt"
	"net/http"

	"github.com/getshelfd/shelfd/pkg/resource"
)

// InvalidRequestError is returned when a call is malformed before any
// network activity: an id supplied on create, an unsupported operation, or
// a payload rejected by the resource's schema.
type InvalidRequestError struct {
	Resource string
	Op       resource.Operation
	Reason   string
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid %s request for resource %q: %s", e.Op, e.Resource, e.Reason)
}

// Hint returns a user-friendly suggestion for resolving this error.
func (e *InvalidRequestError) Hint() string {
	if e.Op == resource.Create {
		return "Remove the id field from the payload; the backend assigns ids on creation."
	}
	return "Check the payload against the resource's declared operations and schema."
}

// MissingIDError is returned when get, update or delete is called without
// an id.
type MissingIDError struct {
	Resource string
	Op       resource.Operation
}

func (e *MissingIDError) Error() string {
	return fmt.Sprintf("resource %q: %s requires an id", e.Resource, e.Op)
}

// Hint returns a user-friendly suggestion for resolving this error.
func (e *MissingIDError) Hint() string {
	return fmt.Sprintf("Include the resource's id field in the payload when calling %s.", e.Op)
}

// TransportError is returned for network failures and non-2xx responses.
// Status is zero when the request never produced a response.
type TransportError struct {
	Verb   string
	URL    string
	Status int
	Body   string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Verb, e.URL, e.Err)
	}
	if e.Body != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Verb, e.URL, e.Status, e.Body)
	}
	return fmt.Sprintf("%s %s: status %d", e.Verb, e.URL, e.Status)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure is worth retrying: connection-level
// errors and 5xx responses qualify, client errors do not.
func (e *TransportError) Retryable() bool {
	if e.Err != nil {
		return true
	}
	return e.Status >= http.StatusInternalServerError
}
