package resource

import (
	"fmt"
	"net/http"
)

// Operation is one of the five CRUD operations a resource can support.
type Operation string

// The five operations. Read lists a collection; Get fetches one entity.
const (
	Create Operation = "create"
	Read   Operation = "read"
	Get    Operation = "get"
	Update Operation = "update"
	Delete Operation = "delete"
)

// Operations returns all operations in canonical order.
func Operations() []Operation {
	return []Operation{Create, Read, Get, Update, Delete}
}

// ParseOperation parses an operation name.
func ParseOperation(s string) (Operation, error) {
	switch Operation(s) {
	case Create, Read, Get, Update, Delete:
		return Operation(s), nil
	}
	return "", fmt.Errorf("unknown operation %q (want create, read, get, update or delete)", s)
}

// Method returns the HTTP verb for the operation. The mapping is fixed for
// the lifetime of the process: create→POST, read/get→GET, update→PATCH,
// delete→DELETE.
func (o Operation) Method() string {
	switch o {
	case Create:
		return http.MethodPost
	case Update:
		return http.MethodPatch
	case Delete:
		return http.MethodDelete
	default:
		return http.MethodGet
	}
}

// RequiresID reports whether the operation addresses a single entity and
// therefore needs an id.
func (o Operation) RequiresID() bool {
	return o == Get || o == Update || o == Delete
}

// ForbidsID reports whether the operation must not carry an id.
// Id creation is the responsibility of the backend, so create rejects
// client-supplied ids.
func (o Operation) ForbidsID() bool {
	return o == Create
}

// HasBody reports whether requests for this operation carry a JSON body.
// GET and DELETE requests never do.
func (o Operation) HasBody() bool {
	return o == Create || o == Update
}

func (o Operation) String() string {
	return string(o)
}
