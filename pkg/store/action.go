package store

import (
	"context"
	"fmt"
	"strings"
)

// Action is an opaque store action: a type tag plus a payload.
type Action struct {
	Type    string
	Payload any
}

// Pending is implemented by payloads that settle asynchronously. Dispatch
// awaits the payload before reducing, so a dispatched action can carry an
// in-flight network response.
type Pending interface {
	Await(ctx context.Context) (any, error)
}

// Result is the settled value of a dispatched action.
type Result struct {
	Value any
}

// Dispatcher accepts actions (possibly with Pending payloads) and returns
// the settled result once the payload has resolved and been reduced.
type Dispatcher interface {
	Dispatch(ctx context.Context, action Action) (Result, error)
}

// Deletion is the commit payload for a delete call: reducing it removes the
// entity with the given id from the resource cache.
type Deletion struct {
	ID string
}

// UpdateActionType derives the update action type for a resource:
// "books" → "UPDATE_BOOKS".
func UpdateActionType(resource string) string {
	return "UPDATE_" + strings.ToUpper(resource)
}

// TrackingActionType derives the request-tracking action type dispatched
// before a call's result is known: ("PATCH", "books") → "PATCH_BOOKS".
func TrackingActionType(verb, resource string) string {
	return strings.ToUpper(verb + "_" + resource)
}

// LookupError is returned when a derived action-creator or resource name is
// absent from the store's registry. It indicates a mismatch between the
// resource catalog and the store.
type LookupError struct {
	// Name is the missing registry key (resource or action-creator name).
	Name string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("store has no registration for %q", e.Name)
}

// Hint returns a user-friendly suggestion for resolving this error.
func (e *LookupError) Hint() string {
	return fmt.Sprintf("Build the store and the API client from the same catalog; %q is not in the store's catalog.", e.Name)
}
