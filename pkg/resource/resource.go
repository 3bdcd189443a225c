package resource

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Resource describes one entity collection exposed by the backend.
type Resource struct {
	// Name is the unique resource name, e.g. "books".
	Name string

	// Path is the URL path segment for the resource. Defaults to Name.
	// A path must be a single segment: nested resources are not supported.
	Path string

	// IDField is the entity field holding the identifier. Defaults to "id".
	IDField string

	// Operations lists the supported operations. Empty means all five.
	Operations []Operation

	// Schema optionally validates create/update payloads client-side.
	Schema *jsonschema.Schema

	// Seed holds initial entities loaded into the local store, useful for
	// offline development against a not-yet-available backend.
	Seed []map[string]any
}

// normalize applies defaults and validates the descriptor.
func (r *Resource) normalize() error {
	if r == nil {
		return errors.New("resource cannot be nil")
	}
	if r.Name == "" {
		return errors.New("resource name cannot be empty")
	}
	if strings.ContainsAny(r.Name, "/ \t") {
		return fmt.Errorf("resource name %q must not contain slashes or whitespace", r.Name)
	}
	if r.Path == "" {
		r.Path = r.Name
	}
	if strings.Contains(r.Path, "/") {
		return fmt.Errorf("resource %q: path %q must be a single segment (nested resources are not supported)", r.Name, r.Path)
	}
	if r.IDField == "" {
		r.IDField = "id"
	}
	if len(r.Operations) == 0 {
		r.Operations = Operations()
	} else {
		seen := make(map[Operation]bool, len(r.Operations))
		for _, op := range r.Operations {
			if _, err := ParseOperation(string(op)); err != nil {
				return fmt.Errorf("resource %q: %w", r.Name, err)
			}
			if seen[op] {
				return fmt.Errorf("resource %q: duplicate operation %q", r.Name, op)
			}
			seen[op] = true
		}
	}
	return nil
}

// Supports reports whether the resource supports the operation.
func (r *Resource) Supports(op Operation) bool {
	for _, o := range r.Operations {
		if o == op {
			return true
		}
	}
	return false
}

// EntityID extracts the id of a decoded JSON entity as a string key.
// JSON numbers are rendered without a trailing ".0" so that an entity
// {"id": 32} keys as "32".
func (r *Resource) EntityID(entity map[string]any) (string, bool) {
	v, ok := entity[r.IDField]
	if !ok || v == nil {
		return "", false
	}
	return IDKey(v)
}

// IDKey renders an id value as a map key. Strings pass through; numbers are
// formatted compactly. Other types are not valid ids.
func IDKey(v any) (string, bool) {
	switch id := v.(type) {
	case string:
		if id == "" {
			return "", false
		}
		return id, true
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64), true
	case int:
		return strconv.Itoa(id), true
	case int64:
		return strconv.FormatInt(id, 10), true
	case json.Number:
		return id.String(), true
	default:
		return "", false
	}
}
