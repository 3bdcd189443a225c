package resource

import (
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// FromOpenAPIFile loads an OpenAPI 3 document and derives a catalog from it.
func FromOpenAPIFile(path string) (*Catalog, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI spec: %w", err)
	}
	return FromOpenAPI(doc)
}

// FromOpenAPIData derives a catalog from raw OpenAPI 3 document bytes
// (JSON or YAML).
func FromOpenAPIData(data []byte) (*Catalog, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI spec: %w", err)
	}
	return FromOpenAPI(doc)
}

// FromOpenAPI derives a resource catalog from an OpenAPI 3 document.
//
// A collection path like /books contributes read (GET) and create (POST);
// an item path like /books/{id} contributes get (GET), update (PATCH) and
// delete (DELETE). Deeper paths describe nested resources, which the client
// does not support, and are skipped. Returns an error if no resource can be
// derived at all.
func FromOpenAPI(doc *openapi3.T) (*Catalog, error) {
	if doc == nil || doc.Paths == nil {
		return nil, fmt.Errorf("OpenAPI document has no paths")
	}

	ops := make(map[string][]Operation)

	pathMap := doc.Paths.Map()
	paths := make([]string, 0, len(pathMap))
	for p := range pathMap {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		item := pathMap[p]
		if item == nil {
			continue
		}
		segments := strings.Split(strings.Trim(p, "/"), "/")
		switch {
		case len(segments) == 1 && !isParam(segments[0]):
			name := segments[0]
			if item.Get != nil {
				ops[name] = append(ops[name], Read)
			}
			if item.Post != nil {
				ops[name] = append(ops[name], Create)
			}
		case len(segments) == 2 && !isParam(segments[0]) && isParam(segments[1]):
			name := segments[0]
			if item.Get != nil {
				ops[name] = append(ops[name], Get)
			}
			if item.Patch != nil {
				ops[name] = append(ops[name], Update)
			}
			if item.Delete != nil {
				ops[name] = append(ops[name], Delete)
			}
		}
	}

	if len(ops) == 0 {
		return nil, fmt.Errorf("no CRUD resources derivable from OpenAPI document")
	}

	catalog := NewCatalog()
	names := make([]string, 0, len(ops))
	for name := range ops {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		r := &Resource{Name: name, Operations: canonicalOrder(ops[name])}
		if err := catalog.Register(r); err != nil {
			return nil, fmt.Errorf("derived resource %q: %w", name, err)
		}
	}
	return catalog, nil
}

// canonicalOrder sorts a derived operation set into the fixed
// create/read/get/update/delete order.
func canonicalOrder(ops []Operation) []Operation {
	set := make(map[Operation]bool, len(ops))
	for _, op := range ops {
		set[op] = true
	}
	out := make([]Operation, 0, len(ops))
	for _, op := range Operations() {
		if set[op] {
			out = append(out, op)
		}
	}
	return out
}

func isParam(segment string) bool {
	return strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}")
}
