package store

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/ohler55/ojg/jp"
)

// Query evaluates a JSONPath expression against the resource's cached
// entities (sorted by id). The root of the path is the entity list, so
// "$[?(@.price < 10)].title" selects titles of cheap books.
func (s *Store) Query(resourceName, path string) ([]any, error) {
	if !s.HasUpdateAction(resourceName) {
		return nil, &LookupError{Name: resourceName}
	}

	x, err := jp.ParseString(path)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONPath %q: %w", path, err)
	}

	return x.Get(s.List(resourceName)), nil
}

// Filter returns the resource's cached entities for which the boolean
// expression evaluates true. Expressions see entity fields as variables,
// e.g. `price < 10 && author == "Woolf"`.
func (s *Store) Filter(resourceName, expression string) ([]any, error) {
	if !s.HasUpdateAction(resourceName) {
		return nil, &LookupError{Name: resourceName}
	}

	program, err := expr.Compile(expression, expr.Env(map[string]any{}), expr.AsBool(), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression %q: %w", expression, err)
	}

	var out []any
	for _, e := range s.List(resourceName) {
		env, ok := e.(map[string]any)
		if !ok {
			continue
		}
		matched, err := expr.Run(program, env)
		if err != nil {
			return nil, fmt.Errorf("filter %q: %w", expression, err)
		}
		if b, ok := matched.(bool); ok && b {
			out = append(out, e)
		}
	}
	return out, nil
}
