package store

import (
	"context"
	"errors"
	"testing"

	"github.com/getshelfd/shelfd/pkg/resource"
)

func seededStore(t *testing.T) *Store {
	t.Helper()
	c := resource.NewCatalog()
	if err := c.Register(&resource.Resource{
		Name: "books",
		Seed: []map[string]any{
			{"id": "b1", "title": "Orlando", "price": 8.5, "author": "Woolf"},
			{"id": "b2", "title": "The Waves", "price": 12.0, "author": "Woolf"},
			{"id": "b3", "title": "Dubliners", "price": 6.0, "author": "Joyce"},
		},
	}); err != nil {
		t.Fatal(err)
	}
	s := New(c)
	if err := s.Seed(c); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestQuery_JSONPath(t *testing.T) {
	s := seededStore(t)

	got, err := s.Query("books", "$[?(@.price < 10)].title")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("query returned %d results, want 2: %v", len(got), got)
	}
	titles := map[any]bool{got[0]: true, got[1]: true}
	if !titles["Orlando"] || !titles["Dubliners"] {
		t.Errorf("query results = %v", got)
	}
}

func TestQuery_InvalidPath(t *testing.T) {
	s := seededStore(t)
	if _, err := s.Query("books", "$[?("); err == nil {
		t.Fatal("expected error for invalid JSONPath")
	}
}

func TestQuery_UnknownResource(t *testing.T) {
	s := seededStore(t)
	_, err := s.Query("magazines", "$")
	var le *LookupError
	if !errors.As(err, &le) {
		t.Fatalf("error = %v, want LookupError", err)
	}
}

func TestFilter_Expression(t *testing.T) {
	s := seededStore(t)

	got, err := s.Filter("books", `author == "Woolf" && price < 10`)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("filter returned %d results, want 1: %v", len(got), got)
	}
	if got[0].(map[string]any)["title"] != "Orlando" {
		t.Errorf("filter result = %v", got[0])
	}
}

func TestFilter_NoMatches(t *testing.T) {
	s := seededStore(t)

	got, err := s.Filter("books", `price > 100`)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("filter returned %v, want none", got)
	}
}

func TestFilter_InvalidExpression(t *testing.T) {
	s := seededStore(t)
	if _, err := s.Filter("books", "price <"); err == nil {
		t.Fatal("expected compile error")
	}
}

func TestFilter_AfterDispatch(t *testing.T) {
	s := seededStore(t)
	ctx := context.Background()

	// A committed update is immediately visible to filters.
	if _, err := s.Dispatch(ctx, Action{
		Type:    "UPDATE_BOOKS",
		Payload: map[string]any{"id": "b4", "title": "Ulysses", "price": 15.0, "author": "Joyce"},
	}); err != nil {
		t.Fatal(err)
	}

	got, err := s.Filter("books", `author == "Joyce"`)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("filter returned %d results, want 2", len(got))
	}
}
