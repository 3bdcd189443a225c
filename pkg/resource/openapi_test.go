package resource

import (
	"strings"
	"testing"
)

const bookstoreSpec = `
openapi: 3.0.0
info:
  title: Bookstore
  version: "1.0"
paths:
  /books:
    get:
      responses:
        "200": {description: ok}
    post:
      responses:
        "201": {description: created}
  /books/{id}:
    parameters:
      - name: id
        in: path
        required: true
        schema: {type: string}
    get:
      responses:
        "200": {description: ok}
    patch:
      responses:
        "200": {description: ok}
    delete:
      responses:
        "204": {description: deleted}
  /authors:
    get:
      responses:
        "200": {description: ok}
  /books/{id}/reviews:
    get:
      responses:
        "200": {description: ok}
`

func TestFromOpenAPIData(t *testing.T) {
	catalog, err := FromOpenAPIData([]byte(bookstoreSpec))
	if err != nil {
		t.Fatalf("FromOpenAPIData: %v", err)
	}

	books, ok := catalog.Get("books")
	if !ok {
		t.Fatal("books not derived")
	}
	wantOps := []Operation{Create, Read, Get, Update, Delete}
	if len(books.Operations) != len(wantOps) {
		t.Fatalf("books operations = %v, want %v", books.Operations, wantOps)
	}
	for i, op := range wantOps {
		if books.Operations[i] != op {
			t.Fatalf("books operations = %v, want canonical order %v", books.Operations, wantOps)
		}
	}

	authors, ok := catalog.Get("authors")
	if !ok {
		t.Fatal("authors not derived")
	}
	if len(authors.Operations) != 1 || authors.Operations[0] != Read {
		t.Errorf("authors operations = %v, want [read]", authors.Operations)
	}

	// Nested path /books/{id}/reviews must not produce a resource.
	if _, ok := catalog.Get("reviews"); ok {
		t.Error("nested path must not derive a resource")
	}
}

func TestFromOpenAPIData_NoResources(t *testing.T) {
	spec := `
openapi: 3.0.0
info: {title: Empty, version: "1.0"}
paths: {}
`
	_, err := FromOpenAPIData([]byte(spec))
	if err == nil || !strings.Contains(err.Error(), "no CRUD resources") {
		t.Fatalf("error = %v, want no CRUD resources", err)
	}
}
