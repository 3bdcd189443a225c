package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getshelfd/shelfd/pkg/resource"
	"github.com/getshelfd/shelfd/pkg/store"
	"github.com/getshelfd/shelfd/pkg/util"
)

func testCatalog(t *testing.T) *resource.Catalog {
	t.Helper()
	cat := resource.NewCatalog()
	require.NoError(t, cat.Register(&resource.Resource{Name: "books"}))
	require.NoError(t, cat.Register(&resource.Resource{Name: "authors"}))
	return cat
}

// bookstoreHandler serves minimal CRUD responses for any resource.
func bookstoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			if r.URL.Path == "/books" || r.URL.Path == "/authors" {
				_ = json.NewEncoder(w).Encode([]map[string]any{
					{"id": "1", "title": "first"},
					{"id": "2", "title": "second"},
				})
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"id": "1", "title": "first"})
		case http.MethodPost:
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			body["id"] = "9"
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(body)
		case http.MethodPatch:
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			_ = json.NewEncoder(w).Encode(body)
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}
}

func TestNewValidation(t *testing.T) {
	t.Parallel()

	cat := testCatalog(t)
	st := store.New(cat)

	tests := []struct {
		name       string
		baseURL    string
		catalog    *resource.Catalog
		dispatcher store.Dispatcher
		wantErr    string
	}{
		{
			name:       "empty catalog",
			baseURL:    "http://localhost:8080",
			catalog:    resource.NewCatalog(),
			dispatcher: st,
			wantErr:    "catalog has no resources",
		},
		{
			name:    "nil dispatcher",
			baseURL: "http://localhost:8080",
			catalog: cat,
			wantErr: "dispatcher cannot be nil",
		},
		{
			name:       "bad scheme",
			baseURL:    "ftp://localhost:8080",
			catalog:    cat,
			dispatcher: st,
			wantErr:    "invalid base URL",
		},
		{
			name:       "missing host",
			baseURL:    "http://",
			catalog:    cat,
			dispatcher: st,
			wantErr:    "invalid base URL",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := New(tt.baseURL, tt.catalog, tt.dispatcher, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewRejectsStoreWithoutUpdateAction(t *testing.T) {
	t.Parallel()

	cat := testCatalog(t)
	// The store only knows about books; the catalog also carries authors.
	partial := resource.NewCatalog()
	require.NoError(t, partial.Register(&resource.Resource{Name: "books"}))
	st := store.New(partial)

	_, err := New("http://localhost:8080", cat, st, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no update action for resource "authors"`)
}

func TestNewFreezesCatalog(t *testing.T) {
	t.Parallel()

	cat := testCatalog(t)
	_, err := New("http://localhost:8080", cat, store.New(cat), nil)
	require.NoError(t, err)

	err = cat.Register(&resource.Resource{Name: "orders"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frozen")
}

func TestResourceLookup(t *testing.T) {
	t.Parallel()

	cat := testCatalog(t)
	a, err := New("http://localhost:8080", cat, store.New(cat), nil)
	require.NoError(t, err)

	c, err := a.Resource("books")
	require.NoError(t, err)
	assert.Equal(t, "books", c.Name())
	assert.Equal(t, resource.Operations(), c.Operations())

	_, err = a.Resource("movies")
	require.Error(t, err)

	assert.Equal(t, []string{"authors", "books"}, a.Resources())
}

// TestEveryResourceGetsEveryOperation drives the full resource x operation
// grid through Do against a live test server.
func TestEveryResourceGetsEveryOperation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(bookstoreHandler())
	defer srv.Close()

	cat := testCatalog(t)
	st := store.New(cat)
	a, err := New(srv.URL, cat, st, nil)
	require.NoError(t, err)

	for _, pair := range util.CrossProduct(a.Resources(), resource.Operations()) {
		name, op := pair.First, pair.Second
		t.Run(name+"/"+string(op), func(t *testing.T) {
			var data map[string]any
			switch {
			case op == resource.Create:
				data = map[string]any{"title": "new"}
			case op.RequiresID():
				data = map[string]any{"id": "1"}
			}

			_, err := a.Do(context.Background(), name, op, data)
			require.NoError(t, err)
		})
	}
}

func TestDoUnknownResource(t *testing.T) {
	t.Parallel()

	cat := testCatalog(t)
	a, err := New("http://localhost:8080", cat, store.New(cat), nil)
	require.NoError(t, err)

	_, err = a.Do(context.Background(), "movies", resource.Read, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown resource "movies"`)
}

// plainDispatcher settles payloads without a creator registry, so the API
// must fall back to the naming convention for update actions.
type plainDispatcher struct {
	actions []store.Action
}

func (d *plainDispatcher) Dispatch(ctx context.Context, action store.Action) (store.Result, error) {
	payload := action.Payload
	if p, ok := payload.(store.Pending); ok {
		v, err := p.Await(ctx)
		if err != nil {
			return store.Result{}, err
		}
		payload = v
	}
	d.actions = append(d.actions, store.Action{Type: action.Type, Payload: payload})
	return store.Result{Value: payload}, nil
}

func TestUpdateActionNamingFallback(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(bookstoreHandler())
	defer srv.Close()

	cat := testCatalog(t)
	d := &plainDispatcher{}
	a, err := New(srv.URL, cat, d, nil)
	require.NoError(t, err)

	_, err = a.Do(context.Background(), "books", resource.Read, nil)
	require.NoError(t, err)

	require.Len(t, d.actions, 2)
	assert.Equal(t, "GET_BOOKS", d.actions[0].Type)
	assert.Equal(t, "UPDATE_BOOKS", d.actions[1].Type)
}
