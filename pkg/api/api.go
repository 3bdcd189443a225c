package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/getshelfd/shelfd/pkg/auth"
	"github.com/getshelfd/shelfd/pkg/logging"
	"github.com/getshelfd/shelfd/pkg/resource"
	"github.com/getshelfd/shelfd/pkg/store"
)

// actionChecker is implemented by stores that can confirm an update action
// exists for a resource. New uses it to fail fast on catalog/store
// mismatches instead of surfacing them at call time.
type actionChecker interface {
	HasUpdateAction(resourceName string) bool
}

// actionRegistry is implemented by stores that expose their update-action
// creators. Dispatchers without it get actions built from the naming
// convention directly.
type actionRegistry interface {
	UpdateAction(resourceName string) (func(payload any) store.Action, error)
}

// API holds one CRUD client per catalog resource. It is immutable after New.
type API struct {
	baseURL    *url.URL
	catalog    *resource.Catalog
	dispatcher store.Dispatcher
	creds      auth.TokenSource
	httpClient *http.Client
	log        *slog.Logger
	userAgent  string
	retry      RetryPolicy
	clients    map[string]*ResourceClient
}

// New builds the API client set for a catalog. The catalog is frozen; the
// dispatcher is checked for an update action per resource when it supports
// the check. Credentials default to anonymous.
func New(baseURL string, catalog *resource.Catalog, dispatcher store.Dispatcher, creds auth.TokenSource, opts ...Option) (*API, error) {
	if catalog == nil || catalog.Len() == 0 {
		return nil, errors.New("catalog has no resources")
	}
	if dispatcher == nil {
		return nil, errors.New("dispatcher cannot be nil")
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: need http(s)://host", baseURL)
	}

	if creds == nil {
		creds = auth.None()
	}

	a := &API{
		baseURL:    u,
		catalog:    catalog,
		dispatcher: dispatcher,
		creds:      creds,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        logging.Nop(),
		userAgent:  "shelfd",
		retry:      DefaultRetryPolicy(),
		clients:    make(map[string]*ResourceClient),
	}
	for _, opt := range opts {
		opt(a)
	}

	if checker, ok := dispatcher.(actionChecker); ok {
		for _, name := range catalog.Names() {
			if !checker.HasUpdateAction(name) {
				return nil, fmt.Errorf("store has no update action for resource %q", name)
			}
		}
	}

	catalog.Freeze()
	for _, r := range catalog.Resources() {
		a.clients[r.Name] = &ResourceClient{api: a, res: r}
	}
	return a, nil
}

// Resource returns the client for a catalog resource.
func (a *API) Resource(name string) (*ResourceClient, error) {
	c, ok := a.clients[name]
	if !ok {
		return nil, fmt.Errorf("unknown resource %q", name)
	}
	return c, nil
}

// Resources returns the resource names the API serves, sorted.
func (a *API) Resources() []string {
	return a.catalog.Names()
}

// Do performs one operation against one resource by name. It is the
// dynamic entry point the CLI uses; typed callers go through Resource.
func (a *API) Do(ctx context.Context, resourceName string, op resource.Operation, data map[string]any, opts ...CallOption) (any, error) {
	c, err := a.Resource(resourceName)
	if err != nil {
		return nil, err
	}
	return c.Call(ctx, op, data, opts...)
}

// updateAction resolves the update-action creator for a resource, falling
// back to the naming convention for plain dispatchers.
func (a *API) updateAction(resourceName string) (func(payload any) store.Action, error) {
	if reg, ok := a.dispatcher.(actionRegistry); ok {
		return reg.UpdateAction(resourceName)
	}
	actionType := store.UpdateActionType(resourceName)
	return func(payload any) store.Action {
		return store.Action{Type: actionType, Payload: payload}
	}, nil
}
