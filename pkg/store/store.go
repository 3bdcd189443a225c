package store

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/getshelfd/shelfd/pkg/logging"
	"github.com/getshelfd/shelfd/pkg/resource"
	"github.com/getshelfd/shelfd/pkg/util"
)

// Store is the client-side state container. It is safe for concurrent use;
// no ordering is guaranteed between concurrent dispatches for the same
// resource (last-resolved dispatch wins).
type Store struct {
	mu       sync.RWMutex
	entities map[string]map[string]any // resource name -> id -> entity
	idFields map[string]string         // resource name -> id field
	byType   map[string]string         // update action type -> resource name
	creators map[string]string         // camel-case creator name -> resource name

	log      *slog.Logger
	observer Observer
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the operational logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// WithObserver sets the dispatch observer.
func WithObserver(o Observer) Option {
	return func(s *Store) {
		if o != nil {
			s.observer = o
		}
	}
}

// New builds a store from a resource catalog. One update action type and
// one named action creator are registered per resource, so the registry is
// complete by construction.
func New(catalog *resource.Catalog, opts ...Option) *Store {
	s := &Store{
		entities: make(map[string]map[string]any),
		idFields: make(map[string]string),
		byType:   make(map[string]string),
		creators: make(map[string]string),
		log:      logging.Nop(),
		observer: &NoopObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, r := range catalog.Resources() {
		s.entities[r.Name] = make(map[string]any)
		s.idFields[r.Name] = r.IDField
		s.byType[UpdateActionType(r.Name)] = r.Name
		s.creators[util.CamelJoin("update", r.Name)] = r.Name
	}
	return s
}

// HasUpdateAction reports whether the store holds an update action for the
// resource. The API factory checks this for every catalog resource at
// construction time.
func (s *Store) HasUpdateAction(resourceName string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entities[resourceName]
	return ok
}

// UpdateAction returns the named update-action creator for a resource:
// the callable that wraps a payload into the resource's update action.
func (s *Store) UpdateAction(resourceName string) (func(payload any) Action, error) {
	s.mu.RLock()
	_, ok := s.entities[resourceName]
	s.mu.RUnlock()
	if !ok {
		return nil, &LookupError{Name: resourceName}
	}
	actionType := UpdateActionType(resourceName)
	return func(payload any) Action {
		return Action{Type: actionType, Payload: payload}
	}, nil
}

// Creator looks up an action creator by its camel-case name, e.g.
// "updateBooks". This is the registry the naming convention resolves
// against; an absent name yields a LookupError.
func (s *Store) Creator(name string) (func(payload any) Action, error) {
	s.mu.RLock()
	resourceName, ok := s.creators[name]
	s.mu.RUnlock()
	if !ok {
		return nil, &LookupError{Name: name}
	}
	return s.UpdateAction(resourceName)
}

// CreatorNames returns the registered action-creator names, sorted.
func (s *Store) CreatorNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.creators))
	for name := range s.creators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch resolves the action's payload (awaiting Pending payloads),
// reduces update actions into the entity caches, and returns the settled
// value. Tracking actions reduce to nothing but are observed and logged.
func (s *Store) Dispatch(ctx context.Context, action Action) (Result, error) {
	payload := action.Payload
	if p, ok := payload.(Pending); ok {
		s.observer.OnDispatch(action.Type, true)
		v, err := p.Await(ctx)
		if err != nil {
			s.observer.OnError(action.Type, err)
			return Result{}, err
		}
		payload = v
	} else {
		s.observer.OnDispatch(action.Type, false)
	}

	s.mu.RLock()
	resourceName, isUpdate := s.byType[action.Type]
	s.mu.RUnlock()

	if isUpdate {
		start := time.Now()
		count, err := s.commit(resourceName, payload)
		if err != nil {
			s.observer.OnError(action.Type, err)
			return Result{}, err
		}
		s.observer.OnCommit(resourceName, count, time.Since(start))
		s.log.Debug("committed", "action", action.Type, "resource", resourceName, "entities", count)
	} else {
		s.log.Debug("dispatched", "action", action.Type)
	}

	return Result{Value: payload}, nil
}

// commit merges a settled update payload into a resource cache. Payload
// shapes: an id-keyed entity map (normalized list response), a single
// entity carrying the resource's id field, a Deletion, or nil (no-op).
// Returns the number of entities touched.
func (s *Store) commit(resourceName string, payload any) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cache := s.entities[resourceName]
	idField := s.idFields[resourceName]

	switch v := payload.(type) {
	case nil:
		return 0, nil
	case Deletion:
		if _, ok := cache[v.ID]; !ok {
			return 0, nil
		}
		delete(cache, v.ID)
		return 1, nil
	case map[string]any:
		// A payload carrying the id field is a single entity; anything else
		// is an id-keyed map produced by normalization.
		if _, single := v[idField]; single {
			key, ok := resource.IDKey(v[idField])
			if !ok {
				return 0, fmt.Errorf("resource %q: entity has unusable %q field", resourceName, idField)
			}
			cache[key] = v
			return 1, nil
		}
		for key, entity := range v {
			cache[key] = entity
		}
		return len(v), nil
	default:
		return 0, fmt.Errorf("resource %q: cannot reduce payload of type %T", resourceName, payload)
	}
}

// Entity returns one cached entity by id.
func (s *Store) Entity(resourceName, id string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cache, ok := s.entities[resourceName]
	if !ok {
		return nil, false
	}
	e, ok := cache[id]
	return e, ok
}

// Entities returns a copy of the resource's id-keyed cache.
func (s *Store) Entities(resourceName string) map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cache := s.entities[resourceName]
	out := make(map[string]any, len(cache))
	for k, v := range cache {
		out[k] = v
	}
	return out
}

// List returns the resource's cached entities sorted by id for
// deterministic output.
func (s *Store) List(resourceName string) []any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cache := s.entities[resourceName]
	ids := make([]string, 0, len(cache))
	for id := range cache {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]any, 0, len(ids))
	for _, id := range ids {
		out = append(out, cache[id])
	}
	return out
}

// Count returns the number of cached entities for a resource.
func (s *Store) Count(resourceName string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entities[resourceName])
}

// Resources returns the resource names known to the store, sorted.
func (s *Store) Resources() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.entities))
	for name := range s.entities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clear empties every resource cache but keeps registrations.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name := range s.entities {
		s.entities[name] = make(map[string]any)
	}
}

// Seed loads each catalog resource's seed entities into the cache.
// Seed entities must carry their id field; duplicate ids are rejected.
func (s *Store) Seed(catalog *resource.Catalog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range catalog.Resources() {
		cache, ok := s.entities[r.Name]
		if !ok {
			return &LookupError{Name: r.Name}
		}
		for i, entity := range r.Seed {
			key, ok := r.EntityID(entity)
			if !ok {
				return fmt.Errorf("resource %q: seed entity at index %d has no usable %q field", r.Name, i, r.IDField)
			}
			if _, exists := cache[key]; exists {
				return fmt.Errorf("resource %q: duplicate id %q in seed data at index %d", r.Name, key, i)
			}
			e := make(map[string]any, len(entity))
			for k, v := range entity {
				e[k] = v
			}
			cache[key] = e
		}
	}
	return nil
}
