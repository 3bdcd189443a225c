package store

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/getshelfd/shelfd/pkg/resource"
)

func testCatalog(t *testing.T) *resource.Catalog {
	t.Helper()
	c := resource.NewCatalog()
	for _, r := range []*resource.Resource{
		{Name: "books"},
		{Name: "authors"},
	} {
		if err := c.Register(r); err != nil {
			t.Fatal(err)
		}
	}
	return c
}

func TestNew_RegistryCompleteByConstruction(t *testing.T) {
	s := New(testCatalog(t))

	for _, name := range []string{"books", "authors"} {
		if !s.HasUpdateAction(name) {
			t.Errorf("missing update action for %q", name)
		}
	}

	names := s.CreatorNames()
	want := []string{"updateAuthors", "updateBooks"}
	if len(names) != len(want) {
		t.Fatalf("CreatorNames() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("CreatorNames() = %v, want %v", names, want)
		}
	}
}

func TestUpdateAction(t *testing.T) {
	s := New(testCatalog(t))

	creator, err := s.UpdateAction("books")
	if err != nil {
		t.Fatal(err)
	}
	action := creator(map[string]any{"id": "1"})
	if action.Type != "UPDATE_BOOKS" {
		t.Errorf("action type = %q, want UPDATE_BOOKS", action.Type)
	}

	_, err = s.UpdateAction("missing")
	var le *LookupError
	if !errors.As(err, &le) {
		t.Fatalf("error = %v, want LookupError", err)
	}
	if !strings.Contains(le.Error(), "missing") {
		t.Errorf("LookupError message %q does not name the key", le.Error())
	}
}

func TestCreator_ByCamelCaseName(t *testing.T) {
	s := New(testCatalog(t))

	creator, err := s.Creator("updateBooks")
	if err != nil {
		t.Fatal(err)
	}
	if creator(nil).Type != "UPDATE_BOOKS" {
		t.Error("creator produced wrong action type")
	}

	if _, err := s.Creator("updateMagazines"); err == nil {
		t.Error("expected LookupError for unknown creator name")
	}
}

func TestDispatch_CommitIDKeyedMap(t *testing.T) {
	s := New(testCatalog(t))

	payload := map[string]any{
		"1": map[string]any{"id": float64(1), "title": "Orlando"},
		"2": map[string]any{"id": float64(2), "title": "The Waves"},
	}
	res, err := s.Dispatch(context.Background(), Action{Type: "UPDATE_BOOKS", Payload: payload})
	if err != nil {
		t.Fatal(err)
	}
	if res.Value == nil {
		t.Fatal("dispatch result has no value")
	}
	if s.Count("books") != 2 {
		t.Fatalf("Count = %d, want 2", s.Count("books"))
	}
	if _, ok := s.Entity("books", "2"); !ok {
		t.Error("entity 2 not committed")
	}
}

func TestDispatch_CommitSingleEntity(t *testing.T) {
	s := New(testCatalog(t))

	entity := map[string]any{"id": float64(5), "title": "Flush"}
	if _, err := s.Dispatch(context.Background(), Action{Type: "UPDATE_BOOKS", Payload: entity}); err != nil {
		t.Fatal(err)
	}

	got, ok := s.Entity("books", "5")
	if !ok {
		t.Fatal("entity 5 not committed")
	}
	if got.(map[string]any)["title"] != "Flush" {
		t.Errorf("entity = %v", got)
	}
}

func TestDispatch_CommitDeletion(t *testing.T) {
	s := New(testCatalog(t))
	ctx := context.Background()

	if _, err := s.Dispatch(ctx, Action{Type: "UPDATE_BOOKS", Payload: map[string]any{"id": "5", "title": "Flush"}}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Dispatch(ctx, Action{Type: "UPDATE_BOOKS", Payload: Deletion{ID: "5"}}); err != nil {
		t.Fatal(err)
	}
	if s.Count("books") != 0 {
		t.Error("deletion did not remove the entity")
	}
}

// pendingPayload settles to a fixed value or error, recording whether it
// was awaited.
type pendingPayload struct {
	value   any
	err     error
	awaited bool
}

func (p *pendingPayload) Await(ctx context.Context) (any, error) {
	p.awaited = true
	return p.value, p.err
}

func TestDispatch_AwaitsPendingPayload(t *testing.T) {
	s := New(testCatalog(t))

	p := &pendingPayload{value: map[string]any{"id": "9", "title": "Night and Day"}}
	res, err := s.Dispatch(context.Background(), Action{Type: "UPDATE_BOOKS", Payload: p})
	if err != nil {
		t.Fatal(err)
	}
	if !p.awaited {
		t.Error("pending payload was not awaited")
	}
	if res.Value.(map[string]any)["title"] != "Night and Day" {
		t.Errorf("result value = %v", res.Value)
	}
	if _, ok := s.Entity("books", "9"); !ok {
		t.Error("settled payload not committed")
	}
}

func TestDispatch_PendingError(t *testing.T) {
	s := New(testCatalog(t))
	obs := NewMetricsObserver()
	s.observer = obs

	p := &pendingPayload{err: errors.New("boom")}
	_, err := s.Dispatch(context.Background(), Action{Type: "UPDATE_BOOKS", Payload: p})
	if err == nil {
		t.Fatal("expected error from failed pending payload")
	}
	if s.Count("books") != 0 {
		t.Error("failed payload must not be committed")
	}
	if obs.Snapshot().ErrorCount != 1 {
		t.Error("observer did not record the error")
	}
}

func TestDispatch_TrackingActionIsNotReduced(t *testing.T) {
	s := New(testCatalog(t))

	res, err := s.Dispatch(context.Background(), Action{
		Type:    TrackingActionType("PATCH", "books"),
		Payload: map[string]any{"id": "1"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Value == nil {
		t.Error("tracking dispatch should still resolve the payload")
	}
	if s.Count("books") != 0 {
		t.Error("tracking action must not touch the cache")
	}
}

func TestActionTypeDerivation(t *testing.T) {
	if got := UpdateActionType("books"); got != "UPDATE_BOOKS" {
		t.Errorf("UpdateActionType = %q", got)
	}
	if got := TrackingActionType("get", "reading_list"); got != "GET_READING_LIST" {
		t.Errorf("TrackingActionType = %q", got)
	}
}

func TestSeed(t *testing.T) {
	c := resource.NewCatalog()
	if err := c.Register(&resource.Resource{
		Name: "books",
		Seed: []map[string]any{
			{"id": "b1", "title": "Orlando"},
			{"id": "b2", "title": "The Waves"},
		},
	}); err != nil {
		t.Fatal(err)
	}

	s := New(c)
	if err := s.Seed(c); err != nil {
		t.Fatal(err)
	}
	if s.Count("books") != 2 {
		t.Fatalf("Count = %d, want 2", s.Count("books"))
	}
}

func TestSeed_DuplicateID(t *testing.T) {
	c := resource.NewCatalog()
	if err := c.Register(&resource.Resource{
		Name: "books",
		Seed: []map[string]any{
			{"id": "dup"},
			{"id": "dup"},
		},
	}); err != nil {
		t.Fatal(err)
	}

	s := New(c)
	err := s.Seed(c)
	if err == nil || !strings.Contains(err.Error(), "duplicate id") {
		t.Fatalf("error = %v, want duplicate id", err)
	}
}

func TestSeed_MissingID(t *testing.T) {
	c := resource.NewCatalog()
	if err := c.Register(&resource.Resource{
		Name: "books",
		Seed: []map[string]any{{"title": "no id"}},
	}); err != nil {
		t.Fatal(err)
	}

	s := New(c)
	if err := s.Seed(c); err == nil {
		t.Fatal("expected error for seed entity without id")
	}
}

func TestClear(t *testing.T) {
	s := New(testCatalog(t))
	ctx := context.Background()

	if _, err := s.Dispatch(ctx, Action{Type: "UPDATE_BOOKS", Payload: map[string]any{"id": "1"}}); err != nil {
		t.Fatal(err)
	}
	s.Clear()
	if s.Count("books") != 0 {
		t.Error("Clear did not empty the cache")
	}
	if !s.HasUpdateAction("books") {
		t.Error("Clear must keep registrations")
	}
}

func TestList_SortedByID(t *testing.T) {
	s := New(testCatalog(t))
	ctx := context.Background()

	payload := map[string]any{
		"b": map[string]any{"id": "b"},
		"a": map[string]any{"id": "a"},
		"c": map[string]any{"id": "c"},
	}
	if _, err := s.Dispatch(ctx, Action{Type: "UPDATE_BOOKS", Payload: payload}); err != nil {
		t.Fatal(err)
	}

	list := s.List("books")
	ids := make([]string, len(list))
	for i, e := range list {
		ids[i] = e.(map[string]any)["id"].(string)
	}
	if ids[0] != "a" || ids[1] != "b" || ids[2] != "c" {
		t.Errorf("List order = %v, want [a b c]", ids)
	}
}
