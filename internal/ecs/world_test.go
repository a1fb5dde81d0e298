package ecs

import (
	"errors"
	"testing"
)

// stub components used only in tests
type testComp struct{ val int }

func (testComp) Type() ComponentType { return 1 }

type otherComp struct{}

func (otherComp) Type() ComponentType { return 2 }

type thirdComp struct{}

func (thirdComp) Type() ComponentType { return 3 }

// change records one notification received by recorder.
type change struct {
	kind ChangeKind
	id   EntityID
	t    ComponentType
	c    Component
}

// recorder is a Listener that stores every notification.
type recorder struct {
	changes []change
}

func (r *recorder) OnComponentChange(kind ChangeKind, id EntityID, t ComponentType, c Component) {
	r.changes = append(r.changes, change{kind: kind, id: id, t: t, c: c})
}

func TestCreateEntity(t *testing.T) {
	w := NewWorld()
	id := w.CreateEntity()
	if id == NilEntity {
		t.Fatal("expected non-nil entity ID")
	}
	if !w.Alive(id) {
		t.Fatal("expected entity to be alive after creation")
	}
}

func TestEntityIDsNeverReused(t *testing.T) {
	w := NewWorld()
	first := w.CreateEntity()
	w.DestroyEntity(first)

	second := w.CreateEntity()
	if second <= first {
		t.Fatalf("IDs must be strictly increasing: got %d after %d", second, first)
	}
	if w.Alive(first) {
		t.Fatal("destroyed entity must stay dead")
	}
}

func TestAddAndGetComponent(t *testing.T) {
	w := NewWorld()
	id := w.CreateEntity()
	if err := w.Add(id, testComp{val: 42}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	c := w.Get(id, ComponentType(1))
	if c == nil {
		t.Fatal("expected component, got nil")
	}
	tc, ok := c.(testComp)
	if !ok {
		t.Fatal("wrong component type returned")
	}
	if tc.val != 42 {
		t.Fatalf("expected val=42, got %d", tc.val)
	}
}

func TestAddUnknownEntityFails(t *testing.T) {
	w := NewWorld()
	if err := w.Add(EntityID(99), testComp{}); !errors.Is(err, ErrUnknownEntity) {
		t.Fatalf("expected ErrUnknownEntity, got %v", err)
	}

	id := w.CreateEntity()
	w.DestroyEntity(id)
	if err := w.Add(id, testComp{}); !errors.Is(err, ErrUnknownEntity) {
		t.Fatalf("expected ErrUnknownEntity for destroyed entity, got %v", err)
	}
}

func TestGetAndHasTolerateUnknownEntity(t *testing.T) {
	w := NewWorld()
	if w.Get(EntityID(7), ComponentType(1)) != nil {
		t.Error("Get on unknown entity must return nil")
	}
	if w.Has(EntityID(7), ComponentType(1)) {
		t.Error("Has on unknown entity must return false")
	}
}

func TestAddNotifiesAddThenUpdate(t *testing.T) {
	w := NewWorld()
	rec := &recorder{}
	w.RegisterListener(rec)

	id := w.CreateEntity()
	if err := w.Add(id, testComp{val: 1}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := w.Add(id, testComp{val: 2}); err != nil {
		t.Fatalf("Add (replace): %v", err)
	}

	if len(rec.changes) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(rec.changes))
	}
	if rec.changes[0].kind != ChangeAdd {
		t.Errorf("first attach must notify ChangeAdd, got %v", rec.changes[0].kind)
	}
	if rec.changes[1].kind != ChangeUpdate {
		t.Errorf("replace must notify ChangeUpdate, got %v", rec.changes[1].kind)
	}
	if rec.changes[1].c.(testComp).val != 2 {
		t.Error("notification must carry the new component value")
	}
}

// worldReader asserts from inside the callback that the store is already
// updated when listeners run.
type worldReader struct {
	w    *World
	t    *testing.T
	seen int
}

func (r *worldReader) OnComponentChange(kind ChangeKind, id EntityID, ct ComponentType, c Component) {
	r.seen++
	if kind == ChangeRemove {
		if r.w.Has(id, ct) {
			r.t.Error("store must be updated before listeners run (component still present)")
		}
		return
	}
	got := r.w.Get(id, ct)
	if got != c {
		r.t.Errorf("store must hold the notified value when listeners run: got %v, want %v", got, c)
	}
}

func TestStoreUpdatedBeforeNotification(t *testing.T) {
	w := NewWorld()
	rd := &worldReader{w: w, t: t}
	w.RegisterListener(rd)

	id := w.CreateEntity()
	w.Add(id, testComp{val: 5}) //nolint:errcheck
	w.Add(id, testComp{val: 6}) //nolint:errcheck
	w.Remove(id, ComponentType(1))

	if rd.seen != 3 {
		t.Fatalf("expected 3 notifications, got %d", rd.seen)
	}
}

func TestListenersRunInRegistrationOrder(t *testing.T) {
	w := NewWorld()
	var order []int
	w.RegisterListener(listenerFunc(func() { order = append(order, 1) }))
	w.RegisterListener(listenerFunc(func() { order = append(order, 2) }))

	id := w.CreateEntity()
	w.Add(id, testComp{}) //nolint:errcheck

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("listeners must run in registration order, got %v", order)
	}
}

// listenerFunc adapts a closure to the Listener interface for ordering tests.
type listenerFunc func()

func (f listenerFunc) OnComponentChange(ChangeKind, EntityID, ComponentType, Component) { f() }

func TestRemoveComponent(t *testing.T) {
	w := NewWorld()
	rec := &recorder{}
	w.RegisterListener(rec)

	id := w.CreateEntity()
	w.Add(id, testComp{val: 3}) //nolint:errcheck
	w.Remove(id, ComponentType(1))

	if w.Has(id, ComponentType(1)) {
		t.Fatal("component should be gone after Remove")
	}
	last := rec.changes[len(rec.changes)-1]
	if last.kind != ChangeRemove {
		t.Fatalf("Remove must notify ChangeRemove, got %v", last.kind)
	}
	if last.c.(testComp).val != 3 {
		t.Error("remove notification must carry the removed value")
	}

	// Removing an absent component is a silent no-op.
	before := len(rec.changes)
	w.Remove(id, ComponentType(1))
	w.Remove(EntityID(99), ComponentType(1))
	if len(rec.changes) != before {
		t.Error("removing an absent component must not notify")
	}
}

func TestDestroyEntityRemovesComponentsInTypeOrder(t *testing.T) {
	w := NewWorld()
	rec := &recorder{}
	w.RegisterListener(rec)

	id := w.CreateEntity()
	w.Add(id, thirdComp{}) //nolint:errcheck
	w.Add(id, testComp{})  //nolint:errcheck
	w.Add(id, otherComp{}) //nolint:errcheck

	rec.changes = nil
	w.DestroyEntity(id)

	if w.Alive(id) {
		t.Fatal("entity should not be alive after DestroyEntity")
	}
	if len(rec.changes) != 3 {
		t.Fatalf("expected 3 remove notifications, got %d", len(rec.changes))
	}
	for i, ch := range rec.changes {
		if ch.kind != ChangeRemove {
			t.Fatalf("destroy notification %d: got kind %v, want ChangeRemove", i, ch.kind)
		}
		if ch.t != ComponentType(i+1) {
			t.Errorf("destroy notifications must be in ascending type order: got %d at index %d", ch.t, i)
		}
	}

	// Destroying again is a no-op.
	rec.changes = nil
	w.DestroyEntity(id)
	if len(rec.changes) != 0 {
		t.Error("destroying a dead entity must not notify")
	}
}

func TestNotifyChanged(t *testing.T) {
	w := NewWorld()
	rec := &recorder{}
	w.RegisterListener(rec)

	id := w.CreateEntity()
	w.Add(id, testComp{val: 9}) //nolint:errcheck

	rec.changes = nil
	w.NotifyChanged(id, ComponentType(1))

	if len(rec.changes) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(rec.changes))
	}
	if rec.changes[0].kind != ChangeUpdate {
		t.Errorf("NotifyChanged must fire ChangeUpdate, got %v", rec.changes[0].kind)
	}
	if rec.changes[0].c.(testComp).val != 9 {
		t.Error("NotifyChanged must carry the stored value")
	}

	// Absent component or entity: silent no-op.
	rec.changes = nil
	w.NotifyChanged(id, ComponentType(2))
	w.NotifyChanged(EntityID(99), ComponentType(1))
	if len(rec.changes) != 0 {
		t.Error("NotifyChanged on absent component must not notify")
	}
}

func TestQueryFiltersCorrectly(t *testing.T) {
	w := NewWorld()

	both := w.CreateEntity()
	w.Add(both, testComp{})  //nolint:errcheck
	w.Add(both, otherComp{}) //nolint:errcheck

	onlyA := w.CreateEntity()
	w.Add(onlyA, testComp{}) //nolint:errcheck

	results := w.Query(ComponentType(1), ComponentType(2))
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0] != both {
		t.Fatalf("expected entity %v in results, got %v", both, results[0])
	}

	if got := w.Query(); got != nil {
		t.Errorf("empty query must yield empty result, got %v", got)
	}
}

func TestQueryResultIsMaterialized(t *testing.T) {
	w := NewWorld()
	for i := 0; i < 5; i++ {
		id := w.CreateEntity()
		w.Add(id, testComp{val: i}) //nolint:errcheck
	}

	// Destroying entities while iterating the result must be safe.
	for _, id := range w.Query(ComponentType(1)) {
		w.DestroyEntity(id)
	}
	if got := len(w.Query(ComponentType(1))); got != 0 {
		t.Fatalf("expected all entities destroyed, %d left", got)
	}
}
