package ecs

// ChangeKind distinguishes the component mutations a listener can observe.
type ChangeKind uint8

const (
	ChangeAdd    ChangeKind = iota // component attached for the first time
	ChangeUpdate                   // component replaced or mutated in place
	ChangeRemove                   // component detached
)

// Listener receives a notification for every component mutation in the
// world. Dispatch is synchronous and in registration order, and always
// happens after the world's own bookkeeping — a listener reading the world
// back sees the post-mutation state.
type Listener interface {
	OnComponentChange(kind ChangeKind, id EntityID, t ComponentType, c Component)
}

// RegisterListener appends l to the dispatch list. There is no unregister;
// listeners live as long as the world.
func (w *World) RegisterListener(l Listener) {
	w.listeners = append(w.listeners, l)
}

func (w *World) notify(kind ChangeKind, id EntityID, t ComponentType, c Component) {
	for _, l := range w.listeners {
		l.OnComponentChange(kind, id, t, c)
	}
}
