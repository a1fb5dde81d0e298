package ecs

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownEntity is returned when a mutating operation names an entity
// that was never created or has been destroyed. Read operations never
// return it — querying an unknown entity is not an error.
var ErrUnknownEntity = errors.New("unknown entity")

// World is the central entity registry and component store. Derived
// structures (the spatial index, category sets) stay consistent by
// observing it through the Listener interface; every mutation below is the
// sole place notifications fire.
type World struct {
	nextID     EntityID
	alive      map[EntityID]bool
	components map[ComponentType]map[EntityID]Component
	listeners  []Listener
}

// NewWorld creates an empty World.
func NewWorld() *World {
	return &World{
		nextID:     1,
		alive:      make(map[EntityID]bool),
		components: make(map[ComponentType]map[EntityID]Component),
	}
}

// CreateEntity mints a new entity ID and marks it alive.
func (w *World) CreateEntity() EntityID {
	id := w.nextID
	w.nextID++
	w.alive[id] = true
	return id
}

// DestroyEntity removes every component the entity holds, firing one remove
// notification per component in ascending component-type order, then marks
// the entity dead. No-op for unknown entities. The ID is never reused.
func (w *World) DestroyEntity(id EntityID) {
	if !w.alive[id] {
		return
	}
	// Ascending type order keeps the notification sequence deterministic;
	// map iteration order would not be.
	var held []ComponentType
	for t, store := range w.components {
		if _, ok := store[id]; ok {
			held = append(held, t)
		}
	}
	sort.Slice(held, func(i, j int) bool { return held[i] < held[j] })
	for _, t := range held {
		c := w.components[t][id]
		delete(w.components[t], id)
		w.notify(ChangeRemove, id, t, c)
	}
	w.alive[id] = false
}

// Alive reports whether the entity is alive.
func (w *World) Alive(id EntityID) bool {
	return w.alive[id]
}

// Add attaches a component to an entity, replacing any existing component
// of the same type. Listeners observe ChangeAdd for a fresh attach and
// ChangeUpdate for a replace, after the store is updated. Attaching to an
// unknown entity is a caller bug and returns ErrUnknownEntity.
func (w *World) Add(id EntityID, c Component) error {
	if !w.alive[id] {
		return fmt.Errorf("ecs: add %T to entity %d: %w", c, id, ErrUnknownEntity)
	}
	t := c.Type()
	store := w.components[t]
	if store == nil {
		store = make(map[EntityID]Component)
		w.components[t] = store
	}
	_, replacing := store[id]
	store[id] = c
	if replacing {
		w.notify(ChangeUpdate, id, t, c)
	} else {
		w.notify(ChangeAdd, id, t, c)
	}
	return nil
}

// Remove detaches a component from an entity and fires ChangeRemove.
// No-op when the entity or component is absent.
func (w *World) Remove(id EntityID, t ComponentType) {
	store := w.components[t]
	if store == nil {
		return
	}
	c, ok := store[id]
	if !ok {
		return
	}
	delete(store, id)
	w.notify(ChangeRemove, id, t, c)
}

// Get returns the component of the given type for entity id, or nil.
// Unknown entities are tolerated.
func (w *World) Get(id EntityID, t ComponentType) Component {
	store := w.components[t]
	if store == nil {
		return nil
	}
	return store[id]
}

// Has reports whether entity id has a component of the given type.
func (w *World) Has(id EntityID, t ComponentType) bool {
	return w.Get(id, t) != nil
}

// NotifyChanged re-fires a ChangeUpdate for a component whose fields were
// mutated in place without going through Add. Simulation code that holds a
// pointer component must call this after mutating it — skipping the call
// silently desynchronizes every derived structure. No-op when the entity
// does not hold the component.
func (w *World) NotifyChanged(id EntityID, t ComponentType) {
	store := w.components[t]
	if store == nil {
		return
	}
	c, ok := store[id]
	if !ok {
		return
	}
	w.notify(ChangeUpdate, id, t, c)
}

// Query returns all alive entities that have every listed component type.
// The result is a fresh slice, safe to iterate while mutating the world.
// An empty type list yields an empty result.
func (w *World) Query(types ...ComponentType) []EntityID {
	if len(types) == 0 {
		return nil
	}
	// Use the smallest store as the candidate set.
	smallest := types[0]
	for _, t := range types[1:] {
		if len(w.components[t]) < len(w.components[smallest]) {
			smallest = t
		}
	}
	store := w.components[smallest]
	if store == nil {
		return nil
	}
	var result []EntityID
	for id := range store {
		if !w.alive[id] {
			continue
		}
		match := true
		for _, t := range types {
			if t == smallest {
				continue
			}
			if !w.Has(id, t) {
				match = false
				break
			}
		}
		if match {
			result = append(result, id)
		}
	}
	return result
}
