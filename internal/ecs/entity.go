package ecs

// EntityID uniquely identifies an entity in the world. IDs are allocated
// from a strictly increasing counter and are never reused within a process
// lifetime, so a stale ID can never alias a newer entity.
type EntityID uint64

// NilEntity is the zero value — no valid entity has this ID.
const NilEntity EntityID = 0

// ComponentType is a small integer key used to store/retrieve components.
type ComponentType uint8

// Component is implemented by every data struct stored in the world.
// An entity holds at most one component of a given type.
type Component interface {
	Type() ComponentType
}
