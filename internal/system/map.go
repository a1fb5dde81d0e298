package system

// Map is the terrain collaborator consumed by the simulation systems.
// *gamemap.GameMap satisfies it; tests substitute small fixtures. Both
// predicates must tolerate out-of-bounds coordinates by returning false,
// and the systems additionally bounds-check against Size before querying.
type Map interface {
	Size() (width, height int)
	IsWalkable(x, y int) bool
	IsTransparent(x, y int) bool
}
