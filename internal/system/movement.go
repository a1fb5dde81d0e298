package system

import (
	"gridfall/internal/component"
	"gridfall/internal/ecs"
	"gridfall/internal/spatial"
)

// MoveResult describes the outcome of a TryMove call.
type MoveResult uint8

const (
	MoveOK      MoveResult = iota // position updated
	MoveBlocked                   // wall, out-of-bounds, or occupied
	MoveAttack                    // bumped a monster
)

// TryMove attempts to move entity id by (dx, dy). A monster at the
// destination produces MoveAttack with the target entity; walls and
// occupied cells block. A successful move is written through the store so
// the spatial index observes it.
func TryMove(w *ecs.World, m Map, idx *spatial.Index, id ecs.EntityID, dx, dy int) (MoveResult, ecs.EntityID) {
	posComp := w.Get(id, component.CPosition)
	if posComp == nil {
		return MoveBlocked, ecs.NilEntity
	}
	pos := posComp.(component.Position)
	dest := spatial.Cell{X: pos.X + dx, Y: pos.Y + dy}

	if targets := idx.EntitiesOfKindAt(dest, component.CTagMonster); len(targets) > 0 {
		return MoveAttack, targets[0]
	}
	if !m.IsWalkable(dest.X, dest.Y) || idx.IsOccupied(dest, true) {
		return MoveBlocked, ecs.NilEntity
	}
	if err := w.Add(id, component.Position{X: dest.X, Y: dest.Y}); err != nil {
		return MoveBlocked, ecs.NilEntity
	}
	return MoveOK, ecs.NilEntity
}
