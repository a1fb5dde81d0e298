package spatial

import (
	"gridfall/internal/component"
	"gridfall/internal/ecs"
)

// Cell is an integer grid coordinate, the key of the index.
type Cell struct {
	X, Y int
}

// Index answers "what is located where" queries. It observes the world's
// component notifications and keeps a cell→entity mapping, its reverse, and
// one category set per tracked tag — no periodic rebuild required. A cell
// entry is pruned as soon as its set empties.
type Index struct {
	world    *ecs.World
	byCell   map[Cell]map[ecs.EntityID]struct{}
	cellOf   map[ecs.EntityID]Cell
	players  map[ecs.EntityID]struct{}
	monsters map[ecs.EntityID]struct{}
	items    map[ecs.EntityID]struct{}
}

// NewIndex creates an Index and registers it as a listener on w. Entities
// that already exist in w are not picked up — call Rebuild for bulk loads.
func NewIndex(w *ecs.World) *Index {
	ix := &Index{
		world:    w,
		byCell:   make(map[Cell]map[ecs.EntityID]struct{}),
		cellOf:   make(map[ecs.EntityID]Cell),
		players:  make(map[ecs.EntityID]struct{}),
		monsters: make(map[ecs.EntityID]struct{}),
		items:    make(map[ecs.EntityID]struct{}),
	}
	w.RegisterListener(ix)
	return ix
}

// OnComponentChange keeps the index in lockstep with the store. Tag and
// position handling are independent, so attachment order does not matter.
func (ix *Index) OnComponentChange(kind ecs.ChangeKind, id ecs.EntityID, t ecs.ComponentType, c ecs.Component) {
	switch t {
	case component.CPosition:
		if kind == ecs.ChangeRemove {
			ix.removePosition(id)
			return
		}
		pos := c.(component.Position)
		ix.place(id, Cell{X: pos.X, Y: pos.Y})
	case component.CTagPlayer:
		ix.setMembership(ix.players, id, kind)
	case component.CTagMonster:
		ix.setMembership(ix.monsters, id, kind)
	case component.CTagItem:
		ix.setMembership(ix.items, id, kind)
	}
}

func (ix *Index) place(id ecs.EntityID, cell Cell) {
	if old, ok := ix.cellOf[id]; ok {
		if old == cell {
			return
		}
		ix.evict(id, old)
	}
	set := ix.byCell[cell]
	if set == nil {
		set = make(map[ecs.EntityID]struct{})
		ix.byCell[cell] = set
	}
	set[id] = struct{}{}
	ix.cellOf[id] = cell
}

func (ix *Index) removePosition(id ecs.EntityID) {
	old, ok := ix.cellOf[id]
	if !ok {
		return
	}
	ix.evict(id, old)
	delete(ix.cellOf, id)
}

func (ix *Index) evict(id ecs.EntityID, cell Cell) {
	set := ix.byCell[cell]
	if set == nil {
		return
	}
	delete(set, id)
	if len(set) == 0 {
		delete(ix.byCell, cell)
	}
}

func (ix *Index) setMembership(set map[ecs.EntityID]struct{}, id ecs.EntityID, kind ecs.ChangeKind) {
	if kind == ecs.ChangeRemove {
		delete(set, id)
	} else {
		set[id] = struct{}{}
	}
}

// Rebuild clears and repopulates every structure by scanning the world
// directly. Intended for bulk loads (a freshly populated floor); normal
// operation never needs it.
func (ix *Index) Rebuild() {
	ix.byCell = make(map[Cell]map[ecs.EntityID]struct{})
	ix.cellOf = make(map[ecs.EntityID]Cell)
	ix.players = make(map[ecs.EntityID]struct{})
	ix.monsters = make(map[ecs.EntityID]struct{})
	ix.items = make(map[ecs.EntityID]struct{})

	for _, id := range ix.world.Query(component.CPosition) {
		pos := ix.world.Get(id, component.CPosition).(component.Position)
		ix.place(id, Cell{X: pos.X, Y: pos.Y})
	}
	for _, id := range ix.world.Query(component.CTagPlayer) {
		ix.players[id] = struct{}{}
	}
	for _, id := range ix.world.Query(component.CTagMonster) {
		ix.monsters[id] = struct{}{}
	}
	for _, id := range ix.world.Query(component.CTagItem) {
		ix.items[id] = struct{}{}
	}
}

// CellOf returns the indexed cell of an entity.
func (ix *Index) CellOf(id ecs.EntityID) (Cell, bool) {
	c, ok := ix.cellOf[id]
	return c, ok
}

// EntitiesAt returns every entity at cell c as a fresh slice, safe to
// iterate while mutating the world.
func (ix *Index) EntitiesAt(c Cell) []ecs.EntityID {
	set := ix.byCell[c]
	if len(set) == 0 {
		return nil
	}
	out := make([]ecs.EntityID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}

// EntitiesOfKindAt intersects the entities at c with the category set for
// the given tag type. Untracked tags yield an empty result.
func (ix *Index) EntitiesOfKindAt(c Cell, tag ecs.ComponentType) []ecs.EntityID {
	set := ix.byCell[c]
	cat := ix.category(tag)
	if len(set) == 0 || len(cat) == 0 {
		return nil
	}
	var out []ecs.EntityID
	for id := range set {
		if _, ok := cat[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

func (ix *Index) category(tag ecs.ComponentType) map[ecs.EntityID]struct{} {
	switch tag {
	case component.CTagPlayer:
		return ix.players
	case component.CTagMonster:
		return ix.monsters
	case component.CTagItem:
		return ix.items
	}
	return nil
}

// IsOccupied reports whether a blocking entity (monster or player) occupies
// c. With ignoreItems=false any entity at all counts. Cells outside the map
// are simply unoccupied.
func (ix *Index) IsOccupied(c Cell, ignoreItems bool) bool {
	set := ix.byCell[c]
	if len(set) == 0 {
		return false
	}
	if !ignoreItems {
		return true
	}
	for id := range set {
		if _, ok := ix.monsters[id]; ok {
			return true
		}
		if _, ok := ix.players[id]; ok {
			return true
		}
	}
	return false
}

// OccupiedCells returns the set of cells occupied by blocking entities.
func (ix *Index) OccupiedCells() map[Cell]struct{} {
	occ := make(map[Cell]struct{}, len(ix.monsters)+len(ix.players))
	for id := range ix.monsters {
		if c, ok := ix.cellOf[id]; ok {
			occ[c] = struct{}{}
		}
	}
	for id := range ix.players {
		if c, ok := ix.cellOf[id]; ok {
			occ[c] = struct{}{}
		}
	}
	return occ
}
