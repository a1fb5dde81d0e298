// Package factory constructs fully-populated game entities. All component
// writes go through the world so any registered listener sees them.
package factory

import (
	"gridfall/internal/component"
	"gridfall/internal/ecs"
	"gridfall/internal/generate"

	"github.com/gdamore/tcell/v2"
)

// attach adds c to a freshly created entity. The entity is alive by
// construction, so the error path is unreachable.
func attach(w *ecs.World, id ecs.EntityID, c ecs.Component) {
	_ = w.Add(id, c)
}

// NewPlayer creates the player entity at (x, y).
func NewPlayer(w *ecs.World, x, y, maxHP, attack, defense int) ecs.EntityID {
	id := w.CreateEntity()
	attach(w, id, component.Position{X: x, Y: y})
	attach(w, id, &component.Health{Current: maxHP, Max: maxHP})
	attach(w, id, component.Combat{Attack: attack, Defense: defense})
	attach(w, id, component.Renderable{
		Glyph:       "@",
		FGColor:     tcell.ColorYellow,
		RenderOrder: 10,
	})
	attach(w, id, component.TagPlayer{})
	return id
}

// NewMonster creates a monster entity from a spawn entry.
func NewMonster(w *ecs.World, entry generate.MonsterSpawnEntry, x, y int) ecs.EntityID {
	id := w.CreateEntity()
	attach(w, id, component.Position{X: x, Y: y})
	attach(w, id, &component.Health{Current: entry.MaxHP, Max: entry.MaxHP})
	attach(w, id, component.Combat{Attack: entry.Attack, Defense: entry.Defense})
	attach(w, id, component.Renderable{
		Glyph:       entry.Glyph,
		FGColor:     tcell.ColorRed,
		RenderOrder: 5,
	})
	attach(w, id, component.Brain{Kind: entry.Brain, AggroRange: entry.AggroRange})
	attach(w, id, component.TagMonster{})
	return id
}

// NewItem creates an item entity from a spawn entry. Items carry no
// blocking tag, so they never obstruct movement.
func NewItem(w *ecs.World, entry generate.ItemSpawnEntry, x, y int) ecs.EntityID {
	id := w.CreateEntity()
	attach(w, id, component.Position{X: x, Y: y})
	attach(w, id, component.Renderable{
		Glyph:       entry.Glyph,
		FGColor:     tcell.ColorGreen,
		RenderOrder: 2,
	})
	attach(w, id, component.TagItem{})
	return id
}
