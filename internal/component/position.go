package component

import "gridfall/internal/ecs"

const CPosition ecs.ComponentType = 1

// Position is the grid cell an entity occupies. It is stored by value:
// moving an entity means writing a new Position through World.Add so the
// spatial index observes the change.
type Position struct {
	X, Y int
}

func (Position) Type() ecs.ComponentType { return CPosition }
