package component

import "gridfall/internal/ecs"

const (
	CTagPlayer  ecs.ComponentType = 8
	CTagMonster ecs.ComponentType = 9
	CTagItem    ecs.ComponentType = 10
)

// TagPlayer marks the player-controlled entity.
type TagPlayer struct{}

func (TagPlayer) Type() ecs.ComponentType { return CTagPlayer }

// TagMonster marks a hostile actor that blocks its tile.
type TagMonster struct{}

func (TagMonster) Type() ecs.ComponentType { return CTagMonster }

// TagItem marks a pickup item on the map. Items never block movement.
type TagItem struct{}

func (TagItem) Type() ecs.ComponentType { return CTagItem }
