package component

import "gridfall/internal/ecs"

const CCombat ecs.ComponentType = 3

// Combat holds the attack and defense values used by bump combat.
type Combat struct {
	Attack  int
	Defense int
}

func (Combat) Type() ecs.ComponentType { return CCombat }
