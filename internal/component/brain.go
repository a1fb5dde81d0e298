package component

import "gridfall/internal/ecs"

const CBrain ecs.ComponentType = 5

// BrainKind selects how a non-player actor behaves each tick.
type BrainKind uint8

const (
	BrainStatic     BrainKind = iota // never acts
	BrainPassive                     // occasional random step
	BrainPatrol                      // frequent random step
	BrainAggressive                  // hunts the player inside AggroRange
)

type Brain struct {
	Kind       BrainKind
	AggroRange int // Chebyshev distance beyond which aggressive reverts to passive
}

func (Brain) Type() ecs.ComponentType { return CBrain }
