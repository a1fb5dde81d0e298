package component

import "gridfall/internal/ecs"

const CHealth ecs.ComponentType = 2

// Health is stored by pointer: combat mutates Current in place and then
// calls World.NotifyChanged to keep listeners in sync.
type Health struct {
	Current int
	Max     int
}

func (*Health) Type() ecs.ComponentType { return CHealth }
