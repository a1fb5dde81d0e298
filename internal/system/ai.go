package system

import (
	"math/rand"

	"gridfall/internal/component"
	"gridfall/internal/ecs"
	"gridfall/internal/spatial"
)

const (
	passiveStepChance = 0.10
	patrolStepChance  = 0.40

	// DefaultNodeBudget caps A* expansions per aggressive decision so a
	// single actor can never dominate a tick on a large map.
	DefaultNodeBudget = 196
)

// AISystem decides and applies moves for non-player actors. Work is
// time-sliced: on tick t only actors with id mod batchCount == t mod
// batchCount are evaluated, so over batchCount consecutive ticks every
// actor acts exactly once. This bounds per-tick cost; it is scheduling,
// not parallelism.
type AISystem struct {
	world *ecs.World
	rng   *rand.Rand
	tick  uint64

	// NodeBudget limits A* expansions per decision. Set from config;
	// defaults to DefaultNodeBudget.
	NodeBudget int
}

// NewAISystem creates an AISystem drawing randomness from rng.
func NewAISystem(w *ecs.World, rng *rand.Rand) *AISystem {
	return &AISystem{world: w, rng: rng, NodeBudget: DefaultNodeBudget}
}

// Update evaluates this tick's batch of actors against the given target
// (normally the player's cell). An aggressive actor standing adjacent to
// the target calls combat with its own id instead of moving. Every applied
// move is written through the store so the spatial index stays consistent.
func (s *AISystem) Update(m Map, target spatial.Cell, idx *spatial.Index, combat func(ecs.EntityID), batchCount int) {
	if batchCount < 1 {
		batchCount = 1
	}
	slot := s.tick % uint64(batchCount)
	s.tick++

	// Query materializes the id list, so moves during iteration are safe.
	for _, id := range s.world.Query(component.CBrain, component.CPosition) {
		if uint64(id)%uint64(batchCount) != slot {
			continue
		}
		brainComp := s.world.Get(id, component.CBrain)
		posComp := s.world.Get(id, component.CPosition)
		if brainComp == nil || posComp == nil {
			// Destroyed earlier in this tick by the combat callback.
			continue
		}
		brain := brainComp.(component.Brain)
		pos := posComp.(component.Position)
		here := spatial.Cell{X: pos.X, Y: pos.Y}

		switch brain.Kind {
		case component.BrainPassive:
			s.randomStep(m, idx, id, here, passiveStepChance)
		case component.BrainPatrol:
			s.randomStep(m, idx, id, here, patrolStepChance)
		case component.BrainAggressive:
			s.aggressive(m, idx, id, here, target, brain, combat)
		}
		// BrainStatic never acts.
	}
}

func (s *AISystem) aggressive(m Map, idx *spatial.Index, id ecs.EntityID, here, target spatial.Cell, brain component.Brain, combat func(ecs.EntityID)) {
	dist := chebyshev(here, target)
	if dist > brain.AggroRange {
		s.randomStep(m, idx, id, here, passiveStepChance)
		return
	}
	if dist == 1 {
		if combat != nil {
			combat(id)
		}
		return
	}

	if path := FindPath(m, idx, here, target, s.NodeBudget); len(path) > 0 {
		// Re-check occupancy at execution time: an earlier actor in this
		// tick may have stepped into the cell since the search ran.
		if s.step(m, idx, id, path[0]) {
			return
		}
	}
	// Budget exhausted or path stale — one greedy step toward the target.
	next := spatial.Cell{X: here.X + sign(target.X-here.X), Y: here.Y + sign(target.Y-here.Y)}
	if s.step(m, idx, id, next) {
		return
	}
	s.randomStep(m, idx, id, here, passiveStepChance)
}

// step moves id into cell when it is walkable and unoccupied. The write
// goes through the store so listeners observe it.
func (s *AISystem) step(m Map, idx *spatial.Index, id ecs.EntityID, cell spatial.Cell) bool {
	if !m.IsWalkable(cell.X, cell.Y) || idx.IsOccupied(cell, true) {
		return false
	}
	return s.world.Add(id, component.Position{X: cell.X, Y: cell.Y}) == nil
}

// randomStep takes one uniformly random 8-connected step with the given
// probability, skipping blocked destinations.
func (s *AISystem) randomStep(m Map, idx *spatial.Index, id ecs.EntityID, here spatial.Cell, chance float64) {
	if s.rng.Float64() >= chance {
		return
	}
	d := stepOffsets[s.rng.Intn(len(stepOffsets))]
	s.step(m, idx, id, spatial.Cell{X: here.X + d[0], Y: here.Y + d[1]})
}

func sign(v int) int {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}
