package system

import (
	"math/rand"

	"gridfall/internal/component"
	"gridfall/internal/ecs"
)

// AttackResult holds the outcome of one attack.
type AttackResult struct {
	Damage int
	Killed bool
}

// Attack resolves one bump attack from attacker against defender.
// Damage formula: max(1, atk-def) + rand.Intn(3).
//
// Health is a pointer component: it is mutated in place and the change is
// re-fired through NotifyChanged. A lethal hit destroys the defender,
// which also clears it from the spatial index via the remove
// notifications.
func Attack(w *ecs.World, rng *rand.Rand, attackerID, defenderID ecs.EntityID) AttackResult {
	atkComp := w.Get(attackerID, component.CCombat)
	defComp := w.Get(defenderID, component.CCombat)
	hpComp := w.Get(defenderID, component.CHealth)
	if atkComp == nil || defComp == nil || hpComp == nil {
		return AttackResult{}
	}

	atk := atkComp.(component.Combat).Attack
	def := defComp.(component.Combat).Defense
	hp := hpComp.(*component.Health)

	base := atk - def
	if base < 1 {
		base = 1
	}
	dmg := base + rng.Intn(3)

	hp.Current -= dmg
	w.NotifyChanged(defenderID, component.CHealth)

	if hp.Current <= 0 {
		w.DestroyEntity(defenderID)
		return AttackResult{Damage: dmg, Killed: true}
	}
	return AttackResult{Damage: dmg}
}
