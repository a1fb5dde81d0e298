package system

import (
	"math/rand"
	"testing"

	"gridfall/internal/component"
	"gridfall/internal/ecs"
	"gridfall/internal/spatial"
)

func placeFighter(t *testing.T, w *ecs.World, atk, def, hp, x, y int) ecs.EntityID {
	t.Helper()
	id := w.CreateEntity()
	if err := w.Add(id, component.TagMonster{}); err != nil {
		t.Fatal(err)
	}
	if err := w.Add(id, component.Combat{Attack: atk, Defense: def}); err != nil {
		t.Fatal(err)
	}
	if err := w.Add(id, &component.Health{Current: hp, Max: hp}); err != nil {
		t.Fatal(err)
	}
	if err := w.Add(id, component.Position{X: x, Y: y}); err != nil {
		t.Fatal(err)
	}
	return id
}

// healthWatcher counts update notifications for the health component.
type healthWatcher struct {
	updates int
}

func (hw *healthWatcher) OnComponentChange(kind ecs.ChangeKind, _ ecs.EntityID, t ecs.ComponentType, _ ecs.Component) {
	if kind == ecs.ChangeUpdate && t == component.CHealth {
		hw.updates++
	}
}

func TestAttackDealsDamageInRange(t *testing.T) {
	w, _ := newIndexedWorld()
	rng := rand.New(rand.NewSource(1))

	attacker := placeFighter(t, w, 6, 0, 20, 0, 0)
	defender := placeFighter(t, w, 2, 2, 20, 1, 0)

	res := Attack(w, rng, attacker, defender)
	if res.Killed {
		t.Fatal("20 HP defender must survive one hit")
	}
	// base = 6-2 = 4, roll adds 0..2
	if res.Damage < 4 || res.Damage > 6 {
		t.Fatalf("damage %d outside [4,6]", res.Damage)
	}

	hp := w.Get(defender, component.CHealth).(*component.Health)
	if hp.Current != 20-res.Damage {
		t.Fatalf("health not reduced: %d left after %d damage", hp.Current, res.Damage)
	}
}

func TestAttackMinimumDamage(t *testing.T) {
	w, _ := newIndexedWorld()
	rng := rand.New(rand.NewSource(1))

	// Defense far above attack still yields at least 1 damage.
	attacker := placeFighter(t, w, 1, 0, 10, 0, 0)
	defender := placeFighter(t, w, 1, 50, 30, 1, 0)

	res := Attack(w, rng, attacker, defender)
	if res.Damage < 1 || res.Damage > 3 {
		t.Fatalf("damage %d outside [1,3]", res.Damage)
	}
}

func TestAttackNotifiesHealthChange(t *testing.T) {
	w, _ := newIndexedWorld()
	rng := rand.New(rand.NewSource(1))
	hw := &healthWatcher{}
	w.RegisterListener(hw)

	attacker := placeFighter(t, w, 5, 0, 20, 0, 0)
	defender := placeFighter(t, w, 2, 1, 20, 1, 0)

	Attack(w, rng, attacker, defender)
	if hw.updates != 1 {
		t.Fatalf("expected 1 health update notification, got %d", hw.updates)
	}
}

func TestAttackKillDestroysAndUnindexes(t *testing.T) {
	w, ix := newIndexedWorld()
	rng := rand.New(rand.NewSource(1))

	attacker := placeFighter(t, w, 10, 0, 20, 0, 0)
	defender := placeFighter(t, w, 0, 0, 1, 1, 0)

	res := Attack(w, rng, attacker, defender)
	if !res.Killed {
		t.Fatal("1 HP defender must die")
	}
	if w.Alive(defender) {
		t.Fatal("killed defender still alive in store")
	}
	if ix.IsOccupied(spatial.Cell{X: 1, Y: 0}, true) {
		t.Fatal("killed defender still occupies its cell")
	}
	if _, ok := ix.CellOf(defender); ok {
		t.Fatal("killed defender still indexed")
	}
}

func TestAttackMissingComponents(t *testing.T) {
	w, _ := newIndexedWorld()
	rng := rand.New(rand.NewSource(1))

	fighter := placeFighter(t, w, 5, 0, 10, 0, 0)
	bare := w.CreateEntity()

	if res := Attack(w, rng, fighter, bare); res.Damage != 0 || res.Killed {
		t.Fatalf("attacking a component-less entity must be a no-op, got %+v", res)
	}
	if res := Attack(w, rng, bare, fighter); res.Damage != 0 || res.Killed {
		t.Fatalf("attack by a component-less entity must be a no-op, got %+v", res)
	}
}
