package game

import (
	"math/rand"

	"gridfall/internal/component"
	"gridfall/internal/config"
	"gridfall/internal/generate"
)

// playerMaxHP and friends are the player's base statistics.
const (
	playerMaxHP      = 30
	playerAttack     = 5
	playerDefense    = 2
	potionHealAmount = 10
)

// monsterTable lists every spawnable monster. Threat costs steer the
// per-floor budget toward many weak or few strong monsters.
func monsterTable(aggroRange int) []generate.MonsterSpawnEntry {
	return []generate.MonsterSpawnEntry{
		{Glyph: "r", Name: "rat", ThreatCost: 1, Attack: 2, Defense: 0, MaxHP: 4,
			Brain: component.BrainPassive},
		{Glyph: "b", Name: "bat", ThreatCost: 2, Attack: 2, Defense: 0, MaxHP: 5,
			Brain: component.BrainPatrol},
		{Glyph: "g", Name: "goblin", ThreatCost: 3, Attack: 4, Defense: 1, MaxHP: 8,
			Brain: component.BrainAggressive, AggroRange: aggroRange},
		{Glyph: "o", Name: "orc", ThreatCost: 5, Attack: 6, Defense: 2, MaxHP: 14,
			Brain: component.BrainAggressive, AggroRange: aggroRange},
		{Glyph: "G", Name: "stone guardian", ThreatCost: 4, Attack: 8, Defense: 4, MaxHP: 20,
			Brain: component.BrainStatic},
	}
}

var itemTable = []generate.ItemSpawnEntry{
	{Glyph: "!", Name: "healing potion"},
}

// floorConfig builds the generation parameters for one floor. Deeper
// floors get a larger monster budget.
func floorConfig(floor int, cfg config.Config, rng *rand.Rand) *generate.Config {
	return &generate.Config{
		MapWidth:      cfg.Game.MapWidth,
		MapHeight:     cfg.Game.MapHeight,
		MinLeafSize:   10,
		MaxLeafSize:   24,
		MinRoomSize:   4,
		RoomPadding:   1,
		CorridorStyle: generate.CorridorLShaped,
		MonsterBudget: cfg.Game.MonsterBudget + (floor-1)*8,
		ItemCount:     cfg.Game.ItemCount,
		MonsterTable:  monsterTable(cfg.Game.AggroRange),
		ItemTable:     itemTable,
		Rand:          rng,
	}
}
