package generate

import "gridfall/internal/gamemap"

// MonsterSpawn describes one monster to create.
type MonsterSpawn struct {
	Entry MonsterSpawnEntry
	X, Y  int
}

// ItemSpawn describes one item to create.
type ItemSpawn struct {
	Entry ItemSpawnEntry
	X, Y  int
}

// PopulateResult is returned by Populate with entity spawn data.
type PopulateResult struct {
	Monsters []MonsterSpawn
	Items    []ItemSpawn
}

// Populate places monsters and items in the generated rooms. The first
// room (player spawn) and the last room (stairs) stay empty of monsters.
// Monsters are drawn from the spawn table until the threat budget runs
// out; no two spawns share a tile.
func Populate(gmap *gamemap.GameMap, cfg *Config) PopulateResult {
	var result PopulateResult

	rooms := gmap.Rooms
	if len(rooms) <= 2 {
		return result
	}
	placeable := rooms[1 : len(rooms)-1]

	occupied := make(map[[2]int]bool)
	pick := func(room gamemap.Rect) (int, int, bool) {
		// A handful of attempts is enough for the room sizes we generate.
		for try := 0; try < 10; try++ {
			x := room.X1 + cfg.Rand.Intn(room.X2-room.X1+1)
			y := room.Y1 + cfg.Rand.Intn(room.Y2-room.Y1+1)
			if gmap.IsWalkable(x, y) && !occupied[[2]int{x, y}] {
				occupied[[2]int{x, y}] = true
				return x, y, true
			}
		}
		return 0, 0, false
	}

	budget := cfg.MonsterBudget
	for budget > 0 && len(cfg.MonsterTable) > 0 {
		var affordable []MonsterSpawnEntry
		for _, e := range cfg.MonsterTable {
			if e.ThreatCost <= budget {
				affordable = append(affordable, e)
			}
		}
		if len(affordable) == 0 {
			break
		}
		entry := affordable[cfg.Rand.Intn(len(affordable))]
		room := placeable[cfg.Rand.Intn(len(placeable))]
		x, y, ok := pick(room)
		if !ok {
			break
		}
		result.Monsters = append(result.Monsters, MonsterSpawn{Entry: entry, X: x, Y: y})
		budget -= entry.ThreatCost
	}

	for i := 0; i < cfg.ItemCount && len(cfg.ItemTable) > 0; i++ {
		entry := cfg.ItemTable[cfg.Rand.Intn(len(cfg.ItemTable))]
		room := rooms[cfg.Rand.Intn(len(rooms))]
		x, y, ok := pick(room)
		if !ok {
			continue
		}
		result.Items = append(result.Items, ItemSpawn{Entry: entry, X: x, Y: y})
	}

	return result
}
