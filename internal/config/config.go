// Package config loads runtime configuration from a TOML file, falling
// back to built-in defaults when the file is absent.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Display DisplayConfig `toml:"display"`
	Game    GameConfig    `toml:"game"`
	Logging LoggingConfig `toml:"logging"`
}

type DisplayConfig struct {
	FOVRadius int `toml:"fov_radius"`
}

type GameConfig struct {
	MapWidth  int   `toml:"map_width"`
	MapHeight int   `toml:"map_height"`
	Seed      int64 `toml:"seed"` // 0 = derive from wall clock

	AIBatchCount   int `toml:"ai_batch_count"`   // actors evaluated every Nth tick
	PathNodeBudget int `toml:"path_node_budget"` // A* expansion cap per decision
	AggroRange     int `toml:"aggro_range"`

	MonsterBudget int `toml:"monster_budget"` // threat points spent per floor
	ItemCount     int `toml:"item_count"`
	MaxFloors     int `toml:"max_floors"`
}

type LoggingConfig struct {
	Level string `toml:"level"` // zap level name: debug, info, warn, error
	File  string `toml:"file"`  // empty disables the diagnostic log
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Display: DisplayConfig{
			FOVRadius: 8,
		},
		Game: GameConfig{
			MapWidth:       80,
			MapHeight:      40,
			AIBatchCount:   4,
			PathNodeBudget: 196,
			AggroRange:     8,
			MonsterBudget:  30,
			ItemCount:      6,
			MaxFloors:      5,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "gridfall.log",
		},
	}
}

// Load reads path over the defaults. A missing file is not an error — the
// defaults are returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.clamp()
	return cfg, nil
}

// clamp repairs values a hand-edited file could break.
func (c *Config) clamp() {
	if c.Display.FOVRadius < 0 {
		c.Display.FOVRadius = 0
	}
	if c.Game.MapWidth < 20 {
		c.Game.MapWidth = 20
	}
	if c.Game.MapHeight < 20 {
		c.Game.MapHeight = 20
	}
	if c.Game.AIBatchCount < 1 {
		c.Game.AIBatchCount = 1
	}
	if c.Game.PathNodeBudget < 1 {
		c.Game.PathNodeBudget = 1
	}
	if c.Game.AggroRange < 0 {
		c.Game.AggroRange = 0
	}
	if c.Game.MaxFloors < 1 {
		c.Game.MaxFloors = 1
	}
}
