package game

import (
	"fmt"
	"math/rand"
	"time"

	"gridfall/internal/component"
	"gridfall/internal/config"
	"gridfall/internal/ecs"
	"gridfall/internal/factory"
	"gridfall/internal/gamemap"
	"gridfall/internal/generate"
	"gridfall/internal/render"
	"gridfall/internal/spatial"
	"gridfall/internal/system"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
)

// GameState tracks the main state machine.
type GameState uint8

const (
	StatePlaying GameState = iota
	StateDead
	StateVictory
)

// Game is the top-level orchestrator: it owns the world, the derived
// structures, and the turn loop, and wires them together each turn.
type Game struct {
	screen   tcell.Screen
	renderer *render.Renderer
	world    *ecs.World
	gmap     *gamemap.GameMap
	index    *spatial.Index
	aiSys    *system.AISystem
	vis      system.Visibility
	playerID ecs.EntityID
	rng      *rand.Rand
	cfg      config.Config
	log      *zap.Logger
	floor    int
	turns    int
	state    GameState
	messages []string
}

// New creates a Game with the screen initialized and the first floor
// loaded.
func New(cfg config.Config, logger *zap.Logger) (*Game, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}

	seed := cfg.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := &Game{
		screen: screen,
		rng:    rand.New(rand.NewSource(seed)),
		cfg:    cfg,
		log:    logger,
		state:  StatePlaying,
	}
	g.log.Info("run started", zap.Int64("seed", seed))
	g.loadFloor(1)
	g.addMessage("Use hjklyubn or arrow keys to move. > to descend, , to pick up.")
	return g, nil
}

// loadFloor generates and populates the given floor. The player's current
// HP carries over between floors.
func (g *Game) loadFloor(floor int) {
	savedHP := -1
	if g.world != nil && g.playerID != ecs.NilEntity {
		if hpComp := g.world.Get(g.playerID, component.CHealth); hpComp != nil {
			savedHP = hpComp.(*component.Health).Current
		}
	}

	g.floor = floor
	g.world = ecs.NewWorld()

	gcfg := floorConfig(floor, g.cfg, g.rng)
	gmap, px, py := generate.Generate(gcfg)
	g.gmap = gmap

	pop := generate.Populate(gmap, gcfg)
	for _, ms := range pop.Monsters {
		factory.NewMonster(g.world, ms.Entry, ms.X, ms.Y)
	}
	for _, is := range pop.Items {
		factory.NewItem(g.world, is.Entry, is.X, is.Y)
	}
	g.playerID = factory.NewPlayer(g.world, px, py, playerMaxHP, playerAttack, playerDefense)
	if savedHP > 0 && floor > 1 {
		hp := g.world.Get(g.playerID, component.CHealth).(*component.Health)
		if savedHP < hp.Max {
			hp.Current = savedHP
			g.world.NotifyChanged(g.playerID, component.CHealth)
		}
	}

	// The index is attached after the floor is bulk-populated, so one
	// Rebuild picks everything up; from here on it tracks incrementally.
	g.index = spatial.NewIndex(g.world)
	g.index.Rebuild()

	g.aiSys = system.NewAISystem(g.world, g.rng)
	g.aiSys.NodeBudget = g.cfg.Game.PathNodeBudget

	g.updateFOV()
	g.renderer = render.NewRenderer(g.screen)
	g.renderer.CenterOn(px, py)

	g.log.Info("floor loaded",
		zap.Int("floor", floor),
		zap.Int("monsters", len(pop.Monsters)),
		zap.Int("items", len(pop.Items)),
		zap.Int("rooms", len(gmap.Rooms)))
	if floor > 1 {
		g.addMessage(fmt.Sprintf("You descend to floor %d.", floor))
	}
}

// updateFOV recomputes visibility from the player and marks newly seen
// tiles explored.
func (g *Game) updateFOV() {
	pos := g.playerPosition()
	g.vis = system.ComputeFOV(g.gmap, pos.X, pos.Y, g.cfg.Display.FOVRadius)
	for y := 0; y < g.gmap.Height; y++ {
		for x := 0; x < g.gmap.Width; x++ {
			if g.vis.At(x, y) {
				g.gmap.At(x, y).Explored = true
			}
		}
	}
}

// Run is the main game loop.
func (g *Game) Run() {
	defer g.screen.Fini()

	for {
		pos := g.playerPosition()
		g.renderer.CenterOn(pos.X, pos.Y)
		g.renderer.DrawFrame(g.world, g.gmap, g.vis)
		g.renderer.DrawHUD(g.world, g.playerID, g.floor, g.turns, g.messages)
		g.renderer.Show()

		if g.state != StatePlaying {
			g.waitForKey()
			return
		}

		ev := g.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventResize:
			g.screen.Sync()
			g.renderer = render.NewRenderer(g.screen)
		case *tcell.EventKey:
			action := keyToAction(ev)
			if action == ActionQuit {
				g.log.Info("run quit", zap.Int("floor", g.floor), zap.Int("turns", g.turns))
				return
			}
			g.processAction(action)
		}
	}
}

// processAction handles one player action and, when it consumed a turn,
// advances the monsters.
func (g *Game) processAction(action Action) {
	turnUsed := false

	switch action {
	case ActionWait:
		turnUsed = true

	case ActionPickup:
		turnUsed = g.tryPickup()

	case ActionDescend:
		pos := g.playerPosition()
		if g.gmap.At(pos.X, pos.Y).Kind == gamemap.TileStairsDown {
			if g.floor >= g.cfg.Game.MaxFloors {
				g.state = StateVictory
				g.addMessage("You reach the bottom of the dungeon. You win! (any key)")
				g.log.Info("run won", zap.Int("turns", g.turns))
			} else {
				g.loadFloor(g.floor + 1)
			}
			return
		}
		g.addMessage("There are no stairs down here.")

	default:
		dx, dy := actionToDelta(action)
		if dx == 0 && dy == 0 {
			return
		}
		result, target := system.TryMove(g.world, g.gmap, g.index, g.playerID, dx, dy)
		switch result {
		case system.MoveOK:
			g.updateFOV()
			turnUsed = true
		case system.MoveAttack:
			name := g.entityName(target)
			res := system.Attack(g.world, g.rng, g.playerID, target)
			if res.Killed {
				g.addMessage(fmt.Sprintf("You kill the %s!", name))
				g.log.Debug("monster killed", zap.Uint64("id", uint64(target)))
			} else {
				g.addMessage(fmt.Sprintf("You hit the %s for %d damage.", name, res.Damage))
			}
			turnUsed = true
		case system.MoveBlocked:
			// no message for walking into walls
		}
	}

	if turnUsed {
		g.turns++
		pos := g.playerPosition()
		g.aiSys.Update(g.gmap, spatial.Cell{X: pos.X, Y: pos.Y}, g.index,
			g.monsterAttack, g.cfg.Game.AIBatchCount)
		g.checkPlayerDead()
	}
}

// monsterAttack is the combat callback handed to the AI system: the
// adjacent attacker strikes the player.
func (g *Game) monsterAttack(attacker ecs.EntityID) {
	name := g.entityName(attacker)
	res := system.Attack(g.world, g.rng, attacker, g.playerID)
	if res.Damage > 0 {
		g.addMessage(fmt.Sprintf("The %s hits you for %d damage.", name, res.Damage))
	}
}

func (g *Game) checkPlayerDead() {
	hpComp := g.world.Get(g.playerID, component.CHealth)
	if hpComp == nil || hpComp.(*component.Health).Current <= 0 {
		g.state = StateDead
		g.addMessage("You die... (any key)")
		g.log.Info("run lost", zap.Int("floor", g.floor), zap.Int("turns", g.turns))
	}
}

// tryPickup consumes an item on the player's cell. Picking an item up
// removes it from the spatial index via the store notifications.
func (g *Game) tryPickup() bool {
	pos := g.playerPosition()
	items := g.index.EntitiesOfKindAt(spatial.Cell{X: pos.X, Y: pos.Y}, component.CTagItem)
	if len(items) == 0 {
		g.addMessage("Nothing to pick up here.")
		return false
	}
	itemID := items[0]
	if hpComp := g.world.Get(g.playerID, component.CHealth); hpComp != nil {
		hp := hpComp.(*component.Health)
		hp.Current += potionHealAmount
		if hp.Current > hp.Max {
			hp.Current = hp.Max
		}
		g.world.NotifyChanged(g.playerID, component.CHealth)
	}
	g.world.DestroyEntity(itemID)
	g.addMessage(fmt.Sprintf("You quaff the potion. (+%d HP)", potionHealAmount))
	return true
}

func (g *Game) playerPosition() component.Position {
	if c := g.world.Get(g.playerID, component.CPosition); c != nil {
		return c.(component.Position)
	}
	return component.Position{}
}

func (g *Game) entityName(id ecs.EntityID) string {
	if c := g.world.Get(id, component.CRenderable); c != nil {
		return c.(component.Renderable).Glyph
	}
	return "?"
}

func (g *Game) addMessage(msg string) {
	g.messages = append(g.messages, msg)
	if len(g.messages) > 50 {
		g.messages = g.messages[len(g.messages)-50:]
	}
}

// waitForKey blocks until any key event arrives.
func (g *Game) waitForKey() {
	for {
		if _, ok := g.screen.PollEvent().(*tcell.EventKey); ok {
			return
		}
	}
}
