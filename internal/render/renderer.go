package render

import (
	"fmt"
	"sort"

	"gridfall/internal/component"
	"gridfall/internal/ecs"
	"gridfall/internal/gamemap"
	"gridfall/internal/system"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// hudRows is the number of bottom screen rows reserved for the HUD.
const hudRows = 5

// Renderer draws the game world onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	camera *Camera
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	w, h := screen.Size()
	return &Renderer{
		screen: screen,
		camera: NewCamera(0, 0, w, h-hudRows),
	}
}

// CenterOn recenters the camera on world position (x, y).
func (r *Renderer) CenterOn(x, y int) { r.camera.Center(x, y) }

// DrawFrame renders tiles and entities, showing only what the visibility
// grid marks visible plus dimmed explored terrain.
func (r *Renderer) DrawFrame(w *ecs.World, gmap *gamemap.GameMap, vis system.Visibility) {
	r.screen.Clear()
	r.drawMap(gmap, vis)
	r.drawEntities(w, vis)
}

func (r *Renderer) drawMap(gmap *gamemap.GameMap, vis system.Visibility) {
	lit := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	dim := tcell.StyleDefault.Foreground(tcell.ColorGray).Background(tcell.ColorBlack)

	for y := 0; y < gmap.Height; y++ {
		for x := 0; x < gmap.Width; x++ {
			tile := gmap.At(x, y)
			visible := vis.At(x, y)
			if !visible && !tile.Explored {
				continue
			}
			sx, sy, onScreen := r.camera.WorldToScreen(x, y)
			if !onScreen {
				continue
			}

			var glyph string
			switch tile.Kind {
			case gamemap.TileWall:
				glyph = "#"
			case gamemap.TileDoor:
				glyph = "+"
			case gamemap.TileStairsDown:
				glyph = ">"
			default:
				glyph = "."
			}

			style := lit
			if !visible {
				style = dim
			}
			r.putGlyph(sx, sy, glyph, style)
		}
	}
}

// renderableEntity holds sorting info for entity rendering.
type renderableEntity struct {
	order int
	pos   component.Position
	rend  component.Renderable
}

// drawEntities renders all entities with Renderable + Position that stand
// on a visible cell, ordered by RenderOrder (lower drawn first).
func (r *Renderer) drawEntities(w *ecs.World, vis system.Visibility) {
	ids := w.Query(component.CRenderable, component.CPosition)
	entities := make([]renderableEntity, 0, len(ids))

	for _, id := range ids {
		pos := w.Get(id, component.CPosition).(component.Position)
		rend := w.Get(id, component.CRenderable).(component.Renderable)
		if !vis.At(pos.X, pos.Y) {
			continue
		}
		entities = append(entities, renderableEntity{order: rend.RenderOrder, pos: pos, rend: rend})
	}

	sort.Slice(entities, func(i, j int) bool {
		return entities[i].order < entities[j].order
	})

	for _, e := range entities {
		sx, sy, onScreen := r.camera.WorldToScreen(e.pos.X, e.pos.Y)
		if !onScreen {
			continue
		}
		style := tcell.StyleDefault.Foreground(e.rend.FGColor).Background(tcell.ColorBlack)
		r.putGlyph(sx, sy, e.rend.Glyph, style)
	}
}

// DrawHUD renders the status line and message log in the reserved bottom
// rows.
func (r *Renderer) DrawHUD(w *ecs.World, playerID ecs.EntityID, floor, turns int, messages []string) {
	_, h := r.screen.Size()
	base := h - hudRows
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)

	status := fmt.Sprintf("Floor %d  Turn %d", floor, turns)
	if hpComp := w.Get(playerID, component.CHealth); hpComp != nil {
		hp := hpComp.(*component.Health)
		status = fmt.Sprintf("HP %d/%d  %s", hp.Current, hp.Max, status)
	}
	r.putString(0, base, status, style.Bold(true))

	// Last messages, newest at the bottom.
	start := len(messages) - (hudRows - 1)
	if start < 0 {
		start = 0
	}
	for i, msg := range messages[start:] {
		r.putString(0, base+1+i, msg, style)
	}
}

// Show flushes the frame to the terminal.
func (r *Renderer) Show() { r.screen.Show() }

// putGlyph draws a single glyph at screen position (x, y). Wide glyphs get
// their second column filled to avoid rendering artifacts.
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	r.screen.SetContent(x, y, runes[0], combc, style)
	if runewidth.StringWidth(glyph) == 2 {
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}

func (r *Renderer) putString(x, y int, s string, style tcell.Style) {
	col := x
	for _, ch := range s {
		r.screen.SetContent(col, y, ch, nil, style)
		col += runewidth.RuneWidth(ch)
	}
}
