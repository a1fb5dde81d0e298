package component

import (
	"gridfall/internal/ecs"

	"github.com/gdamore/tcell/v2"
)

const CRenderable ecs.ComponentType = 4

// Renderable describes how an entity is drawn.
type Renderable struct {
	Glyph       string
	FGColor     tcell.Color
	RenderOrder int // higher draws on top
}

func (Renderable) Type() ecs.ComponentType { return CRenderable }
