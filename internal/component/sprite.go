package component

import (
	"math"
	"time"

	"glyphscene/internal/ecs"
	"glyphscene/internal/geom"
	"glyphscene/internal/render"
)

const CRenderable ecs.ComponentType = 3

// DefaultFrameRate is used by animated sprites with no FrameRate set.
const DefaultFrameRate = 12

// Drawable is implemented by every component of type CRenderable.
type Drawable interface {
	ecs.Component
	Draw(r render.Renderer, f render.Frame, t geom.Transform) error
}

// Sprite draws frames cut from a sheet in the renderer's atlas.
type Sprite struct {
	ecs.Base
	Source      string
	FrameWidth  int
	FrameHeight int
	OffsetX     int
	OffsetY     int
	FrameCount  int
	FrameRate   float64 // frames per second; non-positive or non-finite uses DefaultFrameRate
	Animated    bool
	Loop        bool
	Flip        bool
}

func (*Sprite) Type() ecs.ComponentType { return CRenderable }

// FrameAt returns the frame shown at time t.
func (s *Sprite) FrameAt(t time.Duration) int {
	if !s.Animated || s.FrameCount <= 1 || t <= 0 {
		return 0
	}
	rate := s.FrameRate
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		rate = DefaultFrameRate
	}
	n := int(math.Floor(t.Seconds() * rate))
	if s.Loop {
		return n % s.FrameCount
	}
	return min(n, s.FrameCount-1)
}

// Draw submits the current frame at transform t.
func (s *Sprite) Draw(r render.Renderer, f render.Frame, t geom.Transform) error {
	return r.DrawSprite(render.SpriteCall{
		Frame:       f,
		Transform:   t,
		Source:      s.Source,
		FrameIndex:  s.FrameAt(f.Time),
		FrameWidth:  s.FrameWidth,
		FrameHeight: s.FrameHeight,
		OffsetX:     s.OffsetX,
		OffsetY:     s.OffsetY,
		Flip:        s.Flip,
	})
}
