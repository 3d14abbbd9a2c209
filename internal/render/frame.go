// Package render is the draw side of the runtime: the contract renderable
// components submit sprite calls against, and a terminal implementation that
// paints glyph sheets onto a tcell screen.
package render

import (
	"time"

	"glyphscene/internal/geom"

	"github.com/gdamore/tcell/v2"
	"github.com/rotisserie/eris"
)

var (
	// ErrTextureNotFound is returned when a sprite's source is not in the atlas.
	ErrTextureNotFound = eris.New("texture not found")
	// ErrFrameOutOfRange is returned when a frame window falls outside its sheet.
	ErrFrameOutOfRange = eris.New("frame out of range")
)

// Binding is the per-frame style binding shared by every draw call. For the
// terminal renderer it is the base cell style (background, default fg).
type Binding struct {
	Style tcell.Style
}

// Frame holds the frame-global draw parameters.
type Frame struct {
	View    geom.Mat3
	Binding Binding
	Time    time.Duration // monotonic, non-decreasing across frames
	Delta   float64       // seconds since the previous frame
}

// SpriteCall is one draw submission.
type SpriteCall struct {
	Frame
	Transform geom.Transform

	Source      string
	FrameIndex  int
	FrameWidth  int
	FrameHeight int
	OffsetX     int
	OffsetY     int
	Flip        bool
}

// Renderer accepts sprite draw calls. Implementations must not retain or
// mutate anything reachable from the call beyond the current frame.
type Renderer interface {
	DrawSprite(call SpriteCall) error
}

// FrameRenderer is a Renderer that wants to know where frames start and end.
type FrameRenderer interface {
	Renderer
	BeginFrame(f Frame)
	EndFrame() error
}
