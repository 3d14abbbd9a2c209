package render

import (
	"math"

	"glyphscene/internal/geom"
)

// Camera translates between scene (pixel) coordinates and screen cells.
// Each logical cell covers CellWidth x CellHeight pixels and is drawn two
// terminal columns wide, since emoji occupy 2 columns.
type Camera struct {
	OffsetX    float64 // scene pixel at the top-left of the view
	OffsetY    float64
	CellWidth  float64
	CellHeight float64
	ViewWidth  int // in terminal columns
	ViewHeight int // in terminal rows
}

// NewCamera creates a camera centered on scene position (cx, cy).
func NewCamera(cx, cy, cellW, cellH float64, viewW, viewH int) *Camera {
	c := &Camera{CellWidth: cellW, CellHeight: cellH, ViewWidth: viewW, ViewHeight: viewH}
	c.Center(cx, cy)
	return c
}

// Center repositions the camera so that scene position (cx, cy) is in the middle.
func (c *Camera) Center(cx, cy float64) {
	// ViewWidth is in columns; each logical cell is 2 columns wide.
	c.OffsetX = cx - float64(c.ViewWidth/2/2)*c.CellWidth
	c.OffsetY = cy - float64(c.ViewHeight/2)*c.CellHeight
}

// Resize updates the viewport size, keeping the current center.
func (c *Camera) Resize(viewW, viewH int) {
	cx := c.OffsetX + float64(c.ViewWidth/2/2)*c.CellWidth
	cy := c.OffsetY + float64(c.ViewHeight/2)*c.CellHeight
	c.ViewWidth, c.ViewHeight = viewW, viewH
	c.Center(cx, cy)
}

// View returns the matrix mapping scene pixels to logical cells.
func (c *Camera) View() geom.Mat3 {
	return geom.Scaling(1/c.CellWidth, 1/c.CellHeight).Mul(geom.Translate(-c.OffsetX, -c.OffsetY))
}

// WorldToScreen converts a scene position to screen (sx, sy).
// visible is false when the result falls outside the viewport.
func (c *Camera) WorldToScreen(p geom.Vec2) (sx, sy int, visible bool) {
	cell := c.View().Apply(p)
	sx = int(math.Floor(cell.X)) * 2
	sy = int(math.Floor(cell.Y))
	visible = sx >= 0 && sx < c.ViewWidth && sy >= 0 && sy < c.ViewHeight
	return
}

// ScreenToWorld converts screen (sx, sy) to the scene position of the
// cell's top-left corner.
func (c *Camera) ScreenToWorld(sx, sy int) geom.Vec2 {
	return geom.Vec2{
		X: float64(sx/2)*c.CellWidth + c.OffsetX,
		Y: float64(sy)*c.CellHeight + c.OffsetY,
	}
}
