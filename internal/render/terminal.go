package render

import (
	"math"
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Canvas is the part of tcell.Screen the terminal renderer paints on.
type Canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
}

type queuedSprite struct {
	call  SpriteCall
	sheet *Sheet
	x, y  int // frame window in the sheet
	w, h  int
}

// Terminal renders sprite calls as glyph cells. Calls are checked when
// submitted and painted at EndFrame ordered by depth (lower Z first), so
// equal depths keep submission order.
type Terminal struct {
	canvas   Canvas
	atlas    *Atlas
	viewRows int // rows available to the scene; rows below belong to the HUD
	frame    Frame
	queue    []queuedSprite
}

// NewTerminal creates a renderer drawing sheets from atlas onto canvas.
// hudRows rows at the bottom of the canvas are left to DrawHUD.
func NewTerminal(canvas Canvas, atlas *Atlas, hudRows int) *Terminal {
	t := &Terminal{canvas: canvas, atlas: atlas}
	t.Resize(hudRows)
	return t
}

// Resize recomputes the scene viewport after the canvas changed size.
func (t *Terminal) Resize(hudRows int) {
	_, h := t.canvas.Size()
	t.viewRows = max(h-hudRows, 0)
}

// ViewRows returns the number of rows the scene is drawn into.
func (t *Terminal) ViewRows() int { return t.viewRows }

// BeginFrame clears the scene viewport with the frame's binding style.
func (t *Terminal) BeginFrame(f Frame) {
	t.frame = f
	t.queue = t.queue[:0]
	w, _ := t.canvas.Size()
	for y := 0; y < t.viewRows; y++ {
		for x := 0; x < w; x++ {
			t.canvas.SetContent(x, y, ' ', nil, f.Binding.Style)
		}
	}
}

// DrawSprite validates call against the atlas and queues it.
func (t *Terminal) DrawSprite(call SpriteCall) error {
	sheet, err := t.atlas.Lookup(call.Source)
	if err != nil {
		return err
	}
	x, y, w, h, err := sheet.Window(call.FrameIndex, call.FrameWidth, call.FrameHeight, call.OffsetX, call.OffsetY)
	if err != nil {
		return err
	}
	t.queue = append(t.queue, queuedSprite{call: call, sheet: sheet, x: x, y: y, w: w, h: h})
	return nil
}

// EndFrame paints the queued sprites.
func (t *Terminal) EndFrame() error {
	sort.SliceStable(t.queue, func(i, j int) bool {
		return t.queue[i].call.Transform.Position.Z < t.queue[j].call.Transform.Position.Z
	})
	for _, q := range t.queue {
		t.paint(q)
	}
	t.queue = t.queue[:0]
	return nil
}

func (t *Terminal) paint(q queuedSprite) {
	tr := q.call.Transform
	sx, sy := tr.Scale.X, tr.Scale.Y
	if sx == 0 || sy == 0 {
		return
	}
	outW := int(math.Round(float64(q.w) * math.Abs(sx)))
	outH := int(math.Round(float64(q.h) * math.Abs(sy)))
	if outW == 0 || outH == 0 {
		return
	}
	origin := q.call.View.Apply(tr.Position.XY())
	baseX, baseY := int(math.Floor(origin.X)), int(math.Floor(origin.Y))
	turns := tr.QuarterTurns()

	style := q.call.Binding.Style
	if q.sheet.Foreground != tcell.ColorDefault {
		style = style.Foreground(q.sheet.Foreground)
	}

	for oy := 0; oy < outH; oy++ {
		for ox := 0; ox < outW; ox++ {
			u := int(float64(ox) / math.Abs(sx))
			v := int(float64(oy) / math.Abs(sy))
			if q.call.Flip != (sx < 0) {
				u = q.w - 1 - u
			}
			if sy < 0 {
				v = q.h - 1 - v
			}
			glyph := q.sheet.At(q.x+u, q.y+v)
			if glyph == Transparent {
				continue
			}
			dx, dy := rotate(ox, oy, outW, outH, turns)
			col, row := (baseX+dx)*2, baseY+dy
			t.putGlyph(col, row, glyph, style)
		}
	}
}

// rotate maps a cell of a w x h grid through quarter clockwise turns.
func rotate(x, y, w, h, turns int) (int, int) {
	switch turns {
	case 1:
		return h - 1 - y, x
	case 2:
		return w - 1 - x, h - 1 - y
	case 3:
		return y, w - 1 - x
	default:
		return x, y
	}
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at screen position (x, y).
func (t *Terminal) putGlyph(x, y int, glyph string, style tcell.Style) {
	w, _ := t.canvas.Size()
	if x < 0 || x >= w || y < 0 || y >= t.viewRows {
		return
	}
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	t.canvas.SetContent(x, y, runes[0], combc, style)
	if runewidth.StringWidth(glyph) < 2 && x+1 < w {
		// Narrow glyphs still own both columns of the logical cell.
		t.canvas.SetContent(x+1, y, ' ', nil, style)
	}
}
