package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// HUDRows is the number of rows DrawHUD uses below the scene viewport.
const HUDRows = 5

// HUDStatus is what the status bar shows.
type HUDStatus struct {
	Scene    string
	FPS      float64
	Frames   uint64
	Entities int
	Failures int
	Paused   bool
	Messages []string
}

// DrawHUD renders the status bar and message log at the bottom of the canvas.
func (t *Terminal) DrawHUD(st HUDStatus) {
	_, screenH := t.canvas.Size()
	hudY := screenH - HUDRows
	if hudY < 0 {
		return
	}

	t.drawHLine(hudY, tcell.ColorGray)

	statusLine := fmt.Sprintf("[%s]  FPS: %.1f  Frames: %d  Entities: %d", st.Scene, st.FPS, st.Frames, st.Entities)
	if st.Failures > 0 {
		statusLine += fmt.Sprintf("  Failures: %d", st.Failures)
	}
	if st.Paused {
		statusLine += "  PAUSED"
	}
	t.drawText(0, hudY+1, statusLine, tcell.StyleDefault.Foreground(tcell.ColorWhite))

	// Message log (last 3 messages).
	start := len(st.Messages) - 3
	if start < 0 {
		start = 0
	}
	for i, msg := range st.Messages[start:] {
		t.drawText(0, hudY+2+i, msg, tcell.StyleDefault.Foreground(tcell.ColorLightYellow))
	}
}

func (t *Terminal) drawHLine(y int, color tcell.Color) {
	w, _ := t.canvas.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		t.canvas.SetContent(x, y, '─', nil, style)
	}
}

func (t *Terminal) drawText(x, y int, text string, style tcell.Style) {
	w, _ := t.canvas.Size()
	col := x
	for _, ch := range text {
		if col >= w {
			return
		}
		t.canvas.SetContent(col, y, ch, nil, style)
		col++
	}
}
