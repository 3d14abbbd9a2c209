package factory

import (
	"glyphscene/internal/render"

	"github.com/gdamore/tcell/v2"
)

// Sheet names registered by RegisterSheets.
const (
	SheetLogo     = "logo"
	SheetCrate    = "crate"
	SheetGround   = "ground"
	SheetOutline  = "outline"
	SheetRaindrop = "raindrop"
)

var sheetRows = []struct {
	name string
	fg   tcell.Color
	rows []string
}{
	// 4 frames, each 2 cells wide
	{SheetLogo, tcell.ColorGreen, []string{"✨ 💎 💎 ✨ 🌟 💎 💎 🌟"}},
	{SheetCrate, tcell.ColorDefault, []string{"📦"}},
	{SheetGround, tcell.ColorDefault, []string{"🟫 🟫 🟫 🟫 🟫 🟫 🟫 🟫 🟫 🟫 🟫 🟫 🟫 🟫 🟫 🟫"}},
	{SheetOutline, tcell.ColorYellow, []string{"🔲"}},
	{SheetRaindrop, tcell.ColorLightBlue, []string{"💧 💦"}},
}

// RegisterSheets adds the demo glyph sheets to atlas.
func RegisterSheets(atlas *render.Atlas) error {
	for _, s := range sheetRows {
		sheet, err := render.ParseSheet(s.name, s.fg, s.rows...)
		if err != nil {
			return err
		}
		if err := atlas.Register(sheet); err != nil {
			return err
		}
	}
	return nil
}
