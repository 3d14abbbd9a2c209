package render

import "github.com/gdamore/tcell/v2"

// Theme is the palette a stage is drawn with.
type Theme struct {
	Name       string
	Background tcell.Color
	Foreground tcell.Color
}

// Binding returns the frame binding for the theme.
func (t Theme) Binding() Binding {
	return Binding{Style: tcell.StyleDefault.Background(t.Background).Foreground(t.Foreground)}
}

// Themes are the stage palettes, indexed by stage order.
var Themes = []Theme{
	{
		// Showcase: deep green
		Name:       "emerald",
		Background: tcell.NewRGBColor(1, 68, 44),
		Foreground: tcell.ColorWhite,
	},
	{
		// Rain: night sky
		Name:       "midnight",
		Background: tcell.NewRGBColor(12, 14, 40),
		Foreground: tcell.ColorLightCyan,
	},
	{
		Name:       "plain",
		Background: tcell.ColorBlack,
		Foreground: tcell.ColorWhite,
	},
}

// ThemeFor returns the theme for stage index i, wrapping around.
func ThemeFor(i int) Theme {
	if i < 0 {
		i = -i
	}
	return Themes[i%len(Themes)]
}
