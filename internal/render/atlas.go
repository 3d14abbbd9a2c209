package render

import (
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rotisserie/eris"
)

// Transparent marks a sheet cell that is not painted.
const Transparent = "."

// Sheet is a grid of glyph cells. Sprite frames are rectangular windows
// into it.
type Sheet struct {
	Name       string
	Foreground tcell.Color
	cells      [][]string
}

// ParseSheet builds a sheet from rows of whitespace separated glyphs. Every
// row must hold the same number of glyphs.
func ParseSheet(name string, fg tcell.Color, rows ...string) (*Sheet, error) {
	if len(rows) == 0 {
		return nil, eris.Errorf("sheet %q: no rows", name)
	}
	cells := make([][]string, len(rows))
	for i, row := range rows {
		cells[i] = strings.Fields(row)
		if len(cells[i]) != len(cells[0]) {
			return nil, eris.Errorf("sheet %q: row %d has %d cells, want %d", name, i, len(cells[i]), len(cells[0]))
		}
	}
	if len(cells[0]) == 0 {
		return nil, eris.Errorf("sheet %q: empty rows", name)
	}
	return &Sheet{Name: name, Foreground: fg, cells: cells}, nil
}

func (s *Sheet) Width() int { return len(s.cells[0]) }
func (s *Sheet) Height() int { return len(s.cells) }

// At returns the glyph at (x, y), or Transparent outside the sheet.
func (s *Sheet) At(x, y int) string {
	if y < 0 || y >= len(s.cells) || x < 0 || x >= len(s.cells[y]) {
		return Transparent
	}
	return s.cells[y][x]
}

// Window returns the top-left cell and size of frame index within the
// sheet. Frames are laid out left to right starting at (offX, offY) and wrap
// onto the next band of rows. Zero width or height means "rest of the sheet".
func (s *Sheet) Window(index, frameW, frameH, offX, offY int) (x, y, w, h int, err error) {
	w, h = frameW, frameH
	if w <= 0 {
		w = s.Width() - offX
	}
	if h <= 0 {
		h = s.Height() - offY
	}
	if index < 0 || offX < 0 || offY < 0 || w <= 0 || h <= 0 {
		return 0, 0, 0, 0, eris.Wrapf(ErrFrameOutOfRange, "sheet %q frame %d", s.Name, index)
	}
	perRow := (s.Width() - offX) / w
	if perRow < 1 {
		return 0, 0, 0, 0, eris.Wrapf(ErrFrameOutOfRange, "sheet %q frame %d", s.Name, index)
	}
	x = offX + (index%perRow)*w
	y = offY + (index/perRow)*h
	if y+h > s.Height() {
		return 0, 0, 0, 0, eris.Wrapf(ErrFrameOutOfRange, "sheet %q frame %d", s.Name, index)
	}
	return x, y, w, h, nil
}

// Atlas is a named set of sheets. It is not safe for concurrent mutation.
type Atlas struct {
	sheets map[string]*Sheet
}

func NewAtlas() *Atlas {
	return &Atlas{sheets: make(map[string]*Sheet)}
}

// Register adds s under s.Name. Names are unique.
func (a *Atlas) Register(s *Sheet) error {
	if s == nil {
		return eris.New("register nil sheet")
	}
	if _, ok := a.sheets[s.Name]; ok {
		return eris.Errorf("sheet %q already registered", s.Name)
	}
	a.sheets[s.Name] = s
	return nil
}

// Lookup returns the sheet called name.
func (a *Atlas) Lookup(name string) (*Sheet, error) {
	s, ok := a.sheets[name]
	if !ok {
		return nil, eris.Wrapf(ErrTextureNotFound, "source %q", name)
	}
	return s, nil
}

// Names returns the registered sheet names, sorted.
func (a *Atlas) Names() []string {
	names := make([]string, 0, len(a.sheets))
	for n := range a.sheets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
