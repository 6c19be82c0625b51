package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rendis/geopaint/internal/engine/geo"
	"github.com/rendis/geopaint/internal/engine/render"
	"github.com/rendis/geopaint/internal/model"
	"github.com/rendis/geopaint/internal/tui/styles"
)

// MapView renders the projected map as Braille outlines. Country borders,
// selected countries, the flight path and the plane are drawn in that
// order; a later layer wins a shared cell.
type MapView struct {
	width  int
	height int
}

func NewMapView(width, height int) MapView {
	return MapView{width: width, height: height}
}

func (m *MapView) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Size returns the view size in cells.
func (m MapView) Size() (int, int) {
	return m.width, m.height
}

// Braille character encoding:
// Each braille char is a 2x4 dot grid.
// Dot positions:  0 3
//
//	1 4
//	2 5
//	6 7
//
// Unicode: 0x2800 + sum of raised dot bits
var brailleDots = [8]rune{0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80}

// dotGrid holds, per dot, the index of the style that painted it (0 = none).
type dotGrid struct {
	w, h  int
	cells [][]uint8
}

func newDotGrid(w, h int) *dotGrid {
	g := &dotGrid{w: w, h: h, cells: make([][]uint8, h)}
	for i := range g.cells {
		g.cells[i] = make([]uint8, w)
	}
	return g
}

func (g *dotGrid) set(x, y int, v uint8) {
	if x >= 0 && x < g.w && y >= 0 && y < g.h && v >= g.cells[y][x] {
		g.cells[y][x] = v
	}
}

// gridPen traces projected geometry into the dot grid. It implements
// geo.Pen.
type gridPen struct {
	grid   *dotGrid
	view   model.ViewportTransform
	k      float64
	ox, oy float64
	val    uint8

	cur, start [2]int
	open       bool
}

func (p *gridPen) toDot(x, y float64) [2]int {
	vx, vy := p.view.Apply(x, y)
	return [2]int{int(math.Round(p.ox + vx*p.k)), int(math.Round(p.oy + vy*p.k))}
}

func (p *gridPen) MoveTo(x, y float64) {
	p.cur = p.toDot(x, y)
	p.start = p.cur
	p.open = true
	p.grid.set(p.cur[0], p.cur[1], p.val)
}

func (p *gridPen) LineTo(x, y float64) {
	next := p.toDot(x, y)
	if p.open {
		drawLine(p.grid, p.cur[0], p.cur[1], next[0], next[1], p.val)
	}
	p.cur = next
	p.open = true
}

func (p *gridPen) ClosePath() {
	if p.open {
		drawLine(p.grid, p.cur[0], p.cur[1], p.start[0], p.start[1], p.val)
		p.cur = p.start
	}
}

// View draws scene through proj and view. The live canvas is fitted into
// the cell area with its aspect ratio kept.
func (m MapView) View(scene render.Scene, proj *geo.Projection, view model.ViewportTransform) string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	blank := strings.Repeat(strings.Repeat(" ", m.width)+"\n", m.height-1) + strings.Repeat(" ", m.width)
	if proj == nil || scene.Boundaries == nil {
		return blank
	}

	// Each braille char represents 2 columns x 4 rows of dots; a dot is
	// roughly square on screen.
	dotW, dotH := m.width*2, m.height*4
	k := math.Min(float64(dotW)/proj.Width(), float64(dotH)/proj.Height())
	pen := &gridPen{
		grid: newDotGrid(dotW, dotH),
		view: view,
		k:    k,
		ox:   (float64(dotW) - proj.Width()*k) / 2,
		oy:   (float64(dotH) - proj.Height()*k) / 2,
	}

	palette := []lipgloss.Style{
		lipgloss.NewStyle(),
		lipgloss.NewStyle().Foreground(styles.Muted),
	}
	colorIdx := make(map[string]uint8)
	styleFor := func(c string) uint8 {
		if i, ok := colorIdx[c]; ok {
			return i
		}
		palette = append(palette, lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Bold(true))
		colorIdx[c] = uint8(len(palette) - 1)
		return colorIdx[c]
	}

	var selected []model.CountryCode
	for _, code := range scene.Boundaries.Codes() {
		if _, ok := scene.Fills[code]; ok {
			selected = append(selected, code)
			continue
		}
		f, _ := scene.Boundaries.Feature(code)
		pen.val = 1
		pen.open = false
		proj.Trace(f.Geometry, pen)
	}
	for _, code := range selected {
		f, _ := scene.Boundaries.Feature(code)
		pen.val = styleFor(scene.Fills[code].Color)
		pen.open = false
		proj.Trace(f.Geometry, pen)
	}

	if fr := scene.Flight; fr != nil {
		palette = append(palette, lipgloss.NewStyle().Foreground(lipgloss.Color(fr.Theme.PathColor)))
		pen.val = uint8(len(palette) - 1)
		pen.open = false
		for i, p := range fr.Path.Polyline(fr.Progress, 64) {
			if i == 0 {
				pen.MoveTo(p[0], p[1])
			} else {
				pen.LineTo(p[0], p[1])
			}
		}
		palette = append(palette, lipgloss.NewStyle().Foreground(lipgloss.Color(fr.Theme.PlaneColor)).Bold(true))
		pen.val = uint8(len(palette) - 1)
		c := pen.toDot(fr.Point[0], fr.Point[1])
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				pen.grid.set(c[0]+dx, c[1]+dy, pen.val)
			}
		}
	}

	return m.compose(pen.grid, palette)
}

func (m MapView) compose(grid *dotGrid, palette []lipgloss.Style) string {
	dotPositions := [8][2]int{
		{0, 0}, {1, 0}, {2, 0}, {0, 1},
		{1, 1}, {2, 1}, {3, 0}, {3, 1},
	}

	var sb strings.Builder
	for row := 0; row < m.height; row++ {
		for col := 0; col < m.width; col++ {
			var val rune = 0x2800
			var top uint8
			for dot := 0; dot < 8; dot++ {
				dy := row*4 + dotPositions[dot][0]
				dx := col*2 + dotPositions[dot][1]
				if v := grid.cells[dy][dx]; v != 0 {
					val |= brailleDots[dot]
					if v > top {
						top = v
					}
				}
			}
			if top == 0 {
				sb.WriteRune(' ')
				continue
			}
			sb.WriteString(palette[top].Render(string(val)))
		}
		if row < m.height-1 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}

// drawLine draws a line between two points using Bresenham's algorithm.
func drawLine(grid *dotGrid, x0, y0, x1, y1 int, v uint8) {
	// Segments far outside the grid come from deep zoom; clamp the work.
	if (x0 < 0 && x1 < 0) || (y0 < 0 && y1 < 0) ||
		(x0 >= grid.w && x1 >= grid.w) || (y0 >= grid.h && y1 >= grid.h) {
		return
	}
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 >= x1 {
		sx = -1
	}
	sy := 1
	if y0 >= y1 {
		sy = -1
	}
	err := dx + dy

	for {
		grid.set(x0, y0, v)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
