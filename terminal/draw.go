package terminal

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"isoflow/diagram"
	"isoflow/geometry"
	"isoflow/interaction"
	"isoflow/pathfinding"
	"isoflow/scene"
)

var (
	styleBase      = tcell.StyleDefault
	styleItem      = tcell.StyleDefault.Bold(true)
	styleSelected  = tcell.StyleDefault.Reverse(true)
	stylePreview   = tcell.StyleDefault.Dim(true)
	styleStatus    = tcell.StyleDefault.Reverse(true)
	styleConnector = tcell.StyleDefault.Foreground(tcell.ColorTeal)
)

// Draw repaints the whole screen and shows it.
func (a *App) Draw() {
	a.screen.Clear()
	snap := a.session.Snapshot()
	model := a.session.Model()
	ui := a.session.UI()
	vp := ui.Viewport()
	_, h := a.screen.Size()

	p := painter{screen: a.screen, vp: vp, maxY: h - 1}
	for _, r := range snap.Rectangles {
		p.rectangle(model, r.Rectangle, r.Bounds, selected(ui, scene.RefRectangle, r.Rectangle.ID))
	}
	for _, c := range snap.Connectors {
		style := styleConnector
		if selected(ui, scene.RefConnector, c.Connector.ID) {
			style = styleSelected
		}
		p.path(c.Path.Tiles, style)
		for _, arrow := range c.Arrows {
			p.arrow(arrow, style)
		}
		if c.Connector.Description != "" {
			p.centred(c.LabelTile, c.Connector.Description, styleBase)
		}
	}
	for _, tb := range snap.TextBoxes {
		style := styleBase
		if selected(ui, scene.RefTextBox, tb.TextBox.ID) {
			style = styleSelected
		}
		x, y := p.cell(tb.TextBox.Tile)
		p.text(x, y+CellHeight/2, tb.TextBox.Content, style)
	}
	for _, vi := range snap.Items {
		name := diagram.DefaultModelItemName
		if mi, ok := model.Item(vi.ID); ok && mi.Name != "" {
			name = mi.Name
		}
		style := styleItem
		if selected(ui, scene.RefItem, vi.ID) {
			style = styleSelected
		}
		p.item(vi.Tile, name, style)
	}
	a.drawPreview(p, ui)
	a.drawStatus(ui, model)
	a.screen.Show()
}

func (a *App) drawPreview(p painter, ui *interaction.UiState) {
	switch mode := ui.Mode.(type) {
	case *interaction.RectangleDrawMode:
		if mode.Preview != nil {
			p.rectangle(a.session.Model(), *mode.Preview, mode.Preview.Bounds(), false)
		}
	case *interaction.ConnectorMode:
		if mode.Preview != nil {
			p.path(mode.Preview.Tiles, stylePreview)
		}
	}
}

func (a *App) drawStatus(ui *interaction.UiState, m diagram.Model) {
	w, h := a.screen.Size()
	view, _ := m.CurrentView()
	dirty := ""
	if a.session.Dirty() {
		dirty = " *"
	}
	tile := ui.Mouse.Position.Tile
	status := fmt.Sprintf(" %s | %s%s | %s | %d%% | %d,%d ", ui.Mode.Kind(), view.Name, dirty, ui.EditorMode, int(math.Round(ui.Zoom*100)), tile.X, tile.Y)
	if a.message != "" {
		status += "| " + a.message + " "
	}
	for x := 0; x < w; x++ {
		a.screen.SetContent(x, h-1, ' ', nil, styleStatus)
	}
	painter{screen: a.screen, maxY: h}.text(0, h-1, status, styleStatus)
}

func selected(ui *interaction.UiState, typ scene.RefType, id string) bool {
	return ui.Selection != nil && ui.Selection.Type == typ && ui.Selection.ID == id
}

// painter writes tiles onto the cell grid. Rows at or below maxY belong to
// the status line and are never painted.
type painter struct {
	screen tcell.Screen
	vp     geometry.Viewport
	maxY   int
}

func (p painter) cell(t geometry.Tile) (int, int) {
	pt := Grid().TileToScreen(t, p.vp)
	return int(math.Floor(pt.X)), int(math.Floor(pt.Y))
}

func (p painter) set(x, y int, r rune, style tcell.Style) {
	w, _ := p.screen.Size()
	if x < 0 || y < 0 || x >= w || y >= p.maxY {
		return
	}
	p.screen.SetContent(x, y, r, nil, style)
}

func (p painter) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		p.set(x, y, r, style)
		x++
	}
}

func (p painter) centred(t geometry.Tile, s string, style tcell.Style) {
	x, y := p.cell(t)
	runes := []rune(s)
	p.text(x+(CellWidth-len(runes))/2, y+CellHeight/2, s, style)
}

func (p painter) rectangle(m diagram.Model, r diagram.Rectangle, b geometry.Region, sel bool) {
	style := styleBase.Background(tcell.ColorDarkSlateGray)
	if c, ok := m.Color(r.Color); ok {
		style = styleBase.Background(tcell.GetColor(c.Value))
	}
	if sel {
		style = style.Reverse(true)
	}
	for tx := b.From.X; tx <= b.To.X; tx++ {
		for ty := b.From.Y; ty <= b.To.Y; ty++ {
			x, y := p.cell(geometry.Tile{X: tx, Y: ty})
			for dy := 0; dy < CellHeight; dy++ {
				for dx := 0; dx < CellWidth; dx++ {
					p.set(x+dx, y+dy, ' ', style)
				}
			}
		}
	}
}

// path joins tile centres with box-drawing lines.
func (p painter) path(tiles []geometry.Tile, style tcell.Style) {
	for i, t := range tiles {
		x, y := p.cell(t)
		cx, cy := x+CellWidth/2, y+CellHeight/2
		if i+1 < len(tiles) {
			nx, ny := p.cell(tiles[i+1])
			ncx, ncy := nx+CellWidth/2, ny+CellHeight/2
			for sx := min(cx, ncx); sx <= max(cx, ncx); sx++ {
				p.set(sx, cy, '─', style)
			}
			for sy := min(cy, ncy); sy <= max(cy, ncy); sy++ {
				p.set(cx, sy, '│', style)
			}
		}
		p.set(cx, cy, '•', style)
	}
}

// arrow draws a head at a placement. Rotation is in degrees clockwise from
// "towards decreasing tile y", which is down the screen here.
func (p painter) arrow(a pathfinding.ArrowPlacement, style tcell.Style) {
	x := a.Position.X*CellWidth + p.vp.Scroll.X + CellWidth/2
	y := -a.Position.Y*CellHeight + p.vp.Scroll.Y + CellHeight/2
	p.set(int(math.Floor(x)), int(math.Floor(y)), arrowRune(a.Rotation), style)
}

func arrowRune(rotation float64) rune {
	deg := math.Mod(math.Mod(rotation, 360)+360, 360)
	switch {
	case deg >= 45 && deg < 135:
		return '▶'
	case deg >= 135 && deg < 225:
		return '▲'
	case deg >= 225 && deg < 315:
		return '◀'
	default:
		return '▼'
	}
}

func (p painter) item(t geometry.Tile, name string, style tcell.Style) {
	x, y := p.cell(t)
	for dx := 1; dx < CellWidth-1; dx++ {
		p.set(x+dx, y, '▁', styleBase)
	}
	label := []rune(name)
	if len(label) > CellWidth-2 {
		label = append(label[:CellWidth-3], '…')
	}
	start := x + (CellWidth-len(label))/2
	p.text(start, y+CellHeight/2, string(label), style)
}
