package export

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"isoflow/diagram"
	"isoflow/geometry"
	"isoflow/pathfinding"
	"isoflow/scene"
)

// ErrEmptyView is returned when there is nothing to draw.
var ErrEmptyView = errors.New("nothing to export")

const (
	fontSize      = 14.0
	arrowSize     = 14.0
	defaultStroke = "#a5b8f3"
	itemFill      = "#ffffff"
	itemStroke    = "#53606e"
	textColor     = "#1e2329"
)

// PNGExporter rasterizes the isometric view.
type PNGExporter struct {
	opts Options
}

// NewPNGExporter creates a PNG exporter.
func NewPNGExporter(opts Options) *PNGExporter {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.Padding < 0 {
		opts.Padding = 0
	}
	return &PNGExporter{opts: opts}
}

func (e *PNGExporter) FileExtension() string {
	return ".png"
}

func (e *PNGExporter) FormatName() string {
	return "PNG"
}

func (e *PNGExporter) Export(m diagram.Model, viewID string) ([]byte, error) {
	_, snap, err := derive(m, viewID, e.opts)
	if err != nil {
		return nil, err
	}
	dc, err := e.Render(m, snap)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Render draws snap onto a new context sized to fit it. Rectangles are
// painted first, then connectors, text boxes and items on top.
func (e *PNGExporter) Render(m diagram.Model, snap scene.Snapshot) (*gg.Context, error) {
	region, ok := snap.Bounds()
	if !ok {
		return nil, ErrEmptyView
	}
	c := newCanvas(geometry.ProjectRegion(region), e.opts)

	face, err := loadFace(fontSize * e.opts.Scale)
	if err != nil {
		return nil, err
	}
	c.dc.SetFontFace(face)

	c.dc.SetHexColor("#ffffff")
	c.dc.Clear()

	for _, r := range snap.Rectangles {
		c.rectangle(m, r)
	}
	for _, cs := range snap.Connectors {
		c.connector(m, cs)
	}
	for _, tb := range snap.TextBoxes {
		c.textBox(m, tb)
	}
	for _, vi := range snap.Items {
		c.item(m, vi)
	}
	return c.dc, nil
}

func loadFace(size float64) (font.Face, error) {
	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// canvas maps fractional tile coordinates onto image pixels.
type canvas struct {
	dc     *gg.Context
	origin geometry.Point
	scale  float64
	pad    float64
}

func newCanvas(b geometry.ProjectedBounds, opts Options) *canvas {
	w := int(math.Ceil((b.Width() + 2*opts.Padding) * opts.Scale))
	h := int(math.Ceil((b.Height() + 2*opts.Padding) * opts.Scale))
	return &canvas{
		dc:     gg.NewContext(w, h),
		origin: b.Min,
		scale:  opts.Scale,
		pad:    opts.Padding,
	}
}

// project returns the pixel position of fractional tile coordinates x,y.
func (c *canvas) project(x, y float64) (float64, float64) {
	halfW := geometry.ProjectedTileSize.Width / 2
	halfH := geometry.ProjectedTileSize.Height / 2
	px := halfW*(x-y) - c.origin.X + c.pad
	py := -halfH*(x+y) - c.origin.Y + c.pad
	return px * c.scale, py * c.scale
}

func (c *canvas) tile(t geometry.Tile) (float64, float64) {
	return c.project(float64(t.X), float64(t.Y))
}

// diamond traces the outline of region r including the half-tile margin.
func (c *canvas) diamond(r geometry.Region) {
	x0, y0 := float64(r.From.X)-0.5, float64(r.From.Y)-0.5
	x1, y1 := float64(r.To.X)+0.5, float64(r.To.Y)+0.5
	c.dc.NewSubPath()
	c.dc.MoveTo(c.project(x0, y0))
	c.dc.LineTo(c.project(x1, y0))
	c.dc.LineTo(c.project(x1, y1))
	c.dc.LineTo(c.project(x0, y1))
	c.dc.ClosePath()
}

func (c *canvas) setColor(m diagram.Model, id, fallback, alpha string) {
	hex := fallback
	if col, ok := m.Color(id); ok && col.Value != "" {
		hex = col.Value
	}
	if len(hex) == 7 {
		hex += alpha
	}
	c.dc.SetHexColor(hex)
}

func (c *canvas) rectangle(m diagram.Model, r scene.RectangleScene) {
	c.diamond(r.Bounds)
	c.setColor(m, r.Rectangle.Color, defaultStroke, "99")
	c.dc.FillPreserve()
	c.setColor(m, r.Rectangle.Color, defaultStroke, "")
	c.dc.SetLineWidth(2 * c.scale)
	c.dc.Stroke()
}

func (c *canvas) connector(m diagram.Model, cs scene.ConnectorScene) {
	conn := cs.Connector
	if len(cs.Path.Tiles) == 0 {
		return
	}
	width := float64(conn.Width)
	if width <= 0 {
		width = diagram.DefaultConnectorWidth
	}
	c.dc.SetLineWidth(width / 2 * c.scale)
	c.dc.SetLineCap(gg.LineCapRound)
	switch conn.Style {
	case diagram.StyleDashed:
		c.dc.SetDash(4*width*c.scale, 3*width*c.scale)
	case diagram.StyleDotted:
		c.dc.SetDash(0.5*width*c.scale, 2*width*c.scale)
	default:
		c.dc.SetDash()
	}
	c.setColor(m, conn.Color, defaultStroke, "")
	for i, t := range cs.Path.Tiles {
		x, y := c.tile(t)
		if i == 0 {
			c.dc.MoveTo(x, y)
		} else {
			c.dc.LineTo(x, y)
		}
	}
	c.dc.Stroke()
	c.dc.SetDash()

	for _, a := range cs.Arrows {
		c.arrow(a)
	}
	if conn.Description != "" {
		x, y := c.tile(cs.LabelTile)
		c.label(conn.Description, x, y, conn.ShowTextFrame())
	}
}

// arrow draws a head at a placement. Rotation 0 points towards decreasing y
// and 90 towards increasing x, in tile space.
func (c *canvas) arrow(a pathfinding.ArrowPlacement) {
	rad := a.Rotation * math.Pi / 180
	dx, dy := math.Sin(rad), -math.Cos(rad)
	tipX, tipY := c.project(a.Position.X+dx*0.3, a.Position.Y+dy*0.3)
	baseX, baseY := c.project(a.Position.X, a.Position.Y)

	vx, vy := tipX-baseX, tipY-baseY
	n := math.Hypot(vx, vy)
	if n == 0 {
		return
	}
	vx, vy = vx/n, vy/n
	size := arrowSize * c.scale
	c.dc.MoveTo(tipX, tipY)
	c.dc.LineTo(tipX-size*vx+size*0.5*vy, tipY-size*vy-size*0.5*vx)
	c.dc.LineTo(tipX-size*vx-size*0.5*vy, tipY-size*vy+size*0.5*vx)
	c.dc.ClosePath()
	c.dc.Fill()
}

func (c *canvas) textBox(m diagram.Model, tb scene.TextBoxScene) {
	x0, y0 := c.tile(tb.TextBox.Tile)
	x1, y1 := c.tile(tb.TextBox.EndTile())
	c.setColor(m, tb.TextBox.Color, textColor, "")
	c.dc.DrawStringAnchored(tb.TextBox.Content, (x0+x1)/2, (y0+y1)/2, 0.5, 0.5)
}

func (c *canvas) item(m diagram.Model, vi diagram.ViewItem) {
	size := vi.Size
	if size <= 0 {
		size = diagram.DefaultItemSize
	}
	inset := 0.5 - 0.15*float64(size)
	x, y := float64(vi.Tile.X), float64(vi.Tile.Y)
	c.dc.NewSubPath()
	c.dc.MoveTo(c.project(x-0.5+inset, y-0.5+inset))
	c.dc.LineTo(c.project(x+0.5-inset, y-0.5+inset))
	c.dc.LineTo(c.project(x+0.5-inset, y+0.5-inset))
	c.dc.LineTo(c.project(x-0.5+inset, y+0.5-inset))
	c.dc.ClosePath()
	c.dc.SetHexColor(itemFill)
	c.dc.FillPreserve()
	c.dc.SetHexColor(itemStroke)
	c.dc.SetLineWidth(2 * c.scale)
	c.dc.Stroke()

	name := diagram.DefaultModelItemName
	if mi, ok := m.Item(vi.ID); ok && mi.Name != "" {
		name = mi.Name
	}
	cx, cy := c.tile(vi.Tile)
	height := float64(vi.LabelHeight)
	if height <= 0 {
		height = diagram.DefaultLabelHeight
	}
	c.label(name, cx, cy-height/2*c.scale, true)
}

// label writes text centred on x,y, optionally on a white frame.
func (c *canvas) label(text string, x, y float64, frame bool) {
	if frame {
		w, h := c.dc.MeasureString(text)
		pad := 4 * c.scale
		c.dc.DrawRectangle(x-w/2-pad, y-h/2-pad, w+2*pad, h+2*pad)
		c.dc.SetHexColor("#ffffffe6")
		c.dc.FillPreserve()
		c.dc.SetHexColor(itemStroke)
		c.dc.SetLineWidth(1)
		c.dc.Stroke()
	}
	c.dc.SetHexColor(textColor)
	c.dc.DrawStringAnchored(text, x, y, 0.5, 0.5)
}
