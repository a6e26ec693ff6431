// Package flowchart turns graph text like "A -> B" into finished ASCII
// diagrams. It wires the whole pipeline together: parsing, cycle-aware
// layered layout, grid geometry, glyph stamping, and edge routing, and
// exposes the final node positions for exporters that post-process the
// text output.
package flowchart

import (
	"strings"

	"github.com/matzehuels/gridflow/pkg/canvas"
	"github.com/matzehuels/gridflow/pkg/errors"
	"github.com/matzehuels/gridflow/pkg/geometry"
	"github.com/matzehuels/gridflow/pkg/layout"
	"github.com/matzehuels/gridflow/pkg/parse"
	"github.com/matzehuels/gridflow/pkg/render"
	"github.com/matzehuels/gridflow/pkg/router"
)

// canvasPadding is the blank border added around the finished diagram.
const canvasPadding = 5

// Options configures diagram generation. The zero value is not usable -
// start from DefaultOptions.
type Options struct {
	Direction         string // "TB" or "LR"
	Title             string // Optional title drawn above the diagram
	MaxTextWidth      int
	MinBoxWidth       int
	HorizontalSpacing int
	VerticalSpacing   int
	Shadow            bool
	Rounded           bool
	Compact           bool
}

// DefaultOptions returns the standard generation options: top-to-bottom
// flow, shadowed square boxes.
func DefaultOptions() Options {
	return Options{
		Direction:         "TB",
		MaxTextWidth:      22,
		MinBoxWidth:       10,
		HorizontalSpacing: 12,
		VerticalSpacing:   3,
		Shadow:            true,
	}
}

// Generator produces diagrams for one fixed set of options.
type Generator struct {
	opts Options
}

// New validates the options and returns a generator.
func New(opts Options) (*Generator, error) {
	opts.Direction = strings.ToUpper(opts.Direction)
	if err := errors.ValidateDirection(opts.Direction); err != nil {
		return nil, err
	}
	return &Generator{opts: opts}, nil
}

// Diagram is one generated flowchart plus the geometry that produced it.
// Positions and Dimensions describe the node boxes on the final canvas,
// after all margins and offsets, so exporters can locate boxes in the
// rendered text.
type Diagram struct {
	Text       string
	Positions  map[string]geometry.Point
	Dimensions map[string]geometry.Dimensions
	Layout     *layout.Result
	Width      int
	Height     int
}

// Generate parses the input and renders the diagram.
//
// The pipeline: parse the connection list, break cycles and assign
// layers, minimize crossings, size and place boxes (reserving margin
// lanes for back edges and overhang for group frames), stamp the title,
// group frames and boxes, then route forward edges and finally back
// edges so their lines may upgrade existing glyphs.
func (g *Generator) Generate(input string) (*Diagram, error) {
	parsed, err := parse.Parse(input)
	if err != nil {
		return nil, err
	}

	lay := layout.Compute(parsed.Graph)

	cfg := geometry.Config{
		MaxTextWidth:      g.opts.MaxTextWidth,
		MinBoxWidth:       g.opts.MinBoxWidth,
		Padding:           1,
		HorizontalSpacing: g.opts.HorizontalSpacing,
		VerticalSpacing:   g.opts.VerticalSpacing,
		Shadow:            g.opts.Shadow,
		Compact:           g.opts.Compact,
		GroupPadding:      2,
		GroupSpacing:      2,
	}

	dims := cfg.AllBoxDimensions(parsed.Graph.Nodes())

	backMargin := geometry.BackEdgeMargin(len(lay.BackEdges))

	horizontal := g.opts.Direction == "LR"

	var pos map[string]geometry.Point
	if horizontal {
		pos = cfg.PositionsLR(lay.Layers, dims, backMargin)
	} else {
		pos = cfg.PositionsTB(lay.Layers, dims, backMargin)
	}

	// Group frames may poke past the origin; fold the overhang into the
	// margins so they stay on canvas.
	groupBoxes := cfg.SeparateGroupBoxes(cfg.GroupBoxes(parsed.Groups, dims, pos))
	groupLeft, groupTop := geometry.GroupMargin(groupBoxes)
	if groupLeft > 0 || groupTop > 0 {
		pos = offsetPositions(pos, groupLeft, groupTop)
		groupBoxes = offsetGroupBoxes(groupBoxes, groupLeft, groupTop)
	}

	var layerBounds []geometry.LayerBoundary
	var columnBounds []geometry.ColumnBoundary
	if horizontal {
		columnBounds = geometry.OffsetColumnBoundaries(cfg.ColumnBoundaries(lay.Layers, dims), groupLeft)
	} else {
		layerBounds = geometry.OffsetLayerBoundaries(cfg.LayerBoundaries(lay.Layers, dims), groupTop)
	}

	canvasWidth, canvasHeight := cfg.CanvasSize(dims, pos)

	// A wider title centers the diagram under it; a wider diagram
	// centers the title instead.
	titleHeight, titleXOffset, diagramXOffset := 0, 0, 0
	if g.opts.Title != "" {
		titleWidth, h := render.TitleDimensions(g.opts.Title)
		titleHeight = h + 2
		if titleWidth > canvasWidth {
			diagramXOffset = (titleWidth - canvasWidth) / 2
			canvasWidth = titleWidth
		} else {
			titleXOffset = (canvasWidth - titleWidth) / 2
		}
	}

	c := canvas.New(canvasWidth+canvasPadding, canvasHeight+titleHeight+canvasPadding)

	if g.opts.Title != "" {
		render.DrawTitle(c, titleXOffset, 0, g.opts.Title)
	}

	if titleHeight > 0 || diagramXOffset > 0 {
		pos = offsetPositions(pos, diagramXOffset, titleHeight)
		groupBoxes = offsetGroupBoxes(groupBoxes, diagramXOffset, titleHeight)
		if horizontal {
			columnBounds = geometry.OffsetColumnBoundaries(columnBounds, diagramXOffset)
		} else {
			layerBounds = geometry.OffsetLayerBoundaries(layerBounds, titleHeight)
		}
	}

	// Frames go down first so every later pass may paint over the dotted
	// border cells.
	for _, gb := range groupBoxes {
		render.DrawGroupFrame(c, gb)
	}

	style := render.BoxStyle{Rounded: g.opts.Rounded, Shadow: g.opts.Shadow}
	for _, id := range parsed.Graph.Nodes() {
		p := pos[id]
		render.DrawBox(c, p.X, p.Y, dims[id], style)
	}

	r := router.New(c, parsed.Graph, lay, dims, pos, g.opts.Shadow)
	if horizontal {
		r.DrawForwardEdgesLR(columnBounds)
		r.DrawBackEdgesLR(2 + titleHeight)
	} else {
		r.DrawForwardEdges(layerBounds)
		r.DrawBackEdges()
	}

	return &Diagram{
		Text:       c.Render(),
		Positions:  pos,
		Dimensions: dims,
		Layout:     lay,
		Width:      c.Width(),
		Height:     c.Height(),
	}, nil
}

// Generate is the one-call convenience wrapper using default options.
func Generate(input string) (string, error) {
	g, err := New(DefaultOptions())
	if err != nil {
		return "", err
	}
	d, err := g.Generate(input)
	if err != nil {
		return "", err
	}
	return d.Text, nil
}

func offsetPositions(pos map[string]geometry.Point, dx, dy int) map[string]geometry.Point {
	shifted := make(map[string]geometry.Point, len(pos))
	for id, p := range pos {
		shifted[id] = geometry.Point{X: p.X + dx, Y: p.Y + dy}
	}
	return shifted
}

func offsetGroupBoxes(boxes []geometry.GroupBox, dx, dy int) []geometry.GroupBox {
	shifted := make([]geometry.GroupBox, len(boxes))
	for i, b := range boxes {
		b.X += dx
		b.Y += dy
		shifted[i] = b
	}
	return shifted
}
