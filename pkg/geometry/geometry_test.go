package geometry

import (
	"reflect"
	"testing"
)

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"short", "Hello", 10, []string{"Hello"}},
		{"exact fit", "Hello Wide", 10, []string{"Hello Wide"}},
		{"wraps", "Hello World Wide Web", 10, []string{"Hello", "World Wide", "Web"}},
		{"long word own line", "A Supercalifragilistic B", 10, []string{"A", "Supercalifragilistic", "B"}},
		{"empty", "", 10, []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WrapText(tt.text, tt.width); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("WrapText(%q, %d) = %v, want %v", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestBoxDimensions(t *testing.T) {
	c := DefaultConfig()

	d := c.BoxDimensions("A")
	if d.Width != c.MinBoxWidth {
		t.Errorf("Width = %d, want min width %d", d.Width, c.MinBoxWidth)
	}
	if d.Height != 5 {
		t.Errorf("Height = %d, want 5", d.Height)
	}

	// Wide labels grow past the minimum: text + padding + borders.
	wide := c.BoxDimensions("A Much Longer Label")
	if wide.Width != len("A Much Longer Label")+2*c.Padding+2 {
		t.Errorf("Width = %d, want %d", wide.Width, len("A Much Longer Label")+4)
	}
}

func TestBoxDimensionsCompact(t *testing.T) {
	c := DefaultConfig()
	c.Compact = true

	d := c.BoxDimensions("A")
	if d.Height != 3 {
		t.Errorf("compact Height = %d, want 3", d.Height)
	}
}

func TestBackEdgeMargin(t *testing.T) {
	tests := []struct {
		backEdges int
		want      int
	}{
		{0, 0},
		{1, 7},
		{2, 10},
		{5, 19},
	}
	for _, tt := range tests {
		if got := BackEdgeMargin(tt.backEdges); got != tt.want {
			t.Errorf("BackEdgeMargin(%d) = %d, want %d", tt.backEdges, got, tt.want)
		}
	}
}

func TestPositionsTBChain(t *testing.T) {
	c := DefaultConfig()
	layers := [][]string{{"A"}, {"B"}}
	dims := c.AllBoxDimensions([]string{"A", "B"})

	positions := c.PositionsTB(layers, dims, 0)

	if positions["A"] != (Point{X: 0, Y: 0}) {
		t.Errorf("A at %v, want (0,0)", positions["A"])
	}
	// Next layer starts below box height + shadow + vertical spacing.
	wantY := dims["A"].Height + 2 + c.VerticalSpacing
	if positions["B"].Y != wantY {
		t.Errorf("B.Y = %d, want %d", positions["B"].Y, wantY)
	}
}

func TestPositionsTBCenters(t *testing.T) {
	c := DefaultConfig()
	layers := [][]string{{"A"}, {"B", "C"}}
	dims := c.AllBoxDimensions([]string{"A", "B", "C"})

	positions := c.PositionsTB(layers, dims, 0)

	// Layer 1 is wider; A is centered over it.
	wA := dims["A"].Width + 1
	wide := (dims["B"].Width + 1) + c.HorizontalSpacing + (dims["C"].Width + 1)
	wantX := (wide - wA) / 2
	if positions["A"].X != wantX {
		t.Errorf("A.X = %d, want %d", positions["A"].X, wantX)
	}
	if positions["B"].X != 0 {
		t.Errorf("B.X = %d, want 0", positions["B"].X)
	}
	wantCX := dims["B"].Width + 1 + c.HorizontalSpacing
	if positions["C"].X != wantCX {
		t.Errorf("C.X = %d, want %d", positions["C"].X, wantCX)
	}
}

func TestPositionsTBLeftMargin(t *testing.T) {
	c := DefaultConfig()
	layers := [][]string{{"A"}}
	dims := c.AllBoxDimensions([]string{"A"})

	positions := c.PositionsTB(layers, dims, 7)
	if positions["A"].X != 7 {
		t.Errorf("A.X = %d, want 7", positions["A"].X)
	}
}

func TestPositionsLRChain(t *testing.T) {
	c := DefaultConfig()
	layers := [][]string{{"A"}, {"B"}}
	dims := c.AllBoxDimensions([]string{"A", "B"})

	positions := c.PositionsLR(layers, dims, 0)

	if positions["A"] != (Point{X: 0, Y: 0}) {
		t.Errorf("A at %v, want (0,0)", positions["A"])
	}
	wantX := dims["A"].Width + 1 + c.HorizontalSpacing
	if positions["B"].X != wantX {
		t.Errorf("B.X = %d, want %d", positions["B"].X, wantX)
	}
}

func TestLayerBoundaries(t *testing.T) {
	c := DefaultConfig()
	layers := [][]string{{"A"}, {"B"}}
	dims := c.AllBoxDimensions([]string{"A", "B"})

	boundaries := c.LayerBoundaries(layers, dims)
	if len(boundaries) != 2 {
		t.Fatalf("len(boundaries) = %d, want 2", len(boundaries))
	}

	footprint := dims["A"].Height + 2
	first := boundaries[0]
	if first.TopY != 0 || first.BottomY != footprint-1 {
		t.Errorf("first extent = [%d, %d], want [0, %d]", first.TopY, first.BottomY, footprint-1)
	}
	if first.GapStartY != footprint {
		t.Errorf("GapStartY = %d, want %d", first.GapStartY, footprint)
	}
	// Gap ends the row before the next layer begins.
	second := boundaries[1]
	if first.GapEndY != second.TopY-1 {
		t.Errorf("GapEndY = %d, want %d", first.GapEndY, second.TopY-1)
	}
	// Last layer's gap extends by the vertical spacing.
	if second.GapEndY != second.GapStartY+c.VerticalSpacing {
		t.Errorf("last GapEndY = %d, want %d", second.GapEndY, second.GapStartY+c.VerticalSpacing)
	}
}

func TestColumnBoundaries(t *testing.T) {
	c := DefaultConfig()
	layers := [][]string{{"A"}, {"B"}}
	dims := c.AllBoxDimensions([]string{"A", "B"})

	boundaries := c.ColumnBoundaries(layers, dims)
	footprint := dims["A"].Width + 1
	first := boundaries[0]
	if first.LeftX != 0 || first.RightX != footprint-1 {
		t.Errorf("first extent = [%d, %d], want [0, %d]", first.LeftX, first.RightX, footprint-1)
	}
	if first.GapEndX != boundaries[1].LeftX-1 {
		t.Errorf("GapEndX = %d, want %d", first.GapEndX, boundaries[1].LeftX-1)
	}
}

func TestPortX(t *testing.T) {
	tests := []struct {
		name      string
		boxX      int
		boxWidth  int
		idx       int
		count     int
		want      int
	}{
		{"single port centers", 0, 10, 0, 1, 5},
		{"single port offset box", 4, 10, 0, 1, 9},
		{"two ports first", 0, 10, 0, 2, 4},
		{"two ports second", 0, 10, 1, 2, 6},
		{"three ports middle", 0, 16, 1, 3, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PortX(tt.boxX, tt.boxWidth, tt.idx, tt.count); got != tt.want {
				t.Errorf("PortX = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPortY(t *testing.T) {
	// Height 5: content rows 1..3.
	if got := PortY(0, 5, 0, 1); got != 2 {
		t.Errorf("PortY single = %d, want 2", got)
	}
	// Height 3 (compact): single content row.
	if got := PortY(0, 3, 0, 3); got != 1 {
		t.Errorf("PortY compact = %d, want 1", got)
	}
	// Ports stay clamped inside the content rows.
	for i := 0; i < 4; i++ {
		got := PortY(10, 5, i, 4)
		if got < 11 || got > 13 {
			t.Errorf("PortY idx %d = %d, out of content rows [11, 13]", i, got)
		}
	}
}

func TestCanvasSize(t *testing.T) {
	c := DefaultConfig()
	dims := c.AllBoxDimensions([]string{"A"})
	positions := map[string]Point{"A": {X: 3, Y: 2}}

	w, h := c.CanvasSize(dims, positions)
	if w != 3+dims["A"].Width+2 {
		t.Errorf("width = %d, want %d", w, 3+dims["A"].Width+2)
	}
	if h != 2+dims["A"].Height+2 {
		t.Errorf("height = %d, want %d", h, 2+dims["A"].Height+2)
	}
}
