package export

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/gridflow/pkg/parse"
)

func TestSaveText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	text := "┌───┐\n│ A │\n└───┘\n"

	if err := SaveText(path, text); err != nil {
		t.Fatalf("SaveText error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if string(data) != text {
		t.Errorf("round trip mismatch: %q", data)
	}
}

func TestRenderPNG(t *testing.T) {
	data, err := RenderPNG("┌────┐\n│ Hi │\n└────┘", DefaultPNGOptions())
	if err != nil {
		t.Fatalf("RenderPNG error: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not valid PNG: %v", err)
	}

	// Minimum dimensions are 100x100 scaled by 2
	bounds := img.Bounds()
	if bounds.Dx() < 200 || bounds.Dy() < 200 {
		t.Errorf("image below minimum dimensions: %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestRenderPNGEmptyText(t *testing.T) {
	// Even empty text produces a minimum-size image
	data, err := RenderPNG("", DefaultPNGOptions())
	if err != nil {
		t.Fatalf("RenderPNG error: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not valid PNG: %v", err)
	}
	if img.Bounds().Dx() != 200 || img.Bounds().Dy() != 200 {
		t.Errorf("expected 200x200 minimum, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestRenderPNGUnknownFontFallsBack(t *testing.T) {
	opts := DefaultPNGOptions()
	opts.Font = "definitely-not-a-real-font-name"

	if _, err := RenderPNG("A", opts); err != nil {
		t.Fatalf("unknown font should fall back to embedded font: %v", err)
	}
}

func TestToDOT(t *testing.T) {
	res, err := parse.Parse("Start -> Middle\nMiddle -> End\n[Phase: Middle End]")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	dot := ToDOT(res, DOTOptions{Direction: "TB"})

	for _, want := range []string{
		"digraph G {",
		"rankdir=TB;",
		`"Start" -> "Middle";`,
		`"Middle" -> "End";`,
		"subgraph cluster_0 {",
		`label="Phase";`,
		"style=dashed;",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q:\n%s", want, dot)
		}
	}

	// Grouped nodes appear inside the cluster, not as free nodes
	if strings.Contains(dot, "\n  \"Middle\";") {
		t.Errorf("grouped node should not be emitted at top level:\n%s", dot)
	}
}

func TestToDOTDirectionLR(t *testing.T) {
	res, err := parse.Parse("A -> B")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	dot := ToDOT(res, DOTOptions{Direction: "LR", Rounded: true})
	if !strings.Contains(dot, "rankdir=LR;") {
		t.Errorf("expected rankdir=LR:\n%s", dot)
	}
	if !strings.Contains(dot, "rounded") {
		t.Errorf("expected rounded node style:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="80pt" height="60pt" viewBox="0.00 0.00 80.00 60.00" xmlns="http://www.w3.org/2000/svg">`)
	out := normalizeViewBox(in)

	if !strings.Contains(string(out), `viewBox="0 0 80.00 60.00"`) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if !strings.Contains(string(out), `width="80" height="60"`) {
		t.Errorf("pixel dimensions not set: %s", out)
	}

	// SVG without a viewBox is returned unchanged
	plain := []byte("<svg>")
	if got := normalizeViewBox(plain); !bytes.Equal(got, plain) {
		t.Errorf("SVG without viewBox should be unchanged: %s", got)
	}
}
