package export

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/flopp/go-findfont"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// PNGOptions configures PNG rasterization.
type PNGOptions struct {
	// FontSize in points, before scaling.
	FontSize float64

	// Font is an optional system font name (e.g. "DejaVuSansMono").
	// When empty or not found, the embedded Go Mono font is used.
	Font string

	// Background and Foreground are hex colors (e.g. "#FFFFFF").
	Background string
	Foreground string

	// Padding around the diagram in pixels, before scaling.
	Padding int

	// Scale is a resolution multiplier for crisp output on high-DPI
	// displays.
	Scale float64
}

// DefaultPNGOptions returns the standard rasterization settings.
func DefaultPNGOptions() PNGOptions {
	return PNGOptions{
		FontSize:   16,
		Background: "#FFFFFF",
		Foreground: "#000000",
		Padding:    20,
		Scale:      2,
	}
}

// RenderPNG rasterizes diagram text into a PNG image.
//
// A monospace font preserves the exact character layout, so the image is a
// faithful rendering of the text diagram. Dimensions are derived from the
// character cell size with a minimum of 100x100 (scaled).
func RenderPNG(text string, opts PNGOptions) ([]byte, error) {
	if opts.FontSize <= 0 {
		opts.FontSize = 16
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.Background == "" {
		opts.Background = "#FFFFFF"
	}
	if opts.Foreground == "" {
		opts.Foreground = "#000000"
	}

	face, err := loadMonospaceFace(opts.Font, opts.FontSize*opts.Scale)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(text, "\n")
	maxLineLen := 0
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLineLen {
			maxLineLen = n
		}
	}

	// Character cell size from font metrics. The 1.2 factor adds line
	// spacing so box-drawing rows do not touch.
	metrics := face.Metrics()
	ascent := float64(metrics.Ascent.Ceil())
	charHeight := float64(metrics.Ascent.Ceil() + metrics.Descent.Ceil())
	advance, ok := face.GlyphAdvance('M')
	if !ok {
		return nil, fmt.Errorf("font has no reference glyph")
	}
	charWidth := float64(advance.Ceil())
	lineHeight := charHeight * 1.2

	pad := float64(opts.Padding) * opts.Scale
	imgWidth := int(charWidth*float64(maxLineLen) + pad*2)
	imgHeight := int(lineHeight*float64(len(lines)) + pad*2)
	if min := int(100 * opts.Scale); imgWidth < min {
		imgWidth = min
	}
	if min := int(100 * opts.Scale); imgHeight < min {
		imgHeight = min
	}

	dc := gg.NewContext(imgWidth, imgHeight)
	dc.SetHexColor(opts.Background)
	dc.Clear()
	dc.SetHexColor(opts.Foreground)
	dc.SetFontFace(face)

	y := pad + ascent
	for _, line := range lines {
		dc.DrawString(line, pad, y)
		y += lineHeight
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// SavePNG rasterizes diagram text and writes the PNG to a file at path.
func SavePNG(path, text string, opts PNGOptions) error {
	data, err := RenderPNG(text, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// loadMonospaceFace loads a font face at the given size. A named system
// font is looked up on the font path first; the embedded Go Mono font is
// the fallback so rendering works without any fonts installed.
func loadMonospaceFace(name string, size float64) (font.Face, error) {
	data := gomono.TTF
	external := false
	if name != "" {
		if path, err := findfont.Find(name); err == nil {
			if fileData, err := os.ReadFile(path); err == nil {
				data = fileData
				external = true
			}
		}
	}

	f, err := truetype.Parse(data)
	if err != nil && external {
		// Named font was not a usable TrueType file, fall back.
		f, err = truetype.Parse(gomono.TTF)
	}
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}
