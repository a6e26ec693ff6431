package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/gridflow/pkg/export"
	"github.com/matzehuels/gridflow/pkg/parse"
)

// Export converts a generated diagram into the requested output formats.
//
// The txt and png formats derive from the diagram text; dot and svg are
// projections of the graph structure and so are built from the input.
func Export(ctx context.Context, input, text string, opts Options) (map[string][]byte, error) {
	opts.SetExportDefaults()

	artifacts := make(map[string][]byte, len(opts.Formats))

	// DOT is shared between the dot and svg formats, built at most once.
	var dot string
	buildDOT := func() (string, error) {
		if dot != "" {
			return dot, nil
		}
		parsed, err := parse.Parse(input)
		if err != nil {
			return "", err
		}
		dot = export.ToDOT(parsed, export.DOTOptions{
			Direction: opts.Direction,
			Rounded:   opts.Rounded,
		})
		return dot, nil
	}

	for _, format := range opts.Formats {
		switch format {
		case FormatText:
			artifacts[format] = []byte(text)

		case FormatPNG:
			data, err := export.RenderPNG(text, export.PNGOptions{
				FontSize: opts.FontSize,
				Font:     opts.Font,
				Padding:  20,
				Scale:    opts.Scale,
			})
			if err != nil {
				return nil, fmt.Errorf("render png: %w", err)
			}
			artifacts[format] = data

		case FormatDOT:
			d, err := buildDOT()
			if err != nil {
				return nil, err
			}
			artifacts[format] = []byte(d)

		case FormatSVG:
			d, err := buildDOT()
			if err != nil {
				return nil, err
			}
			svg, err := export.RenderSVG(ctx, d)
			if err != nil {
				return nil, fmt.Errorf("render svg: %w", err)
			}
			artifacts[format] = svg

		default:
			return nil, ValidateFormat(format)
		}
	}

	return artifacts, nil
}
