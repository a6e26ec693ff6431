// Package pipeline provides the generate → export pipeline shared by the
// CLI and the server.
//
// The pipeline consists of two stages:
//
//  1. Generate: parse the connection list and render the text diagram
//  2. Export: convert the diagram into output formats (txt, png, svg, dot)
//
// Both stages are cached through [cache.Cache], so repeated requests for
// the same input and options are served without recomputation.
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	opts := pipeline.Options{
//	    Direction: "TB",
//	    Formats:   []string{"txt", "png"},
//	}
//	result, err := runner.Execute(ctx, "A -> B", opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	img := result.Artifacts["png"]
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridflow/pkg/cache"
	"github.com/matzehuels/gridflow/pkg/errors"
	"github.com/matzehuels/gridflow/pkg/flowchart"
)

// Format constants for output formats.
const (
	FormatText = "txt"
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatText: true,
	FormatPNG:  true,
	FormatSVG:  true,
	FormatDOT:  true,
}

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests. Zero values
// mean "use the default", so a request body of {} is valid.
type Options struct {
	// Generation options
	Direction         string `json:"direction,omitempty"`
	Title             string `json:"title,omitempty"`
	MaxTextWidth      int    `json:"max_text_width,omitempty"`
	MinBoxWidth       int    `json:"min_box_width,omitempty"`
	HorizontalSpacing int    `json:"horizontal_spacing,omitempty"`
	VerticalSpacing   int    `json:"vertical_spacing,omitempty"`
	NoShadow          bool   `json:"no_shadow,omitempty"`
	Rounded           bool   `json:"rounded,omitempty"`
	Compact           bool   `json:"compact,omitempty"`

	// Export options
	Formats  []string `json:"formats,omitempty"`
	Font     string   `json:"font,omitempty"`
	FontSize float64  `json:"font_size,omitempty"`
	Scale    float64  `json:"scale,omitempty"`

	// Refresh bypasses the cache and recomputes everything.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Text is the generated diagram.
	Text string

	// DiagramHash is the content hash of the diagram text.
	DiagramHash string

	// Artifacts contains exported outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount    int
	EdgeCount    int
	GenerateTime time.Duration
	ExportTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	DiagramHit bool // Whether the diagram came from cache
	ExportHit  bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: txt, png, svg, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks fields and applies defaults for the full
// pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetGenerateDefaults()
	if err := errors.ValidateDirection(o.Direction); err != nil {
		return err
	}
	o.SetExportDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetGenerateDefaults sets default values for diagram generation.
func (o *Options) SetGenerateDefaults() {
	o.Direction = strings.ToUpper(o.Direction)
	def := flowchart.DefaultOptions()
	if o.Direction == "" {
		o.Direction = def.Direction
	}
	if o.MaxTextWidth == 0 {
		o.MaxTextWidth = def.MaxTextWidth
	}
	if o.MinBoxWidth == 0 {
		o.MinBoxWidth = def.MinBoxWidth
	}
	if o.HorizontalSpacing == 0 {
		o.HorizontalSpacing = def.HorizontalSpacing
	}
	if o.VerticalSpacing == 0 {
		o.VerticalSpacing = def.VerticalSpacing
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetExportDefaults sets default values for exporting.
func (o *Options) SetExportDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatText}
	}
	if o.FontSize == 0 {
		o.FontSize = 16
	}
	if o.Scale == 0 {
		o.Scale = 2
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// FlowchartOptions converts pipeline options into generation options.
func (o *Options) FlowchartOptions() flowchart.Options {
	return flowchart.Options{
		Direction:         o.Direction,
		Title:             o.Title,
		MaxTextWidth:      o.MaxTextWidth,
		MinBoxWidth:       o.MinBoxWidth,
		HorizontalSpacing: o.HorizontalSpacing,
		VerticalSpacing:   o.VerticalSpacing,
		Shadow:            !o.NoShadow,
		Rounded:           o.Rounded,
		Compact:           o.Compact,
	}
}

// DiagramKeyOpts returns cache key options for diagram generation.
func (o *Options) DiagramKeyOpts() cache.DiagramKeyOpts {
	return cache.DiagramKeyOpts{
		Direction:         o.Direction,
		Title:             o.Title,
		MaxTextWidth:      o.MaxTextWidth,
		MinBoxWidth:       o.MinBoxWidth,
		HorizontalSpacing: o.HorizontalSpacing,
		VerticalSpacing:   o.VerticalSpacing,
		Shadow:            !o.NoShadow,
		Rounded:           o.Rounded,
		Compact:           o.Compact,
	}
}

// ArtifactKeyOpts returns cache key options for artifact export.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		FontSize: o.FontSize,
		Scale:    o.Scale,
	}
}
