package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridflow/pkg/cache"
	"github.com/matzehuels/gridflow/pkg/flowchart"
	"github.com/matzehuels/gridflow/pkg/observability"
	"github.com/matzehuels/gridflow/pkg/parse"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete generate → export pipeline with caching.
func (r *Runner) Execute(ctx context.Context, input string, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Parse up front for statistics and early validation. Parsing is
	// cheap compared to generation, so this runs even on cache hits.
	parsed, err := parse.Parse(input)
	if err != nil {
		return nil, err
	}
	result.Stats.NodeCount = parsed.Graph.NodeCount()
	result.Stats.EdgeCount = parsed.Graph.EdgeCount()

	// Stage 1: Generate
	generateStart := time.Now()
	observability.Pipeline().OnGenerateStart(ctx, result.Stats.NodeCount)
	text, diagramHit, err := r.GenerateWithCacheInfo(ctx, input, opts)
	observability.Pipeline().OnGenerateComplete(ctx, result.Stats.NodeCount, time.Since(generateStart), err)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	result.Text = text
	result.DiagramHash = cache.Hash([]byte(text))
	result.Stats.GenerateTime = time.Since(generateStart)
	result.CacheInfo.DiagramHit = diagramHit

	r.Logger.Info("generated diagram",
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"cached", diagramHit,
		"duration", result.Stats.GenerateTime)

	// Stage 2: Export
	exportStart := time.Now()
	observability.Pipeline().OnExportStart(ctx, opts.Formats)
	artifacts, exportHit, err := r.ExportWithCacheInfo(ctx, input, text, result.DiagramHash, opts)
	observability.Pipeline().OnExportComplete(ctx, opts.Formats, time.Since(exportStart), err)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.ExportTime = time.Since(exportStart)
	result.CacheInfo.ExportHit = exportHit

	r.Logger.Info("exported outputs",
		"formats", opts.Formats,
		"cached", exportHit,
		"duration", result.Stats.ExportTime)

	return result, nil
}

// GenerateWithCacheInfo generates the diagram text with caching and
// returns cache hit info.
func (r *Runner) GenerateWithCacheInfo(ctx context.Context, input string, opts Options) (string, bool, error) {
	opts.SetGenerateDefaults()
	r.applyLogger(&opts)

	cacheKey := r.Keyer.DiagramKey(input, opts.DiagramKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.cacheGet(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "diagram")
			return string(data), true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "diagram")
	}

	gen, err := flowchart.New(opts.FlowchartOptions())
	if err != nil {
		return "", false, err
	}
	diagram, err := gen.Generate(input)
	if err != nil {
		return "", false, err
	}

	_ = r.Cache.Set(ctx, cacheKey, []byte(diagram.Text), cache.TTLDiagram)
	observability.Cache().OnCacheSet(ctx, "diagram", len(diagram.Text))

	return diagram.Text, false, nil
}

// Generate is a convenience wrapper that discards the cache hit info.
func (r *Runner) Generate(ctx context.Context, input string, opts Options) (string, error) {
	text, _, err := r.GenerateWithCacheInfo(ctx, input, opts)
	return text, err
}

// ExportWithCacheInfo exports artifacts with caching and returns cache
// hit info. The input text is needed alongside the diagram because the
// DOT and SVG formats project the graph structure, not the rendered text.
func (r *Runner) ExportWithCacheInfo(ctx context.Context, input, text, diagramHash string, opts Options) (map[string][]byte, bool, error) {
	opts.SetExportDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Try to get all formats from cache
	artifacts := make(map[string][]byte)
	allCached := !opts.Refresh

	if allCached {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(diagramHash, opts.ArtifactKeyOpts(format))
			if data, hit, err := r.cacheGet(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	rendered, err := Export(ctx, input, text, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(diagramHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil
}

// cacheGet reads from the cache, retrying transient backend failures.
// The Redis backend marks those retryable; file and null backends never do.
func (r *Runner) cacheGet(ctx context.Context, key string) (data []byte, hit bool, err error) {
	err = cache.RetryWithBackoff(ctx, func() error {
		var getErr error
		data, hit, getErr = r.Cache.Get(ctx, key)
		return getErr
	})
	return data, hit, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
