// Package cache provides caching for diagram generation results.
//
// Two backends are available:
//   - FileCache: file-based storage for CLI usage (~/.cache/gridflow)
//   - RedisCache: Redis-backed storage for server deployments
//
// Keys are generated through the Keyer interface so that CLI and server
// share the same key scheme and can share a cache.
package cache

import (
	"context"
	"time"
)

// Default TTLs per pipeline stage. Diagrams are pure functions of their
// input so long TTLs are safe; they exist to bound cache growth.
const (
	TTLDiagram  = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with an optional TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}

// DiagramKeyOpts are the generation options that affect diagram output.
// Any option that changes the rendered text must be part of the key.
type DiagramKeyOpts struct {
	Direction         string `json:"direction"`
	Title             string `json:"title"`
	MaxTextWidth      int    `json:"max_text_width"`
	MinBoxWidth       int    `json:"min_box_width"`
	HorizontalSpacing int    `json:"horizontal_spacing"`
	VerticalSpacing   int    `json:"vertical_spacing"`
	Shadow            bool   `json:"shadow"`
	Rounded           bool   `json:"rounded"`
	Compact           bool   `json:"compact"`
}

// ArtifactKeyOpts are the export options that affect a rendered artifact
// (PNG, SVG, DOT) derived from a diagram.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	FontSize float64 `json:"font_size"`
	Scale    float64 `json:"scale"`
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// DiagramKey generates a key for a generated diagram, derived from the
	// graph source text and the generation options.
	DiagramKey(input string, opts DiagramKeyOpts) string

	// ArtifactKey generates a key for an exported artifact, derived from
	// the diagram hash and the export options.
	ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer implements the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// DiagramKey generates a key for a generated diagram.
func (k *DefaultKeyer) DiagramKey(input string, opts DiagramKeyOpts) string {
	return hashKey("diagram", input, opts)
}

// ArtifactKey generates a key for an exported artifact.
func (k *DefaultKeyer) ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", diagramHash, opts)
}
