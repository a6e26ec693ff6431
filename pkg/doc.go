// Package pkg provides the core libraries for Gridflow flowchart generation.
//
// # Overview
//
// Gridflow turns a plain-text connection list ("A -> B", one edge per line)
// into an ASCII flowchart drawn with box-drawing characters. The pkg
// directory is organized into three main areas:
//
//  1. Domain logic - parsing, graph structure, layered layout, text rendering
//  2. Export - PNG, SVG, and DOT artifact generation
//  3. Infrastructure - caching, pipeline orchestration, HTTP service
//
// # Architecture
//
// The typical data flow through Gridflow:
//
//	Connection list text
//	         ↓
//	    [parse] package (edges, chains, groups)
//	         ↓
//	    [graph] package (directed graph + group membership)
//	         ↓
//	    [layout] package (cycle breaking, layering, ordering)
//	         ↓
//	    [geometry] / [render] / [router] packages (boxes, frames, connectors)
//	         ↓
//	    Text diagram → [export] (PNG/SVG/DOT)
//
// # Quick Start
//
// Generate a diagram:
//
//	import "github.com/matzehuels/gridflow/pkg/flowchart"
//
//	gen, _ := flowchart.New(flowchart.DefaultOptions())
//	text, _ := gen.Generate("A -> B\nB -> C")
//	fmt.Println(text)
//
// Or run the full cached pipeline with artifact export:
//
//	runner := pipeline.NewRunner(store, nil, logger)
//	result, _ := runner.Execute(ctx, input, pipeline.Options{
//	    Formats: []string{"txt", "png"},
//	})
//
// # Main Packages
//
// [parse] - Connection list parsing: "A -> B" edges, "A -> B -> C" chains,
// and "[Group: members]" group definitions.
//
// [graph] - Directed graph with node labels, adjacency, and groups.
//
// [layout] - Sugiyama-style layered layout: DFS cycle breaking, longest-path
// layering, and barycenter crossing reduction.
//
// [geometry] - Box dimensions, positions, ports, and group boundaries on the
// character grid.
//
// [canvas] - Character grid with box-drawing glyph merging, so crossing
// connectors produce the right junction characters.
//
// [render] - Node boxes, group frames, and titles drawn onto the canvas.
//
// [router] - Orthogonal connector routing with arrowheads, port
// distribution, and margin lanes for back edges.
//
// [flowchart] - The generator tying parse, layout, and rendering together.
//
// [export] - PNG rendering (monospace font rasterization), Graphviz DOT
// generation, and SVG via the DOT output.
//
// [cache] - Content-addressed caching of diagrams and artifacts with file,
// Redis, and null backends.
//
// [pipeline] - The two-stage generate/export pipeline with per-stage
// caching, shared by the CLI and the HTTP service.
//
// [server] - HTTP service exposing diagram generation as a JSON API.
//
// [errors] - Coded errors with user-facing messages shared across surfaces.
//
// [observability] - Pluggable hooks for pipeline, cache, and server events.
//
// [parse]: https://pkg.go.dev/github.com/matzehuels/gridflow/pkg/parse
// [graph]: https://pkg.go.dev/github.com/matzehuels/gridflow/pkg/graph
// [layout]: https://pkg.go.dev/github.com/matzehuels/gridflow/pkg/layout
// [geometry]: https://pkg.go.dev/github.com/matzehuels/gridflow/pkg/geometry
// [canvas]: https://pkg.go.dev/github.com/matzehuels/gridflow/pkg/canvas
// [render]: https://pkg.go.dev/github.com/matzehuels/gridflow/pkg/render
// [router]: https://pkg.go.dev/github.com/matzehuels/gridflow/pkg/router
// [flowchart]: https://pkg.go.dev/github.com/matzehuels/gridflow/pkg/flowchart
// [export]: https://pkg.go.dev/github.com/matzehuels/gridflow/pkg/export
// [cache]: https://pkg.go.dev/github.com/matzehuels/gridflow/pkg/cache
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/gridflow/pkg/pipeline
// [server]: https://pkg.go.dev/github.com/matzehuels/gridflow/pkg/server
// [errors]: https://pkg.go.dev/github.com/matzehuels/gridflow/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/gridflow/pkg/observability
package pkg
