package export

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/gridflow/pkg/parse"
)

// DOTOptions configures the Graphviz projection of a graph.
type DOTOptions struct {
	// Direction is the rankdir: "TB" or "LR".
	Direction string

	// Rounded draws nodes with rounded corners.
	Rounded bool
}

// ToDOT converts a parsed graph to Graphviz DOT format. Groups become
// subgraph clusters with dashed borders, mirroring the dotted frames of
// the text rendering. The result can be rendered with [RenderSVG].
func ToDOT(res *parse.Result, opts DOTOptions) string {
	rankdir := opts.Direction
	if rankdir != "LR" {
		rankdir = "TB"
	}
	style := "filled"
	if opts.Rounded {
		style = "rounded,filled"
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  node [shape=box, style=%q, fillcolor=white, fontname=\"monospace\"];\n", style)
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	grouped := make(map[string]bool)
	for i, g := range res.Groups {
		fmt.Fprintf(&buf, "  subgraph cluster_%d {\n", i)
		fmt.Fprintf(&buf, "    label=%q;\n", g.Name)
		buf.WriteString("    style=dashed;\n")
		for _, m := range g.Members {
			fmt.Fprintf(&buf, "    %q;\n", m)
			grouped[m] = true
		}
		buf.WriteString("  }\n")
	}
	if len(res.Groups) > 0 {
		buf.WriteString("\n")
	}

	for _, n := range res.Graph.Nodes() {
		if grouped[n] {
			continue
		}
		fmt.Fprintf(&buf, "  %q;\n", n)
	}

	buf.WriteString("\n")
	for _, e := range res.Graph.Edges() {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the SVG root element so the viewBox starts at
// the origin, which makes the output embeddable without offset surprises.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
