// Package export writes generated diagrams to output formats.
//
// The diagram text itself is produced by [flowchart.Generator]; this package
// handles persistence and format conversion:
//   - Text: the diagram as-is, UTF-8 encoded
//   - PNG: rasterized with a monospace font, preserving the character grid
//   - DOT/SVG: a Graphviz projection of the underlying graph
package export

import (
	"fmt"
	"io"
	"os"
)

// WriteText writes diagram text to w.
func WriteText(w io.Writer, text string) error {
	if _, err := io.WriteString(w, text); err != nil {
		return fmt.Errorf("write text: %w", err)
	}
	return nil
}

// SaveText writes diagram text to a file at path.
func SaveText(path, text string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteText(f, text)
}
