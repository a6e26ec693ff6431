package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridflow/pkg/pipeline"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	output  string // output file path, or base path for multiple formats
	formats string // comma-separated output formats
	noCache bool   // disable the diagram cache
	refresh bool   // bypass the cache and regenerate

	pipeline pipeline.Options
}

// generateCommand creates the generate command.
//
// Input is a connection list, one edge per line ("A -> B", chains like
// "A -> B -> C", and group definitions like "[Backend: API DB]"). It is
// read from the named file, or from stdin when the argument is "-" or
// absent.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate [file]",
		Short: "Generate a flowchart from a connection list",
		Example: `  echo "A -> B" | gridflow generate
  gridflow generate graph.txt -o diagram.txt
  gridflow generate graph.txt --direction LR --rounded -f txt,png`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, name, err := readInput(args)
			if err != nil {
				return err
			}
			c.Config.apply(&opts.pipeline)
			opts.pipeline.Formats = parseFormats(opts.formats)
			opts.pipeline.Refresh = opts.refresh
			return c.runGenerate(cmd, input, name, &opts)
		},
	}

	p := &opts.pipeline
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): txt (default), png, svg, dot (comma-separated)")
	cmd.Flags().StringVarP(&p.Direction, "direction", "d", "", "flow direction: TB (default) or LR")
	cmd.Flags().StringVarP(&p.Title, "title", "t", "", "title drawn above the diagram")
	cmd.Flags().IntVar(&p.MaxTextWidth, "max-text-width", 0, "wrap node labels at this width")
	cmd.Flags().IntVar(&p.MinBoxWidth, "min-box-width", 0, "minimum box width")
	cmd.Flags().IntVar(&p.HorizontalSpacing, "hspacing", 0, "horizontal spacing between boxes")
	cmd.Flags().IntVar(&p.VerticalSpacing, "vspacing", 0, "vertical spacing between layers")
	cmd.Flags().BoolVar(&p.NoShadow, "no-shadow", false, "disable box shadows")
	cmd.Flags().BoolVar(&p.Rounded, "rounded", false, "rounded box corners")
	cmd.Flags().BoolVar(&p.Compact, "compact", false, "compact boxes without vertical padding")
	cmd.Flags().StringVar(&p.Font, "font", "", "monospace font name for PNG export")
	cmd.Flags().Float64Var(&p.FontSize, "font-size", 0, "font size in points for PNG export")
	cmd.Flags().Float64Var(&p.Scale, "scale", 0, "resolution multiplier for PNG export")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the diagram cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the cache and regenerate")

	return cmd
}

func (c *CLI) runGenerate(cmd *cobra.Command, input, inputName string, opts *generateOpts) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("init cache: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	result, err := runner.Execute(cmd.Context(), input, opts.pipeline)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Generated diagram: %d nodes, %d edges", result.Stats.NodeCount, result.Stats.EdgeCount))

	// A plain text diagram with no output path goes to stdout.
	if opts.output == "" && len(opts.pipeline.Formats) == 1 && opts.pipeline.Formats[0] == pipeline.FormatText {
		fmt.Fprintln(cmd.OutOrStdout(), result.Text)
		printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.DiagramHit)
		return nil
	}

	base := outputBase(opts.output, inputName)
	for _, format := range opts.pipeline.Formats {
		path := base + "." + format
		if opts.output != "" && len(opts.pipeline.Formats) == 1 {
			path = opts.output
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.DiagramHit)
	return nil
}

// readInput loads the connection list from the file argument, or stdin
// when absent or "-". Returns the text and a display name for deriving
// output paths.
func readInput(args []string) (input, name string, err error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), "flowchart", nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(data), args[0], nil
}

// outputBase derives the base output path. An explicit output keeps its
// directory and name but drops a known format extension; otherwise the
// input name is used without its extension.
func outputBase(output, inputName string) string {
	if output == "" {
		return strings.TrimSuffix(inputName, filepath.Ext(inputName))
	}
	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	if pipeline.ValidFormats[ext] {
		return strings.TrimSuffix(output, "."+ext)
	}
	return output
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatText}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
