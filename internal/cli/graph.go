package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/typetower/pkg/graphio"
	"github.com/matzehuels/typetower/pkg/pipeline"
	"github.com/matzehuels/typetower/pkg/render"
	"github.com/matzehuels/typetower/pkg/typegraph"
)

// Graph export formats.
const (
	graphFormatJSON = "json"
	graphFormatDOT  = "dot"
	graphFormatSVG  = "svg"
	graphFormatPNG  = "png"
	graphFormatPDF  = "pdf"
)

// validGraphFormats is the set of supported graph export formats.
var validGraphFormats = map[string]bool{
	graphFormatJSON: true,
	graphFormatDOT:  true,
	graphFormatSVG:  true,
	graphFormatPNG:  true,
	graphFormatPDF:  true,
}

// validateGraphFormat checks that a graph export format is valid.
func validateGraphFormat(format string) error {
	if !validGraphFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: json, dot, svg, png, pdf)", format)
	}
	return nil
}

// graphCommand creates the graph command for exporting the type graph.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		format   string
		output   string
		detailed bool
		noCache  bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "graph [source]",
		Short: "Export the inferred type graph",
		Long: `Infer the type graph from the input and export it without generating code.

The JSON export is the canonical serialized graph and can be archived or
diffed between runs. The DOT export (and its SVG, PNG, and PDF renderings)
shows named types as nodes with edges for their references, including
recursive ones.

Examples:
  typetower graph person.json                 # graph JSON to stdout
  typetower graph person.json -f svg -o g.svg # rendered diagram
  typetower graph schema.json --schema -f dot`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setSource(&opts, args[0]); err != nil {
				return err
			}
			if err := validateGraphFormat(format); err != nil {
				return err
			}
			return c.runGraph(cmd.Context(), opts, format, output, detailed, noCache)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", graphFormatJSON, "export format: json (default), dot, svg, png, pdf")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&opts.RootName, "name", "n", "", "name for the top-level type")
	cmd.Flags().StringVar(&opts.Format, "input-format", "", "input format: json (default), yaml, toml")
	cmd.Flags().BoolVar(&opts.Schema, "schema", false, "treat the input as a JSON Schema")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "show structural detail in diagram labels")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runGraph decodes the input, infers the type graph, and exports it.
func (c *CLI) runGraph(ctx context.Context, opts pipeline.Options, format, output string, detailed, noCache bool) error {
	if err := opts.ValidateForDecode(); err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	data, err := pipeline.ReadSource(ctx, runner.Client, opts)
	if err != nil {
		return err
	}
	docs, err := pipeline.DecodeDocuments(data, opts)
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	graph, cacheHit, err := runner.InferWithCacheInfo(ctx, data, docs, opts)
	if err != nil {
		return fmt.Errorf("infer: %w", err)
	}
	prog.done(fmt.Sprintf("Inferred %d top-level type(s)", graph.Len()))

	exported, err := exportGraph(graph, format, detailed)
	if err != nil {
		return err
	}

	// Binary formats need a file; derive one from the source if missing.
	if output == "" && (format == graphFormatPNG || format == graphFormatPDF) {
		output = suggestGraphOutput(opts.Source, format)
	}

	out, err := openOutput(output)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(exported); err != nil {
		return err
	}
	if output != "" {
		printSuccess("Exported %s graph", format)
		printStats(len(docs), graph.Len(), cacheHit)
		printFile(output)
	}
	return nil
}

// exportGraph serializes the graph in the requested format.
func exportGraph(graph *typegraph.TopLevels, format string, detailed bool) ([]byte, error) {
	if format == graphFormatJSON {
		return graphio.MarshalGraph(graph)
	}

	dot := render.ToDOT(graph, render.Options{Detailed: detailed})
	switch format {
	case graphFormatDOT:
		return []byte(dot), nil
	case graphFormatSVG:
		return render.RenderSVG(dot)
	case graphFormatPNG:
		return render.RenderPNG(dot, 2.0)
	case graphFormatPDF:
		return render.RenderPDF(dot)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

// suggestGraphOutput derives an output path from the source when rendering
// binary formats without an explicit --output.
func suggestGraphOutput(source, format string) string {
	base := strings.TrimSuffix(source, filepath.Ext(source))
	if base == "" || base == "-" {
		base = "graph"
	}
	return base + "." + format
}
