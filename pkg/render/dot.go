package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/typetower/pkg/emit"
	"github.com/matzehuels/typetower/pkg/typegraph"
)

// Options configures diagram rendering.
type Options struct {
	// Detailed includes kind and member counts in node labels.
	// When false, only the type name is shown.
	Detailed bool
}

// ToDOT converts a type graph to Graphviz DOT format. Named types become
// nodes; an edge runs from a named type to every named type reachable
// through its unnamed structure (arrays, maps, nullable wrappers), so the
// diagram shows which types refer to which without the plumbing in between.
//
// Classes render as boxes, enums as ellipses, unions as diamonds. The
// resulting DOT string can be rendered with [RenderSVG].
func ToDOT(graph *typegraph.TopLevels, opts Options) string {
	names := emit.NameTypes(graph, emit.PascalCase)
	all := typegraph.AllNamedTypes(graph, nil)

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, t := range all {
		label := fmtLabel(t, names[t], opts.Detailed)
		fmt.Fprintf(&buf, "  %q [label=%q, shape=%s];\n", names[t], label, shape(t))
	}

	buf.WriteString("\n")
	for _, t := range all {
		for _, succ := range namedSuccessors(t) {
			fmt.Fprintf(&buf, "  %q -> %q;\n", names[t], names[succ])
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(t typegraph.NamedType, name string, detailed bool) string {
	if !detailed {
		return name
	}

	parts := []string{"kind: " + t.Kind().String()}
	switch n := t.(type) {
	case *typegraph.Class:
		parts = append(parts, fmt.Sprintf("properties: %d", len(n.PropertyNames())))
	case *typegraph.Enum:
		parts = append(parts, fmt.Sprintf("cases: %d", len(n.Cases())))
	case *typegraph.Union:
		parts = append(parts, fmt.Sprintf("members: %d", len(n.Members())))
		if n.IsNullable() {
			parts = append(parts, "nullable")
		}
	}
	return name + "\n" + strings.Join(parts, "\n")
}

func shape(t typegraph.NamedType) string {
	switch t.Kind() {
	case typegraph.KindEnum:
		return "ellipse"
	case typegraph.KindUnion:
		return "diamond"
	default:
		return "box"
	}
}

// namedSuccessors walks from each child of t through unnamed nodes until it
// hits named ones. Duplicate targets collapse into a single edge; a type
// that reaches itself gets a self-loop.
func namedSuccessors(t typegraph.NamedType) []typegraph.NamedType {
	var out []typegraph.NamedType
	found := make(map[typegraph.NamedType]bool)
	seen := make(map[typegraph.Type]bool)

	var visit func(c typegraph.Type)
	visit = func(c typegraph.Type) {
		if seen[c] {
			return
		}
		seen[c] = true
		if named, ok := c.(typegraph.NamedType); ok {
			if !found[named] {
				found[named] = true
				out = append(out, named)
			}
			return
		}
		for _, grand := range c.Children() {
			visit(grand)
		}
	}

	for _, c := range t.Children() {
		visit(c)
	}
	return out
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
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

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [ToPDF].
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// This is a convenience wrapper around [RenderSVG] and [ToPNG].
//
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return ToPNG(svg, scale)
}
