// Package render provides visualization rendering for type graphs.
//
// # Overview
//
// This package transforms type graphs into visual outputs:
//
//   - DOT generation for Graphviz ([ToDOT])
//   - SVG rendering via the embedded Graphviz engine ([RenderSVG])
//   - Generic format conversion (SVG to PDF/PNG)
//
// # Diagrams
//
// [ToDOT] renders named types (classes, enums, unions) as nodes connected
// by reference edges. Unnamed structure between them (arrays, maps,
// nullable wrappers) collapses into the edges, so the diagram stays at
// the level a reader thinks in. Cyclic graphs render as ordinary cycles.
//
//	dot := render.ToDOT(graph, render.Options{Detailed: true})
//	svg, err := render.RenderSVG(dot)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
package render
