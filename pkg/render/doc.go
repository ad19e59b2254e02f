// Package render turns positioned kinship layouts into drawings.
//
// # Overview
//
// Every renderer consumes a [graph.Layout], the flattened document produced
// by graph.FromLayout, so fresh and cached layouts draw identically:
//
//   - Family tree drawings in the [sink] subpackage (SVG, JSON, PDF, PNG)
//   - Graphviz node-link diagrams in the [nodelink] subpackage
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). Both subpackages use them.
//
//	svg := sink.RenderSVG(doc)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [graph.Layout]: github.com/kinview/kinview/pkg/graph.Layout
// [sink]: github.com/kinview/kinview/pkg/render/sink
// [nodelink]: github.com/kinview/kinview/pkg/render/nodelink
package render
