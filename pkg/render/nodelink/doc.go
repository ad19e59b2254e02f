// Package nodelink lets Graphviz place a family tree.
//
// [ToDOT] keeps only who is connected to whom from a [graph.Layout]: each
// person becomes a filled box, each couple a small union point on the
// couple's rank, and each line of descent an edge from that point (or from
// the lone parent) to the child. Positions computed by the layout engine
// are dropped.
//
//	dot := nodelink.ToDOT(doc, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(dot)
//	png, err := nodelink.RenderPNG(dot, 2)
//
// SVG comes from the WebAssembly build of Graphviz in
// [github.com/goccy/go-graphviz]; PDF and PNG additionally need rsvg-convert
// on PATH.
//
// [graph.Layout]: github.com/kinview/kinview/pkg/graph.Layout
package nodelink
