// Package sink provides output format renderers for family tree drawings.
//
// # Overview
//
// A "sink" transforms a positioned [graph.Layout] into a final output format:
//
//   - SVG: boxes, spouse lines and elbow parent-child lines
//   - JSON: the layout document, optionally with per-person details
//   - PDF: Print-ready output (requires rsvg-convert)
//   - PNG: Raster image output (requires rsvg-convert)
//
// # SVG Output
//
// [RenderSVG] draws each person as a box filled by sex, with the text
// starting ExtraWidth in from the left edge. The focus person gets a thick
// blue inner border. Small triangles in the right corners mark people with
// hidden parents or hidden children.
//
//	svg := sink.RenderSVG(doc,
//	    sink.WithInteraction(),
//	    sink.WithLinks(func(id string) string { return "?focus=" + id }),
//	)
//
// # SVG Options
//
//   - [WithPadding]: blank border around the drawing
//   - [WithInteraction]: hover highlighting of a person's lines
//   - [WithCaption]: print the relationship sentence above a connection tree
//   - [WithLinks]: wrap each box in a link
//
// # PDF and PNG Output
//
//	pdf, err := sink.RenderPDF(doc, sink.WithCaption())
//	png, err := sink.RenderPNG(doc, 2)
//
// These require librsvg to be installed.
//
// [graph.Layout]: github.com/kinview/kinview/pkg/graph.Layout
package sink
