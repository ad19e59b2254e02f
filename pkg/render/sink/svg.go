package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/kinview/kinview/pkg/graph"
	"github.com/kinview/kinview/pkg/layout"
)

// DefaultPadding is the blank border around the drawing.
const DefaultPadding = 20.0

const (
	spouseLineWidth = 8
	focusLineWidth  = 5
	markerSize      = 7.0
	lineHeightRatio = 1.2
	baselineRatio   = 0.95
	fontFamily      = "sans-serif"
)

const personInteractionCSS = `
    .person rect.box { transition: stroke-width 0.2s ease; }
    .person:hover rect.box { stroke-width: 3; }
    .edge.highlight { stroke: #4e4eff; stroke-width: 2; }
    a { cursor: pointer; }`

const personInteractionJS = `
    function highlight(id) {
      document.querySelectorAll('.edge').forEach(e => e.classList.toggle('highlight', e.dataset.from === id || e.dataset.to === id));
    }
    function clearHighlight() {
      document.querySelectorAll('.edge').forEach(e => e.classList.remove('highlight'));
    }
    document.querySelectorAll('.person').forEach(el => {
      el.addEventListener('mouseenter', () => highlight(el.dataset.node));
      el.addEventListener('mouseleave', clearHighlight);
    });`

// SVGOption configures RenderSVG.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	padding     float64
	interactive bool
	caption     bool
	link        func(id string) string
}

// WithPadding sets the blank border around the drawing.
func WithPadding(p float64) SVGOption { return func(r *svgRenderer) { r.padding = max(p, 0) } }

// WithInteraction adds hover highlighting of a person's edges.
func WithInteraction() SVGOption { return func(r *svgRenderer) { r.interactive = true } }

// WithCaption draws the relationship sentence of a connection layout above
// the tree.
func WithCaption() SVGOption { return func(r *svgRenderer) { r.caption = true } }

// WithLinks wraps every box in a link to link(id).
func WithLinks(link func(id string) string) SVGOption {
	return func(r *svgRenderer) { r.link = link }
}

// RenderSVG draws doc as a standalone SVG document. Spouse lines are drawn
// first, then parent-child lines, then boxes on top.
func RenderSVG(doc graph.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{padding: DefaultPadding}
	for _, opt := range opts {
		opt(&r)
	}

	captionH := 0.0
	if r.caption && doc.Relation != "" {
		captionH = fontSize(doc.BaseSize, layout.BaseFontSize) * 2
	}
	frame := r.padding + layout.NodeBorderMargin
	width := doc.Width + 2*frame
	height := doc.Height + 2*frame + captionH
	dx := frame - doc.MinX
	dy := frame - doc.MinY + captionH

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f" font-family="%s">`+"\n",
		width, height, width, height, fontFamily)
	if captionH > 0 {
		fmt.Fprintf(&buf, `  <text class="caption" x="%.1f" y="%.1f" font-size="%.1f" fill="%s">%s</text>`+"\n",
			r.padding, r.padding+fontSize(doc.BaseSize, layout.BaseFontSize), fontSize(doc.BaseSize, layout.BaseFontSize),
			layout.TextColor, escapeXML(doc.Relation))
	}
	fmt.Fprintf(&buf, `  <g transform="translate(%.1f %.1f)">`+"\n", dx, dy)

	for _, g := range doc.Groups {
		y := g.SpouseLineY()
		fmt.Fprintf(&buf, `    <line class="spouse" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%d"/>`+"\n",
			g.X, y, g.X+g.Width, y, layout.SpouseColor, spouseLineWidth)
	}
	for _, e := range doc.Edges {
		renderEdge(&buf, e)
	}
	for _, b := range doc.Boxes {
		r.renderBox(&buf, b)
	}

	buf.WriteString("  </g>\n")
	if r.interactive {
		fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", personInteractionCSS)
		fmt.Fprintf(&buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", personInteractionJS)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// renderEdge draws the elbow from the child's top up to the midpoint of the
// row gap, across to the parent, and up into the parent's connector.
func renderEdge(buf *bytes.Buffer, e graph.Edge) {
	midY := e.Y2 - layout.VerticalMargin/2.0
	fmt.Fprintf(buf, `    <path class="edge" data-from="%s" data-to="%s" d="M%.1f %.1f V%.1f H%.1f V%.1f" fill="none" stroke="%s" stroke-width="1"/>`+"\n",
		escapeXML(e.From), escapeXML(e.To), e.X2, e.Y2, midY, e.X1, e.Y1, layout.LineColor)
}

func (r *svgRenderer) renderBox(buf *bytes.Buffer, b graph.Box) {
	node := b.ID
	if b.Group != "" {
		node = b.Group
	}
	fmt.Fprintf(buf, `    <g class="person" id="person-%s" data-node="%s">`+"\n", escapeXML(b.ID), escapeXML(node))
	if r.link != nil {
		fmt.Fprintf(buf, `    <a href="%s">`+"\n", escapeXML(r.link(b.ID)))
	}

	m := float64(layout.NodeBorderMargin)
	x, y, w, h := b.X-m, b.Y-m, b.Width+2*m, b.Height+2*m
	fmt.Fprintf(buf, `      <rect class="box" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="%s" stroke-width="1"/>`+"\n",
		x, y, w, h, b.Fill, layout.TextColor)
	if b.Focus {
		fmt.Fprintf(buf, `      <rect class="focus" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s" stroke-width="%d"/>`+"\n",
			x+2, y+2, w-4, h-4, layout.FocusColor, focusLineWidth)
	}

	ty := b.Y
	for _, line := range b.Lines {
		color := layout.TextColor
		if line.Detail {
			color = layout.DetailColor
		}
		fmt.Fprintf(buf, `      <text x="%.1f" y="%.1f" font-size="%.1f" fill="%s">%s</text>`+"\n",
			b.X+layout.ExtraWidth, ty+line.Size*baselineRatio, line.Size, color, escapeXML(line.Text))
		ty += line.Size * lineHeightRatio
	}

	cx := b.X + b.Width - markerSize
	if b.HiddenParents {
		renderMarker(buf, "hidden-parents", cx, b.Y, markerSize)
	}
	if b.HiddenChildren {
		renderMarker(buf, "hidden-children", cx, b.Y+b.Height, -markerSize)
	}

	if r.link != nil {
		buf.WriteString("    </a>\n")
	}
	buf.WriteString("    </g>\n")
}

// renderMarker draws a triangle with its tip at (cx, tipY) pointing up for a
// positive size and down for a negative one.
func renderMarker(buf *bytes.Buffer, class string, cx, tipY, size float64) {
	base := tipY + size
	fmt.Fprintf(buf, `      <polygon class="%s" points="%.1f,%.1f %.1f,%.1f %.1f,%.1f" fill="%s"/>`+"\n",
		class, cx, tipY, cx-markerSize/2, base, cx+markerSize/2, base, layout.LineColor)
}

func fontSize(size, fallback float64) float64 {
	if size <= 0 {
		return fallback
	}
	return size
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
