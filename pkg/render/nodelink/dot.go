package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/kinview/kinview/pkg/graph"
	"github.com/kinview/kinview/pkg/layout"
	"github.com/kinview/kinview/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the birth and death lines to each label.
	// When false, only the name is shown.
	Detailed bool
}

// dotHeader sets graph-wide defaults: top-down ranks, filled boxes and
// undirected-looking lines in the tree renderer's line colour.
const dotHeader = `digraph G {
  rankdir=TB;
  bgcolor="transparent";
  ranksep=0.5;
  nodesep=0.3;
  node [shape=box, style=filled, fontname="sans-serif", fontsize=13, margin="0.2,0.1"];
  edge [arrowhead=none, color="%s"];

`

// ToDOT converts a positioned layout to Graphviz DOT. Positions are dropped;
// Graphviz ranks people by the parent lines.
func ToDOT(doc graph.Layout, opts Options) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, dotHeader, layout.LineColor)

	for _, b := range doc.Boxes {
		attrs := []string{fmt.Sprintf("label=%q", fmtLabel(b, opts.Detailed)), fmt.Sprintf("fillcolor=%q", b.Fill)}
		if b.Focus {
			attrs = append(attrs, "penwidth=3", fmt.Sprintf("color=%q", layout.FocusColor))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", b.ID, strings.Join(attrs, ", "))
	}

	for _, g := range doc.Groups {
		buf.WriteString("\n")
		u := unionID(g.ID)
		fmt.Fprintf(&buf, "  %q [shape=point, width=0.08, color=%q];\n", u, layout.SpouseColor)
		fmt.Fprintf(&buf, "  { rank=same; %q; ", u)
		for _, m := range g.Members {
			fmt.Fprintf(&buf, "%q; ", m)
		}
		buf.WriteString("}\n")
		for i, m := range g.Members {
			if i == 0 {
				fmt.Fprintf(&buf, "  %q -> %q [penwidth=4, color=%q];\n", m, u, layout.SpouseColor)
			} else {
				fmt.Fprintf(&buf, "  %q -> %q [penwidth=4, color=%q];\n", u, m, layout.SpouseColor)
			}
		}
	}

	buf.WriteString("\n")
	for _, e := range doc.Edges {
		from := e.From
		if _, ok := doc.Group(e.From); ok {
			from = unionID(e.From)
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", from, entryBox(doc, e))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func unionID(group string) string { return "union:" + group }

func fmtLabel(b graph.Box, detailed bool) string {
	if !detailed || len(b.Lines) == 0 {
		return b.Name
	}
	parts := make([]string, len(b.Lines))
	for i, l := range b.Lines {
		parts[i] = l.Text
	}
	return strings.Join(parts, "\n")
}

// entryBox returns the person an edge enters: for a group, the member whose
// box holds the edge's end point.
func entryBox(doc graph.Layout, e graph.Edge) string {
	g, ok := doc.Group(e.To)
	if !ok {
		return e.To
	}
	for _, id := range g.Members {
		if b, ok := doc.Box(id); ok && e.X2 >= b.X && e.X2 <= b.X+b.Width {
			return id
		}
	}
	return e.To
}

// RenderSVG lays dot out with the in-process Graphviz (WebAssembly) build
// and returns the drawing with a unitless viewBox.
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
		return nil, fmt.Errorf("graphviz: %w", err)
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
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF converts the Graphviz drawing of dot to PDF with librsvg.
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG converts the Graphviz drawing of dot to PNG with librsvg.
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
