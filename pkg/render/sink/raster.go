package sink

import (
	"github.com/kinview/kinview/pkg/graph"
	"github.com/kinview/kinview/pkg/render"
)

// RenderPNG draws doc as SVG and rasterizes it at scale (values <= 0 mean
// 2x). The SVG options apply to the intermediate drawing.
func RenderPNG(doc graph.Layout, scale float64, opts ...SVGOption) ([]byte, error) {
	if scale <= 0 {
		scale = 2
	}
	return render.ToPNG(RenderSVG(doc, opts...), scale)
}

// RenderPDF draws doc as SVG and converts it to a single-page PDF.
func RenderPDF(doc graph.Layout, opts ...SVGOption) ([]byte, error) {
	return render.ToPDF(RenderSVG(doc, opts...))
}
