package pipeline

import (
	"fmt"
	"net/url"

	"github.com/kinview/kinview/pkg/graph"
	"github.com/kinview/kinview/pkg/kinship"
	"github.com/kinview/kinview/pkg/render/nodelink"
	"github.com/kinview/kinview/pkg/render/sink"
)

// drawer produces the picture formats for one renderer. JSON and DOT do not
// depend on the renderer.
type drawer struct {
	svg func() ([]byte, error)
	png func(scale float64) ([]byte, error)
	pdf func() ([]byte, error)
}

// RenderFromLayout renders doc in each of opts.Formats. g supplies person
// details for the JSON artifact and may be nil.
func RenderFromLayout(doc graph.Layout, g *kinship.Graph, opts Options) (map[string][]byte, error) {
	dot := nodelink.ToDOT(doc, nodelink.Options{Detailed: opts.Detailed})

	var d drawer
	if opts.IsNodelink() {
		d = drawer{
			svg: func() ([]byte, error) { return nodelink.RenderSVG(dot) },
			png: func(scale float64) ([]byte, error) { return nodelink.RenderPNG(dot, scale) },
			pdf: func() ([]byte, error) { return nodelink.RenderPDF(dot) },
		}
	} else {
		svgOpts := svgOptions(opts)
		d = drawer{
			svg: func() ([]byte, error) { return sink.RenderSVG(doc, svgOpts...), nil },
			png: func(scale float64) ([]byte, error) { return sink.RenderPNG(doc, scale, svgOpts...) },
			pdf: func() ([]byte, error) { return sink.RenderPDF(doc, svgOpts...) },
		}
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatSVG:
			data, err = d.svg()
		case FormatPNG:
			data, err = d.png(opts.Scale)
		case FormatPDF:
			data, err = d.pdf()
		case FormatJSON:
			data, err = renderJSON(doc, g)
		case FormatDOT:
			data = []byte(dot)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderJSON(doc graph.Layout, g *kinship.Graph) ([]byte, error) {
	if g == nil {
		return sink.RenderJSON(doc)
	}
	return sink.RenderJSON(doc, sink.WithJSONPeople(g))
}

func svgOptions(opts Options) []sink.SVGOption {
	var out []sink.SVGOption
	if opts.Caption {
		out = append(out, sink.WithCaption())
	}
	if opts.Interactive {
		out = append(out, sink.WithInteraction())
	}
	if prefix := opts.LinkPrefix; prefix != "" {
		out = append(out, sink.WithLinks(func(id string) string {
			return prefix + url.QueryEscape(id)
		}))
	}
	return out
}
