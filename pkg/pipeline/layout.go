package pipeline

import (
	"github.com/kinview/kinview/pkg/cache"
	"github.com/kinview/kinview/pkg/errors"
	"github.com/kinview/kinview/pkg/graph"
	"github.com/kinview/kinview/pkg/kinship"
	"github.com/kinview/kinview/pkg/layout"
	"github.com/kinview/kinview/pkg/relate"
)

// BuildLayout builds and positions the live layout opts describes. opts
// must have passed ValidateForLayout.
func BuildLayout(g *kinship.Graph, opts Options) (*layout.Layout, error) {
	style, err := layout.ParseStyle(opts.Style)
	if err != nil {
		return nil, err
	}

	layoutOpts := []layout.Option{
		layout.WithStyle(style),
		layout.WithGenerations(opts.Generations),
		layout.WithLogger(opts.Logger),
	}
	if opts.Target != "" {
		layoutOpts = append(layoutOpts, layout.WithTarget(opts.Target))
	}
	if opts.Measurer != nil {
		layoutOpts = append(layoutOpts, layout.WithMeasurer(opts.Measurer))
	}

	l, err := layout.New(g, opts.Focus, layoutOpts...)
	if err != nil {
		return nil, err
	}
	if err := l.Position(opts.RenderConfig()); err != nil {
		return nil, err
	}
	return l, nil
}

// GenerateLayout builds the layout opts describes and flattens it into a
// document. Connection layouts also carry the English relationship between
// focus and target.
func GenerateLayout(g *kinship.Graph, opts Options) (graph.Layout, error) {
	l, err := BuildLayout(g, opts)
	if err != nil {
		return graph.Layout{}, err
	}
	doc, err := graph.FromLayout(l)
	if err != nil {
		return graph.Layout{}, err
	}

	if path := l.Path(); path != nil {
		rel, err := relate.Translate(g, path)
		if err != nil {
			opts.Logger.Warn("relationship not named", "from", opts.Focus, "to", opts.Target, "err", err)
		}
		doc.Relation = rel
	}
	return doc, nil
}

// DatasetHash returns the content hash of g's people and metadata. Layout
// cache keys are derived from it.
func DatasetHash(g *kinship.Graph) (string, error) {
	if g == nil {
		return "", errors.New(errors.ErrCodeInvalidInput, "no kinship graph")
	}
	return cache.HashJSON(struct {
		Meta   kinship.Meta      `json:"meta"`
		People []*kinship.Person `json:"people"`
	}{g.Meta(), g.People()})
}
