package graph

import (
	"github.com/kinview/kinview/pkg/errors"
	"github.com/kinview/kinview/pkg/layout"
)

// FromLayout flattens a positioned layout. It returns STALE_LAYOUT when l has
// not been positioned since it was built or flushed.
func FromLayout(l *layout.Layout) (Layout, error) {
	if l.State() != layout.StatePositioned {
		return Layout{}, errors.New(errors.ErrCodeStaleLayout, "layout is %s, not positioned", l.State())
	}
	cfg := l.Config()
	ext := l.TreeExtents()
	doc := Layout{
		Focus:      l.Focus(),
		Target:     l.Target(),
		Style:      l.Style().String(),
		MinX:       ext.MinX,
		MinY:       ext.MinY,
		Width:      ext.Width(),
		Height:     ext.Height(),
		BaseSize:   cfg.BaseSize,
		DetailSize: cfg.DetailSize,
		Compact:    cfg.Compact,
	}

	for _, n := range l.AllNodes() {
		switch n := n.(type) {
		case *layout.PersonNode:
			doc.Boxes = append(doc.Boxes, box(n, l.Focus(), ""))
		case *layout.GroupNode:
			g := Group{
				ID:        n.ID(),
				Members:   n.IDs(),
				X:         n.X(),
				Y:         n.Y(),
				Width:     n.Width(),
				Height:    n.Height(),
				MinHeight: n.MinHeight(),
			}
			doc.Groups = append(doc.Groups, g)
			for _, m := range n.Members() {
				doc.Boxes = append(doc.Boxes, box(m, l.Focus(), g.ID))
			}
		}
	}

	for _, e := range l.Edges() {
		doc.Edges = append(doc.Edges, Edge{
			From: e.Parent.ID(), To: e.Child.ID(),
			X1: e.From.X, Y1: e.From.Y,
			X2: e.To.X, Y2: e.To.Y,
		})
	}

	if p := l.Path(); p != nil {
		path := &Path{IDs: append([]string(nil), p.IDs...)}
		for _, t := range p.Tags {
			path.Tags = append(path.Tags, t.String())
		}
		doc.Path = path
	}
	return doc, nil
}

func box(n *layout.PersonNode, focus, group string) Box {
	p := n.Person()
	b := Box{
		ID:             p.ID,
		Name:           p.DisplayName(),
		Sex:            string(p.Sex.Code()),
		Generation:     n.Generation(),
		X:              n.X(),
		Y:              n.Y(),
		Width:          n.Width(),
		Height:         n.Height(),
		Fill:           n.Fill(),
		Focus:          p.ID == focus,
		Group:          group,
		HiddenParents:  n.HiddenParents(),
		HiddenChildren: n.HiddenChildren(),
	}
	for _, line := range n.Lines() {
		b.Lines = append(b.Lines, Line{Text: line.Text, Size: line.Size, Detail: line.Detail})
	}
	return b
}
