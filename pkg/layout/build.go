package layout

import (
	"slices"

	"github.com/kinview/kinview/pkg/errors"
	"github.com/kinview/kinview/pkg/kinship"
)

// person fetches id and checks that every id it refers to exists, so a
// dangling reference aborts the build instead of producing a partial tree.
func (l *Layout) person(id string) (*kinship.Person, error) {
	p, ok := l.graph.Person(id)
	if !ok {
		return nil, errors.New(errors.ErrCodeDataInconsistency, "Sorry, I can't find the person with ID %s", id)
	}
	for _, rel := range [][]string{p.Parents, p.Children, p.Spouses} {
		for _, r := range rel {
			if !l.graph.Has(r) {
				return nil, errors.New(errors.ErrCodeDataInconsistency,
					"Sorry, I can't find the person with ID %s (referenced by %s)", r, id)
			}
		}
	}
	return p, nil
}

// buildDescendants builds a standard or subtree layout rooted at rootID.
// Nodes are memoized by person id; a person with spouses becomes a group of
// the person followed by the spouses.
func (l *Layout) buildDescendants(rootID string, rootGen int) error {
	var makeNode func(id string, gen int) (Item, error)
	makeNode = func(id string, gen int) (Item, error) {
		if n, ok := l.nodes[id]; ok {
			return n, nil
		}
		p, err := l.person(id)
		if err != nil {
			return nil, err
		}

		var node Item
		if spouses := p.Spouses; len(spouses) == 0 {
			node = newPersonNode(p, gen)
			l.nodes[id] = node
		} else {
			members := []*PersonNode{newPersonNode(p, gen)}
			for _, s := range spouses {
				sp, err := l.person(s)
				if err != nil {
					return nil, err
				}
				members = append(members, newPersonNode(sp, gen))
			}
			node = newGroupNode(members, gen)
			for _, m := range members {
				l.nodes[m.ID()] = node
			}
		}

		if parents := l.graph.ParentsSortedByGender(id); len(parents) > 0 {
			if a, ok := l.nodes[parents[0]]; ok {
				node.base().addAscendant(a)
			}
		}

		children := l.graph.ChildrenIncludingStep(id)
		if len(children) > 0 && gen-rootGen < l.limit {
			for _, c := range children {
				child, err := makeNode(c, gen+1)
				if err != nil {
					return nil, err
				}
				if !slices.Contains(child.Ascendants(), node) {
					continue
				}
				node.base().addDescendant(child)
			}
		}
		return node, nil
	}

	root, err := makeNode(rootID, rootGen)
	if err != nil {
		return err
	}
	l.root = root
	l.linkTree(root, func(n Item) []Item { return n.Descendants() })
	l.finalize()
	return nil
}

// buildPedigree walks parents upward from the focus, one node per person.
// An ancestor reached a second time is not repeated.
func (l *Layout) buildPedigree() error {
	seen := make(map[string]bool)
	var makeAncestor func(id string, gen int) (Item, error)
	makeAncestor = func(id string, gen int) (Item, error) {
		p, err := l.person(id)
		if err != nil {
			return nil, err
		}
		n := newPersonNode(p, gen)
		l.nodes[id] = n
		seen[id] = true
		if l.limit > 0 && -gen >= l.limit {
			return n, nil
		}
		for _, par := range l.graph.ParentsSortedByGender(id) {
			if seen[par] {
				continue
			}
			a, err := makeAncestor(par, gen-1)
			if err != nil {
				return nil, err
			}
			n.addAscendant(a)
			a.base().addDescendant(n)
		}
		return n, nil
	}

	root, err := makeAncestor(l.focus, 0)
	if err != nil {
		return err
	}
	l.root = root
	l.linkTree(root, func(n Item) []Item { return n.Ascendants() })
	l.finalize()
	return nil
}

type segment struct {
	ids []string
	gen int
	tag kinship.Tag // hop that led into this segment; 0 for the first
}

// buildConnection lays out the shortest path from the focus to the target
// as a chain. Consecutive spouse hops share one group. Each chain node hangs
// from its first displayed parent; nodes without one hang from a RootNode
// when there is more than one of them.
func (l *Layout) buildConnection() error {
	if l.target == "" {
		return errors.New(errors.ErrCodeInvalidInput, "a connection layout needs a second person")
	}
	path, err := l.graph.ShortestPath(l.focus, l.target)
	if err != nil {
		return err
	}
	l.path = path

	segs := []segment{{ids: []string{path.IDs[0]}}}
	gen := 0
	for i, t := range path.Tags {
		next := path.IDs[i+1]
		switch t {
		case kinship.TagSpouse:
			last := &segs[len(segs)-1]
			last.ids = append(last.ids, next)
			continue
		case kinship.TagChild:
			gen++
		case kinship.TagParent:
			gen--
		}
		segs = append(segs, segment{ids: []string{next}, gen: gen, tag: t})
	}

	items := make([]Item, len(segs))
	minGen := 0
	for i, s := range segs {
		members := make([]*PersonNode, len(s.ids))
		for j, id := range s.ids {
			p, err := l.person(id)
			if err != nil {
				return err
			}
			members[j] = newPersonNode(p, s.gen)
		}
		if len(members) == 1 {
			items[i] = members[0]
		} else {
			items[i] = newGroupNode(members, s.gen)
		}
		for _, id := range s.ids {
			l.nodes[id] = items[i]
		}
		minGen = min(minGen, s.gen)
	}

	for i := 1; i < len(items); i++ {
		prev, cur := items[i-1], items[i]
		switch segs[i].tag {
		case kinship.TagChild:
			cur.base().addAscendant(prev)
			prev.base().addDescendant(cur)
		case kinship.TagParent:
			prev.base().addAscendant(cur)
			cur.base().addDescendant(prev)
		}
	}

	var top []Item
	for _, it := range items {
		b := it.base()
		if len(b.asc) == 0 {
			top = append(top, it)
			continue
		}
		b.parent = b.asc[0]
		pb := b.parent.base()
		pb.kids = append(pb.kids, it)
	}
	if len(top) == 1 {
		l.root = top[0]
	} else {
		r := &RootNode{nodeBase: nodeBase{gen: minGen - 1, kids: top}}
		for _, t := range top {
			t.base().parent = r
		}
		l.root = r
	}
	l.finalize()
	return nil
}

// linkTree records the layout tree: kids(n) are n's layout children.
func (l *Layout) linkTree(n Item, kids func(Item) []Item) {
	b := n.base()
	b.kids = kids(n)
	for _, k := range b.kids {
		k.base().parent = n
		l.linkTree(k, kids)
	}
}

// finalize sets the hidden parent and child flags by comparing each person's
// recorded relations with the displayed edges, and gives group members the
// group's children that are their own.
func (l *Layout) finalize() {
	for _, n := range l.AllNodes() {
		shownParents := idsOf(n.Ascendants())
		shownChildren := idsOf(n.Descendants())
		switch n := n.(type) {
		case *PersonNode:
			n.markHidden(shownParents, shownChildren)
		case *GroupNode:
			for _, m := range n.members {
				m.markHidden(shownParents, shownChildren)
				m.desc = nil
				for _, d := range n.desc {
					if slices.ContainsFunc(d.IDs(), func(id string) bool {
						return slices.Contains(m.person.Children, id)
					}) {
						m.addDescendant(d)
					}
				}
			}
		}
	}
}

func (n *PersonNode) markHidden(shownParents, shownChildren []string) {
	n.hiddenParents = slices.ContainsFunc(n.person.Parents, func(id string) bool {
		return !slices.Contains(shownParents, id)
	})
	n.hiddenChildren = slices.ContainsFunc(n.person.Children, func(id string) bool {
		return !slices.Contains(shownChildren, id)
	})
}

func idsOf(items []Item) []string {
	var ids []string
	for _, it := range items {
		ids = append(ids, it.IDs()...)
	}
	return ids
}
