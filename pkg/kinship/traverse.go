package kinship

import (
	"slices"
	"strings"
)

// ParentsSortedByGender returns the parents of id ordered by descending sex
// code, so a father precedes a mother. The sort is stable; parents of equal
// sex keep their record order.
func (g *Graph) ParentsSortedByGender(id string) []string {
	p, ok := g.people[id]
	if !ok {
		return nil
	}
	return g.SortByGender(p.Parents)
}

// SortByGender returns a copy of ids ordered by descending sex code.
func (g *Graph) SortByGender(ids []string) []string {
	out := slices.Clone(ids)
	slices.SortStableFunc(out, func(a, b string) int {
		return -strings.Compare(string(g.sexOf(a)), string(g.sexOf(b)))
	})
	return out
}

// Parents returns the parents of id in record order.
func (g *Graph) Parents(id string) []string {
	if p, ok := g.people[id]; ok {
		return p.Parents
	}
	return nil
}

// Spouses returns the spouses of id in record order.
func (g *Graph) Spouses(id string) []string {
	if p, ok := g.people[id]; ok {
		return p.Spouses
	}
	return nil
}

// Children returns the children of id in record order.
func (g *Graph) Children(id string) []string {
	if p, ok := g.people[id]; ok {
		return p.Children
	}
	return nil
}

// ChildrenIncludingStep returns the children of id that either have a single
// listed parent or whose other parent is one of id's spouses. Children of a
// union with someone who is not recorded as a spouse are left out. The result
// follows id's own child order.
func (g *Graph) ChildrenIncludingStep(id string) []string {
	p, ok := g.people[id]
	if !ok {
		return nil
	}
	spouses := make(map[string]bool, len(p.Spouses))
	for _, s := range p.Spouses {
		spouses[s] = true
	}

	var out []string
	seen := make(map[string]bool, len(p.Children))
	for _, cid := range p.Children {
		c, ok := g.people[cid]
		if !ok || seen[cid] {
			continue
		}
		if len(c.Parents) == 1 || slices.ContainsFunc(c.Parents, func(par string) bool { return spouses[par] }) {
			seen[cid] = true
			out = append(out, cid)
		}
	}
	return out
}

// Siblings returns everyone whose parent set equals id's, id included. A
// person without parents is their own only sibling.
func (g *Graph) Siblings(id string) []string {
	p, ok := g.people[id]
	if !ok {
		return nil
	}
	want := sortedCopy(p.Parents)

	var out []string
	seen := make(map[string]bool)
	add := func(s string) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, par := range p.Parents {
		for _, cid := range g.Children(par) {
			c, ok := g.people[cid]
			if ok && slices.Equal(sortedCopy(c.Parents), want) {
				add(cid)
			}
		}
	}
	add(id)
	return out
}

// FindAncestor picks the node a standard view should be rooted at: the first
// ancestor maxUp generations above id, else maxUp-1, down to id itself.
// Parents are explored male first, depth first. It returns the ancestor and
// how many generations above id it sits.
func (g *Graph) FindAncestor(id string, maxUp int) (string, int) {
	for depth := maxUp; depth > 0; depth-- {
		if anc := g.ancestorAt(id, depth); anc != "" {
			return anc, depth
		}
	}
	return id, 0
}

func (g *Graph) ancestorAt(id string, depth int) string {
	if !g.Has(id) {
		return ""
	}
	if depth == 0 {
		return id
	}
	for _, par := range g.ParentsSortedByGender(id) {
		if anc := g.ancestorAt(par, depth-1); anc != "" {
			return anc
		}
	}
	return ""
}

func sortedCopy(ids []string) []string {
	out := slices.Clone(ids)
	slices.Sort(out)
	return out
}
