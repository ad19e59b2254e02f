package kinship

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kinview/kinview/pkg/errors"
)

// Tag labels one hop of a relationship path.
type Tag byte

const (
	// TagChild moves from a person to one of their children.
	TagChild Tag = 'C'
	// TagParent moves from a person to one of their parents.
	TagParent Tag = 'P'
	// TagSpouse moves from a person to one of their spouses.
	TagSpouse Tag = 'S'
)

func (t Tag) String() string { return string(rune(t)) }

// MarshalText encodes the tag as its letter.
func (t Tag) MarshalText() ([]byte, error) { return []byte{byte(t)}, nil }

// UnmarshalText decodes a single tag letter.
func (t *Tag) UnmarshalText(b []byte) error {
	if len(b) != 1 || !strings.ContainsRune("CPS", rune(b[0])) {
		return fmt.Errorf("invalid path tag %q", b)
	}
	*t = Tag(b[0])
	return nil
}

// Path is a chain of people joined by parent, child and spouse hops.
// Tags[i] describes the hop from IDs[i] to IDs[i+1].
type Path struct {
	IDs  []string `json:"ids"`
	Tags []Tag    `json:"tags"`
}

// Hops returns the number of edges in the path.
func (p *Path) Hops() int { return len(p.Tags) }

// From returns the first person of the path.
func (p *Path) From() string { return p.IDs[0] }

// To returns the last person of the path.
func (p *Path) To() string { return p.IDs[len(p.IDs)-1] }

// String renders the path as "A -P-> B -C-> C".
func (p *Path) String() string {
	var b strings.Builder
	for i, id := range p.IDs {
		if i > 0 {
			b.WriteString(" -" + p.Tags[i-1].String() + "-> ")
		}
		b.WriteString(id)
	}
	return b.String()
}

// step is one queued BFS frontier entry. Paths are rebuilt from parent links
// once the target is reached.
type step struct {
	id   string
	prev int
	tag  Tag
}

// ShortestPath finds a minimum-hop path from from to to by breadth-first
// search. Each person expands children first, then parents, then spouses, in
// record order; the first path to reach to wins, which makes ties
// deterministic. It returns NOT_FOUND for unknown endpoints and UNREACHABLE
// when the two people are not connected.
func (g *Graph) ShortestPath(from, to string) (*Path, error) {
	for _, id := range []string{from, to} {
		if !g.Has(id) {
			return nil, errors.New(errors.ErrCodeNotFound, "Sorry, I can't find the person with ID %s", id)
		}
	}

	steps := []step{{id: from, prev: -1}}
	visited := map[string]bool{from: true}
	for head := 0; head < len(steps); head++ {
		cur := steps[head]
		if cur.id == to {
			return unwind(steps, head), nil
		}
		p := g.people[cur.id]
		for _, hop := range []struct {
			ids []string
			tag Tag
		}{
			{p.Children, TagChild},
			{p.Parents, TagParent},
			{p.Spouses, TagSpouse},
		} {
			for _, next := range hop.ids {
				if visited[next] || !g.Has(next) {
					continue
				}
				visited[next] = true
				steps = append(steps, step{id: next, prev: head, tag: hop.tag})
			}
		}
	}
	return nil, errors.New(errors.ErrCodeUnreachable, "no relationship connects %s and %s", from, to)
}

func unwind(steps []step, i int) *Path {
	var ids []string
	var tags []Tag
	for ; i >= 0; i = steps[i].prev {
		ids = append(ids, steps[i].id)
		if steps[i].prev >= 0 {
			tags = append(tags, steps[i].tag)
		}
	}
	slices.Reverse(ids)
	slices.Reverse(tags)
	return &Path{IDs: ids, Tags: tags}
}
