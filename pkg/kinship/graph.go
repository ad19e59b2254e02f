package kinship

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kinview/kinview/pkg/errors"
)

// Meta describes the dataset as a whole (config.json).
type Meta struct {
	InitialPerson    string `json:"initial_person" bson:"initial_person" toml:"initial_person"`
	PartitionDetails int    `json:"partition_details,omitempty" bson:"partition_details,omitempty" toml:"partition_details"`
	CreatedDate      string `json:"created_date,omitempty" bson:"created_date,omitempty" toml:"created_date"`
	Author           string `json:"author,omitempty" bson:"author,omitempty" toml:"author"`
	About            string `json:"about,omitempty" bson:"about,omitempty" toml:"about"`
	PicturesPrefix   string `json:"pictures_prefix,omitempty" bson:"pictures_prefix,omitempty" toml:"pictures_prefix"`
}

// Graph is an immutable mapping from person id to record. All methods are
// safe for concurrent use.
type Graph struct {
	people map[string]*Person
	order  []string
	meta   Meta
}

// NewGraph indexes people by id, keeping their input order for listings.
// Duplicate ids are rejected.
func NewGraph(people []*Person, meta Meta) (*Graph, error) {
	g := &Graph{
		people: make(map[string]*Person, len(people)),
		order:  make([]string, 0, len(people)),
		meta:   meta,
	}
	for _, p := range people {
		if p == nil || p.ID == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "person record without id")
		}
		if _, dup := g.people[p.ID]; dup {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate person id %s", p.ID)
		}
		g.people[p.ID] = p
		g.order = append(g.order, p.ID)
	}
	return g, nil
}

// MustGraph is like NewGraph but panics on error. Intended for tests and
// fixtures.
func MustGraph(people ...*Person) *Graph {
	g, err := NewGraph(people, Meta{})
	if err != nil {
		panic(err)
	}
	return g
}

// Meta returns the dataset metadata.
func (g *Graph) Meta() Meta { return g.meta }

// Len returns the number of people.
func (g *Graph) Len() int { return len(g.people) }

// Person returns the record for id.
func (g *Graph) Person(id string) (*Person, bool) {
	p, ok := g.people[id]
	return p, ok
}

// Has reports whether id is present.
func (g *Graph) Has(id string) bool {
	_, ok := g.people[id]
	return ok
}

// Lookup returns the record for id or a NOT_FOUND error.
func (g *Graph) Lookup(id string) (*Person, error) {
	if p, ok := g.people[id]; ok {
		return p, nil
	}
	return nil, errors.New(errors.ErrCodeNotFound, "Sorry, I can't find the person with ID %s", id)
}

// People returns all records in dataset order.
func (g *Graph) People() []*Person {
	out := make([]*Person, len(g.order))
	for i, id := range g.order {
		out[i] = g.people[id]
	}
	return out
}

// IDs returns all person ids in dataset order.
func (g *Graph) IDs() []string {
	return slices.Clone(g.order)
}

// Validate reports every dangling parent, child or spouse reference as a
// single DATA_INCONSISTENCY error.
func (g *Graph) Validate() error {
	var dangling []string
	for _, id := range g.order {
		p := g.people[id]
		for _, rel := range [][]string{p.Parents, p.Children, p.Spouses} {
			for _, ref := range rel {
				if !g.Has(ref) {
					dangling = append(dangling, fmt.Sprintf("%s->%s", id, ref))
				}
			}
		}
	}
	if len(dangling) == 0 {
		return nil
	}
	const shown = 5
	msg := strings.Join(dangling[:min(len(dangling), shown)], ", ")
	if len(dangling) > shown {
		msg += fmt.Sprintf(" and %d more", len(dangling)-shown)
	}
	return errors.New(errors.ErrCodeDataInconsistency, "%d dangling references: %s", len(dangling), msg)
}

// sexOf returns the normalized sex of id, unknown for absent ids.
func (g *Graph) sexOf(id string) Sex {
	if p, ok := g.people[id]; ok {
		return p.Sex.Code()
	}
	return SexUnknown
}
