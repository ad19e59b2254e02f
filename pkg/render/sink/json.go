package sink

import (
	"encoding/json"

	"github.com/kinview/kinview/pkg/graph"
	"github.com/kinview/kinview/pkg/kinship"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	people  *kinship.Graph
	compact bool
}

// WithJSONPeople attaches the info-panel record of every drawn person
// (alternate names, vitals, note, events, citations, pictures).
func WithJSONPeople(g *kinship.Graph) JSONOption { return func(r *jsonRenderer) { r.people = g } }

// WithJSONCompact disables indentation.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

type jsonOutput struct {
	graph.Layout
	People map[string]jsonPerson `json:"people,omitempty"`
}

type jsonPerson struct {
	Names    []string        `json:"names,omitempty"`
	Birth    string          `json:"birth,omitempty"`
	Death    string          `json:"death,omitempty"`
	Living   bool            `json:"living"`
	Note     string          `json:"note,omitempty"`
	Events   []kinship.Event `json:"events,omitempty"`
	Cites    []kinship.Cite  `json:"cites,omitempty"`
	Pictures []string        `json:"pictures,omitempty"`
}

// RenderJSON encodes doc, optionally enriched with person details.
func RenderJSON(doc graph.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{Layout: doc}
	if r.people != nil {
		out.People = make(map[string]jsonPerson, len(doc.Boxes))
		for _, b := range doc.Boxes {
			p, ok := r.people.Person(b.ID)
			if !ok {
				continue
			}
			out.People[b.ID] = jsonPerson{
				Names:    p.Names,
				Birth:    p.Birth.String(),
				Death:    p.Death.String(),
				Living:   p.Living(),
				Note:     p.Note,
				Events:   p.Events,
				Cites:    p.Cites,
				Pictures: p.Pictures,
			}
		}
	}

	if r.compact {
		return json.Marshal(out)
	}
	return json.MarshalIndent(out, "", "  ")
}
