// Package relate names the relationship between two people in English.
//
// The input is a [kinship.Path]: the people visited by a shortest-path search
// and the hop tags between them. Translate rewrites the tag sequence in
// ordered passes, each collapsing a local pattern into a single token:
//
//  1. a hop up to a parent followed by a hop down to a child becomes a sibling
//  2. runs of parent hops (or child hops) become one grand- or great- degree
//  3. up-run, sibling, down-run becomes a cousin, with the removal count
//  4. a fixed table of adjacent pairs becomes step-, in-law, aunt/uncle and
//     niece/nephew tokens
//
// Each remaining token renders as "the <relation> of", worded for the sex of
// the person it describes.
//
//	path, _ := g.ShortestPath("ann", "bob")
//	s, _ := relate.Translate(g, path) // "Ann Ash is the sister of Bob Ash"
package relate

import (
	"fmt"
	"strings"

	"github.com/kinview/kinview/pkg/errors"
	"github.com/kinview/kinview/pkg/kinship"
)

// People is the read access Translate needs. *kinship.Graph implements it.
type People interface {
	Person(id string) (*kinship.Person, bool)
}

// Translate renders path as "X is the <relation> of Y".
func Translate(people People, path *kinship.Path) (string, error) {
	if path == nil || len(path.IDs) == 0 {
		return "", errors.New(errors.ErrCodeInvalidInput, "empty relationship path")
	}
	from, err := lookup(people, path.From())
	if err != nil {
		return "", err
	}
	to, err := lookup(people, path.To())
	if err != nil {
		return "", err
	}
	if path.Hops() == 0 {
		return fmt.Sprintf("%s and %s are the same person", from.DisplayName(), to.DisplayName()), nil
	}

	rel, err := Relation(people, path)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s is the %s of %s", from.DisplayName(), rel, to.DisplayName()), nil
}

// Relation returns the chain of relation phrases joined by " of the ", for
// example "wife of the first cousin".
func Relation(people People, path *kinship.Path) (string, error) {
	if path == nil || len(path.IDs) != len(path.Tags)+1 {
		return "", errors.New(errors.ErrCodeInvalidInput, "malformed relationship path")
	}
	toks := collapse(tokenize(path.Tags))

	phrases := make([]string, len(toks))
	for i, t := range toks {
		p, err := lookup(people, path.IDs[t.subject])
		if err != nil {
			return "", err
		}
		phrases[i] = t.phrase(p.Sex)
	}
	return strings.Join(phrases, " of the "), nil
}

func lookup(people People, id string) (*kinship.Person, error) {
	if p, ok := people.Person(id); ok {
		return p, nil
	}
	return nil, errors.New(errors.ErrCodeNotFound, "Sorry, I can't find the person with ID %s", id)
}
