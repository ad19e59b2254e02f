package relate

import (
	"github.com/kinview/kinview/pkg/kinship"
)

type kind int

const (
	parentOf kind = iota // subject is an ancestor of object, degree n
	childOf              // subject is a descendant of object, degree n
	spouseOf
	siblingOf
	cousinOf // n is the cousin degree, removed the generation gap
	stepParentOf
	stepChildOf
	parentInLawOf
	childInLawOf
	siblingInLawOf
	auntUncleOf   // n is the generation gap above the sibling
	nieceNephewOf // n is the generation gap below the sibling
)

// token is one collapsed span of the tag sequence.
type token struct {
	kind    kind
	n       int
	removed int
	subject int // path index where the span starts; that person's sex picks the word
}

func tokenize(tags []kinship.Tag) []token {
	toks := make([]token, len(tags))
	for i, t := range tags {
		k := spouseOf
		switch t {
		case kinship.TagChild:
			k = parentOf
		case kinship.TagParent:
			k = childOf
		}
		toks[i] = token{kind: k, n: 1, subject: i}
	}
	return toks
}

func collapse(toks []token) []token {
	toks = collapseSiblings(toks)
	toks = collapseChains(toks)
	toks = collapseCousins(toks)
	return collapsePairs(toks)
}

// collapseSiblings turns (up to a parent, down to a child) into a sibling.
func collapseSiblings(toks []token) []token {
	out := make([]token, 0, len(toks))
	for i := 0; i < len(toks); i++ {
		if i+1 < len(toks) && toks[i].kind == childOf && toks[i+1].kind == parentOf {
			out = append(out, token{kind: siblingOf, n: 1, subject: toks[i].subject})
			i++
			continue
		}
		out = append(out, toks[i])
	}
	return out
}

// collapseChains merges runs of parent hops, or of child hops, into one token
// whose degree is the run length.
func collapseChains(toks []token) []token {
	out := make([]token, 0, len(toks))
	for _, t := range toks {
		if n := len(out); n > 0 && (t.kind == parentOf || t.kind == childOf) && out[n-1].kind == t.kind {
			out[n-1].n += t.n
			continue
		}
		out = append(out, t)
	}
	return out
}

// collapseCousins turns up-run, sibling, down-run into a cousin.
func collapseCousins(toks []token) []token {
	out := make([]token, 0, len(toks))
	for i := 0; i < len(toks); i++ {
		if i+2 < len(toks) && toks[i].kind == childOf && toks[i+1].kind == siblingOf && toks[i+2].kind == parentOf {
			up, down := toks[i].n, toks[i+2].n
			out = append(out, token{
				kind:    cousinOf,
				n:       min(up, down),
				removed: max(up, down) - min(up, down),
				subject: toks[i].subject,
			})
			i += 2
			continue
		}
		out = append(out, toks[i])
	}
	return out
}

// pairRule maps an adjacent token pair to a single token. degree computes the
// new token's n from the pair; nil keeps 1.
type pairRule struct {
	first, second kind
	result        kind
	accept        func(a, b token) bool
	degree        func(a, b token) int
}

func single(a, b token) bool { return a.n == 1 && b.n == 1 }

var pairRules = []pairRule{
	{first: spouseOf, second: parentOf, result: stepParentOf, accept: single},
	{first: childOf, second: spouseOf, result: stepChildOf, accept: single},
	{first: parentOf, second: spouseOf, result: parentInLawOf, accept: single},
	{first: spouseOf, second: childOf, result: childInLawOf, accept: single},
	{first: spouseOf, second: siblingOf, result: siblingInLawOf, accept: single},
	{first: siblingOf, second: spouseOf, result: siblingInLawOf, accept: single},
	{
		first: siblingOf, second: parentOf, result: auntUncleOf,
		accept: func(token, token) bool { return true },
		degree: func(_, b token) int { return b.n },
	},
	{
		first: childOf, second: siblingOf, result: nieceNephewOf,
		accept: func(token, token) bool { return true },
		degree: func(a, _ token) int { return a.n },
	},
}

// collapsePairs applies pairRules left to right without overlap.
func collapsePairs(toks []token) []token {
	out := make([]token, 0, len(toks))
	for i := 0; i < len(toks); i++ {
		if i+1 < len(toks) {
			if t, ok := matchPair(toks[i], toks[i+1]); ok {
				out = append(out, t)
				i++
				continue
			}
		}
		out = append(out, toks[i])
	}
	return out
}

func matchPair(a, b token) (token, bool) {
	for _, r := range pairRules {
		if a.kind != r.first || b.kind != r.second || !r.accept(a, b) {
			continue
		}
		n := 1
		if r.degree != nil {
			n = r.degree(a, b)
		}
		return token{kind: r.result, n: n, subject: a.subject}, true
	}
	return token{}, false
}
