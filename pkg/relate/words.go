package relate

import (
	"fmt"
	"strings"

	"github.com/kinview/kinview/pkg/kinship"
)

func (t token) phrase(sex kinship.Sex) string {
	switch t.kind {
	case parentOf:
		return AncestorTerm(t.n, sex)
	case childOf:
		return DescendantTerm(t.n, sex)
	case spouseOf:
		return sex.Pick("husband", "wife", "spouse")
	case siblingOf:
		return sex.Pick("brother", "sister", "sibling")
	case cousinOf:
		s := ordinalWord(t.n) + " cousin"
		if t.removed > 0 {
			s += " " + adverb(t.removed) + " removed"
		}
		return s
	case stepParentOf:
		return sex.Pick("stepfather", "stepmother", "stepparent")
	case stepChildOf:
		return sex.Pick("stepson", "stepdaughter", "stepchild")
	case parentInLawOf:
		return sex.Pick("father-in-law", "mother-in-law", "parent-in-law")
	case childInLawOf:
		return sex.Pick("son-in-law", "daughter-in-law", "child-in-law")
	case siblingInLawOf:
		return sex.Pick("brother-in-law", "sister-in-law", "sibling-in-law")
	case auntUncleOf:
		return greatPrefix(t.n-1) + sex.Pick("uncle", "aunt", "aunt or uncle")
	case nieceNephewOf:
		return greatPrefix(t.n-1) + sex.Pick("nephew", "niece", "niece or nephew")
	}
	return "relative"
}

// AncestorTerm names an ancestor n generations up: father, grandfather,
// great-grandfather, ..., "4th great-grandfather".
func AncestorTerm(n int, sex kinship.Sex) string {
	return degreeTerm(n, sex.Pick("father", "mother", "parent"))
}

// DescendantTerm names a descendant n generations down: son, grandson,
// great-grandson, ...
func DescendantTerm(n int, sex kinship.Sex) string {
	return degreeTerm(n, sex.Pick("son", "daughter", "child"))
}

func degreeTerm(n int, base string) string {
	if n <= 1 {
		return base
	}
	return greatPrefix(n-2) + "grand" + base
}

// greatPrefix returns k "great-" prefixes, switching to an ordinal past two.
func greatPrefix(k int) string {
	if k <= 0 {
		return ""
	}
	if k <= 2 {
		return strings.Repeat("great-", k)
	}
	return ordinalSuffix(k) + " great-"
}

// ordinalSuffix renders 1st, 2nd, 3rd, 4th, 11th, 21st, ...
func ordinalSuffix(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}

var ordinalWords = []string{
	"zeroth", "first", "second", "third", "fourth", "fifth",
	"sixth", "seventh", "eighth", "ninth", "tenth",
}

func ordinalWord(n int) string {
	if n >= 0 && n < len(ordinalWords) {
		return ordinalWords[n]
	}
	return ordinalSuffix(n)
}

var adverbs = []string{"", "once", "twice", "thrice"}

func adverb(n int) string {
	if n > 0 && n < len(adverbs) {
		return adverbs[n]
	}
	return fmt.Sprintf("%d times", n)
}
