// Package kinshiptest builds small, internally consistent kinship graphs for
// tests.
package kinshiptest

import (
	"github.com/kinview/kinview/pkg/kinship"
)

// Builder accumulates people and keeps parent, child and spouse lists
// mutually consistent.
type Builder struct {
	people []*kinship.Person
	byID   map[string]*kinship.Person
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{byID: make(map[string]*kinship.Person)}
}

// Person adds a person. name uses the slash surname convention.
func (b *Builder) Person(id, name string, sex kinship.Sex) *Builder {
	p := &kinship.Person{ID: id, Name: name, Sex: sex}
	b.people = append(b.people, p)
	b.byID[id] = p
	return b
}

// Born sets the birth record of id.
func (b *Builder) Born(id, date, place string) *Builder {
	b.byID[id].Birth = kinship.Vital{date, place}
	return b
}

// Died sets the death record of id.
func (b *Builder) Died(id, date, place string) *Builder {
	b.byID[id].Death = kinship.Vital{date, place}
	return b
}

// Marry records a and c as spouses of each other.
func (b *Builder) Marry(a, c string) *Builder {
	b.byID[a].Spouses = append(b.byID[a].Spouses, c)
	b.byID[c].Spouses = append(b.byID[c].Spouses, a)
	return b
}

// Child records child as a child of every listed parent.
func (b *Builder) Child(child string, parents ...string) *Builder {
	for _, par := range parents {
		b.byID[par].Children = append(b.byID[par].Children, child)
		b.byID[child].Parents = append(b.byID[child].Parents, par)
	}
	return b
}

// Graph returns the built graph. It panics on duplicate ids.
func (b *Builder) Graph() *kinship.Graph {
	return kinship.MustGraph(b.people...)
}

// Family returns a three-generation family used across package tests:
//
//	GF=GM
//	├── F=M ──── A (m), B (f)
//	│            A=W ─── K (m)
//	└── U=UW ─── Q (f)
//	             Q=QH ── R (f)
//
// GF/GM have no recorded parents. M has parents MF/MM who have no other
// children.
func Family() *kinship.Graph {
	return FamilyBuilder().Graph()
}

// FamilyBuilder returns the builder behind Family so tests can extend it.
func FamilyBuilder() *Builder {
	b := New().
		Person("GF", "George /Gray/", kinship.SexMale).
		Person("GM", "Grace /Hale/", kinship.SexFemale).
		Person("MF", "Martin /Moss/", kinship.SexMale).
		Person("MM", "Mabel /Reed/", kinship.SexFemale).
		Person("F", "Frank /Gray/", kinship.SexMale).
		Person("M", "Mary /Moss/", kinship.SexFemale).
		Person("U", "Hugh /Gray/", kinship.SexMale).
		Person("UW", "Ursula /Penn/", kinship.SexFemale).
		Person("A", "Adam /Gray/", kinship.SexMale).
		Person("B", "Beth /Gray/", kinship.SexFemale).
		Person("W", "Wendy /Lark/", kinship.SexFemale).
		Person("K", "Kit /Gray/", kinship.SexMale).
		Person("Q", "Quinn /Gray/", kinship.SexFemale).
		Person("QH", "Quentin /Vale/", kinship.SexMale).
		Person("R", "Ruth /Vale/", kinship.SexFemale)

	b.Marry("GF", "GM").Marry("MF", "MM").Marry("F", "M").Marry("U", "UW").
		Marry("A", "W").Marry("Q", "QH")

	b.Child("F", "GF", "GM").Child("U", "GF", "GM").
		Child("M", "MF", "MM").
		Child("A", "F", "M").Child("B", "F", "M").
		Child("Q", "U", "UW").
		Child("K", "A", "W").
		Child("R", "QH", "Q")

	b.Born("A", "3 Mar 1950", "Leeds").Born("B", "12 Jan 1953", "").
		Born("GF", "1 Jan 1890", "York").Died("GF", "1960", "York")
	return b
}

// Remarriage returns the P1 household: P1 (parents M1, F1) married to S1,
// with C1 a child of both and C2 a child of P1 alone.
func Remarriage() *kinship.Graph {
	return New().
		Person("M1", "Maud /One/", kinship.SexFemale).
		Person("F1", "Fred /One/", kinship.SexMale).
		Person("P1", "Pat /One/", kinship.SexMale).
		Person("S1", "Sue /Two/", kinship.SexFemale).
		Person("C1", "Cal /One/", kinship.SexMale).
		Person("C2", "Cora /One/", kinship.SexFemale).
		Marry("M1", "F1").
		Marry("P1", "S1").
		Child("P1", "M1", "F1").
		Child("C1", "P1", "S1").
		Child("C2", "P1").
		Graph()
}
