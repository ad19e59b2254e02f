package kinship

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// MinQueryLength is the shortest query Search answers.
const MinQueryLength = 3

// Search returns the people whose display name contains every word of query,
// case-insensitively, in dataset order. Queries shorter than MinQueryLength
// match nothing.
func (g *Graph) Search(query string) []*Person {
	if len(query) < MinQueryLength {
		return nil
	}
	words := strings.Fields(strings.ToLower(query))
	var out []*Person
	for _, p := range g.People() {
		name := strings.ToLower(p.DisplayName())
		if !slices.ContainsFunc(words, func(w string) bool { return !strings.Contains(name, w) }) {
			out = append(out, p)
		}
	}
	return out
}

// Resolve turns a user-supplied reference into a person id. An exact id wins,
// then an exact display name, then a unique Search hit.
func (g *Graph) Resolve(ref string) (string, bool) {
	if g.Has(ref) {
		return ref, true
	}
	for _, p := range g.People() {
		if strings.EqualFold(p.DisplayName(), strings.TrimSpace(ref)) {
			return p.ID, true
		}
	}
	if hits := g.Search(ref); len(hits) == 1 {
		return hits[0].ID, true
	}
	return "", false
}

// SurnameGroup is one row of the name index.
type SurnameGroup struct {
	Surname string
	People  []*Person
}

// SurnameIndex groups everyone by surname, sorted alphabetically by surname
// then display name. People without a delimited surname are listed last.
func (g *Graph) SurnameIndex() []SurnameGroup {
	bySurname := make(map[string][]*Person)
	for _, p := range g.People() {
		s := Surname(p.CanonicalName())
		bySurname[s] = append(bySurname[s], p)
	}

	out := make([]SurnameGroup, 0, len(bySurname))
	for s, people := range bySurname {
		slices.SortStableFunc(people, func(a, b *Person) int {
			return cmp.Compare(a.DisplayName(), b.DisplayName())
		})
		out = append(out, SurnameGroup{Surname: s, People: people})
	}
	slices.SortFunc(out, func(a, b SurnameGroup) int {
		if (a.Surname == UnknownSurname) != (b.Surname == UnknownSurname) {
			if a.Surname == UnknownSurname {
				return 1
			}
			return -1
		}
		return cmp.Compare(a.Surname, b.Surname)
	})
	return out
}

// Birthday is a living person's day and month of birth.
type Birthday struct {
	Date   string // "7 Mar"
	Month  int
	Day    int
	Person *Person
}

var months = []string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}

// Birthdays lists living people with a full "D Mon YYYY" birth date, ordered
// through the calendar year.
func (g *Graph) Birthdays() []Birthday {
	var out []Birthday
	for _, p := range g.People() {
		if !p.Living() {
			continue
		}
		if b, ok := parseBirthday(p.Birth.Date()); ok {
			b.Person = p
			out = append(out, b)
		}
	}
	slices.SortStableFunc(out, func(a, b Birthday) int {
		if c := cmp.Compare(a.Month, b.Month); c != 0 {
			return c
		}
		return cmp.Compare(a.Day, b.Day)
	})
	return out
}

func parseBirthday(date string) (Birthday, bool) {
	f := strings.Fields(date)
	if len(f) != 3 {
		return Birthday{}, false
	}
	day, err := strconv.Atoi(f[0])
	if err != nil || day < 1 || day > 31 {
		return Birthday{}, false
	}
	mon := slices.Index(months, strings.ToLower(f[1]))
	if mon < 0 {
		return Birthday{}, false
	}
	title := strings.ToUpper(months[mon][:1]) + months[mon][1:]
	return Birthday{Date: strconv.Itoa(day) + " " + title, Month: mon + 1, Day: day}, true
}
