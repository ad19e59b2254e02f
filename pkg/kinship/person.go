package kinship

import (
	"strings"
)

// Sex is the single-letter sex code used by the dataset.
type Sex string

const (
	SexMale    Sex = "m"
	SexFemale  Sex = "f"
	SexUnknown Sex = "z"
)

// Code returns the normalized code; anything other than m or f is unknown.
func (s Sex) Code() Sex {
	switch Sex(strings.ToLower(string(s))) {
	case SexMale:
		return SexMale
	case SexFemale:
		return SexFemale
	}
	return SexUnknown
}

// Pick returns male, female or neutral according to s.
func (s Sex) Pick(male, female, neutral string) string {
	switch s.Code() {
	case SexMale:
		return male
	case SexFemale:
		return female
	}
	return neutral
}

// Vital is a birth or death record: [date, place].
type Vital []string

// Date returns the first element, or "".
func (v Vital) Date() string {
	if len(v) > 0 {
		return strings.TrimSpace(v[0])
	}
	return ""
}

// Place returns the second element, or "".
func (v Vital) Place() string {
	if len(v) > 1 {
		return strings.TrimSpace(v[1])
	}
	return ""
}

// String renders "date in place", omitting whichever part is missing.
func (v Vital) String() string {
	s := v.Date()
	if p := v.Place(); p != "" {
		s += " in " + p
	}
	return strings.TrimSpace(s)
}

// Event is one life event: [date, detail..., type]. The final element is the
// single-letter type code.
type Event []string

// Event type codes.
const (
	EventBirth     = "B"
	EventDeath     = "D"
	EventMarriage  = "M"
	EventDivorce   = "V"
	EventAdoption  = "A"
	EventResidence = "L"
	EventRecord    = "R"
)

// Type returns the event's type code.
func (e Event) Type() string {
	if len(e) == 0 {
		return ""
	}
	return e[len(e)-1]
}

// Date returns the event's date.
func (e Event) Date() string {
	if len(e) == 0 {
		return ""
	}
	return e[0]
}

// Details returns the elements between the date and the type code.
func (e Event) Details() []string {
	if len(e) < 3 {
		return nil
	}
	return e[1 : len(e)-1]
}

// Cite is a source citation: [title, text].
type Cite []string

// Person is one record of the kinship graph.
type Person struct {
	ID       string   `json:"id" bson:"_id"`
	Name     string   `json:"name" bson:"name"`
	Names    []string `json:"names,omitempty" bson:"names,omitempty"`
	Sex      Sex      `json:"sex" bson:"sex"`
	Parents  []string `json:"parents,omitempty" bson:"parents,omitempty"`
	Children []string `json:"children,omitempty" bson:"children,omitempty"`
	Spouses  []string `json:"spouses,omitempty" bson:"spouses,omitempty"`
	Birth    Vital    `json:"birth,omitempty" bson:"birth,omitempty"`
	Death    Vital    `json:"death,omitempty" bson:"death,omitempty"`
	Note     string   `json:"note,omitempty" bson:"note,omitempty"`
	Events   []Event  `json:"events,omitempty" bson:"events,omitempty"`
	Cites    []Cite   `json:"cites,omitempty" bson:"cites,omitempty"`
	Pictures []string `json:"pictures,omitempty" bson:"pictures,omitempty"`
}

// CanonicalName returns Name, falling back to the first alternate name.
func (p *Person) CanonicalName() string {
	if p.Name != "" {
		return p.Name
	}
	if len(p.Names) > 0 {
		return p.Names[0]
	}
	return ""
}

// DisplayName returns the person's name without surname slashes.
func (p *Person) DisplayName() string {
	return DisplayName(p.CanonicalName())
}

// Living reports whether no death is recorded.
func (p *Person) Living() bool {
	return p.Death.Date() == "" && p.Death.Place() == ""
}

// Lifespan renders " (birth-death)" from the vital dates, or "" when both are
// unknown.
func (p *Person) Lifespan() string {
	from, to := p.Birth.Date(), p.Death.Date()
	if from == "" && to == "" {
		return ""
	}
	return " (" + from + "-" + to + ")"
}

// DisplayName strips the surname delimiters from a GEDCOM name.
func DisplayName(name string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(name, "/", "")), " ")
}

// Surname returns the slash-delimited part of a GEDCOM name, or "UNKNOWN"
// when the name has none.
func Surname(name string) string {
	var parts []string
	in := false
	for _, w := range strings.Fields(name) {
		if strings.HasPrefix(w, "/") {
			in = true
		}
		if in {
			parts = append(parts, w)
		}
		if in && strings.HasSuffix(w, "/") {
			return strings.TrimSpace(strings.ReplaceAll(strings.Join(parts, " "), "/", ""))
		}
	}
	return UnknownSurname
}

// UnknownSurname is returned by Surname for names without a delimited surname.
const UnknownSurname = "UNKNOWN"

// SplitName separates the forenames from the surname words. Words following
// the opening slash (suffixes included) belong to the surname.
func SplitName(name string) (forenames, surname string) {
	var fore, sur []string
	in := false
	for _, w := range strings.Fields(name) {
		if strings.HasPrefix(w, "/") {
			in = true
		}
		clean := strings.ReplaceAll(w, "/", "")
		if clean == "" {
			continue
		}
		if in {
			sur = append(sur, clean)
		} else {
			fore = append(fore, clean)
		}
	}
	return strings.Join(fore, " "), strings.Join(sur, " ")
}
