package relate_test

import (
	"fmt"
	"testing"

	"github.com/kinview/kinview/pkg/errors"
	"github.com/kinview/kinview/pkg/kinship"
	"github.com/kinview/kinview/pkg/kinship/kinshiptest"
	"github.com/kinview/kinview/pkg/relate"
)

func TestTranslateFamily(t *testing.T) {
	g := kinshiptest.Family()

	tests := []struct {
		from, to string
		want     string
	}{
		{"A", "B", "Adam Gray is the brother of Beth Gray"},
		{"B", "A", "Beth Gray is the sister of Adam Gray"},
		{"A", "K", "Adam Gray is the father of Kit Gray"},
		{"K", "A", "Kit Gray is the son of Adam Gray"},
		{"A", "GF", "Adam Gray is the grandson of George Gray"},
		{"GF", "A", "George Gray is the grandfather of Adam Gray"},
		{"GF", "K", "George Gray is the great-grandfather of Kit Gray"},
		{"R", "GF", "Ruth Vale is the great-granddaughter of George Gray"},
		{"A", "W", "Adam Gray is the husband of Wendy Lark"},
		{"A", "Q", "Adam Gray is the first cousin of Quinn Gray"},
		{"A", "R", "Adam Gray is the first cousin once removed of Ruth Vale"},
		{"U", "A", "Hugh Gray is the uncle of Adam Gray"},
		{"A", "U", "Adam Gray is the nephew of Hugh Gray"},
		{"K", "B", "Kit Gray is the nephew of Beth Gray"},
		{"B", "K", "Beth Gray is the aunt of Kit Gray"},
		{"W", "B", "Wendy Lark is the sister-in-law of Beth Gray"},
		{"B", "W", "Beth Gray is the sister-in-law of Wendy Lark"},
		{"GF", "M", "George Gray is the father-in-law of Mary Moss"},
		{"M", "GF", "Mary Moss is the daughter-in-law of George Gray"},
		{"W", "R", "Wendy Lark is the wife of the first cousin once removed of Ruth Vale"},
		{"A", "A", "Adam Gray and Adam Gray are the same person"},
	}
	for _, tt := range tests {
		t.Run(tt.from+"-"+tt.to, func(t *testing.T) {
			path, err := g.ShortestPath(tt.from, tt.to)
			if err != nil {
				t.Fatal(err)
			}
			got, err := relate.Translate(g, path)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Translate(%s) = %q, want %q", path, got, tt.want)
			}
		})
	}
}

func TestTranslateStepRelations(t *testing.T) {
	g := kinshiptest.Remarriage()

	tests := []struct {
		from, to string
		want     string
	}{
		{"S1", "C2", "Sue Two is the stepmother of Cora One"},
		{"C2", "S1", "Cora One is the stepdaughter of Sue Two"},
		{"C1", "C2", "Cal One is the brother of Cora One"},
	}
	for _, tt := range tests {
		path, err := g.ShortestPath(tt.from, tt.to)
		if err != nil {
			t.Fatal(err)
		}
		got, err := relate.Translate(g, path)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("Translate(%s) = %q, want %q", path, got, tt.want)
		}
	}
}

// chain builds a graph of literal ids and a path over them, so golden cases
// do not depend on search order.
func chain(sexes map[string]kinship.Sex, ids []string, tags string) (*kinship.Graph, *kinship.Path) {
	people := make([]*kinship.Person, len(ids))
	for i, id := range ids {
		people[i] = &kinship.Person{ID: id, Name: id, Sex: sexes[id]}
	}
	path := &kinship.Path{IDs: ids}
	for _, c := range tags {
		path.Tags = append(path.Tags, kinship.Tag(c))
	}
	return kinship.MustGraph(people...), path
}

func TestRelationGolden(t *testing.T) {
	tests := []struct {
		name  string
		tags  string
		sexes map[string]kinship.Sex
		want  string
	}{
		{"sibling male", "PC", map[string]kinship.Sex{"p0": kinship.SexMale}, "brother"},
		{"sibling female", "PC", map[string]kinship.Sex{"p0": kinship.SexFemale}, "sister"},
		{"sibling unknown", "PC", nil, "sibling"},
		{"parent unknown", "C", nil, "parent"},
		{"spouse unknown", "S", nil, "spouse"},
		{"grandfather", "CC", map[string]kinship.Sex{"p0": kinship.SexMale}, "grandfather"},
		{"great-great", "CCCC", map[string]kinship.Sex{"p0": kinship.SexMale}, "great-great-grandfather"},
		{"ordinal great", "CCCCC", map[string]kinship.Sex{"p0": kinship.SexMale}, "3rd great-grandfather"},
		{"fourth great", "CCCCCC", map[string]kinship.Sex{"p0": kinship.SexFemale}, "4th great-grandmother"},
		{"eleventh great", "PPPPPPPPPPPPP", nil, "11th great-grandchild"},
		{"second cousin", "PPPCCC", nil, "second cousin"},
		{"first cousin twice removed", "PPCCCC", nil, "first cousin twice removed"},
		{"second cousin thrice removed", "PPPPPPCCC", nil, "second cousin thrice removed"},
		{"first cousin four times removed", "PPCCCCCC", nil, "first cousin 4 times removed"},
		{"great-aunt", "PCCC", map[string]kinship.Sex{"p0": kinship.SexFemale}, "great-aunt"},
		{"great-nephew", "PPPC", map[string]kinship.Sex{"p0": kinship.SexMale}, "great-nephew"},
		{"stepfather", "SC", map[string]kinship.Sex{"p0": kinship.SexMale}, "stepfather"},
		{"stepchild", "PS", nil, "stepchild"},
		{"mother-in-law", "CS", map[string]kinship.Sex{"p0": kinship.SexFemale}, "mother-in-law"},
		{"son-in-law", "SP", map[string]kinship.Sex{"p0": kinship.SexMale}, "son-in-law"},
		{"brother-in-law", "SPC", map[string]kinship.Sex{"p0": kinship.SexMale}, "brother-in-law"},
		{"sibling-in-law", "PCS", nil, "sibling-in-law"},
		{
			"chained phrases use each subject's sex", "SSC",
			map[string]kinship.Sex{"p0": kinship.SexFemale, "p1": kinship.SexMale},
			"wife of the stepfather",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := make([]string, len(tt.tags)+1)
			for i := range ids {
				ids[i] = fmt.Sprintf("p%d", i)
			}
			g, path := chain(tt.sexes, ids, tt.tags)
			got, err := relate.Relation(g, path)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Relation(%s) = %q, want %q", tt.tags, got, tt.want)
			}
		})
	}
}

func TestTranslateIsDeterministic(t *testing.T) {
	g, path := chain(map[string]kinship.Sex{"A": kinship.SexFemale}, []string{"A", "B", "C"}, "PC")
	first, err := relate.Translate(g, path)
	if err != nil {
		t.Fatal(err)
	}
	for range 10 {
		if got, _ := relate.Translate(g, path); got != first {
			t.Fatalf("Translate changed between calls: %q then %q", first, got)
		}
	}
	if first != "A is the sister of C" {
		t.Errorf("Translate = %q", first)
	}
}

func TestTranslateErrors(t *testing.T) {
	g := kinshiptest.Family()

	if _, err := relate.Translate(g, nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("nil path = %v, want INVALID_INPUT", err)
	}
	bad := &kinship.Path{IDs: []string{"A", "ghost"}, Tags: []kinship.Tag{kinship.TagChild}}
	if _, err := relate.Translate(g, bad); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("unknown person = %v, want NOT_FOUND", err)
	}
	malformed := &kinship.Path{IDs: []string{"A", "B"}}
	if _, err := relate.Relation(g, malformed); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("malformed path = %v, want INVALID_INPUT", err)
	}
}

func TestLineageTerms(t *testing.T) {
	tests := []struct {
		n    int
		sex  kinship.Sex
		want string
	}{
		{1, kinship.SexFemale, "daughter"},
		{2, kinship.SexMale, "grandson"},
		{3, kinship.SexUnknown, "great-grandchild"},
		{7, kinship.SexMale, "5th great-grandson"},
	}
	for _, tt := range tests {
		if got := relate.DescendantTerm(tt.n, tt.sex); got != tt.want {
			t.Errorf("DescendantTerm(%d, %s) = %q, want %q", tt.n, tt.sex, got, tt.want)
		}
	}
	if got := relate.AncestorTerm(2, kinship.SexFemale); got != "grandmother" {
		t.Errorf("AncestorTerm(2, f) = %q", got)
	}
}
