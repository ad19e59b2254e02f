package kinship_test

import (
	"testing"

	"github.com/kinview/kinview/pkg/kinship"
	"github.com/kinview/kinview/pkg/kinship/kinshiptest"
)

func TestSearch(t *testing.T) {
	g := kinshiptest.Family()

	tests := []struct {
		query string
		want  []string
	}{
		{"gr", nil},
		{"adam", []string{"A"}},
		{"gray", []string{"GF", "F", "U", "A", "B", "K", "Q"}},
		{"ruth vale", []string{"R"}},
		{"vale ruth", []string{"R"}},
		{"nobody here", nil},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			var got []string
			for _, p := range g.Search(tt.query) {
				got = append(got, p.ID)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Search(%q) = %v, want %v", tt.query, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Search(%q)[%d] = %s, want %s", tt.query, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestResolve(t *testing.T) {
	g := kinshiptest.Family()

	tests := []struct {
		ref    string
		want   string
		wantOK bool
	}{
		{"A", "A", true},
		{"Adam Gray", "A", true},
		{"adam gray", "A", true},
		{"wendy", "W", true},
		{"gray", "", false},
		{"zzz", "", false},
	}
	for _, tt := range tests {
		got, ok := g.Resolve(tt.ref)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Resolve(%q) = (%q, %v), want (%q, %v)", tt.ref, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestSurnameIndex(t *testing.T) {
	b := kinshiptest.FamilyBuilder()
	b.Person("N", "Nameless", kinship.SexUnknown)
	idx := b.Graph().SurnameIndex()

	if idx[0].Surname != "Gray" {
		t.Errorf("first surname = %s, want Gray", idx[0].Surname)
	}
	if last := idx[len(idx)-1]; last.Surname != kinship.UnknownSurname || last.People[0].ID != "N" {
		t.Errorf("unknown surnames should be listed last, got %+v", last.Surname)
	}
	if got := idx[0].People[0].ID; got != "A" {
		t.Errorf("Gray group should start with Adam, got %s", got)
	}
}

func TestBirthdays(t *testing.T) {
	b := kinshiptest.FamilyBuilder()
	b.Born("K", "bad date", "")
	got := b.Graph().Birthdays()

	// GF has died; K's date does not parse.
	if len(got) != 2 {
		t.Fatalf("Birthdays() returned %d entries, want 2", len(got))
	}
	if got[0].Person.ID != "B" || got[0].Date != "12 Jan" {
		t.Errorf("first birthday = %s %s, want B 12 Jan", got[0].Person.ID, got[0].Date)
	}
	if got[1].Person.ID != "A" || got[1].Date != "3 Mar" {
		t.Errorf("second birthday = %s %s, want A 3 Mar", got[1].Person.ID, got[1].Date)
	}
}

func TestDetailsPartition(t *testing.T) {
	tests := []struct {
		s    string
		hash int32
	}{
		{"", 0},
		{"a", 97},
		{"hello", 99162322},
		{"I1042", 68924582},
		{"polygenelubricants", -2147483648},
	}
	for _, tt := range tests {
		if got := kinship.JavaHashCode(tt.s); got != tt.hash {
			t.Errorf("JavaHashCode(%q) = %d, want %d", tt.s, got, tt.hash)
		}
	}

	for _, id := range []string{"a", "hello", "I1042", "polygenelubricants"} {
		p := kinship.DetailsPartition(id, 7)
		if p < 0 || p >= 7 {
			t.Errorf("DetailsPartition(%q, 7) = %d, out of range", id, p)
		}
	}
	if got := kinship.DetailsPartition("anything", 0); got != 0 {
		t.Errorf("DetailsPartition with no partitions = %d, want 0", got)
	}
	if got := kinship.DetailsFile(3); got != "details3.json" {
		t.Errorf("DetailsFile(3) = %s", got)
	}
}
