package layout_test

import (
	"cmp"
	"math"
	"slices"
	"testing"

	"github.com/kinview/kinview/pkg/errors"
	"github.com/kinview/kinview/pkg/kinship"
	"github.com/kinview/kinview/pkg/kinship/kinshiptest"
	"github.com/kinview/kinview/pkg/layout"
)

const eps = 1e-6

func approx(a, b float64) bool { return math.Abs(a-b) < eps }

func mustLayout(t *testing.T, g *kinship.Graph, focus string, opts ...layout.Option) *layout.Layout {
	t.Helper()
	l, err := layout.New(g, focus, opts...)
	if err != nil {
		t.Fatalf("New(%s) error: %v", focus, err)
	}
	return l
}

func mustPosition(t *testing.T, g *kinship.Graph, focus string, opts ...layout.Option) *layout.Layout {
	t.Helper()
	l := mustLayout(t, g, focus, opts...)
	if err := l.Position(layout.DefaultConfig()); err != nil {
		t.Fatalf("Position() error: %v", err)
	}
	return l
}

// coParents returns a graph where X has parents P and Q who are not
// recorded as spouses.
func coParents() *kinship.Graph {
	return kinshiptest.New().
		Person("P", "Paul /Oak/", kinship.SexMale).
		Person("Q", "Queenie /Elm/", kinship.SexFemale).
		Person("X", "Xavier /Oak/", kinship.SexMale).
		Child("X", "P", "Q").
		Graph()
}

func TestNewErrors(t *testing.T) {
	g := kinshiptest.Family()
	broken := kinship.MustGraph(
		&kinship.Person{ID: "a", Name: "Al /Ghost/", Children: []string{"nobody"}},
	)
	apart := kinship.MustGraph(
		&kinship.Person{ID: "a", Name: "Al /One/"},
		&kinship.Person{ID: "b", Name: "Bo /Two/"},
	)

	tests := []struct {
		name  string
		g     *kinship.Graph
		focus string
		opts  []layout.Option
		want  errors.Code
	}{
		{"unknown focus", g, "nobody", nil, errors.ErrCodeNotFound},
		{"unknown target", g, "A", []layout.Option{layout.WithStyle(layout.StyleConnection), layout.WithTarget("nobody")}, errors.ErrCodeNotFound},
		{"missing target", g, "A", []layout.Option{layout.WithStyle(layout.StyleConnection)}, errors.ErrCodeInvalidInput},
		{"unreachable", apart, "a", []layout.Option{layout.WithStyle(layout.StyleConnection), layout.WithTarget("b")}, errors.ErrCodeUnreachable},
		{"dangling reference", broken, "a", nil, errors.ErrCodeDataInconsistency},
		{"invalid style", g, "A", []layout.Option{layout.WithStyle(layout.Style(42))}, errors.ErrCodeInvalidStyle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := layout.New(tt.g, tt.focus, tt.opts...)
			if !errors.Is(err, tt.want) {
				t.Fatalf("New() error = %v, want %s", err, tt.want)
			}
			if l != nil {
				t.Error("New() returned a layout together with an error")
			}
		})
	}
}

func TestParseStyle(t *testing.T) {
	tests := []struct {
		in      string
		want    layout.Style
		wantErr bool
	}{
		{"standard", layout.StyleStandard, false},
		{"Subtree", layout.StyleSubtree, false},
		{"PEDIGREE", layout.StylePedigree, false},
		{"connection", layout.StyleConnection, false},
		{"fan", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := layout.ParseStyle(tt.in)
		if tt.wantErr {
			if !errors.Is(err, errors.ErrCodeInvalidStyle) {
				t.Errorf("ParseStyle(%q) error = %v, want INVALID_STYLE", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseStyle(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
		if got.String() != tt.want.String() {
			t.Errorf("String() = %q", got.String())
		}
	}
}

func TestStandardStructure(t *testing.T) {
	l := mustLayout(t, kinshiptest.Family(), "A")

	if l.State() != layout.StateBuilt {
		t.Errorf("State() = %v, want built", l.State())
	}
	if got := l.Root().IDs(); !slices.Equal(got, []string{"GF", "GM"}) {
		t.Errorf("Root().IDs() = %v, want [GF GM]", got)
	}
	if n := len(l.AllNodes()); n != 8 {
		t.Errorf("len(AllNodes()) = %d, want 8", n)
	}

	gens := map[string]int{"GF": -2, "F": -1, "U": -1, "A": 0, "B": 0, "Q": 0, "K": 1, "R": 1}
	for id, want := range gens {
		n := l.LookupNodeByID(id)
		if n == nil {
			t.Errorf("LookupNodeByID(%s) = nil", id)
			continue
		}
		if n.Generation() != want {
			t.Errorf("%s generation = %d, want %d", id, n.Generation(), want)
		}
	}

	if l.LookupNodeByID("M") != l.LookupNodeByID("F") {
		t.Error("spouse M should resolve to F's group")
	}
	if l.LookupNodeByID("M").Kind() != layout.KindGroup {
		t.Error("F and M should form a group")
	}
	if l.LookupNodeByID("B").Kind() != layout.KindPerson {
		t.Error("B should be a single person node")
	}
	for _, id := range []string{"MF", "MM"} {
		if l.LookupNodeByID(id) != nil {
			t.Errorf("LookupNodeByID(%s) should be nil", id)
		}
	}
}

func TestHiddenRelatives(t *testing.T) {
	g := kinshiptest.Family()

	tests := []struct {
		name         string
		l            *layout.Layout
		id           string
		wantParents  bool
		wantChildren bool
	}{
		{"both parents shown", mustLayout(t, g, "A"), "A", false, false},
		{"in-law parents not shown", mustLayout(t, g, "A"), "M", true, false},
		{"root has no parents", mustLayout(t, g, "A"), "GF", false, false},
		{"truncated children", mustLayout(t, g, "A", layout.WithGenerations(2)), "A", false, true},
		{"truncated spouse children", mustLayout(t, g, "A", layout.WithGenerations(2)), "W", false, true},
		{"subtree hides parents", mustLayout(t, g, "F", layout.WithStyle(layout.StyleSubtree)), "F", true, false},
		{"pedigree limit", mustLayout(t, g, "A", layout.WithStyle(layout.StylePedigree), layout.WithGenerations(1)), "F", true, true},
		{
			"one of two parents on the chain",
			mustLayout(t, g, "A", layout.WithStyle(layout.StyleConnection), layout.WithTarget("K")),
			"K", true, false,
		},
		{
			"both parents on the chain",
			mustLayout(t, coParents(), "P", layout.WithStyle(layout.StyleConnection), layout.WithTarget("Q")),
			"X", false, false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.l.Member(tt.id)
			if m == nil {
				t.Fatalf("Member(%s) = nil", tt.id)
			}
			if m.HiddenParents() != tt.wantParents {
				t.Errorf("HiddenParents() = %v, want %v", m.HiddenParents(), tt.wantParents)
			}
			if m.HiddenChildren() != tt.wantChildren {
				t.Errorf("HiddenChildren() = %v, want %v", m.HiddenChildren(), tt.wantChildren)
			}
		})
	}
}

func TestStepChildrenScenario(t *testing.T) {
	l := mustLayout(t, kinshiptest.Remarriage(), "P1", layout.WithStyle(layout.StyleSubtree))

	grp, ok := l.LookupNodeByID("S1").(*layout.GroupNode)
	if !ok {
		t.Fatalf("S1 should be in a group, got %T", l.LookupNodeByID("S1"))
	}
	var kids []string
	for _, d := range grp.Descendants() {
		kids = append(kids, d.ID())
	}
	if !slices.Equal(kids, []string{"C1", "C2"}) {
		t.Errorf("group descendants = %v, want [C1 C2]", kids)
	}

	own := func(id string) []string {
		var ids []string
		for _, d := range grp.Member(id).Descendants() {
			ids = append(ids, d.ID())
		}
		return ids
	}
	if got := own("P1"); !slices.Equal(got, []string{"C1", "C2"}) {
		t.Errorf("P1 descendants = %v, want [C1 C2]", got)
	}
	if got := own("S1"); !slices.Equal(got, []string{"C1"}) {
		t.Errorf("S1 descendants = %v, want [C1]", got)
	}
	if l.Member("C2").HiddenParents() {
		t.Error("C2's only parent is shown")
	}
}

func TestConnectionChain(t *testing.T) {
	l := mustLayout(t, kinshiptest.Family(), "W",
		layout.WithStyle(layout.StyleConnection), layout.WithTarget("B"))

	if got := l.Path().String(); got != "W -S-> A -P-> F -C-> B" {
		t.Errorf("Path() = %q", got)
	}
	if l.Root().ID() != "F" {
		t.Errorf("Root().ID() = %q, want F", l.Root().ID())
	}
	wa := l.LookupNodeByID("A")
	if wa.Kind() != layout.KindGroup || !slices.Equal(wa.IDs(), []string{"W", "A"}) {
		t.Errorf("spouse hop should merge W and A, got %v %v", wa.Kind(), wa.IDs())
	}
	if wa.Generation() != 0 || l.LookupNodeByID("F").Generation() != -1 || l.LookupNodeByID("B").Generation() != 0 {
		t.Error("generations should follow the hops")
	}
	if l.LookupNodeByID("M") != nil {
		t.Error("people off the chain should not be shown")
	}

	if err := l.Position(layout.DefaultConfig()); err != nil {
		t.Fatal(err)
	}
	a := l.Member("A")
	got := wa.ParentConnector(l.LookupNodeByID("F"))
	want := layout.Point{X: a.X() + a.Width()/2, Y: a.Y() - layout.NodeBorderMargin}
	if !approx(got.X, want.X) || !approx(got.Y, want.Y) {
		t.Errorf("ParentConnector = %+v, want %+v (the member who is F's child)", got, want)
	}
	checkRows(t, l)
}

func TestConnectionRoot(t *testing.T) {
	l := mustLayout(t, coParents(), "P",
		layout.WithStyle(layout.StyleConnection), layout.WithTarget("Q"))

	root := l.Root()
	if root.Kind() != layout.KindRoot {
		t.Fatalf("Root().Kind() = %v, want root", root.Kind())
	}
	all := l.AllNodes()
	if len(all) != 3 {
		t.Errorf("len(AllNodes()) = %d, want 3", len(all))
	}
	for _, n := range all {
		if n.Kind() == layout.KindRoot {
			t.Error("AllNodes() must not include the root")
		}
	}
	if n := len(l.LookupNodeByID("X").Ascendants()); n != 2 {
		t.Errorf("X ascendants = %d, want 2", n)
	}

	if err := l.Position(layout.DefaultConfig()); err != nil {
		t.Fatal(err)
	}
	if n := len(l.Edges()); n != 2 {
		t.Errorf("len(Edges()) = %d, want 2", n)
	}
	if ext := l.TreeExtents(); ext.MinY != 0 {
		t.Errorf("extents MinY = %v; the root must not count", ext.MinY)
	}
	if _, ok := root.HitTest(root.X(), root.Y()); ok {
		t.Error("the root is never hit")
	}
	checkRows(t, l)
}

func TestConnectionHopSymmetry(t *testing.T) {
	g := kinshiptest.Family()
	ids := g.IDs()
	for _, a := range ids {
		for _, b := range ids {
			ab := mustLayout(t, g, a, layout.WithStyle(layout.StyleConnection), layout.WithTarget(b))
			ba := mustLayout(t, g, b, layout.WithStyle(layout.StyleConnection), layout.WithTarget(a))
			if ab.Path().Hops() != ba.Path().Hops() {
				t.Errorf("%s->%s has %d hops, reverse has %d", a, b, ab.Path().Hops(), ba.Path().Hops())
			}
		}
	}
}

func TestPedigree(t *testing.T) {
	l := mustPosition(t, kinshiptest.Family(), "A", layout.WithStyle(layout.StylePedigree))

	if n := len(l.AllNodes()); n != 7 {
		t.Errorf("len(AllNodes()) = %d, want 7", n)
	}
	for _, n := range l.AllNodes() {
		if n.Kind() != layout.KindPerson {
			t.Errorf("%s is a %v; pedigree nodes are single people", n.ID(), n.Kind())
		}
	}
	if l.LookupNodeByID("W") != nil {
		t.Error("spouses are not part of a pedigree")
	}

	center := func(n layout.Item) float64 { return n.X() + n.Width()/2 }
	for _, id := range []string{"A", "F", "M"} {
		n := l.LookupNodeByID(id)
		asc := n.Ascendants()
		if len(asc) != 2 {
			t.Fatalf("%s ascendants = %d, want 2", id, len(asc))
		}
		want := (center(asc[0]) + center(asc[1])) / 2
		if !approx(center(n), want) {
			t.Errorf("%s center = %v, want %v (midpoint of its parents)", id, center(n), want)
		}
	}
	if a, f := l.LookupNodeByID("A"), l.LookupNodeByID("F"); a.Y() <= f.Y() {
		t.Error("parents should be drawn above their children")
	}
	checkRows(t, l)
}

func TestPedigreeCollapse(t *testing.T) {
	g := kinshiptest.New().
		Person("G1", "Gus /Ash/", kinship.SexMale).
		Person("G2", "Gail /Birch/", kinship.SexFemale).
		Person("G3", "Gwen /Cole/", kinship.SexFemale).
		Person("P", "Pete /Ash/", kinship.SexMale).
		Person("Q", "Quilla /Ash/", kinship.SexFemale).
		Person("X", "Xena /Ash/", kinship.SexFemale).
		Child("P", "G1", "G2").
		Child("Q", "G1", "G3").
		Child("X", "P", "Q").
		Graph()

	l := mustPosition(t, g, "X", layout.WithStyle(layout.StylePedigree))
	if n := len(l.AllNodes()); n != 6 {
		t.Errorf("len(AllNodes()) = %d, want 6 (G1 shown once)", n)
	}
	if !l.Member("Q").HiddenParents() {
		t.Error("Q's repeated ancestor should be reported hidden")
	}
	checkRows(t, l)
}

func TestPositionProperties(t *testing.T) {
	g := kinshiptest.Family()
	conn := func(to string) []layout.Option {
		return []layout.Option{layout.WithStyle(layout.StyleConnection), layout.WithTarget(to)}
	}
	tests := []struct {
		name  string
		focus string
		opts  []layout.Option
	}{
		{"standard A", "A", nil},
		{"standard K", "K", nil},
		{"standard GF", "GF", nil},
		{"standard deep", "R", []layout.Option{layout.WithGenerations(5)}},
		{"subtree GF", "GF", []layout.Option{layout.WithStyle(layout.StyleSubtree), layout.WithGenerations(4)}},
		{"pedigree A", "A", []layout.Option{layout.WithStyle(layout.StylePedigree)}},
		{"pedigree R", "R", []layout.Option{layout.WithStyle(layout.StylePedigree)}},
		{"connection A R", "A", conn("R")},
		{"connection R K", "R", conn("K")},
		{"connection self", "A", conn("A")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := mustPosition(t, g, tt.focus, tt.opts...)
			checkRows(t, l)

			before := snapshot(l)
			if err := l.Position(layout.DefaultConfig()); err != nil {
				t.Fatalf("second Position() error: %v", err)
			}
			if after := snapshot(l); !slices.Equal(before, after) {
				t.Error("Position() with the same config moved nodes")
			}
		})
	}
}

func TestSiblingSpacing(t *testing.T) {
	l := mustPosition(t, kinshiptest.Family(), "A")
	a, b := l.LookupNodeByID("A"), l.LookupNodeByID("B")
	if gap := b.X() - (a.X() + a.Width()); !approx(gap, layout.HorizontalMargin) {
		t.Errorf("gap between siblings = %v, want %v", gap, float64(layout.HorizontalMargin))
	}
}

func TestGroupGeometry(t *testing.T) {
	l := mustPosition(t, kinshiptest.Family(), "A")
	grp := l.LookupNodeByID("A").(*layout.GroupNode)
	a, w := grp.Member("A"), grp.Member("W")

	if !approx(w.X(), a.X()+a.Width()+layout.SpousalSpacing) {
		t.Errorf("W.X() = %v, want %v", w.X(), a.X()+a.Width()+layout.SpousalSpacing)
	}
	if w.Y() != a.Y() || grp.Y() != a.Y() || grp.X() != a.X() {
		t.Error("group position should be its first member's")
	}
	if !approx(grp.Width(), a.Width()+layout.SpousalSpacing+w.Width()) {
		t.Errorf("group Width() = %v", grp.Width())
	}
	if grp.Height() != max(a.Height(), w.Height()) {
		t.Errorf("group Height() = %v", grp.Height())
	}

	k := l.LookupNodeByID("K")
	got := grp.ChildConnector(k)
	wantX := (a.X() + a.Width()/2 + w.X() + w.Width()/2) / 2
	if !approx(got.X, wantX) || !approx(got.Y, grp.Y()+grp.Height()+layout.NodeBorderMargin) {
		t.Errorf("ChildConnector(K) = %+v, want x=%v", got, wantX)
	}
	pc := k.ParentConnector(grp)
	if !approx(pc.X, k.X()+k.Width()/2) || !approx(pc.Y, k.Y()-layout.NodeBorderMargin) {
		t.Errorf("ParentConnector = %+v", pc)
	}

	for _, e := range l.Edges() {
		if e.Child == k {
			if e.Parent != grp || e.From != got || e.To != pc {
				t.Errorf("edge to K = %+v", e)
			}
		}
	}
}

func TestHitTest(t *testing.T) {
	l := mustPosition(t, kinshiptest.Family(), "A")
	b := l.LookupNodeByID("B")

	tests := []struct {
		name   string
		x, y   float64
		wantOK bool
		zone   layout.Zone
	}{
		{"info strip", b.X() - layout.NodeBorderMargin + 1, b.Y() + 1, true, layout.ZoneInfo},
		{"body", b.X() + b.Width()/2, b.Y() + 1, true, layout.ZoneGoto},
		{"border", b.X() + b.Width() + layout.NodeBorderMargin - 1, b.Y(), true, layout.ZoneGoto},
		{"left of box", b.X() - 50, b.Y(), false, ""},
		{"below box", b.X() + 1, b.Y() + b.Height() + 50, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := b.HitTest(tt.x, tt.y)
			if ok != tt.wantOK {
				t.Fatalf("HitTest ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && (hit.Zone != tt.zone || hit.PersonID != "B") {
				t.Errorf("HitTest = %+v, want zone %s on B", hit, tt.zone)
			}
		})
	}

	grp := l.LookupNodeByID("W")
	w := l.Member("W")
	hit, ok := grp.HitTest(w.X()+w.Width()/2, w.Y()+1)
	if !ok || hit.PersonID != "W" {
		t.Errorf("group HitTest = %+v, %v; want the W member", hit, ok)
	}
}

func TestPrematureDimension(t *testing.T) {
	l := mustLayout(t, kinshiptest.Family(), "A")
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, errors.ErrCodePrematureDimension) {
			t.Errorf("recover() = %v, want PREMATURE_DIMENSION", r)
		}
	}()
	_ = l.LookupNodeByID("B").Width()
	t.Error("Width() before Position should panic")
}

func TestStaleLayout(t *testing.T) {
	l := mustPosition(t, kinshiptest.Family(), "A")
	cfg := layout.DefaultConfig()
	small := l.LookupNodeByID("B").Width()

	err := l.Position(cfg.ZoomIn())
	if !errors.Is(err, errors.ErrCodeStaleLayout) {
		t.Fatalf("Position(zoomed) error = %v, want STALE_LAYOUT", err)
	}

	l.FlushDimensionCache()
	if l.State() != layout.StateBuilt {
		t.Errorf("State() after flush = %v, want built", l.State())
	}
	if n := l.Dimensions().Len(); n != 0 {
		t.Errorf("dimension cache has %d entries after flush", n)
	}
	if err := l.Position(cfg.ZoomIn()); err != nil {
		t.Fatalf("Position after flush: %v", err)
	}
	if l.State() != layout.StatePositioned {
		t.Errorf("State() = %v, want positioned", l.State())
	}
	if big := l.LookupNodeByID("B").Width(); big <= small {
		t.Errorf("zoomed width %v should exceed %v", big, small)
	}
}

func TestNodeLines(t *testing.T) {
	l := mustPosition(t, kinshiptest.Family(), "A")
	gf := l.Member("GF")

	want := []layout.Line{
		{Text: "George", Size: 13},
		{Text: "Gray", Size: 13},
		{Text: "born 1 Jan 1890 in York", Size: 10, Detail: true},
		{Text: "died 1960 in York", Size: 10, Detail: true},
	}
	if !slices.Equal(gf.Lines(), want) {
		t.Errorf("Lines() = %+v, want %+v", gf.Lines(), want)
	}

	// ApproxMeasurer: 23 runes * 10 * 0.6 is the widest line.
	if w := gf.Width(); !approx(w, 23*10*0.6+2*layout.ExtraWidth) {
		t.Errorf("Width() = %v", w)
	}
	if h := gf.Height(); !approx(h, 2*13*1.2+2*10*1.2) {
		t.Errorf("Height() = %v", h)
	}
	if gf.Fill() != layout.FillMale || l.Member("GM").Fill() != layout.FillFemale {
		t.Error("fill should follow sex")
	}

	compact := mustLayout(t, kinshiptest.Family(), "A")
	cfg := layout.DefaultConfig()
	cfg.Compact = true
	if err := compact.Position(cfg); err != nil {
		t.Fatal(err)
	}
	if n := len(compact.Member("GF").Lines()); n != 2 {
		t.Errorf("compact lines = %d, want 2", n)
	}
}

func TestZoomBounds(t *testing.T) {
	cfg := layout.DefaultConfig()
	if got := cfg.Zoom(100).BaseSize; got != layout.MaxFontSize {
		t.Errorf("max zoom = %v, want %v", got, layout.MaxFontSize)
	}
	if got := cfg.Zoom(-100).BaseSize; got != layout.MinFontSize {
		t.Errorf("min zoom = %v, want %v", got, layout.MinFontSize)
	}
	z := cfg.ZoomIn()
	if z.BaseSize != 14 || z.DetailSize != 11 {
		t.Errorf("ZoomIn() = %+v", z)
	}
	if z.ZoomOut() != cfg {
		t.Error("ZoomOut should undo ZoomIn")
	}
}

func TestNavigate(t *testing.T) {
	l := mustPosition(t, kinshiptest.Family(), "A")

	tests := []struct {
		from string
		dir  layout.Direction
		want string
		ok   bool
	}{
		{"A", layout.DirUp, "F", true},
		{"A", layout.DirDown, "K", true},
		{"A", layout.DirRight, "B", true},
		{"A", layout.DirLeft, "", false},
		{"B", layout.DirLeft, "A", true},
		{"B", layout.DirDown, "", false},
		{"A", "1", "W", true},
		{"A", "2", "", false},
		{"K", layout.DirUp, "A", true},
		{"R", layout.DirUp, "Q", true},
		{"GF", layout.DirUp, "", false},
		{"nobody", layout.DirUp, "", false},
	}
	for _, tt := range tests {
		got, ok := layout.Navigate(l, tt.from, tt.dir)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Navigate(%s, %s) = %q, %v; want %q, %v", tt.from, tt.dir, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseDirection(t *testing.T) {
	for in, want := range map[string]layout.Direction{
		"up": layout.DirUp, "w": layout.DirUp, "j": layout.DirDown,
		"a": layout.DirLeft, "right": layout.DirRight, "3": "3",
	} {
		got, err := layout.ParseDirection(in)
		if err != nil || got != want {
			t.Errorf("ParseDirection(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	for _, in := range []string{"0", "10", "north"} {
		if _, err := layout.ParseDirection(in); err == nil {
			t.Errorf("ParseDirection(%q) should fail", in)
		}
	}
}

func TestDimensionCache(t *testing.T) {
	c := layout.NewDimensionCache(layout.ApproxMeasurer{})
	w1, _ := c.Measure("Gray", 13)
	w2, _ := c.Measure("Gray", 13)
	c.Measure("Gray", 14)
	if w1 != w2 {
		t.Error("cached measurement changed")
	}
	if hits, misses := c.Stats(); hits != 1 || misses != 2 {
		t.Errorf("Stats() = %d, %d; want 1, 2", hits, misses)
	}
	c.Flush()
	if c.Len() != 0 {
		t.Error("Flush should empty the cache")
	}
}

func TestGoFontMeasurer(t *testing.T) {
	m, err := layout.NewGoFontMeasurer()
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	short, h := m.Measure("ab", 13)
	long, _ := m.Measure("abcdef", 13)
	bigger, _ := m.Measure("ab", 26)
	if short <= 0 || h <= 0 {
		t.Fatalf("Measure = %v, %v", short, h)
	}
	if long <= short || bigger <= short {
		t.Errorf("widths should grow with text and size: %v %v %v", short, long, bigger)
	}
}

// checkRows verifies that every generation shares one Y, rows are stacked in
// generation order, boxes in a row keep TreeDistance apart and every box
// lies inside the extents.
func checkRows(t *testing.T, l *layout.Layout) {
	t.Helper()
	rows := make(map[int][]layout.Item)
	ys := make(map[int]float64)
	for _, n := range l.AllNodes() {
		g := n.Generation()
		if y, ok := ys[g]; ok && y != n.Y() {
			t.Errorf("generation %d has Y %v and %v", g, y, n.Y())
		}
		ys[g] = n.Y()
		rows[g] = append(rows[g], n)
	}
	for g, y := range ys {
		if below, ok := ys[g+1]; ok && below <= y {
			t.Errorf("generation %d (Y %v) is not below generation %d (Y %v)", g+1, below, g, y)
		}
	}
	for g, row := range rows {
		slices.SortFunc(row, func(a, b layout.Item) int { return cmp.Compare(a.X(), b.X()) })
		for i := 1; i < len(row); i++ {
			gap := row[i].X() - (row[i-1].X() + row[i-1].Width())
			if gap < layout.TreeDistance-eps {
				t.Errorf("generation %d: %s and %s are %v apart", g, row[i-1].ID(), row[i].ID(), gap)
			}
		}
	}
	ext := l.TreeExtents()
	for _, n := range l.AllNodes() {
		if n.X() < ext.MinX-eps || n.Y() < ext.MinY-eps ||
			n.X()+n.Width() > ext.MaxX+eps || n.Y()+n.Height() > ext.MaxY+eps {
			t.Errorf("%s lies outside the extents %+v", n.ID(), ext)
		}
	}
}

func snapshot(l *layout.Layout) []layout.Point {
	var pts []layout.Point
	for _, n := range l.AllNodes() {
		pts = append(pts, layout.Point{X: n.X(), Y: n.Y()})
	}
	return pts
}

type fixedMeasurer struct{}

func (fixedMeasurer) Measure(string, float64) (float64, float64) { return 10, 10 }

func TestMeasurerID(t *testing.T) {
	gofont, err := layout.NewGoFontMeasurer()
	if err != nil {
		t.Fatal(err)
	}
	defer gofont.Close()

	tests := []struct {
		name string
		m    layout.Measurer
		want string
	}{
		{"nil is the default", nil, "approx:0.6:1.2"},
		{"zero approx", layout.ApproxMeasurer{}, "approx:0.6:1.2"},
		{"narrow approx", layout.ApproxMeasurer{CharWidth: 0.3}, "approx:0.3:1.2"},
		{"go font", gofont, "gofont:regular"},
		{"no ID method", fixedMeasurer{}, "layout_test.fixedMeasurer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := layout.MeasurerID(tt.m); got != tt.want {
				t.Errorf("MeasurerID() = %q, want %q", got, tt.want)
			}
		})
	}
}
