package layout

import (
	"slices"

	"github.com/kinview/kinview/pkg/errors"
	"github.com/kinview/kinview/pkg/kinship"
)

// Kind discriminates the variants of Item.
type Kind int

const (
	KindPerson Kind = iota
	KindGroup
	KindRoot
)

func (k Kind) String() string {
	switch k {
	case KindPerson:
		return "person"
	case KindGroup:
		return "group"
	case KindRoot:
		return "root"
	}
	return "unknown"
}

// Point is a position in layout coordinates. Y grows downward.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Zone is the part of a box a point falls in.
type Zone string

const (
	ZoneInfo Zone = "info" // the left ExtraWidth strip
	ZoneGoto Zone = "goto" // the rest of the box
)

// Hit is the result of a successful hit test.
type Hit struct {
	Zone     Zone   `json:"zone"`
	PersonID string `json:"person_id"`
}

// Item is a node of a Layout: a *PersonNode, *GroupNode or *RootNode.
type Item interface {
	Kind() Kind
	// ID is the person id of the node, or of the first member of a group.
	ID() string
	IDs() []string
	Generation() int

	X() float64
	Y() float64
	SetPos(x, y float64)
	// Width and Height panic with PREMATURE_DIMENSION before the node has
	// been measured by Layout.Position.
	Width() float64
	Height() float64

	// Ascendants and Descendants are the display edges.
	Ascendants() []Item
	Descendants() []Item

	HitTest(x, y float64) (Hit, bool)
	// ParentConnector is where an edge from parent attaches to this node.
	ParentConnector(parent Item) Point
	// ChildConnector is where an edge to child leaves this node.
	ChildConnector(child Item) Point

	base() *nodeBase
	measure(l *Layout)
	reset()
}

// nodeBase holds the edges and layout scratch state shared by every kind.
type nodeBase struct {
	gen  int
	mod  float64
	asc  []Item
	desc []Item

	// parent and kids form the layout tree that drives positioning.
	parent Item
	kids   []Item
}

func (b *nodeBase) base() *nodeBase { return b }
func (b *nodeBase) Generation() int { return b.gen }
func (b *nodeBase) Ascendants() []Item { return b.asc }
func (b *nodeBase) Descendants() []Item { return b.desc }
func (b *nodeBase) addAscendant(i Item) { b.asc = appendOnce(b.asc, i) }
func (b *nodeBase) addDescendant(i Item) { b.desc = appendOnce(b.desc, i) }

func appendOnce(items []Item, i Item) []Item {
	if slices.Contains(items, i) {
		return items
	}
	return append(items, i)
}

// Line is one line of box text.
type Line struct {
	Text   string  `json:"text"`
	Size   float64 `json:"size"`
	Detail bool    `json:"detail,omitempty"`
}

// PersonNode is a single person's box. Inside a group, a PersonNode has no
// ascendants of its own and its descendants are the group's children that
// are also this member's children.
type PersonNode struct {
	nodeBase
	person *kinship.Person
	group  *GroupNode

	x, y     float64
	w, h     float64
	measured bool
	lines    []Line

	hiddenParents  bool
	hiddenChildren bool
}

func newPersonNode(p *kinship.Person, gen int) *PersonNode {
	return &PersonNode{nodeBase: nodeBase{gen: gen}, person: p}
}

func (n *PersonNode) Kind() Kind { return KindPerson }
func (n *PersonNode) ID() string { return n.person.ID }

func (n *PersonNode) IDs() []string { return []string{n.person.ID} }

// Person returns the underlying record.
func (n *PersonNode) Person() *kinship.Person { return n.person }

// Group returns the group this node is a member of, or nil.
func (n *PersonNode) Group() *GroupNode { return n.group }

// HiddenParents reports whether the person has parents not shown as
// ascendants.
func (n *PersonNode) HiddenParents() bool { return n.hiddenParents }

// HiddenChildren reports whether the person has children not shown as
// descendants.
func (n *PersonNode) HiddenChildren() bool { return n.hiddenChildren }

// Lines returns the box text of the last measurement.
func (n *PersonNode) Lines() []Line { return n.lines }

// Fill returns the box colour for the person's sex.
func (n *PersonNode) Fill() string {
	return n.person.Sex.Pick(FillMale, FillFemale, FillUnknown)
}

func (n *PersonNode) X() float64 { return n.x }
func (n *PersonNode) Y() float64 { return n.y }

func (n *PersonNode) SetPos(x, y float64) {
	n.x, n.y = x, y
	if n.group != nil && n.group.members[0] == n {
		n.group.reposition()
	}
}

func (n *PersonNode) Width() float64 {
	n.mustBeMeasured()
	return n.w
}

func (n *PersonNode) Height() float64 {
	n.mustBeMeasured()
	return n.h
}

func (n *PersonNode) mustBeMeasured() {
	if !n.measured {
		panic(errors.New(errors.ErrCodePrematureDimension,
			"dimensions of %s requested before the layout was positioned", n.person.ID))
	}
}

// Rect returns the drawn box, which extends NodeBorderMargin beyond the text
// rectangle on every side.
func (n *PersonNode) Rect() (x, y, w, h float64) {
	return n.x - NodeBorderMargin, n.y - NodeBorderMargin,
		n.Width() + 2*NodeBorderMargin, n.Height() + 2*NodeBorderMargin
}

func (n *PersonNode) HitTest(px, py float64) (Hit, bool) {
	if !n.measured {
		return Hit{}, false
	}
	x, y, w, h := n.Rect()
	if px < x || px > x+w || py < y || py > y+h {
		return Hit{}, false
	}
	zone := ZoneGoto
	if px < x+ExtraWidth {
		zone = ZoneInfo
	}
	return Hit{Zone: zone, PersonID: n.person.ID}, true
}

func (n *PersonNode) ParentConnector(Item) Point {
	return Point{X: n.x + n.Width()/2, Y: n.y - NodeBorderMargin}
}

func (n *PersonNode) ChildConnector(Item) Point {
	return Point{X: n.x + n.Width()/2, Y: n.y + n.Height() + NodeBorderMargin}
}

func (n *PersonNode) measure(l *Layout) {
	n.lines = nodeLines(n.person, l.cfg)
	var w, h float64
	for _, line := range n.lines {
		lw, lh := l.dims.Measure(line.Text, line.Size)
		w = max(w, lw)
		h += lh
	}
	n.w, n.h = w+2*ExtraWidth, h
	n.measured = true
}

func (n *PersonNode) reset() {
	n.x, n.y, n.mod = 0, 0, 0
	n.w, n.h = 0, 0
	n.measured = false
	n.lines = nil
}

// isChildOf reports whether any id in parents is a recorded parent.
func (n *PersonNode) isChildOf(parents []string) bool {
	for _, p := range n.person.Parents {
		if slices.Contains(parents, p) {
			return true
		}
	}
	return false
}

// nodeLines is the box text: forenames and surname on their own lines in the
// base font, then birth and death in the detail font unless compact.
func nodeLines(p *kinship.Person, cfg RenderConfig) []Line {
	var lines []Line
	fore, sur := kinship.SplitName(p.CanonicalName())
	for _, s := range []string{fore, sur} {
		if s != "" {
			lines = append(lines, Line{Text: s, Size: cfg.BaseSize})
		}
	}
	if len(lines) == 0 {
		lines = append(lines, Line{Text: p.ID, Size: cfg.BaseSize})
	}
	if cfg.Compact {
		return lines
	}
	if b := p.Birth.String(); b != "" {
		lines = append(lines, Line{Text: "born " + b, Size: cfg.DetailSize, Detail: true})
	}
	if d := p.Death.String(); d != "" {
		lines = append(lines, Line{Text: "died " + d, Size: cfg.DetailSize, Detail: true})
	}
	return lines
}

// GroupNode is a person and their spouses in one row. Its position is the
// position of the first member; the others follow SpousalSpacing apart.
type GroupNode struct {
	nodeBase
	members []*PersonNode
}

func newGroupNode(members []*PersonNode, gen int) *GroupNode {
	g := &GroupNode{nodeBase: nodeBase{gen: gen}, members: members}
	for _, m := range members {
		m.group = g
		m.gen = gen
	}
	return g
}

func (g *GroupNode) Kind() Kind { return KindGroup }
func (g *GroupNode) ID() string { return g.members[0].ID() }

func (g *GroupNode) IDs() []string {
	ids := make([]string, len(g.members))
	for i, m := range g.members {
		ids[i] = m.ID()
	}
	return ids
}

// Members returns the member nodes in display order.
func (g *GroupNode) Members() []*PersonNode { return g.members }

// Member returns the member with the given person id, or nil.
func (g *GroupNode) Member(id string) *PersonNode {
	for _, m := range g.members {
		if m.ID() == id {
			return m
		}
	}
	return nil
}

// HiddenParents reports whether any member has hidden parents.
func (g *GroupNode) HiddenParents() bool {
	return slices.ContainsFunc(g.members, (*PersonNode).HiddenParents)
}

// HiddenChildren reports whether any member has hidden children.
func (g *GroupNode) HiddenChildren() bool {
	return slices.ContainsFunc(g.members, (*PersonNode).HiddenChildren)
}

func (g *GroupNode) X() float64 { return g.members[0].x }
func (g *GroupNode) Y() float64 { return g.members[0].y }

func (g *GroupNode) SetPos(x, y float64) {
	g.members[0].x, g.members[0].y = x, y
	g.reposition()
}

func (g *GroupNode) reposition() {
	for i := 1; i < len(g.members); i++ {
		prev := g.members[i-1]
		g.members[i].x = prev.x + prev.Width() + SpousalSpacing
		g.members[i].y = prev.y
	}
}

func (g *GroupNode) Width() float64 {
	last := g.members[len(g.members)-1]
	w := last.Width()
	for _, m := range g.members[:len(g.members)-1] {
		w += m.Width() + SpousalSpacing
	}
	return w
}

func (g *GroupNode) Height() float64 {
	var h float64
	for _, m := range g.members {
		h = max(h, m.Height())
	}
	return h
}

// MinHeight is the height of the shortest member; the spouse line is drawn
// at half of it.
func (g *GroupNode) MinHeight() float64 {
	h := g.members[0].Height()
	for _, m := range g.members[1:] {
		h = min(h, m.Height())
	}
	return h
}

func (g *GroupNode) HitTest(px, py float64) (Hit, bool) {
	for _, m := range g.members {
		if hit, ok := m.HitTest(px, py); ok {
			return hit, true
		}
	}
	return Hit{}, false
}

// ParentConnector attaches to the member who is a child of parent. Only one
// spouse in a group usually shares the parent's line.
func (g *GroupNode) ParentConnector(parent Item) Point {
	m := g.members[0]
	if parent != nil {
		ids := parent.IDs()
		for _, c := range g.members {
			if c.isChildOf(ids) {
				m = c
				break
			}
		}
	}
	return m.ParentConnector(parent)
}

// ChildConnector leaves from between the members who are parents of child.
func (g *GroupNode) ChildConnector(child Item) Point {
	var parents []*PersonNode
	if child != nil {
		childIDs := child.IDs()
		for _, m := range g.members {
			if slices.ContainsFunc(childIDs, func(id string) bool {
				return slices.Contains(m.person.Children, id)
			}) {
				parents = append(parents, m)
			}
		}
	}
	y := g.Y() + g.Height() + NodeBorderMargin
	if len(parents) == 0 {
		return Point{X: g.X() + g.Width()/2, Y: y}
	}
	first, last := parents[0], parents[len(parents)-1]
	left := first.x + first.Width()/2
	right := last.x + last.Width()/2
	return Point{X: (left + right) / 2, Y: y}
}

func (g *GroupNode) measure(l *Layout) {
	for _, m := range g.members {
		m.measure(l)
	}
	g.reposition()
}

func (g *GroupNode) reset() {
	g.mod = 0
	for _, m := range g.members {
		m.reset()
	}
}

// RootNode is the invisible common parent of the top-level chains of a
// connection layout. It has no size, is never hit and is left out of
// AllNodes and the tree extents.
type RootNode struct {
	nodeBase
	x, y float64
}

func (r *RootNode) Kind() Kind { return KindRoot }
func (r *RootNode) ID() string { return "" }
func (r *RootNode) IDs() []string { return nil }
func (r *RootNode) X() float64 { return r.x }
func (r *RootNode) Y() float64 { return r.y }
func (r *RootNode) SetPos(x, y float64) { r.x, r.y = x, y }
func (r *RootNode) Width() float64 { return 0 }
func (r *RootNode) Height() float64 { return 0 }
func (r *RootNode) HitTest(float64, float64) (Hit, bool) { return Hit{}, false }
func (r *RootNode) ParentConnector(Item) Point { return Point{X: r.x, Y: r.y} }
func (r *RootNode) ChildConnector(Item) Point { return Point{X: r.x, Y: r.y} }
func (r *RootNode) measure(*Layout) {}
func (r *RootNode) reset() { r.x, r.y, r.mod = 0, 0, 0 }
