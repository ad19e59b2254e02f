package layout

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/kinview/kinview/pkg/errors"
	"github.com/kinview/kinview/pkg/kinship"
)

// Style selects how a Layout walks the kinship graph.
type Style int

const (
	StyleStandard Style = iota
	StyleSubtree
	StylePedigree
	StyleConnection
)

var styleNames = [...]string{"standard", "subtree", "pedigree", "connection"}

func (s Style) String() string {
	if s >= 0 && int(s) < len(styleNames) {
		return styleNames[s]
	}
	return "invalid"
}

func (s Style) valid() bool { return s >= 0 && int(s) < len(styleNames) }

// ParseStyle maps a style name to a Style. Names are case-insensitive.
func ParseStyle(name string) (Style, error) {
	for i, n := range styleNames {
		if strings.EqualFold(name, n) {
			return Style(i), nil
		}
	}
	return 0, errors.New(errors.ErrCodeInvalidStyle,
		"unknown layout style %q (want one of %s)", name, strings.Join(styleNames[:], ", "))
}

// StyleNames lists the accepted style names.
func StyleNames() []string { return styleNames[:] }

// MarshalText implements encoding.TextMarshaler.
func (s Style) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Style) UnmarshalText(b []byte) error {
	v, err := ParseStyle(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// State is the lifecycle stage of a Layout.
type State int

const (
	StateUnbuilt State = iota
	StateBuilt
	StatePositioned
)

func (s State) String() string {
	switch s {
	case StateBuilt:
		return "built"
	case StatePositioned:
		return "positioned"
	}
	return "unbuilt"
}

// DefaultGenerations is the number of generations a standard or subtree
// layout descends from its root.
const DefaultGenerations = 3

// StandardAncestorDepth is how far above the focus a standard layout tries to
// root itself.
const StandardAncestorDepth = 2

// Extents is the bounding box of all positioned boxes.
type Extents struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

func (e Extents) Width() float64  { return e.MaxX - e.MinX }
func (e Extents) Height() float64 { return e.MaxY - e.MinY }

func (e Extents) extend(x, y, x2, y2 float64) Extents {
	return Extents{
		MinX: min(e.MinX, x), MinY: min(e.MinY, y),
		MaxX: max(e.MaxX, x2), MaxY: max(e.MaxY, y2),
	}
}

// Option configures New.
type Option func(*options)

type options struct {
	style       Style
	target      string
	generations int
	measurer    Measurer
	logger      *log.Logger
}

// WithStyle selects the layout style (default StyleStandard).
func WithStyle(s Style) Option {
	return func(o *options) { o.style = s }
}

// WithTarget sets the second person of a connection layout.
func WithTarget(id string) Option {
	return func(o *options) { o.target = id }
}

// WithGenerations bounds how many generations are shown. For standard and
// subtree layouts n <= 0 means DefaultGenerations; for pedigree it means
// unbounded.
func WithGenerations(n int) Option {
	return func(o *options) { o.generations = n }
}

// WithMeasurer sets the text measurer (default ApproxMeasurer).
func WithMeasurer(m Measurer) Option {
	return func(o *options) { o.measurer = m }
}

// WithLogger sets the logger for build diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Layout is a tree of display nodes built from a kinship graph.
type Layout struct {
	graph  *kinship.Graph
	focus  string
	target string
	style  Style
	limit  int
	logger *log.Logger

	root  Item
	nodes map[string]Item
	path  *kinship.Path

	dims    *DimensionCache
	cfg     RenderConfig
	state   State
	extents Extents
}

// New builds a layout of g around focus. It returns NOT_FOUND when focus or
// the connection target is absent, UNREACHABLE when a connection has no
// path, DATA_INCONSISTENCY when the graph refers to a missing person and
// INVALID_STYLE for an unknown style. Nothing is returned on error.
func New(g *kinship.Graph, focus string, opts ...Option) (*Layout, error) {
	o := options{style: StyleStandard}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	if o.measurer == nil {
		o.measurer = ApproxMeasurer{}
	}
	if !o.style.valid() {
		err := errors.New(errors.ErrCodeInvalidStyle, "unknown layout style %d", int(o.style))
		o.logger.Error("layout style misconfigured", "style", int(o.style), "err", err)
		return nil, err
	}
	if g == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no kinship graph")
	}
	if !g.Has(focus) {
		return nil, errors.New(errors.ErrCodeNotFound, "Sorry, I can't find the person with ID %s", focus)
	}

	l := &Layout{
		graph:  g,
		focus:  focus,
		target: o.target,
		style:  o.style,
		limit:  o.generations,
		logger: o.logger,
		nodes:  make(map[string]Item),
		dims:   NewDimensionCache(o.measurer),
	}
	if l.limit <= 0 && l.style != StylePedigree {
		l.limit = DefaultGenerations
	}

	var err error
	switch l.style {
	case StyleStandard:
		anc, depth := g.FindAncestor(focus, StandardAncestorDepth)
		err = l.buildDescendants(anc, -depth)
	case StyleSubtree:
		err = l.buildDescendants(focus, 0)
	case StylePedigree:
		err = l.buildPedigree()
	case StyleConnection:
		err = l.buildConnection()
	}
	if err != nil {
		l.logger.Debug("layout build failed", "focus", focus, "style", l.style, "err", err)
		return nil, err
	}
	l.state = StateBuilt
	l.logger.Debug("layout built", "focus", focus, "style", l.style, "nodes", len(l.AllNodes()))
	return l, nil
}

// Focus returns the focus person id.
func (l *Layout) Focus() string { return l.focus }

// Target returns the connection target, or "".
func (l *Layout) Target() string { return l.target }

// Style returns the layout style.
func (l *Layout) Style() Style { return l.style }

// State returns the lifecycle stage.
func (l *Layout) State() State { return l.state }

// Config returns the config of the last Position call.
func (l *Layout) Config() RenderConfig { return l.cfg }

// Root returns the root of the layout tree. For a connection layout with
// several top-level chains this is a *RootNode.
func (l *Layout) Root() Item { return l.root }

// Path returns the relationship path of a connection layout, or nil.
func (l *Layout) Path() *kinship.Path { return l.path }

// Graph returns the graph the layout was built from.
func (l *Layout) Graph() *kinship.Graph { return l.graph }

// Dimensions returns the layout's measurement cache.
func (l *Layout) Dimensions() *DimensionCache { return l.dims }

// LookupNodeByID returns the node showing id, or nil when the person is not
// part of this layout. Every member of a group resolves to the group.
func (l *Layout) LookupNodeByID(id string) Item {
	if n, ok := l.nodes[id]; ok {
		return n
	}
	return nil
}

// Member returns the box of one person, looking inside groups, or nil.
func (l *Layout) Member(id string) *PersonNode {
	switch n := l.LookupNodeByID(id).(type) {
	case *PersonNode:
		return n
	case *GroupNode:
		return n.Member(id)
	}
	return nil
}

// AllNodes returns every visible node reachable from the root over display
// edges, in a stable depth-first order. The root of a connection layout is
// left out.
func (l *Layout) AllNodes() []Item {
	var out []Item
	seen := make(map[Item]bool)
	var walk func(n Item)
	walk = func(n Item) {
		if seen[n] {
			return
		}
		seen[n] = true
		if n.Kind() != KindRoot {
			out = append(out, n)
		}
		b := n.base()
		for _, rel := range [][]Item{b.asc, b.desc, b.kids} {
			for _, r := range rel {
				walk(r)
			}
		}
	}
	if l.root != nil {
		walk(l.root)
	}
	return out
}

// TreeExtents returns the bounding box computed by the last Position call.
func (l *Layout) TreeExtents() Extents { return l.extents }

// FlushDimensionCache drops cached measurements and positions and returns
// the layout to Built.
func (l *Layout) FlushDimensionCache() {
	l.dims.Flush()
	for _, n := range l.allWithRoot() {
		n.reset()
	}
	l.extents = Extents{}
	if l.state == StatePositioned {
		l.state = StateBuilt
	}
}

func (l *Layout) allWithRoot() []Item {
	all := l.AllNodes()
	if l.root != nil && l.root.Kind() == KindRoot {
		all = append(all, l.root)
	}
	return all
}

// Edge is one parent-child line: From leaves the parent, To enters the child.
type Edge struct {
	Parent Item
	Child  Item
	From   Point
	To     Point
}

// Edges returns every displayed parent-child edge. Layout must be positioned.
func (l *Layout) Edges() []Edge {
	var edges []Edge
	for _, n := range l.AllNodes() {
		for _, p := range n.Ascendants() {
			if p.Kind() == KindRoot {
				continue
			}
			edges = append(edges, Edge{
				Parent: p,
				Child:  n,
				From:   p.ChildConnector(n),
				To:     n.ParentConnector(p),
			})
		}
	}
	return edges
}
