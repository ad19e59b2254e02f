package graph

// =============================================================================
// Layout - Positioned Document
// =============================================================================

// Layout is a positioned kinship layout flattened for serialization.
//
// Coordinates are those of the layout engine: generation 0 sits at Y 0,
// ancestors have negative Y and X may be negative. MinX/MinY and
// Width/Height give the bounding box of every box.
type Layout struct {
	Focus  string `json:"focus" bson:"focus"`
	Target string `json:"target,omitempty" bson:"target,omitempty"`
	Style  string `json:"style" bson:"style"`

	MinX   float64 `json:"min_x" bson:"min_x"`
	MinY   float64 `json:"min_y" bson:"min_y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`

	BaseSize   float64 `json:"base_size" bson:"base_size"`
	DetailSize float64 `json:"detail_size" bson:"detail_size"`
	Compact    bool    `json:"compact,omitempty" bson:"compact,omitempty"`

	Boxes  []Box   `json:"boxes" bson:"boxes"`
	Groups []Group `json:"groups,omitempty" bson:"groups,omitempty"`
	Edges  []Edge  `json:"edges,omitempty" bson:"edges,omitempty"`

	// Connection layouts only.
	Path     *Path  `json:"path,omitempty" bson:"path,omitempty"`
	Relation string `json:"relation,omitempty" bson:"relation,omitempty"`
}

// Box returns the box of person id.
func (l *Layout) Box(id string) (Box, bool) {
	for _, b := range l.Boxes {
		if b.ID == id {
			return b, true
		}
	}
	return Box{}, false
}

// Group returns the group whose first member is id.
func (l *Layout) Group(id string) (Group, bool) {
	for _, g := range l.Groups {
		if g.ID == id {
			return g, true
		}
	}
	return Group{}, false
}

// =============================================================================
// Box - One Person
// =============================================================================

// Box is one person's box. X/Y/Width/Height describe the text rectangle; the
// drawn border lies BorderMargin outside it.
type Box struct {
	ID         string  `json:"id" bson:"id"`
	Name       string  `json:"name" bson:"name"`
	Sex        string  `json:"sex,omitempty" bson:"sex,omitempty"`
	Generation int     `json:"generation" bson:"generation"`
	X          float64 `json:"x" bson:"x"`
	Y          float64 `json:"y" bson:"y"`
	Width      float64 `json:"width" bson:"width"`
	Height     float64 `json:"height" bson:"height"`
	Fill       string  `json:"fill" bson:"fill"`
	Lines      []Line  `json:"lines" bson:"lines"`

	Focus          bool   `json:"focus,omitempty" bson:"focus,omitempty"`
	Group          string `json:"group,omitempty" bson:"group,omitempty"`
	HiddenParents  bool   `json:"hidden_parents,omitempty" bson:"hidden_parents,omitempty"`
	HiddenChildren bool   `json:"hidden_children,omitempty" bson:"hidden_children,omitempty"`
}

// CenterX returns the horizontal center of the box.
func (b Box) CenterX() float64 { return b.X + b.Width/2 }

// Line is one line of box text.
type Line struct {
	Text   string  `json:"text" bson:"text"`
	Size   float64 `json:"size" bson:"size"`
	Detail bool    `json:"detail,omitempty" bson:"detail,omitempty"`
}

// =============================================================================
// Group, Edge, Path
// =============================================================================

// Group is a set of spouses drawn side by side. ID is the first member.
type Group struct {
	ID        string   `json:"id" bson:"id"`
	Members   []string `json:"members" bson:"members"`
	X         float64  `json:"x" bson:"x"`
	Y         float64  `json:"y" bson:"y"`
	Width     float64  `json:"width" bson:"width"`
	Height    float64  `json:"height" bson:"height"`
	MinHeight float64  `json:"min_height" bson:"min_height"`
}

// SpouseLineY returns the height at which the spouse line is drawn.
func (g Group) SpouseLineY() float64 { return g.Y + g.MinHeight/2 }

// Edge joins a parent node to a child node. From and To are node ids (the
// first member for groups); X1/Y1 leaves the parent, X2/Y2 enters the child.
type Edge struct {
	From string  `json:"from" bson:"from"`
	To   string  `json:"to" bson:"to"`
	X1   float64 `json:"x1" bson:"x1"`
	Y1   float64 `json:"y1" bson:"y1"`
	X2   float64 `json:"x2" bson:"x2"`
	Y2   float64 `json:"y2" bson:"y2"`
}

// Path is a relationship chain; Tags[i] is "C", "P" or "S" for the hop from
// IDs[i] to IDs[i+1].
type Path struct {
	IDs  []string `json:"ids" bson:"ids"`
	Tags []string `json:"tags" bson:"tags"`
}
