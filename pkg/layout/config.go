package layout

// Spacing constants, in the same units as font sizes.
const (
	VerticalMargin   = 45 // between generation rows
	HorizontalMargin = 35 // between adjacent siblings
	TreeDistance     = 30 // minimum gap between sibling subtree contours
	SpousalSpacing   = 17 // between members of a group
	ExtraWidth       = 20 // padding on each side of the text; the left strip is the info zone
	NodeBorderMargin = 6  // box border outside the text rectangle
)

// Font sizes.
const (
	BaseFontSize   = 13
	DetailFontSize = 10
	MinFontSize    = 8
	MaxFontSize    = 30
)

// Colours used for person boxes and text.
const (
	FillMale    = "#a7cbca"
	FillFemale  = "#dfa296"
	FillUnknown = "#d3d3d3"
	TextColor   = "#000000"
	DetailColor = "#808080"
	FocusColor  = "#4e4eff"
	LineColor   = "#373737"
	SpouseColor = "#484848"
)

// RenderConfig carries every display setting that affects box sizes. It is a
// comparable value: two configs are the same exactly when ==.
type RenderConfig struct {
	BaseSize   float64 `json:"base_size" toml:"base_size"`
	DetailSize float64 `json:"detail_size" toml:"detail_size"`
	// Compact drops the birth and death lines.
	Compact bool `json:"compact" toml:"compact"`
}

// DefaultConfig returns the 13/10 font configuration.
func DefaultConfig() RenderConfig {
	return RenderConfig{BaseSize: BaseFontSize, DetailSize: DetailFontSize}
}

// ZoomIn returns c with both fonts one size larger. The base size stops
// growing at MaxFontSize.
func (c RenderConfig) ZoomIn() RenderConfig {
	if c.BaseSize >= MaxFontSize {
		return c
	}
	c.BaseSize++
	c.DetailSize++
	return c
}

// ZoomOut returns c with both fonts one size smaller. The base size stops
// shrinking at MinFontSize.
func (c RenderConfig) ZoomOut() RenderConfig {
	if c.BaseSize <= MinFontSize {
		return c
	}
	c.BaseSize--
	c.DetailSize--
	return c
}

// Zoom applies ZoomIn (steps > 0) or ZoomOut (steps < 0) repeatedly.
func (c RenderConfig) Zoom(steps int) RenderConfig {
	for ; steps > 0; steps-- {
		c = c.ZoomIn()
	}
	for ; steps < 0; steps++ {
		c = c.ZoomOut()
	}
	return c
}

func (c RenderConfig) withDefaults() RenderConfig {
	if c.BaseSize <= 0 {
		c.BaseSize = BaseFontSize
	}
	if c.DetailSize <= 0 {
		c.DetailSize = DetailFontSize
	}
	return c
}
