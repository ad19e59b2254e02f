// Package pipeline runs the load → layout → render pipeline for kinview.
//
// The CLI and the HTTP API both go through this package, so a layout
// requested from either produces the same document, the same cache keys and
// the same artifacts.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read the kinship graph from a dataset directory or MongoDB
//  2. Layout: build and position a tree around a focus person
//  3. Render: draw the positioned document as SVG, PNG, PDF, JSON or DOT
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	g, err := pipeline.Load(ctx, "data/", "")
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, g, pipeline.Options{
//	    Focus:   "I1",
//	    Style:   "pedigree",
//	    Formats: []string{"svg", "json"},
//	})
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	doc, err := runner.Layout(ctx, g, opts)
//	artifacts, err := runner.Render(ctx, doc, g, opts)
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/kinview/kinview/pkg/cache"
	"github.com/kinview/kinview/pkg/errors"
	"github.com/kinview/kinview/pkg/graph"
	"github.com/kinview/kinview/pkg/layout"
)

const (
	// DefaultStyle is the layout style used when none is given.
	DefaultStyle = "standard"

	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 2.0

	// MaxZoom bounds the zoom steps accepted from callers.
	MaxZoom = layout.MaxFontSize - layout.MinFontSize
)

// Renderer names.
const (
	// RendererTree draws boxes at the positions computed by the layout engine.
	RendererTree = "tree"
	// RendererNodelink hands the DOT export to Graphviz.
	RendererNodelink = "nodelink"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

var (
	formats   = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON, FormatDOT}
	renderers = []string{RendererTree, RendererNodelink}
)

// Options configures one pipeline run. The HTTP API decodes it straight from
// the request body.
type Options struct {
	// Layout options
	Focus       string `json:"focus"`
	Target      string `json:"target,omitempty"` // connection style only
	Style       string `json:"style,omitempty"`
	Generations int    `json:"generations,omitempty"`
	Zoom        int    `json:"zoom,omitempty"`
	Compact     bool   `json:"compact,omitempty"`

	// Render options
	Renderer    string   `json:"renderer,omitempty"`
	Formats     []string `json:"formats,omitempty"`
	Scale       float64  `json:"scale,omitempty"`
	Caption     bool     `json:"caption,omitempty"`
	Interactive bool     `json:"interactive,omitempty"`
	Detailed    bool     `json:"detailed,omitempty"`
	LinkPrefix  string   `json:"link_prefix,omitempty"` // boxes link to LinkPrefix+id
	Refresh     bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	DatasetHash string          `json:"-"` // computed from the graph when empty
	Measurer    layout.Measurer `json:"-"`
	Logger      *log.Logger     `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// DatasetHash is the content hash of the kinship graph.
	DatasetHash string

	// Layout is the positioned document.
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	People     int
	Boxes      int
	Edges      int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the document came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat reports an INVALID_INPUT error unless format is one of
// svg, png, pdf, json or dot. Names are case-sensitive.
func ValidateFormat(format string) error {
	return oneOf("format", format, formats)
}

// ValidateFormats applies ValidateFormat to each entry.
func ValidateFormats(list []string) error {
	for _, f := range list {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

func oneOf(kind, value string, allowed []string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return errors.New(errors.ErrCodeInvalidInput,
		"invalid %s: %q (must be one of: %s)", kind, value, strings.Join(allowed, ", "))
}

// ValidateStyle checks that a style names a layout style.
func ValidateStyle(style string) error {
	_, err := layout.ParseStyle(style)
	return err
}

// ValidateRenderer accepts "tree" and "nodelink".
func ValidateRenderer(renderer string) error {
	return oneOf("renderer", renderer, renderers)
}

// ValidateAndSetDefaults runs ValidateForLayout and ValidateForRender once;
// later calls return nil.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLayout checks the layout options and applies their defaults.
func (o *Options) ValidateForLayout() error {
	o.Focus = strings.TrimSpace(o.Focus)
	if o.Focus == "" {
		return errors.New(errors.ErrCodeInvalidInput, "focus person is required")
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	style, err := layout.ParseStyle(o.Style)
	if err != nil {
		return err
	}
	o.Style = style.String()
	if style == layout.StyleConnection && o.Target == "" {
		return errors.New(errors.ErrCodeInvalidInput, "connection layouts need a target person")
	}
	if style != layout.StyleConnection {
		o.Target = ""
	}
	if o.Generations < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "generations must not be negative, got %d", o.Generations)
	}
	o.Zoom = max(-MaxZoom, min(o.Zoom, MaxZoom))
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return nil
}

// SetRenderDefaults fills in svg output from the tree renderer at DefaultScale.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Renderer == "" {
		o.Renderer = RendererTree
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
}

// ValidateForRender applies SetRenderDefaults and checks renderer and formats.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateRenderer(o.Renderer); err != nil {
		return err
	}
	return ValidateFormats(o.Formats)
}

// IsNodelink returns true if Graphviz draws the diagram.
func (o *Options) IsNodelink() bool {
	return o.Renderer == RendererNodelink
}

// RenderConfig returns the font configuration after applying Zoom.
func (o *Options) RenderConfig() layout.RenderConfig {
	cfg := layout.DefaultConfig().Zoom(o.Zoom)
	cfg.Compact = o.Compact
	return cfg
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	cfg := o.RenderConfig()
	return cache.LayoutKeyOpts{
		Focus:       o.Focus,
		Target:      o.Target,
		Style:       o.Style,
		Generations: o.Generations,
		BaseSize:    cfg.BaseSize,
		DetailSize:  cfg.DetailSize,
		Compact:     cfg.Compact,
		Measurer:    layout.MeasurerID(o.Measurer),
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:      format,
		Renderer:    o.Renderer,
		LinkPrefix:  o.LinkPrefix,
		Scale:       o.Scale,
		Caption:     o.Caption,
		Interactive: o.Interactive,
		Detailed:    o.Detailed,
	}
}

func (o *Options) String() string {
	if o.Target != "" {
		return fmt.Sprintf("%s %s->%s", o.Style, o.Focus, o.Target)
	}
	return fmt.Sprintf("%s %s", o.Style, o.Focus)
}
