package layout

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Measurer reports the advance width of a single line of text and the height
// of a line at the given font size.
type Measurer interface {
	Measure(text string, size float64) (width, height float64)
}

// MeasurerID names the measurements m produces, for cache keys: two
// measurers with the same id give the same box sizes. Measurers may provide
// an ID() string method; others are named by their type. A nil m is the
// default ApproxMeasurer.
func MeasurerID(m Measurer) string {
	switch m := m.(type) {
	case nil:
		return ApproxMeasurer{}.ID()
	case interface{ ID() string }:
		return m.ID()
	default:
		return fmt.Sprintf("%T", m)
	}
}

// ApproxMeasurer estimates text width from the rune count. It needs no font
// files and gives the same answer on every platform, which makes it the
// measurer for tests and headless runs.
type ApproxMeasurer struct {
	// CharWidth is the average glyph advance as a fraction of the font size.
	CharWidth float64
	// LineHeight is the line height as a fraction of the font size.
	LineHeight float64
}

// Default ratios for a proportional sans-serif face.
const (
	DefaultCharWidth  = 0.6
	DefaultLineHeight = 1.2
)

// Measure implements Measurer.
func (m ApproxMeasurer) Measure(text string, size float64) (float64, float64) {
	cw, lh := m.CharWidth, m.LineHeight
	if cw <= 0 {
		cw = DefaultCharWidth
	}
	if lh <= 0 {
		lh = DefaultLineHeight
	}
	return float64(utf8.RuneCountInString(text)) * size * cw, size * lh
}

// ID includes the effective ratios.
func (m ApproxMeasurer) ID() string {
	w, h := m.Measure("x", 1)
	return fmt.Sprintf("approx:%g:%g", w, h)
}

// GoFontMeasurer measures text with the Go Regular font. Faces are created
// once per size and shared; it is safe for concurrent use.
type GoFontMeasurer struct {
	font *opentype.Font

	mu    sync.Mutex
	faces map[float64]font.Face
}

// NewGoFontMeasurer parses the embedded Go Regular font.
func NewGoFontMeasurer() (*GoFontMeasurer, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse go font: %w", err)
	}
	return &GoFontMeasurer{font: f, faces: make(map[float64]font.Face)}, nil
}

// Measure implements Measurer. A face that cannot be created at size falls
// back to the approximate measurement.
func (m *GoFontMeasurer) Measure(text string, size float64) (float64, float64) {
	face, err := m.face(size)
	if err != nil {
		return ApproxMeasurer{}.Measure(text, size)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	adv := font.MeasureString(face, text)
	return float64(adv) / 64, float64(face.Metrics().Height) / 64
}

func (m *GoFontMeasurer) ID() string { return "gofont:regular" }

func (m *GoFontMeasurer) face(size float64) (font.Face, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(m.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	m.faces[size] = f
	return f, nil
}

// Close releases the cached faces.
func (m *GoFontMeasurer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for size, f := range m.faces {
		f.Close()
		delete(m.faces, size)
	}
	return nil
}

type dimKey struct {
	text string
	size float64
}

type dims struct{ w, h float64 }

// DimensionCache memoizes measurements by text and font size. Each Layout
// owns one; FlushDimensionCache clears it.
type DimensionCache struct {
	m       Measurer
	entries map[dimKey]dims
	hits    int
	misses  int
}

// NewDimensionCache returns an empty cache in front of m.
func NewDimensionCache(m Measurer) *DimensionCache {
	return &DimensionCache{m: m, entries: make(map[dimKey]dims)}
}

// Measure returns the cached size of text, measuring it on a miss.
func (c *DimensionCache) Measure(text string, size float64) (float64, float64) {
	k := dimKey{text, size}
	if d, ok := c.entries[k]; ok {
		c.hits++
		return d.w, d.h
	}
	c.misses++
	w, h := c.m.Measure(text, size)
	c.entries[k] = dims{w, h}
	return w, h
}

// Len returns the number of cached entries.
func (c *DimensionCache) Len() int { return len(c.entries) }

// Stats returns the hit and miss counts since the last Flush.
func (c *DimensionCache) Stats() (hits, misses int) { return c.hits, c.misses }

// Flush drops every entry.
func (c *DimensionCache) Flush() {
	clear(c.entries)
	c.hits, c.misses = 0, 0
}
