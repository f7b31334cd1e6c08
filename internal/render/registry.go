// Package render transforms a résumé document plus a template key into a
// deterministic visual document: a fixed-size virtual page of styled blocks
// serialized as a self-contained HTML tree.
package render

import (
	"github.com/jonathan/resume-studio/internal/resume"
)

// Key identifies one of the fixed template variants.
type Key string

// The closed template set.
const (
	KeyModern   Key = "modern"
	KeyClassic  Key = "classic"
	KeyCreative Key = "creative"
)

// Virtual page dimensions in pixels, A4-proportioned at 72dpi.
const (
	PageWidth  = 595
	PageHeight = 842
)

// ParseKey resolves a template identifier to a known key. Unknown or empty
// identifiers fall back to modern rather than failing; the template set is
// closed and the builder only ever links to known keys, so anything else is
// a hand-edited URL.
func ParseKey(s string) Key {
	switch Key(s) {
	case KeyModern, KeyClassic, KeyCreative:
		return Key(s)
	default:
		return KeyModern
	}
}

// Document is the rendered visual document: the virtual page produced by a
// layout for one résumé document. Equal inputs always produce an equal
// Document, so two renders can be compared structurally.
type Document struct {
	Template    Key
	Width       int
	Height      int
	Placeholder bool
	HTML        string
}

// LayoutFn lays out pre-filtered section content onto the virtual page.
type LayoutFn func(doc resume.Document) (*Document, error)

// layouts is the strategy table mapping template keys to layout functions.
var layouts = map[Key]LayoutFn{
	KeyModern:   layoutModern,
	KeyClassic:  layoutClassic,
	KeyCreative: layoutCreative,
}

// Layout returns the layout function for key, falling back to modern for
// unknown keys.
func Layout(key Key) LayoutFn {
	if fn, ok := layouts[key]; ok {
		return fn
	}
	return layouts[KeyModern]
}

// Render is shorthand for Layout(key)(doc).
func Render(doc resume.Document, key Key) (*Document, error) {
	return Layout(key)(doc)
}
