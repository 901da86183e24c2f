// Package resource implements XPS resource dictionaries and the
// resolution of literal-or-reference attribute values. Resolution never
// aborts a render: a missing key or malformed literal falls back to a
// defined default and is logged.
package resource

import (
	"fmt"
	"log"
	"strings"

	"github.com/goxps/goxps/geom"
)

// Resource is a sealed union of the payloads a dictionary can hold.
type Resource interface {
	isResource()
}

// MatrixResource is a reusable transform definition.
type MatrixResource geom.Matrix

// BrushResource is a reusable fill definition.
type BrushResource struct {
	Brush Brush
}

// GeometryResource is a reusable path definition.
type GeometryResource struct {
	Path geom.Path
	Rule geom.FillRule
}

func (MatrixResource) isResource()   {}
func (BrushResource) isResource()    {}
func (GeometryResource) isResource() {}

// Dictionary is a scoped key-value store of reusable definitions. A
// lookup searches the receiver first, then each parent scope in order
// (e.g. page resources before document resources).
type Dictionary struct {
	parent  *Dictionary
	entries map[string]Resource
}

// NewDictionary returns an empty dictionary chained to parent, which
// may be nil.
func NewDictionary(parent *Dictionary) *Dictionary {
	return &Dictionary{parent: parent, entries: make(map[string]Resource)}
}

// Add records a definition under key, replacing any previous entry in
// this scope.
func (d *Dictionary) Add(key string, r Resource) {
	d.entries[key] = r
}

// Lookup searches the scope chain from innermost to outermost; the
// first match wins. A nil receiver is an empty chain.
func (d *Dictionary) Lookup(key string) (Resource, bool) {
	for s := d; s != nil; s = s.parent {
		if r, ok := s.entries[key]; ok {
			return r, true
		}
	}
	return nil, false
}

// MalformedAttributeError reports an attribute value that could not be
// parsed. It is recovered via a defined default, never propagated as a
// render failure.
type MalformedAttributeError struct {
	Attr  string
	Value string
}

func (e MalformedAttributeError) Error() string {
	return fmt.Sprintf("malformed %s attribute %q", e.Attr, e.Value)
}

// ResolutionError reports a reference whose key is present in no scope.
// It is recorded but never surfaced as a render failure.
type ResolutionError struct {
	Key string
}

func (e ResolutionError) Error() string {
	return fmt.Sprintf("resource %q not found in any scope", e.Key)
}

const (
	refPrefix = "{StaticResource "
	refSuffix = "}"
)

// ParseReference extracts the dictionary key from a resource-reference
// marker of the form "{StaticResource key}". ok reports whether the
// value is a reference at all; anything else is parsed as a literal.
func ParseReference(s string) (key string, ok bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, refPrefix) || !strings.HasSuffix(s, refSuffix) {
		return "", false
	}
	return strings.TrimSpace(s[len(refPrefix) : len(s)-len(refSuffix)]), true
}

// ResolveMatrix resolves a Matrix-valued attribute: either six literal
// values or a reference into scope. Failures fall back to the identity
// transform.
func ResolveMatrix(value string, scope *Dictionary) geom.Matrix {
	if key, ok := ParseReference(value); ok {
		if r, ok := scope.Lookup(key); ok {
			if m, ok := r.(MatrixResource); ok {
				return geom.Matrix(m)
			}
		}
		log.Printf("xps: %s; using identity", ResolutionError{Key: key})
		return geom.Identity
	}
	m, err := geom.ParseMatrix(value)
	if err != nil {
		log.Printf("xps: %s; using identity", MalformedAttributeError{Attr: "Matrix", Value: value})
		return geom.Identity
	}
	return m
}

// ResolveBrush resolves a fill-valued attribute: an inline color
// literal or a reference into scope. Failures fall back to DefaultFill.
func ResolveBrush(value string, scope *Dictionary) Brush {
	if key, ok := ParseReference(value); ok {
		if r, ok := scope.Lookup(key); ok {
			if b, ok := r.(BrushResource); ok {
				return b.Brush
			}
		}
		log.Printf("xps: %s; using default fill", ResolutionError{Key: key})
		return DefaultFill
	}
	c, err := ParseColor(value)
	if err != nil {
		log.Printf("xps: %s; using default fill", err)
		return DefaultFill
	}
	return SolidColor{Color: c, Opacity: 1}
}

// ResolveGeometry resolves a Data-valued attribute: abbreviated
// geometry or a reference into scope. Unlike fills and matrices, a
// malformed literal is returned as an error so the caller can abandon
// that path element only; an unresolved reference still degrades to an
// empty path.
func ResolveGeometry(value string, scope *Dictionary) (geom.Path, geom.FillRule, error) {
	if key, ok := ParseReference(value); ok {
		if r, ok := scope.Lookup(key); ok {
			if g, ok := r.(GeometryResource); ok {
				return g.Path, g.Rule, nil
			}
		}
		log.Printf("xps: %s; skipping path", ResolutionError{Key: key})
		return nil, geom.EvenOdd, nil
	}
	return geom.Parse(value)
}
