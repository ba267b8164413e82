// Package token defines the tagged-variant token stream produced by the tag
// handler registry and consumed by the token serializer. The mini wikitext
// re-tokenizer does not use it; package lexer has its own Token type.
package token

import "github.com/cscott/nell-parsoid/dparsoid"

// Attrib is one key/value pair of an element's attributes, kept in source
// order.
type Attrib struct {
	Key   string
	Value string
}

// Attribs is an ordered attribute list with convenience lookup.
type Attribs []Attrib

// Get returns the value of the first attribute with the given key, and
// whether it was present.
func (a Attribs) Get(key string) (string, bool) {
	for _, kv := range a {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// Token is the tagged variant for one emission unit in the intermediate
// stream between a tag handler and the token serializer. Concrete types
// implement it by defining tokenKind(); a type switch on the concrete type
// (rather than a Kind enum field) is how the token serializer dispatches,
// matching the tagged-union treatment the corpus uses for Step values.
type Token interface {
	tokenKind()
}

// StartTag opens an element.
type StartTag struct {
	Name       string
	Attribs    Attribs
	DataParsoid *dparsoid.DataParsoid
}

// EndTag closes an element.
type EndTag struct {
	Name       string
	Attribs    Attribs
	DataParsoid *dparsoid.DataParsoid
}

// SelfClosing represents a void or explicitly self-closed element.
type SelfClosing struct {
	Name       string
	Attribs    Attribs
	DataParsoid *dparsoid.DataParsoid
}

// Text is a run of literal text.
type Text struct {
	Value string
}

// Comment is an HTML comment, preserved verbatim.
type Comment struct {
	Value string
}

// Newline is an explicit line break in the token stream, distinct from a
// Text token so that single-line-mode stripping and start-of-line tracking
// can special-case it.
type Newline struct{}

// EOF marks the end of the stream.
type EOF struct{}

func (*StartTag) tokenKind()    {}
func (*EndTag) tokenKind()      {}
func (*SelfClosing) tokenKind() {}
func (*Text) tokenKind()        {}
func (*Comment) tokenKind()     {}
func (*Newline) tokenKind()     {}
func (*EOF) tokenKind()         {}

// NameOf returns the element name carried by tag-shaped tokens, or "" for
// Text/Comment/Newline/EOF.
func NameOf(t Token) string {
	switch v := t.(type) {
	case *StartTag:
		return v.Name
	case *EndTag:
		return v.Name
	case *SelfClosing:
		return v.Name
	default:
		return ""
	}
}

// DataParsoidOf returns the dataParsoid record carried by tag-shaped tokens,
// or nil.
func DataParsoidOf(t Token) *dparsoid.DataParsoid {
	switch v := t.(type) {
	case *StartTag:
		return v.DataParsoid
	case *EndTag:
		return v.DataParsoid
	case *SelfClosing:
		return v.DataParsoid
	default:
		return nil
	}
}
