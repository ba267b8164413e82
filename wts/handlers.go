package wts

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/cscott/nell-parsoid/dparsoid"
	"github.com/cscott/nell-parsoid/token"
	"github.com/cscott/nell-parsoid/wtconst"
)

// HandlerSide is one half (start or end) of a tag handler (spec.md §4.1).
// Handle returns the wikitext fragment for the token; the serializer never
// mutates a HandlerSide in place — callers that need to vary behavior per
// call return a fresh value instead, per spec.md §9's note on avoiding
// prototype-mutation tricks.
type HandlerSide struct {
	Handle func(s *State, tok token.Token, n *html.Node, dp *dparsoid.DataParsoid) string

	StartsLine     bool
	EndsLine       bool
	EmitsNL        bool
	SingleLine     int // +1, 0, -1
	Ignore         bool
	SolTransparent bool
}

// NodeHandler supersedes Start/End and consumes an entire DOM subtree
// itself (spec.md §4.1's "node" handler kind) — used by the link and
// figure handlers, which bypass token-based emission for direct string
// output.
type NodeHandler func(w *Walker, n *html.Node, dp *dparsoid.DataParsoid)

// Handler is the per-element registry entry.
type Handler struct {
	Start *HandlerSide
	End   *HandlerSide
	Node  NodeHandler

	// WtEscapeHandler names the context the escape engine's contextual
	// fencing table (spec.md §4.2) keys off of while serializing this
	// element's text content ("heading", "list-item", "link", "quote",
	// "table-header", "wikilink", "anchor", "table-cell"). Empty means no
	// special context.
	WtEscapeHandler string
}

// registry maps element name to its handler. Built once from the per-
// concern tables defined across this package's handlers_*.go files and
// link.go, the way
// the corpus's DefaultSerializer is one literal map assembled from the
// node-serializer functions declared alongside it.
func newRegistry() map[string]*Handler {
	reg := map[string]*Handler{}
	merge := func(more map[string]*Handler) {
		for k, v := range more {
			reg[k] = v
		}
	}
	merge(headingHandlers())
	merge(listHandlers())
	merge(listItemHandlers())
	merge(tableHandlers())
	merge(paragraphHandlers())
	merge(preHandlers())
	merge(formattingHandlers())
	merge(miscHandlers())
	merge(metaAndSpanHandlers())
	merge(linkAndImageHandlers())
	return reg
}

// defaultStartTag renders the opening tag of any element with no registered handler (or
// one whose dataParsoid.Stx is "html") using the generic HTML
// serialization described at the end of spec.md §4.1: `<name attr="v"...>`
// with void-element detection and attribute escaping.
func defaultStartTag(name string, attribs token.Attribs, dp *dparsoid.DataParsoid) string {
	if dp != nil && dp.AutoInsertedStart {
		return ""
	}
	var sb strings.Builder
	sb.WriteByte('<')
	sb.WriteString(name)
	for _, a := range attribs {
		sb.WriteByte(' ')
		sb.WriteString(a.Key)
		sb.WriteString(`="`)
		sb.WriteString(escapeAttributeValue(a.Value))
		sb.WriteByte('"')
	}
	if wtconst.IsVoidElement(name) {
		sb.WriteString(" />")
	} else {
		sb.WriteByte('>')
	}
	return sb.String()
}

func defaultEndTag(name string, dp *dparsoid.DataParsoid) string {
	if wtconst.IsVoidElement(name) {
		return ""
	}
	if dp != nil && dp.AutoInsertedEnd {
		return ""
	}
	return fmt.Sprintf("</%s>", name)
}

// renderAttribs renders an ordered attribute list as HTML attribute syntax
// (leading space before each pair), used both by the default HTML handler
// and by table handlers synthesizing an opening tag with no recorded
// source.
func renderAttribs(attribs token.Attribs) string {
	var sb strings.Builder
	for _, a := range attribs {
		sb.WriteByte(' ')
		sb.WriteString(a.Key)
		sb.WriteString(`="`)
		sb.WriteString(escapeAttributeValue(a.Value))
		sb.WriteByte('"')
	}
	return sb.String()
}

func escapeAttributeValue(v string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		`"`, "&quot;",
		"<", "&lt;",
		">", "&gt;",
	)
	return r.Replace(v)
}
