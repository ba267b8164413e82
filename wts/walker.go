package wts

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/cscott/nell-parsoid/dparsoid"
	"github.com/cscott/nell-parsoid/token"
	"github.com/cscott/nell-parsoid/wtconst"
)

// sepKind distinguishes the three separator positions the walker asks the
// separator engine to fill (spec.md §4.7).
type sepKind int

const (
	startSep sepKind = iota
	ieSep
	endSep
)

// Walker performs the single recursive DOM traversal described in spec.md
// §4.6, synthesizing tokens for each node and handing them to the token
// serializer, and interposing the separator engine between element
// children.
type Walker struct {
	s   *State
	reg map[string]*Handler
}

func newWalker(s *State, reg map[string]*Handler) *Walker {
	return &Walker{s: s, reg: reg}
}

// Emit writes a chunk of wikitext directly to the output, bypassing the
// token stream. Node-level handlers (link, figure, meta, span) use this
// for the direct string output spec.md §2 calls out as bypassing
// token-based emission.
func (w *Walker) Emit(chunk string) {
	w.s.emit(chunk, nil)
}

// State exposes the walker's serializer state to node-level handlers.
func (w *Walker) State() *State { return w.s }

// WalkChildren walks the element and text children of parent in document
// order, splicing separators between adjacent element children and at the
// start/end of the run (spec.md §4.6).
func (w *Walker) WalkChildren(parent *html.Node) {
	var prevElem *html.Node
	firstElem := true

	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			if w.skipIfTemplateWrapped(c) {
				continue
			}

			if firstElem {
				w.emitSeparator(parent, c, startSep)
				firstElem = false
			} else if prevElem != nil {
				w.emitSeparator(prevElem, c, ieSep)
			}

			w.WalkNode(c)
			w.applyLinkTailPatch(c)
			prevElem = c
			continue
		}
		w.WalkNode(c)
	}

	if prevElem != nil {
		w.emitSeparator(prevElem, nil, endSep)
	}
}

// skipIfTemplateWrapped implements the template-source substitution in
// spec.md §4.6: the first node of a `mw:Object/...` about-group emits a
// synthesized source token and the whole group's subtree is skipped.
func (w *Walker) skipIfTemplateWrapped(n *html.Node) bool {
	typeOf, _ := attrOf(n, "typeof")
	about, hasAbout := attrOf(n, "about")

	if !strings.HasPrefix(typeOf, "mw:Object") || !hasAbout {
		if w.s.ActiveTemplateID != "" {
			w.s.ActiveTemplateID = ""
		}
		return false
	}

	if w.s.ActiveTemplateID == about {
		return true
	}

	dp := w.s.dataParsoid(n)
	w.s.ActiveTemplateID = about
	sc := &token.SelfClosing{
		Name:        "mw:TemplateSource",
		Attribs:     token.Attribs{{Key: "src", Value: dp.Src}},
		DataParsoid: dp,
	}
	w.processToken(sc, n, dp)
	return true
}

// applyLinkTailPatch implements spec.md §4.6's link-tail escape patch: a
// wikilink immediately followed by a text node starting with a lowercase
// letter needs a trailing `<nowiki/>` or the letters would be absorbed into
// the link's tail on re-parse.
func (w *Walker) applyLinkTailPatch(n *html.Node) {
	if nodeName(n) != "a" {
		return
	}
	rel, _ := attrOf(n, "rel")
	if rel != "mw:WikiLink" {
		return
	}
	next := n.NextSibling
	if next == nil || next.Type != html.TextNode || next.Data == "" {
		return
	}
	r := next.Data[0]
	if r >= 'a' && r <= 'z' {
		w.Emit("<nowiki/>")
	}
}

// WalkNode dispatches on node type and, for elements, on handler kind
// (spec.md §4.6).
func (w *Walker) WalkNode(n *html.Node) {
	switch n.Type {
	case html.ElementNode:
		w.walkElement(n)
	case html.TextNode:
		w.walkText(n)
	case html.CommentNode:
		tok := &token.Comment{Value: n.Data}
		w.processToken(tok, n, nil)
	}
}

func (w *Walker) walkElement(n *html.Node) {
	name := nodeName(n)
	dp := w.s.dataParsoid(n)
	handler := w.reg[name]
	if w.effectiveStx(n, dp) == "html" {
		handler = nil
	}

	if handler != nil && handler.Node != nil {
		handler.Node(w, n, dp)
		return
	}

	attribs := attribsOf(n)

	if wtconst.IsVoidElement(name) {
		tok := &token.SelfClosing{Name: name, Attribs: attribs, DataParsoid: dp}
		w.processToken(tok, n, dp)
		return
	}

	st := &token.StartTag{Name: name, Attribs: attribs, DataParsoid: dp}
	w.processToken(st, n, dp)

	if handler != nil && handler.WtEscapeHandler != "" {
		w.s.pushWteContext(handler.WtEscapeHandler, dp)
	}

	if name == "pre" && dp.Stx == "html" {
		w.applyHTMLPrePatch(n, dp)
	}

	w.gatherCurrLine(n)
	w.WalkChildren(n)

	if handler != nil && handler.WtEscapeHandler != "" {
		w.s.popWteContext()
	}

	et := &token.EndTag{Name: name, Attribs: attribs, DataParsoid: dp}
	w.processToken(et, n, dp)
}

// applyHTMLPrePatch restores the first-newline-is-stripped rule of native
// pre when round-tripping an HTML-syntax pre (spec.md §4.6).
func (w *Walker) applyHTMLPrePatch(n *html.Node, dp *dparsoid.DataParsoid) {
	if dp.StrippedNL {
		w.Emit("\n")
		return
	}
	if first := n.FirstChild; first != nil && first.Type == html.TextNode && strings.HasPrefix(first.Data, "\n") {
		w.Emit("\n")
	}
}

// gatherCurrLine implements the first part of spec.md §4.6's text-node
// handling: on entering a block-scope element, accumulate its full inline
// text into CurrLine so the escape engine's line-level analysis can see
// the whole line at once.
func (w *Walker) gatherCurrLine(n *html.Node) {
	if !wtconst.IsBlockElement(nodeName(n)) {
		return
	}
	w.s.CurrLine = CurrLine{Text: textContent(n)}
}

func (w *Walker) walkText(n *html.Node) {
	tok := &token.Text{Value: n.Data}
	w.processToken(tok, n, nil)
}

func attribsOf(n *html.Node) token.Attribs {
	if len(n.Attr) == 0 {
		return nil
	}
	out := make(token.Attribs, 0, len(n.Attr))
	for _, a := range n.Attr {
		if a.Key == "data-parsoid" || a.Key == "about" || a.Key == "typeof" {
			continue
		}
		out = append(out, token.Attrib{Key: a.Key, Value: a.Val})
	}
	return out
}
