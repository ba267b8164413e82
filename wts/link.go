package wts

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/cscott/nell-parsoid/dparsoid"
)

// decodeLinkTarget turns a Parsoid href ("./Page_title" or a bare external
// URL) back into the title text a wikilink's target would read as: a
// leading "./" is stripped and anything the DOM serialization
// percent-escaped is decoded. Other relative prefixes such as "../" are
// kept as they are.
func decodeLinkTarget(href string) string {
	href = strings.TrimPrefix(href, "./")
	if u, err := url.PathUnescape(href); err == nil {
		return u
	}
	return href
}

// linkAndImageHandlers implements spec.md §4.3's link contract and §4.4's
// figure/image contract, both as Node handlers: the wikilink/external-link
// syntax they reconstruct doesn't correspond one-to-one with HTML start/end
// tags, so they bypass the token stream and write directly.
func linkAndImageHandlers() map[string]*Handler {
	return map[string]*Handler{
		"a":      {Node: linkNodeHandler},
		"figure": {Node: figureNodeHandler},
	}
}

func linkNodeHandler(w *Walker, n *html.Node, dp *dparsoid.DataParsoid) {
	rel, _ := attrOf(n, "rel")
	href, hasHref := attrOf(n, "href")

	switch {
	case strings.HasPrefix(rel, "mw:PageProp/Category"):
		renderCategoryLink(w, n, dp, href)
	case strings.HasPrefix(rel, "mw:WikiLink/Interwiki"):
		renderInterwikiLink(w, n, dp, href)
	case strings.HasPrefix(rel, "mw:WikiLink"):
		renderWikiLink(w, n, dp, href)
	case rel == "mw:ExtLink" && hasHref:
		renderExtLink(w, n, dp, href)
	default:
		if strings.HasPrefix(rel, "mw:") {
			w.s.reportError(w.s.opts, ErrUnknownTypeOf, "unrecognized link rel %q", rel)
		}
		renderDefaultAnchor(w, n, dp)
	}
}

// canUseSimple reports whether a wikilink's visible text exactly matches
// its target (spec.md §4.3 step 3), comparing through the environment's
// NormalizeTitle collaborator when one is configured so the comparison
// honors the wiki's own title-equivalence rules rather than a hand-rolled
// underscore substitution.
func canUseSimple(s *State, target, content string) bool {
	norm := s.opts.Env.NormalizeTitle
	if norm == nil {
		return content == target || content == strings.ReplaceAll(target, "_", " ")
	}
	return norm(content, true) == norm(target, true)
}

// splitLinkContentString peels a tail suffix and a prefix segment off
// content when they match the source-recorded dataParsoid values, so e.g.
// `[[foo]]bar` round-trips with tail="bar" instead of folding the "bar"
// into the link's visible text (spec.md §4.3's splitLinkContentString).
func splitLinkContentString(content string, dp *dparsoid.DataParsoid) (prefix, inner, tail string) {
	inner = content
	if dp.Tail != "" && strings.HasSuffix(inner, dp.Tail) {
		tail = dp.Tail
		inner = inner[:len(inner)-len(tail)]
	}
	if dp.Prefix != "" && strings.HasPrefix(inner, dp.Prefix) {
		prefix = dp.Prefix
		inner = inner[len(prefix):]
	}
	return prefix, inner, tail
}

func renderWikiLink(w *Walker, n *html.Node, dp *dparsoid.DataParsoid, href string) {
	s := w.s
	target := decodeLinkTarget(href)
	prefix, content, tail := splitLinkContentString(textContent(n), dp)

	s.pushWteContext("wikilink", dp)

	var out string
	switch {
	case dp.PipeTrick:
		out = "[[" + escapeText(s, target) + "|]]"
	case canUseSimple(s, target, content):
		// The visible text already reads as the target; emit it verbatim
		// rather than the underscore-canonicalized href form.
		out = "[[" + escapeText(s, content) + "]]"
	case content == "":
		// Empty content with no pipe-trick needs a <nowiki/> guard or
		// pre-save-transform would expand the trailing pipe.
		out = "[[" + escapeText(s, target) + "|<nowiki/>]]"
	default:
		out = "[[" + escapeText(s, target) + "|" + escapeText(s, content) + "]]"
	}
	s.popWteContext()
	w.Emit(prefix + out + tail)
}

func renderCategoryLink(w *Walker, n *html.Node, dp *dparsoid.DataParsoid, href string) {
	s := w.s
	target := decodeLinkTarget(href)
	categoryTarget, sortKey := target, ""
	if idx := strings.Index(target, "#"); idx >= 0 {
		categoryTarget, sortKey = target[:idx], target[idx+1:]
	}
	_, content, _ := splitLinkContentString(textContent(n), dp)
	if sortKey == "" {
		sortKey = content
	}

	s.pushWteContext("wikilink", dp)
	out := "[[" + escapeText(s, categoryTarget)
	if sortKey != "" {
		out += "|" + escapeText(s, sortKey)
	}
	out += "]]"
	s.popWteContext()
	w.Emit(out)
}

func renderInterwikiLink(w *Walker, n *html.Node, dp *dparsoid.DataParsoid, href string) {
	s := w.s
	target := decodeLinkTarget(href)
	prefix, content, tail := splitLinkContentString(textContent(n), dp)

	s.pushWteContext("wikilink", dp)
	escTarget := escapeText(s, target)
	out := "[[" + escTarget + "]]"
	if !canUseSimple(s, target, content) {
		out = "[[" + escTarget + "|" + escapeText(s, content) + "]]"
	}
	s.popWteContext()
	w.Emit(prefix + out + tail)
}

func renderExtLink(w *Walker, n *html.Node, dp *dparsoid.DataParsoid, href string) {
	s := w.s
	content := textContent(n)

	if content == href {
		w.Emit(href)
		return
	}

	s.pushWteContext("link", dp)
	out := "[" + href + " " + escapeText(s, content) + "]"
	s.popWteContext()
	w.Emit(out)
}

func renderDefaultAnchor(w *Walker, n *html.Node, dp *dparsoid.DataParsoid) {
	attribs := attribsOf(n)
	w.Emit(defaultStartTag("a", attribs, dp))
	w.WalkChildren(n)
	w.Emit(defaultEndTag("a", dp))
}
