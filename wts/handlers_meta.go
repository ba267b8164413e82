package wts

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/cscott/nell-parsoid/dparsoid"
	"github.com/cscott/nell-parsoid/wtconst"
)

// metaAndSpanHandlers implements spec.md §4.1's meta and span contracts,
// both as Node handlers since their behavior demultiplexes on typeof/
// property rather than mapping onto a single fixed start/end pair.
func metaAndSpanHandlers() map[string]*Handler {
	return map[string]*Handler{
		"meta": {Node: metaNodeHandler},
		"span": {Node: spanNodeHandler},
	}
}

func metaNodeHandler(w *Walker, n *html.Node, dp *dparsoid.DataParsoid) {
	s := w.s
	typeOf, _ := attrOf(n, "typeof")
	property, _ := attrOf(n, "property")
	content, _ := attrOf(n, "content")

	switch {
	case typeOf == "mw:tag" && content == "nowiki":
		s.InNoWiki = true
		w.Emit("<nowiki>")
	case typeOf == "mw:tag" && content == "/nowiki":
		s.InNoWiki = false
		w.Emit("</nowiki>")

	case typeOf == "mw:IncludeOnly", typeOf == "mw:NoInclude", typeOf == "mw:OnlyInclude":
		emitExtensionTagSrc(w, dp, strings.TrimPrefix(typeOf, "mw:"), false)
	case typeOf == "mw:IncludeOnly/End", typeOf == "mw:NoInclude/End", typeOf == "mw:OnlyInclude/End":
		name := strings.TrimSuffix(strings.TrimPrefix(typeOf, "mw:"), "/End")
		emitExtensionTagSrc(w, dp, name, true)

	case typeOf == "mw:DiffMarker", typeOf == "mw:Separator":
		// suppressed: no wikitext corresponds to these editor-only markers.

	case strings.HasPrefix(property, "mw:PageProp/"):
		name := strings.TrimPrefix(property, "mw:PageProp/")
		if dp.MagicSrc != "" {
			w.Emit(dp.MagicSrc)
		} else if src, ok := wtconst.MagicWords[name]; ok {
			w.Emit(src)
		}

	default:
		if typeOf != "" {
			w.s.reportError(w.s.opts, ErrUnknownTypeOf, "unrecognized meta typeof %q", typeOf)
		}
		attribs := attribsOf(n)
		w.Emit(defaultStartTag("meta", attribs, dp))
	}
}

// emitExtensionTagSrc emits the recorded source for an includeonly/
// noinclude/onlyinclude boundary marker, falling back to the canonical
// wikitext spelling when no source was captured.
func emitExtensionTagSrc(w *Walker, dp *dparsoid.DataParsoid, name string, closing bool) {
	if dp.Src != "" {
		w.Emit(dp.Src)
		return
	}
	tag := strings.ToLower(name)
	if closing {
		w.Emit("</" + tag + ">")
		return
	}
	w.Emit("<" + tag + ">")
}

func spanNodeHandler(w *Walker, n *html.Node, dp *dparsoid.DataParsoid) {
	s := w.s
	typeOf, _ := attrOf(n, "typeof")

	switch {
	case typeOf == "mw:Nowiki":
		w.Emit("<nowiki>")
		s.InNoWiki = true
		w.WalkChildren(n)
		s.InNoWiki = false
		w.Emit("</nowiki>")
	case typeOf == "mw:Entity":
		w.Emit(textContent(n))
	case typeOf == "mw:DiffMarker":
		w.Emit(textContent(n))
	default:
		if typeOf != "" {
			w.s.reportError(w.s.opts, ErrUnknownTypeOf, "unrecognized span typeof %q", typeOf)
		}
		attribs := attribsOf(n)
		w.Emit(defaultStartTag("span", attribs, dp))
		w.WalkChildren(n)
		w.Emit(defaultEndTag("span", dp))
	}
}
