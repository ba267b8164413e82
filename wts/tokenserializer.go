package wts

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/cscott/nell-parsoid/dparsoid"
	"github.com/cscott/nell-parsoid/token"
)

// stxInheritSet lists the element names whose own dataParsoid rarely
// records stx, but whose handler selection still needs to follow the
// enclosing list/table's stx (spec.md §4.8's handler-lookup step).
var stxInheritSet = map[string]bool{
	"tbody": true, "tr": true, "td": true, "th": true,
	"li": true, "dt": true, "dd": true,
}

// effectiveStx resolves n's dataParsoid.Stx, inheriting from the nearest
// list/table ancestor when n doesn't record one itself.
func (w *Walker) effectiveStx(n *html.Node, dp *dparsoid.DataParsoid) string {
	if dp.Stx != "" {
		return dp.Stx
	}
	if !stxInheritSet[nodeName(n)] {
		return ""
	}
	for p := n.Parent; p != nil; p = p.Parent {
		switch nodeName(p) {
		case "ul", "ol", "dl", "table":
			return w.s.dataParsoid(p).Stx
		}
	}
	return ""
}

// processToken runs one synthesized token through the per-token algorithm
// of spec.md §4.8: handler lookup (honoring the html-stx override), the
// start/end-of-line bookkeeping each HandlerSide flag requests, invocation
// of the handler (or the default HTML fallback), and text/comment-specific
// escaping, finishing with the single write to the output sink.
func (w *Walker) processToken(tok token.Token, n *html.Node, dp *dparsoid.DataParsoid) {
	s := w.s

	s.PrevToken = s.CurToken
	s.CurToken = tok
	switch tok.(type) {
	case *token.StartTag, *token.EndTag, *token.SelfClosing:
		s.PrevTagToken = s.CurTagToken
		s.CurTagToken = tok
	}

	name := token.NameOf(tok)
	var handler *Handler
	if name != "" {
		handler = w.reg[name]
		stx := ""
		if n != nil {
			stx = w.effectiveStx(n, dp)
		} else if dp != nil {
			stx = dp.Stx
		}
		if stx == "html" {
			handler = nil
		}
	}

	var side *HandlerSide
	switch tok.(type) {
	case *token.StartTag, *token.SelfClosing:
		if handler != nil {
			side = handler.Start
		}
	case *token.EndTag:
		if handler != nil {
			side = handler.End
		}
	}

	if side != nil && side.StartsLine && !s.OnStartOfLine {
		s.flushBufferedSeparator()
		s.emit("\n", nil)
	}

	content := w.renderToken(tok, n, dp, side)

	if side != nil && side.Ignore {
		content = ""
	}

	if side != nil && side.EmitsNL {
		content += "\n"
	}

	if s.SingleLineMode > 0 && content != "" {
		content = strings.ReplaceAll(content, "\n", "")
	}

	if content != "" {
		s.flushBufferedSeparator()
	}

	if side != nil && side.EndsLine && !strings.HasSuffix(content, "\n") {
		s.emit(content, nil)
		s.bufferSeparatorChunk("\n")
	} else {
		s.emit(content, nil)
	}

	if side != nil && side.SingleLine != 0 {
		s.SingleLineMode += side.SingleLine
	}
}

// renderToken invokes the handler's Handle function, or the default
// fallback when there is no handler (or no Handle on the matched side).
func (w *Walker) renderToken(tok token.Token, n *html.Node, dp *dparsoid.DataParsoid, side *HandlerSide) string {
	if side != nil && side.Handle != nil {
		return side.Handle(w.s, tok, n, dp)
	}

	switch v := tok.(type) {
	case *token.StartTag:
		return defaultStartTag(v.Name, v.Attribs, dp)
	case *token.EndTag:
		return defaultEndTag(v.Name, dp)
	case *token.SelfClosing:
		return defaultStartTag(v.Name, v.Attribs, dp)
	case *token.Text:
		return w.renderText(v.Value)
	case *token.Comment:
		return "<!--" + v.Value + "-->"
	case *token.Newline:
		return "\n"
	case *token.EOF:
		return ""
	}
	return ""
}

func (w *Walker) renderText(value string) string {
	s := w.s
	switch {
	case s.InNoWiki:
		return value
	case s.InHTMLPre:
		return htmlEscapeText(value)
	default:
		return escapeText(s, value)
	}
}
