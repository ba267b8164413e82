package wts

import (
	"regexp"
	"strings"

	"github.com/cscott/nell-parsoid/lexer"
	"github.com/cscott/nell-parsoid/wtconst"
)

// htmlEscapeText re-escapes the three HTML-significant characters a text
// node's value may carry after golang.org/x/net/html has decoded entities on
// parse; wikitext output still needs them literal-safe since the wikitext
// parser's own HTML-tag recognizer runs over the same text.
func htmlEscapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}

// unconditionalFenceSubstrings are substrings that always force a
// literal-text fence regardless of context, because no contextual rule
// exempts them (spec.md §4.2's "unconditional fences").
var unconditionalFenceSubstrings = []string{"{{{", "{{", "}}}", "}}"}

// signatureRunRegexp matches a run of 3-5 tildes, wikitext's signature
// trigger and one of the unconditional fences.
var signatureRunRegexp = regexp.MustCompile(`~{3,5}`)

// leadingSpacePreTrigger reports whether text opens a line with a space
// followed by a non-space character, which would be read back as an
// indent-pre block (spec.md §4.2's unconditional fences).
func leadingSpacePreTrigger(s *State, text string) bool {
	if !s.OnStartOfLine || len(text) < 2 {
		return false
	}
	return text[0] == ' ' && text[1] != ' '
}

// requiresUnconditionalFence checks the triggers spec.md §4.2 says always
// force a fence, independent of the enclosing escape context.
func requiresUnconditionalFence(s *State, text string) bool {
	for _, trigger := range unconditionalFenceSubstrings {
		if strings.Contains(text, trigger) {
			return true
		}
	}
	if signatureRunRegexp.MatchString(text) {
		return true
	}
	return leadingSpacePreTrigger(s, text)
}

// nowikiEncode wraps text in a <nowiki>...</nowiki> pair, pre-escaping any
// literal nowiki tag the text itself contains and preserving a trailing
// newline outside the fence so line-oriented handlers downstream still see
// it (spec.md §4.2's "nowiki-encoding helper").
func nowikiEncode(text string) string {
	trailingNL := ""
	if strings.HasSuffix(text, "\n") {
		trailingNL = "\n"
		text = text[:len(text)-1]
	}
	r := strings.NewReplacer("<nowiki>", "&lt;nowiki&gt;", "</nowiki>", "&lt;/nowiki&gt;")
	return "<nowiki>" + r.Replace(text) + "</nowiki>" + trailingNL
}

// escapeText is the contextual wikitext-escaping engine of spec.md §4.2: it
// runs the mini re-tokenizer over raw, already HTML-entity-escaped text and,
// if any construct the tokenizer recognizes would survive a round trip
// unescaped, wraps the run in <nowiki>. The escape context at the top of
// state's WteHandlerStack narrows which constructs actually require fencing
// (e.g. inside a link target any "]]" or "|" forces a fence before the
// generic tokenizer pass runs).
func escapeText(s *State, raw string) string {
	escaped := htmlEscapeText(raw)

	if requiresUnconditionalFence(s, escaped) {
		return nowikiEncode(escaped)
	}

	ctx := s.topWteContext()
	if ctx != nil {
		if out, handled := contextualFence(s, ctx, escaped); handled {
			return out
		}
	}

	toks := lexer.Scan(escaped, lexer.WithKnownTags(func(name string) bool {
		return wtconst.HTMLTagWhitelist[name]
	}), lexer.AtStartOfLine(s.OnStartOfLine))

	if lexer.RequiresFence(toks, func(name string) bool {
		return wtconst.NoEndTagSet[strings.TrimPrefix(name, "tag:")]
	}) {
		return nowikiEncode(escaped)
	}
	return escaped
}

// contextualFence applies the narrower per-context rules spec.md §4.2
// describes for link targets, table cells/headers, headings and list items.
// Other contexts (such as "quote") have no rule here. Returns handled=false
// to fall through to the generic pass.
func contextualFence(s *State, ctx *wteContext, text string) (string, bool) {
	switch ctx.name {
	case "wikilink", "link":
		if strings.Contains(text, "]]") || strings.Contains(text, "|") {
			return nowikiEncode(text), true
		}
		return text, false
	case "table-cell", "table-header":
		if ctx.dp != nil && len(text) > 0 && (text[0] == '-' || text[0] == '+') {
			return "<nowiki/>" + text, true
		}
		return text, false
	case "heading":
		if strings.HasPrefix(text, "=") {
			return "<nowiki/>" + text, true
		}
		return text, false
	case "list-item":
		if len(text) > 0 {
			switch text[0] {
			case '*', '#', ':', ';':
				return "<nowiki/>" + text, true
			}
		}
		return text, false
	}
	return text, false
}
