// Package lexer implements the serializer's mini wikitext re-tokenizer: a
// synchronous, best-effort scan over a text run that flags the wikitext
// constructs it would produce if the run were fed back through the real
// parser. It is deliberately not a full grammar — it exists only to answer
// "would this substring need escaping", the question the escape engine asks
// for every text node.
//
// The scanning style (a single cursor over the input with a start-of-line
// flag carried through the loop in Scan) follows the Scanner used elsewhere
// in this corpus for hand-rolled lexers over line-oriented source text.
package lexer

import "regexp"

// Kind tags the significance a scanned token carries for the escape engine.
// It is not a full token classification — only the distinctions the escape
// engine's decision table in spec.md §4.2 actually branches on.
type Kind int

const (
	// KindPlain is inert text with no escaping relevance.
	KindPlain Kind = iota
	// KindHTMLTagKnown is an HTML tag on the whitelist; ignored.
	KindHTMLTagKnown
	// KindHTMLTagUnknown is a non-whitelisted HTML tag; ignored (falls
	// through to the default HTML serializer rather than requiring a
	// literal-text fence).
	KindHTMLTagUnknown
	// KindWikitextStart is a wikitext construct's opening syntax.
	KindWikitextStart
	// KindWikitextSelfClosing is a self-closing wikitext construct.
	KindWikitextSelfClosing
	// KindWikitextEnd is a wikitext construct's closing syntax.
	KindWikitextEnd
	// KindGeneratedEntity is a span that would decode to a generated
	// HTML entity (e.g. a bare "&amp;").
	KindGeneratedEntity
	// KindExtLinkInvalid is a self-closing "extlink" whose URL would not
	// actually parse as a URL — exempted from fencing.
	KindExtLinkInvalid
	// KindURLLink is a bare autolinked URL — exempted from fencing.
	KindURLLink
)

// Token is one unit of the mini re-tokenizer's output.
type Token struct {
	Kind Kind
	Name string // construct name: "quote", "wikilink", "extlink", "table", "heading", "tag:<name>", ...
	Text string // matched source text
	Pos  int
}

var (
	htmlTagRegexp   = regexp.MustCompile(`^</?([a-zA-Z][a-zA-Z0-9]*)\b[^>]*>`)
	entityRegexp    = regexp.MustCompile(`^&(#[0-9]+|#[xX][0-9a-fA-F]+|[a-zA-Z][a-zA-Z0-9]*);`)
	boldItalicRegex = regexp.MustCompile(`^'''''|^'''|^''`)
	wikilinkOpen    = regexp.MustCompile(`^\[\[`)
	wikilinkClose   = regexp.MustCompile(`^\]\]`)
	extlinkOpen     = regexp.MustCompile(`^\[(?:[a-zA-Z][a-zA-Z0-9+.-]*://|//)[^\s\]]*`)
	bareBracket     = regexp.MustCompile(`^\[[^\]]*\]`)
	templateOpen    = regexp.MustCompile(`^\{\{\{?`)
	templateClose   = regexp.MustCompile(`^\}\}\}?`)
	tableRowRegexp  = regexp.MustCompile(`^\{\||^\|\}|^\|-|^\|\||^!!`)
	headingRegexp   = regexp.MustCompile(`^=+[^=\n]*=+\s*$`)
	solListRegexp   = regexp.MustCompile(`^[*#:;]`)
	hrRegexp        = regexp.MustCompile(`^----+`)
	urlRegexp       = regexp.MustCompile(`^(?:https?|ftp|mailto)://[^\s<>\[\]"]+`)
	sigRegexp       = regexp.MustCompile(`^~{3,5}`)
)

// Option configures Scan. The HTML tag whitelist is injected rather than
// imported from wtconst to keep this package free of a dependency cycle;
// the escape engine passes the real table in via WithKnownTags.
type Option func(*options)

type options struct {
	isKnownTag   func(name string) bool
	atStartOfLine bool
}

// WithKnownTags supplies the HTML tag whitelist predicate.
func WithKnownTags(f func(name string) bool) Option {
	return func(o *options) { o.isKnownTag = f }
}

// AtStartOfLine tells the tokenizer the text begins at start-of-line, so
// start-of-line-only constructs (headings, list markers, table rows, hr)
// are recognized at offset 0.
func AtStartOfLine(v bool) Option {
	return func(o *options) { o.atStartOfLine = v }
}

// Scan runs the mini re-tokenizer over text and returns every construct it
// recognizes. It never errors: unrecognized input is simply absent from the
// result, which the escape engine treats as "no escaping needed" for that
// span.
func Scan(text string, opts ...Option) []Token {
	o := &options{isKnownTag: func(string) bool { return false }}
	for _, opt := range opts {
		opt(o)
	}

	var out []Token
	sol := o.atStartOfLine
	for i := 0; i < len(text); {
		rest := text[i:]

		if sol {
			if m := headingRegexp.FindString(rest); m != "" {
				out = append(out, Token{Kind: KindWikitextStart, Name: "heading", Text: m, Pos: i})
				i += len(m)
				sol = false
				continue
			}
			if m := tableRowRegexp.FindString(rest); m != "" {
				out = append(out, Token{Kind: KindWikitextStart, Name: "table", Text: m, Pos: i})
				i += len(m)
				sol = false
				continue
			}
			if m := hrRegexp.FindString(rest); m != "" {
				out = append(out, Token{Kind: KindWikitextSelfClosing, Name: "hr", Text: m, Pos: i})
				i += len(m)
				sol = false
				continue
			}
			if m := solListRegexp.FindString(rest); m != "" {
				out = append(out, Token{Kind: KindWikitextStart, Name: "list", Text: m, Pos: i})
				i += len(m)
				sol = false
				continue
			}
		}

		if m := sigRegexp.FindString(rest); m != "" {
			out = append(out, Token{Kind: KindWikitextSelfClosing, Name: "signature", Text: m, Pos: i})
			i += len(m)
			sol = false
			continue
		}
		if m := boldItalicRegex.FindString(rest); m != "" {
			out = append(out, Token{Kind: KindWikitextStart, Name: "quote", Text: m, Pos: i})
			i += len(m)
			sol = false
			continue
		}
		if m := templateOpen.FindString(rest); m != "" {
			out = append(out, Token{Kind: KindWikitextStart, Name: "template", Text: m, Pos: i})
			i += len(m)
			sol = false
			continue
		}
		if m := templateClose.FindString(rest); m != "" {
			out = append(out, Token{Kind: KindWikitextEnd, Name: "template", Text: m, Pos: i})
			i += len(m)
			sol = false
			continue
		}
		if m := wikilinkOpen.FindString(rest); m != "" {
			out = append(out, Token{Kind: KindWikitextStart, Name: "wikilink", Text: m, Pos: i})
			i += len(m)
			sol = false
			continue
		}
		if m := wikilinkClose.FindString(rest); m != "" {
			out = append(out, Token{Kind: KindWikitextEnd, Name: "wikilink", Text: m, Pos: i})
			i += len(m)
			sol = false
			continue
		}
		if m := extlinkOpen.FindString(rest); m != "" {
			out = append(out, Token{Kind: KindWikitextSelfClosing, Name: "extlink", Text: m, Pos: i})
			i += len(m)
			sol = false
			continue
		}
		if m := urlRegexp.FindString(rest); m != "" {
			out = append(out, Token{Kind: KindURLLink, Name: "urllink", Text: m, Pos: i})
			i += len(m)
			sol = false
			continue
		}
		if m := bareBracket.FindString(rest); m != "" {
			// "[not-a-url]" — recognized as extlink syntax by the grammar
			// but its URL doesn't resolve, so it is exempted from fencing.
			out = append(out, Token{Kind: KindExtLinkInvalid, Name: "extlink", Text: m, Pos: i})
			i += len(m)
			sol = false
			continue
		}
		if rest[0] == ']' {
			out = append(out, Token{Kind: KindWikitextEnd, Name: "bracket", Text: "]", Pos: i})
			i++
			sol = false
			continue
		}
		if m := entityRegexp.FindString(rest); m != "" {
			out = append(out, Token{Kind: KindGeneratedEntity, Name: "entity", Text: m, Pos: i})
			i += len(m)
			sol = false
			continue
		}
		if m := htmlTagRegexp.FindString(rest); m != "" {
			name := htmlTagRegexp.FindStringSubmatch(m)[1]
			kind := KindHTMLTagUnknown
			if o.isKnownTag(name) {
				kind = KindHTMLTagKnown
			}
			out = append(out, Token{Kind: kind, Name: "tag:" + name, Text: m, Pos: i})
			i += len(m)
			sol = false
			continue
		}

		if text[i] == '\n' {
			sol = true
		} else if text[i] != ' ' && text[i] != '\t' {
			sol = false
		}
		i++
	}
	return out
}

// RequiresFence reports whether any token in toks, per spec.md's §4.2
// decision table, would force the escape engine to wrap the run in a
// literal-text fence: any wikitext start/self-closing/end token (except the
// two exempted kinds) or a generated-entity span.
func RequiresFence(toks []Token, noEndTag func(name string) bool) bool {
	for _, t := range toks {
		switch t.Kind {
		case KindExtLinkInvalid, KindURLLink, KindHTMLTagKnown, KindHTMLTagUnknown, KindPlain:
			continue
		case KindWikitextEnd:
			if noEndTag != nil && noEndTag(t.Name) {
				continue
			}
			return true
		case KindWikitextStart, KindWikitextSelfClosing, KindGeneratedEntity:
			return true
		}
	}
	return false
}
