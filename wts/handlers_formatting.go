package wts

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/cscott/nell-parsoid/dparsoid"
	"github.com/cscott/nell-parsoid/token"
)

// quoteMarker returns marker, guarded by a leading empty literal-text fence
// when the immediately preceding output ends in a run of five quote
// characters — without the fence, "'''''" followed by another "'''" would
// merge into an unintended seven-quote run on re-parse (spec.md §4.1's
// bold/italic contract, boundary case in spec.md §8).
func quoteMarker(s *State, marker string) string {
	if strings.HasSuffix(s.lastRes, "'''''") {
		return "<nowiki/>" + marker
	}
	return marker
}

// formattingHandlers implements spec.md §4.1's `b`/`i` contract.
func formattingHandlers() map[string]*Handler {
	reg := map[string]*Handler{}
	for name, marker := range map[string]string{"b": "'''", "i": "''"} {
		marker := marker
		reg[name] = &Handler{
			WtEscapeHandler: "quote",
			Start: &HandlerSide{
				Handle: func(s *State, tok token.Token, n *html.Node, dp *dparsoid.DataParsoid) string {
					return quoteMarker(s, marker)
				},
			},
			End: &HandlerSide{
				Handle: func(s *State, tok token.Token, n *html.Node, dp *dparsoid.DataParsoid) string {
					return quoteMarker(s, marker)
				},
			},
		}
	}
	return reg
}
