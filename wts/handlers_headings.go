package wts

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/cscott/nell-parsoid/dparsoid"
	"github.com/cscott/nell-parsoid/token"
)

func headingLevel(name string) int {
	switch name {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

// headingHandlers implements spec.md §4.1's heading contract: `=`*k,
// newline before and after, and an empty literal-text fence between the
// delimiters when the element is empty (boundary case in spec.md §8:
// `<h2></h2>` serializes as `==<nowiki/>==`).
func headingHandlers() map[string]*Handler {
	reg := map[string]*Handler{}
	for _, name := range []string{"h1", "h2", "h3", "h4", "h5", "h6"} {
		level := headingLevel(name)
		eq := strings.Repeat("=", level)
		reg[name] = &Handler{
			WtEscapeHandler: "heading",
			Start: &HandlerSide{
				StartsLine: true,
				Handle: func(s *State, tok token.Token, n *html.Node, dp *dparsoid.DataParsoid) string {
					return eq
				},
			},
			End: &HandlerSide{
				EndsLine: true,
				Handle: func(s *State, tok token.Token, n *html.Node, dp *dparsoid.DataParsoid) string {
					if st, ok := s.PrevToken.(*token.StartTag); ok && st.Name == name {
						return "<nowiki/>" + eq
					}
					return eq
				},
			},
		}
	}
	return reg
}
