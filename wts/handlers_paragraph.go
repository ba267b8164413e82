package wts

import (
	"golang.org/x/net/html"

	"github.com/cscott/nell-parsoid/dparsoid"
	"github.com/cscott/nell-parsoid/token"
)

func paragraphSuppressed(n *html.Node, s *State) bool {
	if s.IgnorePTag {
		return true
	}
	if n.Parent == nil {
		return false
	}
	switch nodeName(n.Parent) {
	case "li", "dt", "dd", "td", "th":
		return true
	}
	return false
}

// paragraphNewlines decides how many newlines a paragraph boundary needs:
// a single newline when immediately adjacent to another `p` or a `br`, a
// blank line otherwise, and nothing at all when there is no prior output to
// separate from (spec.md §4.1's paragraph contract).
func paragraphNewlines(s *State, n *html.Node, before bool) string {
	var sib *html.Node
	if before {
		sib = prevElementSibling(n)
	} else {
		sib = nextElementSibling(n)
	}
	if before && s.lastRes == "" {
		return ""
	}
	if sib != nil {
		switch nodeName(sib) {
		case "p", "br":
			return "\n"
		}
	}
	return "\n\n"
}

// paragraphHandlers implements spec.md §4.1's `p` contract.
func paragraphHandlers() map[string]*Handler {
	return map[string]*Handler{
		"p": {
			Start: &HandlerSide{
				SolTransparent: true,
				Handle: func(s *State, tok token.Token, n *html.Node, dp *dparsoid.DataParsoid) string {
					if paragraphSuppressed(n, s) || s.Src != nil {
						return ""
					}
					return paragraphNewlines(s, n, true)
				},
			},
			End: &HandlerSide{
				SolTransparent: true,
				Handle: func(s *State, tok token.Token, n *html.Node, dp *dparsoid.DataParsoid) string {
					if paragraphSuppressed(n, s) || s.Src != nil {
						return ""
					}
					return paragraphNewlines(s, n, false)
				},
			},
		},
	}
}
