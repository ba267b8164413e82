package wts

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/cscott/nell-parsoid/dparsoid"
	"github.com/cscott/nell-parsoid/token"
)

// miscHandlers implements spec.md §4.1's `hr`, `br`, and `body` contracts.
func miscHandlers() map[string]*Handler {
	return map[string]*Handler{
		"hr": {
			Start: &HandlerSide{
				StartsLine: true,
				Handle: func(s *State, tok token.Token, n *html.Node, dp *dparsoid.DataParsoid) string {
					dashes := 4 + dp.ExtraDashes
					out := strings.Repeat("-", dashes)
					if !dp.LineContent {
						out += "\n"
					}
					return out
				},
			},
		},
		"br": {
			Start: &HandlerSide{
				Handle: func(s *State, tok token.Token, n *html.Node, dp *dparsoid.DataParsoid) string {
					return "\n"
				},
			},
		},
		"body": {
			Start: &HandlerSide{Ignore: true, SolTransparent: true},
			End:   &HandlerSide{Ignore: true, SolTransparent: true},
		},
	}
}
