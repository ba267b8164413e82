package wts

import (
	"golang.org/x/net/html"

	"github.com/cscott/nell-parsoid/dparsoid"
	"github.com/cscott/nell-parsoid/token"
)

func verbatimOrDefault(src, def string) string {
	if src != "" {
		return src
	}
	return def
}

// tableHandlers implements spec.md §4.1's table contract. tbody is always
// structural-only and produces no output; table saves/restores list and
// single-line state across its extent (lists and tables don't nest across
// that boundary); tr/td/th/caption reconstruct native-wikitext row/cell
// syntax from dataParsoid's recorded source when present, synthesizing it
// otherwise.
func tableHandlers() map[string]*Handler {
	reg := map[string]*Handler{}

	reg["table"] = &Handler{
		Start: &HandlerSide{
			StartsLine: true,
			Handle: func(s *State, tok token.Token, n *html.Node, dp *dparsoid.DataParsoid) string {
				s.saveTableState()
				return verbatimOrDefault(dp.StartTagSrc, "{|"+renderAttribs(token.Attribs(nil)))
			},
		},
		End: &HandlerSide{
			EndsLine: true,
			Handle: func(s *State, tok token.Token, n *html.Node, dp *dparsoid.DataParsoid) string {
				out := verbatimOrDefault(dp.EndTagSrc, "|}")
				s.restoreTableState()
				return out
			},
		},
	}

	reg["tbody"] = &Handler{
		Start: &HandlerSide{Ignore: true, SolTransparent: true},
		End:   &HandlerSide{Ignore: true, SolTransparent: true},
	}

	reg["caption"] = &Handler{
		WtEscapeHandler: "table-cell",
		Start: &HandlerSide{
			StartsLine: true,
			Handle: func(s *State, tok token.Token, n *html.Node, dp *dparsoid.DataParsoid) string {
				return verbatimOrDefault(dp.StartTagSrc, "|+")
			},
		},
		End: &HandlerSide{EndsLine: true},
	}

	reg["tr"] = &Handler{
		Start: &HandlerSide{
			StartsLine: true,
			Handle: func(s *State, tok token.Token, n *html.Node, dp *dparsoid.DataParsoid) string {
				if dp.StartTagSrc != "" {
					return dp.StartTagSrc
				}
				if st, ok := s.PrevToken.(*token.StartTag); ok && st.Name == "tbody" {
					return ""
				}
				return "|-"
			},
		},
		End: &HandlerSide{EndsLine: true},
	}

	reg["td"] = tableCellHandler("td", "|", "||", "table-cell")
	reg["th"] = tableCellHandler("th", "!", "!!", "table-header")

	return reg
}

func tableCellHandler(name, newRowDelim, sameRowDelim, escCtx string) *Handler {
	return &Handler{
		WtEscapeHandler: escCtx,
		Start: &HandlerSide{
			StartsLine: true,
			Handle: func(s *State, tok token.Token, n *html.Node, dp *dparsoid.DataParsoid) string {
				if dp.StartTagSrc != "" {
					return dp.StartTagSrc
				}
				if dp.StxV == "row" {
					return sameRowDelim
				}
				return newRowDelim
			},
		},
		End: &HandlerSide{},
	}
}
