package wts

import (
	"golang.org/x/net/html"

	"github.com/cscott/nell-parsoid/dparsoid"
	"github.com/cscott/nell-parsoid/token"
	"github.com/cscott/nell-parsoid/wtconst"
)

// listHandlers implements spec.md §4.1's list contract: a list frame is
// pushed with the tag's bullet character ("*", "#", or "" for dl, whose
// items supply their own) and popped on close.
func listHandlers() map[string]*Handler {
	reg := map[string]*Handler{}
	for name, bullet := range wtconst.ListTagBullets {
		bullet := bullet
		reg[name] = &Handler{
			Start: &HandlerSide{
				SolTransparent: true,
				Handle: func(s *State, tok token.Token, n *html.Node, dp *dparsoid.DataParsoid) string {
					s.pushList(bullet)
					return ""
				},
			},
			End: &HandlerSide{
				EndsLine: true,
				Handle: func(s *State, tok token.Token, n *html.Node, dp *dparsoid.DataParsoid) string {
					s.popList()
					return ""
				},
			},
		}
	}
	return reg
}

// listItemHandlers implements spec.md §4.1's list-item contract: increment
// the frame's item count, then decide between the cumulative bullet prefix
// (first item, or a line-break context forces it) and the bare current-
// level bullet.
func listItemHandlers() map[string]*Handler {
	reg := map[string]*Handler{}
	for _, name := range []string{"li", "dt", "dd"} {
		name := name
		reg[name] = &Handler{
			WtEscapeHandler: "list-item",
			Start: &HandlerSide{
				StartsLine: true,
				Handle: func(s *State, tok token.Token, n *html.Node, dp *dparsoid.DataParsoid) string {
					frame := s.topList()
					if frame == nil {
						frame = s.pushList("")
					}
					itemChar := frame.Bullet
					if itemChar == "" {
						if name == "dt" {
							itemChar = ";"
						} else {
							itemChar = ":"
						}
					}
					frame.LastItemChar = itemChar
					frame.ItemCount++

					if frame.ItemCount == 1 {
						return frame.ParentBullets + itemChar
					}

					sameClosingPrev := false
					if et, ok := s.PrevToken.(*token.EndTag); ok && et.Name == name {
						sameClosingPrev = true
					}
					ddMultiline := false
					if name == "dd" && dp.StxV != "row" {
						if et, ok := s.PrevToken.(*token.EndTag); ok && et.Name == "dt" {
							ddMultiline = true
						}
					}
					if s.OnStartOfLine || sameClosingPrev || ddMultiline {
						return frame.ParentBullets + itemChar
					}
					return itemChar
				},
			},
			End: &HandlerSide{
				EndsLine: true,
				Handle: func(s *State, tok token.Token, n *html.Node, dp *dparsoid.DataParsoid) string {
					return ""
				},
			},
		}
	}
	return reg
}
