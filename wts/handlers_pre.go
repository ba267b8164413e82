package wts

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/cscott/nell-parsoid/dparsoid"
	"github.com/cscott/nell-parsoid/token"
)

// indentPreTransform prefixes every newline that isn't the final character
// with "\n " and, since it runs on each emitted chunk independently, relies
// on the handler having already written the line's leading space once at
// entry (spec.md §4.1's pre contract).
func indentPreTransform(content string) string {
	if content == "" {
		return content
	}
	var sb strings.Builder
	for i := 0; i < len(content); i++ {
		c := content[i]
		sb.WriteByte(c)
		if c == '\n' && i != len(content)-1 {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

// preHandlers implements spec.md §4.1's `pre` contract: HTML-syntax pre
// (dataParsoid.stx == "html") round-trips as a literal `<pre>` element;
// native-wikitext pre ("indent-pre") emits a leading space on every line.
func preHandlers() map[string]*Handler {
	return map[string]*Handler{
		"pre": {
			Start: &HandlerSide{
				StartsLine: true,
				Handle: func(s *State, tok token.Token, n *html.Node, dp *dparsoid.DataParsoid) string {
					if dp.Stx == "html" {
						s.InHTMLPre = true
						st, _ := tok.(*token.StartTag)
						attribs := token.Attribs(nil)
						if st != nil {
							attribs = st.Attribs
						}
						return defaultStartTag("pre", attribs, dp)
					}
					s.InIndentPre = true
					s.textTransform = indentPreTransform
					return " "
				},
			},
			End: &HandlerSide{
				EndsLine: true,
				Handle: func(s *State, tok token.Token, n *html.Node, dp *dparsoid.DataParsoid) string {
					if dp.Stx == "html" {
						s.InHTMLPre = false
						return defaultEndTag("pre", dp)
					}
					s.InIndentPre = false
					s.textTransform = nil
					return ""
				},
			},
		},
	}
}
