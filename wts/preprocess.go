package wts

import (
	"regexp"

	"golang.org/x/net/html"

	"github.com/cscott/nell-parsoid/dparsoid"
)

// separatorValidationRegexp is spec.md §4.7 step 3's sanity check: a
// recovered separator must be pure whitespace and/or HTML comments, or the
// splice is abandoned in favor of handler-driven newlines.
var separatorValidationRegexp = regexp.MustCompile(`^(?:\s|(?s:<!--.*?-->))*$`)

// preprocess implements spec.md §4.5: a single pass over the DOM before the
// walker runs, decoding each element's data-parsoid attribute into the
// dataParsoid arena (spec.md §9's node-identity side table) and, when the
// original source is available, extracting the literal inter-element
// separators DSR makes it possible to recover.
func preprocess(root *html.Node, s *State) {
	decodeDataParsoid(root, s)
	if s.Src != nil {
		extractSeparators(root, s)
	}
}

func decodeDataParsoid(n *html.Node, s *State) {
	if n.Type == html.ElementNode {
		raw, _ := attrOf(n, "data-parsoid")
		dp, err := dparsoid.Decode(raw)
		if err != nil {
			panic(newSerializeError(ErrFatal, "decoding data-parsoid of <%s>: %v", n.Data, err))
		}
		if dp == nil {
			dp = &dparsoid.DataParsoid{}
		}
		s.dpTable[n] = dp
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		decodeDataParsoid(c, s)
	}
}

// extractSeparators walks every container and slices the source text
// between adjacent children's DSR ranges, recording it in sepTable (before
// an element) and endSepTable (before a container's close tag). A gap
// whose dsr endpoints fall outside the source, or whose text is not pure
// whitespace/comments, is left unrecorded; the
// separator engine then falls back to handler-driven newlines for it
// (spec.md §4.7).
func extractSeparators(n *html.Node, s *State) {
	if n.Type == html.ElementNode || n.Type == html.DocumentNode {
		var prevElem *html.Node
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			if prevElem == nil {
				if gap, ok := gapBefore(s, n, c); ok {
					s.sepTable[c] = gap
				}
			} else if gap, ok := gapBetween(s, prevElem, c); ok {
				s.sepTable[c] = gap
			}
			prevElem = c
		}
		if prevElem != nil {
			if gap, ok := gapAfter(s, prevElem, n); ok {
				s.endSepTable[n] = gap
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		extractSeparators(c, s)
	}
}

func gapBetween(s *State, prev, curr *html.Node) (string, bool) {
	pdp, cdp := s.dataParsoid(prev), s.dataParsoid(curr)
	if !pdp.HasDsr() || !cdp.HasDsr() {
		return "", false
	}
	start, end := pdp.Dsr.End, cdp.Dsr.Start
	return sliceSrc(s, start, end)
}

func gapBefore(s *State, container, curr *html.Node) (string, bool) {
	cdp := s.dataParsoid(curr)
	pdp := s.dataParsoid(container)
	if !cdp.HasDsr() || !pdp.HasDsr() {
		return "", false
	}
	start := pdp.Dsr.Start + pdp.Dsr.OpenWidth
	return sliceSrc(s, start, cdp.Dsr.Start)
}

func gapAfter(s *State, last, container *html.Node) (string, bool) {
	ldp := s.dataParsoid(last)
	pdp := s.dataParsoid(container)
	if !ldp.HasDsr() || !pdp.HasDsr() {
		return "", false
	}
	end := pdp.Dsr.End - pdp.Dsr.CloseWidth
	return sliceSrc(s, ldp.Dsr.End, end)
}

func sliceSrc(s *State, start, end int) (string, bool) {
	if s.Src == nil || start < 0 || end < start || end > len(*s.Src) {
		return "", false
	}
	gap := (*s.Src)[start:end]
	if !separatorValidationRegexp.MatchString(gap) {
		s.reportError(s.opts, ErrSeparatorAnomaly, "source gap [%d,%d) is not whitespace/comments", start, end)
		return "", false
	}
	return gap, true
}
