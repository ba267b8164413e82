package wts

import "golang.org/x/net/html"

// emitSeparator fills one of the three separator positions spec.md §4.7
// describes. When the preprocessor recovered a literal source separator for
// this position, it wins outright and any handler-driven newline buffered
// since the last real emission is discarded; otherwise the buffered
// separator (if any) is flushed verbatim.
func (w *Walker) emitSeparator(prev, curr *html.Node, kind sepKind) {
	s := w.s

	var sep string
	var ok bool
	switch kind {
	case startSep, ieSep:
		sep, ok = s.sepTable[curr]
	case endSep:
		if prev != nil && prev.Parent != nil {
			sep, ok = s.endSepTable[prev.Parent]
		}
	}

	if ok {
		s.discardBufferedSeparator()
		s.emit(sep, nil)
		return
	}
	s.flushBufferedSeparator()
}
