// Package selective implements the supplementary feature spec.md §9.1
// invites: serializing only the portion of a document an edit actually
// touched, instead of the whole body. It locates the changed range of
// top-level body children the way the corpus's model.FindDiffStart/
// FindDiffEnd locate the changed range of a ProseMirror fragment, then hands
// that range to wts.Serialize as a standalone fragment.
package selective

import (
	"golang.org/x/net/html"

	"github.com/cscott/nell-parsoid/wts"
)

// Range identifies the half-open span of children, by index into the new
// document's body, that differs from the old document. serializeInfo
// carried on every chunk wts.Serialize emits for a selective call is a
// *Range, so callers can attribute output back to the edit that produced
// it without the core interpreting the value itself (spec.md §9).
type Range struct {
	Start, End int
}

func children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// sameNode reports whether two nodes are interchangeable for diffing
// purposes: same type, and for text nodes the same content; for elements
// the same tag name, the same attributes in the same order, and deep-equal
// children (via deepEqual, which recurses back into sameNode).
func sameNode(a, b *html.Node) bool {
	if a == b {
		return true
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case html.TextNode:
		return a.Data == b.Data
	case html.ElementNode:
		if a.Data != b.Data || len(a.Attr) != len(b.Attr) {
			return false
		}
		for i := range a.Attr {
			if a.Attr[i] != b.Attr[i] {
				return false
			}
		}
		return deepEqual(a, b)
	}
	return false
}

func deepEqual(a, b *html.Node) bool {
	ca, cb := children(a), children(b)
	if len(ca) != len(cb) {
		return false
	}
	for i := range ca {
		if !sameNode(ca[i], cb[i]) {
			return false
		}
	}
	return true
}

// FindDiffStart returns the index of the first child at which oldKids and
// newKids diverge, or -1 if every child is identical (model.FindDiffStart's
// "i == childCount both" case).
func FindDiffStart(oldKids, newKids []*html.Node) int {
	n := len(oldKids)
	if len(newKids) < n {
		n = len(newKids)
	}
	for i := 0; i < n; i++ {
		if !sameNode(oldKids[i], newKids[i]) {
			return i
		}
	}
	if len(oldKids) == len(newKids) {
		return -1
	}
	return n
}

// FindDiffEnd returns the index, counted from the end of newKids, at which
// the trailing identical run starts — i.e. newKids[end:] is untouched. It
// mirrors model.FindDiffEnd's walk from both fragments' tails, stopping
// short of the already-found diff start so the two never cross.
func FindDiffEnd(oldKids, newKids []*html.Node, diffStart int) int {
	ia, ib := len(oldKids), len(newKids)
	for ia > diffStart && ib > diffStart {
		if !sameNode(oldKids[ia-1], newKids[ib-1]) {
			break
		}
		ia--
		ib--
	}
	return ib
}

// ChangedRange computes the minimal [Start,End) span of newBody's children
// that differs from oldBody's. A nil result means the two bodies are
// identical and nothing needs re-serializing.
func ChangedRange(oldBody, newBody *html.Node) *Range {
	oldKids, newKids := children(oldBody), children(newBody)
	start := FindDiffStart(oldKids, newKids)
	if start < 0 {
		return nil
	}
	end := FindDiffEnd(oldKids, newKids, start)
	return &Range{Start: start, End: end}
}

// SerializeChanged serializes only the children of newBody inside the
// range that differs from oldBody, forwarding *Range as each chunk's
// serializeInfo. If nothing changed, onEnd is invoked immediately and no
// chunk is emitted.
func SerializeChanged(oldBody, newBody *html.Node, opts wts.Options, onChunk wts.OnChunk, onEnd wts.OnEnd) error {
	r := ChangedRange(oldBody, newBody)
	if r == nil {
		if onEnd != nil {
			onEnd()
		}
		return nil
	}

	fragment := &html.Node{Type: html.ElementNode, Data: "body"}
	newKids := children(newBody)
	for i := r.Start; i < r.End; i++ {
		fragment.AppendChild(cloneSubtree(newKids[i]))
	}

	wrapped := func(chunk string, _ interface{}) {
		onChunk(chunk, r)
	}
	return wts.Serialize(fragment, opts, wrapped, onEnd)
}

// cloneSubtree deep-copies n so it can be appended into the synthetic
// fragment without detaching it from newBody.
func cloneSubtree(n *html.Node) *html.Node {
	clone := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		clone.AppendChild(cloneSubtree(c))
	}
	return clone
}
