// Package wts implements the HTML-to-wikitext serializer: a single
// recursive DOM walk over a parsed Parsoid-style document that reconstructs
// wikitext source, splicing in the original source text wherever its
// round-trip metadata (data-parsoid) makes that possible and falling back
// to canonical handler-driven rendering everywhere else.
package wts

import (
	"fmt"

	"golang.org/x/net/html"
)

// Serialize walks root and writes the reconstructed wikitext to onChunk,
// calling onEnd once after the final chunk (spec.md §6). A panic raised
// during the walk — the policy for "shouldn't happen" internal invariant
// violations (spec.md §7) — is recovered, reported through Env.ErrCB, and
// returned as an error rather than propagated to the caller.
func Serialize(root *html.Node, opts Options, onChunk OnChunk, onEnd OnEnd) (err error) {
	defer func() {
		if r := recover(); r != nil {
			serr := newSerializeError(ErrFatal, "panic during serialize: %v", r)
			opts.logger().WithField("kind", serr.Kind.String()).Error(serr.Error())
			if opts.Env.ErrCB != nil {
				opts.Env.ErrCB(serr)
			}
			err = serr
		}
	}()

	if root == nil {
		return fmt.Errorf("wts: nil root")
	}

	s := newState(&opts, onChunk)
	preprocess(root, s)

	reg := newRegistry()
	w := newWalker(s, reg)

	body := findBody(root)
	w.WalkChildren(body)
	s.discardBufferedSeparator()

	if onEnd != nil {
		onEnd()
	}
	return nil
}

// findBody returns the document's body element, or root itself when root
// already is the subtree to serialize (the common case for a selective or
// fragment serialize call).
func findBody(root *html.Node) *html.Node {
	if nodeName(root) == "body" {
		return root
	}
	if b := findDescendantNamed(root, "body"); b != nil {
		return b
	}
	return root
}

func findDescendantNamed(n *html.Node, name string) *html.Node {
	if nodeName(n) == name {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findDescendantNamed(c, name); found != nil {
			return found
		}
	}
	return nil
}
