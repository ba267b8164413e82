package wts

import (
	"strings"

	"golang.org/x/net/html"
)

// attrOf returns the value of attribute key on n, and whether it was
// present.
func attrOf(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// nodeName returns the lower-cased tag name of an element node, or "" for
// any other node type.
func nodeName(n *html.Node) string {
	if n == nil || n.Type != html.ElementNode {
		return ""
	}
	return strings.ToLower(n.Data)
}

// firstElementChild returns the first child of n that is an element node.
func firstElementChild(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}

// lastElementChild returns the last child of n that is an element node.
func lastElementChild(n *html.Node) *html.Node {
	for c := n.LastChild; c != nil; c = c.PrevSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}

// nextElementSibling returns the next sibling of n that is an element node.
func nextElementSibling(n *html.Node) *html.Node {
	for c := n.NextSibling; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}

// prevElementSibling returns the previous sibling of n that is an element
// node.
func prevElementSibling(n *html.Node) *html.Node {
	for c := n.PrevSibling; c != nil; c = c.PrevSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}

// textContent concatenates the text of all descendant text nodes of n.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		if cur.Type == html.TextNode {
			sb.WriteString(cur.Data)
			return
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// ancestorNamed walks up from n's parent looking for an element with the
// given name, stopping at the document root.
func ancestorNamed(n *html.Node, name string) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if nodeName(p) == name {
			return p
		}
	}
	return nil
}
