package wts

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/cscott/nell-parsoid/dparsoid"
	"github.com/cscott/nell-parsoid/wtconst"
)

// findDescendantImg returns the first `img` element anywhere under n.
func findDescendantImg(n *html.Node) *html.Node {
	var found *html.Node
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		if found != nil {
			return
		}
		if nodeName(cur) == "img" {
			found = cur
			return
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return found
}

func findChild(n *html.Node, name string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if nodeName(c) == name {
			return c
		}
	}
	return nil
}

// figureNodeHandler implements spec.md §4.4: a figure wrapping an img (with
// an optional figcaption) is reconstructed as `[[File:Target|opt|opt|...]]`,
// replaying the recorded optList through the simple/prefix tables when
// present and synthesizing the options from the DOM otherwise.
func figureNodeHandler(w *Walker, n *html.Node, dp *dparsoid.DataParsoid) {
	img := findDescendantImg(n)
	if img == nil {
		w.s.reportError(w.s.opts, ErrMalformedDOM, "figure has no descendant img; rendering as generic HTML")
		renderDefaultFigure(w, n, dp)
		return
	}

	s := w.s
	resource, ok := attrOf(img, "resource")
	if !ok {
		resource, _ = attrOf(img, "src")
	}
	target := decodeLinkTarget(resource)

	typeOf, _ := attrOf(n, "typeof")
	opts := collectImageOptions(w, n, img, dp, typeOf)

	s.pushWteContext("wikilink", dp)
	out := "[[" + escapeText(s, "File:"+target)
	for _, o := range opts {
		out += "|" + o
	}
	out += "]]"
	s.popWteContext()
	w.Emit(out)
}

// collectImageOptions renders the figure's format/size/alignment/caption
// options. When dp.OptList recorded the source order it is replayed
// through the disambiguation tables of spec.md §4.4; otherwise a
// reasonable canonical order is synthesized from the DOM.
func collectImageOptions(w *Walker, fig, img *html.Node, dp *dparsoid.DataParsoid, typeOf string) []string {
	if len(dp.OptList) > 0 {
		return renderRecordedImageOptions(w, fig, dp, dp.OptList)
	}

	var opts []string
	switch {
	case strings.Contains(typeOf, "Thumb"):
		opts = append(opts, "thumb")
	case strings.Contains(typeOf, "Frame"):
		opts = append(opts, "frame")
	case strings.Contains(typeOf, "Frameless"):
		opts = append(opts, "frameless")
	}

	if size := renderImageSize(img); size != "" {
		opts = append(opts, size)
	}
	if class, ok := attrOf(fig, "class"); ok {
		for _, tok := range strings.Fields(class) {
			switch tok {
			case "mw-halign-left":
				opts = append(opts, "left")
			case "mw-halign-right":
				opts = append(opts, "right")
			case "mw-halign-center":
				opts = append(opts, "center")
			case "mw-halign-none":
				opts = append(opts, "none")
			}
		}
	}
	if alt, ok := attrOf(img, "alt"); ok && alt != "" {
		opts = append(opts, fmt.Sprintf(wtconst.PrefixImgOptions["alt"], alt))
	}
	if cap := findChild(fig, "figcaption"); cap != nil {
		opts = append(opts, escapeText(w.s, textContent(cap)))
	}
	return opts
}

// optValue returns item's value, or "" for a recorded JSON null.
func optValue(item dparsoid.OptListItem) string {
	if item.V == nil {
		return ""
	}
	return *item.V
}

// renderRecordedImageOptions replays dp.OptList through the disambiguation
// tables spec.md §4.4 describes: a key/value pair round-trips as the bare
// localized value when it agrees with wtconst.SimpleImgOptions, otherwise
// as the key's prefix template when one is registered; width and height
// are collected pairwise and flushed together one iteration after the
// last size key; a caption with a recorded nil value falls back to the
// figure's own figcaption content rather than the (absent) literal value.
func renderRecordedImageOptions(w *Walker, fig *html.Node, dp *dparsoid.DataParsoid, items []dparsoid.OptListItem) []string {
	var out []string
	var pendingWidth, pendingHeight *string

	flushSize := func() {
		switch {
		case pendingWidth != nil && pendingHeight != nil:
			out = append(out, *pendingWidth+"x"+*pendingHeight+"px")
		case pendingWidth != nil:
			out = append(out, *pendingWidth+"px")
		case pendingHeight != nil:
			out = append(out, "x"+*pendingHeight+"px")
		default:
			return
		}
		pendingWidth, pendingHeight = nil, nil
	}

	for _, item := range items {
		if item.K != "width" && item.K != "height" {
			flushSize()
		}

		switch item.K {
		case "width":
			v := optValue(item)
			pendingWidth = &v
			continue
		case "height":
			v := optValue(item)
			pendingHeight = &v
			continue
		case "caption":
			var capText string
			if item.V == nil {
				if cap := findChild(fig, "figcaption"); cap != nil {
					capText = textContent(cap)
				}
			} else {
				capText = *item.V
			}
			w.s.pushWteContext("link", dp)
			out = append(out, escapeText(w.s, capText))
			w.s.popWteContext()
			continue
		}

		v := optValue(item)
		if wtconst.SimpleImgOptions["img_"+v] == item.K {
			out = append(out, v)
			continue
		}
		if format, ok := wtconst.PrefixImgOptions[item.K]; ok {
			out = append(out, fmt.Sprintf(format, v))
			continue
		}
		out = append(out, v)
	}
	flushSize()
	return out
}

// renderImageSize renders an img's recorded width/height as "Wpx" or
// "WxHpx", the two forms a figure's size option takes.
func renderImageSize(img *html.Node) string {
	w, hasW := attrOf(img, "width")
	h, hasH := attrOf(img, "height")
	if !hasW && !hasH {
		return ""
	}
	if hasW && hasH {
		if _, err := strconv.Atoi(w); err == nil {
			if _, err := strconv.Atoi(h); err == nil {
				return w + "x" + h + "px"
			}
		}
	}
	if hasW {
		return w + "px"
	}
	return ""
}

func renderDefaultFigure(w *Walker, n *html.Node, dp *dparsoid.DataParsoid) {
	attribs := attribsOf(n)
	w.Emit(defaultStartTag("figure", attribs, dp))
	w.WalkChildren(n)
	w.Emit(defaultEndTag("figure", dp))
}
