// Package wtconst holds the static lookup tables the serializer consults:
// the HTML tag whitelist the mini re-tokenizer treats as ignorable, the void
// element set, the image-option maps used by the figure handler, and the
// regular expressions that flag URL-triggering text.
package wtconst

import "regexp"

// VoidElements is the set of HTML elements that never have a closing tag.
var VoidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// IsVoidElement reports whether name is a void HTML element.
func IsVoidElement(name string) bool {
	return VoidElements[name]
}

// HTMLTagWhitelist is the set of HTML tags (inline and block) the escape engine's
// tokenizer pass treats as "already HTML, no fencing needed" rather than as
// a wikitext construct that must be fenced. Extension tags (ref, nowiki,
// etc.) are handled separately by the meta/span handlers and are not part
// of this table.
var HTMLTagWhitelist = map[string]bool{
	"b": true, "bdi": true, "del": true, "i": true, "ins": true,
	"u": true, "font": true, "big": true, "small": true, "sub": true,
	"sup": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "cite": true, "code": true, "em": true,
	"s": true, "strike": true, "strong": true, "tt": true, "var": true,
	"div": true, "center": true, "blockquote": true, "ol": true,
	"ul": true, "dl": true, "table": true, "caption": true, "pre": true,
	"ruby": true, "rb": true, "rp": true, "rt": true, "rtc": true,
	"p": true, "span": true, "abbr": true, "dfn": true, "kbd": true,
	"samp": true, "data": true, "time": true, "mark": true, "br": true,
	"wbr": true, "hr": true, "li": true, "dt": true, "dd": true,
	"tr": true, "td": true, "th": true, "a": true, "img": true,
}

// NoEndTagSet lists the table-cell, table-row and list-item element names
// whose closing syntax, if the re-tokenizer surfaces it as an end token, does
// not by itself signify an escapable construct.
var NoEndTagSet = map[string]bool{
	"td": true, "th": true, "tr": true, "li": true, "dt": true, "dd": true,
}

// Simple image options map a localized magic-word fragment onto the
// canonical option key it represents, keyed as "img_<word>" the way
// Parsoid's own table is keyed (so a magic word can be looked up directly
// by its canonical name without a separate language indirection table).
var SimpleImgOptions = map[string]string{
	"img_border":      "border",
	"img_thumbnail":   "thumb",
	"img_thumb":       "thumb",
	"img_frame":       "frame",
	"img_framed":      "frame",
	"img_frameless":   "frameless",
	"img_left":        "left",
	"img_right":       "right",
	"img_center":      "center",
	"img_none":        "none",
	"img_baseline":    "baseline",
	"img_sub":         "sub",
	"img_super":       "super",
	"img_top":         "top",
	"img_text_top":    "text-top",
	"img_middle":      "middle",
	"img_bottom":      "bottom",
	"img_text_bottom": "text-bottom",
	"img_upright":     "upright",
}

// PrefixImgOptions map an option key to the localized magic-word template
// used to emit it ("%s" is replaced with the option's value).
var PrefixImgOptions = map[string]string{
	"width": "%spx",
	"alt":   "alt=%s",
	"link":  "link=%s",
	"page":  "page=%s",
	"lang":  "lang=%s",
	"class": "class=%s",
}

// ImgOptionOrder lists the size and prefix image-option keys, size first,
// in the order Parsoid emits them when no optList is recorded. Simple
// options and the caption are not part of it.
var ImgOptionOrder = []string{"width", "height", "alt", "link", "page", "lang", "class"}

// extLinkURLRegexp matches a "protocol:" URL prefix the way Parsoid's own
// mwurl trigger pattern does, used to decide whether bracketed text should
// be treated as an external link target.
var extLinkURLRegexp = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://[^\s\]]+$`)

// IsExtLinkURL reports whether s looks like a URL that would trigger
// external-link parsing if it appeared unescaped in wikitext.
func IsExtLinkURL(s string) bool {
	return extLinkURLRegexp.MatchString(s)
}

// bareURLRegexp matches a "free" URL that wikitext autolinks without
// brackets (the "urllink" token the mini re-tokenizer's grammar produces).
var bareURLRegexp = regexp.MustCompile(`\b(?:https?|ftp|mailto)://[^\s<>\[\]"]+`)

// ContainsBareURL reports whether text contains a substring that would be
// recognized as an autolinked URL if re-parsed outside any link context.
func ContainsBareURL(s string) bool {
	return bareURLRegexp.MatchString(s)
}

// MagicWords maps mw:PageProp/<name> property suffixes to their canonical
// wikitext rendering when no magicSrc was recorded.
var MagicWords = map[string]string{
	"NOTOC":          "__NOTOC__",
	"NOEDITSECTION":  "__NOEDITSECTION__",
	"NOGALLERY":      "__NOGALLERY__",
	"FORCETOC":       "__FORCETOC__",
	"TOC":            "__TOC__",
	"NEWSECTIONLINK": "__NEWSECTIONLINK__",
	"HIDDENCAT":      "__HIDDENCAT__",
	"INDEX":          "__INDEX__",
	"NOINDEX":        "__NOINDEX__",
	"STATICREDIRECT": "__STATICREDIRECT__",
}

// BlockElements is the fixed set the DOM walker consults to decide whether
// an element participates in block-level line accounting.
var BlockElements = map[string]bool{
	"body": true, "div": true, "p": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"ul": true, "ol": true, "dl": true, "li": true, "dt": true, "dd": true,
	"table": true, "tbody": true, "tr": true, "td": true, "th": true, "caption": true,
	"pre": true, "hr": true, "blockquote": true,
	"figure": true, "figcaption": true, "form": true, "fieldset": true,
}

// IsBlockElement reports whether name is in BlockElements.
func IsBlockElement(name string) bool {
	return BlockElements[name]
}

// ListTagBullets maps a native-wikitext list tag to the bullet character a
// newly pushed list frame uses. dl contributes an empty bullet: its items
// (dt/dd) supply ";"/":" directly.
var ListTagBullets = map[string]string{
	"ul": "*",
	"ol": "#",
	"dl": "",
}
