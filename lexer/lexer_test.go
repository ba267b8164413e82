package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanPlainText(t *testing.T) {
	toks := Scan("just some words")
	assert.Empty(t, toks)
}

func TestScanQuotes(t *testing.T) {
	toks := Scan("''italic''")
	assert.True(t, RequiresFence(toks, nil))
}

func TestScanWikilink(t *testing.T) {
	toks := Scan("see [[Foo]] over there")
	assert.True(t, RequiresFence(toks, nil))
}

func TestScanHeadingOnlyAtStartOfLine(t *testing.T) {
	notSol := Scan("= not a heading =")
	assert.False(t, RequiresFence(notSol, nil))

	sol := Scan("= a heading =", AtStartOfLine(true))
	assert.True(t, RequiresFence(sol, nil))
}

func TestScanURLLinkExempted(t *testing.T) {
	toks := Scan("visit http://example.com today")
	assert.False(t, RequiresFence(toks, nil))
}

func TestScanInvalidExtlinkExempted(t *testing.T) {
	toks := Scan("a [bracketed group] of words")
	assert.False(t, RequiresFence(toks, nil))
}

func TestScanKnownHTMLTagIgnored(t *testing.T) {
	toks := Scan("<b>bold</b>", WithKnownTags(func(name string) bool { return name == "b" }))
	assert.False(t, RequiresFence(toks, nil))
}

func TestScanUnknownHTMLTagStillIgnored(t *testing.T) {
	// Unknown tags fall through to the default HTML serializer rather than
	// forcing a literal-text fence.
	toks := Scan("<bogus>text</bogus>")
	assert.False(t, RequiresFence(toks, nil))
}

func TestScanNoEndTagSetExempted(t *testing.T) {
	toks := Scan("cell content]]")
	noEnd := func(name string) bool { return name == "wikilink" }
	assert.False(t, RequiresFence(toks, noEnd))
}

func TestScanSignature(t *testing.T) {
	toks := Scan("-- ~~~~")
	assert.True(t, RequiresFence(toks, nil))
}
