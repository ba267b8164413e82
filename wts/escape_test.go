package wts

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cscott/nell-parsoid/dparsoid"
)

func newTestState() *State {
	opts := &Options{Env: Env{}}
	return newState(opts, func(string, interface{}) {})
}

func TestEscapeTextPlain(t *testing.T) {
	s := newTestState()
	assert.Equal(t, "hello world", escapeText(s, "hello world"))
}

func TestEscapeTextFencesWikilinkSyntax(t *testing.T) {
	s := newTestState()
	out := escapeText(s, "a [[b]] c")
	assert.Contains(t, out, "<nowiki>")
}

func TestEscapeTextFencesUnconditionalTemplateBraces(t *testing.T) {
	s := newTestState()
	out := escapeText(s, "before {{template}} after")
	assert.Contains(t, out, "<nowiki>")
}

func TestEscapeTextFencesSignatureRun(t *testing.T) {
	s := newTestState()
	out := escapeText(s, "sign here ~~~~")
	assert.Contains(t, out, "<nowiki>")
}

func TestEscapeTextFencesLeadingSpacePre(t *testing.T) {
	s := newTestState()
	s.OnStartOfLine = true
	out := escapeText(s, " hello")
	assert.Contains(t, out, "<nowiki>")
}

func TestEscapeTextAllowsMidlineHyphenRun(t *testing.T) {
	s := newTestState()
	out := escapeText(s, "before ---- after")
	assert.Equal(t, "before ---- after", out, "a mid-line run of dashes is not an unconditional fence; only a start-of-line hr triggers via the tokenizer pass")
}

func TestEscapeTextExemptsBareURL(t *testing.T) {
	s := newTestState()
	out := escapeText(s, "see https://example.com/x for details")
	assert.Equal(t, "see https://example.com/x for details", out)
}

func TestContextualFenceWikilinkPipe(t *testing.T) {
	s := newTestState()
	s.pushWteContext("wikilink", &dparsoid.DataParsoid{})
	out := escapeText(s, "a|b")
	s.popWteContext()
	assert.Equal(t, "<nowiki>a|b</nowiki>", out)
}

func TestContextualFenceHeadingPrefix(t *testing.T) {
	s := newTestState()
	s.pushWteContext("heading", &dparsoid.DataParsoid{})
	out := escapeText(s, "=Not a heading=")
	s.popWteContext()
	assert.Equal(t, "<nowiki/>=Not a heading=", out)
}

func TestContextualFenceListItemLeadingBullet(t *testing.T) {
	s := newTestState()
	s.pushWteContext("list-item", &dparsoid.DataParsoid{})
	out := escapeText(s, "*looks like a bullet")
	s.popWteContext()
	assert.Equal(t, "<nowiki/>*looks like a bullet", out)
}

func TestNowikiEncodePreservesTrailingNewline(t *testing.T) {
	out := nowikiEncode("text\n")
	assert.Equal(t, "<nowiki>text</nowiki>\n", out)
}

func TestNowikiEncodeEscapesLiteralNowikiTag(t *testing.T) {
	out := nowikiEncode("</nowiki>")
	assert.Equal(t, "<nowiki>&lt;/nowiki&gt;</nowiki>", out)
}
