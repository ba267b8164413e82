package wts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func serializeHTML(t *testing.T, fragment string) string {
	t.Helper()
	doc, err := html.Parse(strings.NewReader("<html><body>" + fragment + "</body></html>"))
	require.NoError(t, err)

	var sb strings.Builder
	opts := Options{Env: Env{}}
	err = Serialize(doc, opts, func(chunk string, _ interface{}) {
		sb.WriteString(chunk)
	}, nil)
	require.NoError(t, err)
	return sb.String()
}

func TestSerializeHeading(t *testing.T) {
	out := serializeHTML(t, "<h2>Title</h2>")
	require.Equal(t, "==Title==\n", out)
}

func TestSerializeEmptyHeadingFence(t *testing.T) {
	out := serializeHTML(t, "<h2></h2>")
	require.Equal(t, "==<nowiki/>==\n", out)
}

func TestSerializeBoldItalic(t *testing.T) {
	out := serializeHTML(t, "<b>bold</b> and <i>italic</i>")
	require.Equal(t, "'''bold''' and ''italic''", out)
}

func TestSerializeNestedList(t *testing.T) {
	out := serializeHTML(t, "<ul><li>a<ul><li>b</li></ul></li><li>c</li></ul>")
	require.Equal(t, "*a\n**b\n*c\n", out)
}

func TestSerializeHorizontalRule(t *testing.T) {
	out := serializeHTML(t, "<hr/>")
	require.Equal(t, "----\n", out)
}

func TestSerializeWikilinkSimple(t *testing.T) {
	out := serializeHTML(t, `<a rel="mw:WikiLink" href="./Main_Page">Main Page</a>`)
	require.Equal(t, "[[Main Page]]", out)
}

func TestSerializeWikilinkPiped(t *testing.T) {
	out := serializeHTML(t, `<a rel="mw:WikiLink" href="./Target">display text</a>`)
	require.Equal(t, "[[Target|display text]]", out)
}

func TestSerializeExternalLink(t *testing.T) {
	out := serializeHTML(t, `<a rel="mw:ExtLink" href="http://example.com">example</a>`)
	require.Equal(t, "[http://example.com example]", out)
}

func TestSerializeWikilinkTailRecovery(t *testing.T) {
	out := serializeHTML(t, `<a rel="mw:WikiLink" href="./Foo" data-parsoid='{"tail":"s"}'>bars</a>`)
	require.Equal(t, "[[Foo|bar]]s", out)
}

func TestSerializeCategoryLinkSortKey(t *testing.T) {
	out := serializeHTML(t, `<a rel="mw:PageProp/Category" href="./Category:Foo#Bar">Foo</a>`)
	require.Equal(t, "[[Category:Foo|Bar]]", out)
}

func TestSerializeWikilinkEmptyContentGuard(t *testing.T) {
	out := serializeHTML(t, `<a rel="mw:WikiLink" href="./Target"></a>`)
	require.Equal(t, "[[Target|<nowiki/>]]", out)
}

func TestSerializeWikilinkTailLetterNowikiPatch(t *testing.T) {
	out := serializeHTML(t, `<a rel="mw:WikiLink" href="./Foo">Foo</a>bar`)
	require.Equal(t, "[[Foo]]<nowiki/>bar", out)
}

func TestSerializeIndentPre(t *testing.T) {
	out := serializeHTML(t, "<pre>line1\nline2</pre>")
	require.Equal(t, " line1\n line2\n", out)
}

func TestSerializeFigureSynthesizesOptionsFromDOM(t *testing.T) {
	out := serializeHTML(t, `<figure class="mw-halign-right" typeof="mw:Image/Thumb">`+
		`<img resource="./Cat.jpg" width="220" height="150"/>`+
		`<figcaption>A cat</figcaption></figure>`)
	require.Equal(t, "[[File:Cat.jpg|thumb|220x150px|right|A cat]]", out)
}

func TestSerializeFigureReplaysRecordedOptionList(t *testing.T) {
	out := serializeHTML(t, `<figure data-parsoid='{"optList":[`+
		`{"k":"thumb","v":"thumb"},{"k":"width","v":"220"},{"k":"height","v":"150"},`+
		`{"k":"alt","v":"a cat"},{"k":"caption","v":null}]}'>`+
		`<img resource="./Cat.jpg"/><figcaption>A cat</figcaption></figure>`)
	require.Equal(t, "[[File:Cat.jpg|thumb|220x150px|alt=a cat|A cat]]", out)
}
