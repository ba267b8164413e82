package wts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func serializeHTMLWithSrc(t *testing.T, fragment, src string) string {
	t.Helper()
	doc, err := html.Parse(strings.NewReader("<html><body>" + fragment + "</body></html>"))
	require.NoError(t, err)

	var sb strings.Builder
	opts := Options{Env: Env{Page: Page{Src: &src}}}
	err = Serialize(doc, opts, func(chunk string, _ interface{}) {
		sb.WriteString(chunk)
	}, nil)
	require.NoError(t, err)
	return sb.String()
}

// TestSerializeSplicesRecoveredSeparator exercises the DSR-based splice
// succeeding: the inter-paragraph gap is pure whitespace, so it is taken
// verbatim from src rather than synthesized by the paragraph handler.
func TestSerializeSplicesRecoveredSeparator(t *testing.T) {
	src := "a\n\nb"
	out := serializeHTMLWithSrc(t,
		`<p data-parsoid='{"dsr":[0,1,0,0]}'>a</p><p data-parsoid='{"dsr":[3,4,0,0]}'>b</p>`,
		src)
	require.Equal(t, "a\n\nb", out)
}

// TestSerializeRejectsAnomalousSeparator exercises the validation regex's
// rejection path: the recorded gap between the two headings is literal
// text, not whitespace/comments, so the splice is abandoned and the
// heading handler's own newline is emitted instead of corrupting the
// output with unrelated source text.
func TestSerializeRejectsAnomalousSeparator(t *testing.T) {
	src := "==A==junk==B=="
	out := serializeHTMLWithSrc(t,
		`<h2 data-parsoid='{"dsr":[0,5,2,2]}'>A</h2><h2 data-parsoid='{"dsr":[9,14,2,2]}'>B</h2>`,
		src)
	require.Equal(t, "==A==\n==B==\n", out)
}
