package selective

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/cscott/nell-parsoid/wts"
)

func parseBody(t *testing.T, fragment string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader("<html><body>" + fragment + "</body></html>"))
	require.NoError(t, err)
	var body *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Data == "body" && n.Type == html.ElementNode {
			body = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if body != nil {
				return
			}
			walk(c)
		}
	}
	walk(doc)
	return body
}

func TestChangedRangeIdentical(t *testing.T) {
	a := parseBody(t, "<p>one</p><p>two</p>")
	b := parseBody(t, "<p>one</p><p>two</p>")
	require.Nil(t, ChangedRange(a, b))
}

func TestChangedRangeSingleEdit(t *testing.T) {
	a := parseBody(t, "<p>one</p><p>two</p><p>three</p>")
	b := parseBody(t, "<p>one</p><p>TWO</p><p>three</p>")
	r := ChangedRange(a, b)
	require.NotNil(t, r)
	require.Equal(t, 1, r.Start)
	require.Equal(t, 2, r.End)
}

func TestChangedRangeAppend(t *testing.T) {
	a := parseBody(t, "<p>one</p>")
	b := parseBody(t, "<p>one</p><p>two</p>")
	r := ChangedRange(a, b)
	require.NotNil(t, r)
	require.Equal(t, 1, r.Start)
	require.Equal(t, 2, r.End)
}

func TestSerializeChangedOnlyEmitsEditedRange(t *testing.T) {
	a := parseBody(t, "<p>one</p><p>two</p><p>three</p>")
	b := parseBody(t, "<p>one</p><p>TWO</p><p>three</p>")

	var chunks []string
	var infos []interface{}
	err := SerializeChanged(a, b, wts.Options{}, func(chunk string, info interface{}) {
		chunks = append(chunks, chunk)
		infos = append(infos, info)
	}, nil)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)
	for _, info := range infos {
		r, ok := info.(*Range)
		require.True(t, ok)
		require.Equal(t, 1, r.Start)
		require.Equal(t, 2, r.End)
	}
	require.Contains(t, strings.Join(chunks, ""), "TWO")
}

func TestSerializeChangedNoopWhenIdentical(t *testing.T) {
	a := parseBody(t, "<p>one</p>")
	b := parseBody(t, "<p>one</p>")

	ended := false
	err := SerializeChanged(a, b, wts.Options{}, func(string, interface{}) {
		t.Fatal("no chunk expected")
	}, func() { ended = true })
	require.NoError(t, err)
	require.True(t, ended)
}
