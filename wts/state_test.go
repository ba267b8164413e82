package wts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCumulativeBulletsNestedLists(t *testing.T) {
	s := newTestState()

	outer := s.pushList("*")
	assert.Equal(t, "*", s.cumulativeBullets())
	outer.LastItemChar = "*"

	inner := s.pushList("#")
	assert.Equal(t, "*#", s.cumulativeBullets())
	inner.LastItemChar = "#"

	s.popList()
	assert.Equal(t, "*", s.cumulativeBullets())

	s.popList()
	assert.Equal(t, "", s.cumulativeBullets())
}

func TestCumulativeBulletsDlUsesLastItemChar(t *testing.T) {
	s := newTestState()
	frame := s.pushList("")
	frame.LastItemChar = ";"
	assert.Equal(t, ";", s.cumulativeBullets())
	frame.LastItemChar = ":"
	assert.Equal(t, ":", s.cumulativeBullets())
}

func TestBufferedSeparatorFlushAndDiscard(t *testing.T) {
	var got []string
	s := newTestState()
	collect := func(chunk string, _ interface{}) { got = append(got, chunk) }
	s.out = collect

	s.bufferSeparatorChunk("\n")
	assert.Empty(t, got, "buffering must not emit until flushed")
	s.flushBufferedSeparator()
	assert.Equal(t, []string{"\n"}, got)

	got = nil
	s.bufferSeparatorChunk("\n")
	s.discardBufferedSeparator()
	s.flushBufferedSeparator()
	assert.Empty(t, got)

	got = nil
	s.emit("text", nil)
	s.bufferSeparatorChunk("\n")
	s.bufferSeparatorChunk("\n")
	s.flushBufferedSeparator()
	assert.Equal(t, []string{"text", "\n"}, got, "a repeated end-of-line request collapses to one newline")
}

func TestEmitTracksStartOfLine(t *testing.T) {
	s := newTestState()
	s.emit("hello", nil)
	assert.False(t, s.OnStartOfLine)
	s.emit("\n", nil)
	assert.True(t, s.OnStartOfLine)
}
