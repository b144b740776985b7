package reader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderPositions(t *testing.T) {
	r := New([]byte("ab\n\tc"))

	c := r.Peek(0)
	assert.Equal(t, Char{C: 'a', Line: 1, Col: 1}, c)

	c = r.Next()
	assert.Equal(t, Char{C: 'b', Line: 1, Col: 2}, c)

	c = r.Next()
	assert.Equal(t, EOL, c.C)
	assert.Equal(t, 1, c.Line)

	c = r.Next()
	assert.Equal(t, Char{C: TAB, Line: 2, Col: 1}, c)

	c = r.Next()
	assert.Equal(t, Char{C: 'c', Line: 2, Col: 2}, c)

	c = r.Next()
	assert.Equal(t, EOL, c.C)

	for i := 0; i < 3; i++ {
		c = r.Next()
		assert.True(t, c.End)
	}
}

func TestReaderCallbacksOncePerLine(t *testing.T) {
	r := New([]byte("first\r\nsecond\n"))

	var lines []string

	r.AddCallback(func(n int, text string) {
		require.Equal(t, len(lines)+1, n)
		lines = append(lines, text)
	})

	assert.Equal(t, byte('f'), r.Peek(0).C)
	assert.Equal(t, []string{"first"}, lines)

	// lookahead across the line end loads the next line
	assert.Equal(t, byte('s'), r.Peek(6).C)
	assert.Equal(t, []string{"first", "second"}, lines)

	for !r.Peek(0).End {
		r.Next()
	}

	assert.Equal(t, []string{"first", "second"}, lines)
}

func TestReaderEmpty(t *testing.T) {
	r := New(nil)

	assert.Equal(t, Char{Line: 1, Col: 1, End: true}, r.Peek(0))
	assert.True(t, r.Peek(3).End)
	assert.True(t, r.Next().End)
}

func TestReaderNulByte(t *testing.T) {
	r := New([]byte("a\x00b"))

	assert.Equal(t, Char{C: 0, Line: 1, Col: 2}, r.Next())
	assert.Equal(t, Char{C: 'b', Line: 1, Col: 3}, r.Next())
	assert.Equal(t, EOL, r.Next().C)
	assert.True(t, r.Next().End)
}
