package set

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitmap(t *testing.T) {
	s := MakeBitmap(0)

	assert.Zero(t, s.Size())
	assert.False(t, s.IsSet(-1))

	for _, i := range []int{3, 0, 64, 200} {
		s.Set(i)
	}

	assert.True(t, s.IsSet(0))
	assert.True(t, s.IsSet(200))
	assert.False(t, s.IsSet(1))
	assert.False(t, s.IsSet(1000))
	assert.Equal(t, 4, s.Size())

	var got []int
	s.Range(func(i int) bool {
		got = append(got, i)
		return true
	})

	assert.Equal(t, []int{0, 3, 64, 200}, got)

	got = got[:0]
	s.Range(func(i int) bool {
		got = append(got, i)
		return len(got) < 2
	})

	assert.Equal(t, []int{0, 3}, got)
}
