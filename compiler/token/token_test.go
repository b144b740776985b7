package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableIndexedByKind(t *testing.T) {
	for i, e := range table {
		require.Equal(t, Kind(i), e.Kind, "entry %v", e.Desc)
	}
}

func TestLookup(t *testing.T) {
	k, ok := Lookup("ORDAIN")
	assert.True(t, ok)
	assert.Equal(t, Ordain, k)

	k, ok = Lookup("INTEGER")
	assert.True(t, ok)
	assert.Equal(t, IntegerType, k)

	_, ok = Lookup("ordain")
	assert.False(t, ok, "lookup expects upper-cased spelling")

	_, ok = Lookup("COMMA")
	assert.False(t, ok, "punctuation is not reserved")

	_, ok = Lookup("IDENTIFIER")
	assert.False(t, ok)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "LEFTARROW", Describe(LeftArrow))
	assert.Equal(t, "INTEGER", Describe(Int))
	assert.Equal(t, "???????", Describe(Kind(-1)))
	assert.Equal(t, "???????", Describe(numKinds))
}
