package bitvec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntVecFuzzGetSet(t *testing.T) {
	v := NewIntVec(7, 100)
	for i := 0; i < 100; i++ {
		v.SetInt(i, uint32(i%128))
	}
	for i := 0; i < 100; i++ {
		assert.Equal(t, uint32(i%128), v.GetInt(i))
	}
}

func TestIntVecFromSliceToSlice(t *testing.T) {
	elems := []uint32{1, 2, 3, 4, 5, 6, 7}
	iv := FromSlice(elems, 3)
	require.Equal(t, len(elems), iv.Len())
	assert.Equal(t, elems, iv.ToSlice())
}

func TestIntVecWordSize(t *testing.T) {
	iv := NewIntVec(5, 10)
	assert.Equal(t, 5, iv.WordSize())
	assert.Equal(t, 10, iv.Len())
	assert.Equal(t, 50, iv.BitVec().Len())
}
