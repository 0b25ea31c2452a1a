package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xflash-panda/succinct/pkg/bitvec"
)

func TestSelect1(t *testing.T) {
	bv := bitvec.FromBytes([]byte{0b01001010})
	sup := New(bv)
	p, ok := sup.Select1(1)
	require.True(t, ok)
	assert.Equal(t, 1, p)
}

func TestSelect0(t *testing.T) {
	bv := bitvec.FromBytes([]byte{0b01001010})
	sup := New(bv)

	p, ok := sup.Select0(1)
	require.True(t, ok)
	assert.Equal(t, 0, p)

	p, ok = sup.Select0(2)
	require.True(t, ok)
	assert.Equal(t, 2, p)
}

func TestSelectAllOnesAllZeros(t *testing.T) {
	bv := bitvec.FromBytes([]byte{0xFF, 0xFF})
	sup := New(bv)
	for i := 0; i < sup.Len(); i++ {
		p, ok := sup.Select1(i + 1)
		require.True(t, ok)
		assert.Equal(t, i, p)

		_, ok = sup.Select0(i + 1)
		assert.False(t, ok)
	}

	bv = bitvec.FromBytes([]byte{0x00, 0x00})
	sup = New(bv)
	for i := 0; i < sup.Len(); i++ {
		p, ok := sup.Select0(i + 1)
		require.True(t, ok)
		assert.Equal(t, i, p)

		_, ok = sup.Select1(i + 1)
		assert.False(t, ok)
	}
}

func TestRankScenarioS1(t *testing.T) {
	bv := bitvec.FromBytes([]byte{0b10010111, 0b01001010})
	sup := New(bv)
	want := []int{1, 1, 1, 2, 2, 3, 4, 5, 5, 6, 6, 6, 7, 7, 8, 8}
	for i := 0; i < sup.Len(); i++ {
		assert.Equal(t, want[i], sup.Rank1(i), "rank1(%d)", i)
	}
}

func TestSelectScenarioS2(t *testing.T) {
	bv := bitvec.FromBytes([]byte{0b10010111, 0b01001010})
	sup := New(bv)

	p, ok := sup.Select1(3)
	require.True(t, ok)
	assert.Equal(t, 5, p)

	p, ok = sup.Select1(8)
	require.True(t, ok)
	assert.Equal(t, 14, p)

	p, ok = sup.Select0(1)
	require.True(t, ok)
	assert.Equal(t, 1, p)

	p, ok = sup.Select0(4)
	require.True(t, ok)
	assert.Equal(t, 8, p)
}

func TestRankAllOnes(t *testing.T) {
	reps := 100
	data := make([]byte, reps)
	for i := range data {
		data[i] = 0xFF
	}
	pad := 7
	bv := bitvec.FromPaddedBytes(data, pad)
	nBits := reps*8 - pad
	require.Equal(t, nBits, bv.Len())

	sup := New(bv)
	for i := 0; i < nBits; i++ {
		assert.Equal(t, i+1, sup.Rank1(i))
	}
}

func TestRankEvens(t *testing.T) {
	reps := 2
	data := make([]byte, reps)
	for i := range data {
		data[i] = ^byte(0b10101010)
	}
	pad := 7
	bv := bitvec.FromPaddedBytes(data, pad)
	nBits := reps*8 - pad
	require.Equal(t, nBits, bv.Len())

	sup := New(bv)
	for i := 0; i < nBits; i++ {
		assert.Equal(t, (i+1)/2, sup.Rank1(i))
	}
}

func TestRankOdds(t *testing.T) {
	reps := 2
	data := make([]byte, reps)
	for i := range data {
		data[i] = ^byte(0b01010101)
	}
	pad := 7
	bv := bitvec.FromPaddedBytes(data, pad)
	nBits := reps*8 - pad
	require.Equal(t, nBits, bv.Len())

	sup := New(bv)
	for i := 0; i < nBits; i++ {
		assert.Equal(t, i/2+1, sup.Rank1(i))
	}
}

func TestRankDegenerate(t *testing.T) {
	data := []byte{0b11000000}

	bv := bitvec.FromPaddedBytes(data, 7)
	sup := New(bv)
	assert.Equal(t, 1, sup.Rank1(0))

	bv = bitvec.FromPaddedBytes(data, 6)
	sup = New(bv)
	assert.Equal(t, 1, sup.Rank1(0))
	assert.Equal(t, 2, sup.Rank1(1))
}

func TestRankConsistency(t *testing.T) {
	data := []byte{0b10010111, 0b01001010, 0b11110000, 0b00001111}
	bv := bitvec.FromBytes(data)
	sup := New(bv)
	for i := 0; i < sup.Len(); i++ {
		assert.Equal(t, i+1, sup.Rank1(i)+sup.Rank0(i))
		assert.GreaterOrEqual(t, sup.Rank1(i), 0)
		assert.LessOrEqual(t, sup.Rank1(i), i+1)
		if i > 0 {
			assert.GreaterOrEqual(t, sup.Rank1(i), sup.Rank1(i-1))
			assert.LessOrEqual(t, sup.Rank1(i), sup.Rank1(i-1)+1)
		}
	}
}

func TestSelectInverse(t *testing.T) {
	data := []byte{0b10010111, 0b01001010, 0b11110000}
	bv := bitvec.FromBytes(data)
	sup := New(bv)
	for p := 0; p < sup.Len(); p++ {
		if sup.Get(p) {
			got, ok := sup.Select1(sup.Rank1(p))
			require.True(t, ok)
			assert.Equal(t, p, got)
		} else {
			got, ok := sup.Select0(sup.Rank0(p))
			require.True(t, ok)
			assert.Equal(t, p, got)
		}
	}
}

func TestRelRankAndRelSelect(t *testing.T) {
	data := []byte{0b10010111, 0b01001010, 0b11110000}
	bv := bitvec.FromBytes(data)
	sup := New(bv)

	// RelRank(bit, 0, i) must match Rank(bit, i).
	for i := 0; i < sup.Len(); i++ {
		assert.Equal(t, sup.Rank(true, i), sup.RelRank(true, 0, i))
	}

	// RelSelect(bit, 0, r) must match Select(bit, r).
	for r := 1; r <= sup.Rank1(sup.Len()-1); r++ {
		want, wantOK := sup.Select1(r)
		got, gotOK := sup.RelSelect(true, 0, r)
		assert.Equal(t, wantOK, gotOK)
		if wantOK {
			assert.Equal(t, want, got)
		}
	}
}
