package wavelet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessAbracadabra(t *testing.T) {
	for _, s := range []string{"abracadabra", "yabadabadoy", "tomorrow and tomorrow and tomorrow"} {
		tr := New([]byte(s))
		for i := 0; i < len(s); i++ {
			assert.Equal(t, s[i], tr.Access(i), "s=%q i=%d", s, i)
		}
	}
}

func TestSelectIsRankInverse(t *testing.T) {
	for _, s := range []string{"abracadabra", "yabadabadoo", "aaaaaaa"} {
		tr := New([]byte(s))
		for i := 0; i < len(s); i++ {
			c := s[i]
			got, ok := tr.Select(c, tr.Rank(c, i))
			require.True(t, ok, "s=%q i=%d c=%q", s, i, c)
			assert.Equal(t, i, got)
		}
	}
}

func TestRankAbracadabra(t *testing.T) {
	s := "abracadabra"
	tr := New([]byte(s))
	want := []int{1, 1, 1, 2, 1, 3, 1, 4, 2, 2, 5}
	for i, c := range []byte(s) {
		assert.Equal(t, want[i], tr.Rank(c, i), "i=%d", i)
	}
}

func TestRankYabadabadoy(t *testing.T) {
	s := "yabadabadoy"
	tr := New([]byte(s))
	want := []int{1, 1, 1, 2, 1, 3, 2, 4, 2, 1, 2}
	for i, c := range []byte(s) {
		assert.Equal(t, want[i], tr.Rank(c, i), "i=%d", i)
	}
}

func TestRankSingleSymbol(t *testing.T) {
	s := "aaaaa"
	tr := New([]byte(s))
	want := []int{1, 2, 3, 4, 5}
	for i, c := range []byte(s) {
		assert.Equal(t, want[i], tr.Rank(c, i), "i=%d", i)
	}
	assert.Equal(t, 5, tr.Rank('a', 4))
	got, ok := tr.Select('a', 3)
	require.True(t, ok)
	assert.Equal(t, 2, got)
	assert.Equal(t, byte('a'), tr.Access(0))
}

func TestRankHardCases(t *testing.T) {
	s := "yabadabadooy"
	tr := New([]byte(s))

	cases := []struct {
		c    byte
		want []int
	}{
		{'a', []int{0, 1, 1, 2, 2, 3, 3, 4, 4, 4, 4, 4}},
		{'b', []int{0, 0, 1, 1, 1, 1, 2, 2, 2, 2, 2, 2}},
		{'d', []int{0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2}},
		{'o', []int{0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 2, 2}},
		{'y', []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 2}},
	}
	for _, tc := range cases {
		for i := 0; i < len(s); i++ {
			assert.Equal(t, tc.want[i], tr.Rank(tc.c, i), "c=%q i=%d", tc.c, i)
		}
	}
}

func TestScenarioAbracadabraSelectAndAccess(t *testing.T) {
	s := "abracadabra"
	tr := New([]byte(s))
	got, ok := tr.Select('r', 2)
	require.True(t, ok)
	assert.Equal(t, 9, got)
	assert.Equal(t, byte('a'), tr.Access(7))
}

func TestCountChars(t *testing.T) {
	assert.Equal(t, 8, countDistinct([]byte("0167154263")))
}

func TestCharTable(t *testing.T) {
	ct := NewCharTable([]byte("0167154263"))
	for i, c := range []byte{'0', '1', '2', '3', '4', '5', '6', '7'} {
		assert.Equal(t, i, ct.Code(c))
	}

	assert.True(t, ct.Bit(0, '5'))
	assert.False(t, ct.Bit(1, '5'))
	assert.True(t, ct.Bit(2, '5'))

	assert.Equal(t, 7, ct.Prefix(3, '7'))
	assert.Equal(t, 3, ct.Prefix(2, '7'))
	assert.Equal(t, 1, ct.Prefix(1, '7'))

	assert.Equal(t, 0, ct.Prefix(3, '0'))
	assert.Equal(t, 0, ct.Prefix(2, '0'))
	assert.Equal(t, 0, ct.Prefix(1, '0'))

	ct = NewCharTable([]byte("tcga"))
	assert.Equal(t, 0, ct.Code('a'))
	assert.Equal(t, 1, ct.Code('c'))
	assert.Equal(t, 2, ct.Code('g'))
	assert.Equal(t, 3, ct.Code('t'))

	assert.False(t, ct.Bit(0, 'a'))
	assert.False(t, ct.Bit(1, 'a'))
	assert.False(t, ct.Bit(0, 'c'))
	assert.True(t, ct.Bit(1, 'c'))
	assert.True(t, ct.Bit(0, 'g'))
	assert.False(t, ct.Bit(1, 'g'))
	assert.True(t, ct.Bit(0, 't'))
	assert.True(t, ct.Bit(1, 't'))
}

func TestBuilderHistogramAndInitBV(t *testing.T) {
	s := "0167154263"
	b := NewBuilder([]byte(s))
	assert.Equal(t, 8, 1<<uint(b.width))
	b.initHist()
	assert.Equal(t, uint32(1), b.hist.GetInt(b.charTable.Code('0')))

	b2 := NewBuilder([]byte("dccbbbaaaa"))
	b2.initHist()
	assert.Equal(t, uint32(4), b2.hist.GetInt(b2.charTable.Code('a')))
	assert.Equal(t, uint32(3), b2.hist.GetInt(b2.charTable.Code('b')))
	assert.Equal(t, uint32(2), b2.hist.GetInt(b2.charTable.Code('c')))
	assert.Equal(t, uint32(1), b2.hist.GetInt(b2.charTable.Code('d')))
}

func TestBuildLevelsMatchExpectedBits(t *testing.T) {
	s := "0167154263"
	b := NewBuilder([]byte(s))
	b.Build()

	bv0 := []bool{false, false, true, true, false, true, true, false, true, false}
	assert.Equal(t, bv0, b.bv[0].ToBoolSlice())

	bv1 := []bool{false, false, false, true, true, true, true, false, false, true}
	assert.Equal(t, bv1, b.bv[1].ToBoolSlice())

	bv2 := []bool{false, true, true, false, true, true, false, false, true, false}
	assert.Equal(t, bv2, b.bv[2].ToBoolSlice())
}

func TestNChars(t *testing.T) {
	tr := New([]byte("abracadabra"))
	assert.Equal(t, 5, tr.NChars())
}
