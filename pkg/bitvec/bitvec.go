// Package bitvec implements a fixed-length, bit-packed array of bits and, on
// top of it, a fixed-length array of fixed-width unsigned integers. Both are
// immutable in length once constructed: callers grow a BitVec by building a
// new, larger one, the same way the rank/select and wavelet-tree layers do.
package bitvec

import (
	"math/bits"

	"github.com/xflash-panda/succinct/pkg/fault"
)

const wordBits = 32

// BitVec is a sequence of n bits, indexed [0, n), stored MSB-first within
// 32-bit words: bit i lives in word i/32 at bit position 31-(i%32).
type BitVec struct {
	n     int
	words []uint32
}

// New returns an all-zero BitVec of length n.
func New(n int) *BitVec {
	return &BitVec{
		n:     n,
		words: make([]uint32, cdiv(n, wordBits)),
	}
}

func cdiv(a, b int) int {
	if a%b == 0 {
		return a / b
	}
	return a/b + 1
}

// Len returns n, the number of addressable bits.
func (v *BitVec) Len() int {
	return v.n
}

// Get returns the bit at position i.
func (v *BitVec) Get(i int) bool {
	return v.GetInt(i, 1) == 1
}

// Set writes the bit at position i.
func (v *BitVec) Set(i int, val bool) {
	if val {
		v.SetInt(i, 1, 1)
	} else {
		v.SetInt(i, 0, 1)
	}
}

// GetInt reads bits [i, i+w) as an MSB-first unsigned integer. w must be in
// [1, 32] and i+w must not exceed Len().
func (v *BitVec) GetInt(i, w int) uint32 {
	if i+w > v.n {
		fault.Raisef("BitVec.GetInt", "range [%d, %d) exceeds length %d", i, i+w, v.n)
	}
	if w <= 0 || w > wordBits {
		fault.Raisef("BitVec.GetInt", "width %d out of range [1, 32]", w)
	}

	bi := i / wordBits
	lo := i % wordBits
	hi := (64 - lo - w) % wordBits

	if lo+w <= wordBits {
		block := v.words[bi]
		mask := getMask(lo, w)
		block &= mask
		return block >> uint(hi)
	}

	lblock := uint64(v.words[bi])
	rblock := uint64(v.words[bi+1])
	block := (lblock << wordBits) | rblock
	block <<= uint(lo)
	block >>= uint(lo)
	block >>= uint(hi)
	return uint32(block)
}

// SetInt writes val into bits [i, i+w). val must fit in w bits and i+w must
// not exceed Len().
func (v *BitVec) SetInt(i int, val uint32, w int) {
	if i+w > v.n {
		fault.Raisef("BitVec.SetInt", "range [%d, %d) exceeds length %d", i, i+w, v.n)
	}
	if !valFits(val, w) {
		fault.Raisef("BitVec.SetInt", "value %d does not fit in %d bits", val, w)
	}

	bi := i / wordBits
	lo := i % wordBits
	hi := (64 - lo - w) % wordBits

	if lo+w <= wordBits {
		block := v.words[bi]
		mask := getMask(lo, w)
		block &^= mask
		block |= val << uint(hi)
		v.words[bi] = block
		return
	}

	lmask := getMask(lo, wordBits-lo)
	lblock := v.words[bi]
	lblock &^= lmask
	lblock |= val >> uint(wordBits-hi)
	v.words[bi] = lblock

	rmask := getMask(0, wordBits-hi)
	rblock := v.words[bi+1]
	rblock &^= rmask
	rblock |= val << uint(hi)
	v.words[bi+1] = rblock
}

func valFits(val uint32, w int) bool {
	return (uint64(val) >> uint(w)) == 0
}

// getMask returns a w=repeats-bit-wide run of ones positioned so that, after
// the caller aligns it, it covers bits [i, i+repeats) of a 32-bit word.
func getMask(i, repeats int) uint32 {
	if repeats == 0 {
		return 0
	}
	if repeats == wordBits {
		return ^uint32(0)
	}
	mask := ^uint32(0)
	mask <<= uint(wordBits - repeats)
	mask >>= uint(i)
	return mask
}

// SizeOf reports the footprint of the bit array in bytes, plus fixed
// struct overhead.
func (v *BitVec) SizeOf() int {
	return 24 + len(v.words)*4 // n, words header, words backing array
}

// ToBoolSlice unpacks the BitVec into a plain []bool, mostly useful in
// tests that compare against a hand-written bit pattern.
func (v *BitVec) ToBoolSlice() []bool {
	out := make([]bool, v.n)
	for i := range out {
		out[i] = v.Get(i)
	}
	return out
}

// FromPaddedBytes builds a BitVec of 8*len(data)-pad bits from data, treating
// each byte MSB-first and discarding the final pad low bits of the last
// byte. pad must be at most 8.
func FromPaddedBytes(data []byte, pad int) *BitVec {
	if pad > 8 {
		fault.Raisef("BitVec.FromPaddedBytes", "pad %d exceeds 8", pad)
	}
	nBytes := len(data)
	bv := New(nBytes*8 - pad)
	if nBytes == 0 {
		return bv
	}
	last := nBytes - 1
	for i := 0; i < last; i++ {
		bv.SetInt(i*8, uint32(data[i]), 8)
	}
	bv.SetInt(last*8, uint32(data[last])>>uint(pad), 8-pad)
	return bv
}

// FromBytes builds a BitVec from an unpadded byte slice (pad=0).
func FromBytes(data []byte) *BitVec {
	return FromPaddedBytes(data, 0)
}

// Words exposes the raw backing words, MSB-first per word. Used by the
// persist package; not meant for bit-twiddling by other callers.
func (v *BitVec) Words() []uint32 {
	return v.words
}

// WordsFrom reconstructs a BitVec of length n from its raw words, as
// produced by Words. Used by the persist package when reloading.
func WordsFrom(n int, words []uint32) *BitVec {
	want := cdiv(n, wordBits)
	if len(words) != want {
		fault.Raisef("BitVec.WordsFrom", "expected %d words for length %d, got %d", want, n, len(words))
	}
	return &BitVec{n: n, words: words}
}

// popcountRange returns the number of set bits in bits [i, i+w), w <= 32.
func popcountRange(v *BitVec, i, w int) int {
	if w == 0 {
		return 0
	}
	return bits.OnesCount32(v.GetInt(i, w))
}

// PopcountRange is the exported form of popcountRange, used by rank.Support
// during index construction.
func PopcountRange(v *BitVec, i, w int) int {
	return popcountRange(v, i, w)
}
