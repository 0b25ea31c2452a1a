package bitvec

import "github.com/xflash-panda/succinct/pkg/fault"

// IntVec is a fixed-length sequence of n unsigned integers, each exactly w
// bits wide, layered on a BitVec: element i occupies bits [i*w, (i+1)*w).
type IntVec struct {
	wordSize int
	bv       *BitVec
	n        int
}

// NewIntVec returns a zero-filled IntVec of n values, each w bits wide.
// w must be at least 1.
func NewIntVec(w, n int) *IntVec {
	if w <= 0 {
		fault.Raisef("IntVec.New", "word size %d must be positive", w)
	}
	return &IntVec{
		wordSize: w,
		bv:       New(w * n),
		n:        n,
	}
}

// IntVecFromBitVec wraps an existing BitVec of exactly w*n bits as an
// IntVec. Used by the persist package when reloading.
func IntVecFromBitVec(w, n int, bv *BitVec) *IntVec {
	if bv.Len() != w*n {
		fault.Raisef("IntVec.FromBitVec", "backing bit vector has length %d, want %d", bv.Len(), w*n)
	}
	return &IntVec{wordSize: w, bv: bv, n: n}
}

// GetInt returns the value at index i.
func (iv *IntVec) GetInt(i int) uint32 {
	if i >= iv.n {
		fault.Raisef("IntVec.GetInt", "index %d exceeds length %d", i, iv.n)
	}
	return iv.bv.GetInt(i*iv.wordSize, iv.wordSize)
}

// SetInt writes v at index i.
func (iv *IntVec) SetInt(i int, v uint32) {
	if i >= iv.n {
		fault.Raisef("IntVec.SetInt", "index %d exceeds length %d", i, iv.n)
	}
	iv.bv.SetInt(i*iv.wordSize, v, iv.wordSize)
}

// Len returns n, the number of elements.
func (iv *IntVec) Len() int {
	return iv.n
}

// WordSize returns w, the bit width of each element.
func (iv *IntVec) WordSize() int {
	return iv.wordSize
}

// BitVec exposes the backing bit vector. Used by the persist package.
func (iv *IntVec) BitVec() *BitVec {
	return iv.bv
}

// SizeOf reports the footprint of the IntVec in bytes.
func (iv *IntVec) SizeOf() int {
	return 24 + iv.bv.SizeOf()
}

// FromSlice packs elems into a new IntVec of word size w.
func FromSlice(elems []uint32, w int) *IntVec {
	iv := NewIntVec(w, len(elems))
	for i, e := range elems {
		iv.SetInt(i, e)
	}
	return iv
}

// ToSlice unpacks the IntVec into a plain []uint32.
func (iv *IntVec) ToSlice() []uint32 {
	out := make([]uint32, iv.n)
	for i := range out {
		out[i] = iv.GetInt(i)
	}
	return out
}
