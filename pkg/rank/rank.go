// Package rank implements a two-level rank/select index over an immutable
// bitvec.BitVec: O(1) rank via precomputed super-block and block partial
// sums, O(log n) select via binary search over rank.
package rank

import (
	"github.com/xflash-panda/succinct/internal/mathutil"
	"github.com/xflash-panda/succinct/pkg/bitvec"
	"github.com/xflash-panda/succinct/pkg/fault"
)

// Support owns an immutable bitvec.BitVec of length n plus two auxiliary
// bitvec.IntVec index tables: rs, the cumulative 1-count per super-block of
// s bits, and rb, the cumulative 1-count per block of b bits (reset at
// super-block boundaries).
type Support struct {
	bv   *bitvec.BitVec
	s, b int
	rs   *bitvec.IntVec
	rb   *bitvec.IntVec
}

// New builds a rank/select index over bv. bv is owned by the returned
// Support from this point on and must not be mutated afterward.
func New(bv *bitvec.BitVec) *Support {
	n := bv.Len()
	logN := mathutil.Clog(n)
	s := mathutil.Max(mathutil.CdivBy2(logN*logN), 1)
	b := mathutil.Max(mathutil.CdivBy2(logN), 1)
	s = (s / b) * b // round s down to a multiple of b

	return &Support{
		bv: bv,
		s:  s,
		b:  b,
		rs: buildSuperBlocks(bv, s),
		rb: buildBlocks(bv, s, b),
	}
}

// FromParts reconstructs a Support directly from its serialized fields.
// Used by the persist package when reloading.
func FromParts(bv *bitvec.BitVec, s, b int, rs, rb *bitvec.IntVec) *Support {
	return &Support{bv: bv, s: s, b: b, rs: rs, rb: rb}
}

func buildSuperBlocks(bv *bitvec.BitVec, s int) *bitvec.IntVec {
	n := bv.Len()
	nBlocks := mathutil.Cdiv(n, s)
	w := mathutil.Max(mathutil.Clog(n), 1)
	rs := bitvec.NewIntVec(w, nBlocks)

	count := 0
	for i := 0; i < nBlocks-1; i++ {
		countedBits := 0
		for countedBits < s {
			bitsToCount := mathutil.Min(32, s-countedBits)
			count += bitvec.PopcountRange(bv, i*s+countedBits, bitsToCount)
			countedBits += bitsToCount
		}
		rs.SetInt(i+1, uint32(count))
	}
	return rs
}

func buildBlocks(bv *bitvec.BitVec, s, b int) *bitvec.IntVec {
	n := bv.Len()
	nBBlocks := mathutil.Cdiv(n, b)
	w := mathutil.Max(mathutil.Clog(s), 1)
	rb := bitvec.NewIntVec(w, nBBlocks)

	countedBits := 0
	count := 0
	for i := 0; i < nBBlocks-1; i++ {
		count += bitvec.PopcountRange(bv, i*b, b)
		countedBits += b
		if countedBits%s == 0 {
			count = 0
		}
		rb.SetInt(i+1, uint32(count))
	}
	return rb
}

// Len returns n, the length of the underlying bit vector.
func (sup *Support) Len() int {
	return sup.bv.Len()
}

// Get returns the underlying bit at position i.
func (sup *Support) Get(i int) bool {
	return sup.bv.Get(i)
}

// S returns the super-block size in bits.
func (sup *Support) S() int { return sup.s }

// B returns the block size in bits.
func (sup *Support) B() int { return sup.b }

// RS exposes the super-block partial-sum table. Used by the persist
// package.
func (sup *Support) RS() *bitvec.IntVec { return sup.rs }

// RB exposes the block partial-sum table. Used by the persist package.
func (sup *Support) RB() *bitvec.IntVec { return sup.rb }

// BitVec exposes the backing bit vector. Used by the persist package.
func (sup *Support) BitVec() *bitvec.BitVec { return sup.bv }

// Rank1 returns the number of 1 bits in bv[0, i], i.e. popcount up to and
// including position i.
func (sup *Support) Rank1(i int) int {
	if i < 0 || i >= sup.Len() {
		fault.Raisef("Support.Rank1", "index %d out of range [0, %d)", i, sup.Len())
	}
	sIdx := i / sup.s
	rS := sup.rs.GetInt(sIdx)

	bIdx := i / sup.b
	rB := sup.rb.GetInt(bIdx)

	pIdx := bIdx * sup.b
	width := (i % sup.b) + 1
	rP := bitvec.PopcountRange(sup.bv, pIdx, width)

	return int(rS) + int(rB) + rP
}

// Rank0 returns the number of 0 bits in bv[0, i].
func (sup *Support) Rank0(i int) int {
	return i + 1 - sup.Rank1(i)
}

// Rank dispatches to Rank1 or Rank0 depending on bit.
func (sup *Support) Rank(bit bool, i int) int {
	if bit {
		return sup.Rank1(i)
	}
	return sup.Rank0(i)
}

// RelRank returns the count of bit-valued positions in bv[l, l+i], the
// right endpoint inclusive. When l is 0 this is just Rank(bit, i).
func (sup *Support) RelRank(bit bool, l, i int) int {
	if l == 0 {
		return sup.Rank(bit, i)
	}
	return sup.Rank(bit, l+i) - sup.Rank(bit, l-1)
}

// Select1 returns the position of the r-th (1-indexed) 1 bit, or (0, false)
// if fewer than r 1 bits exist.
func (sup *Support) Select1(r int) (int, bool) {
	return sup.select1InRange(r, 0, sup.Len())
}

// Select0 returns the position of the r-th (1-indexed) 0 bit, or (0, false)
// if fewer than r 0 bits exist.
func (sup *Support) Select0(r int) (int, bool) {
	return sup.select0InRange(r, 0, sup.Len())
}

// Select dispatches to Select1 or Select0 depending on bit.
func (sup *Support) Select(bit bool, r int) (int, bool) {
	if bit {
		return sup.Select1(r)
	}
	return sup.Select0(r)
}

func (sup *Support) select1InRange(i, l, r int) (int, bool) {
	for r > l {
		p := l + (r-l)/2
		pRank := sup.Rank1(p)
		switch {
		case pRank == i && sup.bv.Get(p):
			return p, true
		case pRank < i:
			l = p + 1
		default:
			r = p
		}
	}
	return 0, false
}

func (sup *Support) select0InRange(i, l, r int) (int, bool) {
	for r > l {
		p := l + (r-l)/2
		pRank := sup.Rank0(p)
		switch {
		case pRank == i && !sup.bv.Get(p):
			return p, true
		case pRank < i:
			l = p + 1
		default:
			r = p
		}
	}
	return 0, false
}

// RelSelect returns select(bit, rank(bit, l-1) + r) - l, or (0, false) if
// the underlying select does not find an r-th occurrence.
func (sup *Support) RelSelect(bit bool, l, r int) (int, bool) {
	if l == 0 {
		return sup.Select(bit, r)
	}
	v, ok := sup.Select(bit, sup.Rank(bit, l-1)+r)
	if !ok {
		return 0, false
	}
	return v - l, true
}

// SizeOf reports the footprint of the Support (and everything it owns) in
// bytes.
func (sup *Support) SizeOf() int {
	size := 40 // s, b, pointers
	size += sup.bv.SizeOf()
	size += sup.rs.SizeOf()
	size += sup.rb.SizeOf()
	return size
}

// Overhead reports the same footprint in bits.
func (sup *Support) Overhead() int {
	return sup.SizeOf() * 8
}
