// Package wavelet implements a level-packed wavelet tree over 7-bit ASCII
// text: access/rank/select in O(log sigma) time using O(log n) rank/select
// evaluations per level, built with the Fischer-Kurpicz-Noble sequential
// ("pcWT") construction algorithm.
package wavelet

import (
	"github.com/xflash-panda/succinct/internal/mathutil"
	"github.com/xflash-panda/succinct/pkg/bitvec"
	"github.com/xflash-panda/succinct/pkg/fault"
	"github.com/xflash-panda/succinct/pkg/rank"
)

// Tree is an immutable, level-packed wavelet tree: one rank.Support-wrapped
// bit vector per level, plus the CharTable used to translate between
// characters and their dense codes.
type Tree struct {
	n         int
	levels    []*rank.Support
	charTable *CharTable
}

// Builder accumulates the per-level bit vectors during construction; call
// Build then Finish to obtain an immutable Tree.
type Builder struct {
	s         []byte
	charTable *CharTable
	width     int
	nChars    int
	n         int
	bv        []*bitvec.BitVec
	hist      *bitvec.IntVec
	spos      *bitvec.IntVec
}

// NewBuilder prepares a Builder over s. s must be 7-bit ASCII.
func NewBuilder(s []byte) *Builder {
	n := len(s)
	ct := NewCharTable(s)
	nChars := ct.NChars()
	width := mathutil.Clog(nChars)

	bv := make([]*bitvec.BitVec, width)
	for i := range bv {
		bv[i] = bitvec.New(n)
	}

	// Oversized if width isn't exactly log2(nChars): both tables must hold
	// 2^width entries so every prefix code during folding has a slot.
	slots := 1 << uint(width)
	logN := mathutil.Max(mathutil.Clog(n), 1)

	return &Builder{
		s:         s,
		charTable: ct,
		width:     width,
		nChars:    nChars,
		n:         n,
		bv:        bv,
		hist:      bitvec.NewIntVec(logN, slots),
		spos:      bitvec.NewIntVec(logN, slots),
	}
}

func (b *Builder) initHist() {
	for _, c := range b.s {
		ci := b.charTable.Code(c)
		b.hist.SetInt(ci, b.hist.GetInt(ci)+1)
	}
}

func (b *Builder) initBV() {
	if b.width == 0 {
		return
	}
	for i, c := range b.s {
		b.bv[0].Set(i, b.charTable.Bit(0, c))
	}
}

// Build runs the pcWT construction algorithm, filling in every level's bit
// vector. Returns the Builder for chaining into Finish.
func (b *Builder) Build() *Builder {
	if b.nChars <= 1 {
		return b
	}

	b.initHist()
	b.initBV()

	for i := 0; i < b.width-1; i++ {
		li := b.width - 1 - i

		// Fold the histogram down one level.
		for j := 0; j < (1 << uint(li)); j++ {
			h2j1 := b.hist.GetInt(2*j + 1)
			h2j := b.hist.GetInt(2 * j)
			b.hist.SetInt(j, h2j+h2j1)
		}

		// Prefix-sum into starting positions, clamped so no write targets
		// an index at or beyond n (the last group's tail is never read).
		b.spos.SetInt(0, 0)
		for j := 1; j < (1 << uint(li)); j++ {
			prev := b.spos.GetInt(j - 1)
			h := b.hist.GetInt(j - 1)
			if uint64(prev)+uint64(h) < uint64(b.n) {
				b.spos.SetInt(j, prev+h)
			}
		}

		// Permute characters into bv[li] according to their li-bit prefix.
		for _, c := range b.s {
			prefix := b.charTable.Prefix(li, c)
			pos := b.spos.GetInt(prefix)

			if uint64(pos)+1 < uint64(b.n) {
				b.spos.SetInt(prefix, pos+1)
			}
			b.bv[li].Set(int(pos), b.charTable.Bit(li, c))
		}
	}
	return b
}

// Finish seals the builder's bit vectors behind rank.Support and returns
// the immutable Tree.
func (b *Builder) Finish() *Tree {
	levels := make([]*rank.Support, len(b.bv))
	for i, bv := range b.bv {
		levels[i] = rank.New(bv)
	}
	return &Tree{
		n:         b.n,
		levels:    levels,
		charTable: b.charTable,
	}
}

// New builds and seals a wavelet tree over s in one step. s must be 7-bit
// ASCII.
func New(s []byte) *Tree {
	return NewBuilder(s).Build().Finish()
}

// FromParts reconstructs a Tree from its serialized fields. Used by the
// persist package when reloading.
func FromParts(n int, levels []*rank.Support, ct *CharTable) *Tree {
	return &Tree{n: n, levels: levels, charTable: ct}
}

// Len returns n, the length of the original text.
func (t *Tree) Len() int { return t.n }

// NChars returns sigma, the size of the alphabet.
func (t *Tree) NChars() int { return t.charTable.NChars() }

// Width returns the number of levels (ceil(log2(sigma))).
func (t *Tree) Width() int { return t.charTable.Width() }

// Levels exposes the per-level rank.Support. Used by the persist package.
func (t *Tree) Levels() []*rank.Support { return t.levels }

// CharTable exposes the backing CharTable. Used by the persist package.
func (t *Tree) CharTable() *CharTable { return t.charTable }

// Access reconstructs the i-th character of the original text.
func (t *Tree) Access(i int) byte {
	if i < 0 || i >= t.n {
		fault.Raisef("Tree.Access", "index %d out of range [0, %d)", i, t.n)
	}
	if len(t.levels) == 0 {
		return t.charTable.Char(0)
	}

	l, r := 0, t.n
	currRank := i + 1
	code := 0

	for lvl := 0; lvl < t.Width(); lvl++ {
		bit := t.levels[lvl].Get(l + currRank - 1)
		if bit {
			code = (code << 1) | 1
		} else {
			code = code << 1
		}

		currRank = t.levels[lvl].RelRank(bit, l, currRank-1)

		if bit {
			l += t.levels[lvl].RelRank(false, l, r-l-1)
		} else {
			r -= t.levels[lvl].RelRank(true, l, r-l-1)
		}
	}
	return t.charTable.Char(code)
}

// Rank returns the number of occurrences of c in s[0, i], inclusive.
func (t *Tree) Rank(c byte, i int) int {
	if len(t.levels) == 0 {
		return i + 1
	}

	l, r := 0, t.n
	currRank := i + 1

	for lvl := 0; lvl < t.Width(); lvl++ {
		bit := t.charTable.Bit(lvl, c)
		currRank = t.levels[lvl].RelRank(bit, l, currRank-1)
		if currRank == 0 {
			return 0
		}

		if bit {
			l += t.levels[lvl].RelRank(false, l, r-l-1)
		} else {
			r -= t.levels[lvl].RelRank(true, l, r-l-1)
		}
	}
	return currRank
}

// Select returns the position of the r-th (1-indexed) occurrence of c, or
// (0, false) if fewer than r occurrences exist.
func (t *Tree) Select(c byte, r int) (int, bool) {
	if len(t.levels) == 0 {
		return r - 1, true
	}

	type frame struct {
		l   int
		bit bool
	}

	l, rr := 0, t.n
	stack := make([]frame, 0, t.Width())

	for lvl := 0; lvl < t.Width(); lvl++ {
		bit := t.charTable.Bit(lvl, c)
		stack = append(stack, frame{l: l, bit: bit})

		if bit {
			l += t.levels[lvl].RelRank(false, l, rr-l-1)
		} else {
			rr -= t.levels[lvl].RelRank(true, l, rr-l-1)
		}
	}

	idx := r - 1
	for lvl := t.Width() - 1; lvl >= 0; lvl-- {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		v, ok := t.levels[lvl].RelSelect(f.bit, f.l, idx+1)
		if !ok {
			return 0, false
		}
		idx = v
	}
	return idx, true
}

// SizeOf reports the footprint of the Tree (and everything it owns) in
// bytes.
func (t *Tree) SizeOf() int {
	size := 24
	for _, lvl := range t.levels {
		size += lvl.SizeOf()
	}
	size += 16 + t.charTable.Support().SizeOf()
	return size
}
