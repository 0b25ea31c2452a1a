package wavelet

import (
	"github.com/xflash-panda/succinct/internal/mathutil"
	"github.com/xflash-panda/succinct/pkg/bitvec"
	"github.com/xflash-panda/succinct/pkg/fault"
	"github.com/xflash-panda/succinct/pkg/rank"
)

const asciiSize = 128

// CharTable maps the distinct ASCII bytes present in a text to a dense
// [0, sigma) code and back, via a 128-bit presence vector and its own
// rank.Support.
type CharTable struct {
	rs    *rank.Support
	width int
}

// NewCharTable scans text and records which of the 128 ASCII codepoints
// occur. text must be 7-bit ASCII.
func NewCharTable(text []byte) *CharTable {
	bv := bitvec.New(asciiSize)
	for _, c := range text {
		if c >= asciiSize {
			fault.Raisef("CharTable.New", "byte 0x%02x is not 7-bit ASCII", c)
		}
		bv.Set(int(c), true)
	}
	return &CharTable{
		rs:    rank.New(bv),
		width: mathutil.Clog(countDistinct(text)),
	}
}

// CharTableFromParts reconstructs a CharTable from its serialized fields.
// Used by the persist package when reloading.
func CharTableFromParts(rs *rank.Support, width int) *CharTable {
	return &CharTable{rs: rs, width: width}
}

// Width returns ceil(log2(sigma)), the number of levels a wavelet tree built
// from this alphabet needs.
func (ct *CharTable) Width() int { return ct.width }

// Support exposes the backing rank.Support. Used by the persist package.
func (ct *CharTable) Support() *rank.Support { return ct.rs }

// InCharset reports whether c occurred in the text this table was built
// from.
func (ct *CharTable) InCharset(c byte) bool {
	if c >= asciiSize {
		return false
	}
	return ct.rs.Get(int(c))
}

// Code returns the dense [0, sigma) code of c. Precondition failure if c is
// outside the alphabet.
func (ct *CharTable) Code(c byte) int {
	if !ct.InCharset(c) {
		fault.Raisef("CharTable.Code", "character %q is not in the alphabet", c)
	}
	return ct.rs.Rank1(int(c)) - 1
}

// Char is the inverse of Code: given a dense code, returns the original
// ASCII byte.
func (ct *CharTable) Char(code int) byte {
	p, ok := ct.rs.Select1(code + 1)
	if !ok {
		fault.Raisef("CharTable.Char", "code %d has no corresponding character", code)
	}
	return byte(p)
}

// Bit returns the (l+1)-th most-significant bit of Code(c), i.e. bit l of
// the code counting from the top.
func (ct *CharTable) Bit(l int, c byte) bool {
	if l >= ct.width {
		fault.Raisef("CharTable.Bit", "level %d exceeds width %d", l, ct.width)
	}
	code := ct.Code(c)
	mask := 1 << uint(ct.width-1-l)
	return code&mask != 0
}

// Prefix returns the top-l bits of Code(c), for 1 <= l <= Width().
func (ct *CharTable) Prefix(l int, c byte) int {
	if l <= 0 || l > ct.width {
		fault.Raisef("CharTable.Prefix", "level %d out of range (0, %d]", l, ct.width)
	}
	return ct.Code(c) >> uint(ct.width-l)
}

// NChars returns sigma, the number of distinct characters in the alphabet.
func (ct *CharTable) NChars() int {
	return ct.rs.Rank1(asciiSize - 1)
}

func countDistinct(text []byte) int {
	var seen [asciiSize]bool
	n := 0
	for _, c := range text {
		if c >= asciiSize {
			fault.Raisef("CharTable.New", "byte 0x%02x is not 7-bit ASCII", c)
		}
		if !seen[c] {
			seen[c] = true
			n++
		}
	}
	return n
}
