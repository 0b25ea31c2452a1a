package domaintrie

import (
	"github.com/xflash-panda/succinct/pkg/bitvec"
	"github.com/xflash-panda/succinct/pkg/rank"
)

// supportIndex wraps a rank.Support and restates its rank/select operations
// in the exclusive-before-position, 0-indexed-select vocabulary the LOUDS
// trie walk is written in, instead of rank.Support's inclusive-at-i,
// 1-indexed vocabulary.
type supportIndex struct {
	sup *rank.Support
	n   int
}

func newSupportIndex(bits []bool) *supportIndex {
	bv := bitvec.New(len(bits))
	for i, b := range bits {
		bv.Set(i, b)
	}
	return &supportIndex{sup: rank.New(bv), n: len(bits)}
}

func (s *supportIndex) get(i int) bool {
	if i < 0 || i >= s.n {
		return false
	}
	return s.sup.Get(i)
}

// onesBefore returns the number of 1 bits at positions < i. i may range up
// to and including n.
func (s *supportIndex) onesBefore(i int) int {
	if i <= 0 {
		return 0
	}
	return s.sup.Rank1(i - 1)
}

// zerosBefore returns the number of 0 bits at positions < i. i may range up
// to and including n.
func (s *supportIndex) zerosBefore(i int) int {
	return i - s.onesBefore(i)
}

// selectOne returns the position of the i-th (0-indexed) 1 bit, and whether
// that many 1 bits exist.
func (s *supportIndex) selectOne(i int) (int, bool) {
	return s.sup.Select1(i + 1)
}
