// Package bloom implements classical and blocked Bloom filters layered on
// bitvec.BitVec, sharing a single Membership capability so callers can hold
// either behind one interface value.
package bloom

import (
	"crypto/rand"
	"encoding/binary"
	"math"

	"github.com/xflash-panda/succinct/internal/mathutil"
	"github.com/xflash-panda/succinct/pkg/bitvec"
	"github.com/xflash-panda/succinct/pkg/fault"
)

// Membership is the capability both filter variants expose: insert a key,
// then query whether it was (probably) inserted.
type Membership interface {
	Insert(item []byte)
	Query(item []byte) bool
}

var (
	_ Membership = (*Filter)(nil)
	_ Membership = (*Blocked)(nil)
)

// Filter is a classical Bloom filter: a single BitVec of m bits and k
// independent seeded hashes.
type Filter struct {
	bv    *bitvec.BitVec
	k     int
	n     int
	seeds []uint64
}

// New returns a Filter with k hash functions over an m-bit array.
func New(k, m int) *Filter {
	return &Filter{
		bv:    bitvec.New(m),
		k:     k,
		n:     m,
		seeds: randomSeeds(k * 4),
	}
}

// FromParts reconstructs a Filter from its serialized fields. Used by the
// persist package when reloading.
func FromParts(bv *bitvec.BitVec, k, n int, seeds []uint64) *Filter {
	return &Filter{bv: bv, k: k, n: n, seeds: seeds}
}

// WithFPR sizes a Filter for a target false-positive rate fpr over n
// expected elements, per the standard optimal-m/optimal-k derivation.
func WithFPR(fpr float64, n int) *Filter {
	k, m := fprConfig(fpr, n)
	return New(k, m)
}

func fprConfig(fpr float64, n int) (k, m int) {
	mCeil := math.Ceil(-1.0 * float64(n) * math.Log(fpr) / (math.Ln2 * math.Ln2))
	kf := math.Ceil((mCeil / float64(n)) * math.Ln2)
	return int(kf), int(mCeil)
}

// NHashes returns k, the number of hash functions.
func (f *Filter) NHashes() int { return f.k }

// Len returns m, the size of the bit array.
func (f *Filter) Len() int { return f.n }

// BitVec exposes the backing bit vector. Used by the persist package.
func (f *Filter) BitVec() *bitvec.BitVec { return f.bv }

// Seeds exposes the hash seeds. Used by the persist package.
func (f *Filter) Seeds() []uint64 { return f.seeds }

// Insert sets the k bits item hashes to.
func (f *Filter) Insert(item []byte) {
	for i := 0; i < f.k; i++ {
		f.bv.Set(f.hashI(i, item), true)
	}
}

// Query reports whether item is probably a member: false is a definite
// absence, true only a probable presence.
func (f *Filter) Query(item []byte) bool {
	for i := 0; i < f.k; i++ {
		if !f.bv.Get(f.hashI(i, item)) {
			return false
		}
	}
	return true
}

func (f *Filter) hashI(i int, item []byte) int {
	s := i * 4
	h := seededHash(f.seeds[s], f.seeds[s+1], f.seeds[s+2], f.seeds[s+3], item)
	return int(h % uint64(f.n))
}

// Blocked is a cache-line-friendly Bloom filter: nb blocks of blockSize
// bytes, with one hash selecting the block and the remaining k-1 hashes
// selecting bits within it.
type Blocked struct {
	bv        *bitvec.BitVec
	k         int
	seeds     []uint64
	nBlocks   int
	blockSize int // in bits
}

// NewBlocked returns a Blocked filter with k hash functions, nBlocks blocks
// of blockSize bytes each.
func NewBlocked(k, nBlocks, blockSize int) *Blocked {
	return &Blocked{
		bv:        bitvec.New(nBlocks * blockSize * 8),
		k:         k,
		seeds:     randomSeeds(k * 4),
		nBlocks:   nBlocks,
		blockSize: blockSize * 8,
	}
}

// BlockedFromParts reconstructs a Blocked filter from its serialized
// fields. Used by the persist package when reloading.
func BlockedFromParts(bv *bitvec.BitVec, k int, seeds []uint64, nBlocks, blockSizeBits int) *Blocked {
	return &Blocked{bv: bv, k: k, seeds: seeds, nBlocks: nBlocks, blockSize: blockSizeBits}
}

// BlockedWithFPR sizes a Blocked filter for a target false-positive rate fpr
// over n expected elements, partitioning the classical sizing into
// blockSize-byte blocks.
func BlockedWithFPR(fpr float64, n, blockSize int) *Blocked {
	k, m := fprConfig(fpr, n)
	nBlocks := mathutil.Cdiv(m, blockSize*8)
	return NewBlocked(k, nBlocks, blockSize)
}

// NHashes returns k, the number of hash functions.
func (b *Blocked) NHashes() int { return b.k }

// Len returns the total number of bits across all blocks.
func (b *Blocked) Len() int { return b.bv.Len() }

// NBlocks returns the block count.
func (b *Blocked) NBlocks() int { return b.nBlocks }

// BlockSize returns the block size in bits.
func (b *Blocked) BlockSize() int { return b.blockSize }

// BitVec exposes the backing bit vector. Used by the persist package.
func (b *Blocked) BitVec() *bitvec.BitVec { return b.bv }

// Seeds exposes the hash seeds. Used by the persist package.
func (b *Blocked) Seeds() []uint64 { return b.seeds }

// Insert sets the k-1 in-block bits item hashes to, all within the single
// block that hash 0 selects.
func (b *Blocked) Insert(item []byte) {
	block := b.hashBlock(item)
	for i := 1; i < b.k; i++ {
		b.bv.Set(block+b.hashInBlock(i, item), true)
	}
}

// Query reports whether item is probably a member, touching only the one
// block it hashes to.
func (b *Blocked) Query(item []byte) bool {
	block := b.hashBlock(item)
	for i := 1; i < b.k; i++ {
		if !b.bv.Get(block + b.hashInBlock(i, item)) {
			return false
		}
	}
	return true
}

func (b *Blocked) hashBlock(item []byte) int {
	return b.hashIMod(0, item, b.nBlocks) * b.blockSize
}

func (b *Blocked) hashInBlock(i int, item []byte) int {
	return b.hashIMod(i, item, b.blockSize)
}

func (b *Blocked) hashIMod(i int, item []byte, m int) int {
	s := i * 4
	h := seededHash(b.seeds[s], b.seeds[s+1], b.seeds[s+2], b.seeds[s+3], item)
	return int(h % uint64(m))
}

// randomSeeds fills n uint64 seeds from a cryptographic RNG.
func randomSeeds(n int) []uint64 {
	seeds := make([]uint64, n)
	var buf [8]byte
	for i := range seeds {
		if _, err := rand.Read(buf[:]); err != nil {
			fault.Raisef("bloom.randomSeeds", "generate seed: %v", err)
		}
		seeds[i] = binary.LittleEndian.Uint64(buf[:])
	}
	return seeds
}

// seededHash combines four uint64 seeds with item via FNV-1a-style
// keyed mixing (the Go standard library has no SeaHash equivalent; this
// mixing function plays the same 256-bit-seeded keyed-hash role the
// original's SeaHasher does).
func seededHash(s0, s1, s2, s3 uint64, item []byte) uint64 {
	const (
		prime = 1099511628211
	)
	h := s0
	h ^= s1
	h *= prime
	h ^= s2
	h *= prime
	h ^= s3
	h *= prime
	for _, b := range item {
		h ^= uint64(b)
		h *= prime
	}
	h ^= h >> 33
	return h
}
