// Package persist serializes every public succinct structure to a single
// opaque binary envelope built directly on protobuf wire-format primitives
// (google.golang.org/protobuf/encoding/protowire), with no .proto schema
// compiled: the field set is small and fixed, so hand-writing the
// marshal/unmarshal pairs against the wire package avoids dragging in
// protoc-gen-go for a handful of messages.
package persist

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/xflash-panda/succinct/pkg/bitvec"
	"github.com/xflash-panda/succinct/pkg/bloom"
	"github.com/xflash-panda/succinct/pkg/rank"
	"github.com/xflash-panda/succinct/pkg/wavelet"
)

const (
	fieldBitVecN     = 1
	fieldBitVecWords = 2

	fieldIntVecWordSize = 1
	fieldIntVecN        = 2
	fieldIntVecBV       = 3

	fieldSupportBV = 1
	fieldSupportS  = 2
	fieldSupportB  = 3
	fieldSupportRS = 4
	fieldSupportRB = 5

	fieldCharTableSupport = 1
	fieldCharTableWidth   = 2

	fieldTreeN      = 1
	fieldTreeLevels = 2
	fieldTreeCT     = 3

	fieldFilterBV    = 1
	fieldFilterK     = 2
	fieldFilterN     = 3
	fieldFilterSeeds = 4

	fieldBlockedBV        = 1
	fieldBlockedK         = 2
	fieldBlockedSeeds     = 3
	fieldBlockedNBlocks   = 4
	fieldBlockedBlockSize = 5
)

// MarshalBitVec encodes v as a self-contained message: n, then the raw
// 32-bit words packed as a single packed-fixed32 field.
func MarshalBitVec(v *bitvec.BitVec) []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldBitVecN, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(v.Len()))

	words := v.Words()
	var packed []byte
	for _, w := range words {
		packed = protowire.AppendFixed32(packed, w)
	}
	b = protowire.AppendTag(b, fieldBitVecWords, protowire.BytesType)
	b = protowire.AppendBytes(b, packed)
	return b
}

// UnmarshalBitVec decodes a message produced by MarshalBitVec.
func UnmarshalBitVec(data []byte) (*bitvec.BitVec, error) {
	var n int
	var words []uint32

	for len(data) > 0 {
		num, typ, sz := protowire.ConsumeTag(data)
		if sz < 0 {
			return nil, fmt.Errorf("persist: BitVec: bad tag: %w", protowire.ParseError(sz))
		}
		data = data[sz:]

		switch num {
		case fieldBitVecN:
			v, n2 := protowire.ConsumeVarint(data)
			if n2 < 0 {
				return nil, fmt.Errorf("persist: BitVec: bad n varint")
			}
			n = int(v)
			data = data[n2:]
		case fieldBitVecWords:
			packed, n2 := protowire.ConsumeBytes(data)
			if n2 < 0 {
				return nil, fmt.Errorf("persist: BitVec: bad words field")
			}
			data = data[n2:]
			rest := packed
			for len(rest) > 0 {
				w, wn := protowire.ConsumeFixed32(rest)
				if wn < 0 {
					return nil, fmt.Errorf("persist: BitVec: bad packed word")
				}
				words = append(words, w)
				rest = rest[wn:]
			}
		default:
			sz := protowire.ConsumeFieldValue(num, typ, data)
			if sz < 0 {
				return nil, fmt.Errorf("persist: BitVec: bad unknown field")
			}
			data = data[sz:]
		}
	}
	return bitvec.WordsFrom(n, words), nil
}

// MarshalIntVec encodes iv: word size, element count, then its backing
// BitVec nested verbatim.
func MarshalIntVec(iv *bitvec.IntVec) []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldIntVecWordSize, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(iv.WordSize()))
	b = protowire.AppendTag(b, fieldIntVecN, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(iv.Len()))
	b = protowire.AppendTag(b, fieldIntVecBV, protowire.BytesType)
	b = protowire.AppendBytes(b, MarshalBitVec(iv.BitVec()))
	return b
}

// UnmarshalIntVec decodes a message produced by MarshalIntVec.
func UnmarshalIntVec(data []byte) (*bitvec.IntVec, error) {
	var w, n int
	var bv *bitvec.BitVec

	for len(data) > 0 {
		num, typ, sz := protowire.ConsumeTag(data)
		if sz < 0 {
			return nil, fmt.Errorf("persist: IntVec: bad tag")
		}
		data = data[sz:]

		switch num {
		case fieldIntVecWordSize:
			v, n2 := protowire.ConsumeVarint(data)
			if n2 < 0 {
				return nil, fmt.Errorf("persist: IntVec: bad word_size varint")
			}
			w = int(v)
			data = data[n2:]
		case fieldIntVecN:
			v, n2 := protowire.ConsumeVarint(data)
			if n2 < 0 {
				return nil, fmt.Errorf("persist: IntVec: bad n varint")
			}
			n = int(v)
			data = data[n2:]
		case fieldIntVecBV:
			sub, n2 := protowire.ConsumeBytes(data)
			if n2 < 0 {
				return nil, fmt.Errorf("persist: IntVec: bad bv field")
			}
			data = data[n2:]
			var err error
			bv, err = UnmarshalBitVec(sub)
			if err != nil {
				return nil, fmt.Errorf("persist: IntVec: %w", err)
			}
		default:
			sz := protowire.ConsumeFieldValue(num, typ, data)
			if sz < 0 {
				return nil, fmt.Errorf("persist: IntVec: bad unknown field")
			}
			data = data[sz:]
		}
	}
	return bitvec.IntVecFromBitVec(w, n, bv), nil
}

// MarshalSupport encodes sup: its BitVec, then s, b, and the two IntVec
// index tables, each nested verbatim.
func MarshalSupport(sup *rank.Support) []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldSupportBV, protowire.BytesType)
	b = protowire.AppendBytes(b, MarshalBitVec(sup.BitVec()))
	b = protowire.AppendTag(b, fieldSupportS, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(sup.S()))
	b = protowire.AppendTag(b, fieldSupportB, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(sup.B()))
	b = protowire.AppendTag(b, fieldSupportRS, protowire.BytesType)
	b = protowire.AppendBytes(b, MarshalIntVec(sup.RS()))
	b = protowire.AppendTag(b, fieldSupportRB, protowire.BytesType)
	b = protowire.AppendBytes(b, MarshalIntVec(sup.RB()))
	return b
}

// UnmarshalSupport decodes a message produced by MarshalSupport.
func UnmarshalSupport(data []byte) (*rank.Support, error) {
	var bv *bitvec.BitVec
	var s, bb int
	var rs, rb *bitvec.IntVec

	for len(data) > 0 {
		num, typ, sz := protowire.ConsumeTag(data)
		if sz < 0 {
			return nil, fmt.Errorf("persist: Support: bad tag")
		}
		data = data[sz:]

		switch num {
		case fieldSupportBV:
			sub, n2 := protowire.ConsumeBytes(data)
			if n2 < 0 {
				return nil, fmt.Errorf("persist: Support: bad bv field")
			}
			data = data[n2:]
			var err error
			bv, err = UnmarshalBitVec(sub)
			if err != nil {
				return nil, fmt.Errorf("persist: Support: %w", err)
			}
		case fieldSupportS:
			v, n2 := protowire.ConsumeVarint(data)
			if n2 < 0 {
				return nil, fmt.Errorf("persist: Support: bad s varint")
			}
			s = int(v)
			data = data[n2:]
		case fieldSupportB:
			v, n2 := protowire.ConsumeVarint(data)
			if n2 < 0 {
				return nil, fmt.Errorf("persist: Support: bad b varint")
			}
			bb = int(v)
			data = data[n2:]
		case fieldSupportRS:
			sub, n2 := protowire.ConsumeBytes(data)
			if n2 < 0 {
				return nil, fmt.Errorf("persist: Support: bad rs field")
			}
			data = data[n2:]
			var err error
			rs, err = UnmarshalIntVec(sub)
			if err != nil {
				return nil, fmt.Errorf("persist: Support: %w", err)
			}
		case fieldSupportRB:
			sub, n2 := protowire.ConsumeBytes(data)
			if n2 < 0 {
				return nil, fmt.Errorf("persist: Support: bad rb field")
			}
			data = data[n2:]
			var err error
			rb, err = UnmarshalIntVec(sub)
			if err != nil {
				return nil, fmt.Errorf("persist: Support: %w", err)
			}
		default:
			sz := protowire.ConsumeFieldValue(num, typ, data)
			if sz < 0 {
				return nil, fmt.Errorf("persist: Support: bad unknown field")
			}
			data = data[sz:]
		}
	}
	return rank.FromParts(bv, s, bb, rs, rb), nil
}

// MarshalCharTable encodes ct: its rank.Support, then width.
func MarshalCharTable(ct *wavelet.CharTable) []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldCharTableSupport, protowire.BytesType)
	b = protowire.AppendBytes(b, MarshalSupport(ct.Support()))
	b = protowire.AppendTag(b, fieldCharTableWidth, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(ct.Width()))
	return b
}

// UnmarshalCharTable decodes a message produced by MarshalCharTable.
func UnmarshalCharTable(data []byte) (*wavelet.CharTable, error) {
	var rs *rank.Support
	var width int

	for len(data) > 0 {
		num, typ, sz := protowire.ConsumeTag(data)
		if sz < 0 {
			return nil, fmt.Errorf("persist: CharTable: bad tag")
		}
		data = data[sz:]

		switch num {
		case fieldCharTableSupport:
			sub, n2 := protowire.ConsumeBytes(data)
			if n2 < 0 {
				return nil, fmt.Errorf("persist: CharTable: bad support field")
			}
			data = data[n2:]
			var err error
			rs, err = UnmarshalSupport(sub)
			if err != nil {
				return nil, fmt.Errorf("persist: CharTable: %w", err)
			}
		case fieldCharTableWidth:
			v, n2 := protowire.ConsumeVarint(data)
			if n2 < 0 {
				return nil, fmt.Errorf("persist: CharTable: bad width varint")
			}
			width = int(v)
			data = data[n2:]
		default:
			sz := protowire.ConsumeFieldValue(num, typ, data)
			if sz < 0 {
				return nil, fmt.Errorf("persist: CharTable: bad unknown field")
			}
			data = data[sz:]
		}
	}
	return wavelet.CharTableFromParts(rs, width), nil
}

// MarshalTree encodes tr: n, then each level's rank.Support nested in
// field order, then the CharTable.
func MarshalTree(tr *wavelet.Tree) []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldTreeN, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(tr.Len()))
	for _, lvl := range tr.Levels() {
		b = protowire.AppendTag(b, fieldTreeLevels, protowire.BytesType)
		b = protowire.AppendBytes(b, MarshalSupport(lvl))
	}
	b = protowire.AppendTag(b, fieldTreeCT, protowire.BytesType)
	b = protowire.AppendBytes(b, MarshalCharTable(tr.CharTable()))
	return b
}

// UnmarshalTree decodes a message produced by MarshalTree.
func UnmarshalTree(data []byte) (*wavelet.Tree, error) {
	var n int
	var levels []*rank.Support
	var ct *wavelet.CharTable

	for len(data) > 0 {
		num, typ, sz := protowire.ConsumeTag(data)
		if sz < 0 {
			return nil, fmt.Errorf("persist: Tree: bad tag")
		}
		data = data[sz:]

		switch num {
		case fieldTreeN:
			v, n2 := protowire.ConsumeVarint(data)
			if n2 < 0 {
				return nil, fmt.Errorf("persist: Tree: bad n varint")
			}
			n = int(v)
			data = data[n2:]
		case fieldTreeLevels:
			sub, n2 := protowire.ConsumeBytes(data)
			if n2 < 0 {
				return nil, fmt.Errorf("persist: Tree: bad levels field")
			}
			data = data[n2:]
			lvl, err := UnmarshalSupport(sub)
			if err != nil {
				return nil, fmt.Errorf("persist: Tree: %w", err)
			}
			levels = append(levels, lvl)
		case fieldTreeCT:
			sub, n2 := protowire.ConsumeBytes(data)
			if n2 < 0 {
				return nil, fmt.Errorf("persist: Tree: bad char_table field")
			}
			data = data[n2:]
			var err error
			ct, err = UnmarshalCharTable(sub)
			if err != nil {
				return nil, fmt.Errorf("persist: Tree: %w", err)
			}
		default:
			sz := protowire.ConsumeFieldValue(num, typ, data)
			if sz < 0 {
				return nil, fmt.Errorf("persist: Tree: bad unknown field")
			}
			data = data[sz:]
		}
	}
	return wavelet.FromParts(n, levels, ct), nil
}

// MarshalFilter encodes f: its BitVec, k, n, then the seeds as a single
// packed-fixed64 field.
func MarshalFilter(f *bloom.Filter) []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldFilterBV, protowire.BytesType)
	b = protowire.AppendBytes(b, MarshalBitVec(f.BitVec()))
	b = protowire.AppendTag(b, fieldFilterK, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(f.NHashes()))
	b = protowire.AppendTag(b, fieldFilterN, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(f.Len()))

	var packed []byte
	for _, s := range f.Seeds() {
		packed = protowire.AppendFixed64(packed, s)
	}
	b = protowire.AppendTag(b, fieldFilterSeeds, protowire.BytesType)
	b = protowire.AppendBytes(b, packed)
	return b
}

// UnmarshalFilter decodes a message produced by MarshalFilter.
func UnmarshalFilter(data []byte) (*bloom.Filter, error) {
	var bv *bitvec.BitVec
	var k, n int
	var seeds []uint64

	for len(data) > 0 {
		num, typ, sz := protowire.ConsumeTag(data)
		if sz < 0 {
			return nil, fmt.Errorf("persist: Filter: bad tag")
		}
		data = data[sz:]

		switch num {
		case fieldFilterBV:
			sub, n2 := protowire.ConsumeBytes(data)
			if n2 < 0 {
				return nil, fmt.Errorf("persist: Filter: bad bv field")
			}
			data = data[n2:]
			var err error
			bv, err = UnmarshalBitVec(sub)
			if err != nil {
				return nil, fmt.Errorf("persist: Filter: %w", err)
			}
		case fieldFilterK:
			v, n2 := protowire.ConsumeVarint(data)
			if n2 < 0 {
				return nil, fmt.Errorf("persist: Filter: bad k varint")
			}
			k = int(v)
			data = data[n2:]
		case fieldFilterN:
			v, n2 := protowire.ConsumeVarint(data)
			if n2 < 0 {
				return nil, fmt.Errorf("persist: Filter: bad n varint")
			}
			n = int(v)
			data = data[n2:]
		case fieldFilterSeeds:
			packed, n2 := protowire.ConsumeBytes(data)
			if n2 < 0 {
				return nil, fmt.Errorf("persist: Filter: bad seeds field")
			}
			data = data[n2:]
			rest := packed
			for len(rest) > 0 {
				s, sn := protowire.ConsumeFixed64(rest)
				if sn < 0 {
					return nil, fmt.Errorf("persist: Filter: bad packed seed")
				}
				seeds = append(seeds, s)
				rest = rest[sn:]
			}
		default:
			sz := protowire.ConsumeFieldValue(num, typ, data)
			if sz < 0 {
				return nil, fmt.Errorf("persist: Filter: bad unknown field")
			}
			data = data[sz:]
		}
	}
	return bloom.FromParts(bv, k, n, seeds), nil
}

// MarshalBlocked encodes b: its BitVec, k, seeds, block count, and block
// size (in bits, as stored internally).
func MarshalBlocked(b *bloom.Blocked) []byte {
	var out []byte
	out = protowire.AppendTag(out, fieldBlockedBV, protowire.BytesType)
	out = protowire.AppendBytes(out, MarshalBitVec(b.BitVec()))
	out = protowire.AppendTag(out, fieldBlockedK, protowire.VarintType)
	out = protowire.AppendVarint(out, uint64(b.NHashes()))

	var packed []byte
	for _, s := range b.Seeds() {
		packed = protowire.AppendFixed64(packed, s)
	}
	out = protowire.AppendTag(out, fieldBlockedSeeds, protowire.BytesType)
	out = protowire.AppendBytes(out, packed)

	out = protowire.AppendTag(out, fieldBlockedNBlocks, protowire.VarintType)
	out = protowire.AppendVarint(out, uint64(b.NBlocks()))
	out = protowire.AppendTag(out, fieldBlockedBlockSize, protowire.VarintType)
	out = protowire.AppendVarint(out, uint64(b.BlockSize()))
	return out
}

// UnmarshalBlocked decodes a message produced by MarshalBlocked.
func UnmarshalBlocked(data []byte) (*bloom.Blocked, error) {
	var bv *bitvec.BitVec
	var k int
	var seeds []uint64
	var nBlocks, blockSize int

	for len(data) > 0 {
		num, typ, sz := protowire.ConsumeTag(data)
		if sz < 0 {
			return nil, fmt.Errorf("persist: Blocked: bad tag")
		}
		data = data[sz:]

		switch num {
		case fieldBlockedBV:
			sub, n2 := protowire.ConsumeBytes(data)
			if n2 < 0 {
				return nil, fmt.Errorf("persist: Blocked: bad bv field")
			}
			data = data[n2:]
			var err error
			bv, err = UnmarshalBitVec(sub)
			if err != nil {
				return nil, fmt.Errorf("persist: Blocked: %w", err)
			}
		case fieldBlockedK:
			v, n2 := protowire.ConsumeVarint(data)
			if n2 < 0 {
				return nil, fmt.Errorf("persist: Blocked: bad k varint")
			}
			k = int(v)
			data = data[n2:]
		case fieldBlockedSeeds:
			packed, n2 := protowire.ConsumeBytes(data)
			if n2 < 0 {
				return nil, fmt.Errorf("persist: Blocked: bad seeds field")
			}
			data = data[n2:]
			rest := packed
			for len(rest) > 0 {
				s, sn := protowire.ConsumeFixed64(rest)
				if sn < 0 {
					return nil, fmt.Errorf("persist: Blocked: bad packed seed")
				}
				seeds = append(seeds, s)
				rest = rest[sn:]
			}
		case fieldBlockedNBlocks:
			v, n2 := protowire.ConsumeVarint(data)
			if n2 < 0 {
				return nil, fmt.Errorf("persist: Blocked: bad n_blocks varint")
			}
			nBlocks = int(v)
			data = data[n2:]
		case fieldBlockedBlockSize:
			v, n2 := protowire.ConsumeVarint(data)
			if n2 < 0 {
				return nil, fmt.Errorf("persist: Blocked: bad block_size varint")
			}
			blockSize = int(v)
			data = data[n2:]
		default:
			sz := protowire.ConsumeFieldValue(num, typ, data)
			if sz < 0 {
				return nil, fmt.Errorf("persist: Blocked: bad unknown field")
			}
			data = data[sz:]
		}
	}
	return bloom.BlockedFromParts(bv, k, seeds, nBlocks, blockSize), nil
}
