// Package querycache wraps an immutable wavelet.Tree with an LRU cache for
// repeated queries, mirroring the donor codebase's CachedDatabase pattern
// (mutex-guarded hashicorp/golang-lru/v2 cache in front of a read-only
// lookup).
package querycache

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/xflash-panda/succinct/pkg/wavelet"
)

// DefaultCacheSize is the default number of cached query results for each
// of the three per-operation caches.
const DefaultCacheSize = 1024

type accessResult struct {
	c byte
}

type rankResult struct {
	r int
}

type selectResult struct {
	pos int
	ok  bool
}

// Tree wraps a *wavelet.Tree with an LRU cache keyed by (operation,
// argument). The wrapped tree must not be mutated after wrapping; wavelet.Tree
// has no mutators once built, so this always holds.
type Tree struct {
	tr     *wavelet.Tree
	access *lru.Cache[int, accessResult]
	rank   *lru.Cache[[2]int, rankResult]
	sel    *lru.Cache[[2]int, selectResult]
	mu     sync.RWMutex
}

// New wraps tr with the default cache size.
func New(tr *wavelet.Tree) (*Tree, error) {
	return NewWithSize(tr, DefaultCacheSize)
}

// NewWithSize wraps tr with a custom per-operation cache size.
func NewWithSize(tr *wavelet.Tree, cacheSize int) (*Tree, error) {
	access, err := lru.New[int, accessResult](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create access cache: %w", err)
	}
	rankC, err := lru.New[[2]int, rankResult](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create rank cache: %w", err)
	}
	selC, err := lru.New[[2]int, selectResult](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create select cache: %w", err)
	}

	return &Tree{tr: tr, access: access, rank: rankC, sel: selC}, nil
}

// Access is wavelet.Tree.Access, read-through cached by index.
func (t *Tree) Access(i int) byte {
	t.mu.RLock()
	if v, ok := t.access.Get(i); ok {
		t.mu.RUnlock()
		return v.c
	}
	t.mu.RUnlock()

	c := t.tr.Access(i)

	t.mu.Lock()
	t.access.Add(i, accessResult{c: c})
	t.mu.Unlock()
	return c
}

// Rank is wavelet.Tree.Rank, read-through cached by (char, index).
func (t *Tree) Rank(c byte, i int) int {
	key := [2]int{int(c), i}

	t.mu.RLock()
	if v, ok := t.rank.Get(key); ok {
		t.mu.RUnlock()
		return v.r
	}
	t.mu.RUnlock()

	r := t.tr.Rank(c, i)

	t.mu.Lock()
	t.rank.Add(key, rankResult{r: r})
	t.mu.Unlock()
	return r
}

// Select is wavelet.Tree.Select, read-through cached by (char, rank).
func (t *Tree) Select(c byte, r int) (int, bool) {
	key := [2]int{int(c), r}

	t.mu.RLock()
	if v, ok := t.sel.Get(key); ok {
		t.mu.RUnlock()
		return v.pos, v.ok
	}
	t.mu.RUnlock()

	pos, ok := t.tr.Select(c, r)

	t.mu.Lock()
	t.sel.Add(key, selectResult{pos: pos, ok: ok})
	t.mu.Unlock()
	return pos, ok
}

// Len returns n, the length of the wrapped tree's original text.
func (t *Tree) Len() int { return t.tr.Len() }

// NChars returns sigma, the wrapped tree's alphabet size.
func (t *Tree) NChars() int { return t.tr.NChars() }

// Tree exposes the wrapped, uncached tree.
func (t *Tree) Tree() *wavelet.Tree { return t.tr }

// ClearCache empties all three per-operation caches.
func (t *Tree) ClearCache() {
	t.mu.Lock()
	t.access.Purge()
	t.rank.Purge()
	t.sel.Purge()
	t.mu.Unlock()
}
