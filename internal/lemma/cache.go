package lemma

import (
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"

	"dcec/internal/logic"
)

// DefaultCacheSize bounds a cache when the caller does not.
const DefaultCacheSize = 100

// Stats is a point-in-time view of cache effectiveness.
type Stats struct {
	Size    int     `json:"size"`
	Hits    int     `json:"hits"`
	Misses  int     `json:"misses"`
	HitRate float64 `json:"hit_rate"`
}

// Cache is a bounded lemma store with LRU eviction. The primary key is the
// formula's pattern hash; a secondary index groups lemmas by canonical-string
// prefix for fuzzy lookups. Eviction removes a lemma from both.
type Cache struct {
	entries   *lru.Cache[string, *Lemma]
	byPattern map[string]map[string]*Lemma
	hits      int
	misses    int
}

// NewCache builds a cache holding at most maxSize lemmas; sizes below one
// fall back to DefaultCacheSize.
func NewCache(maxSize int) (*Cache, error) {
	if maxSize < 1 {
		maxSize = DefaultCacheSize
	}
	c := &Cache{byPattern: make(map[string]map[string]*Lemma)}
	entries, err := lru.NewWithEvict[string, *Lemma](maxSize, c.onEvict)
	if err != nil {
		return nil, err
	}
	c.entries = entries
	return c, nil
}

func (c *Cache) onEvict(key string, l *Lemma) {
	pattern := l.Pattern()
	bucket := c.byPattern[pattern]
	if bucket == nil {
		return
	}
	delete(bucket, key)
	if len(bucket) == 0 {
		delete(c.byPattern, pattern)
	}
}

// Add stores a lemma, evicting the least-recently-used entry at capacity.
// An already-cached formula is not duplicated; it is bumped to
// most-recently-used instead and Add reports false.
func (c *Cache) Add(l *Lemma) bool {
	if _, ok := c.entries.Get(l.PatternHash); ok {
		return false
	}
	c.entries.Add(l.PatternHash, l)
	bucket := c.byPattern[l.Pattern()]
	if bucket == nil {
		bucket = make(map[string]*Lemma)
		c.byPattern[l.Pattern()] = bucket
	}
	bucket[l.PatternHash] = l
	return true
}

// Get looks a formula up by exact canonical match. A hit bumps the lemma to
// most-recently-used and increments its usage count.
func (c *Cache) Get(f logic.Formula) (*Lemma, bool) {
	l, ok := c.entries.Get(logic.Hash(f))
	if !ok {
		c.misses++
		return nil, false
	}
	c.hits++
	l.UsageCount++
	return l, true
}

// FindByPattern returns every cached lemma sharing the formula's
// canonical-string prefix, in canonical order. Unlike Get it does not touch
// recency or counters.
func (c *Cache) FindByPattern(f logic.Formula) []*Lemma {
	bucket := c.byPattern[patternOf(logic.Key(f))]
	if len(bucket) == 0 {
		return nil
	}
	out := make([]*Lemma, 0, len(bucket))
	for _, l := range bucket {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		return logic.Key(out[i].Formula) < logic.Key(out[j].Formula)
	})
	return out
}

// Len reports the number of cached lemmas.
func (c *Cache) Len() int { return c.entries.Len() }

// Stats reports size and hit/miss counters; the hit rate is zero before the
// first lookup.
func (c *Cache) Stats() Stats {
	s := Stats{Size: c.entries.Len(), Hits: c.hits, Misses: c.misses}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total)
	}
	return s
}

// peek fetches by pattern hash without touching recency or counters.
func (c *Cache) peek(hash string) (*Lemma, bool) { return c.entries.Peek(hash) }

// each visits cached lemmas from least to most recently used.
func (c *Cache) each(fn func(*Lemma)) {
	for _, key := range c.entries.Keys() {
		if l, ok := c.entries.Peek(key); ok {
			fn(l)
		}
	}
}
