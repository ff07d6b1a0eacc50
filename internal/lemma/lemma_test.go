package lemma

import (
	"strings"
	"testing"

	"dcec/internal/logic"
)

func TestCacheLRUEviction(t *testing.T) {
	cache, err := NewCache(3)
	if err != nil {
		t.Fatal(err)
	}

	atoms := []logic.Formula{
		logic.Atom("l0"), logic.Atom("l1"), logic.Atom("l2"), logic.Atom("l3"),
	}
	for _, f := range atoms {
		if !cache.Add(New(f, nil, "modus_ponens")) {
			t.Fatalf("fresh lemma %s not added", f)
		}
	}
	if cache.Len() != 3 {
		t.Fatalf("capacity 3 cache holds %d lemmas", cache.Len())
	}

	if _, ok := cache.Get(atoms[0]); ok {
		t.Fatal("oldest lemma survived eviction")
	}
	for _, f := range atoms[1:] {
		if _, ok := cache.Get(f); !ok {
			t.Fatalf("lemma %s missing after eviction of the oldest", f)
		}
	}

	stats := cache.Stats()
	if stats.Size != 3 || stats.Hits != 3 || stats.Misses != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if stats.HitRate != 0.75 {
		t.Fatalf("hit rate %v, want 0.75", stats.HitRate)
	}
}

func TestCacheDuplicateAddBumpsRecency(t *testing.T) {
	cache, err := NewCache(2)
	if err != nil {
		t.Fatal(err)
	}

	a, b, c := logic.Atom("a"), logic.Atom("b"), logic.Atom("c")
	cache.Add(New(a, nil, "modus_ponens"))
	cache.Add(New(b, nil, "modus_ponens"))

	// Re-adding a moves it to most-recently-used without duplicating, so
	// the next insertion evicts b instead.
	if cache.Add(New(a, nil, "modus_ponens")) {
		t.Fatal("duplicate add reported a new entry")
	}
	cache.Add(New(c, nil, "modus_ponens"))

	if _, ok := cache.Get(b); ok {
		t.Fatal("b should have been evicted")
	}
	if _, ok := cache.Get(a); !ok {
		t.Fatal("a should have survived via the recency bump")
	}
	if _, ok := cache.Get(c); !ok {
		t.Fatal("c should be cached")
	}
}

func TestCacheGetIncrementsUsage(t *testing.T) {
	cache, err := NewCache(4)
	if err != nil {
		t.Fatal(err)
	}
	f := logic.Atom("used")
	cache.Add(New(f, nil, "simplification"))

	for i := 0; i < 2; i++ {
		if _, ok := cache.Get(f); !ok {
			t.Fatal("cached lemma not found")
		}
	}
	l, _ := cache.Get(f)
	if l.UsageCount != 3 {
		t.Fatalf("usage count %d after three hits", l.UsageCount)
	}
}

func TestCachePatternIndex(t *testing.T) {
	cache, err := NewCache(2)
	if err != nil {
		t.Fatal(err)
	}

	// Conjunctions over a long shared left conjunct agree on their first
	// fifty characters, landing in the same pattern bucket.
	long := logic.Atom(strings.Repeat("long", 15))
	alpha := logic.And(long, logic.Atom("alpha"))
	beta := logic.And(long, logic.Atom("beta"))

	cache.Add(New(alpha, nil, "conjunction"))
	cache.Add(New(beta, nil, "conjunction"))

	group := cache.FindByPattern(alpha)
	if len(group) != 2 {
		t.Fatalf("shared-prefix group has %d lemmas, want 2", len(group))
	}
	if logic.Key(group[0].Formula) > logic.Key(group[1].Formula) {
		t.Fatal("pattern group not in canonical order")
	}
	if got := cache.FindByPattern(logic.Atom("elsewhere")); got != nil {
		t.Fatalf("unknown pattern returned %d lemmas", len(got))
	}

	// Eviction must drop the lemma from the pattern index as well.
	cache.Add(New(logic.Atom("evictor"), nil, "addition"))
	group = cache.FindByPattern(alpha)
	if len(group) != 1 || logic.Key(group[0].Formula) != logic.Key(beta) {
		t.Fatalf("index kept an evicted lemma: %d left", len(group))
	}
}

func TestCacheStatsStartEmpty(t *testing.T) {
	cache, err := NewCache(0)
	if err != nil {
		t.Fatal(err)
	}
	stats := cache.Stats()
	if stats.Size != 0 || stats.Hits != 0 || stats.Misses != 0 || stats.HitRate != 0 {
		t.Fatalf("fresh cache reports %+v", stats)
	}
}
