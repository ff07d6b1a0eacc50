package lemma

import (
	"context"

	"go.uber.org/zap"

	"dcec/internal/logic"
	"dcec/internal/proof"
	"dcec/internal/rules"
)

// DefaultMinComplexity is the premise-count floor for lemma candidates.
const DefaultMinComplexity = 2

// GeneratorConfig configures lemma discovery.
type GeneratorConfig struct {
	// CacheSize bounds the lemma cache; zero means DefaultCacheSize.
	CacheSize int
	// MinComplexity is the least premise count a proof step needs to become
	// a lemma; zero means DefaultMinComplexity.
	MinComplexity int
	Logger        *zap.Logger
}

func (c GeneratorConfig) normalized() GeneratorConfig {
	if c.CacheSize < 1 {
		c.CacheSize = DefaultCacheSize
	}
	if c.MinComplexity < 1 {
		c.MinComplexity = DefaultMinComplexity
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return c
}

// Generator discovers lemmas from completed proofs and replays them in later
// searches. One generator owns one cache; it is not safe for concurrent use.
type Generator struct {
	cfg   GeneratorConfig
	cache *Cache
	reuse int
}

// NewGenerator builds a generator with an empty cache.
func NewGenerator(cfg GeneratorConfig) (*Generator, error) {
	cfg = cfg.normalized()
	cache, err := NewCache(cfg.CacheSize)
	if err != nil {
		return nil, err
	}
	return &Generator{cfg: cfg, cache: cache}, nil
}

// Cache exposes the generator's lemma store.
func (g *Generator) Cache() *Cache { return g.cache }

// ReuseCount reports how many cached lemmas have been replayed into proofs.
func (g *Generator) ReuseCount() int { return g.reuse }

// DiscoverLemmas extracts a lemma from every derived step of a successful
// proof whose premise count meets the complexity floor, caches the new ones,
// and returns the batch. A second pass marks lemmas whose canonical-string
// prefix recurs within the batch as REUSABLE.
func (g *Generator) DiscoverLemmas(tree *proof.Tree) []*Lemma {
	if tree == nil || !tree.Result.Proved() {
		return nil
	}

	byNumber := make(map[int]proof.Step, len(tree.Steps))
	for _, s := range tree.Steps {
		byNumber[s.Number] = s
	}

	var discovered []*Lemma
	for _, s := range tree.Steps {
		if s.RuleName == "axiom" || len(s.Premises) < g.cfg.MinComplexity {
			continue
		}
		premises := make([]string, 0, len(s.Premises))
		for _, num := range s.Premises {
			if p, ok := byNumber[num]; ok {
				premises = append(premises, p.Text)
			}
		}
		l := New(s.Formula, premises, s.RuleName)
		if !g.cache.Add(l) {
			if cached, ok := g.cache.peek(l.PatternHash); ok {
				l = cached
			}
		}
		discovered = append(discovered, l)
	}

	// Recurring prefixes within one batch hint at a shared shape worth
	// keeping around.
	byPattern := make(map[string]int, len(discovered))
	for _, l := range discovered {
		byPattern[l.Pattern()]++
	}
	reusable := 0
	for _, l := range discovered {
		if byPattern[l.Pattern()] >= 2 {
			l.Type = TypeReusable
			reusable++
		}
	}

	g.cfg.Logger.Debug("lemmas discovered",
		zap.Int("count", len(discovered)),
		zap.Int("reusable", reusable),
		zap.Int("cache_size", g.cache.Len()))
	return discovered
}

// ProveWithLemmas runs a forward search seeded with every cached lemma that
// the axioms do not already cover. Injected lemmas appear in the tree as
// free derivation steps named lemma_reuse. A successful proof is fed back
// through DiscoverLemmas to grow the cache.
func (g *Generator) ProveWithLemmas(ctx context.Context, goal logic.Formula, axioms []logic.Formula, ruleset []rules.Rule, opts proof.Options) *proof.Tree {
	have := make(map[string]bool, len(axioms))
	for _, ax := range axioms {
		have[logic.Key(ax)] = true
	}
	var injected []logic.Formula
	g.cache.each(func(l *Lemma) {
		key := logic.Key(l.Formula)
		if have[key] {
			return
		}
		have[key] = true
		injected = append(injected, l.Formula)
		l.UsageCount++
		g.reuse++
	})

	augmented := make([]logic.Formula, 0, len(axioms)+len(injected))
	augmented = append(augmented, axioms...)
	augmented = append(augmented, injected...)

	tree := proof.NewForward(ruleset, opts).Prove(ctx, goal, augmented)

	// Injected formulas occupy the lines right after the real axioms;
	// relabel them so the tree reads as lemma replays.
	firstInjected := len(axioms) + 1
	lastInjected := len(axioms) + len(injected)
	for i := range tree.Steps {
		s := &tree.Steps[i]
		if s.Number >= firstInjected && s.Number <= lastInjected && s.RuleName == "axiom" {
			s.RuleName = "lemma_reuse"
		}
	}
	tree.Axioms = axioms
	tree.Strategy = "forward+lemmas"

	if tree.Result.Proved() {
		g.DiscoverLemmas(tree)
	}
	return tree
}
