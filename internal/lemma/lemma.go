// Package lemma caches intermediate results of successful proofs and replays
// them as free derivation steps in later searches. A generator owns its
// cache; neither is safe for concurrent use.
package lemma

import (
	"dcec/internal/logic"
)

// Type classifies how a lemma earned its place in the cache.
type Type string

const (
	// TypeDerived marks a lemma extracted from a single proof.
	TypeDerived Type = "DERIVED"
	// TypeReusable marks a lemma whose pattern recurred across the
	// discovery batch, a hint that it generalizes.
	TypeReusable Type = "REUSABLE"
)

// patternPrefixLen bounds the canonical-string prefix used for fuzzy
// pattern grouping.
const patternPrefixLen = 50

// Lemma is one cached derivation: the formula, the canonical text of the
// premises it came from, and the rule that produced it. PatternHash is fixed
// at construction; UsageCount grows on every cache hit or reuse.
type Lemma struct {
	Formula     logic.Formula
	Premises    []string
	Rule        string
	Type        Type
	UsageCount  int
	PatternHash string
}

// New builds a DERIVED lemma for a formula concluded by rule from the given
// premise texts.
func New(f logic.Formula, premises []string, rule string) *Lemma {
	return &Lemma{
		Formula:     f,
		Premises:    premises,
		Rule:        rule,
		Type:        TypeDerived,
		PatternHash: logic.Hash(f),
	}
}

// Pattern returns the grouping prefix of the lemma's canonical string.
func (l *Lemma) Pattern() string {
	return patternOf(logic.Key(l.Formula))
}

func patternOf(s string) string {
	r := []rune(s)
	if len(r) > patternPrefixLen {
		r = r[:patternPrefixLen]
	}
	return string(r)
}
