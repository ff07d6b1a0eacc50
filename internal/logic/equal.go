package logic

import (
	"fmt"
	"hash/fnv"
)

// Key returns the canonical string form of a formula. Derived-fact sets and
// lemma caches are keyed by it; same structure always yields the same key.
func Key(f Formula) string { return f.String() }

// Hash returns a fixed-width content hash of the formula's canonical form.
func Hash(f Formula) string {
	h := fnv.New64a()
	h.Write([]byte(f.String()))
	return fmt.Sprintf("%016x", h.Sum64())
}

// Equal reports structural equality of two formulas. It is stricter than
// comparing canonical strings: variables must agree on sort, not only name.
func Equal(a, b Formula) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch fa := a.(type) {
	case *Atomic:
		fb, ok := b.(*Atomic)
		if !ok || !sameSymbol(fa.Pred.Name, fa.Pred.Arity(), fb.Pred.Name, fb.Pred.Arity()) {
			return false
		}
		return equalTermSlices(fa.Args, fb.Args)
	case *Connective:
		fb, ok := b.(*Connective)
		if !ok || fa.Op != fb.Op || len(fa.Operands) != len(fb.Operands) {
			return false
		}
		for i := range fa.Operands {
			if !Equal(fa.Operands[i], fb.Operands[i]) {
				return false
			}
		}
		return true
	case *Quantified:
		fb, ok := b.(*Quantified)
		return ok && fa.Q == fb.Q && fa.Var.Key() == fb.Var.Key() && Equal(fa.Body, fb.Body)
	case *Modal:
		fb, ok := b.(*Modal)
		return ok && fa.Op == fb.Op && Equal(fa.Body, fb.Body)
	case *Deontic:
		fb, ok := b.(*Deontic)
		return ok && fa.Op == fb.Op && EqualTerms(fa.Agent, fb.Agent) && Equal(fa.Body, fb.Body)
	case *Cognitive:
		fb, ok := b.(*Cognitive)
		return ok && fa.Op == fb.Op && EqualTerms(fa.Agent, fb.Agent) && Equal(fa.Body, fb.Body)
	case *Temporal:
		fb, ok := b.(*Temporal)
		if !ok || fa.Op != fb.Op || !EqualTerms(fa.Time, fb.Time) || !Equal(fa.Body, fb.Body) {
			return false
		}
		if (fa.Second == nil) != (fb.Second == nil) {
			return false
		}
		return fa.Second == nil || Equal(fa.Second, fb.Second)
	default:
		return false
	}
}

// EqualTerms reports structural equality of two terms. Either may be nil.
func EqualTerms(a, b Term) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch ta := a.(type) {
	case *VariableTerm:
		tb, ok := b.(*VariableTerm)
		return ok && ta.Var.Key() == tb.Var.Key()
	case *FunctionTerm:
		tb, ok := b.(*FunctionTerm)
		if !ok || !sameSymbol(ta.Fn.Name, ta.Fn.Arity(), tb.Fn.Name, tb.Fn.Arity()) {
			return false
		}
		return equalTermSlices(ta.Args, tb.Args)
	default:
		return false
	}
}

func equalTermSlices(a, b []Term) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !EqualTerms(a[i], b[i]) {
			return false
		}
	}
	return true
}

func sameSymbol(nameA string, arityA int, nameB string, arityB int) bool {
	return nameA == nameB && arityA == arityB
}
