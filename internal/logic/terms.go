package logic

import (
	"fmt"
	"strings"
)

// Term is the sealed interface over the two term variants. All terms are
// immutable; Substitute returns a new term and never mutates the receiver.
type Term interface {
	fmt.Stringer

	// Sort returns the sort the term denotes an element of.
	Sort() *Sort
	// Substitute replaces every occurrence of v with t.
	Substitute(v Variable, t Term) Term

	isTerm()
}

// VariableTerm wraps a variable in term position.
type VariableTerm struct {
	Var Variable
}

// NewVariableTerm lifts a variable into a term.
func NewVariableTerm(v Variable) *VariableTerm {
	return &VariableTerm{Var: v}
}

func (t *VariableTerm) isTerm()     {}
func (t *VariableTerm) Sort() *Sort { return t.Var.Sort }

func (t *VariableTerm) Substitute(v Variable, repl Term) Term {
	if t.Var.Key() == v.Key() {
		return repl
	}
	return t
}

func (t *VariableTerm) String() string { return t.Var.Name }

// FunctionTerm applies a function symbol to argument terms. Zero-ary
// applications are constants and print as the bare symbol name.
type FunctionTerm struct {
	Fn   *Function
	Args []Term
}

// NewFunctionTerm applies fn to args, validating arity and argument sorts.
// Sort checking is subtype-aware and skipped for arguments whose sort is
// unknown.
func NewFunctionTerm(fn *Function, args ...Term) (*FunctionTerm, error) {
	if fn == nil {
		return nil, operandError("function", "nil function symbol")
	}
	if len(args) != fn.Arity() {
		return nil, arityError(fn.Name, fn.Arity(), len(args))
	}
	for i, a := range args {
		if a == nil {
			return nil, operandError(fn.Name, fmt.Sprintf("argument %d is nil", i))
		}
		want := fn.ArgSorts[i]
		if got := a.Sort(); got != nil && want != nil && !got.IsSubtypeOf(want) {
			return nil, sortError(fn.Name, i, want, got)
		}
	}
	return &FunctionTerm{Fn: fn, Args: args}, nil
}

// Constant builds a zero-ary function term, declaring its symbol inline.
func Constant(name string, sort *Sort) *FunctionTerm {
	return &FunctionTerm{Fn: NewFunction(name, sort)}
}

func (t *FunctionTerm) isTerm()     {}
func (t *FunctionTerm) Sort() *Sort { return t.Fn.ReturnSort }

func (t *FunctionTerm) Substitute(v Variable, repl Term) Term {
	if len(t.Args) == 0 {
		return t
	}
	args := make([]Term, len(t.Args))
	changed := false
	for i, a := range t.Args {
		args[i] = a.Substitute(v, repl)
		if args[i] != a {
			changed = true
		}
	}
	if !changed {
		return t
	}
	return &FunctionTerm{Fn: t.Fn, Args: args}
}

func (t *FunctionTerm) String() string {
	if len(t.Args) == 0 {
		return t.Fn.Name
	}
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return t.Fn.Name + "(" + strings.Join(parts, ", ") + ")"
}

func termFreeVars(t Term, into VarSet) {
	switch tt := t.(type) {
	case *VariableTerm:
		into.Add(tt.Var)
	case *FunctionTerm:
		for _, a := range tt.Args {
			termFreeVars(a, into)
		}
	}
}
