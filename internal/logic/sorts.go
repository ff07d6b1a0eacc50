package logic

import "fmt"

// Sort is a type in the sorted first-order signature. Sorts form a single
// inheritance hierarchy rooted at Object; Parent is nil only for the root.
type Sort struct {
	Name   string
	Parent *Sort
}

// NewSort creates a sort under the given parent. A nil parent makes a root.
func NewSort(name string, parent *Sort) *Sort {
	return &Sort{Name: name, Parent: parent}
}

// IsSubtypeOf reports whether s equals other or descends from it.
func (s *Sort) IsSubtypeOf(other *Sort) bool {
	if s == nil || other == nil {
		return false
	}
	for cur := s; cur != nil; cur = cur.Parent {
		if cur.Name == other.Name {
			return true
		}
	}
	return false
}

func (s *Sort) String() string {
	if s == nil {
		return "?"
	}
	return s.Name
}

// Variable is a typed logical variable. Two variables are the same variable
// iff name and sort name agree.
type Variable struct {
	Name string
	Sort *Sort
}

// NewVariable creates a typed variable.
func NewVariable(name string, sort *Sort) Variable {
	return Variable{Name: name, Sort: sort}
}

// Key is the canonical identity of the variable, used for set membership and
// capture checks.
func (v Variable) Key() string {
	return v.Name + ":" + v.Sort.String()
}

func (v Variable) String() string { return v.Name }

// Function is a function symbol with a fixed argument signature and return
// sort. Zero-ary functions are constants.
type Function struct {
	Name       string
	ArgSorts   []*Sort
	ReturnSort *Sort
}

// NewFunction declares a function symbol.
func NewFunction(name string, returnSort *Sort, argSorts ...*Sort) *Function {
	return &Function{Name: name, ArgSorts: argSorts, ReturnSort: returnSort}
}

// Arity returns the number of arguments the symbol expects.
func (f *Function) Arity() int { return len(f.ArgSorts) }

func (f *Function) String() string {
	return fmt.Sprintf("%s/%d", f.Name, f.Arity())
}

// Predicate is a relation symbol. Unlike functions, predicates have no return
// sort; applying one yields an atomic formula.
type Predicate struct {
	Name     string
	ArgSorts []*Sort
}

// NewPredicate declares a predicate symbol.
func NewPredicate(name string, argSorts ...*Sort) *Predicate {
	return &Predicate{Name: name, ArgSorts: argSorts}
}

// Arity returns the number of arguments the symbol expects.
func (p *Predicate) Arity() int { return len(p.ArgSorts) }

func (p *Predicate) String() string {
	return fmt.Sprintf("%s/%d", p.Name, p.Arity())
}

// VarSet is a set of variables keyed by their canonical identity.
type VarSet map[string]Variable

// Add inserts a variable into the set.
func (s VarSet) Add(v Variable) { s[v.Key()] = v }

// Contains reports whether the set holds the variable.
func (s VarSet) Contains(v Variable) bool {
	_, ok := s[v.Key()]
	return ok
}

// AddAll merges another set into this one.
func (s VarSet) AddAll(other VarSet) {
	for k, v := range other {
		s[k] = v
	}
}
