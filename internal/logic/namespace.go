package logic

import (
	"fmt"
	"sort"
	"sync"
)

// Namespace is the symbol registry for one reasoning session: sorts,
// predicates, functions and variables declared for it. Each session owns its
// own Namespace, so symbols from concurrent sessions cannot collide. A
// redeclaration with an identical signature returns the existing symbol;
// conflicting redeclarations fail.
type Namespace struct {
	mu    sync.RWMutex
	sorts map[string]*Sort
	preds map[string]*Predicate
	funcs map[string]*Function
	vars  map[string]Variable
}

// Builtin sort names seeded into every namespace.
const (
	SortObject     = "Object"
	SortAgent      = "Agent"
	SortSelf       = "Self"
	SortActionType = "ActionType"
	SortEvent      = "Event"
	SortAction     = "Action"
	SortMoment     = "Moment"
	SortFluent     = "Fluent"
	SortBoolean    = "Boolean"
)

// NewNamespace creates a namespace pre-seeded with the standard event
// calculus sorts rooted at Object.
func NewNamespace() *Namespace {
	n := &Namespace{
		sorts: make(map[string]*Sort),
		preds: make(map[string]*Predicate),
		funcs: make(map[string]*Function),
		vars:  make(map[string]Variable),
	}
	object := NewSort(SortObject, nil)
	n.sorts[SortObject] = object
	for _, name := range []string{SortAgent, SortActionType, SortEvent, SortMoment, SortFluent, SortBoolean} {
		n.sorts[name] = NewSort(name, object)
	}
	n.sorts[SortSelf] = NewSort(SortSelf, n.sorts[SortAgent])
	n.sorts[SortAction] = NewSort(SortAction, n.sorts[SortEvent])
	return n
}

// DeclareSort registers a sort under the named parent. An empty parent name
// places the sort under Object.
func (n *Namespace) DeclareSort(name, parent string) (*Sort, error) {
	if parent == "" {
		parent = SortObject
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	p, ok := n.sorts[parent]
	if !ok {
		return nil, fmt.Errorf("declare sort %s: unknown parent sort %s", name, parent)
	}
	if existing, ok := n.sorts[name]; ok {
		if existing.Parent == nil || existing.Parent.Name != p.Name {
			return nil, fmt.Errorf("declare sort %s: already declared with a different parent", name)
		}
		return existing, nil
	}
	s := NewSort(name, p)
	n.sorts[name] = s
	return s, nil
}

// SortByName looks up a declared sort.
func (n *Namespace) SortByName(name string) (*Sort, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	s, ok := n.sorts[name]
	return s, ok
}

// DeclarePredicate registers a predicate over the named argument sorts.
func (n *Namespace) DeclarePredicate(name string, argSorts ...string) (*Predicate, error) {
	sorts, err := n.resolveSorts("predicate "+name, argSorts)
	if err != nil {
		return nil, err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if existing, ok := n.preds[name]; ok {
		if !sameSortSlice(existing.ArgSorts, sorts) {
			return nil, fmt.Errorf("declare predicate %s: already declared with a different signature", name)
		}
		return existing, nil
	}
	p := NewPredicate(name, sorts...)
	n.preds[name] = p
	return p, nil
}

// PredicateByName looks up a declared predicate.
func (n *Namespace) PredicateByName(name string) (*Predicate, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	p, ok := n.preds[name]
	return p, ok
}

// DeclareFunction registers a function with the named return and argument
// sorts.
func (n *Namespace) DeclareFunction(name, returnSort string, argSorts ...string) (*Function, error) {
	sorts, err := n.resolveSorts("function "+name, argSorts)
	if err != nil {
		return nil, err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	ret, ok := n.sorts[returnSort]
	if !ok {
		return nil, fmt.Errorf("declare function %s: unknown return sort %s", name, returnSort)
	}
	if existing, ok := n.funcs[name]; ok {
		if existing.ReturnSort.Name != ret.Name || !sameSortSlice(existing.ArgSorts, sorts) {
			return nil, fmt.Errorf("declare function %s: already declared with a different signature", name)
		}
		return existing, nil
	}
	f := NewFunction(name, ret, sorts...)
	n.funcs[name] = f
	return f, nil
}

// FunctionByName looks up a declared function.
func (n *Namespace) FunctionByName(name string) (*Function, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	f, ok := n.funcs[name]
	return f, ok
}

// DeclareVariable registers a typed variable.
func (n *Namespace) DeclareVariable(name, sortName string) (Variable, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	s, ok := n.sorts[sortName]
	if !ok {
		return Variable{}, fmt.Errorf("declare variable %s: unknown sort %s", name, sortName)
	}
	if existing, ok := n.vars[name]; ok {
		if existing.Sort.Name != s.Name {
			return Variable{}, fmt.Errorf("declare variable %s: already declared with sort %s", name, existing.Sort.Name)
		}
		return existing, nil
	}
	v := NewVariable(name, s)
	n.vars[name] = v
	return v, nil
}

// VariableByName looks up a declared variable.
func (n *Namespace) VariableByName(name string) (Variable, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	v, ok := n.vars[name]
	return v, ok
}

// SortNames lists the declared sorts in lexical order.
func (n *Namespace) SortNames() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	names := make([]string, 0, len(n.sorts))
	for name := range n.sorts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (n *Namespace) resolveSorts(context string, names []string) ([]*Sort, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	sorts := make([]*Sort, len(names))
	for i, name := range names {
		s, ok := n.sorts[name]
		if !ok {
			return nil, fmt.Errorf("declare %s: unknown sort %s", context, name)
		}
		sorts[i] = s
	}
	return sorts, nil
}

func sameSortSlice(a, b []*Sort) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name {
			return false
		}
	}
	return true
}
