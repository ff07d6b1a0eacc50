// Package problem loads reasoning problems from YAML files: symbol
// declarations, labeled axioms and a goal, compiled against a fresh
// namespace per problem.
package problem

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"dcec/internal/logic"
)

// Problem is the on-disk problem description. Formula fields use the prefix
// syntax accepted by logic.Parse.
type Problem struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description,omitempty"`
	Strategy    string       `yaml:"strategy,omitempty"`
	Sorts       []SortDecl   `yaml:"sorts,omitempty"`
	Predicates  []SymbolDecl `yaml:"predicates,omitempty"`
	Functions   []FuncDecl   `yaml:"functions,omitempty"`
	Variables   []VarDecl    `yaml:"variables,omitempty"`
	Axioms      []Axiom      `yaml:"axioms"`
	Goal        string       `yaml:"goal"`
}

// SortDecl declares a sort under an optional parent.
type SortDecl struct {
	Name   string `yaml:"name"`
	Parent string `yaml:"parent,omitempty"`
}

// SymbolDecl declares a predicate and its argument sorts.
type SymbolDecl struct {
	Name string   `yaml:"name"`
	Args []string `yaml:"args,omitempty"`
}

// FuncDecl declares a function, its argument sorts and return sort.
type FuncDecl struct {
	Name    string   `yaml:"name"`
	Args    []string `yaml:"args,omitempty"`
	Returns string   `yaml:"returns"`
}

// VarDecl declares a typed variable usable in any formula of the problem.
type VarDecl struct {
	Name string `yaml:"name"`
	Sort string `yaml:"sort"`
}

// Axiom is one assumption; the label is optional and defaults to axiom_N.
type Axiom struct {
	Label   string `yaml:"label,omitempty"`
	Formula string `yaml:"formula"`
}

// UnmarshalYAML accepts either a bare formula string or the labeled mapping
// form.
func (a *Axiom) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		a.Formula = node.Value
		return nil
	}
	type raw Axiom
	var r raw
	if err := node.Decode(&r); err != nil {
		return err
	}
	*a = Axiom(r)
	return nil
}

// Load reads and decodes a problem file.
func Load(path string) (*Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load problem: %w", err)
	}
	var p Problem
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("load problem %s: %w", path, err)
	}
	if p.Goal == "" {
		return nil, fmt.Errorf("load problem %s: missing goal", path)
	}
	return &p, nil
}

// Compiled is a problem resolved into formulas.
type Compiled struct {
	Namespace *logic.Namespace
	Axioms    []logic.Statement
	Goal      logic.Formula
}

// Compile declares the problem's symbols in a fresh namespace and parses the
// axioms and goal.
func (p *Problem) Compile() (*Compiled, error) {
	ns := logic.NewNamespace()
	for _, s := range p.Sorts {
		if _, err := ns.DeclareSort(s.Name, s.Parent); err != nil {
			return nil, err
		}
	}
	for _, d := range p.Predicates {
		if _, err := ns.DeclarePredicate(d.Name, d.Args...); err != nil {
			return nil, err
		}
	}
	for _, d := range p.Functions {
		if _, err := ns.DeclareFunction(d.Name, d.Returns, d.Args...); err != nil {
			return nil, err
		}
	}
	for _, d := range p.Variables {
		if _, err := ns.DeclareVariable(d.Name, d.Sort); err != nil {
			return nil, err
		}
	}
	c := &Compiled{Namespace: ns}
	for i, ax := range p.Axioms {
		f, err := logic.Parse(ns, ax.Formula)
		if err != nil {
			return nil, fmt.Errorf("axiom %d: %w", i+1, err)
		}
		label := ax.Label
		if label == "" {
			label = fmt.Sprintf("axiom_%d", i+1)
		}
		c.Axioms = append(c.Axioms, logic.NewStatement(f, label))
	}
	goal, err := logic.Parse(ns, p.Goal)
	if err != nil {
		return nil, fmt.Errorf("goal: %w", err)
	}
	c.Goal = goal
	return c, nil
}
