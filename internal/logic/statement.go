package logic

// Statement is a labeled assertion: a formula together with the bookkeeping
// callers attach to it. Labels name axioms in rendered proofs; metadata is
// free-form provenance.
type Statement struct {
	Formula Formula
	Label   string
	Meta    map[string]string
}

// NewStatement labels a formula.
func NewStatement(f Formula, label string) Statement {
	return Statement{Formula: f, Label: label}
}

// WithMeta returns a copy of the statement carrying an extra metadata entry.
func (s Statement) WithMeta(key, value string) Statement {
	meta := make(map[string]string, len(s.Meta)+1)
	for k, v := range s.Meta {
		meta[k] = v
	}
	meta[key] = value
	s.Meta = meta
	return s
}

// Formulas projects the formula slice out of a statement list.
func Formulas(stmts []Statement) []Formula {
	fs := make([]Formula, len(stmts))
	for i, s := range stmts {
		fs[i] = s.Formula
	}
	return fs
}
