package logic

import "fmt"

// Validation error kinds. Construction of terms and formulas fails eagerly so
// that malformed structures never reach the rule engine.
const (
	KindArity   = "arity"
	KindSort    = "sort"
	KindOperand = "operand"
	KindAgent   = "agent"
)

// ValidationError reports a rejected term or formula construction.
type ValidationError struct {
	Kind   string // one of the Kind* constants
	Symbol string // offending symbol, when known
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Symbol == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Symbol, e.Detail)
}

func arityError(symbol string, want, got int) *ValidationError {
	return &ValidationError{
		Kind:   KindArity,
		Symbol: symbol,
		Detail: fmt.Sprintf("expects %d arguments, got %d", want, got),
	}
}

func sortError(symbol string, pos int, want, got *Sort) *ValidationError {
	return &ValidationError{
		Kind:   KindSort,
		Symbol: symbol,
		Detail: fmt.Sprintf("argument %d has sort %s, want %s", pos, got, want),
	}
}

func operandError(symbol, detail string) *ValidationError {
	return &ValidationError{Kind: KindOperand, Symbol: symbol, Detail: detail}
}
