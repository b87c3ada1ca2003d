package calc

import (
	"errors"
	"fmt"
)

// Kind classifies a failure of the evaluation pipeline
type Kind int

const (
	KindUnknown Kind = iota
	// Lexical
	KindUnrecognizedCharacter
	// Structural
	KindMismatchedParentheses
	KindMismatchedOperator
	KindTooManyExpressions
	KindEmptyOrUnparseable
	// Semantic
	KindDivisionByZero
	KindModuloByZero
	KindUndefinedPower
	KindNegativeExponent
	KindOverflow
)

// Stage names the pipeline stage a Kind belongs to
type Stage int

const (
	StageUnknown Stage = iota
	StageLexical
	StageStructural
	StageSemantic
)

// String returns the string representation of a Stage
func (s Stage) String() string {
	switch s {
	case StageLexical:
		return "lexical"
	case StageStructural:
		return "structural"
	case StageSemantic:
		return "semantic"
	default:
		return "unknown"
	}
}

// String returns the string representation of a Kind
func (k Kind) String() string {
	switch k {
	case KindUnrecognizedCharacter:
		return "UnrecognizedCharacter"
	case KindMismatchedParentheses:
		return "MismatchedParentheses"
	case KindMismatchedOperator:
		return "MismatchedOperator"
	case KindTooManyExpressions:
		return "TooManyExpressions"
	case KindEmptyOrUnparseable:
		return "EmptyOrUnparseable"
	case KindDivisionByZero:
		return "DivisionByZero"
	case KindModuloByZero:
		return "ModuloByZero"
	case KindUndefinedPower:
		return "UndefinedPower"
	case KindNegativeExponent:
		return "NegativeExponent"
	case KindOverflow:
		return "Overflow"
	default:
		return "Unknown"
	}
}

// Stage returns the pipeline stage that produces errors of this kind.
// Overflow is semantic even when raised for an oversized literal.
func (k Kind) Stage() Stage {
	switch k {
	case KindUnrecognizedCharacter:
		return StageLexical
	case KindMismatchedParentheses, KindMismatchedOperator, KindTooManyExpressions, KindEmptyOrUnparseable:
		return StageStructural
	case KindDivisionByZero, KindModuloByZero, KindUndefinedPower, KindNegativeExponent, KindOverflow:
		return StageSemantic
	default:
		return StageUnknown
	}
}

// Error is the single error type returned by every stage. Only the fields
// relevant to Kind are populated.
type Error struct {
	Kind Kind
	// Char is the offending character (UnrecognizedCharacter)
	Char rune
	// Pos is the rune offset of the offending token, or -1 when unknown
	Pos int
	// Operand is the left operand of a failed division or modulo
	Operand int64
	// Op is the operator that failed (semantic errors)
	Op Operator
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindUnrecognizedCharacter:
		return fmt.Sprintf("unrecognized character %q at position %d", e.Char, e.Pos)
	case KindMismatchedParentheses:
		if e.Pos >= 0 {
			return fmt.Sprintf("mismatched parenthesis at position %d", e.Pos)
		}
		return "mismatched parentheses"
	case KindMismatchedOperator:
		if e.Pos >= 0 {
			return fmt.Sprintf("operator %q at position %d is missing an operand", e.Op.Symbol(), e.Pos)
		}
		return "mismatched operator"
	case KindTooManyExpressions:
		return "too many expressions remaining after parsing"
	case KindEmptyOrUnparseable:
		return "nothing to evaluate"
	case KindDivisionByZero:
		return fmt.Sprintf("cannot divide %d by zero", e.Operand)
	case KindModuloByZero:
		return fmt.Sprintf("cannot take %d modulo zero", e.Operand)
	case KindUndefinedPower:
		return "0^0 is undefined"
	case KindNegativeExponent:
		return "cannot raise to a negative power"
	case KindOverflow:
		if e.Pos >= 0 {
			return fmt.Sprintf("integer literal at position %d is out of range", e.Pos)
		}
		return fmt.Sprintf("integer overflow in %s", e.Op)
	default:
		return "unknown evaluation error"
	}
}

// Is matches any *Error of the same Kind, so sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is checks
var (
	ErrUnrecognizedCharacter = &Error{Kind: KindUnrecognizedCharacter, Pos: -1}
	ErrMismatchedParentheses = &Error{Kind: KindMismatchedParentheses, Pos: -1}
	ErrMismatchedOperator    = &Error{Kind: KindMismatchedOperator, Pos: -1}
	ErrTooManyExpressions    = &Error{Kind: KindTooManyExpressions, Pos: -1}
	ErrEmptyOrUnparseable    = &Error{Kind: KindEmptyOrUnparseable, Pos: -1}
	ErrDivisionByZero        = &Error{Kind: KindDivisionByZero, Pos: -1}
	ErrModuloByZero          = &Error{Kind: KindModuloByZero, Pos: -1}
	ErrUndefinedPower        = &Error{Kind: KindUndefinedPower, Pos: -1}
	ErrNegativeExponent      = &Error{Kind: KindNegativeExponent, Pos: -1}
	ErrOverflow              = &Error{Kind: KindOverflow, Pos: -1}
)

// KindOf extracts the Kind from err, or KindUnknown if err is not an *Error
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func newError(kind Kind, pos int) *Error {
	return &Error{Kind: kind, Pos: pos}
}
