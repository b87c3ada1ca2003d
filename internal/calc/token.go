package calc

import (
	"strconv"
	"strings"
)

// TokenKind is the lexical category of a token
type TokenKind int

const (
	TokenLiteral TokenKind = iota
	TokenOperator
	TokenOpenParen
	TokenCloseParen
)

// String returns the string representation of a TokenKind
func (k TokenKind) String() string {
	switch k {
	case TokenLiteral:
		return "literal"
	case TokenOperator:
		return "operator"
	case TokenOpenParen:
		return "open_paren"
	case TokenCloseParen:
		return "close_paren"
	default:
		return "unknown"
	}
}

// Token is a single lexical unit. Value is set for literals, Op for operators.
// Pos is the rune offset in the original input.
type Token struct {
	Kind  TokenKind
	Value int64
	Op    Operator
	Pos   int
}

// LiteralToken creates a literal token
func LiteralToken(value int64, pos int) Token {
	return Token{Kind: TokenLiteral, Value: value, Pos: pos}
}

// OperatorToken creates an operator token
func OperatorToken(op Operator, pos int) Token {
	return Token{Kind: TokenOperator, Op: op, Pos: pos}
}

// OpenParenToken creates a "(" token
func OpenParenToken(pos int) Token {
	return Token{Kind: TokenOpenParen, Pos: pos}
}

// CloseParenToken creates a ")" token
func CloseParenToken(pos int) Token {
	return Token{Kind: TokenCloseParen, Pos: pos}
}

// IsOperator reports whether t is the given operator
func (t Token) IsOperator(op Operator) bool {
	return t.Kind == TokenOperator && t.Op == op
}

// String renders the token as it would appear in the input
func (t Token) String() string {
	switch t.Kind {
	case TokenLiteral:
		return strconv.FormatInt(t.Value, 10)
	case TokenOperator:
		return string(t.Op.Symbol())
	case TokenOpenParen:
		return "("
	case TokenCloseParen:
		return ")"
	default:
		return "?"
	}
}

// FormatTokens joins tokens with single spaces
func FormatTokens(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}
