package calc

import (
	"strconv"
)

// Tokenize splits input into literal, operator and parenthesis tokens.
// Spaces are skipped; any other character outside the alphabet fails.
func Tokenize(input string) ([]Token, error) {
	runes := []rune(input)
	tokens := make([]Token, 0, len(runes))

	for i := 0; i < len(runes); {
		c := runes[i]
		switch {
		case isDigit(c):
			start := i
			for i < len(runes) && isDigit(runes[i]) {
				i++
			}
			value, err := strconv.ParseInt(string(runes[start:i]), 10, 64)
			if err != nil {
				return nil, newError(KindOverflow, start)
			}
			tokens = append(tokens, LiteralToken(value, start))
			continue
		case c == '(':
			tokens = append(tokens, OpenParenToken(i))
		case c == ')':
			tokens = append(tokens, CloseParenToken(i))
		case c == ' ':
		default:
			op, ok := LookupOperator(c)
			if !ok {
				return nil, &Error{Kind: KindUnrecognizedCharacter, Char: c, Pos: i}
			}
			tokens = append(tokens, OperatorToken(op, i))
		}
		i++
	}

	return tokens, nil
}

// isDigit accepts ASCII decimal digits only
func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}
