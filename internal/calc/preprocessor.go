package calc

// Normalize makes implicit operators explicit so the parser only sees binary
// operators:
//
//	-12     -> 0 - 12       (leading minus)
//	4+(-12) -> 4 + (0 - 12) (minus after "(")
//	3(12)   -> 3 * (12)     (literal or ")" before "(")
//	(12)3   -> (12) * 3     (")" before literal)
//
// Each rule looks at the current token and the last token emitted, and the
// rules trigger on different current-token kinds, so their order never
// matters. Inserted tokens take the position of the token that caused them.
// Normalize never fails and never drops or reorders input tokens.
func Normalize(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens)+len(tokens)/2)

	for _, tok := range tokens {
		var prev *Token
		if len(out) > 0 {
			prev = &out[len(out)-1]
		}

		switch tok.Kind {
		case TokenOperator:
			if tok.Op == OpSub && (prev == nil || prev.Kind == TokenOpenParen) {
				out = append(out, LiteralToken(0, tok.Pos))
			}
		case TokenOpenParen:
			if prev != nil && (prev.Kind == TokenLiteral || prev.Kind == TokenCloseParen) {
				out = append(out, OperatorToken(OpMul, tok.Pos))
			}
		case TokenLiteral:
			if prev != nil && prev.Kind == TokenCloseParen {
				out = append(out, OperatorToken(OpMul, tok.Pos))
			}
		}

		out = append(out, tok)
	}

	return out
}
