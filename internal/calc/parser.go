package calc

// parser holds the two shunting-yard stacks. Both grow and shrink from the
// end of the slice.
type parser struct {
	ops   []Token
	nodes []Node
}

// Parse builds an expression tree from a normalized token sequence using
// operator precedence (shunting-yard). Exactly one tree must remain once
// every operator has been reduced.
func Parse(tokens []Token) (Node, error) {
	p := &parser{
		ops:   make([]Token, 0, len(tokens)/2+1),
		nodes: make([]Node, 0, len(tokens)/2+1),
	}

	for _, tok := range tokens {
		var err error
		switch tok.Kind {
		case TokenLiteral:
			p.nodes = append(p.nodes, &Literal{Value: tok.Value})
		case TokenOperator:
			err = p.pushOperator(tok)
		case TokenOpenParen:
			p.ops = append(p.ops, tok)
		case TokenCloseParen:
			err = p.closeParen(tok)
		}
		if err != nil {
			return nil, err
		}
	}

	for len(p.ops) > 0 {
		top := p.popOp()
		if top.Kind == TokenOpenParen {
			return nil, newError(KindMismatchedParentheses, top.Pos)
		}
		if err := p.reduce(top); err != nil {
			return nil, err
		}
	}

	switch len(p.nodes) {
	case 0:
		return nil, newError(KindEmptyOrUnparseable, -1)
	case 1:
		return p.nodes[0], nil
	default:
		return nil, newError(KindTooManyExpressions, -1)
	}
}

// pushOperator reduces every stacked operator that binds at least as tight
// as tok (strictly tighter when tok is right-associative), then pushes tok.
func (p *parser) pushOperator(tok Token) error {
	for len(p.ops) > 0 {
		top := p.ops[len(p.ops)-1]
		if top.Kind == TokenOpenParen {
			break
		}

		topPrec, prec := top.Op.Precedence(), tok.Op.Precedence()
		if topPrec < prec || (topPrec == prec && tok.Op.RightAssociative()) {
			break
		}

		p.popOp()
		if err := p.reduce(top); err != nil {
			return err
		}
	}

	p.ops = append(p.ops, tok)
	return nil
}

// closeParen reduces back to the matching "(" and discards it
func (p *parser) closeParen(tok Token) error {
	for {
		if len(p.ops) == 0 {
			return newError(KindMismatchedParentheses, tok.Pos)
		}
		top := p.popOp()
		if top.Kind == TokenOpenParen {
			return nil
		}
		if err := p.reduce(top); err != nil {
			return err
		}
	}
}

// reduce pops the right then the left operand and pushes the combined node
func (p *parser) reduce(op Token) error {
	if len(p.nodes) < 2 {
		return &Error{Kind: KindMismatchedOperator, Op: op.Op, Pos: op.Pos}
	}

	n := len(p.nodes)
	right, left := p.nodes[n-1], p.nodes[n-2]
	p.nodes = p.nodes[:n-2]
	p.nodes = append(p.nodes, &BinaryOp{Op: op.Op, Left: left, Right: right})
	return nil
}

func (p *parser) popOp() Token {
	top := p.ops[len(p.ops)-1]
	p.ops = p.ops[:len(p.ops)-1]
	return top
}
