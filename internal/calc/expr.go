package calc

import (
	"fmt"
	"math"
	"strconv"
)

// Node is an immutable expression tree node. Every BinaryOp owns exactly
// two children; nodes are never shared between trees.
type Node interface {
	Eval() (int64, error)
	String() string
}

// Literal is a leaf holding an integer value
type Literal struct {
	Value int64
}

// BinaryOp combines two subtrees with an operator
type BinaryOp struct {
	Op    Operator
	Left  Node
	Right Node
}

// Eval evaluates a tree bottom-up
func Eval(n Node) (int64, error) {
	if n == nil {
		return 0, newError(KindEmptyOrUnparseable, -1)
	}
	return n.Eval()
}

func (l *Literal) Eval() (int64, error) {
	return l.Value, nil
}

func (l *Literal) String() string {
	return strconv.FormatInt(l.Value, 10)
}

// Eval evaluates the left subtree, then the right, then combines them.
// The first failure is returned without evaluating the rest.
func (b *BinaryOp) Eval() (int64, error) {
	left, err := b.Left.Eval()
	if err != nil {
		return 0, err
	}
	right, err := b.Right.Eval()
	if err != nil {
		return 0, err
	}
	return apply(b.Op, left, right)
}

func (b *BinaryOp) String() string {
	return fmt.Sprintf("(%s %c %s)", b.Left, b.Op.Symbol(), b.Right)
}

func apply(op Operator, left, right int64) (int64, error) {
	switch op {
	case OpAdd:
		sum := left + right
		if (left > 0 && right > 0 && sum < 0) || (left < 0 && right < 0 && sum >= 0) {
			return 0, overflow(op)
		}
		return sum, nil
	case OpSub:
		diff := left - right
		if (left >= 0 && right < 0 && diff < 0) || (left < 0 && right > 0 && diff >= 0) {
			return 0, overflow(op)
		}
		return diff, nil
	case OpMul:
		return mul(left, right)
	case OpDiv:
		if right == 0 {
			return 0, &Error{Kind: KindDivisionByZero, Operand: left, Op: op, Pos: -1}
		}
		if left == math.MinInt64 && right == -1 {
			return 0, overflow(op)
		}
		return left / right, nil
	case OpMod:
		if right == 0 {
			return 0, &Error{Kind: KindModuloByZero, Operand: left, Op: op, Pos: -1}
		}
		return left % right, nil
	case OpPow:
		return pow(left, right)
	default:
		return 0, fmt.Errorf("unsupported operator %d", op)
	}
}

func mul(left, right int64) (int64, error) {
	if left == 0 || right == 0 {
		return 0, nil
	}
	product := left * right
	if product/right != left || (left == -1 && right == math.MinInt64) || (right == -1 && left == math.MinInt64) {
		return 0, overflow(OpMul)
	}
	return product, nil
}

// pow raises base to a non-negative exponent by repeated multiplication.
// Bases 0, 1 and -1 are closed-form; any other base overflows int64 within
// 63 steps, so the loop is bounded.
func pow(base, exp int64) (int64, error) {
	if base == 0 && exp == 0 {
		return 0, &Error{Kind: KindUndefinedPower, Op: OpPow, Pos: -1}
	}
	if exp < 0 {
		return 0, &Error{Kind: KindNegativeExponent, Op: OpPow, Pos: -1}
	}

	switch base {
	case 0:
		return 0, nil
	case 1:
		return 1, nil
	case -1:
		if exp%2 == 0 {
			return 1, nil
		}
		return -1, nil
	}

	result := int64(1)
	for i := int64(0); i < exp; i++ {
		next, err := mul(result, base)
		if err != nil {
			return 0, overflow(OpPow)
		}
		result = next
	}
	return result, nil
}

func overflow(op Operator) *Error {
	return &Error{Kind: KindOverflow, Op: op, Pos: -1}
}
