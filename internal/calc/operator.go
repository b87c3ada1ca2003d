package calc

import "sync"

// Operator identifies a binary arithmetic operator
type Operator int

const (
	OpAdd Operator = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
)

// operatorInfo holds the static metadata of an operator
type operatorInfo struct {
	symbol     rune
	name       string
	precedence int
	rightAssoc bool
}

// operatorTable is the process-wide operator metadata. It is built on first
// use and never written again.
type operatorTable struct {
	byOp     map[Operator]operatorInfo
	bySymbol map[rune]Operator
}

var operators = sync.OnceValue(func() *operatorTable {
	byOp := map[Operator]operatorInfo{
		OpAdd: {symbol: '+', name: "Add", precedence: 0},
		OpSub: {symbol: '-', name: "Sub", precedence: 0},
		OpMul: {symbol: '*', name: "Mul", precedence: 1},
		OpDiv: {symbol: '/', name: "Div", precedence: 1},
		OpMod: {symbol: '%', name: "Mod", precedence: 1},
		OpPow: {symbol: '^', name: "Pow", precedence: 2, rightAssoc: true},
	}

	bySymbol := make(map[rune]Operator, len(byOp))
	for op, info := range byOp {
		bySymbol[info.symbol] = op
	}

	return &operatorTable{byOp: byOp, bySymbol: bySymbol}
})

// LookupOperator returns the operator registered for the given symbol
func LookupOperator(symbol rune) (Operator, bool) {
	op, ok := operators().bySymbol[symbol]
	return op, ok
}

// Symbol returns the character the operator is written with
func (o Operator) Symbol() rune {
	return operators().byOp[o].symbol
}

// Precedence returns the binding rank of the operator; higher binds tighter
func (o Operator) Precedence() int {
	return operators().byOp[o].precedence
}

// RightAssociative reports whether equal-precedence chains group from the right
func (o Operator) RightAssociative() bool {
	return operators().byOp[o].rightAssoc
}

// String returns the operator kind name (Add, Sub, ...)
func (o Operator) String() string {
	info, ok := operators().byOp[o]
	if !ok {
		return "Unknown"
	}
	return info.name
}
