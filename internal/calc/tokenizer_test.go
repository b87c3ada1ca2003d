package calc

import (
	"errors"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"12 + (1 * 7)", "12 + ( 1 * 7 )"},
		{"3+4", "3 + 4"},
		{"  42  ", "42"},
		{"7%3^2/1-0", "7 % 3 ^ 2 / 1 - 0"},
		{"(()", "( ( )"},
		{"", ""},
		{"007", "7"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("Tokenize(%q) returned unexpected error: %v", tt.input, err)
			}
			if got := FormatTokens(tokens); got != tt.expected {
				t.Errorf("Tokenize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestTokenizeMaximalDigitRun(t *testing.T) {
	tokens, err := Tokenize("123 45")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(tokens))
	}
	if tokens[0].Kind != TokenLiteral || tokens[0].Value != 123 || tokens[0].Pos != 0 {
		t.Errorf("unexpected first token: %+v", tokens[0])
	}
	if tokens[1].Kind != TokenLiteral || tokens[1].Value != 45 || tokens[1].Pos != 4 {
		t.Errorf("unexpected second token: %+v", tokens[1])
	}
}

func TestTokenizeOperatorKinds(t *testing.T) {
	tokens, err := Tokenize("+-*/%^")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []Operator{OpAdd, OpSub, OpMul, OpDiv, OpMod, OpPow}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}
	for i, op := range expected {
		if !tokens[i].IsOperator(op) {
			t.Errorf("token %d: expected %s, got %+v", i, op, tokens[i])
		}
		if tokens[i].Pos != i {
			t.Errorf("token %d: expected position %d, got %d", i, i, tokens[i].Pos)
		}
	}
}

func TestTokenizeUnrecognizedCharacter(t *testing.T) {
	tests := []struct {
		input string
		char  rune
		pos   int
	}{
		{"1+a", 'a', 2},
		{"1.5", '.', 1},
		{"2\t+3", '\t', 1},
		{"1+ä", 'ä', 2},
		{"x", 'x', 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Tokenize(tt.input)
			if !errors.Is(err, ErrUnrecognizedCharacter) {
				t.Fatalf("Tokenize(%q) error = %v, want UnrecognizedCharacter", tt.input, err)
			}
			var calcErr *Error
			if !errors.As(err, &calcErr) {
				t.Fatalf("expected *Error, got %T", err)
			}
			if calcErr.Char != tt.char || calcErr.Pos != tt.pos {
				t.Errorf("got char %q at %d, want %q at %d", calcErr.Char, calcErr.Pos, tt.char, tt.pos)
			}
		})
	}
}

func TestTokenizeLiteralOutOfRange(t *testing.T) {
	_, err := Tokenize("1+99999999999999999999")
	if !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected Overflow, got %v", err)
	}
	var calcErr *Error
	if errors.As(err, &calcErr) && calcErr.Pos != 2 {
		t.Errorf("expected position 2, got %d", calcErr.Pos)
	}
}

func TestTokenizeLargestLiteral(t *testing.T) {
	tokens, err := Tokenize("9223372036854775807")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[0].Value != 9223372036854775807 {
		t.Errorf("unexpected value %d", tokens[0].Value)
	}
}
