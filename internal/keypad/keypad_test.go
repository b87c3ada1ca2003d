package keypad

import (
	"errors"
	"fmt"
	"testing"

	"github.com/codefionn/rechenschnell/internal/calc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		name     string
		expected Key
		ok       bool
	}{
		{"7", Char('7'), true},
		{"^", Char('^'), true},
		{"(", Char('('), true},
		{"space", Char(' '), true},
		{"enter", Evaluate, true},
		{"=", Evaluate, true},
		{"backspace", Backspace, true},
		{"esc", Clear, true},
		{"c", Clear, true},
		{"x", Key{}, false},
		{".", Key{}, false},
		{"ctrl+c", Key{}, false},
		{"", Key{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := ParseKey(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, key)
		})
	}
}

func TestKeypadEvaluate(t *testing.T) {
	k := New(Options{LockOnError: true, HistorySize: 10})

	assert.Equal(t, OutcomeAccepted, k.Type("3+4*5"))
	assert.Equal(t, "3+4*5", k.Display())

	assert.Equal(t, OutcomeEvaluated, k.Press(Evaluate))
	assert.Equal(t, "23", k.Display())
	assert.NoError(t, k.Err())

	// The result is the start of the next expression
	k.Type("-30")
	require.Equal(t, OutcomeEvaluated, k.Press(Evaluate))
	assert.Equal(t, "-7", k.Input())

	k.Type("*2")
	require.Equal(t, OutcomeEvaluated, k.Press(Evaluate))
	assert.Equal(t, "-14", k.Input())
}

func TestKeypadLocksAfterError(t *testing.T) {
	k := New(Options{LockOnError: true, HistorySize: 10})

	k.Type("1/0")
	assert.Equal(t, OutcomeFailed, k.Press(Evaluate))
	assert.True(t, k.Locked())
	assert.Equal(t, "Error: cannot divide 1 by zero", k.Display())
	assert.True(t, errors.Is(k.Err(), calc.ErrDivisionByZero))

	assert.Equal(t, OutcomeLocked, k.Press(Char('1')))
	assert.Equal(t, OutcomeLocked, k.Press(Backspace))
	assert.Equal(t, OutcomeLocked, k.Press(Evaluate))

	assert.Equal(t, OutcomeCleared, k.Press(Clear))
	assert.False(t, k.Locked())
	assert.Equal(t, "", k.Display())

	k.Type("2^3^2")
	require.Equal(t, OutcomeEvaluated, k.Press(Evaluate))
	assert.Equal(t, "512", k.Display())
}

func TestKeypadWithoutLockStartsFresh(t *testing.T) {
	k := New(Options{LockOnError: false})

	k.Type("(1")
	require.Equal(t, OutcomeFailed, k.Press(Evaluate))
	assert.False(t, k.Locked())

	// Evaluating the error display again does nothing
	assert.Equal(t, OutcomeIgnored, k.Press(Evaluate))

	assert.Equal(t, OutcomeAccepted, k.Press(Char('4')))
	assert.Equal(t, "4", k.Display())
}

func TestKeypadBackspace(t *testing.T) {
	k := New(Options{})

	assert.Equal(t, OutcomeIgnored, k.Press(Backspace))
	k.Type("12+")
	assert.Equal(t, OutcomeAccepted, k.Press(Backspace))
	assert.Equal(t, "12", k.Input())

	k.Type("+a")
	require.Equal(t, OutcomeFailed, k.Press(Evaluate))
	// Backspace dismisses an unlocked error and keeps the expression for editing
	assert.Equal(t, OutcomeAccepted, k.Press(Backspace))
	assert.Equal(t, "12+a", k.Display())
	k.Press(Backspace)
	k.Type("3")
	require.Equal(t, OutcomeEvaluated, k.Press(Evaluate))
	assert.Equal(t, "15", k.Display())
}

func TestKeypadMaxInput(t *testing.T) {
	k := New(Options{MaxInput: 3})

	assert.Equal(t, OutcomeAccepted, k.Type("123"))
	assert.Equal(t, OutcomeIgnored, k.Press(Char('4')))
	assert.Equal(t, "123", k.Input())
}

func TestKeypadHistoryIsBounded(t *testing.T) {
	k := New(Options{HistorySize: 2})

	for i := 1; i <= 3; i++ {
		k.Clear()
		k.Type(fmt.Sprintf("%d+%d", i, i))
		k.Press(Evaluate)
	}

	history := k.History()
	require.Len(t, history, 2)
	assert.Equal(t, "2+2", history[0].Input)
	assert.Equal(t, int64(4), history[0].Result)
	assert.Equal(t, "3+3", history[1].Input)

	// History is a copy
	history[0].Input = "changed"
	assert.Equal(t, "2+2", k.History()[0].Input)
}

func TestKeypadHistoryRecordsFailures(t *testing.T) {
	k := New(Options{HistorySize: 5})
	k.Type("0^0")
	k.Press(Evaluate)

	history := k.History()
	require.Len(t, history, 1)
	assert.ErrorIs(t, history[0].Err, calc.ErrUndefinedPower)
}

func TestKeypadHistoryDisabled(t *testing.T) {
	k := New(Options{})
	k.Type("1+1")
	k.Press(Evaluate)
	assert.Empty(t, k.History())
}

func TestKeypadEmptyEvaluate(t *testing.T) {
	k := New(Options{})
	assert.Equal(t, OutcomeFailed, k.Press(Evaluate))
	assert.Equal(t, "Error: nothing to evaluate", k.Display())
}
