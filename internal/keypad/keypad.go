// Package keypad holds the input state of a calculator front end: the
// accumulated expression, the last result or error, an input lock after
// errors and a bounded in-memory history. It knows nothing about rendering;
// the TUI and the web page both drive it with keys.
package keypad

import (
	"strconv"

	"github.com/codefionn/rechenschnell/internal/calc"
	"github.com/codefionn/rechenschnell/internal/consts"
	"github.com/codefionn/rechenschnell/internal/logger"
)

// Outcome reports what a key press did
type Outcome int

const (
	OutcomeAccepted Outcome = iota
	OutcomeIgnored
	OutcomeLocked
	OutcomeEvaluated
	OutcomeFailed
	OutcomeCleared
)

// String returns the string representation of an Outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeAccepted:
		return "accepted"
	case OutcomeIgnored:
		return "ignored"
	case OutcomeLocked:
		return "locked"
	case OutcomeEvaluated:
		return "evaluated"
	case OutcomeFailed:
		return "failed"
	case OutcomeCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// Options configures a Keypad
type Options struct {
	// LockOnError makes every key except Clear a no-op after a failed evaluation
	LockOnError bool
	// HistorySize bounds History; zero disables it
	HistorySize int
	// MaxInput bounds the input length in runes; zero means consts.MaxInputLength
	MaxInput int
}

// Entry is one evaluated expression
type Entry struct {
	Input  string
	Result int64
	Err    error
}

// Keypad accumulates key presses into an expression and evaluates it.
// A Keypad is not safe for concurrent use.
type Keypad struct {
	opts     Options
	evaluate func(string) (int64, error)

	input   []rune
	err     error
	locked  bool
	history []Entry
}

// New creates a Keypad backed by calc.Evaluate
func New(opts Options) *Keypad {
	if opts.MaxInput <= 0 {
		opts.MaxInput = consts.MaxInputLength
	}
	if opts.HistorySize < 0 {
		opts.HistorySize = 0
	}
	return &Keypad{
		opts:     opts,
		evaluate: calc.Evaluate,
	}
}

// Press applies a single key
func (k *Keypad) Press(key Key) Outcome {
	if key.Kind == KeyClear {
		k.Clear()
		return OutcomeCleared
	}
	if k.locked {
		return OutcomeLocked
	}

	switch key.Kind {
	case KeyChar:
		return k.appendRune(key.Char)
	case KeyBackspace:
		if k.err != nil {
			k.err = nil
			return OutcomeAccepted
		}
		if len(k.input) == 0 {
			return OutcomeIgnored
		}
		k.input = k.input[:len(k.input)-1]
		return OutcomeAccepted
	case KeyEvaluate:
		return k.submit()
	default:
		return OutcomeIgnored
	}
}

// Type presses a key for every rune of s and returns the last outcome
func (k *Keypad) Type(s string) Outcome {
	outcome := OutcomeIgnored
	for _, r := range s {
		outcome = k.Press(Char(r))
	}
	return outcome
}

func (k *Keypad) appendRune(r rune) Outcome {
	if k.err != nil {
		// Unlocked error display: the next character starts a new expression
		k.err = nil
		k.input = k.input[:0]
	}
	if len(k.input) >= k.opts.MaxInput {
		return OutcomeIgnored
	}
	k.input = append(k.input, r)
	return OutcomeAccepted
}

func (k *Keypad) submit() Outcome {
	if k.err != nil {
		return OutcomeIgnored
	}

	expr := string(k.input)
	result, err := k.evaluate(expr)
	k.record(Entry{Input: expr, Result: result, Err: err})

	if err != nil {
		logger.Debug("keypad: %q failed: %v", expr, err)
		k.err = err
		k.locked = k.opts.LockOnError
		return OutcomeFailed
	}

	logger.Debug("keypad: %q = %d", expr, result)
	// The result becomes the new input so the user can keep computing
	k.input = []rune(strconv.FormatInt(result, 10))
	return OutcomeEvaluated
}

func (k *Keypad) record(e Entry) {
	if k.opts.HistorySize == 0 {
		return
	}
	if len(k.history) == k.opts.HistorySize {
		copy(k.history, k.history[1:])
		k.history = k.history[:len(k.history)-1]
	}
	k.history = append(k.history, e)
}

// Clear resets the input, the error and the lock. History is kept.
func (k *Keypad) Clear() {
	k.input = k.input[:0]
	k.err = nil
	k.locked = false
}

// Input returns the current expression
func (k *Keypad) Input() string {
	return string(k.input)
}

// Err returns the error of the last evaluation, if it is still displayed
func (k *Keypad) Err() error {
	return k.err
}

// Locked reports whether input is blocked until Clear
func (k *Keypad) Locked() bool {
	return k.locked
}

// Display returns what a front end should show: the expression, or
// "Error: <message>" after a failed evaluation
func (k *Keypad) Display() string {
	if k.err != nil {
		return FormatError(k.err)
	}
	return string(k.input)
}

// History returns the evaluated expressions, oldest first
func (k *Keypad) History() []Entry {
	return append([]Entry(nil), k.history...)
}

// FormatError renders an evaluation error for display
func FormatError(err error) string {
	return "Error: " + err.Error()
}
