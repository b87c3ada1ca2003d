// Package cli evaluates expressions given on the command line or piped on
// standard input, one expression per line.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/codefionn/rechenschnell/internal/calc"
	"github.com/codefionn/rechenschnell/internal/consts"
	"github.com/codefionn/rechenschnell/internal/keypad"
	"github.com/codefionn/rechenschnell/internal/logger"
)

// ErrEvaluationFailed is returned when at least one expression failed
var ErrEvaluationFailed = errors.New("evaluation failed")

var (
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	treeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// Options control what is printed for each expression
type Options struct {
	// ShowTree prints the parsed tree before the result
	ShowTree bool
	// ShowTokens prints the normalized token stream before the result
	ShowTokens bool
	// Styled enables terminal colors
	Styled bool
}

// CLI writes results to Out and failures to Err
type CLI struct {
	Out     io.Writer
	Err     io.Writer
	options Options
}

// New creates a CLI
func New(out, errOut io.Writer, opts Options) *CLI {
	return &CLI{Out: out, Err: errOut, options: opts}
}

// Run evaluates a single expression. Failures are printed as
// "Error: <message>" and returned wrapped in ErrEvaluationFailed.
func (c *CLI) Run(input string) error {
	logger.Info("cli: evaluating %q", input)
	if err := c.evaluate(input); err != nil {
		return fmt.Errorf("%w: %w", ErrEvaluationFailed, err)
	}
	return nil
}

// RunLines evaluates every non-blank line of r. A failing line is reported
// and processing continues; ErrEvaluationFailed is returned if any failed.
func (c *CLI) RunLines(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024), consts.MaxLineBytes)

	var failures, lines int
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines++
		if err := c.evaluate(line); err != nil {
			failures++
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	logger.Info("cli: evaluated %d lines, %d failed", lines, failures)
	if failures > 0 {
		return fmt.Errorf("%w: %d of %d expressions", ErrEvaluationFailed, failures, lines)
	}
	return nil
}

func (c *CLI) evaluate(input string) error {
	if c.options.ShowTokens {
		tokens, err := calc.Tokenize(input)
		if err != nil {
			c.printError(err)
			return err
		}
		c.printDetail("tokens: " + calc.FormatTokens(calc.Normalize(tokens)))
	}

	tree, err := calc.Compile(input)
	if err != nil {
		c.printError(err)
		return err
	}
	if c.options.ShowTree {
		c.printDetail("tree: " + tree.String())
	}

	result, err := calc.Eval(tree)
	if err != nil {
		c.printError(err)
		return err
	}

	fmt.Fprintln(c.Out, strconv.FormatInt(result, 10))
	return nil
}

func (c *CLI) printDetail(s string) {
	if c.options.Styled {
		s = treeStyle.Render(s)
	}
	fmt.Fprintln(c.Out, s)
}

func (c *CLI) printError(err error) {
	msg := keypad.FormatError(err)
	if c.options.Styled {
		msg = errorStyle.Render(msg)
	}
	fmt.Fprintln(c.Err, msg)
}
