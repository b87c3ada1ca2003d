package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/codefionn/rechenschnell/internal/calc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCLI(opts Options) (*CLI, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return New(&out, &errOut, opts), &out, &errOut
}

func TestRunPrintsResult(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"3+4*5", "23\n"},
		{"2^3^2", "512\n"},
		{"-3+5", "2\n"},
		{"3(4+5)", "27\n"},
		{"  7 / 2 ", "3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			c, out, errOut := newTestCLI(Options{})
			require.NoError(t, c.Run(tt.input))
			assert.Equal(t, tt.want, out.String())
			assert.Empty(t, errOut.String())
		})
	}
}

func TestRunReportsError(t *testing.T) {
	c, out, errOut := newTestCLI(Options{})

	err := c.Run("1/0")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEvaluationFailed))
	assert.True(t, errors.Is(err, calc.ErrDivisionByZero))
	assert.Empty(t, out.String())
	assert.Equal(t, "Error: cannot divide 1 by zero\n", errOut.String())
}

func TestRunShowsTreeAndTokens(t *testing.T) {
	c, out, _ := newTestCLI(Options{ShowTree: true, ShowTokens: true})

	require.NoError(t, c.Run("-2(3)"))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "tokens: 0 - 2 * ( 3 )", lines[0])
	assert.Equal(t, "tree: (0 - (2 * 3))", lines[1])
	assert.Equal(t, "-6", lines[2])
}

func TestRunTokensLexicalError(t *testing.T) {
	c, out, errOut := newTestCLI(Options{ShowTokens: true})

	err := c.Run("2.5")
	require.Error(t, err)
	assert.True(t, errors.Is(err, calc.ErrUnrecognizedCharacter))
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "unrecognized character")
}

func TestRunLinesContinuesAfterFailure(t *testing.T) {
	c, out, errOut := newTestCLI(Options{})
	input := "1+1\n\n1/0\r\n2^10\n   \n"

	err := c.RunLines(strings.NewReader(input))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEvaluationFailed))
	assert.Contains(t, err.Error(), "1 of 3")
	assert.Equal(t, "2\n1024\n", out.String())
	assert.Equal(t, "Error: cannot divide 1 by zero\n", errOut.String())
}

func TestRunLinesAllSucceed(t *testing.T) {
	c, out, _ := newTestCLI(Options{})
	require.NoError(t, c.RunLines(strings.NewReader("10 % 3\n(1+2)(3+4)")))
	assert.Equal(t, "1\n21\n", out.String())
}

func TestRunLinesEmptyInput(t *testing.T) {
	c, out, errOut := newTestCLI(Options{})
	require.NoError(t, c.RunLines(strings.NewReader("")))
	assert.Empty(t, out.String())
	assert.Empty(t, errOut.String())
}

func TestPrintSyntaxPlainWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintSyntax(&buf))
	assert.Equal(t, SyntaxReference, buf.String())
}

func TestRenderMarkdown(t *testing.T) {
	out, err := RenderMarkdown("# Title\n\nsome `code`", 40)
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "code")
}
