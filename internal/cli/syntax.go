package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

const defaultWrapWidth = 80

// SyntaxReference documents the accepted expression language
const SyntaxReference = `# rechenschnell

Integer arithmetic on 64-bit signed numbers.

## Operators

| Operator | Meaning        | Precedence | Associativity |
|----------|----------------|------------|---------------|
| ` + "`+`" + `      | addition       | 0          | left          |
| ` + "`-`" + `      | subtraction    | 0          | left          |
| ` + "`*`" + `      | multiplication | 1          | left          |
| ` + "`/`" + `      | division       | 1          | left          |
| ` + "`%`" + `      | remainder      | 1          | left          |
| ` + "`^`" + `      | power          | 2          | right         |

## Rules

- Division truncates toward zero, the remainder takes the sign of the dividend.
- A leading ` + "`-`" + `, or one right after ` + "`(`" + `, negates: ` + "`-3+5`" + ` is 2.
- A number or ` + "`)`" + ` directly before ` + "`(`" + ` multiplies: ` + "`3(4+5)`" + ` is 27.
- ` + "`)`" + ` directly before a number multiplies: ` + "`(2)3`" + ` is 6.
- Whitespace is ignored. Decimal points and letters are rejected.

## Errors

Division or remainder by zero, ` + "`0^0`" + `, negative exponents and any result
outside the 64-bit range fail with a message instead of a number.
`

// PrintSyntax writes the syntax reference. On a terminal it is rendered
// with glamour, otherwise the raw markdown is written.
func PrintSyntax(w io.Writer) error {
	width, ok := terminalWidth(w)
	if !ok {
		_, err := io.WriteString(w, SyntaxReference)
		return err
	}

	rendered, err := RenderMarkdown(SyntaxReference, width)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, rendered)
	return err
}

// RenderMarkdown renders markdown for a terminal of the given width
func RenderMarkdown(markdown string, width int) (string, error) {
	if width <= 0 {
		width = defaultWrapWidth
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
		glamour.WithPreservedNewLines(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}

func terminalWidth(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok {
		return 0, false
	}
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return 0, false
	}
	if width, _, err := term.GetSize(fd); err == nil && width > 0 {
		return min(width, defaultWrapWidth), true
	}
	return defaultWrapWidth, true
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
