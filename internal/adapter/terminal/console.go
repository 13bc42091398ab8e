// Package terminal drives the marketplace from an interactive text
// session. All input goes through port.Prompter so scripts can replace
// the keyboard in tests.
package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rl1809/retail/internal/port"
)

var _ port.Prompter = (*Console)(nil)

// Console prompts on out and reads answers line by line from in.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

func (c *Console) Prompt(text string) (string, error) {
	if _, err := fmt.Fprint(c.out, text); err != nil {
		return "", fmt.Errorf("write prompt: %w", err)
	}
	line, err := c.in.ReadString('\n')
	if errors.Is(err, io.EOF) && line != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
