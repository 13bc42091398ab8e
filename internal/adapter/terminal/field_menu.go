package terminal

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rl1809/retail/internal/core/domain"
	"github.com/rl1809/retail/internal/port"
)

var _ port.ChangeSource = (*FieldMenu)(nil)

const fieldMenuText = `Choose a field to update:
1. number of units
2. price per unit
3. exit
`

// FieldMenu asks which product fields to overwrite until the user picks
// exit. Choosing a field twice keeps the last value.
type FieldMenu struct {
	p   port.Prompter
	out io.Writer
}

func NewFieldMenu(p port.Prompter, out io.Writer) *FieldMenu {
	return &FieldMenu{p: p, out: out}
}

func (m *FieldMenu) ProductChange(ctx context.Context) (domain.ProductChange, error) {
	var change domain.ProductChange
	for {
		if err := ctx.Err(); err != nil {
			return domain.ProductChange{}, err
		}

		choice, err := readChoice(m.p, m.out, fieldMenuText)
		if err != nil {
			return domain.ProductChange{}, err
		}

		switch choice {
		case 1:
			units, err := m.readNonNegative("Enter new quantity of units: ", func(s string) (float64, error) {
				n, err := strconv.Atoi(s)
				return float64(n), err
			})
			if err != nil {
				return domain.ProductChange{}, err
			}
			n := int(units)
			change.Units = &n
		case 2:
			price, err := m.readNonNegative("Enter new price per unit: ", func(s string) (float64, error) {
				return strconv.ParseFloat(s, 64)
			})
			if err != nil {
				return domain.ProductChange{}, err
			}
			change.UnitPrice = &price
		case 3:
			return change, nil
		default:
			fmt.Fprintln(m.out, "Unrecognized choice!")
		}
	}
}

// readNonNegative re-prompts until parse succeeds on a value >= 0.
func (m *FieldMenu) readNonNegative(text string, parse func(string) (float64, error)) (float64, error) {
	for {
		line, err := m.p.Prompt(text)
		if err != nil {
			return 0, err
		}
		v, err := parse(strings.TrimSpace(line))
		if err != nil || v < 0 {
			fmt.Fprintln(m.out, "Please enter a non-negative number.")
			continue
		}
		return v, nil
	}
}

// readChoice shows menu and re-prompts until an integer is entered.
func readChoice(p port.Prompter, out io.Writer, menu string) (int, error) {
	fmt.Fprint(out, menu)
	for {
		line, err := p.Prompt("Please make your choice: ")
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			fmt.Fprintln(out, "Your input is invalid!")
			continue
		}
		return n, nil
	}
}
