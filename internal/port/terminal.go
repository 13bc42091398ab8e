package port

import (
	"context"

	"github.com/rl1809/retail/internal/core/domain"
)

// Prompter is the terminal collaborator: print text, read one line back.
type Prompter interface {
	Prompt(text string) (string, error)
}

// ChangeSource supplies the fields of an inventory change once the store
// and product have been validated.
type ChangeSource interface {
	ProductChange(ctx context.Context) (domain.ProductChange, error)
}

// StaticChange is a ChangeSource for changes already known up front.
type StaticChange domain.ProductChange

func (c StaticChange) ProductChange(context.Context) (domain.ProductChange, error) {
	return domain.ProductChange(c), nil
}
