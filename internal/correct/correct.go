// Package correct provides the grammar and style correction routines used by
// the essay server. The server treats a Corrector as an opaque collaborator.
package correct

import (
	"context"
	"errors"
	"strings"
)

// ErrEmptyText is returned when there is nothing to correct.
var ErrEmptyText = errors.New("no text provided")

// Corrector rewrites essay text.
type Corrector interface {
	Name() string
	Correct(ctx context.Context, text string) (string, error)
}

// New returns a CommandCorrector when command is set, otherwise the built-in
// rule-based corrector.
func New(command string, opts ...CommandOption) (Corrector, error) {
	if strings.TrimSpace(command) == "" {
		return NewRuleCorrector(), nil
	}
	return NewCommandCorrector(command, opts...)
}
