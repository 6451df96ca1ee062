package engine

import (
	"errors"
	"fmt"
)

// ErrInvariant marks a broken landscape invariant. A run that hits one is
// defective and must not continue.
var ErrInvariant = errors.New("invariant violated")

func invariantf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvariant}, args...)...)
}
