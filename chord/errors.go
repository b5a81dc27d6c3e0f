package chord

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrUnknownKeyName      = errors.New("unknown key name")
	ErrMalformedChordToken = errors.New("malformed chord token")
)

// MalformedChordError points at a chord token whose root and accidentals do
// not name a pitch class, e.g. "C##" or "Fb". Line is 1-based and zero when
// the token was transposed outside of a song.
type MalformedChordError struct {
	Token  string
	Line   int
	Column int
}

func (e *MalformedChordError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed chord token %q at line %d, column %d", e.Token, e.Line, e.Column)
	}
	return fmt.Sprintf("malformed chord token %q at column %d", e.Token, e.Column)
}

func (e *MalformedChordError) Is(target error) bool {
	return target == ErrMalformedChordToken
}
