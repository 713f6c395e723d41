package wire

import (
	"strconv"

	"github.com/frontboat/death-mountain-sub001/internal/apperr"
)

// Cursor walks an immutable sequence of wire scalars strictly left to right.
// The backing slice is never modified, so a cursor can be rebuilt over the
// same log as often as needed.
type Cursor struct {
	values []string
	pos    int
}

// NewCursor creates a cursor positioned at the first value.
func NewCursor(values []string) *Cursor {
	return &Cursor{values: values}
}

// Take returns the next value and advances past it.
func (c *Cursor) Take() (string, error) {
	if c.pos >= len(c.values) {
		return "", apperr.WithMetadata(apperr.CodeCursorUnderflow, "wire values exhausted",
			map[string]string{"position": strconv.Itoa(c.pos)})
	}
	v := c.values[c.pos]
	c.pos++
	return v, nil
}

// Remaining returns how many values have not been taken yet.
func (c *Cursor) Remaining() int {
	return len(c.values) - c.pos
}

// Consumed returns how many values have been taken.
func (c *Cursor) Consumed() int {
	return c.pos
}
