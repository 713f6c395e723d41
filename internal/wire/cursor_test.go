package wire

import (
	"testing"

	"github.com/frontboat/death-mountain-sub001/internal/apperr"
)

// TestCursorTakeInOrder tests strict left-to-right extraction
func TestCursorTakeInOrder(t *testing.T) {
	values := []string{"1", "2", "3"}
	c := NewCursor(values)

	for i, want := range values {
		got, err := c.Take()
		if err != nil {
			t.Fatalf("take %d: %v", i, err)
		}
		if got != want {
			t.Errorf("take %d: expected %s, got %s", i, want, got)
		}
	}
	if c.Remaining() != 0 {
		t.Errorf("expected exhausted cursor, %d remaining", c.Remaining())
	}
	if c.Consumed() != 3 {
		t.Errorf("expected 3 consumed, got %d", c.Consumed())
	}
}

// TestCursorUnderflow tests the empty-cursor error
func TestCursorUnderflow(t *testing.T) {
	c := NewCursor(nil)
	if _, err := c.Take(); !apperr.IsCode(err, apperr.CodeCursorUnderflow) {
		t.Fatalf("expected CURSOR_UNDERFLOW, got %v", err)
	}
}

// TestCursorDoesNotMutateInput tests that the backing slice is left intact
func TestCursorDoesNotMutateInput(t *testing.T) {
	values := []string{"7", "8"}
	c := NewCursor(values)
	c.Take()
	c.Take()

	if values[0] != "7" || values[1] != "8" || len(values) != 2 {
		t.Fatalf("input slice was modified: %v", values)
	}

	again := NewCursor(values)
	if v, _ := again.Take(); v != "7" {
		t.Errorf("expected fresh cursor to start at 7, got %s", v)
	}
}
