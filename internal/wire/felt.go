// Package wire holds the scalar-level pieces of the event wire format: field
// elements, the sequential value cursor and event selectors.
package wire

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/frontboat/death-mountain-sub001/internal/apperr"
)

// fieldPrime is the Starknet field modulus 2^251 + 17*2^192 + 1.
var fieldPrime = func() *big.Int {
	p := new(big.Int).Lsh(big.NewInt(1), 251)
	p.Add(p, new(big.Int).Lsh(big.NewInt(17), 192))
	return p.Add(p, big.NewInt(1))
}()

// Felt is a field element carried at full precision. Identifiers such as
// adventurer ids and beast seeds routinely exceed 2^53, so they are never
// converted to floating point. The underlying integer is never mutated after
// construction, so Felt values are safe to copy; the zero value is 0.
type Felt struct {
	n *big.Int
}

var zero = new(big.Int)

// ParseFelt parses a wire scalar written as decimal or 0x-prefixed hex text.
func ParseFelt(s string) (Felt, error) {
	text := strings.TrimSpace(s)
	if text == "" {
		return Felt{}, apperr.New(apperr.CodeInvalidScalar, "empty scalar")
	}
	if strings.ContainsAny(text, "_+-") {
		return Felt{}, apperr.WithMetadata(apperr.CodeInvalidScalar, fmt.Sprintf("invalid scalar %q", s),
			map[string]string{"scalar": s})
	}

	base := 10
	if strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X") {
		base = 16
		text = text[2:]
	}
	n, ok := new(big.Int).SetString(text, base)
	if !ok {
		return Felt{}, apperr.WithMetadata(apperr.CodeInvalidScalar, fmt.Sprintf("invalid scalar %q", s),
			map[string]string{"scalar": s})
	}
	if n.Cmp(fieldPrime) >= 0 {
		return Felt{}, apperr.WithMetadata(apperr.CodeInvalidScalar, fmt.Sprintf("scalar %q exceeds field modulus", s),
			map[string]string{"scalar": s})
	}
	return Felt{n: n}, nil
}

// MustParseFelt is ParseFelt for constants and tests.
func MustParseFelt(s string) Felt {
	f, err := ParseFelt(s)
	if err != nil {
		panic(err)
	}
	return f
}

// FeltFromUint64 builds a Felt from a machine integer.
func FeltFromUint64(v uint64) Felt {
	return Felt{n: new(big.Int).SetUint64(v)}
}

// FeltFromBig copies b into a Felt.
func FeltFromBig(b *big.Int) Felt {
	if b == nil {
		return Felt{}
	}
	return Felt{n: new(big.Int).Set(b)}
}

func (f Felt) int() *big.Int {
	if f.n == nil {
		return zero
	}
	return f.n
}

// Big returns a copy of the value.
func (f Felt) Big() *big.Int {
	return new(big.Int).Set(f.int())
}

// Uint64 returns the value and whether it fits in 64 bits.
func (f Felt) Uint64() (uint64, bool) {
	n := f.int()
	if !n.IsUint64() {
		return 0, false
	}
	return n.Uint64(), true
}

// IsZero reports whether the element is zero.
func (f Felt) IsZero() bool {
	return f.int().Sign() == 0
}

// Cmp compares two elements numerically.
func (f Felt) Cmp(g Felt) int {
	return f.int().Cmp(g.int())
}

// Equal reports numeric equality.
func (f Felt) Equal(g Felt) bool {
	return f.Cmp(g) == 0
}

// String renders the element in decimal.
func (f Felt) String() string {
	return f.int().String()
}

// Hex renders the element as lowercase 0x-prefixed hex.
func (f Felt) Hex() string {
	return "0x" + f.int().Text(16)
}

// ShortString decodes the big-endian bytes of the element as ASCII text.
// Leading zero bytes are padding and are dropped.
func (f Felt) ShortString() string {
	return strings.TrimLeft(string(f.int().Bytes()), "\x00")
}

// MarshalJSON encodes the element as a decimal string so JSON consumers with
// float64 numbers keep every digit.
func (f Felt) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

// UnmarshalJSON accepts a decimal or hex string, or a bare JSON number.
func (f *Felt) UnmarshalJSON(data []byte) error {
	var s string
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	} else {
		s = string(data)
	}
	parsed, err := ParseFelt(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
