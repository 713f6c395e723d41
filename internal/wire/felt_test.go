package wire

import (
	"encoding/json"
	"testing"

	"github.com/frontboat/death-mountain-sub001/internal/apperr"
)

// TestParseFeltForms tests decimal and hex scalar forms
func TestParseFeltForms(t *testing.T) {
	dec, err := ParseFelt("255")
	if err != nil {
		t.Fatalf("parse decimal: %v", err)
	}
	hex, err := ParseFelt("0xff")
	if err != nil {
		t.Fatalf("parse hex: %v", err)
	}
	if !dec.Equal(hex) {
		t.Errorf("expected 255 == 0xff, got %s and %s", dec, hex)
	}
	if hex.Hex() != "0xff" {
		t.Errorf("expected hex 0xff, got %s", hex.Hex())
	}
}

// TestParseFeltRejects tests malformed scalars
func TestParseFeltRejects(t *testing.T) {
	for _, s := range []string{"", "-1", "+4", "1_000", "0xzz", "abc"} {
		if _, err := ParseFelt(s); !apperr.IsCode(err, apperr.CodeInvalidScalar) {
			t.Errorf("expected INVALID_SCALAR for %q, got %v", s, err)
		}
	}
}

// TestParseFeltModulus tests the field modulus bound
func TestParseFeltModulus(t *testing.T) {
	prime := "0x800000000000011000000000000000000000000000000000000000000000001"
	if _, err := ParseFelt(prime); err == nil {
		t.Fatal("expected modulus to be rejected")
	}
	maxFelt := "0x800000000000011000000000000000000000000000000000000000000000000"
	if _, err := ParseFelt(maxFelt); err != nil {
		t.Fatalf("expected p-1 to parse: %v", err)
	}
}

// TestFeltPrecision tests values beyond float64-safe integers
func TestFeltPrecision(t *testing.T) {
	const big = "9007199254740993123456789"
	f := MustParseFelt(big)

	if f.String() != big {
		t.Fatalf("expected %s, got %s", big, f.String())
	}
	if _, ok := f.Uint64(); ok {
		t.Error("expected value not to fit in uint64")
	}

	data, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"`+big+`"` {
		t.Errorf("expected quoted decimal, got %s", data)
	}

	var back Felt
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(f) {
		t.Errorf("expected %s after round trip, got %s", f, back)
	}

	var fromNumber Felt
	if err := json.Unmarshal([]byte("42"), &fromNumber); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	if v, _ := fromNumber.Uint64(); v != 42 {
		t.Errorf("expected 42, got %d", v)
	}
}

// TestShortString tests packed ASCII decoding
func TestShortString(t *testing.T) {
	// "hello" = 0x68656c6c6f
	f := MustParseFelt("0x68656c6c6f")
	if got := f.ShortString(); got != "hello" {
		t.Errorf("expected 'hello', got %q", got)
	}
	if got := FeltFromUint64(0).ShortString(); got != "" {
		t.Errorf("expected empty string for zero, got %q", got)
	}
}

// TestSelectorKnownValue tests the keccak selector against a known event key
func TestSelectorKnownValue(t *testing.T) {
	want := MustParseFelt("0x99cd8bde557814842a3121e8ddfd433a539b8c9f14bf31ebf108d12e6196e9")
	if got := Selector("Transfer"); !got.Equal(want) {
		t.Errorf("expected %s, got %s", want.Hex(), got.Hex())
	}
	if Selector("GameEvent").Equal(Selector("Transfer")) {
		t.Error("distinct names must produce distinct selectors")
	}
}

// TestFeltCopiesAreIndependent tests that decoding into a Felt leaves earlier copies alone
func TestFeltCopiesAreIndependent(t *testing.T) {
	orig := MustParseFelt("0x3a0bd6fe1b4df4bb7c9e8f3c23bf4f0f8a3cf6c8a2b1d9e0f7a6b5c4d3e2f1")
	copied := orig

	if err := json.Unmarshal([]byte(`"12345"`), &copied); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if copied.String() != "12345" {
		t.Errorf("expected 12345, got %s", copied)
	}
	if orig.Hex() != "0x3a0bd6fe1b4df4bb7c9e8f3c23bf4f0f8a3cf6c8a2b1d9e0f7a6b5c4d3e2f1" {
		t.Errorf("expected original untouched, got %s", orig.Hex())
	}

	b := orig.Big()
	b.SetUint64(1)
	if orig.Equal(FeltFromUint64(1)) {
		t.Error("expected Big to return an independent copy")
	}

	var empty Felt
	if !empty.IsZero() || empty.String() != "0" || empty.Hex() != "0x0" {
		t.Errorf("expected zero value to read as 0, got %s", empty.Hex())
	}
}
