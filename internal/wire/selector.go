package wire

import (
	"math/big"

	"golang.org/x/crypto/sha3"
)

// selectorMask keeps the low 250 bits of the keccak digest.
var selectorMask = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 250), big.NewInt(1))

// Selector computes the Starknet event selector for a declared event name.
func Selector(name string) Felt {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(name))
	digest := new(big.Int).SetBytes(h.Sum(nil))
	return FeltFromBig(digest.And(digest, selectorMask))
}
