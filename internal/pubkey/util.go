package pubkey

import (
	"crypto/sha256"
	"encoding/hex"
	"math/big"
)

// fingerprint is the lookup key into bignum.CompromisedModuliDB: the hex
// SHA-256 digest of the modulus's big-endian bytes.
func fingerprint(n *big.Int) string {
	sum := sha256.Sum256(n.Bytes())
	return hex.EncodeToString(sum[:])
}
