// Package bignum holds the shared cryptographic-parameter primitives used
// across the public-key analyzers: primality testing, GCD, trial division,
// and the bit-bias (Hamming weight) test. Everything here is pure and
// allocates no shared state, matching the engine's stateless-per-certificate
// design (spec §5).
package bignum

import (
	"math/big"
	"math/bits"
)

// smallPrimes is the trial-division base used by TrialDivide. It mirrors
// the depth a "fast_rsa=false" analysis is expected to use: enough primes to
// catch GCD-style compromised-modulus sharing and obviously bad moduli
// without the cost of a full factorization attempt.
var smallPrimes = sieve(10000)

func sieve(limit int) []int64 {
	isComposite := make([]bool, limit+1)
	var primes []int64
	for i := 2; i <= limit; i++ {
		if isComposite[i] {
			continue
		}
		primes = append(primes, int64(i))
		for j := i * i; j <= limit; j += i {
			isComposite[j] = true
		}
	}
	return primes
}

// IsProbablyPrime runs a Miller-Rabin / Baillie-PSW primality test (via
// math/big, which implements both) at the standard confidence used
// throughout the engine.
func IsProbablyPrime(n *big.Int) bool {
	if n.Sign() <= 0 {
		return false
	}
	return n.ProbablyPrime(32)
}

// TrialDivide attempts to find a small prime factor of n below the trial
// division bound. It returns the factor and true if one is found. Used by
// the RSA analyzer's "tiny-factor trial division" check; callers gate this
// behind Config.FastRSA since it is, relatively, the most expensive cheap
// check available.
func TrialDivide(n *big.Int) (*big.Int, bool) {
	if n.Sign() <= 0 {
		return nil, false
	}
	rem := new(big.Int)
	small := new(big.Int)
	for _, p := range smallPrimes {
		small.SetInt64(p)
		if small.Cmp(n) >= 0 {
			break
		}
		rem.Mod(n, small)
		if rem.Sign() == 0 {
			return new(big.Int).Set(small), true
		}
	}
	return nil, false
}

// GCD returns the greatest common divisor of a and b.
func GCD(a, b *big.Int) *big.Int {
	return new(big.Int).GCD(nil, nil, new(big.Int).Abs(a), new(big.Int).Abs(b))
}

// HammingWeight returns the number of set bits in the binary expansion of n.
func HammingWeight(n *big.Int) int {
	count := 0
	for _, w := range n.Bits() {
		count += bits.OnesCount(uint(w))
	}
	return count
}

// BitBiasDeviation reports how far the Hamming weight of n's binary
// expansion deviates from the expected mean (half the bit length), measured
// in standard deviations under the binomial model for a uniformly random
// n-bit odd modulus. A perfectly random n-bit integer has Hamming weight
// binomially distributed with mean k/2 and variance k/4, where k is the bit
// length.
func BitBiasDeviation(n *big.Int) float64 {
	k := n.BitLen()
	if k == 0 {
		return 0
	}
	weight := float64(HammingWeight(n))
	mean := float64(k) / 2
	variance := float64(k) / 4
	if variance == 0 {
		return 0
	}
	return (weight - mean) / sqrt(variance)
}

// HasSignificantBitBias reports whether n's Hamming weight deviates from
// the expected mean by more than threshold standard deviations. A threshold
// of 3.0 flags roughly the same population the original tool's bias test
// does: moduli whose bit pattern could not plausibly arise from a uniform
// prime-generation process.
func HasSignificantBitBias(n *big.Int, threshold float64) bool {
	d := BitBiasDeviation(n)
	if d < 0 {
		d = -d
	}
	return d > threshold
}

// sqrt avoids pulling in math.Sqrt's float64-specific semantics concerns
// for this narrow use (n is always non-negative here) while keeping the
// dependency surface to the standard library.
func sqrt(x float64) float64 {
	if x <= 0 {
		return 0
	}
	z := x
	for i := 0; i < 40; i++ {
		z -= (z*z - x) / (2 * z)
	}
	return z
}

// CompromisedModuliDB is a read-only, single-initialized lookup of known
// weak/shared RSA moduli (e.g. Debian OpenSSL PRNG-era keys, ROCA-affected
// keys). It is deliberately tiny here — a real deployment loads this from a
// data file — but the interface is what the RSA analyzer depends on.
type CompromisedModuliDB struct {
	fingerprints map[string]string
}

// NewCompromisedModuliDB builds a lookup from modulus-fingerprint to a
// human-readable reason. The fingerprint is the hex SHA-256 of the modulus's
// big-endian bytes, computed by the caller.
func NewCompromisedModuliDB(entries map[string]string) *CompromisedModuliDB {
	db := &CompromisedModuliDB{fingerprints: make(map[string]string, len(entries))}
	for k, v := range entries {
		db.fingerprints[k] = v
	}
	return db
}

// Lookup reports whether fingerprint is a known-compromised modulus, and if
// so, why.
func (db *CompromisedModuliDB) Lookup(fingerprint string) (string, bool) {
	if db == nil {
		return "", false
	}
	reason, ok := db.fingerprints[fingerprint]
	return reason, ok
}
