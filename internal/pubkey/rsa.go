// Package pubkey implements the public-key analyzers (spec §4.2): RSA,
// RSA-PSS, DSA, ECDSA, and EdDSA. Each analyzer is a pure function from a
// decoded model.PublicKey (plus, for RSA-PSS, the signature algorithm's
// parameters) to a SecurityJudgements collection.
package pubkey

import (
	"math/big"

	"github.com/x509examine/x509examine/internal/bignum"
	"github.com/x509examine/x509examine/internal/judgement"
	"github.com/x509examine/x509examine/internal/model"
)

// Config tunes the cost/depth of the analyzers (spec §6 Config: FastRSA).
type Config struct {
	// FastRSA skips the tiny-factor trial division pass, which is the most
	// expensive cheap check available (spec §4.2).
	FastRSA bool

	// CompromisedModuli is consulted by the RSA analyzer; nil disables
	// the lookup (no judgement is ever emitted for "not found").
	CompromisedModuli *bignum.CompromisedModuliDB
}

var (
	smallExponents = map[int64]bool{3: true, 5: true, 7: true, 17: true, 257: true}
	commonExponent = big.NewInt(65537)
	twoToThe32     = new(big.Int).Lsh(big.NewInt(1), 32)
)

// AnalyzeRSA implements spec §4.2's RSA checks.
func AnalyzeRSA(key model.RSAPublicKey, cfg Config) judgement.SecurityJudgements {
	var js judgement.SecurityJudgements

	js = analyzeRSAModulus(js, key.N, cfg)
	js = analyzeRSAExponent(js, key.E)

	if !key.ParametersPresent {
		js = js.Extend(judgement.New(judgement.PublicKeyRSAParametersMissing,
			"RSA AlgorithmIdentifier parameters field is absent; RFC 3279 requires NULL",
			judgement.VerdictMediumSecurity, judgement.Unusual, judgement.StandardsDeviation))
	} else if !key.ParametersIsNull {
		js = js.Extend(judgement.New(judgement.PublicKeyRSAParametersNotNull,
			"RSA AlgorithmIdentifier parameters field is present but not ASN.1 NULL",
			judgement.VerdictMediumSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation))
	}

	return js
}

func analyzeRSAModulus(js judgement.SecurityJudgements, n *big.Int, cfg Config) judgement.SecurityJudgements {
	if n == nil {
		return js
	}
	if n.Sign() < 0 {
		return js.Extend(judgement.New(judgement.PublicKeyRSAModulusNegative,
			"RSA modulus is negative",
			judgement.VerdictBrokenSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation).WithBits(0))
	}

	if bignum.IsProbablyPrime(n) {
		return js.Extend(judgement.New(judgement.PublicKeyRSAModulusPrime,
			"RSA modulus is itself prime, not a product of two primes; the key is trivially broken",
			judgement.VerdictBrokenSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation).WithBits(0))
	}

	if cfg.CompromisedModuli != nil {
		fp := fingerprint(n)
		if reason, ok := cfg.CompromisedModuli.Lookup(fp); ok {
			js = js.Extend(judgement.New(judgement.PublicKeyRSAModulusCompromised,
				"RSA modulus matches a known-compromised key database entry: "+reason,
				judgement.VerdictBrokenSecurity, judgement.Unusual, judgement.StandardsDeviation).WithBits(0))
		}
	}

	if !cfg.FastRSA {
		if factor, ok := bignum.TrialDivide(n); ok {
			js = js.Extend(judgement.New(judgement.PublicKeyRSAModulusFactorable,
				"RSA modulus has a small prime factor "+factor.String()+"; it is not the product of two large primes",
				judgement.VerdictBrokenSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation).WithBits(0))
		} else {
			js = js.Extend(judgement.New(judgement.PublicKeyRSAModulusSmallFactor,
				"RSA modulus has no small prime factor under the trial-division bound",
				judgement.VerdictNone, judgement.Common, judgement.FullyCompliant))
		}
	}

	js = js.Extend(rsaModulusLengthJudgement(n.BitLen()))

	if bignum.HasSignificantBitBias(n, 3.0) {
		js = js.Extend(judgement.New(judgement.PublicKeyRSAModulusBitBias,
			"RSA modulus's Hamming weight deviates significantly from the expected binomial distribution",
			judgement.VerdictWeakSecurity, judgement.HighlyUnusual, judgement.FullyCompliant))
	}

	return js
}

// rsaModulusLengthJudgement maps modulus bit length to an estimated
// security strength using the conventional GNFS-asymptote correspondence
// (spec §4.2: "≥2048 expected for contemporary use").
func rsaModulusLengthJudgement(bitLen int) judgement.SecurityJudgement {
	bits := rsaSecurityBits(bitLen)
	return judgement.New(judgement.PublicKeyRSAModulusLength,
		"RSA modulus length class",
		judgement.BitsToVerdict(bits), judgement.CommonnessNone, judgement.CompatibilityNone).WithBits(bits)
}

func rsaSecurityBits(bitLen int) int {
	switch {
	case bitLen < 1024:
		return 0
	case bitLen < 2048:
		return 80
	case bitLen < 3072:
		return 112
	case bitLen < 7680:
		return 128
	case bitLen < 15360:
		return 192
	default:
		return 256
	}
}

func analyzeRSAExponent(js judgement.SecurityJudgements, e *big.Int) judgement.SecurityJudgements {
	if e == nil {
		return js
	}
	switch {
	case e.Sign() <= 0:
		return js.Extend(judgement.New(judgement.PublicKeyRSAExponentNegative,
			"RSA public exponent is zero or negative",
			judgement.VerdictBrokenSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation))
	case e.Cmp(big.NewInt(1)) == 0:
		return js.Extend(judgement.New(judgement.PublicKeyRSAExponentOne,
			"RSA public exponent is 1; encryption under this key is the identity function",
			judgement.VerdictBrokenSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation).WithBits(0))
	case e.IsInt64() && smallExponents[e.Int64()]:
		return js.Extend(judgement.New(judgement.PublicKeyRSAExponentSmall,
			"RSA public exponent is a small, historically-used value",
			judgement.VerdictNone, judgement.Unusual, judgement.FullyCompliant))
	case e.Cmp(commonExponent) == 0:
		return js.Extend(judgement.New(judgement.PublicKeyRSAExponentCommon,
			"RSA public exponent is 65537, the near-universal default",
			judgement.VerdictNone, judgement.Common, judgement.FullyCompliant))
	case e.Cmp(twoToThe32) >= 0:
		return js.Extend(judgement.New(judgement.PublicKeyRSAExponentLarge,
			"RSA public exponent is unusually large (>= 2^32)",
			judgement.VerdictNone, judgement.HighlyUnusual, judgement.StandardsDeviation))
	default:
		return js.Extend(judgement.New(judgement.PublicKeyRSAExponentUnusual,
			"RSA public exponent is neither a small historical value nor 65537",
			judgement.VerdictNone, judgement.Unusual, judgement.StandardsDeviation))
	}
}
