package pubkey

import (
	"math/big"

	"github.com/x509examine/x509examine/internal/bignum"
	"github.com/x509examine/x509examine/internal/judgement"
	"github.com/x509examine/x509examine/internal/model"
)

// lnPair is one of the standard (L, N) domain-parameter sizes FIPS 186-4
// §4.2 permits (spec §4.2).
type lnPair struct{ L, N int }

var standardLNPairs = []lnPair{
	{1024, 160}, {2048, 224}, {2048, 256}, {3072, 256},
}

// AnalyzeDSA implements spec §4.2's DSA checks.
func AnalyzeDSA(key model.DSAPublicKey) judgement.SecurityJudgements {
	var js judgement.SecurityJudgements

	if key.P == nil || key.Q == nil || key.G == nil {
		return js
	}

	if !bignum.IsProbablyPrime(key.P) {
		js = js.Extend(judgement.New(judgement.PublicKeyDSAPNotPrime,
			"DSA domain parameter p is not prime",
			judgement.VerdictBrokenSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation).WithBits(0))
	}
	if !bignum.IsProbablyPrime(key.Q) {
		js = js.Extend(judgement.New(judgement.PublicKeyDSAQNotPrime,
			"DSA domain parameter q is not prime",
			judgement.VerdictBrokenSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation).WithBits(0))
	}

	pMinusOne := new(big.Int).Sub(key.P, big.NewInt(1))
	rem := new(big.Int).Mod(pMinusOne, key.Q)
	if rem.Sign() != 0 {
		js = js.Extend(judgement.New(judgement.PublicKeyDSAPMinusOneNotDivByQ,
			"DSA domain parameters violate p-1 ≡ 0 (mod q)",
			judgement.VerdictBrokenSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation).WithBits(0))
	}

	one := big.NewInt(1)
	if key.G.Cmp(one) <= 0 || key.G.Cmp(key.P) >= 0 {
		js = js.Extend(judgement.New(judgement.PublicKeyDSAGOutOfRange,
			"DSA generator g is not in the range 1 < g < p",
			judgement.VerdictBrokenSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation).WithBits(0))
	} else {
		gq := new(big.Int).Exp(key.G, key.Q, key.P)
		if gq.Cmp(one) != 0 {
			js = js.Extend(judgement.New(judgement.PublicKeyDSAGOrderInvalid,
				"DSA generator g does not satisfy g^q ≡ 1 (mod p)",
				judgement.VerdictBrokenSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation).WithBits(0))
		}
	}

	if bignum.HasSignificantBitBias(key.P, 3.0) || bignum.HasSignificantBitBias(key.Q, 3.0) {
		js = js.Extend(judgement.New(judgement.PublicKeyDSABitBias,
			"DSA domain parameter p or q shows a significant Hamming-weight bias",
			judgement.VerdictWeakSecurity, judgement.HighlyUnusual, judgement.FullyCompliant))
	}

	L, N := key.P.BitLen(), key.Q.BitLen()
	standard := false
	for _, pair := range standardLNPairs {
		if lnMatches(L, pair.L) && N == pair.N {
			standard = true
			break
		}
	}
	if !standard {
		js = js.Extend(judgement.New(judgement.PublicKeyDSAUncommonParamSizes,
			"DSA (L, N) parameter size pair is not one of the FIPS 186-4 standard sizes",
			judgement.VerdictNone, judgement.HighlyUnusual, judgement.StandardsDeviation))
	}

	bits := dsaSecurityBits(L, N)
	js = js.Extend(judgement.New(judgement.PublicKeyDSASecurityLevel,
		"DSA estimated security strength",
		judgement.BitsToVerdict(bits), judgement.CommonnessNone, judgement.CompatibilityNone).WithBits(bits))

	return js
}

// lnMatches tolerates a few bits of rounding in L (RSA-modulus-analysis
// style classification, since a carried domain parameter may be 1023 or
// 1025 bits long for a "1024-bit" key in the wild).
func lnMatches(actual, nominal int) bool {
	diff := actual - nominal
	if diff < 0 {
		diff = -diff
	}
	return diff <= 8
}

func dsaSecurityBits(L, N int) int {
	lBits := rsaSecurityBits(L)
	nBits := N / 2
	if nBits < lBits {
		return nBits
	}
	return lBits
}
