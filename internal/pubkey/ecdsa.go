package pubkey

import (
	"encoding/asn1"
	"math/big"

	"golang.org/x/crypto/curve25519"

	"github.com/x509examine/x509examine/internal/bignum"
	"github.com/x509examine/x509examine/internal/curve"
	"github.com/x509examine/x509examine/internal/judgement"
	"github.com/x509examine/x509examine/internal/model"
)

// AnalyzeECDSA implements spec §4.2's ECDSA public-key checks: point
// decoding, point-on-curve, generator-equality, bit-bias, Koblitz, and
// explicit-curve checks. EdDSA keys are handled by AnalyzeEdDSA.
func AnalyzeECDSA(key model.ECDSAPublicKey) judgement.SecurityJudgements {
	var js judgement.SecurityJudgements

	if key.PointDecodeErr {
		return js.Extend(judgement.New(judgement.PublicKeyPointNotOnCurve,
			"ECDSA public key point could not be decoded",
			judgement.VerdictBrokenSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation))
	}

	if !key.CurveKnown {
		js = js.Extend(judgement.New(judgement.PublicKeyECCUnknownNamedCurve,
			"ECDSA named curve is not present in the curve registry; point and order checks are skipped",
			judgement.VerdictNone, judgement.HighlyUnusual, judgement.StandardsDeviation))
		return js
	}

	if key.Explicit {
		js = js.Extend(judgement.New(judgement.PublicKeyECCExplicitCurveParams,
			"ECDSA key carries explicit (non-named) curve parameters",
			judgement.VerdictNone, judgement.HighlyUnusual, judgement.StandardsDeviation))
		if bf, ok := key.Curve.(*curve.BinaryField); ok && !bf.ValidExponents() {
			js = js.Extend(judgement.New(judgement.PublicKeyECCExplicitCurveMalformed,
				"explicit binary-field curve's irreducible-polynomial exponent set is malformed",
				judgement.VerdictBrokenSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation))
		}
	}

	if key.Curve.IsKoblitz() {
		js = js.Extend(judgement.New(judgement.PublicKeyECCKoblitzCurve,
			"ECDSA curve is a Koblitz curve (admits an efficiently computable endomorphism)",
			judgement.VerdictNone, judgement.Unusual, judgement.FullyCompliant))
	}

	pt := curve.Point{X: key.X, Y: key.Y}
	if !key.Curve.OnCurve(pt) {
		js = js.Extend(judgement.New(judgement.PublicKeyPointNotOnCurve,
			"ECDSA public key point does not satisfy the curve equation",
			judgement.VerdictBrokenSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation))
		return js
	}

	if pt.Equal(key.Curve.Generator()) {
		js = js.Extend(judgement.New(judgement.PublicKeyECCPublicKeyIsGenerator,
			"ECDSA public key point equals the curve generator; the private key would be 1",
			judgement.VerdictBrokenSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation).WithBits(0))
	}

	if key.X != nil && key.Y != nil &&
		(bignum.HasSignificantBitBias(key.X, 3.0) || bignum.HasSignificantBitBias(key.Y, 3.0)) {
		js = js.Extend(judgement.New(judgement.PublicKeyECCBitBias,
			"ECDSA public key point coordinate shows a significant Hamming-weight bias",
			judgement.VerdictWeakSecurity, judgement.HighlyUnusual, judgement.FullyCompliant))
	}

	bits := key.Curve.BitSize() / 2
	js = js.Extend(judgement.New(judgement.PublicKeyECCSecurityLevel,
		"ECDSA estimated security strength",
		judgement.BitsToVerdict(bits), judgement.CommonnessNone, judgement.CompatibilityNone).WithBits(bits))

	return js
}

// AnalyzeEdDSA implements spec §4.2's EdDSA checks: the curve is fixed by
// OID, so the key-level checks are the encoded-key-length invariant and,
// for Ed25519, the low-order-point check in eddsaLowOrderCheck (full point
// decoding and on-curve testing for Edwards curves would require a
// twisted-Edwards equation this engine does not carry; EdDSA's security
// already rests on the curve being fixed and well-known, unlike ECDSA's
// open-ended named/explicit curve surface).
func AnalyzeEdDSA(key model.EdDSAPublicKey) judgement.SecurityJudgements {
	var js judgement.SecurityJudgements
	expected := map[string]int{"ed25519": 32, "ed448": 57}[key.CurveName]
	if expected != 0 && len(key.EncodedKey) != expected {
		js = js.Extend(judgement.New(judgement.PublicKeyEdDSABadEncodedLength,
			"EdDSA encoded public key has an unexpected length for its curve",
			judgement.VerdictBrokenSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation))
		return js
	}

	if key.CurveName == "ed25519" && len(key.EncodedKey) == 32 {
		js = js.Extend(eddsaLowOrderCheck(key.EncodedKey)...)
	}

	return js
}

// eddsaLowOrderCheck runs a point-decode sanity parity check against the
// Curve25519 birational twin of the Ed25519 curve: curve25519.X25519
// returns an error when its input point is one of the small-order points
// on the curve (it special-cases the all-zero output), which is the same
// degenerate-input class that makes an Ed25519 public key unsuitable for
// signature verification.
func eddsaLowOrderCheck(encodedKey []byte) judgement.SecurityJudgements {
	scalar := [32]byte{1}
	var point [32]byte
	copy(point[:], encodedKey)

	if _, err := curve25519.X25519(scalar[:], point[:]); err != nil {
		return judgement.SecurityJudgements{}.Extend(judgement.New(judgement.PublicKeyEdDSALowOrderPoint,
			"EdDSA public key decodes to a low-order point on the curve",
			judgement.VerdictWeakSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation))
	}
	return nil
}

type ecdsaSignatureValue struct {
	R, S *big.Int
}

// AnalyzeECDSASignature implements spec §4.2's "ECDSA signature decodes as
// SEQUENCE { r INTEGER, s INTEGER } with bit-bias on r and s" check.
func AnalyzeECDSASignature(der []byte) judgement.SecurityJudgements {
	var js judgement.SecurityJudgements
	var sig ecdsaSignatureValue
	if _, err := asn1.Unmarshal(der, &sig); err != nil {
		return js.Extend(judgement.New(judgement.SignatureECDSAMalformedUndecodable,
			"ECDSA signature value does not decode as SEQUENCE { r INTEGER, s INTEGER }: "+err.Error(),
			judgement.VerdictBrokenSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation))
	}
	if sig.R != nil && sig.S != nil &&
		(bignum.HasSignificantBitBias(sig.R, 3.0) || bignum.HasSignificantBitBias(sig.S, 3.0)) {
		js = js.Extend(judgement.New(judgement.SignatureECDSABitBias,
			"ECDSA signature component r or s shows a significant Hamming-weight bias",
			judgement.VerdictWeakSecurity, judgement.HighlyUnusual, judgement.FullyCompliant))
	}
	return js
}
