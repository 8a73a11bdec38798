package model

import (
	"encoding/asn1"
	"math/big"

	"github.com/x509examine/x509examine/internal/curve"
	"github.com/x509examine/x509examine/internal/oid"
)

// PublicKeyKind tags the PublicKeyMaterial sum type (design notes §2).
type PublicKeyKind int

const (
	PublicKeyUnknown PublicKeyKind = iota
	PublicKeyRSA
	PublicKeyDSA
	PublicKeyECDSA
	PublicKeyEdDSA
)

// RSAPublicKey is the RSA variant: modulus n, exponent e, and whether the
// AlgorithmIdentifier parameters field was present and was ASN.1 NULL
// (spec §3: absence or non-NULL is diagnosable).
type RSAPublicKey struct {
	N, E             *big.Int
	ParametersPresent bool
	ParametersIsNull  bool
}

// DSAPublicKey is the DSA variant: domain parameters plus public value y.
type DSAPublicKey struct {
	P, Q, G, Y *big.Int
}

// ECDSAPublicKey is the ECDSA variant: a curve (named or explicit) plus
// the public point.
type ECDSAPublicKey struct {
	Curve          curve.Curve
	NamedCurve     string // "" if explicit parameters were used
	NamedCurveOID  asn1.ObjectIdentifier
	CurveKnown     bool // false if NamedCurve was given but unregistered
	Explicit       bool
	X, Y           *big.Int
	RawPoint       []byte
	PointDecodeErr bool
}

// EdDSAPublicKey is the EdDSA variant: a fixed curve identified by OID plus
// the encoded point (spec §3: Ed25519 = 32 bytes, Ed448 = 57 bytes).
type EdDSAPublicKey struct {
	CurveOID   asn1.ObjectIdentifier
	CurveName  string // "ed25519" or "ed448"
	EncodedKey []byte
}

// PublicKey is the tagged sum type over cryptosystems (design notes §2).
type PublicKey struct {
	Kind PublicKeyKind

	AlgorithmOID  asn1.ObjectIdentifier
	RawParameters asn1.RawValue

	// RawSubjectPublicKey is the right-aligned subjectPublicKey BIT STRING
	// content, independent of which cryptosystem it decodes to. The
	// SubjectKeyIdentifier analyzer hashes this raw form (spec §4.3).
	RawSubjectPublicKey []byte

	RSA   RSAPublicKey
	DSA   DSAPublicKey
	ECDSA ECDSAPublicKey
	EdDSA EdDSAPublicKey

	// DecodeError holds a non-nil message if the payload failed to decode
	// for the algorithm its OID names. Kind remains PublicKeyUnknown in
	// that case for RSA and DSA keys, while ECDSA and EdDSA keys keep their
	// Kind; the containing Certificate stays analyzable (spec §4.6).
	DecodeError string
}

// rawSubjectPublicKeyInfo mirrors RFC 5280 §4.1.2.7.
type rawSubjectPublicKeyInfo struct {
	Algorithm rawAlgorithmIdentifier
	PublicKey asn1.BitString
}

type rawAlgorithmIdentifier struct {
	Raw        asn1.RawContent
	Algorithm  asn1.ObjectIdentifier
	Parameters asn1.RawValue `asn1:"optional"`
}

type rawDSAParameters struct {
	P, Q, G *big.Int
}

type rawECParameters struct {
	// Only the named-curve CHOICE alternative is modeled directly; explicit
	// parameters are recognized by the absence of a plain OID tag and
	// handled via decodeExplicitECParameters.
	NamedCurve asn1.ObjectIdentifier
}

// rawSpecifiedECDomain mirrors SEC1's ECParameters / SpecifiedECDomain,
// used when a key carries explicit (non-named) curve parameters. Only the
// prime-field shape is modeled; binary-field explicit parameters are
// reported via DecodeError, same as an unsupported fieldID would be.
type rawSpecifiedECDomain struct {
	Version int
	FieldID struct {
		FieldType asn1.ObjectIdentifier
		Parameters asn1.RawValue
	}
	Curve struct {
		A, B []byte
		Seed asn1.BitString `asn1:"optional"`
	}
	Base     asn1.RawValue
	Order    *big.Int
	Cofactor *big.Int `asn1:"optional"`
}

func decodePublicKey(spki rawSubjectPublicKeyInfo) PublicKey {
	pk := PublicKey{
		AlgorithmOID:  spki.Algorithm.Algorithm,
		RawParameters: spki.Algorithm.Parameters,
	}
	keyBytes := spki.PublicKey.RightAlign()
	pk.RawSubjectPublicKey = keyBytes

	switch {
	case oidEqualsName(pk.AlgorithmOID, "rsaEncryption"):
		decodeRSAKey(&pk, keyBytes)
	case oidEqualsName(pk.AlgorithmOID, "dsaEncryption"):
		decodeDSAKey(&pk, keyBytes, spki.Algorithm.Parameters)
	case oidEqualsName(pk.AlgorithmOID, "ecPublicKey"):
		decodeECDSAKey(&pk, keyBytes, spki.Algorithm.Parameters)
	case oidEqualsName(pk.AlgorithmOID, "ed25519"):
		decodeEdDSAKey(&pk, keyBytes, "ed25519", 32)
	case oidEqualsName(pk.AlgorithmOID, "ed448"):
		decodeEdDSAKey(&pk, keyBytes, "ed448", 57)
	default:
		pk.Kind = PublicKeyUnknown
	}
	return pk
}

func oidEqualsName(id asn1.ObjectIdentifier, name string) bool {
	want, ok := oid.ByName(name)
	return ok && id.Equal(want)
}

type rawRSAPublicKey struct {
	N *big.Int
	E *big.Int
}

func decodeRSAKey(pk *PublicKey, keyBytes []byte) {
	var raw rawRSAPublicKey
	if _, err := asn1.Unmarshal(keyBytes, &raw); err != nil {
		pk.DecodeError = err.Error()
		return
	}
	pk.Kind = PublicKeyRSA
	pk.RSA = RSAPublicKey{
		N: raw.N,
		E: raw.E,
	}
	pk.RSA.ParametersPresent = len(pk.RawParameters.FullBytes) > 0
	pk.RSA.ParametersIsNull = pk.RawParameters.Tag == asn1.TagNull
}

func decodeDSAKey(pk *PublicKey, keyBytes []byte, params asn1.RawValue) {
	var y *big.Int
	if _, err := asn1.Unmarshal(keyBytes, &y); err != nil {
		pk.DecodeError = err.Error()
		return
	}
	var domain rawDSAParameters
	if _, err := asn1.Unmarshal(params.FullBytes, &domain); err != nil {
		pk.DecodeError = err.Error()
		return
	}
	pk.Kind = PublicKeyDSA
	pk.DSA = DSAPublicKey{P: domain.P, Q: domain.Q, G: domain.G, Y: y}
}

func decodeECDSAKey(pk *PublicKey, keyBytes []byte, params asn1.RawValue) {
	pk.Kind = PublicKeyECDSA
	var named asn1.ObjectIdentifier
	if _, err := asn1.Unmarshal(params.FullBytes, &named); err == nil {
		pk.ECDSA.NamedCurveOID = named
		name, _ := oid.Name(named)
		pk.ECDSA.NamedCurve = name
		if c, ok := curve.Lookup(name); ok {
			pk.ECDSA.Curve = c
			pk.ECDSA.CurveKnown = true
		}
	} else {
		pk.ECDSA.Explicit = true
		var domain rawSpecifiedECDomain
		if _, err := asn1.Unmarshal(params.FullBytes, &domain); err != nil {
			pk.DecodeError = "explicit EC parameters: " + err.Error()
		} else {
			var p *big.Int
			if !domain.FieldID.FieldType.Equal(asn1.ObjectIdentifier{1, 2, 840, 10045, 1, 1}) { // id-prime-field
				pk.DecodeError = "explicit EC parameters: only prime-field curves are supported"
			} else if _, err := asn1.Unmarshal(domain.FieldID.Parameters.FullBytes, &p); err != nil {
				pk.DecodeError = "explicit EC parameters: field prime: " + err.Error()
			} else {
				pf := &curve.PrimeField{
					P: p,
					A: new(big.Int).SetBytes(domain.Curve.A),
					B: new(big.Int).SetBytes(domain.Curve.B),
					N: domain.Order,
					H: domain.Cofactor,
				}
				if g, ok := pf.DecodePoint(domain.Base.Bytes); ok {
					pf.Gx, pf.Gy = g.X, g.Y
				}
				pk.ECDSA.Curve = pf
				pk.ECDSA.CurveKnown = true
			}
		}
	}

	pk.ECDSA.RawPoint = keyBytes
	if pk.ECDSA.Curve != nil {
		if pf, ok := pk.ECDSA.Curve.(*curve.PrimeField); ok && pf.P != nil {
			if pt, ok := pf.DecodePoint(keyBytes); ok {
				pk.ECDSA.X, pk.ECDSA.Y = pt.X, pt.Y
				return
			}
		}
		if bf, ok := pk.ECDSA.Curve.(*curve.BinaryField); ok {
			if pt, ok := bf.DecodePoint(keyBytes); ok {
				pk.ECDSA.X, pk.ECDSA.Y = pt.X, pt.Y
				return
			}
		}
	}
	pk.ECDSA.PointDecodeErr = true
}

func decodeEdDSAKey(pk *PublicKey, keyBytes []byte, name string, expectedLen int) {
	pk.Kind = PublicKeyEdDSA
	pk.EdDSA = EdDSAPublicKey{
		CurveOID:   pk.AlgorithmOID,
		CurveName:  name,
		EncodedKey: keyBytes,
	}
	if len(keyBytes) != expectedLen {
		pk.DecodeError = "eddsa: unexpected encoded key length"
	}
}
