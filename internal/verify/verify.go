// Package verify defines the SignatureVerifier collaborator interface
// (spec §6) and ships one in-process implementation built on the standard
// library's crypto/x509, crypto/rsa, crypto/dsa (DSA verification uses
// crypto/dsa.Verify from that deprecated package), crypto/ecdsa, and
// crypto/ed25519.
//
// This is the one operation in the core that may, in another
// implementation, shell out to an external cryptographic library (design
// notes: "Signature verification by subprocess"). The interface is what
// lets a caller swap in a deterministic stub for testing, exactly as the
// design notes prescribe.
package verify

import (
	"crypto"
	"crypto/dsa" //nolint:staticcheck // intentionally used: DSA signature
	// verification has no replacement in a newer stdlib package.
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/asn1"
	"errors"
	"hash"
	"math/big"

	"github.com/x509examine/x509examine/internal/model"
	"github.com/x509examine/x509examine/internal/oid"
)

// stdlibCurveFor maps a named curve recognized by internal/curve to the
// stdlib elliptic.Curve needed to drive crypto/ecdsa.Verify. Only the
// curves the standard library itself implements are usable here; binary
// fields and Koblitz curves (secp256k1) have no stdlib counterpart and
// are reported as unsupported rather than guessed at.
func stdlibCurveFor(pub model.PublicKey) elliptic.Curve {
	switch pub.ECDSA.NamedCurve {
	case "prime256v1":
		return elliptic.P256()
	case "secp384r1":
		return elliptic.P384()
	case "secp521r1":
		return elliptic.P521()
	case "secp224r1":
		return elliptic.P224()
	default:
		return nil
	}
}

// SignatureVerifier checks a signature over tbs bytes under a given public
// key and algorithm identifier. Implementations must support RSA (PKCS#1
// v1.5 and PSS), DSA, ECDSA, and EdDSA (spec §6).
type SignatureVerifier interface {
	Verify(tbs []byte, signature []byte, pub model.PublicKey, sigAlgOID asn1.ObjectIdentifier, sigAlgParams asn1.RawValue) (bool, error)
}

// StdlibVerifier is the default in-process implementation.
type StdlibVerifier struct{}

var ErrUnsupportedAlgorithm = errors.New("verify: unsupported signature algorithm")

type ecdsaSignature struct {
	R, S *big.Int
}

// Verify implements SignatureVerifier.
func (StdlibVerifier) Verify(tbs, signature []byte, pub model.PublicKey, sigAlgOID asn1.ObjectIdentifier, sigAlgParams asn1.RawValue) (bool, error) {
	switch {
	case isRSAPKCS1(sigAlgOID):
		return verifyRSAPKCS1(tbs, signature, pub, sigAlgOID)
	case oidEquals(sigAlgOID, "rsassaPss"):
		return verifyRSAPSS(tbs, signature, pub, sigAlgParams)
	case oidEquals(sigAlgOID, "dsaWithSha1"):
		return verifyDSA(tbs, signature, pub, sha1.New())
	case oidEquals(sigAlgOID, "dsaWithSha256"):
		return verifyDSA(tbs, signature, pub, sha256.New())
	case isECDSA(sigAlgOID):
		return verifyECDSA(tbs, signature, pub, sigAlgOID)
	case oidEquals(sigAlgOID, "ed25519"):
		return verifyEd25519(tbs, signature, pub)
	default:
		return false, ErrUnsupportedAlgorithm
	}
}

func oidEquals(id asn1.ObjectIdentifier, name string) bool {
	want, ok := oid.ByName(name)
	return ok && id.Equal(want)
}

func isRSAPKCS1(id asn1.ObjectIdentifier) bool {
	for _, name := range []string{"sha1WithRSAEncryption", "sha256WithRSAEncryption", "sha384WithRSAEncryption", "sha512WithRSAEncryption"} {
		if oidEquals(id, name) {
			return true
		}
	}
	return false
}

func isECDSA(id asn1.ObjectIdentifier) bool {
	for _, name := range []string{"ecdsaWithSha1", "ecdsaWithSha256", "ecdsaWithSha384", "ecdsaWithSha512"} {
		if oidEquals(id, name) {
			return true
		}
	}
	return false
}

func hashForRSAPKCS1(id asn1.ObjectIdentifier) (crypto.Hash, hash.Hash) {
	switch {
	case oidEquals(id, "sha1WithRSAEncryption"):
		return crypto.SHA1, sha1.New()
	case oidEquals(id, "sha256WithRSAEncryption"):
		return crypto.SHA256, sha256.New()
	case oidEquals(id, "sha384WithRSAEncryption"):
		return crypto.SHA384, sha512.New384()
	case oidEquals(id, "sha512WithRSAEncryption"):
		return crypto.SHA512, sha512.New()
	default:
		return 0, nil
	}
}

func hashForECDSA(id asn1.ObjectIdentifier) hash.Hash {
	switch {
	case oidEquals(id, "ecdsaWithSha1"):
		return sha1.New()
	case oidEquals(id, "ecdsaWithSha256"):
		return sha256.New()
	case oidEquals(id, "ecdsaWithSha384"):
		return sha512.New384()
	case oidEquals(id, "ecdsaWithSha512"):
		return sha512.New()
	default:
		return nil
	}
}

func verifyRSAPKCS1(tbs, signature []byte, pub model.PublicKey, sigAlgOID asn1.ObjectIdentifier) (bool, error) {
	if pub.Kind != model.PublicKeyRSA {
		return false, errors.New("verify: signature algorithm is RSA but key is not")
	}
	cryptoHash, h := hashForRSAPKCS1(sigAlgOID)
	if h == nil {
		return false, ErrUnsupportedAlgorithm
	}
	h.Write(tbs)
	digest := h.Sum(nil)

	rsaPub := &rsa.PublicKey{N: pub.RSA.N, E: int(pub.RSA.E.Int64())}
	if err := rsa.VerifyPKCS1v15(rsaPub, cryptoHash, digest, signature); err != nil {
		return false, nil
	}
	return true, nil
}

type pssParameters struct {
	Hash         asn1.RawValue `asn1:"explicit,tag:0"`
	MGF          asn1.RawValue `asn1:"explicit,tag:1"`
	SaltLength   int           `asn1:"explicit,tag:2"`
	TrailerField int           `asn1:"optional,explicit,tag:3,default:1"`
}

func verifyRSAPSS(tbs, signature []byte, pub model.PublicKey, params asn1.RawValue) (bool, error) {
	if pub.Kind != model.PublicKeyRSA {
		return false, errors.New("verify: signature algorithm is RSA-PSS but key is not")
	}
	var pss pssParameters
	if _, err := asn1.Unmarshal(params.FullBytes, &pss); err != nil {
		return false, err
	}
	var hashAlg struct {
		Algorithm  asn1.ObjectIdentifier
		Parameters asn1.RawValue `asn1:"optional"`
	}
	if _, err := asn1.Unmarshal(pss.Hash.Bytes, &hashAlg); err != nil {
		return false, err
	}

	var cryptoHash crypto.Hash
	var h hash.Hash
	switch {
	case oidEquals(hashAlg.Algorithm, "sha256"):
		cryptoHash, h = crypto.SHA256, sha256.New()
	case oidEquals(hashAlg.Algorithm, "sha384"):
		cryptoHash, h = crypto.SHA384, sha512.New384()
	case oidEquals(hashAlg.Algorithm, "sha512"):
		cryptoHash, h = crypto.SHA512, sha512.New()
	default:
		return false, ErrUnsupportedAlgorithm
	}

	h.Write(tbs)
	digest := h.Sum(nil)
	rsaPub := &rsa.PublicKey{N: pub.RSA.N, E: int(pub.RSA.E.Int64())}
	opts := &rsa.PSSOptions{SaltLength: pss.SaltLength, Hash: cryptoHash}
	if err := rsa.VerifyPSS(rsaPub, cryptoHash, digest, signature, opts); err != nil {
		return false, nil
	}
	return true, nil
}

func verifyDSA(tbs, signature []byte, pub model.PublicKey, h hash.Hash) (bool, error) {
	if pub.Kind != model.PublicKeyDSA {
		return false, errors.New("verify: signature algorithm is DSA but key is not")
	}
	var sig ecdsaSignature
	if _, err := asn1.Unmarshal(signature, &sig); err != nil {
		return false, err
	}
	h.Write(tbs)
	digest := h.Sum(nil)

	dsaPub := dsa.PublicKey{
		Parameters: dsa.Parameters{P: pub.DSA.P, Q: pub.DSA.Q, G: pub.DSA.G},
		Y:          pub.DSA.Y,
	}
	return dsa.Verify(&dsaPub, digest, sig.R, sig.S), nil
}

func verifyECDSA(tbs, signature []byte, pub model.PublicKey, sigAlgOID asn1.ObjectIdentifier) (bool, error) {
	if pub.Kind != model.PublicKeyECDSA {
		return false, errors.New("verify: signature algorithm is ECDSA but key is not")
	}
	var sig ecdsaSignature
	if _, err := asn1.Unmarshal(signature, &sig); err != nil {
		return false, err
	}
	h := hashForECDSA(sigAlgOID)
	if h == nil {
		return false, ErrUnsupportedAlgorithm
	}
	h.Write(tbs)
	digest := h.Sum(nil)

	stdCurve := stdlibCurveFor(pub)
	if stdCurve == nil {
		return false, errors.New("verify: curve not supported by stdlib ecdsa verifier")
	}
	ecdsaPub := &ecdsa.PublicKey{Curve: stdCurve, X: pub.ECDSA.X, Y: pub.ECDSA.Y}
	return ecdsa.Verify(ecdsaPub, digest, sig.R, sig.S), nil
}

func verifyEd25519(tbs, signature []byte, pub model.PublicKey) (bool, error) {
	if pub.Kind != model.PublicKeyEdDSA {
		return false, errors.New("verify: signature algorithm is Ed25519 but key is not")
	}
	if len(pub.EdDSA.EncodedKey) != ed25519.PublicKeySize {
		return false, errors.New("verify: malformed ed25519 public key")
	}
	return ed25519.Verify(ed25519.PublicKey(pub.EdDSA.EncodedKey), tbs, signature), nil
}
