package pubkey

import (
	"encoding/asn1"

	"github.com/x509examine/x509examine/internal/judgement"
	"github.com/x509examine/x509examine/internal/oid"
)

// RSAPSSParameters mirrors RFC 4055 §3.1's RSASSA-PSS-params SEQUENCE.
// Fields default per RFC 4055 when absent: hashAlgorithm=SHA-1,
// maskGenAlgorithm=MGF1 with SHA-1, saltLength=20, trailerField=1.
type RSAPSSParameters struct {
	Hash         algorithmIdentifier
	MGF          algorithmIdentifier
	SaltLength   int
	TrailerField int
}

type algorithmIdentifier struct {
	Algorithm  asn1.ObjectIdentifier
	Parameters asn1.RawValue `asn1:"optional"`
}

type rawPSSParameters struct {
	Hash         asn1.RawValue `asn1:"optional,explicit,tag:0"`
	MGF          asn1.RawValue `asn1:"optional,explicit,tag:1"`
	SaltLength   int           `asn1:"optional,explicit,tag:2,default:20"`
	TrailerField int           `asn1:"optional,explicit,tag:3,default:1"`
}

var defaultHashAlgorithm = oid.MustByName("sha1")

// DecodeRSAPSSParameters decodes the RSASSA-PSS-params SEQUENCE carried in
// the signature AlgorithmIdentifier's parameters field.
func DecodeRSAPSSParameters(der []byte) (RSAPSSParameters, error) {
	var raw rawPSSParameters
	if _, err := asn1.Unmarshal(der, &raw); err != nil {
		return RSAPSSParameters{}, err
	}
	params := RSAPSSParameters{
		SaltLength:   raw.SaltLength,
		TrailerField: raw.TrailerField,
	}
	if len(raw.Hash.FullBytes) > 0 {
		if err := unmarshalAlgID(raw.Hash.Bytes, &params.Hash); err != nil {
			return RSAPSSParameters{}, err
		}
	} else {
		params.Hash = algorithmIdentifier{Algorithm: defaultHashAlgorithm}
	}
	if len(raw.MGF.FullBytes) > 0 {
		if err := unmarshalAlgID(raw.MGF.Bytes, &params.MGF); err != nil {
			return RSAPSSParameters{}, err
		}
	} else {
		mgf1, _ := oid.ByName("mgf1")
		params.MGF = algorithmIdentifier{Algorithm: mgf1}
	}
	return params, nil
}

func unmarshalAlgID(der []byte, out *algorithmIdentifier) error {
	_, err := asn1.Unmarshal(der, out)
	return err
}

var pssSupportedHashes = []string{"sha1", "sha224", "sha256", "sha384", "sha512", "sha3-256", "sha3-384", "sha3-512"}

// AnalyzeRSAPSS implements spec §4.2's RSA-PSS checks on the DER-encoded
// RSASSA-PSS-params in der. outerParams and innerParams are the raw
// parameter bytes of the outer Certificate.signatureAlgorithm and inner
// TBSCertificate.signature AlgorithmIdentifiers (spec §4.2: "mismatched
// hash across signature-algorithm layers"); if both are non-empty and
// differ, a mismatch is flagged.
func AnalyzeRSAPSS(der []byte, outerParams, innerParams []byte) judgement.SecurityJudgements {
	var js judgement.SecurityJudgements

	params, err := DecodeRSAPSSParameters(der)
	if err != nil {
		return js.Extend(judgement.New(judgement.PublicKeyRSAPSSParametersMalformed,
			"RSASSA-PSS parameters failed to decode: "+err.Error(),
			judgement.VerdictMediumSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation))
	}

	hashName, known := oid.Name(params.Hash.Algorithm)
	if !known || !contains(pssSupportedHashes, hashName) {
		js = js.Extend(judgement.New(judgement.PublicKeyRSAPSSUnsupportedHash,
			"RSASSA-PSS hash algorithm is not one of the supported digests",
			judgement.VerdictMediumSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation))
	}

	mgfName, mgfKnown := oid.Name(params.MGF.Algorithm)
	if !mgfKnown || mgfName != "mgf1" {
		js = js.Extend(judgement.New(judgement.PublicKeyRSAPSSUnsupportedMGF,
			"RSASSA-PSS mask generation function is not MGF1",
			judgement.VerdictMediumSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation))
	}

	if len(outerParams) > 0 && len(innerParams) > 0 && string(outerParams) != string(innerParams) {
		js = js.Extend(judgement.New(judgement.SignatureAlgorithmMismatch,
			"RSASSA-PSS parameters differ between the outer and inner AlgorithmIdentifier",
			judgement.VerdictWeakSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation))
	}

	hashOutputBits := hashOutputSizeBits(hashName)

	switch {
	case params.SaltLength == 0:
		js = js.Extend(judgement.New(judgement.PublicKeyRSAPSSNoSaltUsed,
			"RSASSA-PSS salt length is zero",
			judgement.VerdictWeakSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation))
	case hashOutputBits > 0 && params.SaltLength*8 < hashOutputBits/2:
		js = js.Extend(judgement.New(judgement.PublicKeyRSAPSSShortSaltUsed,
			"RSASSA-PSS salt length is shorter than half the hash output length",
			judgement.VerdictWeakSecurity, judgement.Unusual, judgement.StandardsDeviation))
	}

	if params.TrailerField != 1 {
		js = js.Extend(judgement.New(judgement.PublicKeyRSAPSSUnknownTrailerField,
			"RSASSA-PSS trailerField is not 1 (the only value RFC 4055 defines)",
			judgement.VerdictMediumSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation))
	}

	return js
}

func contains(xs []string, x string) bool {
	for _, s := range xs {
		if s == x {
			return true
		}
	}
	return false
}

func hashOutputSizeBits(name string) int {
	switch name {
	case "sha1":
		return 160
	case "sha224", "sha3-224":
		return 224
	case "sha256", "sha3-256":
		return 256
	case "sha384", "sha3-384":
		return 384
	case "sha512", "sha3-512":
		return 512
	default:
		return 0
	}
}
