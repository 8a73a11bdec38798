package extensions

import (
	"crypto/md5" //nolint:gosec // used only as a candidate-hash comparison target, not for security
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/asn1"
	"math/big"

	"golang.org/x/crypto/sha3"

	"github.com/x509examine/x509examine/internal/judgement"
	"github.com/x509examine/x509examine/internal/model"
)

// AuthorityKeyIDInfo is the decoded AuthorityKeyIdentifier payload the
// CA-relationship analyzer needs (spec §4.4.4).
type AuthorityKeyIDInfo struct {
	Present         bool
	KeyIdentifier   []byte
	AuthorityCertIssuer []model.GeneralName
	AuthorityCertSerial *big.Int
}

type rawAuthorityKeyIdentifier struct {
	KeyIdentifier       []byte        `asn1:"optional,tag:0"`
	AuthorityCertIssuer asn1.RawValue `asn1:"optional,tag:1"`
	AuthorityCertSerial *big.Int      `asn1:"optional,tag:2"`
}

func init() {
	register("subjectKeyIdentifier", analyzeSKI)
	register("authorityKeyIdentifier", analyzeAKI)
}

// candidateHashesOf computes the SKI-comparison candidate digests of the
// subject public key's raw BIT STRING content (spec §4.3: "compared
// against SHA-1, SHA-224/256/384/512, SHA3-*, MD5 of the inner public-key
// bit string"). golang.org/x/crypto/sha3 supplies the SHA-3 family; the
// rest come from stdlib.
func candidateHashesOf(keyBits []byte) map[string][]byte {
	sha224 := sha256.Sum224(keyBits)
	sha256sum := sha256.Sum256(keyBits)
	sha384 := sha512.Sum384(keyBits)
	sha512sum := sha512.Sum512(keyBits)
	sha1sum := sha1.Sum(keyBits) //nolint:gosec // candidate-hash comparison, not a security use
	md5sum := md5.Sum(keyBits)   //nolint:gosec // candidate-hash comparison, not a security use
	sha3_256 := sha3.Sum256(keyBits)
	sha3_384 := sha3.Sum384(keyBits)
	sha3_512 := sha3.Sum512(keyBits)

	return map[string][]byte{
		"sha1":     sha1sum[:],
		"sha224":   sha224[:],
		"sha256":   sha256sum[:],
		"sha384":   sha384[:],
		"sha512":   sha512sum[:],
		"sha3-256": sha3_256[:],
		"sha3-384": sha3_384[:],
		"sha3-512": sha3_512[:],
		"md5":      md5sum[:],
	}
}

func analyzeSKI(ext model.Extension, a *Analysis) {
	var keyID []byte
	if _, err := asn1.Unmarshal(ext.Value, &keyID); err != nil {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.ExtensionMalformed,
			"SubjectKeyIdentifier failed to decode: "+err.Error(),
			judgement.VerdictWeakSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation))
		return
	}
	a.SubjectKeyID = keyID

	if len(keyID) < 1 || len(keyID) > 32 {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.SubjectKeyIdentifierBadLength,
			"SubjectKeyIdentifier length is outside the typical 1-32 octet range",
			judgement.VerdictNone, judgement.HighlyUnusual, judgement.StandardsDeviation))
	}
}

// ClassifySubjectKeyIdentifier compares ski against the candidate hashes of
// rawPublicKeyBits (the SubjectPublicKeyInfo.subjectPublicKey BIT STRING's
// raw content, right-aligned). The engine calls this after both the
// extension and the public key have been decoded, since the candidate
// hashes depend on the key.
func ClassifySubjectKeyIdentifier(ski, rawPublicKeyBits []byte) judgement.SecurityJudgements {
	var js judgement.SecurityJudgements
	if len(ski) == 0 {
		return js
	}
	candidates := candidateHashesOf(rawPublicKeyBits)
	for name, digest := range candidates {
		if bytesEqual(digest, ski) {
			if name == "sha1" {
				return js
			}
			return js.Extend(judgement.New(judgement.SubjectKeyIdentifierOtherHash,
				"SubjectKeyIdentifier matches "+name+" of the public key rather than the conventional SHA-1",
				judgement.VerdictNone, judgement.Unusual, judgement.StandardsDeviation))
		}
	}
	return js.Extend(judgement.New(judgement.SubjectKeyIdentifierArbitrary,
		"SubjectKeyIdentifier does not match any conventional hash of the public key",
		judgement.VerdictNone, judgement.HighlyUnusual, judgement.StandardsDeviation))
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func analyzeAKI(ext model.Extension, a *Analysis) {
	var raw rawAuthorityKeyIdentifier
	if _, err := asn1.Unmarshal(ext.Value, &raw); err != nil {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.ExtensionMalformed,
			"AuthorityKeyIdentifier failed to decode: "+err.Error(),
			judgement.VerdictWeakSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation))
		return
	}

	info := AuthorityKeyIDInfo{Present: true, KeyIdentifier: raw.KeyIdentifier, AuthorityCertSerial: raw.AuthorityCertSerial}
	if len(raw.AuthorityCertIssuer.FullBytes) > 0 {
		names, err := model.DecodeGeneralNames(raw.AuthorityCertIssuer.Bytes)
		if err == nil {
			info.AuthorityCertIssuer = names
		}
	}
	a.AuthorityKeyID = info

	if ext.Critical {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.AuthorityKeyIdentifierCritical,
			"AuthorityKeyIdentifier is marked critical; RFC 5280 §4.2.1.1 says it MUST NOT be",
			judgement.VerdictWeakSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation).
			WithStandard(judgement.Standard{RFCNo: 5280, Sect: "4.2.1.1", Verb: judgement.MUSTNOT,
				Text: "conforming CAs MUST mark this extension as non-critical"}))
	}

	hasSerial := info.AuthorityCertSerial != nil
	hasName := len(info.AuthorityCertIssuer) > 0
	if hasSerial && !hasName {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.AuthorityKeyIdentifierSerialNoName,
			"AuthorityKeyIdentifier carries authorityCertSerialNumber without authorityCertIssuer",
			judgement.VerdictNone, judgement.HighlyUnusual, judgement.StandardsDeviation))
	}
	if hasName && !hasSerial {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.AuthorityKeyIdentifierNameNoSerial,
			"AuthorityKeyIdentifier carries authorityCertIssuer without authorityCertSerialNumber",
			judgement.VerdictNone, judgement.HighlyUnusual, judgement.StandardsDeviation))
	}
}
