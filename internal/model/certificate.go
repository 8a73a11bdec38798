// Package model is the X.509 object model (spec §3): Certificate,
// PublicKey, DistinguishedName, GeneralName, Extension. Objects are
// immutable once constructed from parsed bytes (spec §3 "Lifecycle").
package model

import (
	"encoding/asn1"
	"fmt"
	"math/big"
	"time"
)

// EncodingForm records which ASN.1 time alternative a Validity timestamp
// used (spec §3: "each carrying its original encoding form").
type EncodingForm int

const (
	EncodingUnknown EncodingForm = iota
	EncodingUTCTime
	EncodingGeneralizedTime
)

func (f EncodingForm) String() string {
	switch f {
	case EncodingUTCTime:
		return "UTCTime"
	case EncodingGeneralizedTime:
		return "GeneralizedTime"
	default:
		return "Unknown"
	}
}

// Timestamp is one validity bound plus its original encoding form.
type Timestamp struct {
	Time      time.Time
	Form      EncodingForm
	Malformed bool
}

// Validity is the certificate's (notBefore, notAfter) interval.
type Validity struct {
	NotBefore, NotAfter Timestamp
}

// UniqueID is an optional issuer/subject unique identifier bit string.
type UniqueID struct {
	Present bool
	Bits    asn1.BitString
}

// Certificate is the parsed X.509 entity (spec §3).
type Certificate struct {
	Version int // 1, 2, or 3
	Serial  *big.Int

	Issuer, Subject DistinguishedName
	Validity        Validity
	PublicKey       PublicKey

	IssuerUniqueID, SubjectUniqueID UniqueID

	Extensions         []Extension
	ExtensionsPresent  bool // true if the [3] extensions field appeared at all
	ExtensionsEmptySeq bool // true if present but the SEQUENCE had zero entries

	// InnerSignatureAlgorithm/OuterSignatureAlgorithm are the raw DER bytes
	// of the AlgorithmIdentifier appearing inside tbsCertificate.signature
	// and in the outer Certificate.signatureAlgorithm wrapper, respectively.
	// spec §3 invariant: these must be byte-identical; a mismatch is
	// diagnosable, not a parse failure.
	InnerSignatureAlgorithm []byte
	OuterSignatureAlgorithm []byte
	SignatureAlgorithmOID   asn1.ObjectIdentifier
	SignatureAlgorithmParams asn1.RawValue

	SignatureValue asn1.BitString

	RawTBSCertificate []byte
	Raw               []byte
}

type rawValidity struct {
	NotBefore asn1.RawValue
	NotAfter  asn1.RawValue
}

type rawTBSCertificate struct {
	Raw             asn1.RawContent
	Version         int `asn1:"optional,explicit,default:0,tag:0"`
	SerialNumber    *big.Int
	Signature       rawAlgorithmIdentifier
	Issuer          asn1.RawValue
	Validity        rawValidity
	Subject         asn1.RawValue
	PublicKey       rawSubjectPublicKeyInfo
	IssuerUniqueID  asn1.BitString `asn1:"optional,tag:1"`
	SubjectUniqueID asn1.BitString `asn1:"optional,tag:2"`
	Extensions      asn1.RawValue  `asn1:"optional,explicit,tag:3"`
}

type rawCertificate struct {
	TBSCertificate     rawTBSCertificate
	SignatureAlgorithm rawAlgorithmIdentifier
	SignatureValue     asn1.BitString
}

// ParseError is returned for the one hard failure this layer recognizes:
// the top-level Certificate SEQUENCE could not be decoded at all (spec §4.6,
// §7: "surfaces as an error return, not as a judgement").
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "model: cannot parse certificate: " + e.Reason
}

// Parse decodes one DER-encoded Certificate. PEM unwrapping and multi-block
// splitting happen in internal/der before this is called; Parse operates on
// a single certificate's DER bytes.
func Parse(der []byte) (*Certificate, error) {
	var raw rawCertificate
	rest, err := asn1.Unmarshal(der, &raw)
	if err != nil {
		return nil, &ParseError{Reason: err.Error()}
	}
	if len(rest) > 0 {
		// Trailing data is diagnosable elsewhere (der.CheckCanonicity
		// already flags it structurally); here it does not block parsing
		// since the top-level Certificate SEQUENCE itself decoded fine.
	}

	cert := &Certificate{
		Raw:                     der,
		RawTBSCertificate:       raw.TBSCertificate.Raw,
		Serial:                  raw.TBSCertificate.SerialNumber,
		InnerSignatureAlgorithm: raw.TBSCertificate.Signature.Raw,
		OuterSignatureAlgorithm: raw.SignatureAlgorithm.Raw,
		SignatureAlgorithmOID:   raw.SignatureAlgorithm.Algorithm,
		SignatureAlgorithmParams: raw.SignatureAlgorithm.Parameters,
		SignatureValue:          raw.SignatureValue,
	}

	switch raw.TBSCertificate.Version {
	case 0:
		cert.Version = 1
	case 1:
		cert.Version = 2
	case 2:
		cert.Version = 3
	default:
		cert.Version = raw.TBSCertificate.Version + 1
	}

	if dn, err := decodeDN(raw.TBSCertificate.Issuer.FullBytes); err == nil {
		cert.Issuer = dn
	} else {
		return nil, &ParseError{Reason: fmt.Sprintf("issuer DN: %v", err)}
	}
	if dn, err := decodeDN(raw.TBSCertificate.Subject.FullBytes); err == nil {
		cert.Subject = dn
	} else {
		return nil, &ParseError{Reason: fmt.Sprintf("subject DN: %v", err)}
	}

	cert.Validity = Validity{
		NotBefore: decodeTimestamp(raw.TBSCertificate.Validity.NotBefore),
		NotAfter:  decodeTimestamp(raw.TBSCertificate.Validity.NotAfter),
	}

	cert.PublicKey = decodePublicKey(raw.TBSCertificate.PublicKey)

	if raw.TBSCertificate.IssuerUniqueID.BitLength > 0 || len(raw.TBSCertificate.IssuerUniqueID.Bytes) > 0 {
		cert.IssuerUniqueID = UniqueID{Present: true, Bits: raw.TBSCertificate.IssuerUniqueID}
	}
	if raw.TBSCertificate.SubjectUniqueID.BitLength > 0 || len(raw.TBSCertificate.SubjectUniqueID.Bytes) > 0 {
		cert.SubjectUniqueID = UniqueID{Present: true, Bits: raw.TBSCertificate.SubjectUniqueID}
	}

	if len(raw.TBSCertificate.Extensions.FullBytes) > 0 {
		cert.ExtensionsPresent = true
		// Bytes is the Extensions SEQUENCE inside the explicit [3] tag.
		exts, emptySeq, err := decodeExtensions(raw.TBSCertificate.Extensions.Bytes)
		if err != nil {
			return nil, &ParseError{Reason: fmt.Sprintf("extensions: %v", err)}
		}
		cert.Extensions = exts
		cert.ExtensionsEmptySeq = emptySeq
	}

	return cert, nil
}

// decodeTimestamp decodes an ASN.1 Time CHOICE (UTCTime or GeneralizedTime)
// and records which alternative was used.
func decodeTimestamp(raw asn1.RawValue) Timestamp {
	switch raw.Tag {
	case 23: // UTCTime
		t, err := parseUTCTime(raw.Bytes)
		if err != nil {
			return Timestamp{Form: EncodingUTCTime, Malformed: true}
		}
		return Timestamp{Time: t, Form: EncodingUTCTime}
	case 24: // GeneralizedTime
		t, err := parseGeneralizedTime(raw.Bytes)
		if err != nil {
			return Timestamp{Form: EncodingGeneralizedTime, Malformed: true}
		}
		return Timestamp{Time: t, Form: EncodingGeneralizedTime}
	default:
		return Timestamp{Form: EncodingUnknown, Malformed: true}
	}
}

func parseUTCTime(b []byte) (time.Time, error) {
	s := string(b)
	// YYMMDDHHMMSSZ, per RFC 5280 §4.1.2.5.1 (seconds required, Zulu only).
	t, err := time.Parse("060102150405Z0700", s)
	if err != nil {
		return time.Time{}, err
	}
	// RFC 5280: interpret YY >= 50 as 19YY, else 20YY. time.Parse maps
	// only YY >= 69 to 19YY, so 50-68 are moved back a century here.
	if t.Year() >= 2050 {
		t = t.AddDate(-100, 0, 0)
	}
	return t, nil
}

func parseGeneralizedTime(b []byte) (time.Time, error) {
	s := string(b)
	return time.Parse("20060102150405Z0700", s)
}
