// Package certbody analyzes the non-extension, non-public-key parts of a
// certificate's body: version, serial number, validity interval,
// signature-algorithm identity, distinguished names, and unique IDs
// (spec §3, "SUPPLEMENTED FEATURES").
package certbody

import (
	"bytes"
	"time"

	"github.com/x509examine/x509examine/internal/judgement"
	"github.com/x509examine/x509examine/internal/model"
)

// Config carries the one piece of external state this analyzer needs:
// the time against which validity is judged (SPEC_FULL.md Open Question 3
// — the engine itself never calls time.Now()).
type Config struct {
	Now time.Time

	// IsCA is supplied by the caller (the engine, after running the
	// BasicConstraints extension analyzer) so the unique-ID-forbidden-in-
	// CA-v3 check can run without this package depending on
	// internal/extensions.
	IsCA bool
}

// Analyze runs every certbody check against cert (spec §3 supplemented
// features list).
func Analyze(cert *model.Certificate, cfg Config) judgement.SecurityJudgements {
	var js judgement.SecurityJudgements

	js = analyzeSerial(js, cert)
	js = analyzeValidity(js, cert, cfg)
	js = analyzeSignatureAlgorithmIdentity(js, cert)
	js = analyzeDN(js, "subject", cert.Subject)
	js = analyzeDN(js, "issuer", cert.Issuer)
	js = analyzeUniqueIDs(js, cert, cfg)

	if cert.ExtensionsPresent && cert.ExtensionsEmptySeq {
		js = js.Extend(judgement.New(judgement.CertExtensionsEmptySeq,
			"extensions field is present but its SEQUENCE has zero entries",
			judgement.VerdictNone, judgement.HighlyUnusual, judgement.FullyCompliant))
	}

	return js
}

func analyzeSerial(js judgement.SecurityJudgements, cert *model.Certificate) judgement.SecurityJudgements {
	if cert.Serial == nil {
		return js.Extend(judgement.New(judgement.CertSerialMalformed,
			"serial number failed to decode as an INTEGER",
			judgement.VerdictNone, judgement.HighlyUnusual, judgement.StandardsDeviation))
	}
	switch cert.Serial.Sign() {
	case -1:
		return js.Extend(judgement.New(judgement.CertSerialNegative,
			"certificate serial number is negative",
			judgement.VerdictNone, judgement.HighlyUnusual, judgement.StandardsDeviation))
	case 0:
		return js.Extend(judgement.New(judgement.CertSerialZero,
			"certificate serial number is zero",
			judgement.VerdictNone, judgement.HighlyUnusual, judgement.StandardsDeviation))
	default:
		return js
	}
}

func analyzeValidity(js judgement.SecurityJudgements, cert *model.Certificate, cfg Config) judgement.SecurityJudgements {
	v := cert.Validity
	if v.NotBefore.Malformed || v.NotAfter.Malformed {
		return js.Extend(judgement.New(judgement.CertValidityMalformed,
			"notBefore or notAfter failed to decode as a valid UTCTime/GeneralizedTime",
			judgement.VerdictNone, judgement.HighlyUnusual, judgement.StandardsDeviation))
	}
	if cfg.Now.IsZero() {
		return js
	}
	if cfg.Now.Before(v.NotBefore.Time) {
		js = js.Extend(judgement.New(judgement.CertValidityNotYetValid,
			"certificate validity period has not yet begun",
			judgement.VerdictNone, judgement.Common, judgement.FullyCompliant))
	}
	if cfg.Now.After(v.NotAfter.Time) {
		js = js.Extend(judgement.New(judgement.CertValidityExpired,
			"certificate validity period has ended",
			judgement.VerdictNone, judgement.Common, judgement.FullyCompliant))
	}
	return js
}

func analyzeSignatureAlgorithmIdentity(js judgement.SecurityJudgements, cert *model.Certificate) judgement.SecurityJudgements {
	if !bytes.Equal(cert.InnerSignatureAlgorithm, cert.OuterSignatureAlgorithm) {
		return js.Extend(judgement.New(judgement.CertSignatureAlgorithmMismatch,
			"the outer Certificate.signatureAlgorithm and inner TBSCertificate.signature AlgorithmIdentifiers are not byte-identical",
			judgement.VerdictMediumSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation))
	}
	return js
}

func analyzeDN(js judgement.SecurityJudgements, which string, dn model.DistinguishedName) judgement.SecurityJudgements {
	if which == "subject" && dn.IsEmpty() {
		js = js.Extend(judgement.New(judgement.CertDNEmpty,
			"subject distinguished name is empty",
			judgement.VerdictNone, judgement.Unusual, judgement.FullyCompliant))
	}

	for _, rdn := range dn.RDNs {
		for _, av := range rdn {
			if av.StringType == "T61String" {
				js = js.Extend(judgement.New(judgement.CertDNNameUnusuallyFormatted,
					which+" distinguished name uses the deprecated T61String/TeletexString encoding",
					judgement.VerdictNone, judgement.HighlyUnusual, judgement.StandardsDeviation))
			}
		}
	}

	for _, c := range dn.CountryAttributes() {
		if c.StringType != "PrintableString" {
			js = js.Extend(judgement.New(judgement.CertDNCountryNotPrintableStr,
				which+" countryName is not encoded as PrintableString (RFC 5280 §A.1 SHOULD)",
				judgement.VerdictNone, judgement.Unusual, judgement.StandardsDeviation).
				WithStandard(judgement.Standard{RFCNo: 5280, Sect: "A.1", Verb: judgement.SHOULD,
					Text: "countryName attribute value SHOULD be PrintableString"}))
		}
	}

	return js
}

func analyzeUniqueIDs(js judgement.SecurityJudgements, cert *model.Certificate, cfg Config) judgement.SecurityJudgements {
	present := cert.IssuerUniqueID.Present || cert.SubjectUniqueID.Present
	if !present {
		return js
	}

	if cert.Version == 1 {
		js = js.Extend(judgement.New(judgement.CertUniqueIDForbiddenInV1,
			"unique identifiers are present in a v1 certificate, where RFC 5280 forbids them",
			judgement.VerdictNone, judgement.HighlyUnusual, judgement.StandardsDeviation))
	}
	if cert.Version == 3 && cfg.IsCA {
		js = js.Extend(judgement.New(judgement.CertUniqueIDForbiddenInV3CA,
			"unique identifiers are present in a v3 CA certificate; RFC 5280 §4.1.2.8 forbids CAs from using them",
			judgement.VerdictNone, judgement.HighlyUnusual, judgement.StandardsDeviation).
			WithStandard(judgement.Standard{RFCNo: 5280, Sect: "4.1.2.8", Verb: judgement.MUSTNOT,
				Text: "CAs conforming to this profile MUST NOT generate certificates with unique identifiers"}))
	}
	if cert.Version == 2 && !cert.ExtensionsPresent {
		js = js.Extend(judgement.New(judgement.CertUniqueIDImpliesV2,
			"unique identifiers without an extensions field is the defining shape of a v2 certificate",
			judgement.VerdictNone, judgement.HighlyUnusual, judgement.FullyCompliant))
	}

	return js
}
