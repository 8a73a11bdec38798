// Package carelation implements the CA-relationship analyzer (spec §4.4):
// given a subject certificate and a presumed issuer certificate, it checks
// DN equality, the issuer's CA-ness, signature verification, AKI/SKI
// cross-references, and validity-interval overlap.
package carelation

import (
	"bytes"

	"github.com/x509examine/x509examine/internal/extensions"
	"github.com/x509examine/x509examine/internal/judgement"
	"github.com/x509examine/x509examine/internal/model"
	"github.com/x509examine/x509examine/internal/verify"
)

// ValidityOverlap classifies how two certificates' validity intervals
// relate (spec §4.4.5).
type ValidityOverlap int

const (
	OverlapUnknown ValidityOverlap = iota
	OverlapFull
	OverlapPartial
	OverlapNone
	OverlapTimestampMalformed
)

// Config carries the collaborators the analyzer needs from outside the
// pure core (spec §5: "Signature verification is the one operation that
// may shell out to an external cryptographic library").
type Config struct {
	Verifier verify.SignatureVerifier
}

// Result is the CA-relationship analysis outcome for one (subject, issuer)
// pair.
type Result struct {
	Judgements      judgement.SecurityJudgements
	SubjectIssuerDNMatch bool
	IssuerIsCA      bool
	SignatureValid  bool
	ValidityOverlap ValidityOverlap
}

// Analyze runs every CA-relationship check spec §4.4 names against subject
// (the certificate under examination) and issuer (the certificate presumed
// to have signed it).
func Analyze(subject, issuer *model.Certificate, subjectExt, issuerExt extensions.Analysis, cfg Config) Result {
	var res Result
	var js judgement.SecurityJudgements

	res.SubjectIssuerDNMatch = subject.Issuer.Equal(issuer.Subject)
	if res.SubjectIssuerDNMatch {
		js = js.Extend(judgement.New(judgement.CARelationshipSubjectIssuerMatch,
			"subject's issuer DN equals the presumed issuer's subject DN",
			judgement.VerdictNone, judgement.Common, judgement.FullyCompliant))
	} else {
		js = js.Extend(judgement.New(judgement.CARelationshipSubjectIssuerMismatch,
			"subject's issuer DN does not equal the presumed issuer's subject DN",
			judgement.VerdictWeakSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation))
	}

	res.IssuerIsCA = issuerExt.IsCA
	if !res.IssuerIsCA {
		js = js.Extend(judgement.New(judgement.CARelationshipIssuerNotCA,
			"presumed issuer certificate does not assert BasicConstraints cA=true",
			judgement.VerdictWeakSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation))
	}

	js = judgement.Concat(js, analyzeSignature(subject, issuer, cfg, &res))
	js = judgement.Concat(js, analyzeAKI(subjectExt.AuthorityKeyID, issuer, issuerExt))
	js = judgement.Concat(js, analyzeValidityOverlap(subject, issuer, &res))

	res.Judgements = js
	return res
}

func analyzeSignature(subject, issuer *model.Certificate, cfg Config, res *Result) judgement.SecurityJudgements {
	if cfg.Verifier == nil {
		return nil
	}
	ok, err := cfg.Verifier.Verify(subject.RawTBSCertificate, subject.SignatureValue.RightAlign(), issuer.PublicKey,
		subject.SignatureAlgorithmOID, subject.SignatureAlgorithmParams)
	if err != nil || !ok {
		return judgement.SecurityJudgements{}.Extend(judgement.New(judgement.CARelationshipSignatureVerifyFailure,
			"subject certificate's signature does not verify under the presumed issuer's public key",
			judgement.VerdictBrokenSecurity, judgement.Unusual, judgement.StandardsDeviation))
	}
	res.SignatureValid = true
	return judgement.SecurityJudgements{}.Extend(judgement.New(judgement.CARelationshipSignatureVerifySuccess,
		"subject certificate's signature verifies under the presumed issuer's public key",
		judgement.VerdictNone, judgement.Common, judgement.FullyCompliant))
}

func analyzeAKI(aki extensions.AuthorityKeyIDInfo, issuer *model.Certificate, issuerExt extensions.Analysis) judgement.SecurityJudgements {
	var js judgement.SecurityJudgements
	if !aki.Present {
		return js
	}

	if len(aki.KeyIdentifier) > 0 && len(issuerExt.SubjectKeyID) > 0 {
		if bytes.Equal(aki.KeyIdentifier, issuerExt.SubjectKeyID) {
			js = js.Extend(judgement.New(judgement.CARelationshipAKIKeyIDMatch,
				"subject's AuthorityKeyIdentifier keyIdentifier matches the issuer's SubjectKeyIdentifier",
				judgement.VerdictNone, judgement.Common, judgement.FullyCompliant))
		} else {
			js = js.Extend(judgement.New(judgement.CARelationshipAKIKeyIDMismatch,
				"subject's AuthorityKeyIdentifier keyIdentifier does not match the issuer's SubjectKeyIdentifier",
				judgement.VerdictWeakSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation))
		}
	}

	if aki.AuthorityCertSerial != nil {
		if aki.AuthorityCertSerial.Cmp(issuer.Serial) == 0 {
			js = js.Extend(judgement.New(judgement.CARelationshipAKISerialMatch,
				"subject's AuthorityKeyIdentifier authorityCertSerialNumber matches the issuer's serial number",
				judgement.VerdictNone, judgement.Common, judgement.FullyCompliant))
		} else {
			js = js.Extend(judgement.New(judgement.CARelationshipAKISerialMismatch,
				"subject's AuthorityKeyIdentifier authorityCertSerialNumber does not match the issuer's serial number",
				judgement.VerdictWeakSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation))
		}
	}

	for _, gn := range aki.AuthorityCertIssuer {
		if gn.Kind != model.GeneralNameDirectory {
			continue
		}
		if gn.Directory.Equal(issuer.Subject) {
			js = js.Extend(judgement.New(judgement.CARelationshipAKIIssuerNameMatch,
				"subject's AuthorityKeyIdentifier authorityCertIssuer directoryName matches the issuer's subject DN",
				judgement.VerdictNone, judgement.Common, judgement.FullyCompliant))
		} else {
			js = js.Extend(judgement.New(judgement.CARelationshipAKIIssuerNameMismatch,
				"subject's AuthorityKeyIdentifier authorityCertIssuer directoryName does not match the issuer's subject DN",
				judgement.VerdictWeakSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation))
		}
	}

	return js
}

func analyzeValidityOverlap(subject, issuer *model.Certificate, res *Result) judgement.SecurityJudgements {
	sv, iv := subject.Validity, issuer.Validity
	if sv.NotBefore.Malformed || sv.NotAfter.Malformed || iv.NotBefore.Malformed || iv.NotAfter.Malformed {
		res.ValidityOverlap = OverlapTimestampMalformed
		return judgement.SecurityJudgements{}.Extend(judgement.New(judgement.CARelationshipValidityTimestampMalformed,
			"cannot determine validity-interval overlap: one or more bounds failed to parse",
			judgement.VerdictNone, judgement.Unusual, judgement.StandardsDeviation))
	}

	sb, se := sv.NotBefore.Time, sv.NotAfter.Time
	ib, ie := iv.NotBefore.Time, iv.NotAfter.Time

	switch {
	case !sb.Before(ib) && !se.After(ie):
		res.ValidityOverlap = OverlapFull
		return judgement.SecurityJudgements{}.Extend(judgement.New(judgement.CARelationshipValidityFullOverlap,
			"subject's validity interval is fully contained within the issuer's",
			judgement.VerdictNone, judgement.Common, judgement.FullyCompliant))
	case se.Before(ib) || sb.After(ie):
		res.ValidityOverlap = OverlapNone
		return judgement.SecurityJudgements{}.Extend(judgement.New(judgement.CARelationshipValidityNoOverlap,
			"subject's and issuer's validity intervals do not overlap at all",
			judgement.VerdictWeakSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation))
	default:
		res.ValidityOverlap = OverlapPartial
		return judgement.SecurityJudgements{}.Extend(judgement.New(judgement.CARelationshipValidityPartialOverlap,
			"subject's validity interval only partially overlaps the issuer's",
			judgement.VerdictNone, judgement.Unusual, judgement.StandardsDeviation))
	}
}
