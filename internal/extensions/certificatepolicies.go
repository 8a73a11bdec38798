package extensions

import (
	"encoding/asn1"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/x509examine/x509examine/internal/judgement"
	"github.com/x509examine/x509examine/internal/model"
	"github.com/x509examine/x509examine/internal/oid"
)

type rawPolicyQualifierInfo struct {
	PolicyQualifierID asn1.ObjectIdentifier
	Qualifier         asn1.RawValue
}

type rawPolicyInformation struct {
	PolicyIdentifier asn1.ObjectIdentifier
	Qualifiers       []rawPolicyQualifierInfo `asn1:"optional"`
}

type rawUserNotice struct {
	NoticeRef    asn1.RawValue `asn1:"optional"`
	ExplicitText asn1.RawValue `asn1:"optional"`
}

func init() {
	register("certificatePolicies", analyzeCertificatePolicies)
}

func analyzeCertificatePolicies(ext model.Extension, a *Analysis) {
	var policies []rawPolicyInformation
	if _, err := asn1.Unmarshal(ext.Value, &policies); err != nil {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.ExtensionMalformed,
			"CertificatePolicies failed to decode: "+err.Error(),
			judgement.VerdictWeakSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation))
		return
	}

	anyPolicyID, _ := oid.ByName("anyPolicy")
	cpsID, _ := oid.ByName("id-qt-cps")
	unoticeID, _ := oid.ByName("id-qt-unotice")

	seen := map[string]int{}
	for _, p := range policies {
		key := p.PolicyIdentifier.String()
		seen[key]++
		if seen[key] > 1 {
			a.Judgements = a.Judgements.Extend(judgement.New(judgement.CertificatePoliciesDuplicateOID,
				"policy OID "+key+" appears more than once in CertificatePolicies",
				judgement.VerdictNone, judgement.HighlyUnusual, judgement.StandardsDeviation))
		}

		isAnyPolicy := p.PolicyIdentifier.Equal(anyPolicyID)

		for _, q := range p.Qualifiers {
			switch {
			case q.PolicyQualifierID.Equal(cpsID):
				analyzeCPSQualifier(q, a)
			case q.PolicyQualifierID.Equal(unoticeID):
				analyzeUserNoticeQualifier(q, a)
			default:
				if isAnyPolicy {
					a.Judgements = a.Judgements.Extend(judgement.New(judgement.CertificatePoliciesAnyPolicyBadQualifier,
						"anyPolicy carries a qualifier other than id-qt-cps/id-qt-unotice: "+q.PolicyQualifierID.String(),
						judgement.VerdictNone, judgement.HighlyUnusual, judgement.StandardsDeviation).
						WithStandard(judgement.Standard{RFCNo: 5280, Sect: "4.2.1.4", Verb: judgement.SHOULD,
							Text: "the qualifier for anyPolicy SHOULD only be CPS pointer or user notice"}))
				}
			}
		}
	}
}

func analyzeCPSQualifier(q rawPolicyQualifierInfo, a *Analysis) {
	var uri string
	if _, err := asn1.Unmarshal(q.Qualifier.FullBytes, &uri); err != nil {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.CertificatePoliciesCPSUriNotURI,
			"id-qt-cps qualifier is not an IA5String",
			judgement.VerdictNone, judgement.HighlyUnusual, judgement.StandardsDeviation))
		return
	}
	if !hasKnownURIScheme(uri) {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.CertificatePoliciesCPSUriNotURI,
			"id-qt-cps qualifier \""+uri+"\" is not a recognizable URI",
			judgement.VerdictNone, judgement.Unusual, judgement.StandardsDeviation))
	}
}

func analyzeUserNoticeQualifier(q rawPolicyQualifierInfo, a *Analysis) {
	var notice rawUserNotice
	if _, err := asn1.Unmarshal(q.Qualifier.FullBytes, &notice); err != nil {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.CertificatePoliciesUserNoticeBadEncoding,
			"id-qt-unotice qualifier failed to decode as UserNotice",
			judgement.VerdictNone, judgement.HighlyUnusual, judgement.StandardsDeviation))
		return
	}
	if len(notice.NoticeRef.FullBytes) > 0 && notice.NoticeRef.Tag != asn1.TagSequence {
		// encoding/asn1 matches an optional RawValue against any tag, so a
		// UserNotice carrying only explicitText decodes it into NoticeRef.
		notice.ExplicitText, notice.NoticeRef = notice.NoticeRef, asn1.RawValue{}
	}

	if len(notice.NoticeRef.FullBytes) > 0 {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.CertificatePoliciesNoticeRefDiscouraged,
			"id-qt-unotice carries a noticeRef, a construct most relying-party software does not render",
			judgement.VerdictNone, judgement.Unusual, judgement.StandardsDeviation))
	}

	if len(notice.ExplicitText.FullBytes) == 0 {
		return
	}
	var text string
	if _, err := asn1.Unmarshal(notice.ExplicitText.FullBytes, &text); err != nil {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.CertificatePoliciesUserNoticeBadEncoding,
			"id-qt-unotice explicitText failed to decode as a string type",
			judgement.VerdictNone, judgement.HighlyUnusual, judgement.StandardsDeviation))
		return
	}

	if utf8.RuneCountInString(text) > 200 {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.CertificatePoliciesUserNoticeTooLong,
			"id-qt-unotice explicitText exceeds the 200-character limit RFC 5280 §4.2.1.4 recommends",
			judgement.VerdictNone, judgement.Unusual, judgement.StandardsDeviation).
			WithStandard(judgement.Standard{RFCNo: 5280, Sect: "4.2.1.4", Verb: judgement.SHOULD,
				Text: "explicitText SHOULD NOT exceed 200 characters"}))
	}
	if strings.IndexFunc(text, unicode.IsControl) >= 0 {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.CertificatePoliciesUserNoticeControlChar,
			"id-qt-unotice explicitText contains a control character",
			judgement.VerdictNone, judgement.HighlyUnusual, judgement.StandardsDeviation))
	}
}
