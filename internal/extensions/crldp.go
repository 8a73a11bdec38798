package extensions

import (
	"encoding/asn1"
	"net/url"
	"strings"

	"github.com/x509examine/x509examine/internal/judgement"
	"github.com/x509examine/x509examine/internal/model"
)

type rawDistributionPointName struct {
	FullName                asn1.RawValue `asn1:"optional,tag:0"`
	NameRelativeToCRLIssuer asn1.RawValue `asn1:"optional,tag:1"`
}

type rawDistributionPoint struct {
	DistributionPoint asn1.RawValue `asn1:"optional,tag:0"`
	Reasons           asn1.BitString `asn1:"optional,tag:1"`
	CRLIssuer         asn1.RawValue `asn1:"optional,tag:2"`
}

// crlReasonBitCount is the number of reason flags defined by RFC 5280
// §4.2.1.13's ReasonFlags BIT STRING.
const crlReasonBitCount = 9

func init() {
	register("crlDistributionPoints", analyzeCRLDistributionPoints)
}

func analyzeCRLDistributionPoints(ext model.Extension, a *Analysis) {
	if ext.Critical {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.CRLDistributionPointsCritical,
			"CRLDistributionPoints is marked critical; RFC 5280 §4.2.1.13 recommends non-critical",
			judgement.VerdictNone, judgement.Unusual, judgement.StandardsDeviation).
			WithStandard(judgement.Standard{RFCNo: 5280, Sect: "4.2.1.13", Verb: judgement.SHOULD,
				Text: "conforming CAs SHOULD mark this extension as non-critical"}))
	}

	var points []rawDistributionPoint
	if _, err := asn1.Unmarshal(ext.Value, &points); err != nil {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.ExtensionMalformed,
			"CRLDistributionPoints failed to decode: "+err.Error(),
			judgement.VerdictWeakSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation))
		return
	}

	coveredReasons := make([]bool, crlReasonBitCount)
	anyReasonsSeen := false

	for _, dp := range points {
		if len(dp.DistributionPoint.FullBytes) == 0 && len(dp.Reasons.Bytes) > 0 && len(dp.CRLIssuer.FullBytes) == 0 {
			a.Judgements = a.Judgements.Extend(judgement.New(judgement.CRLDistributionPointsReasonsOnly,
				"DistributionPoint carries reasons but neither a distributionPoint name nor a cRLIssuer",
				judgement.VerdictNone, judgement.HighlyUnusual, judgement.StandardsDeviation))
		}

		if len(dp.Reasons.Bytes) > 0 {
			anyReasonsSeen = true
			for i := 0; i < crlReasonBitCount; i++ {
				if dp.Reasons.At(i) != 0 {
					coveredReasons[i] = true
				}
			}
		} else {
			for i := range coveredReasons {
				coveredReasons[i] = true
			}
		}

		if len(dp.DistributionPoint.FullBytes) == 0 {
			continue
		}
		var dpName rawDistributionPointName
		if _, err := asn1.Unmarshal(dp.DistributionPoint.Bytes, &dpName); err != nil {
			continue
		}
		if len(dpName.NameRelativeToCRLIssuer.FullBytes) > 0 {
			if len(dp.CRLIssuer.FullBytes) == 0 {
				a.Judgements = a.Judgements.Extend(judgement.New(judgement.CRLDistributionPointsNameRelForbidden,
					"nameRelativeToCRLIssuer is present without a cRLIssuer to resolve it against",
					judgement.VerdictNone, judgement.HighlyUnusual, judgement.StandardsDeviation))
			} else {
				a.Judgements = a.Judgements.Extend(judgement.New(judgement.CRLDistributionPointsNameRelDiscouraged,
					"DistributionPointName uses nameRelativeToCRLIssuer, a rarely-implemented relative-RDN form",
					judgement.VerdictNone, judgement.Unusual, judgement.StandardsDeviation))
			}
		}
		if len(dpName.FullName.FullBytes) == 0 {
			continue
		}
		names, err := model.DecodeGeneralNames(dpName.FullName.Bytes)
		if err != nil {
			continue
		}
		for _, gn := range names {
			validateCRLGeneralName(gn, a)
		}
	}

	if anyReasonsSeen {
		allCovered := true
		for _, c := range coveredReasons {
			if !c {
				allCovered = false
				break
			}
		}
		if !allCovered {
			a.Judgements = a.Judgements.Extend(judgement.New(judgement.CRLDistributionPointsNoFullReasonCoverage,
				"partitioned DistributionPoints do not jointly cover every CRL reason code",
				judgement.VerdictNone, judgement.Unusual, judgement.StandardsDeviation))
		}
	}
}

func validateCRLGeneralName(gn model.GeneralName, a *Analysis) {
	switch gn.Kind {
	case model.GeneralNameURI:
		validateCRLURL(gn.URI, a)
	default:
		a.Judgements = a.Judgements.Extend(validateGeneralName(gn)...)
	}
}

func validateCRLURL(raw string, a *Analysis) {
	u, err := url.Parse(raw)
	if err != nil {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.CRLDistributionPointsURLBadSuffix,
			"CRL distribution point URL failed to parse: "+err.Error(),
			judgement.VerdictNone, judgement.HighlyUnusual, judgement.StandardsDeviation))
		return
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "ftp":
		if !strings.HasSuffix(strings.ToLower(u.Path), ".crl") {
			a.Judgements = a.Judgements.Extend(judgement.New(judgement.CRLDistributionPointsURLBadSuffix,
				"http/ftp CRL distribution point does not end in .crl",
				judgement.VerdictNone, judgement.Unusual, judgement.StandardsDeviation))
		}
	case "ldap":
		validateLDAPCRLURL(u, a)
	}
}

// validateLDAPCRLURL applies RFC 4516's ldap URL grammar loosely: a CRL
// distribution point's LDAP URL is expected to carry a DN and a single
// "certificateRevocationList" attribute, per RFC 5280 §4.2.1.13's example.
func validateLDAPCRLURL(u *url.URL, a *Analysis) {
	dn := strings.TrimPrefix(u.Path, "/")
	if dn == "" {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.CRLDistributionPointsLDAPURLMalformed,
			"ldap CRL distribution point URL carries no distinguished name",
			judgement.VerdictNone, judgement.HighlyUnusual, judgement.StandardsDeviation))
		return
	}
	if u.Host == "" {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.CRLDistributionPointsLDAPURLMalformed,
			"ldap CRL distribution point URL carries no host",
			judgement.VerdictNone, judgement.Unusual, judgement.StandardsDeviation))
	}
	attrs := strings.Split(u.RawQuery, "?")
	if len(attrs) == 0 || attrs[0] == "" {
		return
	}
	if !strings.EqualFold(attrs[0], "certificateRevocationList") {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.CRLDistributionPointsLDAPURLMalformed,
			"ldap CRL distribution point URL requests an attribute other than certificateRevocationList",
			judgement.VerdictNone, judgement.Unusual, judgement.StandardsDeviation))
	}
}
