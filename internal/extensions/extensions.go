// Package extensions implements the per-extension analyzers (spec §4.3):
// BasicConstraints, KeyUsage, ExtendedKeyUsage, SubjectAltName/
// IssuerAltName, SubjectKeyIdentifier/AuthorityKeyIdentifier,
// CertificatePolicies, CRLDistributionPoints, NameConstraints, CT
// SCTList, and CT Precertificate Poison — plus the extension-set-level
// uniqueness and unknown-critical-extension checks.
//
// Each analyzer returns its own SecurityJudgements; a handful also surface
// small pieces of decoded state (IsCA, KeyUsage bits, EKU OID set, SAN
// entries) that the purpose and CA-relationship analyzers need, so this
// package returns one aggregate Analysis rather than forcing callers to
// re-decode extensions themselves.
package extensions

import (
	"encoding/asn1"

	"github.com/x509examine/x509examine/internal/judgement"
	"github.com/x509examine/x509examine/internal/model"
	"github.com/x509examine/x509examine/internal/oid"
)

// Analysis is the aggregate result of running every extension analyzer
// against one certificate's extension list.
type Analysis struct {
	Judgements judgement.SecurityJudgements

	// SubjectEmpty is set by Analyze before any handler runs, so the SAN
	// handler can apply the "critical iff subject DN empty" rule without
	// this package depending on internal/certbody.
	SubjectEmpty bool

	IsCA              bool
	BasicConstraintsSeen bool
	PathLenConstraint *int

	KeyUsage      KeyUsageBits
	KeyUsageSeen  bool

	ExtKeyUsageOIDs      []asn1.ObjectIdentifier
	ExtKeyUsageHasAny    bool
	ExtKeyUsageSeen      bool

	SANEntries []model.GeneralName
	SANSeen    bool
	IANEntries []model.GeneralName

	IsPrecertificate bool

	SubjectKeyID []byte
	AuthorityKeyID AuthorityKeyIDInfo
}

// handler is a per-extension analyzer. It receives the raw extension and
// the in-progress Analysis (so later handlers — e.g. NameConstraints needing
// to know whether BasicConstraints.cA was seen — can read earlier results;
// extensions are processed in the certificate's original order, same as
// spec §3 "Extension... Order is preserved").
type handler func(ext model.Extension, a *Analysis)

var registry = map[string]handler{}

func register(name string, h handler) {
	id, ok := oid.ByName(name)
	if !ok {
		panic("extensions: unregistered OID name " + name)
	}
	registry[id.String()] = h
}

// Analyze runs the full extension-set analysis against cert (spec §4.3).
func Analyze(cert *model.Certificate) Analysis {
	var a Analysis
	a.SubjectEmpty = cert.Subject.IsEmpty()
	seen := map[string]int{}

	for _, ext := range cert.Extensions {
		key := ext.OID.String()
		seen[key]++
		if seen[key] > 1 {
			a.Judgements = a.Judgements.Extend(judgement.New(judgement.ExtensionDuplicate,
				"extension OID "+key+" appears more than once",
				judgement.VerdictNone, judgement.HighlyUnusual, judgement.StandardsDeviation))
		}

		h, ok := registry[key]
		if !ok {
			if ext.Critical {
				a.Judgements = a.Judgements.Extend(judgement.New(judgement.ExtensionUnknownCritical,
					"unrecognized extension "+key+" is marked critical; RFC 5280 §4.2 requires rejecting certificates with unrecognized critical extensions",
					judgement.VerdictWeakSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation))
			}
			continue
		}
		h(ext, &a)
	}

	if !a.BasicConstraintsSeen {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.BasicConstraintsMissing,
			"BasicConstraints extension is absent",
			judgement.VerdictNone, judgement.Common, judgement.FullyCompliant))
	}
	if a.IsCA && (!a.KeyUsageSeen || !a.KeyUsage.KeyCertSign) {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.KeyUsageMissingInCA,
			"certificate is a CA (BasicConstraints cA=true) but KeyUsage does not assert keyCertSign",
			judgement.VerdictWeakSecurity, judgement.Unusual, judgement.StandardsDeviation))
	}
	if a.KeyUsageSeen && a.KeyUsage.KeyCertSign && a.BasicConstraintsSeen && !a.IsCA {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.KeyUsageKeyCertSignWithoutCA,
			"KeyUsage asserts keyCertSign but BasicConstraints cA is false",
			judgement.VerdictWeakSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation))
	}
	if a.PathLenConstraint != nil && a.IsCA && (!a.KeyUsageSeen || !a.KeyUsage.KeyCertSign) {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.BasicConstraintsPathLenWithoutKeyCertSign,
			"pathLenConstraint is present on a CA certificate whose KeyUsage does not assert keyCertSign",
			judgement.VerdictWeakSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation))
	}

	return a
}
