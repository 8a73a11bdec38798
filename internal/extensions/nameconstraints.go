package extensions

import (
	"encoding/asn1"

	"github.com/x509examine/x509examine/internal/judgement"
	"github.com/x509examine/x509examine/internal/model"
)

type rawGeneralSubtree struct {
	Base asn1.RawValue
}

type rawNameConstraints struct {
	PermittedSubtrees []rawGeneralSubtree `asn1:"optional,tag:0"`
	ExcludedSubtrees  []rawGeneralSubtree `asn1:"optional,tag:1"`
}

func init() {
	register("nameConstraints", analyzeNameConstraints)
}

func analyzeNameConstraints(ext model.Extension, a *Analysis) {
	if !ext.Critical {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.NameConstraintsNotCritical,
			"NameConstraints is not marked critical",
			judgement.VerdictWeakSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation).
			WithStandard(judgement.Standard{RFCNo: 5280, Sect: "4.2.1.10", Verb: judgement.MUST,
				Text: "conforming CAs MUST mark this extension as critical"}))
	}

	if !a.IsCA {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.NameConstraintsInNonCACertificate,
			"NameConstraints appears on a certificate that is not a CA",
			judgement.VerdictWeakSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation).
			WithStandard(judgement.Standard{RFCNo: 5280, Sect: "4.2.1.10", Verb: judgement.MUST,
				Text: "this extension MUST be used only in a CA certificate"}))
	}

	var raw rawNameConstraints
	if _, err := asn1.Unmarshal(ext.Value, &raw); err != nil {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.ExtensionMalformed,
			"NameConstraints failed to decode: "+err.Error(),
			judgement.VerdictWeakSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation))
		return
	}

	for _, st := range raw.PermittedSubtrees {
		validateSubtreeBase(st.Base, a)
	}
	for _, st := range raw.ExcludedSubtrees {
		validateSubtreeBase(st.Base, a)
	}
}

func validateSubtreeBase(base asn1.RawValue, a *Analysis) {
	gn := decodeOneSubtreeGeneralName(base)
	if gn.Malformed != "" {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.ExtensionMalformed,
			"NameConstraints subtree base: "+gn.Malformed,
			judgement.VerdictNone, judgement.HighlyUnusual, judgement.StandardsDeviation))
		return
	}
	a.Judgements = a.Judgements.Extend(validateGeneralName(gn)...)
}

// decodeOneSubtreeGeneralName reuses model.DecodeGeneralNames by wrapping
// the single RawValue back into a GeneralNames SEQUENCE, since the
// exported decoder operates on the sequence form rather than one element.
func decodeOneSubtreeGeneralName(base asn1.RawValue) model.GeneralName {
	wrapped, err := asn1.Marshal([]asn1.RawValue{base})
	if err != nil {
		return model.GeneralName{Malformed: "failed to re-wrap subtree base: " + err.Error()}
	}
	names, err := model.DecodeGeneralNames(wrapped)
	if err != nil || len(names) != 1 {
		return model.GeneralName{Malformed: "subtree base is not a well-formed GeneralName"}
	}
	return names[0]
}
