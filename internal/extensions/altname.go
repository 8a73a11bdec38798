package extensions

import (
	"github.com/x509examine/x509examine/internal/judgement"
	"github.com/x509examine/x509examine/internal/model"
)

func init() {
	register("subjectAltName", analyzeSAN)
	register("issuerAltName", analyzeIAN)
}

func analyzeSAN(ext model.Extension, a *Analysis) {
	names, err := model.DecodeGeneralNames(ext.Value)
	if err != nil {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.ExtensionMalformed,
			"SubjectAltName failed to decode: "+err.Error(),
			judgement.VerdictWeakSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation))
		return
	}
	a.SANSeen = true
	a.SANEntries = names

	if len(names) == 0 {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.SubjectAltNameEmpty,
			"SubjectAltName carries no GeneralName entries",
			judgement.VerdictWeakSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation))
	}

	if a.SubjectEmpty && !ext.Critical {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.SubjectAltNameNotCriticalEmptySubject,
			"subject DN is empty but SubjectAltName is not marked critical",
			judgement.VerdictWeakSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation))
	}

	if !a.SubjectEmpty && isEmailOnly(names) {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.SubjectAltNameEmailOnlyNonEmptySubject,
			"SubjectAltName contains only rfc822Name entries while the subject DN is non-empty",
			judgement.VerdictNone, judgement.Unusual, judgement.StandardsDeviation))
	}

	for _, gn := range names {
		a.Judgements = a.Judgements.Extend(validateGeneralName(gn)...)
	}
}

func analyzeIAN(ext model.Extension, a *Analysis) {
	names, err := model.DecodeGeneralNames(ext.Value)
	if err != nil {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.ExtensionMalformed,
			"IssuerAltName failed to decode: "+err.Error(),
			judgement.VerdictWeakSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation))
		return
	}
	a.IANEntries = names
	for _, gn := range names {
		a.Judgements = a.Judgements.Extend(validateGeneralName(gn)...)
	}
}

func isEmailOnly(names []model.GeneralName) bool {
	if len(names) == 0 {
		return false
	}
	for _, gn := range names {
		if gn.Kind != model.GeneralNameRFC822 {
			return false
		}
	}
	return true
}
