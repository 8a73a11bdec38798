package extensions

import (
	"encoding/asn1"

	"github.com/x509examine/x509examine/internal/judgement"
	"github.com/x509examine/x509examine/internal/model"
)

type rawBasicConstraints struct {
	IsCA       bool `asn1:"optional,default:false"`
	MaxPathLen int  `asn1:"optional,default:-1"`
}

func init() {
	register("basicConstraints", analyzeBasicConstraints)
}

func analyzeBasicConstraints(ext model.Extension, a *Analysis) {
	a.BasicConstraintsSeen = true

	var bc rawBasicConstraints
	if _, err := asn1.Unmarshal(ext.Value, &bc); err != nil {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.ExtensionMalformed,
			"BasicConstraints failed to decode: "+err.Error(),
			judgement.VerdictWeakSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation))
		return
	}

	a.IsCA = bc.IsCA
	if !ext.Critical {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.BasicConstraintsNotCritical,
			"BasicConstraints is present but not marked critical",
			judgement.VerdictWeakSecurity, judgement.Unusual, judgement.StandardsDeviation))
	}

	if bc.MaxPathLen >= 0 {
		pl := bc.MaxPathLen
		a.PathLenConstraint = &pl
		if !bc.IsCA {
			a.Judgements = a.Judgements.Extend(judgement.New(judgement.BasicConstraintsPathLenWithoutCA,
				"pathLenConstraint is present but cA is false",
				judgement.VerdictWeakSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation))
		}
		// The "pathLenConstraint without keyCertSign" check needs KeyUsage,
		// which may be processed before or after BasicConstraints depending
		// on extension order; it runs in extensions.go's post-loop pass.
	}
}
