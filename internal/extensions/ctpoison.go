package extensions

import (
	"bytes"

	"github.com/x509examine/x509examine/internal/judgement"
	"github.com/x509examine/x509examine/internal/model"
)

var asn1Null = []byte{0x05, 0x00}

func init() {
	register("ctPrecertificatePoison", analyzeCTPoison)
}

func analyzeCTPoison(ext model.Extension, a *Analysis) {
	a.IsPrecertificate = true

	if !ext.Critical {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.CTPoisonNotCritical,
			"CT precertificate poison extension is not marked critical",
			judgement.VerdictWeakSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation).
			WithStandard(judgement.Standard{RFCNo: 6962, Sect: "3.1", Verb: judgement.MUST,
				Text: "the poison extension MUST be critical"}))
	}

	if !bytes.Equal(ext.Value, asn1Null) {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.CTPoisonPayloadNotNull,
			"CT precertificate poison extension value is not ASN.1 NULL",
			judgement.VerdictWeakSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation).
			WithStandard(judgement.Standard{RFCNo: 6962, Sect: "3.1", Verb: judgement.MUST,
				Text: "the extnValue MUST be an ASN.1 NULL"}))
	}

	a.Judgements = a.Judgements.Extend(judgement.New(judgement.CTPoisonPresent,
		"certificate carries a CT precertificate poison extension and is a precertificate, not a final certificate",
		judgement.VerdictNone, judgement.Common, judgement.FullyCompliant))
}
