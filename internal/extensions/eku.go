package extensions

import (
	"encoding/asn1"

	"github.com/x509examine/x509examine/internal/judgement"
	"github.com/x509examine/x509examine/internal/model"
	"github.com/x509examine/x509examine/internal/oid"
)

func init() {
	register("extKeyUsage", analyzeEKU)
}

func analyzeEKU(ext model.Extension, a *Analysis) {
	var oids []asn1.ObjectIdentifier
	if _, err := asn1.Unmarshal(ext.Value, &oids); err != nil {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.ExtensionMalformed,
			"ExtendedKeyUsage failed to decode: "+err.Error(),
			judgement.VerdictWeakSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation))
		return
	}
	a.ExtKeyUsageSeen = true
	a.ExtKeyUsageOIDs = oids

	if len(oids) == 0 {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.ExtendedKeyUsageEmpty,
			"ExtendedKeyUsage carries no key-purpose OIDs",
			judgement.VerdictWeakSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation))
	}

	seen := map[string]bool{}
	anyEKU, _ := oid.ByName("anyExtendedKeyUsage")
	for _, id := range oids {
		key := id.String()
		if seen[key] {
			a.Judgements = a.Judgements.Extend(judgement.New(judgement.ExtendedKeyUsageDuplicateOID,
				"ExtendedKeyUsage lists OID "+key+" more than once",
				judgement.VerdictNone, judgement.HighlyUnusual, judgement.StandardsDeviation))
		}
		seen[key] = true
		if id.Equal(anyEKU) {
			a.ExtKeyUsageHasAny = true
		}
	}

	if a.ExtKeyUsageHasAny && ext.Critical {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.ExtendedKeyUsageAnyEKUCritical,
			"ExtendedKeyUsage includes anyExtendedKeyUsage while the extension is marked critical",
			judgement.VerdictNone, judgement.HighlyUnusual, judgement.StandardsDeviation))
	}
}
