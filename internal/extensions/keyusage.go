package extensions

import (
	"encoding/asn1"

	"github.com/x509examine/x509examine/internal/judgement"
	"github.com/x509examine/x509examine/internal/model"
)

// KeyUsageBits is the nine named flags of RFC 5280 §4.2.1.3, in bit order.
type KeyUsageBits struct {
	DigitalSignature, NonRepudiation, KeyEncipherment, DataEncipherment,
	KeyAgreement, KeyCertSign, CRLSign, EncipherOnly, DecipherOnly bool
}

func init() {
	register("keyUsage", analyzeKeyUsage)
}

func analyzeKeyUsage(ext model.Extension, a *Analysis) {
	var bits asn1.BitString
	if _, err := asn1.Unmarshal(ext.Value, &bits); err != nil {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.ExtensionMalformed,
			"KeyUsage failed to decode: "+err.Error(),
			judgement.VerdictWeakSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation))
		return
	}
	a.KeyUsageSeen = true
	a.KeyUsage = KeyUsageBits{
		DigitalSignature: bits.At(0) != 0,
		NonRepudiation:   bits.At(1) != 0,
		KeyEncipherment:  bits.At(2) != 0,
		DataEncipherment: bits.At(3) != 0,
		KeyAgreement:     bits.At(4) != 0,
		KeyCertSign:      bits.At(5) != 0,
		CRLSign:          bits.At(6) != 0,
		EncipherOnly:     bits.At(7) != 0,
		DecipherOnly:     bits.At(8) != 0,
	}

	if bits.BitLength == 0 || !anyBitSet(a.KeyUsage) {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.KeyUsageEmpty,
			"KeyUsage bit string asserts no flags",
			judgement.VerdictWeakSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation))
	}

	if hasTrailingZeroBits(bits) {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.KeyUsageTrailingZeroBits,
			"KeyUsage BIT STRING carries trailing zero bits in its declared length",
			judgement.VerdictNone, judgement.HighlyUnusual, judgement.StandardsDeviation))
	}

	if !ext.Critical {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.KeyUsageNotCritical,
			"KeyUsage is present but not marked critical",
			judgement.VerdictWeakSecurity, judgement.Unusual, judgement.StandardsDeviation))
	}
}

func anyBitSet(k KeyUsageBits) bool {
	return k.DigitalSignature || k.NonRepudiation || k.KeyEncipherment || k.DataEncipherment ||
		k.KeyAgreement || k.KeyCertSign || k.CRLSign || k.EncipherOnly || k.DecipherOnly
}

// hasTrailingZeroBits reports whether the BIT STRING's declared length
// extends past its last set bit — a non-minimal encoding that could have
// truncated the trailing zero bits instead (spec §4.3: "trailing zero bits
// diagnosable").
func hasTrailingZeroBits(bits asn1.BitString) bool {
	if bits.BitLength == 0 {
		return false
	}
	return bits.At(bits.BitLength-1) == 0
}
