package extensions

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/x509examine/x509examine/internal/judgement"
	"github.com/x509examine/x509examine/internal/model"
)

func TestAnalyzeCTPoison_NotCritical(t *testing.T) {
	var a Analysis
	analyzeCTPoison(model.Extension{Critical: false, Value: asn1Null}, &a)
	assert.True(t, a.Judgements.HasCode(judgement.CTPoisonNotCritical))
	assert.True(t, a.IsPrecertificate)
}

func TestAnalyzeCTPoison_PayloadNotNull(t *testing.T) {
	var a Analysis
	analyzeCTPoison(model.Extension{Critical: true, Value: []byte{0x04, 0x01, 0x00}}, &a)
	assert.True(t, a.Judgements.HasCode(judgement.CTPoisonPayloadNotNull))
}

func TestAnalyzeCTPoison_WellFormed(t *testing.T) {
	var a Analysis
	analyzeCTPoison(model.Extension{Critical: true, Value: asn1Null}, &a)
	assert.False(t, a.Judgements.HasCode(judgement.CTPoisonNotCritical))
	assert.False(t, a.Judgements.HasCode(judgement.CTPoisonPayloadNotNull))
	assert.True(t, a.Judgements.HasCode(judgement.CTPoisonPresent))
}
