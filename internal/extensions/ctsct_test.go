package extensions

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/x509examine/x509examine/internal/judgement"
	"github.com/x509examine/x509examine/internal/model"
)

func buildSCT(version byte, timestampMillis uint64, hashAlg, sigAlg byte) []byte {
	var sct []byte
	sct = append(sct, version)
	sct = append(sct, make([]byte, 32)...) // log_id
	ts := make([]byte, 8)
	binary.BigEndian.PutUint64(ts, timestampMillis)
	sct = append(sct, ts...)
	sct = append(sct, 0x00, 0x00) // zero-length extensions
	sct = append(sct, hashAlg, sigAlg)
	sct = append(sct, 0x00, 0x00) // zero-length signature
	return sct
}

func buildSCTList(scts ...[]byte) []byte {
	var body []byte
	for _, s := range scts {
		prefix := make([]byte, 2)
		binary.BigEndian.PutUint16(prefix, uint16(len(s)))
		body = append(body, prefix...)
		body = append(body, s...)
	}
	listLen := make([]byte, 2)
	binary.BigEndian.PutUint16(listLen, uint16(len(body)))
	return append(listLen, body...)
}

func TestAnalyzeCTSCTList_WellFormed(t *testing.T) {
	var a Analysis
	sct := buildSCT(0, ctMinPlausibleEpochMillis+1000, 4, 3) // sha256, ecdsa
	analyzeCTSCTList(model.Extension{Value: buildSCTList(sct)}, &a)
	assert.False(t, a.Judgements.HasCode(judgement.CTSCTsMalformed))
	assert.False(t, a.Judgements.HasCode(judgement.CTSCTInvalidVersion))
	assert.False(t, a.Judgements.HasCode(judgement.CTSCTInvalidHashFunction))
	assert.False(t, a.Judgements.HasCode(judgement.CTSCTInvalidSignatureAlgorithm))
	assert.False(t, a.Judgements.HasCode(judgement.CTSCTImplausibleTimestamp))
}

func TestAnalyzeCTSCTList_InvalidVersionAndTimestamp(t *testing.T) {
	var a Analysis
	sct := buildSCT(1, 0, 4, 3)
	analyzeCTSCTList(model.Extension{Value: buildSCTList(sct)}, &a)
	assert.True(t, a.Judgements.HasCode(judgement.CTSCTInvalidVersion))
	assert.True(t, a.Judgements.HasCode(judgement.CTSCTImplausibleTimestamp))
}

func TestAnalyzeCTSCTList_MalformedLength(t *testing.T) {
	var a Analysis
	analyzeCTSCTList(model.Extension{Value: []byte{0x00, 0x05, 0x01, 0x02}}, &a)
	assert.True(t, a.Judgements.HasCode(judgement.CTSCTsMalformed))
}

func TestAnalyzeCTSCTList_UnknownAlgorithms(t *testing.T) {
	var a Analysis
	sct := buildSCT(0, ctMinPlausibleEpochMillis+1000, 99, 99)
	analyzeCTSCTList(model.Extension{Value: buildSCTList(sct)}, &a)
	assert.True(t, a.Judgements.HasCode(judgement.CTSCTInvalidHashFunction))
	assert.True(t, a.Judgements.HasCode(judgement.CTSCTInvalidSignatureAlgorithm))
}

func TestAnalyzeCTSCTList_SHA384HashRejected(t *testing.T) {
	var a Analysis
	sct := buildSCT(0, ctMinPlausibleEpochMillis+1000, 5, 3) // sha384, ecdsa
	analyzeCTSCTList(model.Extension{Value: buildSCTList(sct)}, &a)
	assert.True(t, a.Judgements.HasCode(judgement.CTSCTInvalidHashFunction))
}

func TestAnalyzeCTSCTList_FutureTimestampRejected(t *testing.T) {
	var a Analysis
	sct := buildSCT(0, ctMaxPlausibleEpochMillis+1000, 4, 3)
	analyzeCTSCTList(model.Extension{Value: buildSCTList(sct)}, &a)
	assert.True(t, a.Judgements.HasCode(judgement.CTSCTImplausibleTimestamp))
}
