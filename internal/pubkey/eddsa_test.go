package pubkey

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/x509examine/x509examine/internal/judgement"
	"github.com/x509examine/x509examine/internal/model"
)

func TestAnalyzeEdDSA_BadLength(t *testing.T) {
	key := model.EdDSAPublicKey{CurveName: "ed25519", EncodedKey: []byte{0x01, 0x02}}
	js := AnalyzeEdDSA(key)
	assert.True(t, js.HasCode(judgement.PublicKeyEdDSABadEncodedLength))
}

func TestAnalyzeEdDSA_LowOrderPoint(t *testing.T) {
	// the all-zero point is one of curve25519's canonical small-order points.
	key := model.EdDSAPublicKey{CurveName: "ed25519", EncodedKey: make([]byte, 32)}
	js := AnalyzeEdDSA(key)
	assert.True(t, js.HasCode(judgement.PublicKeyEdDSALowOrderPoint))
}

func TestAnalyzeEdDSA_WellFormed(t *testing.T) {
	key := model.EdDSAPublicKey{CurveName: "ed25519", EncodedKey: []byte{
		0x3b, 0x6a, 0x27, 0xbc, 0xce, 0xb6, 0xa4, 0x2d,
		0x62, 0xa3, 0xa8, 0xd0, 0x2a, 0x6f, 0x0d, 0x73,
		0x65, 0x32, 0x15, 0x77, 0x1d, 0xe2, 0x43, 0xa6,
		0x3a, 0xc0, 0x48, 0xa1, 0x8b, 0x59, 0xda, 0x29,
	}}
	js := AnalyzeEdDSA(key)
	assert.False(t, js.HasCode(judgement.PublicKeyEdDSABadEncodedLength))
	assert.False(t, js.HasCode(judgement.PublicKeyEdDSALowOrderPoint))
}
