package extensions

import (
	"encoding/asn1"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/x509examine/x509examine/internal/judgement"
	"github.com/x509examine/x509examine/internal/model"
	"github.com/x509examine/x509examine/internal/oid"
)

func marshalBitString(t *testing.T, bs asn1.BitString) []byte {
	t.Helper()
	out, err := asn1.Marshal(bs)
	require.NoError(t, err)
	return out
}

func marshalBasicConstraints(t *testing.T, bc rawBasicConstraints) []byte {
	t.Helper()
	out, err := asn1.Marshal(bc)
	require.NoError(t, err)
	return out
}

// keyCertSign (bit 5) set, nothing else.
func keyUsageKeyCertSign(t *testing.T) []byte {
	return marshalBitString(t, asn1.BitString{Bytes: []byte{0x04}, BitLength: 6})
}

func keyUsageOID(t *testing.T) asn1.ObjectIdentifier {
	t.Helper()
	id, ok := oid.ByName("keyUsage")
	require.True(t, ok)
	return id
}

func basicConstraintsOID(t *testing.T) asn1.ObjectIdentifier {
	t.Helper()
	id, ok := oid.ByName("basicConstraints")
	require.True(t, ok)
	return id
}

// KeyUsageKeyCertSignWithoutCA must fire regardless of whether
// BasicConstraints or KeyUsage appears first in the extension SEQUENCE
// (RFC 5280 does not mandate any particular extension order).
func TestAnalyze_KeyCertSignWithoutCA_OrderIndependent(t *testing.T) {
	cert := &model.Certificate{}

	cert.Extensions = []model.Extension{
		{OID: keyUsageOID(t), Critical: true, Value: keyUsageKeyCertSign(t)},
		{OID: basicConstraintsOID(t), Critical: true, Value: marshalBasicConstraints(t, rawBasicConstraints{MaxPathLen: -1})},
	}
	a := Analyze(cert)
	assert.True(t, a.Judgements.HasCode(judgement.KeyUsageKeyCertSignWithoutCA),
		"KeyUsage before BasicConstraints")

	cert.Extensions = []model.Extension{
		{OID: basicConstraintsOID(t), Critical: true, Value: marshalBasicConstraints(t, rawBasicConstraints{MaxPathLen: -1})},
		{OID: keyUsageOID(t), Critical: true, Value: keyUsageKeyCertSign(t)},
	}
	a = Analyze(cert)
	assert.True(t, a.Judgements.HasCode(judgement.KeyUsageKeyCertSignWithoutCA),
		"BasicConstraints before KeyUsage")
}

func TestAnalyze_KeyCertSignWithCA_NoFinding(t *testing.T) {
	cert := &model.Certificate{}
	cert.Extensions = []model.Extension{
		{OID: keyUsageOID(t), Critical: true, Value: keyUsageKeyCertSign(t)},
		{OID: basicConstraintsOID(t), Critical: true, Value: marshalBasicConstraints(t, rawBasicConstraints{IsCA: true, MaxPathLen: -1})},
	}
	a := Analyze(cert)
	assert.False(t, a.Judgements.HasCode(judgement.KeyUsageKeyCertSignWithoutCA))
}
