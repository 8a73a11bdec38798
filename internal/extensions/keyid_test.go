package extensions

import (
	"crypto/sha1" //nolint:gosec // building a matching test fixture, not a security use
	"encoding/asn1"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/x509examine/x509examine/internal/judgement"
	"github.com/x509examine/x509examine/internal/model"
)

func marshalSKI(t *testing.T, keyID []byte) []byte {
	t.Helper()
	der, err := asn1.Marshal(keyID)
	require.NoError(t, err)
	return der
}

func TestAnalyzeSKI_BadLength(t *testing.T) {
	var a Analysis
	analyzeSKI(model.Extension{Value: marshalSKI(t, []byte{})}, &a)
	assert.True(t, a.Judgements.HasCode(judgement.SubjectKeyIdentifierBadLength))
}

func TestAnalyzeSKI_Malformed(t *testing.T) {
	var a Analysis
	analyzeSKI(model.Extension{Value: []byte{0xff}}, &a)
	assert.True(t, a.Judgements.HasCode(judgement.ExtensionMalformed))
}

func TestClassifySubjectKeyIdentifier(t *testing.T) {
	keyBits := []byte("a fake subject public key bit string")
	sum := sha1.Sum(keyBits) //nolint:gosec

	js := ClassifySubjectKeyIdentifier(sum[:], keyBits)
	assert.Empty(t, js)

	js = ClassifySubjectKeyIdentifier([]byte{0x01, 0x02, 0x03, 0x04}, keyBits)
	assert.True(t, js.HasCode(judgement.SubjectKeyIdentifierArbitrary))
}

type rawAKIFixture struct {
	KeyIdentifier       []byte            `asn1:"optional,tag:0"`
	AuthorityCertIssuer []asn1.RawValue   `asn1:"optional,tag:1"`
	AuthorityCertSerial *big.Int          `asn1:"optional,tag:2"`
}

func marshalAKI(t *testing.T, f rawAKIFixture) []byte {
	t.Helper()
	der, err := asn1.Marshal(f)
	require.NoError(t, err)
	return der
}

func TestAnalyzeAKI_Critical(t *testing.T) {
	var a Analysis
	analyzeAKI(model.Extension{Critical: true, Value: marshalAKI(t, rawAKIFixture{KeyIdentifier: []byte{0x01, 0x02}})}, &a)
	assert.True(t, a.Judgements.HasCode(judgement.AuthorityKeyIdentifierCritical))
}

func TestAnalyzeAKI_SerialWithoutName(t *testing.T) {
	var a Analysis
	analyzeAKI(model.Extension{Value: marshalAKI(t, rawAKIFixture{AuthorityCertSerial: big.NewInt(7)})}, &a)
	assert.True(t, a.Judgements.HasCode(judgement.AuthorityKeyIdentifierSerialNoName))
	require.NotNil(t, a.AuthorityKeyID.AuthorityCertSerial)
	assert.Equal(t, int64(7), a.AuthorityKeyID.AuthorityCertSerial.Int64())
}
