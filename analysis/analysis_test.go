package analysis

import (
	"encoding/asn1"
	"encoding/pem"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/x509examine/x509examine/internal/der"
	"github.com/x509examine/x509examine/internal/judgement"
	"github.com/x509examine/x509examine/internal/model"
	"github.com/x509examine/x509examine/internal/oid"
)

// The following mirror RFC 5280's Certificate grammar closely enough to
// build a minimal, self-consistent DER certificate for end-to-end testing
// without depending on internal/model's unexported raw types.

type testAlgorithmIdentifier struct {
	Algorithm  asn1.ObjectIdentifier
	Parameters asn1.RawValue `asn1:"optional"`
}

type testAttributeTypeAndValue struct {
	Type  asn1.ObjectIdentifier
	Value string
}

type testName struct {
	RDNSequence []testRDNSET
}

// testRDNSET's "SET" suffix makes encoding/asn1 encode it with a SET tag
// rather than SEQUENCE, matching internal/model's decodeDN expectation.
type testRDNSET []testAttributeTypeAndValue

type testValidity struct {
	NotBefore time.Time
	NotAfter  time.Time
}

type testSubjectPublicKeyInfo struct {
	Algorithm testAlgorithmIdentifier
	PublicKey asn1.BitString
}

type testTBSCertificate struct {
	Version      int `asn1:"explicit,tag:0,default:0"`
	SerialNumber *big.Int
	Signature    testAlgorithmIdentifier
	Issuer       testName
	Validity     testValidity
	Subject      testName
	PublicKey    testSubjectPublicKeyInfo
}

type testCertificate struct {
	TBSCertificate     testTBSCertificate
	SignatureAlgorithm testAlgorithmIdentifier
	SignatureValue     asn1.BitString
}

var oidCommonName = asn1.ObjectIdentifier{2, 5, 4, 3}
var oidSHA256WithRSA = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 11}
var oidRSAEncryption = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 1}

func nameWithCN(cn string) testName {
	return testName{RDNSequence: []testRDNSET{{{Type: oidCommonName, Value: cn}}}}
}

func buildMinimalCertDER(t *testing.T) []byte {
	t.Helper()
	cert := testCertificate{
		TBSCertificate: testTBSCertificate{
			Version:      2,
			SerialNumber: big.NewInt(12345),
			Signature:    testAlgorithmIdentifier{Algorithm: oidSHA256WithRSA, Parameters: asn1.RawValue{FullBytes: []byte{0x05, 0x00}}},
			Issuer:       nameWithCN("Test Root CA"),
			Validity: testValidity{
				NotBefore: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
				NotAfter:  time.Date(2040, 1, 1, 0, 0, 0, 0, time.UTC),
			},
			Subject: nameWithCN("Test Leaf"),
			PublicKey: testSubjectPublicKeyInfo{
				Algorithm: testAlgorithmIdentifier{Algorithm: oidRSAEncryption, Parameters: asn1.RawValue{FullBytes: []byte{0x05, 0x00}}},
				PublicKey: asn1.BitString{Bytes: []byte{0x00, 0x01, 0x02, 0x03}, BitLength: 32},
			},
		},
		SignatureAlgorithm: testAlgorithmIdentifier{Algorithm: oidSHA256WithRSA, Parameters: asn1.RawValue{FullBytes: []byte{0x05, 0x00}}},
		SignatureValue:     asn1.BitString{Bytes: []byte{0xde, 0xad, 0xbe, 0xef}, BitLength: 32},
	}
	out, err := asn1.Marshal(cert)
	require.NoError(t, err)
	return out
}

func TestEngineAnalyze_MinimalCertificate(t *testing.T) {
	engine := New(Config{})
	reports, err := engine.Analyze(buildMinimalCertDER(t))
	require.NoError(t, err)
	require.Len(t, reports, 1)

	r := reports[0]
	require.NotNil(t, r.Certificate)
	assert.Equal(t, "Test Leaf", mustCN(t, r))
	assert.Equal(t, 0, r.SourceIndex)
}

func mustCN(t *testing.T, r Report) string {
	t.Helper()
	cn, ok := r.Certificate.Subject.CommonName()
	require.True(t, ok)
	return cn
}

func TestEngineAnalyze_PEMInput(t *testing.T) {
	block := &pem.Block{Type: "CERTIFICATE", Bytes: buildMinimalCertDER(t)}
	pemBytes := pem.EncodeToMemory(block)

	engine := New(Config{})
	reports, err := engine.Analyze(pemBytes)
	require.NoError(t, err)
	require.Len(t, reports, 1)
}

func TestEngineAnalyze_NotACertificate(t *testing.T) {
	engine := New(Config{})
	_, err := engine.Analyze([]byte("not a certificate at all"))
	assert.ErrorIs(t, err, der.ErrNotACertificate)
}

func TestCanonicityJudgements(t *testing.T) {
	js := canonicityJudgements([]der.Issue{{Kind: "trailing_data", Path: "top"}})
	assert.True(t, js.HasCode(judgement.CertTrailingData))
}

// minimal rawPSSParameters/ecdsaSignatureValue mirrors, local to the test
// so it can build fixtures without reaching into internal/pubkey's
// unexported decode types.
type testPSSParameters struct {
	SaltLength   int `asn1:"optional,explicit,tag:2,default:20"`
	TrailerField int `asn1:"optional,explicit,tag:3,default:1"`
}

type testECDSASignatureValue struct {
	R, S *big.Int
}

func TestSignatureAlgorithmJudgements_RSAPSSDispatch(t *testing.T) {
	params, err := asn1.Marshal(testPSSParameters{SaltLength: 0})
	require.NoError(t, err)

	cert := &model.Certificate{
		SignatureAlgorithmOID:    oid.MustByName("rsassaPss"),
		SignatureAlgorithmParams: asn1.RawValue{FullBytes: params},
	}
	js := signatureAlgorithmJudgements(cert)
	assert.True(t, js.HasCode(judgement.PublicKeyRSAPSSNoSaltUsed))
}

func TestSignatureAlgorithmJudgements_ECDSADispatch(t *testing.T) {
	sigDER, err := asn1.Marshal(testECDSASignatureValue{R: big.NewInt(123), S: big.NewInt(456)})
	require.NoError(t, err)

	cert := &model.Certificate{
		SignatureAlgorithmOID: oid.MustByName("ecdsaWithSha256"),
		SignatureValue:        asn1.BitString{Bytes: sigDER, BitLength: len(sigDER) * 8},
	}
	js := signatureAlgorithmJudgements(cert)
	assert.False(t, js.HasCode(judgement.SignatureECDSAMalformedUndecodable))
}

func TestSignatureAlgorithmJudgements_UnrelatedAlgorithmNoDispatch(t *testing.T) {
	cert := &model.Certificate{SignatureAlgorithmOID: oid.MustByName("sha256WithRSAEncryption")}
	js := signatureAlgorithmJudgements(cert)
	assert.Empty(t, js)
}

func TestAttachCARelation_AppendsSecurity(t *testing.T) {
	engine := New(Config{})
	issuerDER := buildMinimalCertDER(t)

	leafReports, err := engine.Analyze(buildMinimalCertDER(t))
	require.NoError(t, err)
	issuerReports, err := engine.Analyze(issuerDER)
	require.NoError(t, err)

	before := len(leafReports[0].Security)
	engine.AttachCARelation(&leafReports[0], &issuerReports[0])
	assert.Greater(t, len(leafReports[0].Security), before)
	require.NotNil(t, leafReports[0].CARelation)
}
