package carelation

import (
	"encoding/asn1"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/x509examine/x509examine/internal/extensions"
	"github.com/x509examine/x509examine/internal/judgement"
	"github.com/x509examine/x509examine/internal/model"
)

var oidCommonName = asn1.ObjectIdentifier{2, 5, 4, 3}

func dnWithCN(cn string) model.DistinguishedName {
	return model.DistinguishedName{RDNs: []model.RDN{{{Type: oidCommonName, StringType: "PrintableString", Value: cn}}}}
}

func baseSubject() *model.Certificate {
	return &model.Certificate{
		Serial: big.NewInt(2),
		Issuer: dnWithCN("Intermediate CA"),
		Validity: model.Validity{
			NotBefore: model.Timestamp{Time: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)},
			NotAfter:  model.Timestamp{Time: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
		},
	}
}

func baseIssuer() *model.Certificate {
	return &model.Certificate{
		Serial:  big.NewInt(1),
		Subject: dnWithCN("Intermediate CA"),
		Validity: model.Validity{
			NotBefore: model.Timestamp{Time: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
		},
	}
}

func TestAnalyze_SubjectIssuerDNMatch(t *testing.T) {
	subject, issuer := baseSubject(), baseIssuer()
	issuer.Validity.NotAfter = model.Timestamp{Time: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}
	res := Analyze(subject, issuer, extensions.Analysis{}, extensions.Analysis{IsCA: true}, Config{})
	assert.True(t, res.SubjectIssuerDNMatch)
	assert.True(t, res.IssuerIsCA)
	assert.Equal(t, OverlapFull, res.ValidityOverlap)
}

func TestAnalyze_DNMismatch(t *testing.T) {
	subject, issuer := baseSubject(), baseIssuer()
	issuer.Subject = dnWithCN("A Different CA")
	issuer.Validity.NotAfter = model.Timestamp{Time: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}
	res := Analyze(subject, issuer, extensions.Analysis{}, extensions.Analysis{IsCA: true}, Config{})
	assert.False(t, res.SubjectIssuerDNMatch)
}

func TestAnalyze_IssuerNotCA(t *testing.T) {
	subject, issuer := baseSubject(), baseIssuer()
	issuer.Validity.NotAfter = model.Timestamp{Time: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}
	res := Analyze(subject, issuer, extensions.Analysis{}, extensions.Analysis{IsCA: false}, Config{})
	assert.False(t, res.IssuerIsCA)
}

func TestAnalyze_ValidityNoOverlap(t *testing.T) {
	subject, issuer := baseSubject(), baseIssuer()
	issuer.Validity.NotAfter = model.Timestamp{Time: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)}
	res := Analyze(subject, issuer, extensions.Analysis{}, extensions.Analysis{IsCA: true}, Config{})
	assert.Equal(t, OverlapNone, res.ValidityOverlap)
}

func TestAnalyze_ValidityMalformed(t *testing.T) {
	subject, issuer := baseSubject(), baseIssuer()
	issuer.Validity.NotAfter = model.Timestamp{Malformed: true}
	res := Analyze(subject, issuer, extensions.Analysis{}, extensions.Analysis{IsCA: true}, Config{})
	assert.Equal(t, OverlapTimestampMalformed, res.ValidityOverlap)
}

type stubVerifier struct {
	ok  bool
	err error
}

func (s stubVerifier) Verify(tbs, signature []byte, pub model.PublicKey, sigAlgOID asn1.ObjectIdentifier, sigAlgParams asn1.RawValue) (bool, error) {
	return s.ok, s.err
}

func TestAnalyze_SignatureValid(t *testing.T) {
	subject, issuer := baseSubject(), baseIssuer()
	issuer.Validity.NotAfter = model.Timestamp{Time: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}
	res := Analyze(subject, issuer, extensions.Analysis{}, extensions.Analysis{IsCA: true}, Config{Verifier: stubVerifier{ok: true}})
	assert.True(t, res.SignatureValid)
}

func TestAnalyze_SignatureInvalid(t *testing.T) {
	subject, issuer := baseSubject(), baseIssuer()
	issuer.Validity.NotAfter = model.Timestamp{Time: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}
	res := Analyze(subject, issuer, extensions.Analysis{}, extensions.Analysis{IsCA: true}, Config{Verifier: stubVerifier{ok: false}})
	assert.False(t, res.SignatureValid)
}

func TestAnalyze_AKIKeyIDMatch(t *testing.T) {
	subject, issuer := baseSubject(), baseIssuer()
	issuer.Validity.NotAfter = model.Timestamp{Time: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}
	subjectExt := extensions.Analysis{AuthorityKeyID: extensions.AuthorityKeyIDInfo{Present: true, KeyIdentifier: []byte{0x01, 0x02}}}
	issuerExt := extensions.Analysis{IsCA: true, SubjectKeyID: []byte{0x01, 0x02}}
	res := Analyze(subject, issuer, subjectExt, issuerExt, Config{})
	assert.True(t, res.Judgements.HasCode(judgement.CARelationshipAKIKeyIDMatch))
}

func TestAnalyze_AKISerialMatch(t *testing.T) {
	subject, issuer := baseSubject(), baseIssuer()
	issuer.Validity.NotAfter = model.Timestamp{Time: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}
	subjectExt := extensions.Analysis{AuthorityKeyID: extensions.AuthorityKeyIDInfo{Present: true, AuthorityCertSerial: big.NewInt(1)}}
	issuerExt := extensions.Analysis{IsCA: true}
	res := Analyze(subject, issuer, subjectExt, issuerExt, Config{})
	assert.True(t, res.Judgements.HasCode(judgement.CARelationshipAKISerialMatch))
}
