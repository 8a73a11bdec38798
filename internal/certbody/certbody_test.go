package certbody

import (
	"encoding/asn1"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/x509examine/x509examine/internal/judgement"
	"github.com/x509examine/x509examine/internal/model"
)

var oidCountryName = asn1.ObjectIdentifier{2, 5, 4, 6}

func baseCert() *model.Certificate {
	return &model.Certificate{
		Version:                 3,
		Serial:                  big.NewInt(1),
		InnerSignatureAlgorithm: []byte{0x30, 0x03, 0x06, 0x01, 0x01},
		OuterSignatureAlgorithm: []byte{0x30, 0x03, 0x06, 0x01, 0x01},
		Validity: model.Validity{
			NotBefore: model.Timestamp{Time: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
			NotAfter:  model.Timestamp{Time: time.Date(2040, 1, 1, 0, 0, 0, 0, time.UTC)},
		},
	}
}

func TestAnalyzeSerial(t *testing.T) {
	cert := baseCert()
	cert.Serial = big.NewInt(0)
	js := Analyze(cert, Config{})
	assert.True(t, js.HasCode(judgement.CertSerialZero))

	cert.Serial = big.NewInt(-5)
	js = Analyze(cert, Config{})
	assert.True(t, js.HasCode(judgement.CertSerialNegative))
}

func TestAnalyzeSignatureAlgorithmMismatch(t *testing.T) {
	cert := baseCert()
	cert.OuterSignatureAlgorithm = []byte{0x30, 0x03, 0x06, 0x01, 0x02}
	js := Analyze(cert, Config{})
	assert.True(t, js.HasCode(judgement.CertSignatureAlgorithmMismatch))
}

func TestAnalyzeValidity_NotYetValidAndExpired(t *testing.T) {
	cert := baseCert()
	cert.Validity = model.Validity{
		NotBefore: model.Timestamp{Time: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)},
		NotAfter:  model.Timestamp{Time: time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	js := Analyze(cert, Config{Now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)})
	assert.True(t, js.HasCode(judgement.CertValidityNotYetValid))

	cert.Validity = model.Validity{
		NotBefore: model.Timestamp{Time: time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)},
		NotAfter:  model.Timestamp{Time: time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	js = Analyze(cert, Config{Now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)})
	assert.True(t, js.HasCode(judgement.CertValidityExpired))
}

func TestAnalyzeUniqueIDs_ForbiddenInV1(t *testing.T) {
	cert := baseCert()
	cert.Version = 1
	cert.SubjectUniqueID = model.UniqueID{Present: true}
	js := Analyze(cert, Config{})
	assert.True(t, js.HasCode(judgement.CertUniqueIDForbiddenInV1))
}

func TestAnalyzeUniqueIDs_ForbiddenInV3CA(t *testing.T) {
	cert := baseCert()
	cert.Version = 3
	cert.IssuerUniqueID = model.UniqueID{Present: true}
	js := Analyze(cert, Config{IsCA: true})
	assert.True(t, js.HasCode(judgement.CertUniqueIDForbiddenInV3CA))
}

func TestAnalyzeDN_CountryNotPrintableString(t *testing.T) {
	cert := baseCert()
	cert.Subject = model.DistinguishedName{
		RDNs: []model.RDN{{{Type: oidCountryName, StringType: "UTF8String", Value: "US"}}},
	}
	js := Analyze(cert, Config{})
	assert.True(t, js.HasCode(judgement.CertDNCountryNotPrintableStr))
}
