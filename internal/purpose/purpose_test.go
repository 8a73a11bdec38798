package purpose

import (
	"encoding/asn1"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/x509examine/x509examine/internal/extensions"
	"github.com/x509examine/x509examine/internal/judgement"
	"github.com/x509examine/x509examine/internal/model"
	"github.com/x509examine/x509examine/internal/oid"
)

var oidCommonName = asn1.ObjectIdentifier{2, 5, 4, 3}

func certWithCN(cn string) *model.Certificate {
	return &model.Certificate{
		Subject: model.DistinguishedName{RDNs: []model.RDN{{{Type: oidCommonName, StringType: "PrintableString", Value: cn}}}},
		PublicKey: model.PublicKey{Kind: model.PublicKeyECDSA},
	}
}

func serverAuthExt() extensions.Analysis {
	serverAuth, _ := oid.ByName("serverAuth")
	return extensions.Analysis{
		KeyUsageSeen: true,
		KeyUsage:     extensions.KeyUsageBits{DigitalSignature: true},
		ExtKeyUsageSeen: true,
		ExtKeyUsageOIDs: []asn1.ObjectIdentifier{serverAuth},
	}
}

func TestAnalyzeTLSServer_MatchingSAN(t *testing.T) {
	cert := certWithCN("unused")
	ext := serverAuthExt()
	ext.SANSeen = true
	ext.SANEntries = []model.GeneralName{{Kind: model.GeneralNameDNS, DNS: "example.com"}}

	js := Analyze(TLSServer, cert, ext, "example.com")
	assert.True(t, js.HasCode(judgement.CertHostnameMatch))
	assert.False(t, js.HasCode(judgement.CertPurposeTLSServerKeyUsageMissing))
	assert.False(t, js.HasCode(judgement.CertPurposeTLSServerEKUMissing))
}

func TestAnalyzeTLSServer_WildcardSAN(t *testing.T) {
	cert := certWithCN("unused")
	ext := serverAuthExt()
	ext.SANSeen = true
	ext.SANEntries = []model.GeneralName{{Kind: model.GeneralNameDNS, DNS: "*.example.com"}}

	js := Analyze(TLSServer, cert, ext, "www.example.com")
	assert.True(t, js.HasCode(judgement.CertHostnameMatch))
}

func TestAnalyzeTLSServer_WildcardDoesNotMatchMultiLevel(t *testing.T) {
	cert := certWithCN("unused")
	ext := serverAuthExt()
	ext.SANSeen = true
	ext.SANEntries = []model.GeneralName{{Kind: model.GeneralNameDNS, DNS: "*.example.com"}}

	js := Analyze(TLSServer, cert, ext, "a.b.example.com")
	assert.True(t, js.HasCode(judgement.CertHostnameNoMatch))
}

func TestAnalyzeTLSServer_NoMatchFallsBackToCN(t *testing.T) {
	cert := certWithCN("example.com")
	ext := serverAuthExt()

	js := Analyze(TLSServer, cert, ext, "example.com")
	assert.True(t, js.HasCode(judgement.CertHostnameMatch))
}

func TestAnalyzeTLSServer_CNMultiValuedRDNFlagged(t *testing.T) {
	cert := certWithCN("example.com")
	cert.Subject.RDNs[0] = append(cert.Subject.RDNs[0], model.AttributeValue{Type: asn1.ObjectIdentifier{2, 5, 4, 10}, StringType: "PrintableString", Value: "Example Org"})
	ext := serverAuthExt()

	js := Analyze(TLSServer, cert, ext, "example.com")
	assert.True(t, js.HasCode(judgement.CertCNMatchMultiValueRDN))
}

func TestAnalyzeTLSServer_KeyUsageMissing(t *testing.T) {
	cert := certWithCN("unused")
	ext := extensions.Analysis{}
	serverAuth, _ := oid.ByName("serverAuth")
	ext.ExtKeyUsageSeen = true
	ext.ExtKeyUsageOIDs = []asn1.ObjectIdentifier{serverAuth}

	js := Analyze(TLSServer, cert, ext, "")
	assert.True(t, js.HasCode(judgement.CertPurposeTLSServerKeyUsageMissing))
}

func TestAnalyzeTLSServer_EKUMissing(t *testing.T) {
	cert := certWithCN("unused")
	ext := extensions.Analysis{KeyUsageSeen: true, KeyUsage: extensions.KeyUsageBits{DigitalSignature: true}}

	js := Analyze(TLSServer, cert, ext, "")
	assert.True(t, js.HasCode(judgement.CertPurposeTLSServerEKUMissing))
}

func TestAnalyzeTLSServer_RSARequiresKeyEncipherment(t *testing.T) {
	cert := certWithCN("unused")
	cert.PublicKey.Kind = model.PublicKeyRSA
	ext := serverAuthExt() // digitalSignature only, no keyEncipherment

	js := Analyze(TLSServer, cert, ext, "")
	assert.True(t, js.HasCode(judgement.CertPurposeTLSServerKeyUsageMissing))
}

func TestAnalyzeCA_MissingBasicConstraints(t *testing.T) {
	js := Analyze(CA, &model.Certificate{}, extensions.Analysis{}, "")
	assert.True(t, js.HasCode(judgement.CertPurposeCABasicConstraintsMissing))
	assert.True(t, js.HasCode(judgement.CertUnexpectedlyNotCA))
}

func TestAnalyzeCA_WellFormed(t *testing.T) {
	ext := extensions.Analysis{
		BasicConstraintsSeen: true,
		IsCA:                 true,
		KeyUsageSeen:         true,
		KeyUsage:             extensions.KeyUsageBits{KeyCertSign: true},
	}
	js := Analyze(CA, &model.Certificate{}, ext, "")
	assert.False(t, js.HasCode(judgement.CertPurposeCABasicConstraintsMissing))
	assert.False(t, js.HasCode(judgement.CertPurposeCAKeyUsageMissing))
	assert.False(t, js.HasCode(judgement.CertUnexpectedlyNotCA))
}

func TestAnalyzeTLSClient_WellFormed(t *testing.T) {
	clientAuth, _ := oid.ByName("clientAuth")
	ext := extensions.Analysis{
		KeyUsageSeen:    true,
		KeyUsage:        extensions.KeyUsageBits{DigitalSignature: true},
		ExtKeyUsageSeen: true,
		ExtKeyUsageOIDs: []asn1.ObjectIdentifier{clientAuth},
	}
	js := Analyze(TLSClient, &model.Certificate{}, ext, "")
	assert.False(t, js.HasCode(judgement.CertPurposeTLSClientKeyUsageMissing))
	assert.False(t, js.HasCode(judgement.CertPurposeTLSClientEKUMissing))
}
