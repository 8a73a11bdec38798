package extensions

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/x509examine/x509examine/internal/judgement"
	"github.com/x509examine/x509examine/internal/model"
)

// reasonsOnlyDistributionPoints hand-builds a CRLDistributionPoints
// payload containing a single DistributionPoint whose only field is a
// [1] IMPLICIT BIT STRING reasons — no distributionPoint name, no
// cRLIssuer — to exercise the reasons-without-a-name/issuer check without
// fighting the asn1 package's RawValue marshal quirks for absent
// OPTIONAL fields.
func reasonsOnlyDistributionPoints() []byte {
	reasons := []byte{0x81, 0x02, 0x00, 0x80} // [1] BIT STRING, 0 unused bits, bit 0 set
	dp := append([]byte{0x30, byte(len(reasons))}, reasons...)
	return append([]byte{0x30, byte(len(dp))}, dp...)
}

func TestAnalyzeCRLDistributionPoints_Critical(t *testing.T) {
	var a Analysis
	analyzeCRLDistributionPoints(model.Extension{Critical: true, Value: reasonsOnlyDistributionPoints()}, &a)
	assert.True(t, a.Judgements.HasCode(judgement.CRLDistributionPointsCritical))
}

func TestAnalyzeCRLDistributionPoints_ReasonsOnly(t *testing.T) {
	var a Analysis
	analyzeCRLDistributionPoints(model.Extension{Value: reasonsOnlyDistributionPoints()}, &a)
	assert.True(t, a.Judgements.HasCode(judgement.CRLDistributionPointsReasonsOnly))
}

func TestValidateCRLURL_HTTPBadSuffix(t *testing.T) {
	var a Analysis
	validateCRLURL("http://example.com/revoked.txt", &a)
	assert.True(t, a.Judgements.HasCode(judgement.CRLDistributionPointsURLBadSuffix))
}

func TestValidateCRLURL_HTTPGoodSuffix(t *testing.T) {
	var a Analysis
	validateCRLURL("http://example.com/revoked.crl", &a)
	assert.False(t, a.Judgements.HasCode(judgement.CRLDistributionPointsURLBadSuffix))
}

func TestValidateCRLURL_LDAPNoDN(t *testing.T) {
	var a Analysis
	validateCRLURL("ldap://ldap.example.com/", &a)
	assert.True(t, a.Judgements.HasCode(judgement.CRLDistributionPointsLDAPURLMalformed))
}

func TestValidateCRLURL_LDAPWrongAttribute(t *testing.T) {
	var a Analysis
	validateCRLURL("ldap://ldap.example.com/cn=CRL1,dc=example,dc=com?someOtherAttr", &a)
	assert.True(t, a.Judgements.HasCode(judgement.CRLDistributionPointsLDAPURLMalformed))
}
