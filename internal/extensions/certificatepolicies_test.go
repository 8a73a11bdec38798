package extensions

import (
	"encoding/asn1"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/x509examine/x509examine/internal/judgement"
	"github.com/x509examine/x509examine/internal/model"
	"github.com/x509examine/x509examine/internal/oid"
)

func marshalPolicies(t *testing.T, policies []rawPolicyInformation) []byte {
	t.Helper()
	der, err := asn1.Marshal(policies)
	require.NoError(t, err)
	return der
}

func qualifierOf(t *testing.T, id string, value interface{}) rawPolicyQualifierInfo {
	t.Helper()
	qid, ok := oid.ByName(id)
	require.True(t, ok)
	der, err := asn1.Marshal(value)
	require.NoError(t, err)
	var raw asn1.RawValue
	_, err = asn1.Unmarshal(der, &raw)
	require.NoError(t, err)
	return rawPolicyQualifierInfo{PolicyQualifierID: qid, Qualifier: raw}
}

func TestAnalyzeCertificatePolicies_DuplicateOID(t *testing.T) {
	someID, _ := oid.ByName("anyPolicy")
	policies := []rawPolicyInformation{
		{PolicyIdentifier: someID},
		{PolicyIdentifier: someID},
	}
	var a Analysis
	analyzeCertificatePolicies(model.Extension{Value: marshalPolicies(t, policies)}, &a)
	assert.True(t, a.Judgements.HasCode(judgement.CertificatePoliciesDuplicateOID))
}

func TestAnalyzeCertificatePolicies_AnyPolicyBadQualifier(t *testing.T) {
	anyPolicyID, _ := oid.ByName("anyPolicy")
	badQualifierID := asn1.ObjectIdentifier{1, 2, 3, 4, 5}
	policies := []rawPolicyInformation{
		{
			PolicyIdentifier: anyPolicyID,
			Qualifiers: []rawPolicyQualifierInfo{
				qualifierOf(t, "id-qt-cps", "http://example.com/cps"), // placeholder swapped below
			},
		},
	}
	policies[0].Qualifiers[0].PolicyQualifierID = badQualifierID
	var a Analysis
	analyzeCertificatePolicies(model.Extension{Value: marshalPolicies(t, policies)}, &a)
	assert.True(t, a.Judgements.HasCode(judgement.CertificatePoliciesAnyPolicyBadQualifier))
}

func TestAnalyzeCPSQualifier_UnknownScheme(t *testing.T) {
	var a Analysis
	q := qualifierOf(t, "id-qt-cps", asn1.RawValue{Class: asn1.ClassUniversal, Tag: 22, Bytes: []byte("not-a-uri")})
	analyzeCPSQualifier(q, &a)
	assert.True(t, a.Judgements.HasCode(judgement.CertificatePoliciesCPSUriNotURI))
}

func TestAnalyzeUserNoticeQualifier_TooLong(t *testing.T) {
	longText := strings.Repeat("x", 201)
	notice := rawUserNotice{}
	textDER, err := asn1.MarshalWithParams(longText, "ia5")
	require.NoError(t, err)
	var rawText asn1.RawValue
	_, err = asn1.Unmarshal(textDER, &rawText)
	require.NoError(t, err)
	notice.ExplicitText = rawText

	noticeDER, err := asn1.Marshal(notice)
	require.NoError(t, err)
	var rawNotice asn1.RawValue
	_, err = asn1.Unmarshal(noticeDER, &rawNotice)
	require.NoError(t, err)

	q := rawPolicyQualifierInfo{Qualifier: rawNotice}
	var a Analysis
	analyzeUserNoticeQualifier(q, &a)
	assert.True(t, a.Judgements.HasCode(judgement.CertificatePoliciesUserNoticeTooLong))
}
