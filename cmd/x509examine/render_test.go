package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/x509examine/x509examine/analysis"
	"github.com/x509examine/x509examine/internal/judgement"
	"github.com/x509examine/x509examine/internal/model"
	"github.com/x509examine/x509examine/internal/purpose"
)

func TestRenderReport_ParseFailed(t *testing.T) {
	jr := renderReport(analysis.Report{SourceIndex: 3})
	assert.True(t, jr.ParseFailed)
	assert.Equal(t, 3, jr.SourceIndex)
	assert.Empty(t, jr.Subject)
	assert.Equal(t, judgement.VerdictNone.String(), jr.Verdict)
}

func TestRenderReport_JudgementsAndVerdict(t *testing.T) {
	cert := &model.Certificate{}
	r := analysis.Report{
		SourceIndex: 0,
		Certificate: cert,
		Security: judgement.SecurityJudgements{
			judgement.New(judgement.CertSerialZero, "serial is zero",
				judgement.VerdictBrokenSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation),
		},
		Purposes: []analysis.PurposeResult{
			{Purpose: purpose.TLSServer, Judgements: judgement.SecurityJudgements{}},
		},
	}

	jr := renderReport(r)
	require.False(t, jr.ParseFailed)
	require.Len(t, jr.Security, 1)
	assert.Equal(t, judgement.CertSerialZero, jr.Security[0].Code)
	assert.Equal(t, judgement.VerdictBrokenSecurity.String(), jr.Verdict)
	require.Len(t, jr.Purposes, 1)
	assert.Equal(t, "tls-server", jr.Purposes[0].Purpose)
}

func TestPurposeName(t *testing.T) {
	assert.Equal(t, "tls-server", purposeName(purpose.TLSServer))
	assert.Equal(t, "tls-client", purposeName(purpose.TLSClient))
	assert.Equal(t, "ca", purposeName(purpose.CA))
}

func TestRenderJudgements_EmptyIsNil(t *testing.T) {
	assert.Nil(t, renderJudgements(nil))
	assert.Nil(t, renderJudgements(judgement.SecurityJudgements{}))
}
