package main

import (
	"github.com/x509examine/x509examine/analysis"
	"github.com/x509examine/x509examine/internal/judgement"
	"github.com/x509examine/x509examine/internal/purpose"
)

func purposeName(p purpose.Purpose) string {
	switch p {
	case purpose.TLSServer:
		return "tls-server"
	case purpose.TLSClient:
		return "tls-client"
	case purpose.CA:
		return "ca"
	default:
		return "unknown"
	}
}

// jsonJudgement is the wire shape for one finding. Bits/Standard are
// pointers so an absent value renders as JSON null rather than a
// misleading zero value.
type jsonJudgement struct {
	Code          judgement.Code      `json:"code"`
	Message       string              `json:"message"`
	Verdict       string              `json:"verdict"`
	Commonness    string              `json:"commonness"`
	Compatibility string              `json:"compatibility"`
	Bits          *int                `json:"bits,omitempty"`
	Standard      *judgement.Standard `json:"standard,omitempty"`
}

type jsonPurposeResult struct {
	Purpose    string          `json:"purpose"`
	Judgements []jsonJudgement `json:"judgements"`
}

type jsonReport struct {
	SourceIndex int    `json:"sourceIndex"`
	Subject     string `json:"subject,omitempty"`
	Issuer      string `json:"issuer,omitempty"`
	ParseFailed bool   `json:"parseFailed"`

	Verdict string `json:"verdict"`

	BodyJudgements       []jsonJudgement     `json:"bodyJudgements,omitempty"`
	PubkeyJudgements     []jsonJudgement     `json:"pubkeyJudgements,omitempty"`
	ExtensionsJudgements []jsonJudgement     `json:"extensionsJudgements,omitempty"`
	Purposes             []jsonPurposeResult `json:"purposes,omitempty"`
	Security             []jsonJudgement     `json:"security"`
}

func renderReports(reports []analysis.Report) []jsonReport {
	out := make([]jsonReport, 0, len(reports))
	for _, r := range reports {
		out = append(out, renderReport(r))
	}
	return out
}

func renderReport(r analysis.Report) jsonReport {
	jr := jsonReport{
		SourceIndex: r.SourceIndex,
		ParseFailed: r.Certificate == nil,
	}
	if r.Certificate != nil {
		jr.Subject = r.Certificate.Subject.String()
		jr.Issuer = r.Certificate.Issuer.String()
	}

	if v, ok := r.Security.AggregateVerdict(); ok {
		jr.Verdict = v.String()
	} else {
		jr.Verdict = judgement.VerdictNone.String()
	}

	jr.BodyJudgements = renderJudgements(r.BodyJudgements)
	jr.PubkeyJudgements = renderJudgements(r.PubkeyJudgements)
	jr.ExtensionsJudgements = renderJudgements(r.ExtensionsJudgements)
	jr.Security = renderJudgements(r.Security)

	for _, pr := range r.Purposes {
		jr.Purposes = append(jr.Purposes, jsonPurposeResult{
			Purpose:    purposeName(pr.Purpose),
			Judgements: renderJudgements(pr.Judgements),
		})
	}

	return jr
}

func renderJudgements(js judgement.SecurityJudgements) []jsonJudgement {
	if len(js) == 0 {
		return nil
	}
	out := make([]jsonJudgement, 0, len(js))
	for _, j := range js {
		out = append(out, jsonJudgement{
			Code:          j.Code,
			Message:       j.Message,
			Verdict:       j.Verdict.String(),
			Commonness:    j.Commonness.String(),
			Compatibility: j.Compatibility.String(),
			Bits:          j.Bits,
			Standard:      j.Standard,
		})
	}
	return out
}
