// Package analysis is the public driver (spec §2 data flow, §5): it
// accepts raw bytes, splits them into one or more certificates, and runs
// every analyzer in this module against each one in a deterministic
// sequence, producing a Report.
package analysis

import (
	"encoding/asn1"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/x509examine/x509examine/internal/bignum"
	"github.com/x509examine/x509examine/internal/carelation"
	"github.com/x509examine/x509examine/internal/certbody"
	"github.com/x509examine/x509examine/internal/der"
	"github.com/x509examine/x509examine/internal/extensions"
	"github.com/x509examine/x509examine/internal/judgement"
	"github.com/x509examine/x509examine/internal/model"
	"github.com/x509examine/x509examine/internal/oid"
	"github.com/x509examine/x509examine/internal/pubkey"
	"github.com/x509examine/x509examine/internal/purpose"
	"github.com/x509examine/x509examine/internal/verify"
)

// ErrNotACertificate is re-exported from internal/der: the one hard
// failure spec.md §7 describes (input rejection, not a judgement).
var ErrNotACertificate = der.ErrNotACertificate

// Config is the plain configuration struct spec.md §6 describes.
type Config struct {
	// FastRSA skips expensive RSA primality/trial-division checks.
	FastRSA bool

	// IncludeRawData is accepted but not consulted: the Engine adds no
	// raw byte-level cryptographic parameters to the report either way.
	IncludeRawData bool

	// Purposes enables the purpose analyzer for each named purpose.
	Purposes []purpose.Purpose

	// EntityName is the target hostname for tls-server hostname matching.
	EntityName string

	// CompromisedModuli is consulted by the RSA analyzer; nil disables
	// the lookup.
	CompromisedModuli *bignum.CompromisedModuliDB

	// Verifier performs signature verification for the CA-relationship
	// analyzer; nil skips that one check, and no judgement is emitted
	// for the skipped signature check.
	Verifier verify.SignatureVerifier

	// Logger receives V(1) trace lines per analyzer invocation.
	// Defaults to logr.Discard() if unset.
	Logger logr.Logger
}

// PurposeResult pairs one requested purpose with its judgements.
type PurposeResult struct {
	Purpose    purpose.Purpose
	Judgements judgement.SecurityJudgements
}

// CARelationResult is populated only when the caller supplies a presumed
// issuer certificate for this report's certificate.
type CARelationResult struct {
	Result carelation.Result
}

// Report is the per-certificate output spec §6 describes.
type Report struct {
	SourceIndex int
	Certificate *model.Certificate

	BodyJudgements      judgement.SecurityJudgements
	PubkeyJudgements     judgement.SecurityJudgements
	ExtensionsJudgements judgement.SecurityJudgements
	ExtensionsAnalysis   extensions.Analysis

	Purposes []PurposeResult

	CARelation *CARelationResult

	Security judgement.SecurityJudgements
}

// Engine runs the full analysis pipeline. It has no mutable state beyond
// its Config; one Engine value may analyze many inputs concurrently
// (spec §5: "freely parallelizable at certificate granularity").
type Engine struct {
	Config Config
}

// New constructs an Engine from cfg, defaulting Logger to logr.Discard()
// (spec §5: "the engine has no business making noise for a library
// caller" unless one is supplied).
func New(cfg Config) *Engine {
	if cfg.Logger.GetSink() == nil {
		cfg.Logger = logr.Discard()
	}
	return &Engine{Config: cfg}
}

// Analyze splits data into one or more certificates and analyzes each in
// turn. It returns ErrNotACertificate (wrapped) if data contains no
// recognizable certificate at all; individual certificates that decode
// but contain defects never produce an error, only judgements (spec §7).
func (e *Engine) Analyze(data []byte) ([]Report, error) {
	blocks, err := der.Split(data)
	if err != nil {
		return nil, fmt.Errorf("analysis: %w", err)
	}

	reports := make([]Report, 0, len(blocks))
	for _, b := range blocks {
		reports = append(reports, e.analyzeOne(b))
	}
	return reports, nil
}

func (e *Engine) analyzeOne(b der.Block) Report {
	log := e.Config.Logger.V(1)

	report := Report{SourceIndex: b.Index}

	cert, err := model.Parse(b.DER)
	if err != nil {
		log.Info("certificate parse failed", "index", b.Index, "error", err)
		// A certificate whose top-level SEQUENCE cannot be decoded at all
		// cannot be reported on further; callers detect this by the nil
		// Certificate.
		return report
	}
	report.Certificate = cert
	log.Info("parsed certificate", "index", b.Index, "subject", cert.Subject.String())

	canonIssues := der.CheckCanonicity(b.DER)
	bodyJudgements := canonicityJudgements(canonIssues)

	certCfg := certbody.Config{IsCA: false}
	extAnalysis := extensions.Analyze(cert)
	extAnalysis.Judgements = judgement.Concat(extAnalysis.Judgements,
		extensions.ClassifySubjectKeyIdentifier(extAnalysis.SubjectKeyID, cert.PublicKey.RawSubjectPublicKey))
	certCfg.IsCA = extAnalysis.IsCA
	bodyJudgements = judgement.Concat(bodyJudgements, certbody.Analyze(cert, certCfg))
	log.Info("ran body analyzer", "index", b.Index, "judgements", len(bodyJudgements))

	pkgCfg := pubkey.Config{FastRSA: e.Config.FastRSA, CompromisedModuli: e.Config.CompromisedModuli}
	pubkeyJudgements := pubkey.Analyze(cert.PublicKey, pkgCfg)
	pubkeyJudgements = judgement.Concat(pubkeyJudgements, signatureAlgorithmJudgements(cert))
	log.Info("ran pubkey analyzer", "index", b.Index, "judgements", len(pubkeyJudgements))

	log.Info("ran extensions analyzer", "index", b.Index, "judgements", len(extAnalysis.Judgements))

	report.BodyJudgements = bodyJudgements
	report.PubkeyJudgements = pubkeyJudgements
	report.ExtensionsJudgements = extAnalysis.Judgements
	report.ExtensionsAnalysis = extAnalysis

	for _, p := range e.Config.Purposes {
		hostname := ""
		if p == purpose.TLSServer {
			hostname = e.Config.EntityName
		}
		js := purpose.Analyze(p, cert, extAnalysis, hostname)
		report.Purposes = append(report.Purposes, PurposeResult{Purpose: p, Judgements: js})
		log.Info("ran purpose analyzer", "index", b.Index, "purpose", p, "judgements", len(js))
	}

	report.Security = judgement.Concat(bodyJudgements, pubkeyJudgements, extAnalysis.Judgements)
	for _, pr := range report.Purposes {
		report.Security = judgement.Concat(report.Security, pr.Judgements)
	}

	return report
}

// AttachCARelation runs the CA-relationship analyzer between a prior
// report's certificate (the subject) and a presumed issuer's report,
// appending the result to subject's Security judgements (spec §4.4). The
// caller supplies both as already-produced Reports, since the analyzer
// needs each side's decoded extensions.
func (e *Engine) AttachCARelation(subject, issuer *Report) {
	if subject.Certificate == nil || issuer.Certificate == nil {
		return
	}
	cfg := carelation.Config{Verifier: e.Config.Verifier}
	result := carelation.Analyze(subject.Certificate, issuer.Certificate, subject.ExtensionsAnalysis, issuer.ExtensionsAnalysis, cfg)
	subject.CARelation = &CARelationResult{Result: result}
	subject.Security = judgement.Concat(subject.Security, result.Judgements)
}

var ecdsaSignatureOIDNames = []string{"ecdsaWithSha1", "ecdsaWithSha256", "ecdsaWithSha384", "ecdsaWithSha512"}

var rsaPSSOID = oid.MustByName("rsassaPss")

// rawAlgorithmIdentifier mirrors RFC 5280 §4.1.1.2's AlgorithmIdentifier,
// used here to pull the tbsCertificate.signature AlgorithmIdentifier's
// parameters back out of its raw bytes (model.Certificate keeps only the
// outer Certificate.signatureAlgorithm's parameters decoded).
type rawAlgorithmIdentifier struct {
	Raw        asn1.RawContent
	Algorithm  asn1.ObjectIdentifier
	Parameters asn1.RawValue `asn1:"optional"`
}

// signatureAlgorithmJudgements dispatches to the signature-algorithm-keyed
// analyzers spec §4.2 describes: RSASSA-PSS parameter checks and the
// ECDSA signature value's structural/bit-bias checks. Both are keyed off
// cert.SignatureAlgorithmOID rather than the public key's kind, since an
// RSA key can be used with either rsaEncryption or RSASSA-PSS signatures.
func signatureAlgorithmJudgements(cert *model.Certificate) judgement.SecurityJudgements {
	switch {
	case cert.SignatureAlgorithmOID.Equal(rsaPSSOID):
		innerParams := cert.SignatureAlgorithmParams.FullBytes
		var inner rawAlgorithmIdentifier
		if _, err := asn1.Unmarshal(cert.InnerSignatureAlgorithm, &inner); err == nil {
			innerParams = inner.Parameters.FullBytes
		}
		return pubkey.AnalyzeRSAPSS(cert.SignatureAlgorithmParams.FullBytes, cert.SignatureAlgorithmParams.FullBytes, innerParams)
	case isECDSASignatureAlgorithm(cert.SignatureAlgorithmOID):
		return pubkey.AnalyzeECDSASignature(cert.SignatureValue.RightAlign())
	default:
		return nil
	}
}

func isECDSASignatureAlgorithm(id asn1.ObjectIdentifier) bool {
	name, ok := oid.Name(id)
	if !ok {
		return false
	}
	for _, n := range ecdsaSignatureOIDNames {
		if n == name {
			return true
		}
	}
	return false
}

func canonicityJudgements(issues []der.Issue) judgement.SecurityJudgements {
	var js judgement.SecurityJudgements
	for _, iss := range issues {
		switch iss.Kind {
		case "non_minimal_length":
			js = js.Extend(judgement.New(judgement.CertInvalidDER,
				"non-minimal DER length encoding at "+iss.Path,
				judgement.VerdictNone, judgement.HighlyUnusual, judgement.StandardsDeviation))
		case "non_minimal_integer":
			js = js.Extend(judgement.New(judgement.CertInvalidDER,
				"non-minimal DER INTEGER encoding at "+iss.Path,
				judgement.VerdictNone, judgement.HighlyUnusual, judgement.StandardsDeviation))
		case "bit_string_padding":
			js = js.Extend(judgement.New(judgement.CertInvalidDER,
				"BIT STRING carries spurious padding bits at "+iss.Path,
				judgement.VerdictNone, judgement.HighlyUnusual, judgement.StandardsDeviation))
		case "trailing_data":
			js = js.Extend(judgement.New(judgement.CertTrailingData,
				"trailing bytes after the top-level Certificate SEQUENCE",
				judgement.VerdictNone, judgement.HighlyUnusual, judgement.StandardsDeviation))
		default:
			js = js.Extend(judgement.New(judgement.CertInvalidDER,
				"non-canonical DER encoding ("+iss.Kind+") at "+iss.Path,
				judgement.VerdictNone, judgement.HighlyUnusual, judgement.StandardsDeviation))
		}
	}
	return js
}
