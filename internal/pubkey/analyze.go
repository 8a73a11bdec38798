package pubkey

import (
	"github.com/x509examine/x509examine/internal/judgement"
	"github.com/x509examine/x509examine/internal/model"
)

// Analyze dispatches a decoded model.PublicKey to its cryptosystem-specific
// analyzer (spec §4.2). A key whose payload failed to decode for the
// algorithm its OID names produces a single Malformed judgement rather than
// silently skipping analysis (spec §4.6).
func Analyze(pk model.PublicKey, cfg Config) judgement.SecurityJudgements {
	if pk.DecodeError != "" {
		return judgement.SecurityJudgements{
			judgement.New(judgement.CertPubkeyInvalidDER,
				"public key payload failed to decode: "+pk.DecodeError,
				judgement.VerdictBrokenSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation),
		}
	}

	switch pk.Kind {
	case model.PublicKeyRSA:
		return AnalyzeRSA(pk.RSA, cfg)
	case model.PublicKeyDSA:
		return AnalyzeDSA(pk.DSA)
	case model.PublicKeyECDSA:
		return AnalyzeECDSA(pk.ECDSA)
	case model.PublicKeyEdDSA:
		return AnalyzeEdDSA(pk.EdDSA)
	default:
		return nil
	}
}
