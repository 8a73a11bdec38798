// Package purpose implements the purpose analyzer (spec §4.5): given a
// target purpose (tls-server, tls-client, ca) and, for tls-server, a
// target hostname, it checks the certificate's KeyUsage/ExtendedKeyUsage/
// BasicConstraints assertions against what that purpose requires.
package purpose

import (
	"encoding/asn1"
	"strings"

	"github.com/x509examine/x509examine/internal/extensions"
	"github.com/x509examine/x509examine/internal/judgement"
	"github.com/x509examine/x509examine/internal/model"
	"github.com/x509examine/x509examine/internal/oid"
)

// Purpose is one of the three target purposes spec §4.5 names.
type Purpose int

const (
	TLSServer Purpose = iota
	TLSClient
	CA
)

// Analyze runs the checks for one target purpose against an already-
// decoded extension analysis. hostname is only consulted for TLSServer;
// pass "" for the other purposes.
func Analyze(purpose Purpose, cert *model.Certificate, ext extensions.Analysis, hostname string) judgement.SecurityJudgements {
	switch purpose {
	case TLSServer:
		return analyzeTLSServer(cert, ext, hostname)
	case TLSClient:
		return analyzeTLSClient(ext)
	case CA:
		return analyzeCA(ext)
	default:
		return nil
	}
}

func analyzeTLSServer(cert *model.Certificate, ext extensions.Analysis, hostname string) judgement.SecurityJudgements {
	var js judgement.SecurityJudgements

	if !requiresKeyUsageFor(cert, ext) {
		js = js.Extend(judgement.New(judgement.CertPurposeTLSServerKeyUsageMissing,
			"certificate lacks the KeyUsage assertions a tls-server certificate needs",
			judgement.VerdictWeakSecurity, judgement.Unusual, judgement.StandardsDeviation))
	}

	serverAuth, _ := oid.ByName("serverAuth")
	if !hasEKU(ext, serverAuth) {
		js = js.Extend(judgement.New(judgement.CertPurposeTLSServerEKUMissing,
			"certificate's ExtendedKeyUsage does not include id-kp-serverAuth",
			judgement.VerdictWeakSecurity, judgement.Unusual, judgement.StandardsDeviation))
	}

	if hostname != "" {
		js = judgement.Concat(js, matchHostname(cert, ext, hostname))
	}

	if ext.IsCA {
		js = js.Extend(judgement.New(judgement.CertUnexpectedlyCA,
			"certificate used for tls-server is itself a CA certificate",
			judgement.VerdictNone, judgement.Unusual, judgement.StandardsDeviation))
	}

	return js
}

func analyzeTLSClient(ext extensions.Analysis) judgement.SecurityJudgements {
	var js judgement.SecurityJudgements

	if !ext.KeyUsageSeen || !ext.KeyUsage.DigitalSignature {
		js = js.Extend(judgement.New(judgement.CertPurposeTLSClientKeyUsageMissing,
			"certificate's KeyUsage does not assert digitalSignature, required for tls-client",
			judgement.VerdictWeakSecurity, judgement.Unusual, judgement.StandardsDeviation))
	}

	clientAuth, _ := oid.ByName("clientAuth")
	if !hasEKU(ext, clientAuth) {
		js = js.Extend(judgement.New(judgement.CertPurposeTLSClientEKUMissing,
			"certificate's ExtendedKeyUsage does not include id-kp-clientAuth",
			judgement.VerdictWeakSecurity, judgement.Unusual, judgement.StandardsDeviation))
	}

	if ext.IsCA {
		js = js.Extend(judgement.New(judgement.CertUnexpectedlyCA,
			"certificate used for tls-client is itself a CA certificate",
			judgement.VerdictNone, judgement.Unusual, judgement.StandardsDeviation))
	}

	return js
}

func analyzeCA(ext extensions.Analysis) judgement.SecurityJudgements {
	var js judgement.SecurityJudgements

	if !ext.BasicConstraintsSeen || !ext.IsCA {
		js = js.Extend(judgement.New(judgement.CertPurposeCABasicConstraintsMissing,
			"certificate does not assert BasicConstraints cA=true",
			judgement.VerdictWeakSecurity, judgement.Unusual, judgement.StandardsDeviation))
	}
	if !ext.KeyUsageSeen || !ext.KeyUsage.KeyCertSign {
		js = js.Extend(judgement.New(judgement.CertPurposeCAKeyUsageMissing,
			"certificate's KeyUsage does not assert keyCertSign",
			judgement.VerdictWeakSecurity, judgement.Unusual, judgement.StandardsDeviation))
	}
	if !ext.IsCA {
		js = js.Extend(judgement.New(judgement.CertUnexpectedlyNotCA,
			"certificate used for ca purpose is not itself a CA certificate",
			judgement.VerdictWeakSecurity, judgement.Unusual, judgement.StandardsDeviation))
	}

	return js
}

// requiresKeyUsageFor applies spec §4.5's "digitalSignature (and
// keyEncipherment for RSA key exchange)" rule.
func requiresKeyUsageFor(cert *model.Certificate, ext extensions.Analysis) bool {
	if !ext.KeyUsageSeen || !ext.KeyUsage.DigitalSignature {
		return false
	}
	if cert.PublicKey.Kind == model.PublicKeyRSA && !ext.KeyUsage.KeyEncipherment {
		return false
	}
	return true
}

func hasEKU(ext extensions.Analysis, want asn1.ObjectIdentifier) bool {
	if ext.ExtKeyUsageHasAny {
		return true
	}
	for _, id := range ext.ExtKeyUsageOIDs {
		if id.Equal(want) {
			return true
		}
	}
	return false
}

// matchHostname implements spec §4.5's hostname-match rule: SAN dNSName
// entries under RFC 6125 §6.4.3 wildcard rules, falling back to the CN
// only when no SAN is present, flagging a CN-only match against a
// multi-valued RDN.
func matchHostname(cert *model.Certificate, ext extensions.Analysis, hostname string) judgement.SecurityJudgements {
	target := strings.ToLower(hostname)

	if ext.SANSeen {
		for _, gn := range ext.SANEntries {
			if gn.Kind == model.GeneralNameDNS && dnsNameMatches(gn.DNS, target) {
				return judgement.SecurityJudgements{}.Extend(judgement.New(judgement.CertHostnameMatch,
					"target hostname matches a SubjectAltName dNSName entry",
					judgement.VerdictNone, judgement.Common, judgement.FullyCompliant))
			}
		}
		return judgement.SecurityJudgements{}.Extend(judgement.New(judgement.CertHostnameNoMatch,
			"target hostname matches no SubjectAltName dNSName entry",
			judgement.VerdictWeakSecurity, judgement.Unusual, judgement.StandardsDeviation))
	}

	cn, ok := cert.Subject.CommonName()
	if !ok || !dnsNameMatches(cn, target) {
		return judgement.SecurityJudgements{}.Extend(judgement.New(judgement.CertHostnameNoMatch,
			"target hostname matches neither a SubjectAltName nor the subject commonName",
			judgement.VerdictWeakSecurity, judgement.Unusual, judgement.StandardsDeviation))
	}

	var js judgement.SecurityJudgements
	if cert.Subject.HasMultiValuedRDN() {
		js = js.Extend(judgement.New(judgement.CertCNMatchMultiValueRDN,
			"target hostname matches only via commonName, whose RDN is multi-valued",
			judgement.VerdictNone, judgement.HighlyUnusual, judgement.StandardsDeviation))
	}
	js = js.Extend(judgement.New(judgement.CertHostnameMatch,
		"target hostname matches the subject commonName (no SubjectAltName present)",
		judgement.VerdictNone, judgement.Unusual, judgement.StandardsDeviation))
	return js
}

// dnsNameMatches applies RFC 6125 §6.4.3's leftmost-label-only wildcard
// rule: a wildcard matches exactly one non-empty label, and only when it
// is the complete leftmost label of the pattern.
func dnsNameMatches(pattern, hostname string) bool {
	pattern = strings.ToLower(pattern)
	if pattern == hostname {
		return true
	}
	if !strings.HasPrefix(pattern, "*.") {
		return false
	}
	patternRest := pattern[2:]
	dot := strings.IndexByte(hostname, '.')
	if dot <= 0 {
		return false
	}
	return hostname[dot+1:] == patternRest
}
