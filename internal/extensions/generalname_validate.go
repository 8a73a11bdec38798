package extensions

import (
	"net"
	"strings"

	"github.com/x509examine/x509examine/internal/judgement"
	"github.com/x509examine/x509examine/internal/model"
)

// validateGeneralName runs the per-tag syntax checks spec §4.3 requires
// ("each GeneralName validated according to its tag"), supplemented with
// the detail the original x509sak tool's GeneralNameValidator.py carries
// (SPEC_FULL.md SUPPLEMENTED FEATURES).
func validateGeneralName(gn model.GeneralName) judgement.SecurityJudgements {
	var js judgement.SecurityJudgements
	switch gn.Kind {
	case model.GeneralNameDNS:
		js = validateDNSName(gn.DNS)
	case model.GeneralNameIPAddress:
		if len(gn.IPAddress) != 4 && len(gn.IPAddress) != 16 {
			js = js.Extend(judgement.New(judgement.SubjectAltNameBadIPAddressLength,
				"iPAddress GeneralName is neither 4 nor 16 octets",
				judgement.VerdictWeakSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation))
		}
	case model.GeneralNameURI:
		if !hasKnownURIScheme(gn.URI) {
			js = js.Extend(judgement.New(judgement.SubjectAltNameBadURIScheme,
				"uniformResourceIdentifier GeneralName does not use a recognized scheme",
				judgement.VerdictNone, judgement.HighlyUnusual, judgement.StandardsDeviation))
		}
	}
	return js
}

func validateDNSName(name string) judgement.SecurityJudgements {
	var js judgement.SecurityJudgements

	if net.ParseIP(strings.TrimPrefix(name, "*.")) != nil {
		js = js.Extend(judgement.New(judgement.SubjectAltNameBadDNSNameAsIPv4,
			"dNSName GeneralName is a literal IP address, not a hostname",
			judgement.VerdictNone, judgement.HighlyUnusual, judgement.StandardsDeviation))
		return js
	}

	if strings.ContainsRune(name, ' ') {
		js = js.Extend(judgement.New(judgement.SubjectAltNameBadDNSNameSpace,
			"dNSName GeneralName contains a space character",
			judgement.VerdictNone, judgement.HighlyUnusual, judgement.StandardsDeviation))
	}
	if strings.ContainsRune(name, '_') {
		js = js.Extend(judgement.New(judgement.SubjectAltNameBadDNSNameUnderscore,
			"dNSName GeneralName contains an underscore character, outside LDH syntax",
			judgement.VerdictNone, judgement.Unusual, judgement.StandardsDeviation))
	}

	labels := strings.Split(name, ".")
	for i, label := range labels {
		if label == "*" {
			if i != 0 {
				js = js.Extend(judgement.New(judgement.SubjectAltNameBadWildcardNotLeftmost,
					"wildcard label appears somewhere other than the leftmost position (RFC 6125 §6.4.3)",
					judgement.VerdictWeakSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation).
					WithStandard(judgement.Standard{RFCNo: 6125, Sect: "6.4.3", Verb: judgement.MUSTNOT,
						Text: "a wildcard is permitted only as the complete leftmost label"}))
			}
			continue
		}
		if !isLDHLabel(label) {
			js = js.Extend(judgement.New(judgement.SubjectAltNameBadDNSNameNotLDH,
				"dNSName label \""+label+"\" is not a valid LDH (letter-digit-hyphen) label",
				judgement.VerdictNone, judgement.HighlyUnusual, judgement.StandardsDeviation))
		}
	}

	return js
}

func isLDHLabel(label string) bool {
	if label == "" {
		return false
	}
	for i, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			continue
		case r == '-' && i != 0 && i != len(label)-1:
			continue
		default:
			return false
		}
	}
	return true
}

func hasKnownURIScheme(uri string) bool {
	for _, scheme := range []string{"http://", "https://", "ldap://", "ftp://"} {
		if strings.HasPrefix(strings.ToLower(uri), scheme) {
			return true
		}
	}
	return false
}
