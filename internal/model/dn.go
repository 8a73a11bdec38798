package model

import (
	"encoding/asn1"
	"fmt"
	"strings"
)

// AttributeValue is one (OID, character-string-type, decoded text) triple
// inside an RDN.
type AttributeValue struct {
	Type       asn1.ObjectIdentifier
	StringType string // "PrintableString", "UTF8String", "T61String", "IA5String", "BMPString", "Unknown"
	Value      string
	RawTag     int
}

// RDN is a non-empty set of attribute/value pairs. Multi-valued RDNs (more
// than one AttributeValue) are permitted but uncommon (spec §3).
type RDN []AttributeValue

// DistinguishedName is an ordered sequence of RDNs.
type DistinguishedName struct {
	RDNs []RDN
	Raw  []byte
}

// IsEmpty reports whether the DN has zero length (spec §3: "An RDN is
// empty iff its length is zero" — extended here to the whole DN, which is
// the form the SAN/IAN "critical iff subject DN empty" check needs).
func (dn DistinguishedName) IsEmpty() bool {
	return len(dn.RDNs) == 0
}

// HasMultiValuedRDN reports whether any RDN in the name carries more than
// one attribute/value pair.
func (dn DistinguishedName) HasMultiValuedRDN() bool {
	for _, rdn := range dn.RDNs {
		if len(rdn) > 1 {
			return true
		}
	}
	return false
}

// CommonName returns the first commonName attribute value found, if any.
var oidCommonName = asn1.ObjectIdentifier{2, 5, 4, 3}
var oidCountryName = asn1.ObjectIdentifier{2, 5, 4, 6}

func (dn DistinguishedName) CommonName() (string, bool) {
	for _, rdn := range dn.RDNs {
		for _, av := range rdn {
			if av.Type.Equal(oidCommonName) {
				return av.Value, true
			}
		}
	}
	return "", false
}

// CountryAttributes returns every countryName attribute value in the DN,
// together with its string type, for the certbody analyzer's
// PrintableString-expected check.
func (dn DistinguishedName) CountryAttributes() []AttributeValue {
	var out []AttributeValue
	for _, rdn := range dn.RDNs {
		for _, av := range rdn {
			if av.Type.Equal(oidCountryName) {
				out = append(out, av)
			}
		}
	}
	return out
}

// String renders an RFC 2253-ish string form, most-specific RDN first.
func (dn DistinguishedName) String() string {
	var parts []string
	for i := len(dn.RDNs) - 1; i >= 0; i-- {
		parts = append(parts, rdnString(dn.RDNs[i]))
	}
	return strings.Join(parts, ",")
}

func rdnString(rdn RDN) string {
	var parts []string
	for _, av := range rdn {
		name, ok := attributeShortName(av.Type)
		if !ok {
			name = av.Type.String()
		}
		parts = append(parts, fmt.Sprintf("%s=%s", name, av.Value))
	}
	return strings.Join(parts, "+")
}

func attributeShortName(oid asn1.ObjectIdentifier) (string, bool) {
	switch {
	case oid.Equal(asn1.ObjectIdentifier{2, 5, 4, 3}):
		return "CN", true
	case oid.Equal(asn1.ObjectIdentifier{2, 5, 4, 6}):
		return "C", true
	case oid.Equal(asn1.ObjectIdentifier{2, 5, 4, 7}):
		return "L", true
	case oid.Equal(asn1.ObjectIdentifier{2, 5, 4, 8}):
		return "ST", true
	case oid.Equal(asn1.ObjectIdentifier{2, 5, 4, 10}):
		return "O", true
	case oid.Equal(asn1.ObjectIdentifier{2, 5, 4, 11}):
		return "OU", true
	default:
		return "", false
	}
}

// Equal compares two DistinguishedNames on their canonicalized RDN form:
// same number of RDNs, same attribute OIDs and values per RDN, in order.
// Used by the CA-relationship analyzer for byte-for-byte-equivalent
// comparison (spec §4.4.1).
func (dn DistinguishedName) Equal(other DistinguishedName) bool {
	if len(dn.RDNs) != len(other.RDNs) {
		return false
	}
	for i := range dn.RDNs {
		if !rdnEqual(dn.RDNs[i], other.RDNs[i]) {
			return false
		}
	}
	return true
}

func rdnEqual(a, b RDN) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Type.Equal(b[i].Type) || a[i].Value != b[i].Value {
			return false
		}
	}
	return true
}

// rawAttributeTypeAndValue/rawRDNSET mirror the ASN.1
// Name ::= CHOICE { rdnSequence RDNSequence }
// RDNSequence ::= SEQUENCE OF RelativeDistinguishedName
// RelativeDistinguishedName ::= SET SIZE (1..MAX) OF AttributeTypeAndValue
// AttributeTypeAndValue ::= SEQUENCE { type OID, value ANY }
// definitions from RFC 5280 §4.1.2.4, in the teacher's style of
// hand-written asn1-tagged structs mirroring the spec text directly.
//
// The "SET" suffix on rawRDNSET is not cosmetic: encoding/asn1 special-cases
// slice type names ending in "SET" to expect a SET tag rather than SEQUENCE,
// the same mechanism crypto/x509/pkix.RelativeDistinguishedNameSET relies
// on (and which the teacher's own import of pkix.RDNSequence depends on).
type rawAttributeTypeAndValue struct {
	Type  asn1.ObjectIdentifier
	Value asn1.RawValue
}

type rawRDNSET []rawAttributeTypeAndValue

// decodeDN decodes a raw DER Name (an RDNSequence) into a DistinguishedName.
func decodeDN(der []byte) (DistinguishedName, error) {
	var rdnSeq []rawRDNSET
	if _, err := asn1.Unmarshal(der, &rdnSeq); err != nil {
		return DistinguishedName{}, err
	}

	dn := DistinguishedName{Raw: der}
	for _, raw := range rdnSeq {
		var rdn RDN
		for _, atv := range raw {
			av, err := decodeAttributeValue(atv)
			if err != nil {
				return DistinguishedName{}, err
			}
			rdn = append(rdn, av)
		}
		dn.RDNs = append(dn.RDNs, rdn)
	}
	return dn, nil
}

func decodeAttributeValue(atv rawAttributeTypeAndValue) (AttributeValue, error) {
	av := AttributeValue{Type: atv.Type, RawTag: atv.Value.Tag}
	switch atv.Value.Tag {
	case 19: // PrintableString
		av.StringType = "PrintableString"
	case 12: // UTF8String
		av.StringType = "UTF8String"
	case 20: // T61String/TeletexString
		av.StringType = "T61String"
	case 22: // IA5String
		av.StringType = "IA5String"
	case 30: // BMPString
		av.StringType = "BMPString"
	case 27: // UniversalString
		av.StringType = "UniversalString"
	default:
		av.StringType = "Unknown"
	}
	var s string
	if _, err := asn1.Unmarshal(atv.Value.FullBytes, &s); err == nil {
		av.Value = s
	} else {
		av.Value = string(atv.Value.Bytes)
	}
	return av, nil
}
