package model

import (
	"encoding/asn1"
	"fmt"
	"net"
)

// GeneralNameKind tags a GeneralName's CHOICE alternative (spec §3).
type GeneralNameKind int

const (
	GeneralNameOther GeneralNameKind = iota
	GeneralNameRFC822
	GeneralNameDNS
	GeneralNameX400Address
	GeneralNameDirectory
	GeneralNameEDIParty
	GeneralNameURI
	GeneralNameIPAddress
	GeneralNameRegisteredID
)

// GeneralName is a tagged variant of the X.509 GeneralName CHOICE
// (RFC 5280 §4.2.1.6). Exactly one field is meaningful, selected by Kind.
type GeneralName struct {
	Kind GeneralNameKind

	RFC822    string
	DNS       string
	Directory DistinguishedName
	URI       string
	IPAddress net.IP
	Registered asn1.ObjectIdentifier

	// Malformed holds a decode failure for this specific GeneralName
	// (e.g. iPAddress with a length other than 4 or 16 octets). The
	// element is preserved rather than dropped, per spec §4.6.
	Malformed string
}

// generalNameTags maps the GeneralName CHOICE's implicit context tags
// (RFC 5280 §4.2.1.6) to GeneralNameKind.
const (
	tagOtherName                 = 0
	tagRFC822Name                = 1
	tagDNSName                   = 2
	tagX400Address                = 3
	tagDirectoryName              = 4
	tagEDIPartyName               = 5
	tagUniformResourceIdentifier  = 6
	tagIPAddress                  = 7
	tagRegisteredID                = 8
)

// DecodeGeneralNames decodes a GeneralNames SEQUENCE (the payload of SAN,
// IAN, and several other extensions) from raw DER. Exported for
// internal/extensions, which decodes each extension's payload itself
// (spec §3: internal/model stays free of the analyzer-layer Registry).
func DecodeGeneralNames(der []byte) ([]GeneralName, error) {
	return decodeGeneralNames(der)
}

// decodeGeneralNames decodes a GeneralNames SEQUENCE (the payload of SAN,
// IAN, and several other extensions) from raw DER.
func decodeGeneralNames(der []byte) ([]GeneralName, error) {
	var raws []asn1.RawValue
	if _, err := asn1.Unmarshal(der, &raws); err != nil {
		return nil, err
	}
	names := make([]GeneralName, 0, len(raws))
	for _, raw := range raws {
		names = append(names, decodeOneGeneralName(raw))
	}
	return names, nil
}

func decodeOneGeneralName(raw asn1.RawValue) GeneralName {
	switch raw.Tag {
	case tagRFC822Name:
		return GeneralName{Kind: GeneralNameRFC822, RFC822: string(raw.Bytes)}
	case tagDNSName:
		return GeneralName{Kind: GeneralNameDNS, DNS: string(raw.Bytes)}
	case tagDirectoryName:
		dn, err := decodeDN(raw.Bytes)
		if err != nil {
			return GeneralName{Kind: GeneralNameDirectory, Malformed: fmt.Sprintf("directoryName: %v", err)}
		}
		return GeneralName{Kind: GeneralNameDirectory, Directory: dn}
	case tagUniformResourceIdentifier:
		return GeneralName{Kind: GeneralNameURI, URI: string(raw.Bytes)}
	case tagIPAddress:
		if len(raw.Bytes) != 4 && len(raw.Bytes) != 16 {
			return GeneralName{Kind: GeneralNameIPAddress, Malformed: fmt.Sprintf("iPAddress: bad length %d", len(raw.Bytes))}
		}
		return GeneralName{Kind: GeneralNameIPAddress, IPAddress: net.IP(raw.Bytes)}
	case tagRegisteredID:
		var oid asn1.ObjectIdentifier
		rest := raw.FullBytes
		// registeredID is an implicitly-tagged OBJECT IDENTIFIER; retag it
		// to the universal OID tag (6) before reusing the stdlib OID decoder.
		retagged := append([]byte{6}, rest[1:]...)
		if _, err := asn1.Unmarshal(retagged, &oid); err != nil {
			return GeneralName{Kind: GeneralNameRegisteredID, Malformed: fmt.Sprintf("registeredID: %v", err)}
		}
		return GeneralName{Kind: GeneralNameRegisteredID, Registered: oid}
	case tagOtherName:
		return GeneralName{Kind: GeneralNameOther}
	case tagX400Address:
		return GeneralName{Kind: GeneralNameX400Address}
	case tagEDIPartyName:
		return GeneralName{Kind: GeneralNameEDIParty}
	default:
		return GeneralName{Kind: GeneralNameOther, Malformed: fmt.Sprintf("unrecognized GeneralName tag %d", raw.Tag)}
	}
}
