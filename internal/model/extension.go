package model

import "encoding/asn1"

// Extension is the generic, OID-tagged extension container (spec §3): the
// handler-specific payload is decoded downstream by internal/extensions,
// which keeps the Registry-by-OID (design notes §1) out of this package so
// internal/model has no dependency on the analyzer layer.
type Extension struct {
	OID      asn1.ObjectIdentifier
	Critical bool
	Value    []byte // raw OCTET STRING content, undecoded
}

// rawExtension mirrors RFC 5280 §4.1.2.9's Extension SEQUENCE.
type rawExtension struct {
	ID       asn1.ObjectIdentifier
	Critical bool `asn1:"optional,default:false"`
	Value    []byte
}

func decodeExtensions(der []byte) ([]Extension, bool, error) {
	if len(der) == 0 {
		// No extensions bytes at all. An extensions SEQUENCE that is
		// present but empty (spec.md §9b) takes the path below instead: it
		// decodes to zero entries and is reported via the emptySeq return.
		return nil, false, nil
	}
	var raws []rawExtension
	if _, err := asn1.Unmarshal(der, &raws); err != nil {
		return nil, false, err
	}
	exts := make([]Extension, 0, len(raws))
	for _, r := range raws {
		exts = append(exts, Extension{OID: r.ID, Critical: r.Critical, Value: r.Value})
	}
	return exts, len(exts) == 0, nil
}
