package extensions

import (
	"encoding/asn1"
	"encoding/binary"
	"fmt"

	"github.com/x509examine/x509examine/internal/judgement"
	"github.com/x509examine/x509examine/internal/model"
)

// ctMinPlausibleEpochMillis is 2010-01-01T00:00:00Z and ctMaxPlausibleEpochMillis
// is 2100-01-01T00:00:00Z (exclusive); together they bound the plausibility
// window an SCT timestamp must fall within.
const (
	ctMinPlausibleEpochMillis = 1262304000000
	ctMaxPlausibleEpochMillis = 4102444800000
)

// TLS HashAlgorithm values RFC 6962 §2.1.4's digitally-signed struct
// permits for an SCT signature: SHA-256 only.
var validHashAlgorithms = map[byte]bool{4: true}

// TLS SignatureAlgorithm values RFC 6962 §2.1.4 permits: RSA and ECDSA.
var validSignatureAlgorithms = map[byte]bool{1: true, 3: true}

func init() {
	register("ctSignedCertificateTimestampList", analyzeCTSCTList)
}

// analyzeCTSCTList parses the TLS-encoded SignedCertificateTimestampList
// carried inside the extension's OCTET STRING-of-OCTET STRING payload
// (RFC 6962 §3.3). ext.Value is the outer extnValue's content, i.e. the
// inner OCTET STRING; that wrapper is removed here, and a value that does
// not decode as an OCTET STRING is read as the bare opaque<1..2^16-1>
// list. No pack or ecosystem library parses this TLS presentation-language
// structure, so the decode is hand-rolled length-prefix reading, the same
// style the teacher uses for its own wire structures.
func analyzeCTSCTList(ext model.Extension, a *Analysis) {
	data := ext.Value
	var inner []byte
	if rest, err := asn1.Unmarshal(data, &inner); err == nil && len(rest) == 0 {
		data = inner
	}
	if len(data) < 2 {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.CTSCTsMalformed,
			"SignedCertificateTimestampList is too short to carry its length prefix",
			judgement.VerdictWeakSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation))
		return
	}
	listLen := int(binary.BigEndian.Uint16(data[:2]))
	body := data[2:]
	if listLen != len(body) {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.CTSCTsMalformed,
			fmt.Sprintf("SignedCertificateTimestampList declares length %d but carries %d bytes", listLen, len(body)),
			judgement.VerdictWeakSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation))
		return
	}

	for len(body) > 0 {
		sct, rest, err := readOneSCT(body)
		if err != nil {
			a.Judgements = a.Judgements.Extend(judgement.New(judgement.CTSCTsMalformed,
				"SignedCertificateTimestamp: "+err.Error(),
				judgement.VerdictWeakSecurity, judgement.HighlyUnusual, judgement.StandardsDeviation))
			return
		}
		body = rest
		validateOneSCT(sct, a)
	}
}

type signedCertificateTimestamp struct {
	version         byte
	logID           []byte
	timestampMillis uint64
	hashAlgorithm   byte
	sigAlgorithm    byte
}

func readOneSCT(data []byte) (signedCertificateTimestamp, []byte, error) {
	if len(data) < 2 {
		return signedCertificateTimestamp{}, nil, fmt.Errorf("truncated opaque length prefix")
	}
	sctLen := int(binary.BigEndian.Uint16(data[:2]))
	data = data[2:]
	if sctLen > len(data) {
		return signedCertificateTimestamp{}, nil, fmt.Errorf("declared length %d exceeds remaining %d bytes", sctLen, len(data))
	}
	sctBytes, rest := data[:sctLen], data[sctLen:]

	const fixedHeaderLen = 1 + 32 + 8
	if len(sctBytes) < fixedHeaderLen+2 {
		return signedCertificateTimestamp{}, nil, fmt.Errorf("too short for version+log_id+timestamp+extensions")
	}
	sct := signedCertificateTimestamp{
		version:         sctBytes[0],
		logID:           sctBytes[1:33],
		timestampMillis: binary.BigEndian.Uint64(sctBytes[33:41]),
	}
	rest2 := sctBytes[41:]

	extLen := int(binary.BigEndian.Uint16(rest2[:2]))
	rest2 = rest2[2:]
	if extLen > len(rest2) {
		return signedCertificateTimestamp{}, nil, fmt.Errorf("extensions length %d exceeds remaining bytes", extLen)
	}
	rest2 = rest2[extLen:]

	if len(rest2) < 2 {
		return signedCertificateTimestamp{}, nil, fmt.Errorf("truncated digitally-signed signature header")
	}
	sct.hashAlgorithm = rest2[0]
	sct.sigAlgorithm = rest2[1]
	rest2 = rest2[2:]
	if len(rest2) < 2 {
		return signedCertificateTimestamp{}, nil, fmt.Errorf("truncated signature length prefix")
	}
	sigLen := int(binary.BigEndian.Uint16(rest2[:2]))
	rest2 = rest2[2:]
	if sigLen > len(rest2) {
		return signedCertificateTimestamp{}, nil, fmt.Errorf("signature length %d exceeds remaining bytes", sigLen)
	}
	rest2 = rest2[sigLen:]
	if len(rest2) != 0 {
		return signedCertificateTimestamp{}, nil, fmt.Errorf("%d trailing bytes after a single SCT", len(rest2))
	}

	return sct, rest, nil
}

func validateOneSCT(sct signedCertificateTimestamp, a *Analysis) {
	if sct.version != 0 {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.CTSCTInvalidVersion,
			fmt.Sprintf("SCT declares version %d; only v1 (0) is defined by RFC 6962", sct.version),
			judgement.VerdictNone, judgement.HighlyUnusual, judgement.StandardsDeviation))
	}
	if !validHashAlgorithms[sct.hashAlgorithm] {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.CTSCTInvalidHashFunction,
			fmt.Sprintf("SCT signature declares unrecognized HashAlgorithm %d", sct.hashAlgorithm),
			judgement.VerdictNone, judgement.HighlyUnusual, judgement.StandardsDeviation))
	}
	if !validSignatureAlgorithms[sct.sigAlgorithm] {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.CTSCTInvalidSignatureAlgorithm,
			fmt.Sprintf("SCT signature declares unrecognized SignatureAlgorithm %d", sct.sigAlgorithm),
			judgement.VerdictNone, judgement.HighlyUnusual, judgement.StandardsDeviation))
	}
	if sct.timestampMillis < ctMinPlausibleEpochMillis || sct.timestampMillis >= ctMaxPlausibleEpochMillis {
		a.Judgements = a.Judgements.Extend(judgement.New(judgement.CTSCTImplausibleTimestamp,
			"SCT timestamp falls outside the plausible 2010-2099 range",
			judgement.VerdictNone, judgement.HighlyUnusual, judgement.StandardsDeviation))
	}
}
