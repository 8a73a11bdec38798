// Package oid is the bidirectional name<->OID registry: extension, key,
// hash, signature, and policy-qualifier object identifiers.
//
// The table shape — a package-level slice of small structs, looked up by
// linear scan — is the teacher's own idiom (go.step.sm/ocsp's
// signatureAlgorithmDetails and hashOIDs). A map would be faster, but the
// teacher favors a slice-of-structs it can also iterate in order, and the
// registry here is tiny enough that scan cost is irrelevant.
package oid

import "encoding/asn1"

// Entry associates a human name with an OID in the registry.
type Entry struct {
	Name string
	OID  asn1.ObjectIdentifier
}

var registry = []Entry{
	// Extensions (RFC 5280 §4.2).
	{"subjectKeyIdentifier", asn1.ObjectIdentifier{2, 5, 29, 14}},
	{"keyUsage", asn1.ObjectIdentifier{2, 5, 29, 15}},
	{"subjectAltName", asn1.ObjectIdentifier{2, 5, 29, 17}},
	{"issuerAltName", asn1.ObjectIdentifier{2, 5, 29, 18}},
	{"basicConstraints", asn1.ObjectIdentifier{2, 5, 29, 19}},
	{"nameConstraints", asn1.ObjectIdentifier{2, 5, 29, 30}},
	{"crlDistributionPoints", asn1.ObjectIdentifier{2, 5, 29, 31}},
	{"certificatePolicies", asn1.ObjectIdentifier{2, 5, 29, 32}},
	{"authorityKeyIdentifier", asn1.ObjectIdentifier{2, 5, 29, 35}},
	{"extKeyUsage", asn1.ObjectIdentifier{2, 5, 29, 37}},
	{"freshestCRL", asn1.ObjectIdentifier{2, 5, 29, 46}},
	{"authorityInfoAccess", asn1.ObjectIdentifier{1, 3, 6, 1, 5, 5, 7, 1, 1}},
	{"subjectInfoAccess", asn1.ObjectIdentifier{1, 3, 6, 1, 5, 5, 7, 1, 11}},
	{"ctPrecertificatePoison", asn1.ObjectIdentifier{1, 3, 6, 1, 4, 1, 11129, 2, 4, 3}},
	{"ctSignedCertificateTimestampList", asn1.ObjectIdentifier{1, 3, 6, 1, 4, 1, 11129, 2, 4, 2}},

	// id-pe-/id-qt- policy qualifiers.
	{"id-qt-cps", asn1.ObjectIdentifier{1, 3, 6, 1, 5, 5, 7, 2, 1}},
	{"id-qt-unotice", asn1.ObjectIdentifier{1, 3, 6, 1, 5, 5, 7, 2, 2}},
	{"anyPolicy", asn1.ObjectIdentifier{2, 5, 29, 32, 0}},

	// Extended key usages (RFC 5280 §4.2.1.12).
	{"anyExtendedKeyUsage", asn1.ObjectIdentifier{2, 5, 29, 37, 0}},
	{"serverAuth", asn1.ObjectIdentifier{1, 3, 6, 1, 5, 5, 7, 3, 1}},
	{"clientAuth", asn1.ObjectIdentifier{1, 3, 6, 1, 5, 5, 7, 3, 2}},
	{"codeSigning", asn1.ObjectIdentifier{1, 3, 6, 1, 5, 5, 7, 3, 3}},
	{"emailProtection", asn1.ObjectIdentifier{1, 3, 6, 1, 5, 5, 7, 3, 4}},
	{"ocspSigning", asn1.ObjectIdentifier{1, 3, 6, 1, 5, 5, 7, 3, 9}},

	// Public key algorithms.
	{"rsaEncryption", asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 1}},
	{"rsassaPss", asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 10}},
	{"dsaEncryption", asn1.ObjectIdentifier{1, 2, 840, 10040, 4, 1}},
	{"ecPublicKey", asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}},
	{"ed25519", asn1.ObjectIdentifier{1, 3, 101, 112}},
	{"ed448", asn1.ObjectIdentifier{1, 3, 101, 113}},
	{"mgf1", asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 8}},

	// Signature algorithms.
	{"sha1WithRSAEncryption", asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 5}},
	{"sha256WithRSAEncryption", asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 11}},
	{"sha384WithRSAEncryption", asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 12}},
	{"sha512WithRSAEncryption", asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 13}},
	{"dsaWithSha1", asn1.ObjectIdentifier{1, 2, 840, 10040, 4, 3}},
	{"dsaWithSha256", asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 3, 2}},
	{"ecdsaWithSha1", asn1.ObjectIdentifier{1, 2, 840, 10045, 4, 1}},
	{"ecdsaWithSha256", asn1.ObjectIdentifier{1, 2, 840, 10045, 4, 3, 2}},
	{"ecdsaWithSha384", asn1.ObjectIdentifier{1, 2, 840, 10045, 4, 3, 3}},
	{"ecdsaWithSha512", asn1.ObjectIdentifier{1, 2, 840, 10045, 4, 3, 4}},

	// Hash functions.
	{"sha1", asn1.ObjectIdentifier{1, 3, 14, 3, 2, 26}},
	{"sha224", asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 4}},
	{"sha256", asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 1}},
	{"sha384", asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 2}},
	{"sha512", asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 3}},
	{"sha3-256", asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 8}},
	{"sha3-384", asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 9}},
	{"sha3-512", asn1.ObjectIdentifier{2, 16, 840, 1, 101, 3, 4, 2, 10}},
	{"md5", asn1.ObjectIdentifier{1, 2, 840, 113549, 2, 5}},

	// Named elliptic curves (RFC 5480 / SEC2). The curve database in
	// internal/curve carries parameters for all of these except sect283r1.
	{"prime256v1", asn1.ObjectIdentifier{1, 2, 840, 10045, 3, 1, 7}},
	{"secp384r1", asn1.ObjectIdentifier{1, 3, 132, 0, 34}},
	{"secp521r1", asn1.ObjectIdentifier{1, 3, 132, 0, 35}},
	{"secp224r1", asn1.ObjectIdentifier{1, 3, 132, 0, 33}},
	{"secp256k1", asn1.ObjectIdentifier{1, 3, 132, 0, 10}},
	{"sect283r1", asn1.ObjectIdentifier{1, 3, 132, 0, 17}},
}

// Name returns the registered name for an OID, or ok=false if unknown.
func Name(id asn1.ObjectIdentifier) (string, bool) {
	for _, e := range registry {
		if e.OID.Equal(id) {
			return e.Name, true
		}
	}
	return "", false
}

// ByName returns the OID registered under name, or ok=false if unknown.
func ByName(name string) (asn1.ObjectIdentifier, bool) {
	for _, e := range registry {
		if e.Name == name {
			return e.OID, true
		}
	}
	return nil, false
}

// MustByName is a test/init-time helper; it panics if name is unregistered.
func MustByName(name string) asn1.ObjectIdentifier {
	id, ok := ByName(name)
	if !ok {
		panic("oid: unregistered name " + name)
	}
	return id
}
