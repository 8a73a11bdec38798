package judgement

// Code registry. This is the closed, version-stable catalog spec.md §6
// requires: every code any analyzer emits is declared here exactly once.
// Adding a code is an additive change; renaming one is breaking.
const (
	// --- DER / ASN.1 layer ---
	CertInvalidDER          Code = "Cert_Invalid_DER"
	CertPubkeyInvalidDER    Code = "Cert_Pubkey_Invalid_DER"
	CertTrailingData        Code = "Cert_TrailingData"
	CertExtensionsEmptySeq  Code = "Cert_Extensions_EmptySequence"

	// --- certificate body ---
	CertSerialNegative            Code = "Cert_Serial_Negative"
	CertSerialZero                Code = "Cert_Serial_Zero"
	CertSerialMalformed            Code = "Cert_Serial_Malformed"
	CertValidityNotYetValid       Code = "Cert_Validity_NotYetValid"
	CertValidityExpired           Code = "Cert_Validity_Expired"
	CertValidityMalformed          Code = "Cert_Validity_Malformed"
	CertSignatureAlgorithmMismatch Code = "Cert_SignatureAlgorithm_Mismatch"
	CertDNEmpty                    Code = "Cert_DN_Empty"
	CertDNNameUnusuallyFormatted   Code = "Cert_DN_Name_UnusuallyFormatted"
	CertDNCountryNotPrintableStr   Code = "Cert_DN_Country_NotPrintableString"
	CertUniqueIDForbiddenInV1      Code = "Cert_UniqueID_ForbiddenInV1"
	CertUniqueIDForbiddenInV3CA    Code = "Cert_UniqueID_ForbiddenInV3CA"
	CertUniqueIDImpliesV2          Code = "Cert_UniqueID_ImpliesV2"

	// --- RSA ---
	PublicKeyRSAModulusNegative    Code = "PublicKey_RSA_Modulus_Negative"
	PublicKeyRSAExponentNegative   Code = "PublicKey_RSA_Exponent_Negative"
	PublicKeyRSAModulusPrime       Code = "PublicKey_RSA_Modulus_Prime"
	PublicKeyRSAModulusFactorable  Code = "PublicKey_RSA_Modulus_Factorable"
	PublicKeyRSAModulusSmallFactor Code = "PublicKey_RSA_Modulus_SmallFactor"
	PublicKeyRSAModulusCompromised Code = "PublicKey_RSA_Modulus_Compromised"
	PublicKeyRSAModulusLength      Code = "PublicKey_RSA_Modulus_Length"
	PublicKeyRSAModulusBitBias     Code = "PublicKey_RSA_Modulus_BitBiasPresent"
	PublicKeyRSAExponentOne        Code = "PublicKey_RSA_Exponent_One"
	PublicKeyRSAExponentSmall      Code = "PublicKey_RSA_Exponent_Small"
	PublicKeyRSAExponentCommon     Code = "PublicKey_RSA_Exponent_Common"
	PublicKeyRSAExponentUnusual    Code = "PublicKey_RSA_Exponent_Unusual"
	PublicKeyRSAExponentLarge      Code = "PublicKey_RSA_Exponent_Large"
	PublicKeyRSAParametersMissing  Code = "PublicKey_RSA_Parameters_Missing"
	PublicKeyRSAParametersNotNull  Code = "PublicKey_RSA_Parameters_NotNull"

	// --- RSA-PSS ---
	PublicKeyRSAPSSParametersMalformed Code = "PublicKey_RSAPSS_Parameters_Malformed"
	PublicKeyRSAPSSUnsupportedHash     Code = "PublicKey_RSAPSS_UnsupportedHash"
	PublicKeyRSAPSSUnsupportedMGF      Code = "PublicKey_RSAPSS_UnsupportedMGF"
	SignatureAlgorithmMismatch         Code = "Signature_Algorithm_Mismatch"
	PublicKeyRSAPSSNoSaltUsed          Code = "PublicKey_RSAPSS_NoSaltUsed"
	PublicKeyRSAPSSShortSaltUsed       Code = "PublicKey_RSAPSS_ShortSaltUsed"
	PublicKeyRSAPSSUnknownTrailerField Code = "PublicKey_RSAPSS_UnknownTrailerField"

	// --- DSA ---
	PublicKeyDSAPNotPrime             Code = "PublicKey_DSA_P_NotPrime"
	PublicKeyDSAQNotPrime             Code = "PublicKey_DSA_Q_NotPrime"
	PublicKeyDSAPMinusOneNotDivByQ    Code = "PublicKey_DSA_PMinusOneNotDivisibleByQ"
	PublicKeyDSAGOutOfRange           Code = "PublicKey_DSA_G_OutOfRange"
	PublicKeyDSAGOrderInvalid         Code = "PublicKey_DSA_G_OrderInvalid"
	PublicKeyDSABitBias               Code = "PublicKey_DSA_BitBiasPresent"
	PublicKeyDSAUncommonParamSizes    Code = "PublicKey_DSA_UncommonParameterSizes"
	PublicKeyDSASecurityLevel         Code = "PublicKey_DSA_SecurityLevel"

	// --- ECDSA / EdDSA ---
	PublicKeyPointNotOnCurve           Code = "PublicKey_ECC_PublicKeyPoint_NotOnCurve"
	PublicKeyECCPublicKeyIsGenerator   Code = "PublicKey_ECC_PublicKeyIsGenerator"
	PublicKeyECCBitBias                Code = "PublicKey_ECC_BitBiasPresent"
	PublicKeyECCKoblitzCurve           Code = "PublicKey_ECC_KoblitzCurve"
	PublicKeyECCExplicitCurveParams    Code = "PublicKey_ECC_ExplicitCurveParameters"
	PublicKeyECCExplicitCurveMalformed Code = "PublicKey_ECC_ExplicitCurve_Malformed"
	PublicKeyECCUnknownNamedCurve      Code = "PublicKey_ECC_UnknownNamedCurve"
	SignatureECDSAMalformedUndecodable Code = "Signature_ECDSA_Malformed_Undecodable"
	SignatureECDSABitBias              Code = "Signature_ECDSA_BitBiasPresent"
	PublicKeyEdDSABadEncodedLength     Code = "PublicKey_EdDSA_InvalidEncodedLength"
	PublicKeyEdDSALowOrderPoint        Code = "PublicKey_EdDSA_LowOrderPoint"
	PublicKeyECCSecurityLevel          Code = "PublicKey_ECC_SecurityLevel"

	// --- extension-set level ---
	ExtensionDuplicate       Code = "Extension_Duplicate"
	ExtensionUnknownCritical Code = "Extension_UnknownCritical"
	ExtensionMalformed       Code = "Extension_Malformed"

	// --- BasicConstraints ---
	BasicConstraintsMissing                   Code = "BasicConstraints_Missing"
	BasicConstraintsNotCritical                Code = "BasicConstraints_NotCritical"
	BasicConstraintsPathLenWithoutCA           Code = "BasicConstraints_PathLenWithoutCA"
	BasicConstraintsPathLenWithoutKeyCertSign  Code = "BasicConstraints_PathLenWithoutKeyCertSign"

	// --- KeyUsage ---
	KeyUsageEmpty                 Code = "KeyUsage_Empty"
	KeyUsageTrailingZeroBits      Code = "KeyUsage_TrailingZeroBits"
	KeyUsageNotCritical            Code = "KeyUsage_NotCritical"
	KeyUsageKeyCertSignWithoutCA  Code = "KeyUsage_KeyCertSignWithoutCA"
	KeyUsageMissingInCA            Code = "KeyUsage_MissingInCA"

	// --- ExtendedKeyUsage ---
	ExtendedKeyUsageEmpty          Code = "ExtendedKeyUsage_Empty"
	ExtendedKeyUsageDuplicateOID  Code = "ExtendedKeyUsage_DuplicateOID"
	ExtendedKeyUsageAnyEKUCritical Code = "ExtendedKeyUsage_AnyEKU_Critical"

	// --- SAN / IAN ---
	SubjectAltNameEmpty                      Code = "SubjectAltName_Empty"
	SubjectAltNameNotCriticalEmptySubject     Code = "SubjectAltName_NotCriticalWithEmptySubject"
	SubjectAltNameEmailOnlyNonEmptySubject     Code = "SubjectAltName_EmailOnlyWithNonEmptySubject"
	SubjectAltNameBadDNSNameNotLDH            Code = "SubjectAltName_BadDNSName_NotLDH"
	SubjectAltNameBadDNSNameUnderscore        Code = "SubjectAltName_BadDNSName_UnderscoreCharacter"
	SubjectAltNameBadDNSNameSpace             Code = "SubjectAltName_BadDNSName_SpaceCharacter"
	SubjectAltNameBadDNSNameAsIPv4            Code = "SubjectAltName_BadDNSName_AsIPv4Address"
	SubjectAltNameBadWildcardNotLeftmost      Code = "SubjectAltName_BadWildcardDomain_NotLeftmost"
	SubjectAltNameBadIPAddressLength          Code = "SubjectAltName_BadIPAddress_Length"
	SubjectAltNameBadURIScheme                Code = "SubjectAltName_BadURI_Scheme"

	// --- SKI / AKI ---
	SubjectKeyIdentifierOtherHash    Code = "SubjectKeyIdentifier_OtherHash"
	SubjectKeyIdentifierArbitrary    Code = "SubjectKeyIdentifier_Arbitrary"
	SubjectKeyIdentifierBadLength    Code = "SubjectKeyIdentifier_BadLength"
	AuthorityKeyIdentifierCritical   Code = "AuthorityKeyIdentifier_Critical"
	AuthorityKeyIdentifierSerialNoName Code = "AuthorityKeyIdentifier_SerialWithoutName"
	AuthorityKeyIdentifierNameNoSerial Code = "AuthorityKeyIdentifier_NameWithoutSerial"

	// --- CertificatePolicies ---
	CertificatePoliciesDuplicateOID        Code = "CertificatePolicies_DuplicateOID"
	CertificatePoliciesAnyPolicyBadQualifier Code = "CertificatePolicies_AnyPolicy_UnknownQualifier"
	CertificatePoliciesCPSUriNotURI        Code = "CertificatePolicies_CPSUri_NotURI"
	CertificatePoliciesUserNoticeBadEncoding Code = "CertificatePolicies_UserNotice_BadEncoding"
	CertificatePoliciesUserNoticeTooLong    Code = "CertificatePolicies_UserNotice_TooLong"
	CertificatePoliciesUserNoticeControlChar Code = "CertificatePolicies_UserNotice_ControlCharacter"
	CertificatePoliciesNoticeRefDiscouraged Code = "CertificatePolicies_NoticeRef_Discouraged"

	// --- CRLDistributionPoints ---
	CRLDistributionPointsCritical             Code = "CRLDistributionPoints_Critical"
	CRLDistributionPointsReasonsOnly          Code = "CRLDistributionPoints_ReasonsOnly"
	CRLDistributionPointsURLBadSuffix         Code = "CRLDistributionPoints_URL_BadSuffix"
	CRLDistributionPointsLDAPURLMalformed     Code = "CRLDistributionPoints_LDAPURL_Malformed"
	CRLDistributionPointsNoFullReasonCoverage Code = "CRLDistributionPoints_NoFullReasonCoverage"
	CRLDistributionPointsNameRelDiscouraged   Code = "CRLDistributionPoints_NameRelativeToIssuer_Discouraged"
	CRLDistributionPointsNameRelForbidden     Code = "CRLDistributionPoints_NameRelativeToIssuer_Forbidden"

	// --- NameConstraints ---
	NameConstraintsNotCritical       Code = "NameConstraints_NotCritical"
	NameConstraintsInNonCACertificate Code = "NameConstraints_InNonCACertificate"

	// --- CT SCT ---
	CTSCTsMalformed                Code = "CertificateTransparencySCTs_Malformed"
	CTSCTInvalidVersion            Code = "CertificateTransparencySCTs_SCT_InvalidVersion"
	CTSCTInvalidHashFunction       Code = "CertificateTransparencySCTs_SCT_InvalidHashFunction"
	CTSCTInvalidSignatureAlgorithm Code = "CertificateTransparencySCTs_SCT_InvalidSignatureAlgorithm"
	CTSCTImplausibleTimestamp      Code = "CertificateTransparencySCTs_SCT_ImplausibleTimestamp"

	// --- CT precert poison ---
	CTPoisonNotCritical      Code = "CertificateTransparencyPoison_NotCritical"
	CTPoisonPayloadNotNull   Code = "CertificateTransparencyPoison_PayloadNotNull"
	CTPoisonPresent          Code = "CertificateTransparencyPoison_Present"

	// --- CA relationship ---
	CARelationshipSubjectIssuerMatch        Code = "CA_Relationship_SubjectIssuerMatch"
	CARelationshipSubjectIssuerMismatch     Code = "CA_Relationship_SubjectIssuerMismatch"
	CARelationshipIssuerNotCA               Code = "CA_Relationship_IssuerNotCA"
	CARelationshipSignatureVerifySuccess    Code = "CA_Relationship_SignatureVerificationSuccess"
	CARelationshipSignatureVerifyFailure    Code = "CA_Relationship_SignatureVerificationFailure"
	CARelationshipAKIKeyIDMatch             Code = "CA_Relationship_AKI_KeyIDMatch"
	CARelationshipAKIKeyIDMismatch          Code = "CA_Relationship_AKI_KeyIDMismatch"
	CARelationshipAKISerialMatch            Code = "CA_Relationship_AKI_SerialMatch"
	CARelationshipAKISerialMismatch         Code = "CA_Relationship_AKI_SerialMismatch"
	CARelationshipAKIIssuerNameMatch        Code = "CA_Relationship_AKI_IssuerNameMatch"
	CARelationshipAKIIssuerNameMismatch     Code = "CA_Relationship_AKI_IssuerNameMismatch"
	CARelationshipValidityFullOverlap       Code = "CA_Relationship_Validity_FullOverlap"
	CARelationshipValidityPartialOverlap    Code = "CA_Relationship_Validity_PartialOverlap"
	CARelationshipValidityNoOverlap         Code = "CA_Relationship_Validity_NoOverlap"
	CARelationshipValidityTimestampMalformed Code = "CA_Relationship_Validity_TimestampMalformed"

	// --- purpose ---
	CertPurposeTLSServerKeyUsageMissing Code = "Cert_Purpose_TLSServer_KeyUsageMissing"
	CertPurposeTLSServerEKUMissing      Code = "Cert_Purpose_TLSServer_EKUMissing"
	CertPurposeTLSClientKeyUsageMissing Code = "Cert_Purpose_TLSClient_KeyUsageMissing"
	CertPurposeTLSClientEKUMissing      Code = "Cert_Purpose_TLSClient_EKUMissing"
	CertPurposeCABasicConstraintsMissing Code = "Cert_Purpose_CA_BasicConstraintsMissing"
	CertPurposeCAKeyUsageMissing        Code = "Cert_Purpose_CA_KeyUsageMissing"
	CertHostnameMatch                  Code = "Cert_Hostname_Match"
	CertHostnameNoMatch                Code = "Cert_Hostname_NoMatch"
	CertCNMatchMultiValueRDN           Code = "Cert_CN_Match_MultiValue_RDN"
	CertUnexpectedlyCA                 Code = "Cert_Unexpectedly_CA"
	CertUnexpectedlyNotCA              Code = "Cert_Unexpectedly_NotCA"
)
