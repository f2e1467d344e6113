package types

type DocumentType string

const (
	DocumentTypeInsurance      DocumentType = "insurance"
	DocumentTypeLicense        DocumentType = "license"
	DocumentTypeRoadworthiness DocumentType = "roadworthiness"
	DocumentTypeEmission       DocumentType = "emission"
	DocumentTypeRegistration   DocumentType = "registration"
	// DocumentTypeOther requires Document.CustomName to be set.
	DocumentTypeOther DocumentType = "other"
)

type DocumentStatus string

const (
	DocumentStatusValid    DocumentStatus = "valid"
	DocumentStatusExpiring DocumentStatus = "expiring"
	DocumentStatusExpired  DocumentStatus = "expired"
)
