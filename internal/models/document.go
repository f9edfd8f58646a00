package models

import (
	"time"

	"github.com/google/uuid"
)

type DocumentType struct {
	ID        uuid.UUID
	TypeName  string
	CreatedAt time.Time

	// Number of employee documents of the type
	DocumentsCount int
}

type EmployeeDocument struct {
	ID             uuid.UUID
	EmployeeID     uuid.UUID
	DocumentTypeID uuid.UUID
	DocumentName   string
	FileData       []byte
	FileSize       int
	MimeType       string
	CreatedAt      time.Time

	// Name of the referenced document type, filled by join queries
	DocumentTypeName string
}
