package models

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID          uuid.UUID
	FirstName   string
	LastName    string
	MiddleName  string
	Email       string
	Phone       string
	DateOfBirth *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Number of documents uploaded for the employee
	// Filled by queries that join employee_documents
	DocumentsCount int
}

// FullName renders "First [Middle] Last" skipping the middle name if empty
func (e Employee) FullName() string {
	if e.MiddleName == "" {
		return e.FirstName + " " + e.LastName
	}
	return e.FirstName + " " + e.MiddleName + " " + e.LastName
}
