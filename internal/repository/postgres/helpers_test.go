package postgres

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/employerapp/api/internal/models"
	"github.com/employerapp/api/internal/repository"
)

func mustParseTime(value string) time.Time {
	dt, err := time.Parse("2006-01-02 15:04:05Z07:00", value)
	if err != nil {
		panic(err)
	}
	return dt
}

// Fixtures for tables the tested rows reference

func createTestUser(t *testing.T, tx pgx.Tx, email string) models.User {
	t.Helper()

	repo := UserRepo{DB: tx}
	user, err := repo.CreateUser(t.Context(), repository.CreateUserParams{
		Username:       "hashed-" + email,
		Email:          email,
		HashedPassword: "not-a-real-hash",
	})
	require.NoError(t, err, "test user should be created")
	return user
}

func createTestEmployee(t *testing.T, tx pgx.Tx, firstName string, lastName string) models.Employee {
	t.Helper()

	repo := EmployeeRepo{DB: tx}
	employee, err := repo.CreateEmployee(t.Context(), repository.CreateEmployeeParams{
		FirstName: firstName,
		LastName:  lastName,
		Email:     firstName + "@corp.example",
		Phone:     "+1-555-0100",
	})
	require.NoError(t, err, "test employee should be created")
	return employee
}

func createTestDocumentType(t *testing.T, tx pgx.Tx, typeName string) models.DocumentType {
	t.Helper()

	repo := DocumentTypeRepo{DB: tx}
	docType, err := repo.CreateDocumentType(t.Context(), typeName)
	require.NoError(t, err, "test document type should be created")
	return docType
}

func createTestDocument(t *testing.T, tx pgx.Tx, employeeID uuid.UUID, typeID uuid.UUID, name string, data []byte) models.EmployeeDocument {
	t.Helper()

	repo := DocumentRepo{DB: tx}
	doc, err := repo.CreateDocument(t.Context(), repository.CreateDocumentParams{
		EmployeeID:     employeeID,
		DocumentTypeID: typeID,
		DocumentName:   name,
		FileData:       data,
		MimeType:       "application/octet-stream",
	})
	require.NoError(t, err, "test document should be created")
	return doc
}
