package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/employerapp/api/internal/models"
)

type CreateUserParams struct {
	Username       string
	Email          string
	HashedPassword string
}

// User repository interface
type UserRepo interface {
	// Create user
	// If user with the username or email exists already has to return apperrors.ErrUserAlreadyExists
	CreateUser(ctx context.Context, arg CreateUserParams) (models.User, error)

	// Get user by its id or email
	// If user not found must return apperrors.ErrUserNotFound
	GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
}

// RefreshToken repository interface
type RefreshTokenRepo interface {
	// Save token in repository
	Save(ctx context.Context, token models.RefreshToken) (models.RefreshToken, error)

	// Delete the token owned by the user and return it
	// Deleting is how a token is consumed: the second caller with the same
	// token must get apperrors.ErrRefreshTokenNotFound
	Consume(ctx context.Context, userID uuid.UUID, tokenString string) (models.RefreshToken, error)

	// Delete every token owned by the user, return number of deleted tokens
	DeleteForUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type CreateEmployeeParams struct {
	FirstName   string
	LastName    string
	MiddleName  string
	Email       string
	Phone       string
	DateOfBirth *time.Time
}

// Employee repository interface
type EmployeeRepo interface {
	CreateEmployee(ctx context.Context, arg CreateEmployeeParams) (models.Employee, error)

	// Get or update by id
	// If employee not found must return apperrors.ErrEmployeeNotFound
	GetEmployee(ctx context.Context, id uuid.UUID) (models.Employee, error)
	UpdateEmployee(ctx context.Context, id uuid.UUID, arg CreateEmployeeParams) (models.Employee, error)
	DeleteEmployee(ctx context.Context, id uuid.UUID) error

	// List all employees, or only ones matching the search query
	// Matches against names, email and phone, substring match
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	SearchEmployees(ctx context.Context, query string) ([]models.Employee, error)
}

// DocumentType repository interface
type DocumentTypeRepo interface {
	CreateDocumentType(ctx context.Context, typeName string) (models.DocumentType, error)

	// If type not found must return apperrors.ErrDocumentTypeNotFound
	GetDocumentType(ctx context.Context, id uuid.UUID) (models.DocumentType, error)
	UpdateDocumentType(ctx context.Context, id uuid.UUID, typeName string) (models.DocumentType, error)

	// Delete must refuse with apperrors.ErrDocumentTypeInUse while any
	// employee document still references the type
	DeleteDocumentType(ctx context.Context, id uuid.UUID) error

	// List types ordered by type name
	ListDocumentTypes(ctx context.Context) ([]models.DocumentType, error)
}

type CreateDocumentParams struct {
	EmployeeID     uuid.UUID
	DocumentTypeID uuid.UUID
	DocumentName   string
	FileData       []byte
	MimeType       string
}

// EmployeeDocument repository interface
type DocumentRepo interface {
	CreateDocument(ctx context.Context, arg CreateDocumentParams) (models.EmployeeDocument, error)

	// Get document with file bytes
	// If document not found must return apperrors.ErrDocumentNotFound
	GetDocument(ctx context.Context, id uuid.UUID) (models.EmployeeDocument, error)
	DeleteDocument(ctx context.Context, id uuid.UUID) error

	// List document metadata (no file bytes) for the employee, newest first
	ListEmployeeDocuments(ctx context.Context, employeeID uuid.UUID) ([]models.EmployeeDocument, error)
}

// Storage bundles repositories working over the same connection or transaction
type Storage interface {
	User() UserRepo
	Refresh() RefreshTokenRepo
	Employee() EmployeeRepo
	DocumentType() DocumentTypeRepo
	Document() DocumentRepo

	// Run fn with storage bound to one transaction
	// Commit if fn returns nil, rollback otherwise
	InTx(ctx context.Context, fn func(Storage) error) error
}
