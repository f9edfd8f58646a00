package document

import (
	"context"

	"github.com/google/uuid"

	"github.com/employerapp/api/internal/apperrors"
	"github.com/employerapp/api/internal/models"
	"github.com/employerapp/api/internal/repository"
)

// Uploaded files are stored in the database row, so their size is capped
const MaxFileSize = 10 << 20 // 10 MiB

// Document service: document types and uploaded employee documents
type DocumentService struct {
	storage repository.Storage
}

func NewService(storage repository.Storage) *DocumentService {
	return &DocumentService{storage: storage}
}

func (s *DocumentService) CreateType(ctx context.Context, typeName string) (models.DocumentType, error) {
	return s.storage.DocumentType().CreateDocumentType(ctx, typeName)
}

func (s *DocumentService) GetType(ctx context.Context, id uuid.UUID) (models.DocumentType, error) {
	return s.storage.DocumentType().GetDocumentType(ctx, id)
}

func (s *DocumentService) UpdateType(ctx context.Context, id uuid.UUID, typeName string) (models.DocumentType, error) {
	return s.storage.DocumentType().UpdateDocumentType(ctx, id, typeName)
}

func (s *DocumentService) DeleteType(ctx context.Context, id uuid.UUID) error {
	return s.storage.DocumentType().DeleteDocumentType(ctx, id)
}

func (s *DocumentService) ListTypes(ctx context.Context) ([]models.DocumentType, error) {
	return s.storage.DocumentType().ListDocumentTypes(ctx)
}

// Upload stores the file with the employee record
// The employee and the document type must exist, the file must not be empty
// and must fit MaxFileSize
func (s *DocumentService) Upload(ctx context.Context, arg repository.CreateDocumentParams) (models.EmployeeDocument, error) {
	switch {
	case len(arg.FileData) == 0:
		return models.EmployeeDocument{}, apperrors.ErrDocumentEmpty
	case len(arg.FileData) > MaxFileSize:
		return models.EmployeeDocument{}, apperrors.ErrDocumentTooLarge
	}

	if _, err := s.storage.Employee().GetEmployee(ctx, arg.EmployeeID); err != nil {
		return models.EmployeeDocument{}, err
	}

	if _, err := s.storage.DocumentType().GetDocumentType(ctx, arg.DocumentTypeID); err != nil {
		return models.EmployeeDocument{}, err
	}

	return s.storage.Document().CreateDocument(ctx, arg)
}

func (s *DocumentService) Get(ctx context.Context, id uuid.UUID) (models.EmployeeDocument, error) {
	return s.storage.Document().GetDocument(ctx, id)
}

func (s *DocumentService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.storage.Document().DeleteDocument(ctx, id)
}

func (s *DocumentService) ListForEmployee(ctx context.Context, employeeID uuid.UUID) ([]models.EmployeeDocument, error) {
	return s.storage.Document().ListEmployeeDocuments(ctx, employeeID)
}
