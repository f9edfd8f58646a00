package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/employerapp/api/internal/apperrors"
	"github.com/employerapp/api/internal/models"
	"github.com/employerapp/api/internal/repository"
)

type DocumentRepo struct {
	DB DBTX
}

const createDocument = `-- name: CreateEmployeeDocument
INSERT INTO employee_documents (id, employee_id, document_type_id, document_name, file_data, file_size, mime_type)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, employee_id, document_type_id, document_name, file_data, file_size, mime_type, created_at,
          (SELECT type_name FROM document_types WHERE id = $3)
`

func (r *DocumentRepo) CreateDocument(ctx context.Context, arg repository.CreateDocumentParams) (models.EmployeeDocument, error) {
	rows, _ := r.DB.Query(ctx, createDocument,
		uuid.New(), arg.EmployeeID, arg.DocumentTypeID, arg.DocumentName, arg.FileData, len(arg.FileData), arg.MimeType)
	doc, err := pgx.CollectOneRow(rows, rowToDocument)
	if err != nil {
		return doc, fmt.Errorf("db error: %w", err)
	}
	return doc, nil
}

const getDocument = `-- name: GetEmployeeDocument
SELECT d.id, d.employee_id, d.document_type_id, d.document_name, d.file_data, d.file_size, d.mime_type, d.created_at,
       t.type_name
FROM employee_documents d
JOIN document_types t ON t.id = d.document_type_id
WHERE d.id = $1
`

func (r *DocumentRepo) GetDocument(ctx context.Context, id uuid.UUID) (models.EmployeeDocument, error) {
	rows, _ := r.DB.Query(ctx, getDocument, id)
	doc, err := pgx.CollectOneRow(rows, rowToDocument)

	switch {
	case err == nil:
		return doc, nil
	case errors.Is(err, pgx.ErrNoRows):
		return doc, apperrors.ErrDocumentNotFound
	default:
		return doc, fmt.Errorf("db error: %w", err)
	}
}

const deleteDocument = `-- name: DeleteEmployeeDocument
DELETE FROM employee_documents
WHERE id = $1
`

func (r *DocumentRepo) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	tag, err := r.DB.Exec(ctx, deleteDocument, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrDocumentNotFound
	}
	return nil
}

const listEmployeeDocuments = `-- name: ListEmployeeDocuments
SELECT d.id, d.employee_id, d.document_type_id, d.document_name, d.file_size, d.mime_type, d.created_at,
       t.type_name
FROM employee_documents d
JOIN document_types t ON t.id = d.document_type_id
WHERE d.employee_id = $1
ORDER BY d.created_at DESC
`

// ListEmployeeDocuments returns document metadata without loading file bytes
func (r *DocumentRepo) ListEmployeeDocuments(ctx context.Context, employeeID uuid.UUID) ([]models.EmployeeDocument, error) {
	rows, _ := r.DB.Query(ctx, listEmployeeDocuments, employeeID)
	docs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.EmployeeDocument, error) {
		var d models.EmployeeDocument
		err := row.Scan(&d.ID, &d.EmployeeID, &d.DocumentTypeID, &d.DocumentName, &d.FileSize, &d.MimeType,
			&d.CreatedAt, &d.DocumentTypeName)
		return d, err
	})
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return docs, nil
}

func rowToDocument(row pgx.CollectableRow) (models.EmployeeDocument, error) {
	var d models.EmployeeDocument
	err := row.Scan(&d.ID, &d.EmployeeID, &d.DocumentTypeID, &d.DocumentName, &d.FileData, &d.FileSize, &d.MimeType,
		&d.CreatedAt, &d.DocumentTypeName)
	return d, err
}
