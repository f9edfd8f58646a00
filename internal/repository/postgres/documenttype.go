package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/employerapp/api/internal/apperrors"
	"github.com/employerapp/api/internal/models"
)

type DocumentTypeRepo struct {
	DB DBTX
}

const createDocumentType = `-- name: CreateDocumentType
INSERT INTO document_types (id, type_name)
VALUES ($1, $2)
RETURNING id, type_name, created_at, 0 AS documents_count
`

func (r *DocumentTypeRepo) CreateDocumentType(ctx context.Context, typeName string) (models.DocumentType, error) {
	rows, _ := r.DB.Query(ctx, createDocumentType, uuid.New(), typeName)
	docType, err := pgx.CollectOneRow(rows, rowToDocumentType)
	if err != nil {
		return docType, fmt.Errorf("db error: %w", err)
	}
	return docType, nil
}

const getDocumentType = `-- name: GetDocumentType
SELECT t.id, t.type_name, t.created_at, count(d.id) AS documents_count
FROM document_types t
LEFT JOIN employee_documents d ON d.document_type_id = t.id
WHERE t.id = $1
GROUP BY t.id
`

func (r *DocumentTypeRepo) GetDocumentType(ctx context.Context, id uuid.UUID) (models.DocumentType, error) {
	rows, _ := r.DB.Query(ctx, getDocumentType, id)
	docType, err := pgx.CollectOneRow(rows, rowToDocumentType)

	switch {
	case err == nil:
		return docType, nil
	case errors.Is(err, pgx.ErrNoRows):
		return docType, apperrors.ErrDocumentTypeNotFound
	default:
		return docType, fmt.Errorf("db error: %w", err)
	}
}

const updateDocumentType = `-- name: UpdateDocumentType
UPDATE document_types
SET type_name = $2
WHERE id = $1
RETURNING id, type_name, created_at, 0 AS documents_count
`

func (r *DocumentTypeRepo) UpdateDocumentType(ctx context.Context, id uuid.UUID, typeName string) (models.DocumentType, error) {
	rows, _ := r.DB.Query(ctx, updateDocumentType, id, typeName)
	docType, err := pgx.CollectOneRow(rows, rowToDocumentType)

	switch {
	case err == nil:
		return docType, nil
	case errors.Is(err, pgx.ErrNoRows):
		return docType, apperrors.ErrDocumentTypeNotFound
	default:
		return docType, fmt.Errorf("db error: %w", err)
	}
}

const deleteDocumentType = `-- name: DeleteDocumentType
DELETE FROM document_types
WHERE id = $1
`

// DeleteDocumentType removes the type unless employee documents reference it
// The FK is ON DELETE RESTRICT, so the constraint violation is the source of truth
func (r *DocumentTypeRepo) DeleteDocumentType(ctx context.Context, id uuid.UUID) error {
	tag, err := r.DB.Exec(ctx, deleteDocumentType, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return apperrors.ErrDocumentTypeInUse
		}
		return fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrDocumentTypeNotFound
	}
	return nil
}

const listDocumentTypes = `-- name: ListDocumentTypes
SELECT t.id, t.type_name, t.created_at, count(d.id) AS documents_count
FROM document_types t
LEFT JOIN employee_documents d ON d.document_type_id = t.id
GROUP BY t.id
ORDER BY t.type_name
`

func (r *DocumentTypeRepo) ListDocumentTypes(ctx context.Context) ([]models.DocumentType, error) {
	rows, _ := r.DB.Query(ctx, listDocumentTypes)
	docTypes, err := pgx.CollectRows(rows, rowToDocumentType)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return docTypes, nil
}

func rowToDocumentType(row pgx.CollectableRow) (models.DocumentType, error) {
	var t models.DocumentType
	err := row.Scan(&t.ID, &t.TypeName, &t.CreatedAt, &t.DocumentsCount)
	return t, err
}
