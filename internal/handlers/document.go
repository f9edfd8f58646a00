package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/employerapp/api/internal/apperrors"
	"github.com/employerapp/api/internal/handlers/render"
	"github.com/employerapp/api/internal/models"
	"github.com/employerapp/api/internal/repository"
	"github.com/employerapp/api/internal/service/document"
)

type documentService interface {
	CreateType(ctx context.Context, typeName string) (models.DocumentType, error)
	GetType(ctx context.Context, id uuid.UUID) (models.DocumentType, error)
	UpdateType(ctx context.Context, id uuid.UUID, typeName string) (models.DocumentType, error)

	// Has to return apperrors.ErrDocumentTypeInUse while documents reference the type
	DeleteType(ctx context.Context, id uuid.UUID) error
	ListTypes(ctx context.Context) ([]models.DocumentType, error)

	// Store uploaded file with the employee record
	// Rejects empty and oversized files, unknown employee or document type
	Upload(ctx context.Context, arg repository.CreateDocumentParams) (models.EmployeeDocument, error)
	Get(ctx context.Context, id uuid.UUID) (models.EmployeeDocument, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListForEmployee(ctx context.Context, employeeID uuid.UUID) ([]models.EmployeeDocument, error)
}

type DocumentHandler struct {
	documentService documentService
}

func NewDocument(ds documentService) *DocumentHandler {
	return &DocumentHandler{documentService: ds}
}

type documentResponse struct {
	ID           uuid.UUID       `json:"id"`
	DocumentName string          `json:"documentName"`
	FileSize     int             `json:"fileSize"`
	MimeType     string          `json:"mimeType"`
	CreatedAt    time.Time       `json:"createdAt"`
	DocumentType docTypeShortRef `json:"documentType"`
}

type docTypeShortRef struct {
	ID       uuid.UUID `json:"id"`
	TypeName string    `json:"typeName"`
}

func toDocumentResponse(d models.EmployeeDocument) documentResponse {
	return documentResponse{
		ID:           d.ID,
		DocumentName: d.DocumentName,
		FileSize:     d.FileSize,
		MimeType:     d.MimeType,
		CreatedAt:    d.CreatedAt,
		DocumentType: docTypeShortRef{ID: d.DocumentTypeID, TypeName: d.DocumentTypeName},
	}
}

func (h *DocumentHandler) listForEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, err := uuid.Parse(r.PathValue("employeeID"))
	if err != nil {
		render.ServiceError(w, "Employee not found", http.StatusNotFound)
		return
	}

	docs, err := h.documentService.ListForEmployee(r.Context(), employeeID)
	if err != nil {
		render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	resp := make([]documentResponse, 0, len(docs))
	for _, d := range docs {
		resp = append(resp, toDocumentResponse(d))
	}

	render.JSON(w, resp)
}

// download serves the stored file bytes with the original name and mime type
func (h *DocumentHandler) download(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		render.ServiceError(w, "Document not found", http.StatusNotFound)
		return
	}

	doc, err := h.documentService.Get(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDocumentNotFound):
			render.ServiceError(w, "Document not found", http.StatusNotFound)
		default:
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": doc.DocumentName})

	w.Header().Set("Content-Type", doc.MimeType)
	w.Header().Set("Content-Disposition", disposition)
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.FileData)))
	_, _ = w.Write(doc.FileData)
}

// upload accepts a multipart form: employeeId, documentTypeId, optional
// documentName and the file itself
func (h *DocumentHandler) upload(w http.ResponseWriter, r *http.Request) {
	// The argument only bounds in-memory buffering, bigger bodies spill to
	// temp files. The actual size cap is the LimitReader below
	err := r.ParseMultipartForm(document.MaxFileSize + 1<<20)
	if err != nil {
		render.ServiceError(w, "Failed to parse multipart form", http.StatusBadRequest)
		return
	}

	employeeID, err := uuid.Parse(r.FormValue("employeeId"))
	if err != nil {
		render.ServiceError(w, "Invalid employee id", http.StatusBadRequest)
		return
	}

	documentTypeID, err := uuid.Parse(r.FormValue("documentTypeId"))
	if err != nil {
		render.ServiceError(w, "Invalid document type id", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		render.ServiceError(w, "File is required", http.StatusBadRequest)
		return
	}
	defer file.Close() // nolint:errcheck

	// Read one byte past the cap so oversized uploads are detectable
	fileData, err := io.ReadAll(io.LimitReader(file, document.MaxFileSize+1))
	if err != nil {
		render.ServiceError(w, "Failed to read uploaded file", http.StatusBadRequest)
		return
	}

	documentName := r.FormValue("documentName")
	if documentName == "" {
		documentName = header.Filename
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	doc, err := h.documentService.Upload(r.Context(), repository.CreateDocumentParams{
		EmployeeID:     employeeID,
		DocumentTypeID: documentTypeID,
		DocumentName:   documentName,
		FileData:       fileData,
		MimeType:       mimeType,
	})
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDocumentEmpty):
			render.ServiceError(w, "File is empty", http.StatusBadRequest)
		case errors.Is(err, apperrors.ErrDocumentTooLarge):
			render.ServiceError(w, fmt.Sprintf("File size must not exceed %d bytes", document.MaxFileSize), http.StatusBadRequest)
		case errors.Is(err, apperrors.ErrEmployeeNotFound):
			render.ServiceError(w, "Employee not found", http.StatusNotFound)
		case errors.Is(err, apperrors.ErrDocumentTypeNotFound):
			render.ServiceError(w, "Document type not found", http.StatusNotFound)
		default:
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	render.JSONWithStatus(w, toDocumentResponse(doc), http.StatusCreated)
}

func (h *DocumentHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		render.ServiceError(w, "Document not found", http.StatusNotFound)
		return
	}

	err = h.documentService.Delete(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDocumentNotFound):
			render.ServiceError(w, "Document not found", http.StatusNotFound)
		default:
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	render.NoContent(w, http.StatusNoContent)
}
