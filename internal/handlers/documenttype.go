package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/employerapp/api/internal/apperrors"
	"github.com/employerapp/api/internal/handlers/render"
	"github.com/employerapp/api/internal/models"
)

type DocumentTypeHandler struct {
	documentService documentService
}

func NewDocumentType(ds documentService) *DocumentTypeHandler {
	return &DocumentTypeHandler{documentService: ds}
}

type documentTypeRequest struct {
	ID       string `json:"id" validate:"omitempty,uuid"`
	TypeName string `json:"typeName" validate:"required,max=50"`
}

type documentTypeResponse struct {
	ID             uuid.UUID `json:"id"`
	TypeName       string    `json:"typeName"`
	CreatedAt      time.Time `json:"createdAt"`
	DocumentsCount int       `json:"documentsCount"`
}

func toDocumentTypeResponse(t models.DocumentType) documentTypeResponse {
	return documentTypeResponse{
		ID:             t.ID,
		TypeName:       t.TypeName,
		CreatedAt:      t.CreatedAt,
		DocumentsCount: t.DocumentsCount,
	}
}

func (h *DocumentTypeHandler) list(w http.ResponseWriter, r *http.Request) {
	docTypes, err := h.documentService.ListTypes(r.Context())
	if err != nil {
		render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	resp := make([]documentTypeResponse, 0, len(docTypes))
	for _, t := range docTypes {
		resp = append(resp, toDocumentTypeResponse(t))
	}

	render.JSON(w, resp)
}

func (h *DocumentTypeHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		render.ServiceError(w, "Document type not found", http.StatusNotFound)
		return
	}

	docType, err := h.documentService.GetType(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDocumentTypeNotFound):
			render.ServiceError(w, "Document type not found", http.StatusNotFound)
		default:
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	render.JSON(w, toDocumentTypeResponse(docType))
}

func (h *DocumentTypeHandler) create(w http.ResponseWriter, r *http.Request) {
	data, err := render.BindAndValidate[documentTypeRequest](w, r)
	if err != nil {
		return
	}

	docType, err := h.documentService.CreateType(r.Context(), data.TypeName)
	if err != nil {
		render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	render.JSONWithStatus(w, toDocumentTypeResponse(docType), http.StatusCreated)
}

func (h *DocumentTypeHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		render.ServiceError(w, "Document type not found", http.StatusNotFound)
		return
	}

	data, err := render.BindAndValidate[documentTypeRequest](w, r)
	if err != nil {
		return
	}

	if data.ID != "" && data.ID != id.String() {
		render.ServiceError(w, "Document type id mismatch", http.StatusBadRequest)
		return
	}

	_, err = h.documentService.UpdateType(r.Context(), id, data.TypeName)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDocumentTypeNotFound):
			render.ServiceError(w, "Document type not found", http.StatusNotFound)
		default:
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	render.NoContent(w, http.StatusNoContent)
}

func (h *DocumentTypeHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		render.ServiceError(w, "Document type not found", http.StatusNotFound)
		return
	}

	err = h.documentService.DeleteType(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDocumentTypeNotFound):
			render.ServiceError(w, "Document type not found", http.StatusNotFound)
		case errors.Is(err, apperrors.ErrDocumentTypeInUse):
			render.ServiceError(w, "Document type is used by employee documents and can't be deleted", http.StatusBadRequest)
		default:
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	render.NoContent(w, http.StatusNoContent)
}
