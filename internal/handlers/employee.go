package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/employerapp/api/internal/apperrors"
	"github.com/employerapp/api/internal/handlers/render"
	"github.com/employerapp/api/internal/models"
	"github.com/employerapp/api/internal/repository"
)

const dateOnly = "2006-01-02"

type employeeService interface {
	Create(ctx context.Context, arg repository.CreateEmployeeParams) (models.Employee, error)
	Get(ctx context.Context, id uuid.UUID) (models.Employee, error)
	Update(ctx context.Context, id uuid.UUID, arg repository.CreateEmployeeParams) (models.Employee, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// List all employees or only ones matching the query
	List(ctx context.Context, query string) ([]models.Employee, error)
}

type EmployeeHandler struct {
	employeeService employeeService
}

func NewEmployee(es employeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: es}
}

type employeeRequest struct {
	ID          string `json:"id" validate:"omitempty,uuid"`
	FirstName   string `json:"firstName" validate:"required,max=50"`
	LastName    string `json:"lastName" validate:"required,max=50"`
	MiddleName  string `json:"middleName" validate:"max=50"`
	Email       string `json:"email" validate:"omitempty,email,max=100"`
	Phone       string `json:"phone" validate:"max=20"`
	DateOfBirth string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
}

func (req employeeRequest) toParams() repository.CreateEmployeeParams {
	arg := repository.CreateEmployeeParams{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		MiddleName: req.MiddleName,
		Email:      req.Email,
		Phone:      req.Phone,
	}

	if req.DateOfBirth != "" {
		// Format validated already, parse error not possible
		dob, _ := time.Parse(dateOnly, req.DateOfBirth)
		arg.DateOfBirth = &dob
	}

	return arg
}

type employeeResponse struct {
	ID             uuid.UUID `json:"id"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	MiddleName     string    `json:"middleName,omitempty"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	DateOfBirth    string    `json:"dateOfBirth,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	FullName       string    `json:"fullName"`
	DocumentsCount int       `json:"documentsCount"`
}

func toEmployeeResponse(e models.Employee) employeeResponse {
	resp := employeeResponse{
		ID:             e.ID,
		FirstName:      e.FirstName,
		LastName:       e.LastName,
		MiddleName:     e.MiddleName,
		Email:          e.Email,
		Phone:          e.Phone,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
		FullName:       e.FullName(),
		DocumentsCount: e.DocumentsCount,
	}

	if e.DateOfBirth != nil {
		resp.DateOfBirth = e.DateOfBirth.Format(dateOnly)
	}

	return resp
}

func (h *EmployeeHandler) list(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employeeService.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	resp := make([]employeeResponse, 0, len(employees))
	for _, e := range employees {
		resp = append(resp, toEmployeeResponse(e))
	}

	render.JSON(w, resp)
}

func (h *EmployeeHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		render.ServiceError(w, "Employee not found", http.StatusNotFound)
		return
	}

	employee, err := h.employeeService.Get(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrEmployeeNotFound):
			render.ServiceError(w, "Employee not found", http.StatusNotFound)
		default:
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	render.JSON(w, toEmployeeResponse(employee))
}

func (h *EmployeeHandler) create(w http.ResponseWriter, r *http.Request) {
	data, err := render.BindAndValidate[employeeRequest](w, r)
	if err != nil {
		return
	}

	employee, err := h.employeeService.Create(r.Context(), data.toParams())
	if err != nil {
		render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	render.JSONWithStatus(w, toEmployeeResponse(employee), http.StatusCreated)
}

func (h *EmployeeHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		render.ServiceError(w, "Employee not found", http.StatusNotFound)
		return
	}

	data, err := render.BindAndValidate[employeeRequest](w, r)
	if err != nil {
		return
	}

	// A body id different from the path id is a client error
	if data.ID != "" && data.ID != id.String() {
		render.ServiceError(w, "Employee id mismatch", http.StatusBadRequest)
		return
	}

	_, err = h.employeeService.Update(r.Context(), id, data.toParams())
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrEmployeeNotFound):
			render.ServiceError(w, "Employee not found", http.StatusNotFound)
		default:
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	render.NoContent(w, http.StatusNoContent)
}

func (h *EmployeeHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		render.ServiceError(w, "Employee not found", http.StatusNotFound)
		return
	}

	err = h.employeeService.Delete(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrEmployeeNotFound):
			render.ServiceError(w, "Employee not found", http.StatusNotFound)
		default:
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	render.NoContent(w, http.StatusNoContent)
}
