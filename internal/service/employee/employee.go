package employee

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/employerapp/api/internal/models"
	"github.com/employerapp/api/internal/repository"
)

// Employee service: CRUD and search over employee records
type EmployeeService struct {
	storage repository.Storage
}

func NewService(storage repository.Storage) *EmployeeService {
	return &EmployeeService{storage: storage}
}

func (s *EmployeeService) Create(ctx context.Context, arg repository.CreateEmployeeParams) (models.Employee, error) {
	return s.storage.Employee().CreateEmployee(ctx, arg)
}

func (s *EmployeeService) Get(ctx context.Context, id uuid.UUID) (models.Employee, error) {
	return s.storage.Employee().GetEmployee(ctx, id)
}

func (s *EmployeeService) Update(ctx context.Context, id uuid.UUID, arg repository.CreateEmployeeParams) (models.Employee, error) {
	return s.storage.Employee().UpdateEmployee(ctx, id, arg)
}

func (s *EmployeeService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.storage.Employee().DeleteEmployee(ctx, id)
}

// List returns every employee, or ones matching the query if it is not blank
func (s *EmployeeService) List(ctx context.Context, query string) ([]models.Employee, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.storage.Employee().ListEmployees(ctx)
	}
	return s.storage.Employee().SearchEmployees(ctx, query)
}
