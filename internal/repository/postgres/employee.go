package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/employerapp/api/internal/apperrors"
	"github.com/employerapp/api/internal/models"
	"github.com/employerapp/api/internal/repository"
)

type EmployeeRepo struct {
	DB DBTX
}

const createEmployee = `-- name: CreateEmployee
INSERT INTO employees (id, first_name, last_name, middle_name, email, phone, date_of_birth, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
RETURNING id, first_name, last_name, middle_name, email, phone, date_of_birth, created_at, updated_at, 0 AS documents_count
`

func (r *EmployeeRepo) CreateEmployee(ctx context.Context, arg repository.CreateEmployeeParams) (models.Employee, error) {
	now := time.Now()
	rows, _ := r.DB.Query(ctx, createEmployee,
		uuid.New(), arg.FirstName, arg.LastName, arg.MiddleName, arg.Email, arg.Phone, arg.DateOfBirth, now)
	employee, err := pgx.CollectOneRow(rows, rowToEmployee)
	if err != nil {
		return employee, fmt.Errorf("db error: %w", err)
	}
	return employee, nil
}

const getEmployee = `-- name: GetEmployee
SELECT e.id, e.first_name, e.last_name, e.middle_name, e.email, e.phone, e.date_of_birth, e.created_at, e.updated_at,
       count(d.id) AS documents_count
FROM employees e
LEFT JOIN employee_documents d ON d.employee_id = e.id
WHERE e.id = $1
GROUP BY e.id
`

func (r *EmployeeRepo) GetEmployee(ctx context.Context, id uuid.UUID) (models.Employee, error) {
	rows, _ := r.DB.Query(ctx, getEmployee, id)
	employee, err := pgx.CollectOneRow(rows, rowToEmployee)

	switch {
	case err == nil:
		return employee, nil
	case errors.Is(err, pgx.ErrNoRows):
		return employee, apperrors.ErrEmployeeNotFound
	default:
		return employee, fmt.Errorf("db error: %w", err)
	}
}

const updateEmployee = `-- name: UpdateEmployee
UPDATE employees
SET first_name = $2, last_name = $3, middle_name = $4, email = $5, phone = $6, date_of_birth = $7, updated_at = $8
WHERE id = $1
RETURNING id, first_name, last_name, middle_name, email, phone, date_of_birth, created_at, updated_at, 0 AS documents_count
`

func (r *EmployeeRepo) UpdateEmployee(ctx context.Context, id uuid.UUID, arg repository.CreateEmployeeParams) (models.Employee, error) {
	rows, _ := r.DB.Query(ctx, updateEmployee,
		id, arg.FirstName, arg.LastName, arg.MiddleName, arg.Email, arg.Phone, arg.DateOfBirth, time.Now())
	employee, err := pgx.CollectOneRow(rows, rowToEmployee)

	switch {
	case err == nil:
		return employee, nil
	case errors.Is(err, pgx.ErrNoRows):
		return employee, apperrors.ErrEmployeeNotFound
	default:
		return employee, fmt.Errorf("db error: %w", err)
	}
}

const deleteEmployee = `-- name: DeleteEmployee
DELETE FROM employees
WHERE id = $1
`

func (r *EmployeeRepo) DeleteEmployee(ctx context.Context, id uuid.UUID) error {
	tag, err := r.DB.Exec(ctx, deleteEmployee, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEmployeeNotFound
	}
	return nil
}

const listEmployees = `-- name: ListEmployees
SELECT e.id, e.first_name, e.last_name, e.middle_name, e.email, e.phone, e.date_of_birth, e.created_at, e.updated_at,
       count(d.id) AS documents_count
FROM employees e
LEFT JOIN employee_documents d ON d.employee_id = e.id
GROUP BY e.id
ORDER BY e.created_at
`

func (r *EmployeeRepo) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	rows, _ := r.DB.Query(ctx, listEmployees)
	employees, err := pgx.CollectRows(rows, rowToEmployee)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return employees, nil
}

const searchEmployees = `-- name: SearchEmployees
SELECT e.id, e.first_name, e.last_name, e.middle_name, e.email, e.phone, e.date_of_birth, e.created_at, e.updated_at,
       count(d.id) AS documents_count
FROM employees e
LEFT JOIN employee_documents d ON d.employee_id = e.id
WHERE e.first_name ILIKE '%' || $1 || '%'
   OR e.last_name ILIKE '%' || $1 || '%'
   OR e.middle_name ILIKE '%' || $1 || '%'
   OR e.email ILIKE '%' || $1 || '%'
   OR e.phone ILIKE '%' || $1 || '%'
GROUP BY e.id
ORDER BY e.created_at
`

func (r *EmployeeRepo) SearchEmployees(ctx context.Context, query string) ([]models.Employee, error) {
	rows, _ := r.DB.Query(ctx, searchEmployees, query)
	employees, err := pgx.CollectRows(rows, rowToEmployee)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return employees, nil
}

func rowToEmployee(row pgx.CollectableRow) (models.Employee, error) {
	var e models.Employee
	err := row.Scan(&e.ID, &e.FirstName, &e.LastName, &e.MiddleName, &e.Email, &e.Phone,
		&e.DateOfBirth, &e.CreatedAt, &e.UpdatedAt, &e.DocumentsCount)
	return e, err
}
