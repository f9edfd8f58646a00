package handlers

import (
	"net/http"

	"github.com/employerapp/api/internal/handlers/middleware"
)

// chain applies middlewares in the given order: m1(m2(...(h)))
func chain(h http.Handler, mds ...func(next http.Handler) http.Handler) http.Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

func NewRouter(
	authHandler *AuthHandler,
	employeeHandler *EmployeeHandler,
	documentTypeHandler *DocumentTypeHandler,
	documentHandler *DocumentHandler,
	authMiddleware *middleware.AuthMiddleware,
	mds ...func(next http.Handler) http.Handler,
) http.Handler {
	withAuth := func(h http.HandlerFunc) http.Handler {
		return authMiddleware.Auth(h)
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/users/register", authHandler.register)
	mux.HandleFunc("POST /api/users/login", authHandler.login)
	mux.HandleFunc("POST /api/users/refresh", authHandler.refresh)
	mux.Handle("GET /api/users/logout", withAuth(authHandler.logout))

	mux.HandleFunc("GET /api/employees", employeeHandler.list)
	mux.HandleFunc("GET /api/employees/search", employeeHandler.list)
	mux.HandleFunc("GET /api/employees/{id}", employeeHandler.get)
	mux.HandleFunc("POST /api/employees", employeeHandler.create)
	mux.HandleFunc("PUT /api/employees/{id}", employeeHandler.update)
	mux.HandleFunc("DELETE /api/employees/{id}", employeeHandler.delete)

	mux.HandleFunc("GET /api/document-types", documentTypeHandler.list)
	mux.HandleFunc("GET /api/document-types/{id}", documentTypeHandler.get)
	mux.HandleFunc("POST /api/document-types", documentTypeHandler.create)
	mux.HandleFunc("PUT /api/document-types/{id}", documentTypeHandler.update)
	mux.HandleFunc("DELETE /api/document-types/{id}", documentTypeHandler.delete)

	mux.HandleFunc("GET /api/employee-documents/employee/{employeeID}", documentHandler.listForEmployee)
	mux.HandleFunc("GET /api/employee-documents/{id}", documentHandler.download)
	mux.HandleFunc("POST /api/employee-documents", documentHandler.upload)
	mux.HandleFunc("DELETE /api/employee-documents/{id}", documentHandler.delete)

	return chain(mux, mds...)
}
