package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/employerapp/api/internal/handlers/middleware"
	"github.com/employerapp/api/internal/repository"
	"github.com/employerapp/api/internal/repository/postgres"
	"github.com/employerapp/api/internal/service/auth"
	"github.com/employerapp/api/internal/service/auth/tokenmanager"
	"github.com/employerapp/api/internal/service/document"
	"github.com/employerapp/api/internal/service/employee"
)

// testServer runs the full production router over a single db transaction
type testServer struct {
	URL     string
	Auth    *auth.AuthService
	Storage repository.Storage
}

func startTestServer(t *testing.T, tx pgx.Tx) testServer {
	t.Helper()

	storage := postgres.NewStorage(tx)

	tokenManager, err := tokenmanager.New(tokenmanager.Config{
		SecretKey: "test-secret-key",
		Issuer:    "employerapp",
		Audience:  "employerapp",
	})
	require.NoError(t, err, "token manager should be created without errors")

	authService, err := auth.NewService(auth.Config{}, tokenManager, storage)
	require.NoError(t, err, "auth service starting error")

	employeeService := employee.NewService(storage)
	documentService := document.NewService(storage)

	router := NewRouter(
		NewAuth(authService),
		NewEmployee(employeeService),
		NewDocumentType(documentService),
		NewDocument(documentService),
		middleware.NewAuth(authService),
	)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return testServer{URL: srv.URL, Auth: authService, Storage: storage}
}

// doRequest sends the request and returns the response with its body read out
func doRequest(t *testing.T, method string, url string, body string, headers map[string]string) (*http.Response, string) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for name, value := range headers {
		req.Header.Set(name, value)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(raw)
}

func createTestServerEmployee(t *testing.T, srv testServer) employeeResponse {
	t.Helper()

	data := `{"firstName": "Anna", "lastName": "Petrova"}`
	resp, body := doRequest(t, http.MethodPost, srv.URL+"/api/employees", data, nil)
	require.Equalf(t, http.StatusCreated, resp.StatusCode, "not expected code. Body: %s", body)

	var created employeeResponse
	require.NoError(t, json.Unmarshal([]byte(body), &created))
	return created
}

// uploadTestDocument posts a multipart upload the way a browser form would
func uploadTestDocument(t *testing.T, srv testServer, employeeID uuid.UUID, typeID uuid.UUID, filename string, data []byte) documentResponse {
	t.Helper()

	resp, body := postMultipart(t, srv, map[string]string{
		"employeeId":     employeeID.String(),
		"documentTypeId": typeID.String(),
	}, filename, data)
	require.Equalf(t, http.StatusCreated, resp.StatusCode, "not expected code. Body: %s", body)

	var created documentResponse
	require.NoError(t, json.Unmarshal([]byte(body), &created))
	return created
}

func postMultipart(t *testing.T, srv testServer, fields map[string]string, filename string, data []byte) (*http.Response, string) {
	t.Helper()

	buf := &bytes.Buffer{}
	form := multipart.NewWriter(buf)

	for name, value := range fields {
		require.NoError(t, form.WriteField(name, value))
	}

	if filename != "" {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
		header.Set("Content-Type", "application/pdf")
		part, err := form.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}

	require.NoError(t, form.Close())

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/employee-documents", buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(raw)
}
