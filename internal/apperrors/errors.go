package apperrors

import (
	"errors"
)

var (
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserNotFound      = errors.New("user not found")

	ErrRefreshTokenNotFound = errors.New("refresh token not found")

	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrDocumentTypeNotFound = errors.New("document type not found")
	ErrDocumentTypeInUse    = errors.New("document type is referenced by employee documents")
	ErrDocumentNotFound     = errors.New("employee document not found")
	ErrDocumentTooLarge     = errors.New("document file is too large")
	ErrDocumentEmpty        = errors.New("document file is empty")
)
