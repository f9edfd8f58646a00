package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/employerapp/api/internal/apperrors"
	"github.com/employerapp/api/internal/handlers/render"
	"github.com/employerapp/api/internal/handlers/userctx"
	"github.com/employerapp/api/internal/models"
)

type authService interface {
	// Register user with email and password
	// Has to return apperrors.ErrUserAlreadyExists if user already exists
	Register(ctx context.Context, email string, password string) error

	// Login user with email and password
	// Unknown email and wrong password both map to apperrors.ErrUserNotFound
	Login(ctx context.Context, email string, password string) (models.TokenPair, error)

	// Rotate tokens using access + refresh token pair
	// Unknown user: apperrors.ErrUserNotFound
	// Missing or consumed refresh token: apperrors.ErrRefreshTokenNotFound
	Refresh(ctx context.Context, access string, refresh string) (models.TokenPair, error)

	// Drop every refresh token of the user
	Logout(ctx context.Context, userID uuid.UUID) error
}

type AuthHandler struct {
	authService authService
}

func NewAuth(as authService) *AuthHandler {
	return &AuthHandler{authService: as}
}

type tokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	type RegisterRequest struct {
		Email    string `json:"email" validate:"required,email,max=100"`
		Password string `json:"password" validate:"required,min=8"`
	}

	data, err := render.BindAndValidate[RegisterRequest](w, r)
	if err != nil {
		return
	}

	err = h.authService.Register(r.Context(), data.Email, data.Password)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrUserAlreadyExists):
			render.ServiceError(w, "User already exists", http.StatusBadRequest)
		default:
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	render.NoContent(w, http.StatusCreated)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	type LoginRequest struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	data, err := render.BindAndValidate[LoginRequest](w, r)
	if err != nil {
		return
	}

	pair, err := h.authService.Login(r.Context(), data.Email, data.Password)
	if err != nil {
		switch {
		// Same response for unknown email and wrong password
		case errors.Is(err, apperrors.ErrUserNotFound):
			render.ServiceError(w, "Unauthorized", http.StatusUnauthorized)
		default:
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	render.JSON(w, tokenPairResponse{AccessToken: pair.Access, RefreshToken: pair.Refresh})
}

func (h *AuthHandler) refresh(w http.ResponseWriter, r *http.Request) {
	type RefreshRequest struct {
		AccessToken  string `json:"accessToken" validate:"required"`
		RefreshToken string `json:"refreshToken" validate:"required"`
	}

	data, err := render.BindAndValidate[RefreshRequest](w, r)
	if err != nil {
		return
	}

	pair, err := h.authService.Refresh(r.Context(), data.AccessToken, data.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrUserNotFound):
			render.ServiceError(w, "Unauthorized", http.StatusUnauthorized)
		case errors.Is(err, apperrors.ErrRefreshTokenNotFound):
			render.ServiceError(w, "Forbidden", http.StatusForbidden)
		default:
			render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	render.JSON(w, tokenPairResponse{AccessToken: pair.Access, RefreshToken: pair.Refresh})
}

// logout must run behind the auth middleware: the user comes from the context
func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	user, ok := userctx.FromContext(r.Context())
	if !ok {
		render.ServiceError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.authService.Logout(r.Context(), user.ID); err != nil {
		render.ServiceError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	render.NoContent(w, http.StatusNoContent)
}
