package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/employerapp/api/internal/apperrors"
	"github.com/employerapp/api/internal/models"
	"github.com/employerapp/api/internal/repository"
	"github.com/employerapp/api/internal/service/auth/tokenmanager"
)

const (
	accessHeaderName = "Authorization"
	accessAuthScheme = "Bearer"
)

// Interface to create or compare user password hashes
type PasswordHasher interface {
	// Generate Hash from password
	Hash(password string) (string, error)

	// Compare known hashedPassword and user provided password
	// Must be protected against timing attacks
	Compare(hashedPassword string, password string) error
}

type Config struct {
	// Hasher used during user registration or login process
	// Defaults to BcryptHasher
	Hasher PasswordHasher
}

// Auth service: registration, login, token refresh and logout
type AuthService struct {
	token       *tokenmanager.TokenManager
	hasher      PasswordHasher
	loginHasher LoginHasher
	storage     repository.Storage
}

func NewService(cfg Config, token *tokenmanager.TokenManager, storage repository.Storage) (*AuthService, error) {
	hasher := cfg.Hasher
	if hasher == nil {
		hasher = BcryptHasher{}
	}

	if token == nil || storage == nil {
		return nil, errors.New("token manager and storage must not be nil")
	}

	return &AuthService{
		token:   token,
		hasher:  hasher,
		storage: storage,
	}, nil
}

// Register creates a user whose stored username is the hashed email
// The user is not logged in: no tokens are issued
func (s *AuthService) Register(ctx context.Context, email string, password string) error {
	username, err := s.loginHasher.Hash(email)
	if err != nil {
		return fmt.Errorf("can't use this as login, error=%w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("can't use this as password, error=%w", err)
	}

	_, err = s.storage.User().CreateUser(ctx, repository.CreateUserParams{
		Username:       username,
		Email:          email,
		HashedPassword: hash,
	})

	return err
}

// Login verifies the password and mints a fresh token pair
// Unknown email and wrong password collapse to the same error, so the
// response never tells which one failed
func (s *AuthService) Login(ctx context.Context, email string, password string) (models.TokenPair, error) {
	user, err := s.storage.User().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return models.TokenPair{}, apperrors.ErrUserNotFound
		}
		return models.TokenPair{}, err
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		return models.TokenPair{}, apperrors.ErrUserNotFound
	}

	return s.issuePair(ctx, s.storage, user)
}

// Refresh rotates the presented token pair
// The access token is decoded without verification: its only job is to
// locate the user, and the extracted id stays untrusted until the refresh
// token row matches. Consume and re-issue run in one transaction, so a
// refresh token redeems itself exactly once even under concurrent calls.
func (s *AuthService) Refresh(ctx context.Context, access string, refresh string) (models.TokenPair, error) {
	userID, err := s.token.DecodeUserID(access)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", apperrors.ErrUserNotFound, err)
	}

	user, err := s.storage.User().GetUserByID(ctx, userID)
	if err != nil {
		return models.TokenPair{}, err
	}

	var pair models.TokenPair
	err = s.storage.InTx(ctx, func(st repository.Storage) error {
		if _, err := st.Refresh().Consume(ctx, user.ID, refresh); err != nil {
			return err
		}

		pair, err = s.issuePair(ctx, st, user)
		return err
	})

	return pair, err
}

// Logout deletes every refresh token the user holds, ending all sessions
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	_, err := s.storage.Refresh().DeleteForUser(ctx, userID)
	return err
}

// Auth authenticates the request by its bearer access token
// Used by the auth middleware
func (s *AuthService) Auth(ctx context.Context, r *http.Request) (models.User, error) {
	header := r.Header.Get(accessHeaderName)

	scheme, access, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, accessAuthScheme) {
		return models.User{}, errors.New("malformed or missing authorization header")
	}

	userID, err := s.token.ParseAccess(strings.TrimSpace(access))
	if err != nil {
		return models.User{}, err
	}

	return s.storage.User().GetUserByID(ctx, userID)
}

// issuePair mints an access + refresh pair and persists the refresh token
func (s *AuthService) issuePair(ctx context.Context, st repository.Storage, user models.User) (models.TokenPair, error) {
	access, err := s.token.GenerateAccess(user)
	if err != nil {
		return models.TokenPair{}, err
	}

	refresh, err := s.token.GenerateRefresh()
	if err != nil {
		return models.TokenPair{}, err
	}

	_, err = st.Refresh().Save(ctx, models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		Token:     refresh,
		CreatedAt: time.Now().Truncate(time.Second),
	})
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("error while saving refresh token. Err: %w", err)
	}

	return models.TokenPair{Access: access, Refresh: refresh}, nil
}
