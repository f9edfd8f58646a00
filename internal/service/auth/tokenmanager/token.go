package tokenmanager

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/employerapp/api/internal/models"
)

const (
	defaultAccessTokenTTL = 15 * time.Minute
	defaultSigningMethod  = "HS256"

	// 32 random bytes give the refresh token 256 bits of entropy
	refreshTokenBytesLen = 32
)

type AccessTokenClaims struct {
	jwt.RegisteredClaims

	// User id as string, the claim name kept API compatible with older clients
	UserID string `json:"userid"`
}

// Token manager with sensible defaults
type Config struct {
	// Secret key to sign access token
	// Required to be set
	SecretKey string

	// Issuer and audience stamped into and required from access tokens
	Issuer   string
	Audience string

	// JWT MAC (Message Authentication Code) algorithm
	// If not set than default is used
	Alg string

	// Access token lifetime
	// If not set than default is used
	AccessTTL time.Duration
}

type TokenManager struct {
	key      string
	alg      jwt.SigningMethod
	issuer   string
	audience string

	accessTTL time.Duration
}

func New(cfg Config) (*TokenManager, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("secret key must not be empty")
	}

	if cfg.Alg == "" {
		cfg.Alg = defaultSigningMethod
	}

	if cfg.AccessTTL == 0 {
		cfg.AccessTTL = defaultAccessTokenTTL
	}

	return &TokenManager{
		key:       cfg.SecretKey,
		alg:       jwt.GetSigningMethod(cfg.Alg),
		issuer:    cfg.Issuer,
		audience:  cfg.Audience,
		accessTTL: cfg.AccessTTL,
	}, nil
}

// GenerateAccess issues a signed access token carrying the user id claim
func (m *TokenManager) GenerateAccess(user models.User) (string, error) {
	now := time.Now().Truncate(time.Second)

	token := jwt.NewWithClaims(
		m.alg,
		AccessTokenClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        uuid.NewString(),
				Issuer:    m.issuer,
				Audience:  jwt.ClaimStrings{m.audience},
				IssuedAt:  jwt.NewNumericDate(now),
				NotBefore: jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
			},
			UserID: user.ID.String(),
		},
	)

	access, err := token.SignedString([]byte(m.key))
	if err != nil {
		return "", fmt.Errorf("error while signing access token. Err: %w", err)
	}

	return access, nil
}

// GenerateRefresh returns an opaque random token
// It carries no structure and no expiry: it is valid only while the
// matching row exists in the store
func (m *TokenManager) GenerateRefresh() (string, error) {
	b := make([]byte, refreshTokenBytesLen)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("error while generating refresh token. Err: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}

// ParseAccess validates the token signature, lifetime, issuer and audience
// and returns the user id claim
func (m *TokenManager) ParseAccess(access string) (uuid.UUID, error) {
	claims := &AccessTokenClaims{}

	_, err := jwt.ParseWithClaims(
		access,
		claims,
		func(t *jwt.Token) (any, error) { return []byte(m.key), nil },
		jwt.WithValidMethods([]string{m.alg.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithAudience(m.audience),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("error while parsing or validating token. Err: %w", err)
	}

	return uuid.Parse(claims.UserID)
}

// DecodeUserID extracts the user id claim without verifying the signature
// or lifetime. Used by the refresh flow where the expired access token only
// locates the candidate refresh-token set: the id is untrusted until the
// store lookup matches.
func (m *TokenManager) DecodeUserID(access string) (uuid.UUID, error) {
	claims := &AccessTokenClaims{}

	_, _, err := jwt.NewParser().ParseUnverified(access, claims)
	if err != nil {
		return uuid.Nil, fmt.Errorf("error while decoding token. Err: %w", err)
	}

	return uuid.Parse(claims.UserID)
}
