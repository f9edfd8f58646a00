package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	loginSaltLen   = 16
	loginDigestLen = 32
	loginHashIters = 100_000
)

// LoginHasher derives a pseudonymous username from a login string (an email).
// The derived value is stored instead of using the email as the primary
// identifier. Every Hash call salts anew, so the output is one-way: there is
// no way to look a user up by re-hashing the email, only Verify against a
// known hash.
type LoginHasher struct{}

// Hash normalizes the login and returns base64(salt || pbkdf2-sha256 digest)
func (LoginHasher) Hash(login string) (string, error) {
	normalized := normalizeLogin(login)
	if normalized == "" {
		return "", errors.New("login must not be empty")
	}

	salt := make([]byte, loginSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("error while generating login salt. Err: %w", err)
	}

	digest := pbkdf2.Key([]byte(normalized), salt, loginHashIters, loginDigestLen, sha256.New)

	return base64.StdEncoding.EncodeToString(append(salt, digest...)), nil
}

// Verify reports whether the login matches the self-contained hash
// Never errors: any malformed input yields false
func (LoginHasher) Verify(login string, hashedLogin string) bool {
	normalized := normalizeLogin(login)
	if normalized == "" || hashedLogin == "" {
		return false
	}

	raw, err := base64.StdEncoding.DecodeString(hashedLogin)
	if err != nil || len(raw) != loginSaltLen+loginDigestLen {
		return false
	}

	digest := pbkdf2.Key([]byte(normalized), raw[:loginSaltLen], loginHashIters, loginDigestLen, sha256.New)

	return subtle.ConstantTimeCompare(digest, raw[loginSaltLen:]) == 1
}

func normalizeLogin(login string) string {
	return strings.ToLower(strings.TrimSpace(login))
}
