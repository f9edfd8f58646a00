package models

import (
	"time"

	"github.com/google/uuid"
)

type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Token     string
	CreatedAt time.Time
}

// Token pair issued by TokenManager, AuthService
type TokenPair struct {
	Access  string
	Refresh string
}
