package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID
	CreatedAt      time.Time
	Username       string // salted hash of the normalized email, not the email itself
	Email          string
	HashedPassword string
}
