package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an account identity. Users are immutable after registration;
// there is no update or delete path.
type User struct {
	Id           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
