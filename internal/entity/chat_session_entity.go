package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatSession is one conversation thread. Every session has exactly one
// owner and is only visible to that owner.
type ChatSession struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Title     string
	CreatedAt time.Time
}
