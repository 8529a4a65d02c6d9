package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one turn in a session. Messages are append-only: no update
// or per-message delete, always read in ascending created_at order.
type ChatMessage struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	Sender        string // "user" | "bot"
	Content       string
	CreatedAt     time.Time
}
