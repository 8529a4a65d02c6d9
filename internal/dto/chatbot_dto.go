package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendChatRequest struct {
	Message string `json:"message" validate:"required"`
}

// SendChatResponse is returned verbatim (no envelope) by the chat-turn
// endpoint; refresh_history tells the client to reload the session list
// after an auto-title.
type SendChatResponse struct {
	Response       string    `json:"response"`
	CurrentChatId  uuid.UUID `json:"current_chat_id"`
	RefreshHistory bool      `json:"refresh_history"`
}

type SessionResponse struct {
	Id        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatMessageResponse struct {
	Id        uuid.UUID `json:"id"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"timestamp"`
}

type NewSessionResponse struct {
	Success   bool      `json:"success"`
	NewChatId uuid.UUID `json:"new_chat_id"`
}

type LoadSessionResponse struct {
	Success       bool                   `json:"success"`
	Messages      []*ChatMessageResponse `json:"messages"`
	CurrentChatId uuid.UUID              `json:"current_chat_id"`
}

type DeleteSessionResponse struct {
	Success          bool      `json:"success"`
	NewCurrentChatId uuid.UUID `json:"new_current_chat_id"`
}

type MainViewResponse struct {
	Username      string                 `json:"username"`
	CurrentChatId uuid.UUID              `json:"current_chat_id"`
	Messages      []*ChatMessageResponse `json:"messages"`
	Sessions      []*SessionResponse     `json:"sessions"`
}
