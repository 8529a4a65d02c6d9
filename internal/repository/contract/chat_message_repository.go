package contract

import (
	"context"

	"otakupal-be/internal/entity"
	"otakupal-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ChatMessageRepository is append-only: no Update and no
// per-message Delete. Messages go away only when their session does.
type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	DeleteByChatSessionId(ctx context.Context, sessionId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
