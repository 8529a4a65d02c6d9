package contract

import (
	"context"

	"github.com/google/uuid"
)

// ActiveConversationStore keeps the per-login pointer to the ChatSession a
// user is currently looking at. The pointer is transient and best-effort:
// callers must re-validate ownership against the database on every use, so a
// lost or stale pointer only costs a fresh "New Chat" session.
type ActiveConversationStore interface {
	Get(ctx context.Context, userId uuid.UUID) (uuid.UUID, bool)
	Set(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID)
	Clear(ctx context.Context, userId uuid.UUID)
}
