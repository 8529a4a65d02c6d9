package memory

import (
	"context"
	"time"

	"otakupal-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// ConversationRepository is the in-process active-conversation pointer
// store. Entries expire after a day of inactivity, which is fine: the
// orchestrator re-derives a session whenever the pointer is missing.
type ConversationRepository struct {
	cache *cache.Cache
}

var _ contract.ActiveConversationStore = &ConversationRepository{}

func NewConversationRepository() *ConversationRepository {
	c := cache.New(24*time.Hour, 10*time.Minute)
	return &ConversationRepository{
		cache: c,
	}
}

func (r *ConversationRepository) Get(_ context.Context, userId uuid.UUID) (uuid.UUID, bool) {
	if x, found := r.cache.Get(userId.String()); found {
		return x.(uuid.UUID), true
	}
	return uuid.Nil, false
}

func (r *ConversationRepository) Set(_ context.Context, userId uuid.UUID, sessionId uuid.UUID) {
	r.cache.Set(userId.String(), sessionId, cache.DefaultExpiration)
}

func (r *ConversationRepository) Clear(_ context.Context, userId uuid.UUID) {
	r.cache.Delete(userId.String())
}
