package redisstore

import (
	"context"
	"time"

	"otakupal-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "active_conversation:"

// ConversationRepository is the Redis-backed active-conversation pointer
// store for multi-instance deployments. Errors degrade to "no pointer";
// the orchestrator re-validates ownership on every access anyway.
type ConversationRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ contract.ActiveConversationStore = &ConversationRepository{}

func NewConversationRepository(rdb *redis.Client) *ConversationRepository {
	return &ConversationRepository{
		rdb: rdb,
		ttl: 24 * time.Hour,
	}
}

func (r *ConversationRepository) Get(ctx context.Context, userId uuid.UUID) (uuid.UUID, bool) {
	val, err := r.rdb.Get(ctx, keyPrefix+userId.String()).Result()
	if err != nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func (r *ConversationRepository) Set(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) {
	r.rdb.Set(ctx, keyPrefix+userId.String(), sessionId.String(), r.ttl)
}

func (r *ConversationRepository) Clear(ctx context.Context, userId uuid.UUID) {
	r.rdb.Del(ctx, keyPrefix+userId.String())
}
