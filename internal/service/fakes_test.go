package service

import (
	"context"
	"sort"
	"sync"

	"otakupal-be/internal/entity"
	"otakupal-be/internal/repository/contract"
	"otakupal-be/internal/repository/specification"
	"otakupal-be/internal/repository/unitofwork"
	"otakupal-be/pkg/anime"
	"otakupal-be/pkg/llm"

	"github.com/google/uuid"
)

// In-memory repositories that interpret the specification structs the
// services actually use. Keeps service tests off the database.

type fakeStore struct {
	mu       sync.Mutex
	users    []*entity.User
	sessions []*entity.ChatSession
	messages []*entity.ChatMessage
}

type fakeUserRepo struct{ store *fakeStore }

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	copied := *user
	r.store.users = append(r.store.users, &copied)
	return nil
}

func (r *fakeUserRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if matchUser(u, specs) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Count(_ context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var n int64
	for _, u := range r.store.users {
		if matchUser(u, specs) {
			n++
		}
	}
	return n, nil
}

func matchUser(u *entity.User, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if u.Id != s.ID {
				return false
			}
		case specification.ByUsername:
			if u.Username != s.Username {
				return false
			}
		case specification.ByEmail:
			if u.Email != s.Email {
				return false
			}
		}
	}
	return true
}

type fakeSessionRepo struct{ store *fakeStore }

func (r *fakeSessionRepo) Create(_ context.Context, session *entity.ChatSession) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	copied := *session
	r.store.sessions = append(r.store.sessions, &copied)
	return nil
}

func (r *fakeSessionRepo) UpdateTitle(_ context.Context, id uuid.UUID, title string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, s := range r.store.sessions {
		if s.Id == id {
			s.Title = title
		}
	}
	return nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	kept := r.store.sessions[:0]
	for _, s := range r.store.sessions {
		if s.Id != id {
			kept = append(kept, s)
		}
	}
	r.store.sessions = kept
	return nil
}

func (r *fakeSessionRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, s := range r.store.sessions {
		if matchSession(s, specs) {
			copied := *s
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var res []*entity.ChatSession
	for _, s := range r.store.sessions {
		if matchSession(s, specs) {
			copied := *s
			res = append(res, &copied)
		}
	}
	applySessionOrder(res, specs)
	return res, nil
}

func (r *fakeSessionRepo) Count(_ context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var n int64
	for _, s := range r.store.sessions {
		if matchSession(s, specs) {
			n++
		}
	}
	return n, nil
}

func matchSession(s *entity.ChatSession, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch sp := spec.(type) {
		case specification.ByID:
			if s.Id != sp.ID {
				return false
			}
		case specification.UserOwnedBy:
			if s.UserId != sp.UserID {
				return false
			}
		}
	}
	return true
}

func applySessionOrder(res []*entity.ChatSession, specs []specification.Specification) {
	for _, spec := range specs {
		if order, ok := spec.(specification.OrderBy); ok && order.Field == "created_at" {
			sort.SliceStable(res, func(i, j int) bool {
				if order.Desc {
					return res[i].CreatedAt.After(res[j].CreatedAt)
				}
				return res[i].CreatedAt.Before(res[j].CreatedAt)
			})
		}
	}
}

type fakeMessageRepo struct{ store *fakeStore }

func (r *fakeMessageRepo) Create(_ context.Context, message *entity.ChatMessage) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	copied := *message
	r.store.messages = append(r.store.messages, &copied)
	return nil
}

func (r *fakeMessageRepo) DeleteByChatSessionId(_ context.Context, sessionId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	kept := r.store.messages[:0]
	for _, m := range r.store.messages {
		if m.ChatSessionId != sessionId {
			kept = append(kept, m)
		}
	}
	r.store.messages = kept
	return nil
}

func (r *fakeMessageRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var res []*entity.ChatMessage
	for _, m := range r.store.messages {
		if matchMessage(m, specs) {
			copied := *m
			res = append(res, &copied)
		}
	}
	for _, spec := range specs {
		if order, ok := spec.(specification.OrderBy); ok && order.Field == "created_at" {
			sort.SliceStable(res, func(i, j int) bool {
				if order.Desc {
					return res[i].CreatedAt.After(res[j].CreatedAt)
				}
				return res[i].CreatedAt.Before(res[j].CreatedAt)
			})
		}
	}
	return res, nil
}

func (r *fakeMessageRepo) Count(_ context.Context, specs ...specification.Specification) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var n int64
	for _, m := range r.store.messages {
		if matchMessage(m, specs) {
			n++
		}
	}
	return n, nil
}

func matchMessage(m *entity.ChatMessage, specs []specification.Specification) bool {
	for _, spec := range specs {
		if s, ok := spec.(specification.ByChatSessionID); ok && m.ChatSessionId != s.ChatSessionID {
			return false
		}
	}
	return true
}

type fakeUnitOfWork struct{ store *fakeStore }

func (u *fakeUnitOfWork) Begin(context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error               { return nil }
func (u *fakeUnitOfWork) Rollback() error             { return nil }

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository {
	return &fakeUserRepo{store: u.store}
}

func (u *fakeUnitOfWork) ChatSessionRepository() contract.ChatSessionRepository {
	return &fakeSessionRepo{store: u.store}
}

func (u *fakeUnitOfWork) ChatMessageRepository() contract.ChatMessageRepository {
	return &fakeMessageRepo{store: u.store}
}

type fakeFactory struct{ store *fakeStore }

func (f *fakeFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork {
	return &fakeUnitOfWork{store: f.store}
}

// fakeLLM records the last prompt it received and replies with a canned
// string, or fails when err is set.
type fakeLLM struct {
	reply      string
	err        error
	lastPrompt []llm.Message
	lastOpts   llm.Options
}

func (f *fakeLLM) Chat(_ context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	f.lastPrompt = history
	options := &llm.Options{}
	for _, opt := range opts {
		opt(options)
	}
	f.lastOpts = *options
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type fakeFetcher struct {
	data      *anime.Data
	err       error
	lastQuery string
	calls     int
}

func (f *fakeFetcher) GetAnimeData(_ context.Context, query string) (*anime.Data, error) {
	f.calls++
	f.lastQuery = query
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}
