package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"otakupal-be/internal/constant"
	"otakupal-be/internal/dto"
	"otakupal-be/internal/entity"
	"otakupal-be/internal/pkg/logger"
	"otakupal-be/internal/repository/contract"
	"otakupal-be/internal/repository/specification"
	"otakupal-be/internal/repository/unitofwork"
	"otakupal-be/pkg/anime"
	"otakupal-be/pkg/chat"
	"otakupal-be/pkg/llm"

	"github.com/google/uuid"
)

// ErrUnauthorized is returned when a session id does not exist or belongs
// to another user. Callers cannot tell the two cases apart.
var ErrUnauthorized = errors.New("chat session not found or not owned by user")

type IChatbotService interface {
	// ResolveActiveConversation returns the caller's current session id,
	// creating a fresh session when the pointer is missing or stale.
	ResolveActiveConversation(ctx context.Context, userId uuid.UUID) (uuid.UUID, error)

	SendChat(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
	CreateSession(ctx context.Context, userId uuid.UUID) (*dto.NewSessionResponse, error)
	GetAllSessions(ctx context.Context, userId uuid.UUID) ([]*dto.SessionResponse, error)
	GetChatHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.LoadSessionResponse, error)
	DeleteSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.DeleteSessionResponse, error)
	GetMainView(ctx context.Context, userId uuid.UUID, username string) (*dto.MainViewResponse, error)
}

type chatbotService struct {
	uowFactory   unitofwork.RepositoryFactory
	llmProvider  llm.LLMProvider
	animeFetcher anime.Fetcher
	convStore    contract.ActiveConversationStore
	logger       logger.ILogger
}

func NewChatbotService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	animeFetcher anime.Fetcher,
	convStore contract.ActiveConversationStore,
	log logger.ILogger,
) IChatbotService {
	return &chatbotService{
		uowFactory:   uowFactory,
		llmProvider:  llmProvider,
		animeFetcher: animeFetcher,
		convStore:    convStore,
		logger:       log,
	}
}

// resolveActive looks up the caller's pointer, re-validates it against the
// database, and falls back to creating a new session. The pointer alone is
// never trusted as proof of ownership.
func (s *chatbotService) resolveActive(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (uuid.UUID, error) {
	if sessionId, ok := s.convStore.Get(ctx, userId); ok {
		session, err := uow.ChatSessionRepository().FindOne(ctx,
			specification.ByID{ID: sessionId},
			specification.UserOwnedBy{UserID: userId},
		)
		if err != nil {
			return uuid.Nil, err
		}
		if session != nil {
			return session.Id, nil
		}
		s.convStore.Clear(ctx, userId)
	}

	session := &entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     constant.DefaultSessionTitle,
		CreatedAt: time.Now(),
	}
	if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
		return uuid.Nil, err
	}
	s.convStore.Set(ctx, userId, session.Id)
	return session.Id, nil
}

func (s *chatbotService) ResolveActiveConversation(ctx context.Context, userId uuid.UUID) (uuid.UUID, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.resolveActive(ctx, uow, userId)
}

// SendChat runs one conversation turn. The user message is persisted before
// the completion call, so a provider failure never loses the user's input.
func (s *chatbotService) SendChat(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessionId, err := s.resolveActive(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	userMessage := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: sessionId,
		Sender:        constant.ChatMessageSenderUser,
		Content:       req.Message,
		CreatedAt:     time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, userMessage); err != nil {
		return nil, err
	}

	history, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	turns := chat.BuildWindow(history, constant.ContextWindowSize)
	prompt := make([]llm.Message, 0, len(turns)+2)
	prompt = append(prompt, llm.Message{
		Role:    constant.ChatRoleSystem,
		Content: constant.SystemPromptV1,
	})
	prompt = append(prompt, turns...)

	// Catalog enrichment is best-effort. A lookup failure downgrades the
	// turn to a plain completion, never fails it.
	if query, ok := anime.DetectQuery(req.Message); ok {
		data, err := s.animeFetcher.GetAnimeData(ctx, query)
		if err != nil {
			s.logger.Warn("ChatbotService", "anime lookup failed", map[string]interface{}{
				"query": query,
				"error": err.Error(),
			})
		} else if data != nil {
			prompt = append(prompt, llm.Message{
				Role:    constant.ChatRoleSystem,
				Content: fmt.Sprintf("User asked about: %s\nAnime Data: %s", data.Title, data.Summary()),
			})
		}
	}

	reply, err := s.llmProvider.Chat(ctx, prompt,
		llm.WithTemperature(constant.ChatTemperature),
		llm.WithMaxTokens(constant.ChatMaxTokens),
	)
	if err != nil {
		s.logger.Error("ChatbotService", "completion failed", map[string]interface{}{
			"session_id": sessionId.String(),
			"error":      err.Error(),
		})
		return nil, err
	}

	botMessage := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: sessionId,
		Sender:        constant.ChatMessageSenderBot,
		Content:       reply,
		CreatedAt:     time.Now(),
	}
	if err := uow.ChatMessageRepository().Create(ctx, botMessage); err != nil {
		return nil, err
	}

	// First user turn in the session names it.
	titleChanged := len(history) == 1
	if titleChanged {
		title := chat.DeriveTitle(req.Message, constant.SessionTitleMaxLen)
		if err := uow.ChatSessionRepository().UpdateTitle(ctx, sessionId, title); err != nil {
			return nil, err
		}
	}

	return &dto.SendChatResponse{
		Response:       reply,
		CurrentChatId:  sessionId,
		RefreshHistory: titleChanged,
	}, nil
}

func (s *chatbotService) CreateSession(ctx context.Context, userId uuid.UUID) (*dto.NewSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session := &entity.ChatSession{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     constant.DefaultSessionTitle,
		CreatedAt: time.Now(),
	}
	if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}
	s.convStore.Set(ctx, userId, session.Id)

	return &dto.NewSessionResponse{Success: true, NewChatId: session.Id}, nil
}

func (s *chatbotService) GetAllSessions(ctx context.Context, userId uuid.UUID) ([]*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		res = append(res, &dto.SessionResponse{
			Id:        session.Id,
			Title:     session.Title,
			CreatedAt: session.CreatedAt,
		})
	}
	return res, nil
}

// GetChatHistory replays a session's messages and moves the caller's active
// pointer onto it.
func (s *chatbotService) GetChatHistory(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.LoadSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrUnauthorized
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	s.convStore.Set(ctx, userId, sessionId)

	return &dto.LoadSessionResponse{
		Success:       true,
		Messages:      toMessageResponses(messages),
		CurrentChatId: sessionId,
	}, nil
}

// DeleteSession removes a session and all its messages, then hands the
// caller a replacement current session so the client is never left without
// one.
func (s *chatbotService) DeleteSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.DeleteSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrUnauthorized
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	if err := uow.ChatMessageRepository().DeleteByChatSessionId(ctx, sessionId); err != nil {
		uow.Rollback()
		return nil, err
	}
	if err := uow.ChatSessionRepository().Delete(ctx, sessionId); err != nil {
		uow.Rollback()
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if active, ok := s.convStore.Get(ctx, userId); ok && active == sessionId {
		s.convStore.Clear(ctx, userId)
	}

	newCurrent, err := s.resolveActive(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	return &dto.DeleteSessionResponse{Success: true, NewCurrentChatId: newCurrent}, nil
}

// GetMainView assembles everything the landing page needs in one call.
func (s *chatbotService) GetMainView(ctx context.Context, userId uuid.UUID, username string) (*dto.MainViewResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	currentId, err := s.resolveActive(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: currentId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	sessions, err := s.GetAllSessions(ctx, userId)
	if err != nil {
		return nil, err
	}

	return &dto.MainViewResponse{
		Username:      username,
		CurrentChatId: currentId,
		Messages:      toMessageResponses(messages),
		Sessions:      sessions,
	}, nil
}

func toMessageResponses(messages []*entity.ChatMessage) []*dto.ChatMessageResponse {
	res := make([]*dto.ChatMessageResponse, 0, len(messages))
	for _, msg := range messages {
		res = append(res, &dto.ChatMessageResponse{
			Id:        msg.Id,
			Sender:    msg.Sender,
			Content:   msg.Content,
			CreatedAt: msg.CreatedAt,
		})
	}
	return res
}
