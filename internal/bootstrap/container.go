package bootstrap

import (
	"context"
	"time"

	"otakupal-be/internal/config"
	"otakupal-be/internal/controller"
	"otakupal-be/internal/pkg/logger"
	"otakupal-be/internal/repository/contract"
	"otakupal-be/internal/repository/memory"
	"otakupal-be/internal/repository/redisstore"
	"otakupal-be/internal/repository/unitofwork"
	"otakupal-be/internal/service"
	"otakupal-be/pkg/anime/jikan"
	"otakupal-be/pkg/llm/groq"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Container wires every layer together. Construction order is repositories,
// providers, services, controllers.
type Container struct {
	AuthController    controller.IAuthController
	ChatbotController controller.IChatbotController
	Logger            logger.ILogger
}

func NewContainer(cfg *config.Config, db *gorm.DB) *Container {
	log := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	uowFactory := unitofwork.NewRepositoryFactory(db)

	convStore := newConversationStore(cfg, log)

	llmProvider := groq.NewGroqProvider(
		cfg.Groq.APIKey,
		cfg.Groq.BaseURL,
		cfg.Groq.Model,
		time.Duration(cfg.Groq.TimeoutSeconds)*time.Second,
	)

	animeFetcher := jikan.NewClient(
		cfg.Jikan.BaseURL,
		time.Duration(cfg.Jikan.TimeoutSeconds)*time.Second,
	)

	authService := service.NewAuthService(uowFactory, convStore)
	chatbotService := service.NewChatbotService(uowFactory, llmProvider, animeFetcher, convStore, log)

	return &Container{
		AuthController:    controller.NewAuthController(authService),
		ChatbotController: controller.NewChatbotController(chatbotService),
		Logger:            log,
	}
}

// newConversationStore picks the pointer-store backend from config. A
// Redis that is configured but unreachable falls back to memory with a
// warning instead of failing startup.
func newConversationStore(cfg *config.Config, log logger.ILogger) contract.ActiveConversationStore {
	if cfg.App.ConversationStore != "redis" {
		return memory.NewConversationRepository()
	}

	opts, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Warn("Bootstrap", "invalid REDIS_URL, falling back to memory store", map[string]interface{}{
			"error": err.Error(),
		})
		return memory.NewConversationRepository()
	}

	rdb := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("Bootstrap", "redis unreachable, falling back to memory store", map[string]interface{}{
			"error": err.Error(),
		})
		return memory.NewConversationRepository()
	}

	return redisstore.NewConversationRepository(rdb)
}
