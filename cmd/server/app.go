// File: cmd/server/app.go
package main

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/iyunix/go-mindster/internal/auth"
	"github.com/iyunix/go-mindster/internal/config"
	"github.com/iyunix/go-mindster/internal/handlers"
	"github.com/iyunix/go-mindster/internal/repository/conversation"
	"github.com/iyunix/go-mindster/internal/repository/message"
	"github.com/iyunix/go-mindster/internal/repository/provider"
	"github.com/iyunix/go-mindster/internal/repository/user"
	"github.com/iyunix/go-mindster/internal/secrets"
	"github.com/iyunix/go-mindster/internal/services"
	"github.com/iyunix/go-mindster/internal/services/ai"
	"github.com/iyunix/go-mindster/internal/services/chat"
	"github.com/iyunix/go-mindster/internal/services/provider_services"
	"github.com/iyunix/go-mindster/internal/services/user_services"
)

// Application aggregates all services and handlers
type Application struct {
	Config          *config.Config
	Logger          services.Logger
	Tokens          *auth.TokenManager
	AuthService     *user_services.AuthService
	ProviderService *provider_services.ProviderService
	ChatService     *chat.Service
	Handler         http.Handler
}

// NewApplication builds the dependency graph by hand, leaves first.
func NewApplication(cfg *config.Config, db *gorm.DB, logger services.Logger) (*Application, error) {
	cipher, err := secrets.NewCipherFromHex(cfg.EncryptionKey)
	if err != nil {
		return nil, err
	}
	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenLifetime)
	if err != nil {
		return nil, err
	}

	// --- Repositories ---
	userRepo := user.NewGormUserRepository(db, logger)
	providerRepo := provider.NewProviderRepository(db, logger)
	conversationRepo := conversation.NewConversationRepository(db, logger)
	messageRepo := message.NewMessageRepository(db, logger)

	// --- Services ---
	llm := ai.NewOpenAIProvider(ai.DefaultConfig(), logger)
	authService := user_services.NewAuthService(userRepo, tokens, logger)
	providerService := provider_services.NewProviderService(providerRepo, cipher, llm, logger)
	chatService, err := chat.NewService(conversationRepo, messageRepo, providerService, llm, chat.DefaultConfig(), logger)
	if err != nil {
		return nil, err
	}

	// --- Handlers ---
	handler := handlers.NewRouter(handlers.RouterDeps{
		Auth:          handlers.NewAuthHandler(authService, logger),
		Providers:     handlers.NewProviderHandler(providerService, logger),
		Conversations: handlers.NewChatHandler(chatService, logger),
		Verifier:      tokens,
		CORSOrigins:   cfg.CORSOrigins,
		Logger:        logger,
	})

	return &Application{
		Config:          cfg,
		Logger:          logger,
		Tokens:          tokens,
		AuthService:     authService,
		ProviderService: providerService,
		ChatService:     chatService,
		Handler:         handler,
	}, nil
}
