package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"firesafety-backend/internal/ai"
	appsvc "firesafety-backend/internal/app"
	"firesafety-backend/internal/bootstrap"
	"firesafety-backend/internal/cache"
	"firesafety-backend/internal/platform/rabbitmq"
	"firesafety-backend/internal/repository"
	"firesafety-backend/internal/transport/http/handler"
	"firesafety-backend/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	sessionRepo := repository.NewSessionRepository(app.MySQL)
	messageRepo := repository.NewMessageRepository(app.MySQL)
	userRepo := repository.NewUserRepository(app.MySQL)
	tipRepo := repository.NewTipRepository(app.MySQL)

	completionClient := ai.NewClient(ai.Config{
		BaseURL:     app.Config.LLM.BaseURL,
		APIKey:      app.Config.LLM.APIKey,
		Model:       app.Config.LLM.Model,
		Temperature: app.Config.LLM.Temperature,
		MaxTokens:   app.Config.LLM.MaxTokens,
	}, app.Logger)

	sessionCache := cache.NewSessionCache(
		app.Redis,
		time.Duration(app.Config.Redis.SessionTTLSeconds)*time.Second,
		time.Duration(app.Config.Redis.SessionDirtyTTLSeconds)*time.Second,
	)
	eventPublisher := rabbitmq.NewEventPublisher(app.MQConn, app.Config.RabbitMQ.ChatEventQueue)

	chatService := appsvc.NewChatService(
		sessionRepo,
		messageRepo,
		completionClient,
		appsvc.ReplayPromptBuilder{},
		eventPublisher,
		sessionCache,
		app.Logger,
	)
	authService := appsvc.NewAuthService(
		userRepo,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
	)
	tipService := appsvc.NewTipService(tipRepo)

	chatHandler := handler.NewChatHandler(chatService)
	authHandler := handler.NewAuthHandler(authService, app.Config.Auth.CookieName)
	tipHandler := handler.NewTipHandler(tipService)
	healthHandler := handler.NewHealthHandler(app)

	router.GET("/healthz", healthHandler.Check)

	v1 := router.Group("/api/v1")

	v1.POST("/chat", chatHandler.CreateSession)
	v1.GET("/chat", chatHandler.ListSessions)
	v1.GET("/chat/:sessionId", chatHandler.GetSession)
	v1.POST("/chat/:sessionId/message", chatHandler.AddMessage)
	v1.PUT("/chat/:sessionId/title", chatHandler.UpdateTitle)
	v1.PUT("/chat/:sessionId/regenerate/:messageId", chatHandler.RegenerateMessage)
	v1.POST("/chat/:sessionId/regenerate/:messageId", chatHandler.RegenerateMessage)
	v1.POST("/chat/:sessionId/message/:messageId/like", chatHandler.LikeMessage)
	v1.PUT("/chat/:sessionId/message/:messageId", chatHandler.UpdatePrompt)

	authGroup := v1.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.GET("/me",
		middleware.AuthJWT(app.Config.Auth.JWTSecret, app.Config.Auth.CookieName),
		authHandler.Me)

	tipGroup := v1.Group("/tips")
	tipGroup.POST("", tipHandler.Create)
	tipGroup.GET("", tipHandler.List)
	tipGroup.GET("/:id", tipHandler.Get)
	tipGroup.PUT("/:id", tipHandler.Update)
	tipGroup.DELETE("/:id", tipHandler.Delete)

	return router
}
