package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/elegacy/elegacy-backend/internal/domain/ports"
	httphandlers "github.com/elegacy/elegacy-backend/internal/handlers/http"
	"github.com/elegacy/elegacy-backend/internal/handlers/middleware"
	"github.com/elegacy/elegacy-backend/internal/infrastructure/auth"
	"github.com/elegacy/elegacy-backend/internal/infrastructure/config"
	"github.com/elegacy/elegacy-backend/internal/infrastructure/i18n"
	"github.com/elegacy/elegacy-backend/internal/infrastructure/logging"
	"github.com/elegacy/elegacy-backend/internal/infrastructure/mail"
	"github.com/elegacy/elegacy-backend/internal/infrastructure/notify"
	"github.com/elegacy/elegacy-backend/internal/infrastructure/persistence/postgres"
	"github.com/elegacy/elegacy-backend/internal/infrastructure/storage"
	"github.com/elegacy/elegacy-backend/internal/infrastructure/storage/filesystem"
	"github.com/elegacy/elegacy-backend/internal/infrastructure/storage/objectstore"
	"github.com/elegacy/elegacy-backend/internal/services"
)

func main() {
	// Carregar configurações
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Inicializar logger
	logger := logging.NewSlogLogger(cfg.Logging.Level)
	logger.Info("starting elegacy backend",
		"env", cfg.Env,
		"version", "dev",
	)

	// Conectar ao banco de dados
	db, err := postgres.NewDatabaseConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		log.Fatal(err)
	}

	// Inicializar i18n
	i18nService, err := i18n.NewService("./internal/infrastructure/i18n/locales", "en")
	if err != nil {
		logger.Error("failed to initialize i18n", "error", err)
		log.Fatal(err)
	}
	logger.Info("i18n initialized",
		"default_language", i18nService.GetDefaultLanguage(),
		"supported_languages", i18nService.GetSupportedLanguages(),
	)

	// Inicializar repositório de blobs conforme o driver configurado
	cipher := storage.NewCipher(cfg.Storage.EncryptionKey)
	blobs, err := newBlobStore(cfg, cipher)
	if err != nil {
		logger.Error("failed to initialize blob storage", "error", err)
		log.Fatal(err)
	}
	logger.Info("blob storage initialized", "driver", cfg.Storage.Driver)

	// Inicializar repositories
	userRepo := postgres.NewUserRepository(db)
	docRepo := postgres.NewDocumentRepository(db)
	inviteRepo := postgres.NewInviteRepository(db)
	uow := postgres.NewUnitOfWork(db)

	// Infra de auth e notificações
	tokens := auth.NewJWTManager(cfg.JWT.Secret)
	hasher := auth.NewBcryptHasher()
	hub := notify.NewHub()
	mailer := mail.NewSMTPMailer(&cfg.SMTP, logger)

	tokenTTL, err := time.ParseDuration(cfg.JWT.AccessExpiry)
	if err != nil {
		tokenTTL = 24 * time.Hour
	}

	// Inicializar services
	authService := services.NewAuthService(userRepo, uow, hasher, tokens, tokenTTL, logger)
	documentService := services.NewDocumentService(docRepo, blobs, hub, logger)
	inviteService := services.NewInviteService(inviteRepo, docRepo, mailer, logger)

	// Inicializar handlers
	authHandler := httphandlers.NewAuthHandler(authService)
	documentHandler := httphandlers.NewDocumentHandler(documentService)
	inviteHandler := httphandlers.NewInviteHandler(inviteService)
	notificationHandler := httphandlers.NewNotificationHandler(hub, logger)

	// Setup Gin
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// Middleware global para adicionar base URL ao contexto
	router.Use(func(c *gin.Context) {
		c.Set("base_url", cfg.Server.BaseURL)
		c.Next()
	})

	// Middleware i18n
	i18nMiddleware := middleware.NewI18nMiddleware(i18nService)
	router.Use(i18nMiddleware.DetectLanguage())

	// Middleware CORS
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Middleware de autenticação (rotas protegidas)
	authMiddleware := middleware.NewAuthMiddleware(tokens)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"env":    cfg.Env,
		})
	})

	// API routes
	api := router.Group("/api")
	{
		// Auth
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/signup", authHandler.Signup)
			authGroup.POST("/login", authHandler.Login)
		}

		// Documents (protegidas: o dono é sempre a identidade do token)
		documents := api.Group("/documents", authMiddleware.RequireAuth())
		{
			documents.POST("", documentHandler.Upload)
			documents.GET("", documentHandler.List)
			documents.PUT("/:id", documentHandler.Update)
			documents.DELETE("/:id", documentHandler.Delete)
			documents.GET("/file/:storedName", documentHandler.RetrieveFile)
			documents.GET("/:id/file", documentHandler.RetrieveFileByID)
		}

		// Invites
		invites := api.Group("/invite", authMiddleware.RequireAuth())
		{
			invites.POST("", inviteHandler.Send)
			invites.GET("", inviteHandler.ListReceived)
		}
	}

	// Notificações em tempo real
	router.GET("/ws/notifications", authMiddleware.RequireAuth(), notificationHandler.Stream)

	// HTTP Server
	srv := &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info("server starting",
			"host", cfg.Server.Host,
			"port", cfg.Server.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			log.Fatal(err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}

// newBlobStore seleciona o backend de blobs: filesystem local por padrão,
// MinIO quando configurado
func newBlobStore(cfg *config.Config, cipher ports.Cipher) (ports.BlobStore, error) {
	if cfg.Storage.Driver == "minio" {
		return objectstore.NewBlobStore(&cfg.Storage, cipher)
	}
	return filesystem.NewBlobStore(cfg.Storage.Root, cipher)
}
