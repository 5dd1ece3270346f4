package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-game-api/internal/config"
	"github.com/yourusername/quiz-game-api/internal/domain/repository"
	"github.com/yourusername/quiz-game-api/internal/handler"
	"github.com/yourusername/quiz-game-api/internal/middleware"
	pgRepo "github.com/yourusername/quiz-game-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/quiz-game-api/internal/repository/redis"
	"github.com/yourusername/quiz-game-api/internal/scoreboard"
	"github.com/yourusername/quiz-game-api/internal/service"
	"github.com/yourusername/quiz-game-api/pkg/auth"
	"github.com/yourusername/quiz-game-api/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	isProduction := gin.Mode() == gin.ReleaseMode

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString(), !isProduction)
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db, cfg.Database.MigrationsPath); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Redis необязателен: без него табло читается из БД, а rate limiting выключен
	redisClient, err := database.OpenRedis(context.Background(), cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	var cacheRepo repository.CacheRepository
	if redisClient != nil {
		cache, err := redisRepo.NewCacheRepo(redisClient)
		if err != nil {
			log.Printf("Failed to initialize CacheRepo: %v", err)
			os.Exit(1)
		}
		cacheRepo = cache
	}

	// Инициализируем репозитории
	categoryRepo := pgRepo.NewCategoryRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	playerRepo := pgRepo.NewPlayerRepo(db)
	settingsRepo := pgRepo.NewSettingsRepo(db)
	sessionRepo := pgRepo.NewGameSessionRepo(db)

	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs, cfg.JWT.Issuer)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	broker := scoreboard.NewBroker()

	// Сервисы
	scoreboardService := service.NewScoreboardService(sessionRepo, cacheRepo, broker, cfg.Scoreboard.TopLimit, cfg.Scoreboard.CacheTTL())
	mailer := service.NewResultMailer(cfg.Mail.ResendAPIKey, cfg.Mail.From)
	gameService := service.NewGameService(playerRepo, questionRepo, settingsRepo, sessionRepo, scoreboardService, mailer)
	categoryService := service.NewCategoryService(categoryRepo)
	questionService := service.NewQuestionService(questionRepo, categoryRepo)
	settingsService := service.NewSettingsService(settingsRepo, cfg.Game.DefaultSettings())
	resultService := service.NewResultService(sessionRepo, scoreboardService)
	authService := service.NewAuthService(cfg.Admin.Username, cfg.Admin.Password, jwtService, cacheRepo)

	// Первый запуск: настройки по умолчанию и встроенный набор вопросов
	seedCtx, seedCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if _, err := settingsService.EnsureDefaults(seedCtx); err != nil {
		seedCancel()
		log.Printf("Failed to initialize game settings: %v", err)
		os.Exit(1)
	}
	if seeded, err := questionService.SeedDefaults(seedCtx); err != nil {
		log.Printf("Warning: failed to seed default questions: %v", err)
	} else if seeded > 0 {
		log.Printf("Добавлено %d вопросов по умолчанию", seeded)
	}
	seedCancel()

	authMiddleware := middleware.NewAuthMiddleware(authService)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	trustedProxies := []string{"127.0.0.1", "::1"}
	if isProduction {
		trustedProxies = nil
	}

	router := handler.NewRouter(handler.RouterOptions{
		BasePath:       cfg.Server.NormalizedBasePath(),
		CORSOrigins:    cfg.Server.Origins(),
		TrustedProxies: trustedProxies,
	}, handler.Handlers{
		Auth:           handler.NewAuthHandler(authService),
		Category:       handler.NewCategoryHandler(categoryService),
		Question:       handler.NewQuestionHandler(questionService),
		Game:           handler.NewGameHandler(gameService),
		Result:         handler.NewResultHandler(resultService),
		Settings:       handler.NewSettingsHandler(settingsService),
		Scoreboard:     handler.NewScoreboardHandler(scoreboardService, broker, cfg.Scoreboard.Keepalive(), cfg.Server.Origins()),
		AuthMiddleware: authMiddleware,
		RateLimiter:    rateLimiter,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Закрываем подписки, чтобы SSE и WebSocket зрители завершились до Shutdown
	broker.Close()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Printf("Error closing Redis client: %v", err)
		}
	}
	if err := database.Close(db); err != nil {
		log.Printf("Error closing database: %v", err)
	}

	log.Println("Server exited properly")
}
