package handler

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-game-api/internal/middleware"
)

// RouterOptions - параметры HTTP-слоя из конфигурации
type RouterOptions struct {
	BasePath       string
	CORSOrigins    []string
	TrustedProxies []string
}

// Handlers - все обработчики и middleware, из которых собирается роутер
type Handlers struct {
	Auth       *AuthHandler
	Category   *CategoryHandler
	Question   *QuestionHandler
	Game       *GameHandler
	Result     *ResultHandler
	Settings   *SettingsHandler
	Scoreboard *ScoreboardHandler

	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    *middleware.RateLimiter
}

// NewRouter собирает gin.Engine со всеми маршрутами API под opts.BasePath
func NewRouter(opts RouterOptions, h Handlers) *gin.Engine {
	router := gin.Default()

	if err := router.SetTrustedProxies(opts.TrustedProxies); err != nil {
		log.Printf("Warning: failed to set trusted proxies: %v", err)
	}

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(opts.CORSOrigins) == 0 || containsWildcard(opts.CORSOrigins) {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	} else {
		corsConfig.AllowOrigins = opts.CORSOrigins
	}
	router.Use(cors.New(corsConfig))

	root := router.Group(opts.BasePath)
	root.GET("/", Root)
	root.GET("/health", Health)

	requireAdmin := h.AuthMiddleware.RequireAdmin()

	api := root.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/login", h.RateLimiter.Limit(middleware.LoginRateLimitConfig()), h.Auth.Login)
			authGroup.POST("/logout", requireAdmin, h.Auth.Logout)
			authGroup.GET("/me", requireAdmin, h.Auth.GetMe)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", h.Category.ListCategories)
			categories.POST("", requireAdmin, h.Category.CreateCategory)

			categoryWithID := categories.Group("/:id")
			categoryWithID.Use(middleware.ExtractUintParam("id", categoryIDKey))
			{
				categoryWithID.GET("", h.Category.GetCategory)
				categoryWithID.PUT("", requireAdmin, h.Category.UpdateCategory)
				categoryWithID.DELETE("", requireAdmin, h.Category.DeleteCategory)
			}
		}

		questions := api.Group("/questions")
		{
			questions.GET("/count/total", h.Question.CountQuestions)
			questions.GET("", requireAdmin, h.Question.ListQuestions)
			questions.POST("", requireAdmin, h.Question.CreateQuestion)

			questionWithID := questions.Group("/:id")
			questionWithID.Use(requireAdmin, middleware.ExtractUintParam("id", questionIDKey))
			{
				questionWithID.GET("", h.Question.GetQuestion)
				questionWithID.PUT("", h.Question.UpdateQuestion)
				questionWithID.DELETE("", h.Question.DeleteQuestion)
			}
		}

		games := api.Group("/games")
		{
			playerLimit := h.RateLimiter.LimitByIP(middleware.PlayerRateLimitConfig())
			games.POST("/players", playerLimit, h.Game.RegisterPlayer)
			games.POST("/start", playerLimit, h.Game.StartGame)
			games.POST("/:id/submit", middleware.ExtractUintParam("id", sessionIDKey), h.Game.SubmitGame)
		}

		results := api.Group("/results")
		results.Use(requireAdmin)
		{
			results.GET("", h.Result.ListResults)
			results.GET("/export", h.Result.ExportResults)

			resultWithID := results.Group("/:id")
			resultWithID.Use(middleware.ExtractUintParam("id", sessionIDKey))
			{
				resultWithID.GET("", h.Result.GetResult)
				resultWithID.DELETE("", h.Result.DeleteResult)
				resultWithID.PATCH("/score", h.Result.UpdateScore)
			}
		}

		settings := api.Group("/settings")
		{
			settings.GET("", h.Settings.GetSettings)
			settings.PUT("", requireAdmin, h.Settings.UpdateSettings)
		}

		scoreboard := api.Group("/scoreboard")
		{
			scoreboard.GET("", h.Scoreboard.GetScoreboard)
			scoreboard.GET("/stream", h.Scoreboard.Stream)
			scoreboard.GET("/ws", h.Scoreboard.WebSocket)
		}
	}

	return router
}

func containsWildcard(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}
