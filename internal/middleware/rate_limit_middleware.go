package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// RateLimitConfig содержит настройки rate limiting
type RateLimitConfig struct {
	// MaxRequests - максимальное количество запросов за Window
	MaxRequests int
	// Window - временное окно для подсчёта запросов
	Window time.Duration
	// KeyPrefix - префикс для ключей в Redis
	KeyPrefix string
}

// LoginRateLimitConfig - строгий лимит для входа администратора (защита от brute-force)
func LoginRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		MaxRequests: 5,               // 5 попыток
		Window:      1 * time.Minute, // за 1 минуту
		KeyPrefix:   "rl:auth:login",
	}
}

// PlayerRateLimitConfig - лимит на регистрацию игроков и старт игр с одного IP
func PlayerRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		MaxRequests: 60,
		Window:      1 * time.Minute,
		KeyPrefix:   "rl:players",
	}
}

// RateLimiter создаёт middleware для rate limiting на основе Redis
type RateLimiter struct {
	redisClient redis.UniversalClient
}

// NewRateLimiter создает новый RateLimiter. redisClient может быть nil.
func NewRateLimiter(redisClient redis.UniversalClient) *RateLimiter {
	return &RateLimiter{redisClient: redisClient}
}

// Limit возвращает Gin middleware с заданной конфигурацией.
// Ключ формируется из IP + endpoint path. Без Redis запросы не ограничиваются.
func (rl *RateLimiter) Limit(cfg RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath() // Gin route pattern, e.g. "/api/auth/login"
		if path == "" {
			path = c.Request.URL.Path
		}
		rl.apply(c, cfg, fmt.Sprintf("%s:%s:%s", cfg.KeyPrefix, c.ClientIP(), path))
	}
}

// LimitByIP ограничивает количество запросов по IP (без привязки к path).
// Полезно для общего лимита на группу endpoints.
func (rl *RateLimiter) LimitByIP(cfg RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		rl.apply(c, cfg, fmt.Sprintf("%s:%s", cfg.KeyPrefix, c.ClientIP()))
	}
}

func (rl *RateLimiter) apply(c *gin.Context, cfg RateLimitConfig, key string) {
	if rl == nil || rl.redisClient == nil {
		c.Next()
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	// Инкрементируем счётчик
	count, err := rl.redisClient.Incr(ctx, key).Result()
	if err != nil {
		// При ошибке Redis пропускаем запрос (fail-open), но логируем
		log.Printf("[RateLimiter] Redis error for key %s: %v. Allowing request (fail-open).", key, err)
		c.Next()
		return
	}

	// Если это первый запрос в окне - устанавливаем TTL
	if count == 1 {
		if err := rl.redisClient.Expire(ctx, key, cfg.Window).Err(); err != nil {
			log.Printf("[RateLimiter] Failed to set TTL for key %s: %v", key, err)
		}
	}

	remaining := cfg.MaxRequests - int(count)
	if remaining < 0 {
		remaining = 0
	}

	ttl, _ := rl.redisClient.TTL(ctx, key).Result()
	retryAfter := int(ttl.Seconds())
	if retryAfter < 0 {
		retryAfter = int(cfg.Window.Seconds())
	}

	c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", cfg.MaxRequests))
	c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
	c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", retryAfter))

	if int(count) > cfg.MaxRequests {
		log.Printf("[RateLimiter] Rate limit exceeded for key=%s. Count=%d, Limit=%d", key, count, cfg.MaxRequests)

		c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error":       "Too many requests. Please try again later.",
			"retry_after": retryAfter,
		})
		return
	}

	c.Next()
}
