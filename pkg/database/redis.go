package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/yourusername/quiz-game-api/internal/config"
)

// redisPingTimeout ограничивает проверку подключения при старте
const redisPingTimeout = 5 * time.Second

// OpenRedis подключается к Redis для кеша табло, отзыва токенов и rate limiting.
// Если Redis выключен в конфигурации, возвращает nil без ошибки: сервис работает только на PostgreSQL.
func OpenRedis(ctx context.Context, cfg config.RedisConfig) (redis.UniversalClient, error) {
	if !cfg.Enabled {
		log.Println("[Redis] Отключен (REDIS_ENABLED=false): кеш табло, отзыв токенов и rate limiting не используются")
		return nil, nil
	}

	options, mode, err := redisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewUniversalClient(options)

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis (mode: %s, addrs: %v): %w", mode, options.Addrs, err)
	}

	log.Printf("[Redis] Подключен (mode: %s, addrs: %v)", mode, options.Addrs)
	return client, nil
}

// redisOptions строит опции универсального клиента: single, sentinel или cluster
func redisOptions(cfg config.RedisConfig) (*redis.UniversalOptions, string, error) {
	addrs := cfg.Addrs
	if len(addrs) == 0 && cfg.Addr != "" {
		addrs = []string{cfg.Addr}
	}
	if len(addrs) == 0 {
		return nil, "", fmt.Errorf("redis configuration error: addrs or addr must be provided")
	}

	options := &redis.UniversalOptions{
		Addrs:           addrs,
		Password:        cfg.Password,
		DB:              cfg.DB,
		MaxRetries:      cfg.MaxRetries,
		MinRetryBackoff: time.Duration(cfg.MinRetryBackoff) * time.Millisecond,
		MaxRetryBackoff: time.Duration(cfg.MaxRetryBackoff) * time.Millisecond,
	}

	mode := cfg.Mode
	if mode == "" {
		mode = "single"
	}

	switch mode {
	case "single":
		// с несколькими адресами UniversalClient стал бы кластером
		options.Addrs = addrs[:1]
	case "sentinel":
		if cfg.MasterName == "" {
			return nil, "", fmt.Errorf("redis sentinel mode requires MasterName")
		}
		options.MasterName = cfg.MasterName
	case "cluster":
	default:
		return nil, "", fmt.Errorf("unsupported redis mode: %s", mode)
	}
	return options, mode, nil
}
