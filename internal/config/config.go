package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/yourusername/quiz-game-api/internal/domain/entity"
)

// Config хранит все настройки приложения
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	Admin      AdminConfig      `mapstructure:"admin"`
	Game       GameConfig       `mapstructure:"game"`
	Scoreboard ScoreboardConfig `mapstructure:"scoreboard"`
	Mail       MailConfig       `mapstructure:"mail"`
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port         string `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"` // 0: SSE-потоки живут долго
	BasePath     string `mapstructure:"base_path"`
	CORSOrigins  string `mapstructure:"cors_origins"` // через запятую
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host           string `mapstructure:"host"`
	Port           string `mapstructure:"port"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	DBName         string `mapstructure:"dbname"`
	SSLMode        string `mapstructure:"sslmode"`
	MigrationsPath string `mapstructure:"migrations_path"`
}

// RedisConfig содержит унифицированные настройки подключения к Redis
// Поддерживает режимы: single, sentinel, cluster
type RedisConfig struct {
	// Enabled: без Redis табло читается напрямую из БД, а ограничение частоты запросов отключено
	Enabled bool `mapstructure:"enabled"`

	// Mode: Режим работы Redis ("single", "sentinel", "cluster"). По умолчанию "single".
	Mode string `mapstructure:"mode"`

	// Addrs: Список адресов Redis (хост:порт). Используется для всех режимов.
	// Для 'single', если не пуст, используется первый адрес из списка.
	Addrs []string `mapstructure:"addrs"`

	// Addr: Адрес для режима 'single', если Addrs пустой.
	Addr string `mapstructure:"addr"`

	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// MasterName: Имя мастер-сервера Redis (только для режима "sentinel")
	MasterName string `mapstructure:"master_name"`

	// MaxRetries: Максимальное количество попыток переподключения (0 - значение go-redis по умолчанию, -1 - без повторов).
	MaxRetries int `mapstructure:"max_retries"`

	// MinRetryBackoff и MaxRetryBackoff в миллисекундах
	MinRetryBackoff int `mapstructure:"min_retry_backoff"`
	MaxRetryBackoff int `mapstructure:"max_retry_backoff"`
}

// JWTConfig содержит настройки токена администратора
type JWTConfig struct {
	Secret        string `mapstructure:"secret"`
	ExpirationHrs int    `mapstructure:"expiration_hrs"`
	Issuer        string `mapstructure:"issuer"`
}

// AdminConfig - единственная учетная запись администратора.
// Password может быть bcrypt-хешем или открытым текстом.
type AdminConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// GameConfig - настройки игры, которые записываются в БД при первом запуске
type GameConfig struct {
	QuestionsPerGame int `mapstructure:"questions_per_game"`
	TimerSeconds     int `mapstructure:"timer_seconds"`
	PointsCorrect    int `mapstructure:"points_correct"`
	PointsWrong      int `mapstructure:"points_wrong"`
	TimeBonusMax     int `mapstructure:"time_bonus_max"`
}

// ScoreboardConfig содержит настройки живого табло
type ScoreboardConfig struct {
	KeepaliveSeconds int `mapstructure:"keepalive_seconds"`
	TopLimit         int `mapstructure:"top_limit"`
	CacheTTLSeconds  int `mapstructure:"cache_ttl_seconds"`
}

// MailConfig содержит настройки отправки писем через Resend. Пустой ключ отключает почту.
type MailConfig struct {
	ResendAPIKey string `mapstructure:"resend_api_key"`
	From         string `mapstructure:"from"`
}

// PostgresConnectionString формирует строку подключения к PostgreSQL
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// PostgresURL формирует URL подключения для golang-migrate
func (d *DatabaseConfig) PostgresURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Origins возвращает список разрешенных CORS-источников
func (s *ServerConfig) Origins() []string {
	var origins []string
	for _, origin := range strings.Split(s.CORSOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// NormalizedBasePath возвращает префикс маршрутов без завершающего слеша ("" или "/quiz")
func (s *ServerConfig) NormalizedBasePath() string {
	base := strings.TrimRight(strings.TrimSpace(s.BasePath), "/")
	if base != "" && !strings.HasPrefix(base, "/") {
		base = "/" + base
	}
	return base
}

// DefaultSettings возвращает настройки игры для первого запуска
func (g GameConfig) DefaultSettings() entity.GameSettings {
	return entity.GameSettings{
		ID:               entity.SettingsSingletonID,
		QuestionsPerGame: g.QuestionsPerGame,
		TimerSeconds:     g.TimerSeconds,
		PointsCorrect:    g.PointsCorrect,
		PointsWrong:      g.PointsWrong,
		TimeBonusMax:     g.TimeBonusMax,
	}
}

// Keepalive возвращает интервал keepalive для зрителей табло
func (s ScoreboardConfig) Keepalive() time.Duration {
	return time.Duration(s.KeepaliveSeconds) * time.Second
}

// CacheTTL возвращает время жизни кеша табло
func (s ScoreboardConfig) CacheTTL() time.Duration {
	return time.Duration(s.CacheTTLSeconds) * time.Second
}

func setDefaults(vip *viper.Viper) {
	vip.SetDefault("server.port", "8000")
	vip.SetDefault("server.read_timeout", 15)
	vip.SetDefault("server.write_timeout", 0)
	vip.SetDefault("server.base_path", "")
	vip.SetDefault("server.cors_origins", "http://localhost:5173,http://localhost:3000")

	vip.SetDefault("database.port", "5432")
	vip.SetDefault("database.sslmode", "disable")
	vip.SetDefault("database.migrations_path", "file://migrations")

	vip.SetDefault("redis.enabled", false)
	vip.SetDefault("redis.mode", "single")
	vip.SetDefault("redis.addr", "localhost:6379")

	vip.SetDefault("jwt.expiration_hrs", 24)
	vip.SetDefault("jwt.issuer", "quiz-game-api")

	vip.SetDefault("admin.username", "admin")

	vip.SetDefault("game.questions_per_game", 15)
	vip.SetDefault("game.timer_seconds", 20)
	vip.SetDefault("game.points_correct", 100)
	vip.SetDefault("game.points_wrong", 0)
	vip.SetDefault("game.time_bonus_max", 50)

	vip.SetDefault("scoreboard.keepalive_seconds", 30)
	vip.SetDefault("scoreboard.top_limit", 10)
	vip.SetDefault("scoreboard.cache_ttl_seconds", 5)
}

func bindEnv(vip *viper.Viper) {
	bindings := map[string]string{
		"server.port":          "SERVER_PORT",
		"server.read_timeout":  "SERVER_READ_TIMEOUT",
		"server.write_timeout": "SERVER_WRITE_TIMEOUT",
		"server.base_path":     "BASE_PATH",
		"server.cors_origins":  "CORS_ORIGINS",

		"database.host":            "DATABASE_HOST",
		"database.port":            "DATABASE_PORT",
		"database.user":            "DATABASE_USER",
		"database.password":        "DATABASE_PASSWORD",
		"database.dbname":          "DATABASE_DBNAME",
		"database.sslmode":         "DATABASE_SSLMODE",
		"database.migrations_path": "DATABASE_MIGRATIONS_PATH",

		"redis.enabled":     "REDIS_ENABLED",
		"redis.mode":        "REDIS_MODE",
		"redis.addrs":       "REDIS_ADDRS",
		"redis.addr":        "REDIS_ADDR",
		"redis.password":    "REDIS_PASSWORD",
		"redis.db":          "REDIS_DB",
		"redis.master_name": "REDIS_MASTER_NAME",

		"jwt.secret":         "SECRET_KEY",
		"jwt.expiration_hrs": "JWT_EXPIRATION_HRS",
		"jwt.issuer":         "JWT_ISSUER",

		"admin.username": "ADMIN_USERNAME",
		"admin.password": "ADMIN_PASSWORD",

		"game.questions_per_game": "GAME_QUESTIONS_PER_GAME",
		"game.timer_seconds":      "GAME_TIMER_SECONDS",
		"game.points_correct":     "GAME_POINTS_CORRECT",
		"game.points_wrong":       "GAME_POINTS_WRONG",
		"game.time_bonus_max":     "GAME_TIME_BONUS_MAX",

		"scoreboard.keepalive_seconds": "SCOREBOARD_KEEPALIVE_SECONDS",
		"scoreboard.top_limit":         "SCOREBOARD_TOP_LIMIT",
		"scoreboard.cache_ttl_seconds": "SCOREBOARD_CACHE_TTL_SECONDS",

		"mail.resend_api_key": "RESEND_API_KEY",
		"mail.from":           "MAIL_FROM",
	}
	for key, env := range bindings {
		_ = vip.BindEnv(key, env)
	}
}

// Load загружает конфигурацию из файла и переменных окружения и проверяет ее
func Load(configPath string) (*Config, error) {
	cfg, err := read(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDatabase загружает конфигурацию, проверяя только секцию database.
// Используется утилитой миграций, которой не нужны секреты приложения.
func LoadDatabase(configPath string) (*DatabaseConfig, error) {
	cfg, err := read(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Database.Validate(); err != nil {
		return nil, err
	}
	return &cfg.Database, nil
}

func read(configPath string) (*Config, error) {
	vip := viper.New() // Используем новый экземпляр Viper, чтобы избежать глобального состояния

	setDefaults(vip)
	bindEnv(vip)

	if configPath != "" {
		vip.SetConfigFile(configPath)
		// Файл не обязателен: все ключи привязаны к переменным окружения
		if err := vip.ReadInConfig(); err != nil {
			if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
				log.Printf("Файл конфигурации '%s' не найден, используются переменные окружения/умолчания.", configPath)
			} else {
				log.Printf("Предупреждение: не удалось прочитать файл конфигурации '%s': %v", configPath, err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// REDIS_ADDRS приходит из окружения одной строкой
	if len(cfg.Redis.Addrs) == 1 && strings.Contains(cfg.Redis.Addrs[0], ",") {
		cfg.Redis.Addrs = splitList(cfg.Redis.Addrs[0])
	}

	if os.Getenv("GIN_MODE") != "release" {
		log.Printf("--- Загруженные значения конфигурации ---")
		log.Printf("Server Port: %s, Base Path: %q", cfg.Server.Port, cfg.Server.NormalizedBasePath())
		log.Printf("CORS Origins: %v", cfg.Server.Origins())
		log.Printf("Database: %s@%s:%s/%s (sslmode=%s)", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName, cfg.Database.SSLMode)
		log.Printf("Redis Enabled: %t, Mode: %s", cfg.Redis.Enabled, cfg.Redis.Mode)
		log.Printf("Admin Username: %s", cfg.Admin.Username)
		log.Printf("Game Defaults: %+v", cfg.Game)
		log.Printf("Mail Enabled: %t", cfg.Mail.ResendAPIKey != "")
		log.Printf("-----------------------------------------")
	}

	return &cfg, nil
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt secret is required in config (check SECRET_KEY env var)")
	}
	if c.Admin.Username == "" || c.Admin.Password == "" {
		return fmt.Errorf("admin credentials are required in config (check ADMIN_USERNAME, ADMIN_PASSWORD env vars)")
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if c.Game.QuestionsPerGame < 1 || c.Game.QuestionsPerGame > 50 {
		return fmt.Errorf("game.questions_per_game must be between 1 and 50, got %d", c.Game.QuestionsPerGame)
	}
	if c.Game.TimerSeconds < 5 || c.Game.TimerSeconds > 120 {
		return fmt.Errorf("game.timer_seconds must be between 5 and 120, got %d", c.Game.TimerSeconds)
	}
	if c.Game.PointsCorrect < 0 || c.Game.PointsWrong < 0 || c.Game.TimeBonusMax < 0 {
		return fmt.Errorf("game points and time bonus must be non-negative")
	}
	if c.Scoreboard.KeepaliveSeconds <= 0 {
		return fmt.Errorf("scoreboard.keepalive_seconds must be positive, got %d", c.Scoreboard.KeepaliveSeconds)
	}
	if c.Scoreboard.TopLimit <= 0 {
		return fmt.Errorf("scoreboard.top_limit must be positive, got %d", c.Scoreboard.TopLimit)
	}
	if c.Redis.Enabled && len(c.Redis.Addrs) == 0 && c.Redis.Addr == "" {
		return fmt.Errorf("redis is enabled but no address is configured (check REDIS_ADDR or REDIS_ADDRS env vars)")
	}
	return nil
}

// Validate проверяет параметры подключения к БД
func (d *DatabaseConfig) Validate() error {
	if d.Host == "" || d.DBName == "" || d.User == "" {
		return fmt.Errorf("database configuration (host, dbname, user) is incomplete in config (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
	}
	return nil
}
