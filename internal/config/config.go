package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Политики обработки нераспарсенных ответов AI при сидировании.
const (
	SeedParsePolicyFail = "fail" // ошибка парсинга прерывает цикл
	SeedParsePolicySkip = "skip" // ответ считается отсутствующим, цикл продолжается
)

// Config содержит конфигурацию сервиса.
type Config struct {
	// Настройки HTTP сервера
	ServerPort   int           `envconfig:"SERVER_PORT" default:"8080"`
	BasePath     string        `envconfig:"SERVER_BASE_PATH" default:"/api"`
	ReadTimeout  time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"15s"`
	IdleTimeout  time.Duration `envconfig:"SERVER_IDLE_TIMEOUT" default:"60s"`
	LogLevel     string        `envconfig:"LOG_LEVEL" default:"info"`

	// Настройки CORS
	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`

	// Настройки PostgreSQL
	DBHost        string        `envconfig:"DB_HOST" default:"localhost"`
	DBPort        string        `envconfig:"DB_PORT" default:"5432"`
	DBUser        string        `envconfig:"DB_USER" default:"postgres"`
	DBPassword    string        `envconfig:"DB_PASSWORD" default:"postgres"`
	DBName        string        `envconfig:"DB_NAME" default:"challenges_db"`
	DBSSLMode     string        `envconfig:"DB_SSL_MODE" default:"disable"`
	DBMaxConns    int32         `envconfig:"DB_MAX_CONNECTIONS" default:"10"`
	MigrationsDir string        `envconfig:"MIGRATIONS_DIR" default:"migrations"`
	DBConnTimeout time.Duration `envconfig:"DB_CONN_TIMEOUT" default:"10s"`

	// Настройки Redis (rate limiting)
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// Настройки AI (OpenAI-совместимый endpoint)
	AIBaseURL string        `envconfig:"AI_BASE_URL" default:"https://api.openai.com/v1"`
	AIModel   string        `envconfig:"AI_MODEL" default:"gpt-3.5-turbo"`
	AITimeout time.Duration `envconfig:"AI_TIMEOUT" default:"60s"`
	AIAPIKey  string        `envconfig:"AI_API_KEY"`

	// Настройки сидера
	SeederMaxAttempts int    `envconfig:"SEEDER_MAX_ATTEMPTS" default:"5"`
	SeederParsePolicy string `envconfig:"SEEDER_PARSE_POLICY" default:"fail"`
}

// GetDSN возвращает строку подключения (DSN) для PostgreSQL.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// GetMaskedDSN возвращает DSN с замаскированным паролем для логирования.
func (c *Config) GetMaskedDSN() string {
	dsn := c.GetDSN()
	parts := strings.Split(dsn, "@")
	if len(parts) != 2 {
		return "[invalid dsn format]"
	}
	userInfo := strings.Split(parts[0], ":")
	if len(userInfo) >= 2 {
		userInfo[len(userInfo)-1] = "********"
	}
	return strings.Join(userInfo, ":") + "@" + parts[1]
}

// LoadConfig загружает конфигурацию из .env файла (если есть) и переменных окружения.
func LoadConfig(envPath string) (*Config, error) {
	// .env опционален: в контейнере переменные приходят из окружения
	_ = godotenv.Load(envPath)

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	if cfg.AIAPIKey == "" {
		return nil, fmt.Errorf("AI_API_KEY is required")
	}

	if cfg.SeederParsePolicy != SeedParsePolicyFail && cfg.SeederParsePolicy != SeedParsePolicySkip {
		return nil, fmt.Errorf("invalid SEEDER_PARSE_POLICY %q: must be %q or %q",
			cfg.SeederParsePolicy, SeedParsePolicyFail, SeedParsePolicySkip)
	}
	if cfg.SeederMaxAttempts <= 0 {
		cfg.SeederMaxAttempts = 5
	}

	return &cfg, nil
}
