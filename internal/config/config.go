package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	DB          DBConfig
	HTTP        HTTPConfig
	Bot         BotConfig
	Redis       RedisConfig
	LLM         LLMConfig
	PetrSU      PetrSUConfig
	// RabbitMQURL читается для совместимости с docker-compose, очередь не используется
	RabbitMQURL string
}

type DBConfig struct {
	URL            string
	MigrationsPath string // пусто - встроенные миграции
}

type HTTPConfig struct {
	Addr string
}

type BotConfig struct {
	Token        string
	APIURL       string // адрес REST API для бота
	ReminderHour int    // час (по локальному времени), в который рассылаются напоминания о сроках
}

type RedisConfig struct {
	Host       string
	Port       int
	Password   string
	DB         int
	SessionTTL time.Duration
}

// Enabled - Redis используется для сессий, только если задан хост
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type LLMConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

type PetrSUConfig struct {
	BaseURL string
}

// Load читает .env (если есть) и переменные окружения
func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	}

	cfg := &Config{
		Environment: getEnv("ENV", "development"),
		DB: DBConfig{
			URL:            os.Getenv("DATABASE_URL"),
			MigrationsPath: os.Getenv("MIGRATIONS_DIR"),
		},
		HTTP: HTTPConfig{
			Addr: getEnv("HTTP_ADDR", ":8000"),
		},
		Bot: BotConfig{
			Token:        os.Getenv("BOT_TOKEN"),
			APIURL:       getEnv("API_URL", "http://localhost:8000"),
			ReminderHour: getInt("REMINDER_HOUR", 9),
		},
		Redis: RedisConfig{
			Host:       os.Getenv("REDIS_HOST"),
			Port:       getInt("REDIS_PORT", 6379),
			Password:   os.Getenv("REDIS_PASSWORD"),
			DB:         getInt("REDIS_DB", 0),
			SessionTTL: getDuration("SESSION_TTL", 24*time.Hour),
		},
		LLM: LLMConfig{
			APIKey:  getEnv("OPENAI_API_KEY", os.Getenv("openAI_API_KEY")),
			BaseURL: getEnv("LLM_BASE_URL", "https://openrouter.ai/api/v1"),
			Model:   getEnv("LLM_MODEL", "deepseek/deepseek-r1:free"),
		},
		PetrSU: PetrSUConfig{
			BaseURL: getEnv("PETRSU_API_URL", "https://petrsu.egipti.com/api/v2"),
		},
		RabbitMQURL: os.Getenv("RABBITMQ_URL"),
	}

	if cfg.Bot.ReminderHour < 0 || cfg.Bot.ReminderHour > 23 {
		return nil, fmt.Errorf("REMINDER_HOUR must be in 0..23, got %d", cfg.Bot.ReminderHour)
	}

	return cfg, nil
}

// ValidateAPI проверяет обязательные поля для REST API
func (c *Config) ValidateAPI() error {
	if c.DB.URL == "" {
		return fmt.Errorf("DATABASE_URL is required but not set")
	}
	return nil
}

// ValidateBot проверяет обязательные поля для бота
func (c *Config) ValidateBot() error {
	if c.Bot.Token == "" {
		return fmt.Errorf("BOT_TOKEN is required but not set")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("⚠️  %s=%q is not a number, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("⚠️  %s=%q is not a duration, using %s", key, v, fallback)
		return fallback
	}
	return d
}
