package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenAddr             string
	JWTSecret              string
	AdminUser              string
	AdminPass              string
	AuthEnabled            bool
	LoginPath              string
	PublicOrigin           string
	DBHost                 string
	DBPort                 string
	DBUser                 string
	DBPass                 string
	DBName                 string
	DBNameTest             string
	RedisHost              string
	RedisPort              string
	RedisPassword          string
	RedisDB                int
	CacheTTL               time.Duration
	StorageDriver          string
	BotAPIBase             string
	BotFileBase            string
	BotToken               string
	BotChatID              string
	BotHTTPTimeout         time.Duration
	SMTPHost               string
	SMTPPort               string
	SMTPUser               string
	SMTPPass               string
	SMTPFrom               string
	SMTPTLS                bool
	SMTPStartTLS           bool
	MinioHost              string
	MinioPort              string
	MinioUsername          string
	MinioPassword          string
	BucketName             string
	TimeOffsetHours        int
	RabbitMQURL            string
	RabbitMQHost           string
	RabbitMQPort           string
	RabbitMQUser           string
	RabbitMQPass           string
	RabbitMQVhost          string
	RabbitMQPrefetch       int
	FetchWorkerConcurrency int
	FetchRate              float64
	FetchBurst             int
	FetchRetryMax          int
	FetchRetryDelays       []time.Duration
	FetchHTTPTimeout       time.Duration
	FetchAllowPrivate      bool
	FetchAllowedHosts      []string
	FetchMaxBytes          int64
}

var AppConfig Config

// getEnv returns the environment value or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvBool(key string, defaultValue bool) bool {
	value := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	if value == "" {
		return defaultValue
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return defaultValue
	}
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvList(key string, defaultValue []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func getEnvDurationList(key string, defaultValue []time.Duration) []time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	parts := strings.Split(raw, ",")
	out := make([]time.Duration, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		parsed, err := time.ParseDuration(part)
		if err != nil {
			return defaultValue
		}
		out = append(out, parsed)
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// InitConfig loads configuration from the environment.
func InitConfig() {
	rabbitHost := getEnv("RABBITMQ_HOST", "localhost")
	rabbitPort := getEnv("RABBITMQ_PORT", "5672")
	rabbitUser := getEnv("RABBITMQ_USER", "guest")
	rabbitPass := getEnv("RABBITMQ_PASSWORD", "guest")
	rabbitVhost := getEnv("RABBITMQ_VHOST", "/")
	rabbitURL := getEnv("RABBITMQ_URL", "")
	if rabbitURL == "" {
		rabbitURL = fmt.Sprintf(
			"amqp://%s:%s@%s:%s/%s",
			url.PathEscape(rabbitUser),
			url.PathEscape(rabbitPass),
			rabbitHost,
			rabbitPort,
			url.PathEscape(rabbitVhost),
		)
	}
	apiBase := strings.TrimRight(getEnv("BOT_API_BASE", "https://api.telegram.org"), "/")
	fileBase := strings.TrimRight(getEnv("BOT_FILE_BASE", apiBase), "/")
	retryDelays := getEnvDurationList(
		"FETCH_RETRY_DELAYS",
		[]time.Duration{10 * time.Second, 30 * time.Second, 2 * time.Minute, 10 * time.Minute, 30 * time.Minute},
	)
	AppConfig = Config{
		ListenAddr:             getEnv("LISTEN_ADDR", ":8000"),
		JWTSecret:              getEnv("JWT_SECRET", "l=ax+b"),
		AdminUser:              getEnv("ADMIN_USER", "admin"),
		AdminPass:              getEnv("ADMIN_PASS", "admin123"),
		AuthEnabled:            getEnvBool("AUTH_ENABLED", true),
		LoginPath:              getEnv("LOGIN_PATH", "/login"),
		PublicOrigin:           strings.TrimRight(getEnv("PUBLIC_ORIGIN", ""), "/"),
		DBHost:                 getEnv("DB_HOST", "localhost"),
		DBPort:                 getEnv("DB_PORT", "3306"),
		DBUser:                 getEnv("DB_USER", "root"),
		DBPass:                 getEnv("DB_PASS", "root"),
		DBName:                 getEnv("DB_NAME", "BotDisk"),
		DBNameTest:             getEnv("DB_NAME_TEST", "BotDisk_Test"),
		RedisHost:              getEnv("REDIS_HOST", "localhost"),
		RedisPort:              getEnv("REDIS_PORT", "6379"),
		RedisPassword:          getEnv("REDIS_PASSWORD", ""),
		RedisDB:                0,
		CacheTTL:               getEnvDuration("CACHE_TTL", 24*time.Hour),
		StorageDriver:          getEnv("STORAGE_DRIVER", "chatbot"),
		BotAPIBase:             apiBase,
		BotFileBase:            fileBase,
		BotToken:               getEnv("BOT_TOKEN", ""),
		BotChatID:              getEnv("BOT_CHAT_ID", ""),
		BotHTTPTimeout:         getEnvDuration("BOT_HTTP_TIMEOUT", 2*time.Minute),
		SMTPHost:               getEnv("SMTP_HOST", ""),
		SMTPPort:               getEnv("SMTP_PORT", "587"),
		SMTPUser:               getEnv("SMTP_USER", ""),
		SMTPPass:               getEnv("SMTP_PASS", ""),
		SMTPFrom:               getEnv("SMTP_FROM", ""),
		SMTPTLS:                getEnvBool("SMTP_TLS", false),
		SMTPStartTLS:           getEnvBool("SMTP_STARTTLS", false),
		MinioHost:              getEnv("MINIO_HOST", "localhost"),
		MinioPort:              getEnv("MINIO_PORT", "9000"),
		MinioUsername:          getEnv("MINIO_USERNAME", "minioadmin"),
		MinioPassword:          getEnv("MINIO_PASSWORD", "minioadmin"),
		BucketName:             getEnv("BUCKET_NAME", "botdisk"),
		TimeOffsetHours:        getEnvInt("TIME_OFFSET_HOURS", 8),
		RabbitMQURL:            rabbitURL,
		RabbitMQHost:           rabbitHost,
		RabbitMQPort:           rabbitPort,
		RabbitMQUser:           rabbitUser,
		RabbitMQPass:           rabbitPass,
		RabbitMQVhost:          rabbitVhost,
		RabbitMQPrefetch:       getEnvInt("RABBITMQ_PREFETCH", 8),
		FetchWorkerConcurrency: getEnvInt("FETCH_WORKER_CONCURRENCY", 4),
		FetchRate:              getEnvFloat("FETCH_RATE", 2),
		FetchBurst:             getEnvInt("FETCH_BURST", 4),
		FetchRetryMax:          getEnvInt("FETCH_RETRY_MAX", 5),
		FetchRetryDelays:       retryDelays,
		FetchHTTPTimeout:       getEnvDuration("FETCH_HTTP_TIMEOUT", 30*time.Minute),
		FetchAllowPrivate:      getEnvBool("FETCH_ALLOW_PRIVATE", false),
		FetchAllowedHosts:      getEnvList("FETCH_ALLOW_HOSTS", nil),
		FetchMaxBytes:          getEnvInt64("FETCH_MAX_BYTES", 0),
	}
}
