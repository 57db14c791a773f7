package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string

	// 缓存与聚合
	CacheTTL       time.Duration
	MaxPerCategory int

	FetchConcurrency     int
	FetchTimeout         time.Duration
	TransformConcurrency int
	TransformTimeout     time.Duration
	TransformRPS         float64

	// SourcesFile 为空时使用内置的默认订阅源
	SourcesFile string

	// Redis 快照层，RedisAddr 为空表示关闭
	RedisAddr      string
	SnapshotMaxAge time.Duration

	// WarmCron 为空表示不做定时预热
	WarmCron string

	LogLevel string
	LogFile  string
}

func Load() *Config {
	// .env 不存在时静默忽略
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:              getEnv("APP_PORT", "8080"),
		GeminiAPIKey:         getEnv("GEMINI_API_KEY", ""),
		GeminiModel:          getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		GeminiBaseURL:        getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		CacheTTL:             getDuration("CACHE_TTL", 30*time.Minute),
		MaxPerCategory:       getInt("MAX_PER_CATEGORY", 30),
		FetchConcurrency:     getInt("FETCH_CONCURRENCY", 4),
		FetchTimeout:         getDuration("FETCH_TIMEOUT", 15*time.Second),
		TransformConcurrency: getInt("TRANSFORM_CONCURRENCY", 4),
		TransformTimeout:     getDuration("TRANSFORM_TIMEOUT", 30*time.Second),
		TransformRPS:         getFloat("TRANSFORM_RPS", 0),
		SourcesFile:          getEnv("SOURCES_FILE", ""),
		RedisAddr:            getEnv("REDIS_ADDR", ""),
		SnapshotMaxAge:       getDuration("SNAPSHOT_MAX_AGE", 5*time.Minute),
		WarmCron:             getEnv("WARM_CRON", ""),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		LogFile:              getEnv("LOG_FILE", ""),
	}

	log.Printf("config loaded: port=%s model=%s ttl=%s", cfg.AppPort, cfg.GeminiModel, cfg.CacheTTL)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getInt 解析失败或非正数时回退默认值
func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("config: invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}

func getFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		log.Printf("config: invalid %s=%q, using %v", key, v, def)
		return def
	}
	return f
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("config: invalid %s=%q, using %s", key, v, def)
		return def
	}
	return d
}

// Now returns current time, 方便后续做可测试封装
func Now() time.Time {
	return time.Now()
}
