package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application-level configuration.
type Config struct {
	// HTTP
	Host              string
	Port              string
	ReadHeaderTimeout time.Duration

	// Persistence
	StateDir  string // slot files live here when Redis is not configured
	RedisAddr string // empty means the file backend
	RedisDB   int

	// Recommendation service
	OpenAIKey        string
	OpenAIModel      string
	RecommendTimeout time.Duration

	// Booking
	ConfirmDelay time.Duration

	// Theme fallback when no preference is stored
	AmbientDark bool
}

// Load reads configuration from the environment, with a best-effort .env
// file load first. Every value has a usable default.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Host:              getEnv("HOST", "localhost"),
		Port:              getEnv("PORT", "8092"),
		ReadHeaderTimeout: getEnvDuration("READ_HEADER_TIMEOUT", 20*time.Second),
		StateDir:          getEnv("STATE_DIR", "state"),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RedisDB:           getEnvInt("REDIS_DB", 0),
		OpenAIKey:         getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		RecommendTimeout:  getEnvDuration("RECOMMEND_TIMEOUT", 30*time.Second),
		ConfirmDelay:      getEnvDuration("CONFIRM_DELAY", 2*time.Second),
		AmbientDark:       getEnvBool("AMBIENT_DARK", false),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return n
}

func getEnvBool(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}

	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}

	return b
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}
