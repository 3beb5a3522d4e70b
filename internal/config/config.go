package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	// placeholderKey is the value shipped in the sample .env file.
	placeholderKey = "your_actual_api_key_here"
)

// Config stores runtime configuration loaded from environment variables.
type Config struct {
	Provider       string
	GeminiKey      string
	GeminiModel    string
	OpenAIKey      string
	OpenAIEndpoint string
	OpenAIModel    string
	UploadDir      string
	StaticDir      string
	MaxUploadMB    int
	Port           string
	LogLevel       string
}

// Load reads configuration from the environment, providing sensible defaults.
func Load() Config {
	// Load .env file if it exists (useful for development)
	_ = godotenv.Load()
	cfg := Config{
		Provider:       strings.ToLower(getEnv("AI_PROVIDER", ProviderGemini)),
		GeminiKey:      strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiModel:    getEnv("GEMINI_MODEL", "models/gemini-2.0-flash-001"),
		OpenAIKey:      strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIEndpoint: getEnv("OPENAI_API_ENDPOINT", "https://api.openai.com/v1"),
		OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		UploadDir:      getEnv("UPLOAD_DIR", "./uploads"),
		StaticDir:      getEnv("STATIC_DIR", "./static"),
		MaxUploadMB:    getEnvInt("MAX_UPLOAD_MB", 10),
		Port:           getEnv("PORT", "8000"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}

	for _, dir := range []string{cfg.UploadDir, cfg.StaticDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("failed to ensure dir %s: %v", dir, err)
		}
	}

	return cfg
}

// APIKey returns the credential of the selected provider.
func (c Config) APIKey() string {
	if c.Provider == ProviderOpenAI {
		return c.OpenAIKey
	}
	return c.GeminiKey
}

// APIKeyConfigured reports whether the selected provider has a real key.
// Only presence is checked, not validity.
func (c Config) APIKeyConfigured() bool {
	key := c.APIKey()
	return key != "" && key != placeholderKey
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
