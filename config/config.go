package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config is the full runtime configuration, loaded once at startup and
// passed explicitly to the components that need it.
type Config struct {
	Port          string
	AllowedOrigin string
	UploadDir     string
	Env           string

	SpeechAPIKey string
	OpenAIAPIKey string
	NotesModel   string
}

// Load reads .env (when present) and then the process environment.
func Load() *Config {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		Port:          getEnv("PORT", "3000"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "*"),
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		Env:           getEnv("APP_ENV", "production"),
		SpeechAPIKey:  os.Getenv("GOOGLE_SPEECH_API_KEY"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		NotesModel:    getEnv("NOTES_MODEL", "gpt-4o-mini"),
	}
}

// Development reports whether the dev flag is set; error responses include
// stack traces only in this mode.
func (c *Config) Development() bool {
	return c.Env == "development"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
