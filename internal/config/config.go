package config

import (
	"os"
	"strconv"
	"time"
)

const (
	// RestartPolicyAbandon silently abandons an unfinished questionnaire
	// when /quiz is issued again; RestartPolicyResume picks it up at the
	// first unanswered question instead.
	RestartPolicyAbandon = "abandon"
	RestartPolicyResume  = "resume"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	ServerPort string
	JWTSecret  string

	TelegramToken  string
	WebhookBaseURL string
	WebhookSecret  string

	OpenAIKey         string
	OpenAIModel       string
	OpenAITemperature float32
	OpenAIMaxTokens   int
	OpenAITopP        float32
	ReportTimeout     time.Duration

	QuizFileUK  string
	QuizFileDE  string
	PromptsFile string

	RestartPolicy string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "hospitalquiz"),

		ServerPort: getEnv("SERVER_PORT", "8080"),
		JWTSecret:  getEnv("JWT_SECRET", "super-secret-key-change-me"),

		TelegramToken:  getEnv("TELEGRAM_BOT_TOKEN", ""),
		WebhookBaseURL: getEnv("WEBHOOK_BASE_URL", ""),
		WebhookSecret:  getEnv("WEBHOOK_SECRET", ""),

		OpenAIKey:         getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAITemperature: getEnvFloat("OPENAI_TEMPERATURE", 0.7),
		OpenAIMaxTokens:   getEnvInt("OPENAI_MAX_TOKENS", 2000),
		OpenAITopP:        getEnvFloat("OPENAI_TOP_P", 0.95),
		ReportTimeout:     getEnvDuration("REPORT_TIMEOUT", 60*time.Second),

		QuizFileUK:  getEnv("QUIZ_FILE_UK", "data/quizes.yaml"),
		QuizFileDE:  getEnv("QUIZ_FILE_DE", "data/quizes_de.yaml"),
		PromptsFile: getEnv("PROMPTS_FILE", "data/prompts.md"),

		RestartPolicy: getEnv("QUIZ_RESTART_POLICY", RestartPolicyAbandon),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float32) float32 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 32); err == nil {
			return float32(f)
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
