package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Gemini     GeminiConfig
	OpenAI     OpenAIConfig
	Generation GenerationConfig
	Studio     StudioConfig
	Web        WebConfig
}

type GeminiConfig struct {
	APIKey string
}

type OpenAIConfig struct {
	Token string
}

// GenerationConfig tunes the generation request client.
type GenerationConfig struct {
	Provider            string // "gemini" (default) or "openai"
	VideoPollSeconds    int    // interval between video operation polls
	VideoTimeoutMinutes int    // overall deadline for one video generation
}

// PollInterval returns the video poll interval as a duration.
func (c *GenerationConfig) PollInterval() time.Duration {
	return time.Duration(c.VideoPollSeconds) * time.Second
}

// VideoDeadline returns the overall video generation deadline as a duration.
func (c *GenerationConfig) VideoDeadline() time.Duration {
	return time.Duration(c.VideoTimeoutMinutes) * time.Minute
}

// StudioConfig carries the studio's public profile, shown in the UI header
// and settings panel. Name doubles as the export filename prefix.
type StudioConfig struct {
	Name        string
	TitleKh     string
	TitleEn     string
	Description string
	Phone       string
	Address     string
}

// WebConfig carries HTTP server settings that are not worth a flag.
type WebConfig struct {
	AllowedOrigins []string // extra CORS origins, localhost is always allowed
}

// envList reads a comma-separated environment variable.
func envList(key string) []string {
	s := os.Getenv(key)
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envString reads an environment variable with a fallback default.
func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

func Load() *Config {
	return &Config{
		Gemini: GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
		},
		OpenAI: OpenAIConfig{
			Token: os.Getenv("OPENAI_TOKEN"),
		},
		Generation: GenerationConfig{
			Provider:            envString("GENERATION_PROVIDER", "gemini"),
			VideoPollSeconds:    envInt("VIDEO_POLL_SECONDS", 10),
			VideoTimeoutMinutes: envInt("VIDEO_TIMEOUT_MINUTES", 10),
		},
		Studio: StudioConfig{
			Name:        envString("STUDIO_NAME", "YouNan"),
			TitleKh:     envString("STUDIO_TITLE_KH", "យូណាន ថតរូប និងបោះពុម្ភ"),
			TitleEn:     envString("STUDIO_TITLE_EN", "YouNan Photography and Printing"),
			Description: os.Getenv("STUDIO_DESCRIPTION"),
			Phone:       os.Getenv("STUDIO_PHONE"),
			Address:     os.Getenv("STUDIO_ADDRESS"),
		},
		Web: WebConfig{
			AllowedOrigins: envList("WEB_ALLOWED_ORIGINS"),
		},
	}
}
