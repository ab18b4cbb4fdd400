package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rinchamnan16/younan24/internal/config"
	"github.com/rinchamnan16/younan24/internal/generate"
)

// buildProvider constructs the configured generation provider. The video
// generator is nil for providers that cannot produce videos.
func buildProvider(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (generate.Provider, generate.VideoGenerator, error) {
	switch cfg.Generation.Provider {
	case "gemini":
		if cfg.Gemini.APIKey == "" {
			return nil, nil, errors.New("GEMINI_API_KEY environment variable is required")
		}
		p, err := generate.NewGeminiProvider(ctx, cfg.Gemini.APIKey, cfg.Generation.PollInterval(), logger)
		if err != nil {
			return nil, nil, fmt.Errorf("creating gemini provider: %w", err)
		}
		return p, p, nil
	case "openai":
		if cfg.OpenAI.Token == "" {
			return nil, nil, errors.New("OPENAI_TOKEN environment variable is required")
		}
		return generate.NewOpenAIProvider(cfg.OpenAI.Token), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown generation provider %q", cfg.Generation.Provider)
	}
}
