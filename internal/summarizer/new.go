package summarizer

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/option"

	"github.com/prakharsingh-74/meeting-summarizer/internal/config"
	"github.com/prakharsingh-74/meeting-summarizer/internal/logger"
)

type implClient struct {
	completer completer
	logger    logger.Logger
}

// completer is the raw single-shot call to one provider.
type completer interface {
	complete(ctx context.Context, system, user string) (string, error)
	name() string
}

// New creates a Client backed by the configured provider. The openai provider
// also covers OpenAI-compatible endpoints such as Groq via base_url.
func New(cfg config.LLMConfig, log logger.Logger) (Client, error) {
	var comp completer
	switch cfg.Provider {
	case "gemini":
		comp = &implGemini{apiKey: cfg.APIKey, model: cfg.Model}
	case "openai":
		opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
		if cfg.BaseURL != "" {
			opts = append(opts, option.WithBaseURL(cfg.BaseURL))
		}
		comp = &implOpenAI{model: cfg.Model, opts: opts}
	default:
		return nil, fmt.Errorf("llm provider %s not supported", cfg.Provider)
	}

	return &implClient{completer: comp, logger: log}, nil
}
