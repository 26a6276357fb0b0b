package pipeline

import (
	"github.com/prakharsingh-74/meeting-summarizer/internal/config"
	"github.com/prakharsingh-74/meeting-summarizer/internal/logger"
	"github.com/prakharsingh-74/meeting-summarizer/internal/summarizer"
)

type implPipeline struct {
	cfg    *config.Config
	client summarizer.Client
	logger logger.Logger
}

// New creates a new Pipeline instance
func New(cfg *config.Config, client summarizer.Client, log logger.Logger) Pipeline {
	return &implPipeline{
		cfg:    cfg,
		client: client,
		logger: log,
	}
}
