package email

import (
	"github.com/prakharsingh-74/meeting-summarizer/internal/config"
	"github.com/prakharsingh-74/meeting-summarizer/internal/logger"
)

// New creates the Deliverer for the given config. Without a complete relay
// configuration it falls back to demo mode, which keeps the composition
// pipeline usable (and testable) with no credentials.
func New(cfg *config.Config, log logger.Logger) Deliverer {
	if !cfg.SMTPConfigured() {
		return &implDemo{logger: log}
	}
	return &implSMTP{cfg: cfg.SMTP, logger: log}
}
