package email

import (
	"context"
	"fmt"

	"github.com/prakharsingh-74/meeting-summarizer/internal/logger"
)

type implDemo struct {
	logger logger.Logger
}

// Send never touches the network; it returns the envelope as a preview.
func (d *implDemo) Send(ctx context.Context, env Envelope) (Result, error) {
	preview := env

	d.logger.Info(ctx, "Demo mode: preview generated for %d recipient(s), subject %q", len(env.To), env.Subject)

	return Result{
		Demo:       true,
		Message:    fmt.Sprintf("Demo Mode: Email preview generated for %d recipient%s", len(env.To), plural(len(env.To))),
		Recipients: env.To,
		Preview:    &preview,
	}, nil
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
