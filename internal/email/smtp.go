package email

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/prakharsingh-74/meeting-summarizer/internal/config"
	"github.com/prakharsingh-74/meeting-summarizer/internal/logger"
)

type implSMTP struct {
	cfg    config.SMTPConfig
	logger logger.Logger
}

// Send submits the envelope to the configured relay. Any connect, auth, or
// relay rejection comes back as a DeliveryError; there is no retry and no
// per-recipient confirmation beyond relay acceptance.
func (s *implSMTP) Send(ctx context.Context, env Envelope) (Result, error) {
	msg, err := s.buildMessage(env)
	if err != nil {
		return Result{}, &DeliveryError{Err: err}
	}

	client, err := s.buildClient()
	if err != nil {
		return Result{}, &DeliveryError{Err: err}
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return Result{}, &DeliveryError{Err: err}
	}

	s.logger.Info(ctx, "Email sent to %d recipient(s) via %s", len(env.To), s.cfg.Host)

	return Result{
		Message:    fmt.Sprintf("Summary shared with %d recipient%s", len(env.To), plural(len(env.To))),
		Recipients: env.To,
	}, nil
}

func (s *implSMTP) buildMessage(env Envelope) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(s.cfg.From); err != nil {
		return nil, fmt.Errorf("set from address: %w", err)
	}
	if err := msg.To(env.To...); err != nil {
		return nil, fmt.Errorf("set recipients: %w", err)
	}
	msg.Subject(env.Subject)
	msg.SetBodyString(mail.TypeTextPlain, env.TextBody)
	msg.AddAlternativeString(mail.TypeTextHTML, env.HTMLBody)
	return msg, nil
}

func (s *implSMTP) buildClient() (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.Username),
		mail.WithPassword(s.cfg.Password),
	}
	if s.cfg.UseTLS {
		// Implicit TLS (typically port 465); otherwise STARTTLS.
		opts = append(opts, mail.WithSSL())
	}

	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}
	return client, nil
}
