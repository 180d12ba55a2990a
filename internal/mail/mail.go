// AngelaMos | 2026
// mail.go

package mail

import (
	"context"
	"log/slog"
)

type Message struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Sender delivers outbound messages. It is injected into the services that
// need delivery so tests can substitute a recording fake.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender logs instead of delivering. Used in development and when mail
// is disabled by configuration; message bodies are never logged because
// they can carry recovery codes.
type LogSender struct {
	Logger *slog.Logger
}

func (s *LogSender) Send(_ context.Context, msg Message) error {
	s.Logger.Info("mail delivery skipped (mail disabled)",
		"to", msg.To,
		"subject", msg.Subject,
	)
	return nil
}
