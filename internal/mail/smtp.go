// AngelaMos | 2026
// smtp.go

package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/carterperez-dev/talenthub/internal/config"
)

type SMTPSender struct {
	client *gomail.Client
	from   string
}

func NewSMTPSender(cfg config.MailConfig) (*SMTPSender, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password),
	}

	// Port 465 is implicit TLS; everything else negotiates STARTTLS.
	if cfg.Port == 465 {
		opts = append(opts, gomail.WithSSLPort(false))
	} else {
		opts = append(opts, gomail.WithTLSPortPolicy(gomail.TLSMandatory))
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}

	from := cfg.From
	if from == "" {
		from = cfg.Username
	}

	return &SMTPSender{client: client, from: from}, nil
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m := gomail.NewMsg()

	if err := m.From(s.from); err != nil {
		return fmt.Errorf("set from: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("set to: %w", err)
	}

	m.Subject(msg.Subject)

	if msg.HTMLBody != "" {
		m.SetBodyString(gomail.TypeTextHTML, msg.HTMLBody)
		if msg.TextBody != "" {
			m.AddAlternativeString(gomail.TypeTextPlain, msg.TextBody)
		}
	} else {
		m.SetBodyString(gomail.TypeTextPlain, msg.TextBody)
	}

	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	return nil
}

var _ Sender = (*SMTPSender)(nil)
