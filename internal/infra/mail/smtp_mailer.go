// Package mail implements the outbound mailer on top of an SMTP relay.
package mail

import (
	"context"
	"time"

	"contacts/config"
	"contacts/internal/domain/service"
	"contacts/internal/errors"

	gomail "github.com/wneessen/go-mail"
)

const defaultSendTimeout = 15 * time.Second

// smtpMailer implements service.Mailer using go-mail. Each Send dials the
// relay, delivers one message and closes; confirmation volume is far too low
// to justify a persistent connection.
type smtpMailer struct {
	client *gomail.Client
	from   string
}

// NewSMTPMailer is the constructor for smtpMailer.
func NewSMTPMailer(cfg *config.Config) (service.Mailer, error) {
	smtpCfg := cfg.SMTP
	if smtpCfg == nil {
		return nil, errors.New("smtp config is required")
	}

	opts := []gomail.Option{
		gomail.WithPort(smtpCfg.Port),
		gomail.WithTimeout(defaultSendTimeout),
	}
	if smtpCfg.UserName != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(smtpCfg.UserName),
			gomail.WithPassword(smtpCfg.Password),
		)
	}

	client, err := gomail.NewClient(smtpCfg.Host, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create SMTP client")
	}

	return &smtpMailer{
		client: client,
		from:   smtpCfg.From,
	}, nil
}

// Send delivers a plain-text message to a single recipient.
func (m *smtpMailer) Send(ctx context.Context, to, subject, body string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return errors.Wrap(err, "invalid sender address")
	}
	if err := msg.To(to); err != nil {
		return errors.Wrap(err, "invalid recipient address")
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	ctx, cancel := context.WithTimeout(ctx, defaultSendTimeout)
	defer cancel()

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return errors.Wrap(err, "failed to send mail")
	}

	return nil
}
