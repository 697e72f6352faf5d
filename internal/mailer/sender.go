package mailer

import (
	"bytes"
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/bagdasarian/docspace-access/internal/config"
	"github.com/bagdasarian/docspace-access/internal/domain"
	"github.com/sirupsen/logrus"
	"github.com/wneessen/go-mail"
)

const previewLimit = 200

type Sender interface {
	Send(ctx context.Context, email domain.Email) error
}

// New выбирает транспорт: SMTP, если он настроен, иначе письма только пишутся в лог.
func New(cfg config.SMTPConfig, log *logrus.Logger) Sender {
	if !cfg.Enabled() {
		log.Warn("SMTP not configured, emails will only be logged")
		return NewLogSender(log)
	}
	return NewSMTPSender(cfg, log)
}

type LogSender struct {
	log *logrus.Logger
}

func NewLogSender(log *logrus.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, email domain.Email) error {
	s.log.WithFields(logrus.Fields{
		"to":      email.To,
		"subject": email.Subject,
		"preview": preview(email.Text),
	}).Info("email would be sent")
	return nil
}

// preview обрезает текст по границе руны.
func preview(text string) string {
	if utf8.RuneCountInString(text) <= previewLimit {
		return text
	}
	return string([]rune(text)[:previewLimit]) + "..."
}

type SMTPSender struct {
	cfg     config.SMTPConfig
	log     *logrus.Logger
	timeout time.Duration
}

func NewSMTPSender(cfg config.SMTPConfig, log *logrus.Logger) *SMTPSender {
	return &SMTPSender{cfg: cfg, log: log, timeout: 30 * time.Second}
}

func (s *SMTPSender) Send(ctx context.Context, email domain.Email) error {
	msg, err := newMessage(s.cfg.From, email)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(s.cfg.Host, s.clientOptions()...)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}

	if err := client.DialWithContext(ctx); err != nil {
		return fmt.Errorf("failed to connect to smtp server: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			s.log.WithError(err).Debug("smtp QUIT failed")
		}
	}()

	if err := client.Send(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.log.WithFields(logrus.Fields{"to": email.To, "subject": email.Subject}).Info("email sent")
	return nil
}

// clientOptions: STARTTLS, если сервер его предлагает, и PLAIN, если задан пользователь.
func (s *SMTPSender) clientOptions() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithTimeout(s.timeout),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if s.cfg.User != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.User),
			mail.WithPassword(s.cfg.Password),
		)
	}
	return opts
}

func newMessage(from string, email domain.Email) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", from, err)
	}
	if err := msg.To(email.To); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", email.To, err)
	}
	msg.Subject(email.Subject)
	msg.SetDate()
	msg.SetBodyString(mail.TypeTextPlain, email.Text)
	msg.AddAlternativeString(mail.TypeTextHTML, email.HTML)
	return msg, nil
}

// BuildMessage собирает multipart/alternative письмо с текстовой и HTML частями.
func BuildMessage(from string, email domain.Email) ([]byte, error) {
	msg, err := newMessage(from, email)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := msg.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write message: %w", err)
	}
	return buf.Bytes(), nil
}
