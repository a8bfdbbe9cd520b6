package email

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/rs/zerolog/log"
	mail "github.com/xhit/go-simple-mail/v2"
)

type Config struct {
	SmtpHost         string `env:"SMTP_HOST"`
	SmtpPort         int    `env:"SMTP_PORT" envDefault:"587"`
	SmtpUser         string `env:"SMTP_USER"`
	SmtpPassword     string `env:"SMTP_PASSWORD"`
	SmtpSkipInsecure bool   `env:"SMTP_SKIP_INSECURE" envDefault:"false"`
	From             string `env:"FROM"`
}

type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SmtpSender opens a connection per message so an unreachable relay never
// blocks service startup.
type SmtpSender struct {
	server *mail.SMTPServer
	from   string
}

// LogSender is used when no SMTP host is configured.
type LogSender struct{}

func NewSender(config *Config) Sender {
	if config.SmtpHost == "" {
		log.Warn().Msg("EMAIL_SMTP_HOST not set, emails will only be logged")
		return &LogSender{}
	}

	server := mail.NewSMTPClient()
	server.Host = config.SmtpHost
	server.Port = config.SmtpPort
	server.Username = config.SmtpUser
	server.Password = config.SmtpPassword
	server.Encryption = mail.EncryptionSTARTTLS
	server.TLSConfig = &tls.Config{InsecureSkipVerify: config.SmtpSkipInsecure}
	server.SendTimeout = 10 * time.Second
	server.ConnectTimeout = 10 * time.Second

	from := config.From
	if from == "" {
		from = config.SmtpUser
	}

	return &SmtpSender{server: server, from: from}
}

func (s *SmtpSender) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	client, err := s.server.Connect()
	if err != nil {
		return err
	}
	defer client.Close()

	email := mail.NewMSG()
	email.SetFrom(s.from).
		AddTo(to).
		SetSubject(subject).
		SetBody(mail.TextHTML, body)
	if email.Error != nil {
		return email.Error
	}

	return email.Send(client)
}

func (s *LogSender) Send(ctx context.Context, to, subject, body string) error {
	log.Info().Str("to", to).Str("subject", subject).Msg("Email not sent, no SMTP host configured")
	log.Debug().Str("to", to).Msg(body)
	return nil
}
