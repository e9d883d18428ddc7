package services

import (
	"context"
	"fmt"
	"mime"
	"net/smtp"
	"strings"

	"jamjournal/internal/config"
	"jamjournal/internal/models"
)

type Mailer interface {
	SendEmail(ctx context.Context, msg models.EmailMessage) error
}

type SMTPMailer struct {
	auth smtp.Auth
	from string
	host string
	port string
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	auth := smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPHost)
	return &SMTPMailer{
		auth: auth,
		from: cfg.SMTPUser,
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
	}
}

// SendEmail: net/smtp не умеет отмену, поэтому контекст проверяется только до отправки.
func (s *SMTPMailer) SendEmail(ctx context.Context, msg models.EmailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(msg.To) == 0 {
		return nil
	}
	// адреса попадают в заголовок To, поэтому без проверки не пропускаем
	for _, to := range msg.To {
		if err := validate.Var(to, "required,email"); err != nil {
			return validationErr("invalid recipient %q", to)
		}
	}
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	return smtp.SendMail(addr, s.auth, s.from, msg.To, buildHTMLMessage(s.from, msg))
}

func buildHTMLMessage(from string, msg models.EmailMessage) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + strings.Join(msg.To, ", ") + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", msg.Subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n\r\n")
	b.WriteString(msg.HTML)
	return []byte(b.String())
}
