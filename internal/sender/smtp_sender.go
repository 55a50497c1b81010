// internal/sender/smtp_sender.go
package sender

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/unclebandit/event-outreach/internal/config"
	appErrors "github.com/unclebandit/event-outreach/internal/errors"
	"github.com/unclebandit/event-outreach/internal/model"
)

// SMTPSender sends the follow-up over plain SMTP with STARTTLS, the
// Gmail app-password setup.
type SMTPSender struct {
	addr     string
	host     string
	from     string
	password string
	subject  string

	// sendMail is swapped out in tests; net/smtp has no test seam.
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPSender(cfg config.SMTP) *SMTPSender {
	return &SMTPSender{
		addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		host:     cfg.Host,
		from:     cfg.SenderEmail,
		password: cfg.Password,
		subject:  cfg.Subject,
		sendMail: smtp.SendMail,
	}
}

func (s *SMTPSender) Send(_ context.Context, entry *model.QueueEntry) error {
	auth := smtp.PlainAuth("", s.from, s.password, s.host)

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", s.from)
	fmt.Fprintf(&b, "To: %s\r\n", entry.RecipientEmail)
	fmt.Fprintf(&b, "Subject: %s\r\n", s.subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(entry.MessageText)
	b.WriteString("\r\n")

	if err := s.sendMail(s.addr, auth, s.from, []string{entry.RecipientEmail}, []byte(b.String())); err != nil {
		return appErrors.NewSendFailure(entry.RecipientEmail, entry.AttemptCount+1, err)
	}
	return nil
}
