package utils

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

type Attachment struct {
	Filename string
	Content  []byte
}

// Mailer is the mail-transport collaborator of the delivery pipeline.
// Implementations return a transport error; they never retry.
type Mailer interface {
	Send(to string, subject string, textBody string, htmlBody string, attachments []Attachment) error
}

// SMTPMailer delivers through a plain SMTP account (SSL submission port).
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer() *SMTPMailer {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}
	port := 465
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			port = n
		}
	}
	user := os.Getenv("SMTP_USER")
	password := os.Getenv("SMTP_PASSWORD")

	dialer := gomail.NewDialer(host, port, user, password)
	dialer.SSL = port == 465

	return &SMTPMailer{
		dialer: dialer,
		from:   fmt.Sprintf("%q <%s>", "PayInvoFlow", user),
	}
}

func (m *SMTPMailer) Send(to string, subject string, textBody string, htmlBody string, attachments []Attachment) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", textBody)
	if htmlBody != "" {
		msg.AddAlternative("text/html", htmlBody)
	}
	for _, att := range attachments {
		content := att.Content
		msg.Attach(att.Filename, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(content)
			return err
		}))
	}
	return m.dialer.DialAndSend(msg)
}
