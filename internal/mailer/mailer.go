// Package mailer sends transactional email over SMTP. Dispatch is best-effort
// from the caller's perspective: a failed send never rolls back the durable
// state that triggered it.
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Email is one outbound message with both plain-text and HTML bodies.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Sender delivers email.
type Sender interface {
	Send(email Email) error
}

// SMTPSender sends email through a plain SMTP relay.
type SMTPSender struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

// NewSMTPSender creates an SMTPSender. An empty host yields a nil Sender,
// which callers treat as "dispatch disabled".
func NewSMTPSender(host, port, user, pass, from string) *SMTPSender {
	if host == "" {
		return nil
	}
	return &SMTPSender{Host: host, Port: port, User: user, Pass: pass, From: from}
}

// Send delivers the email as a multipart/alternative message.
func (s *SMTPSender) Send(email Email) error {
	addr := s.Host + ":" + s.Port

	var auth smtp.Auth
	if s.User != "" {
		auth = smtp.PlainAuth("", s.User, s.Pass, s.Host)
	}

	msg := buildMessage(s.From, email)
	if err := smtp.SendMail(addr, auth, s.From, []string{email.To}, msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", email.To, err)
	}
	return nil
}

const multipartBoundary = "contractdesk-mail-boundary"

func buildMessage(from string, email Email) []byte {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("From: %s\r\n", from))
	b.WriteString(fmt.Sprintf("To: %s\r\n", email.To))
	b.WriteString(fmt.Sprintf("Subject: %s\r\n", email.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=%q\r\n", multipartBoundary))
	b.WriteString("\r\n")

	b.WriteString(fmt.Sprintf("--%s\r\n", multipartBoundary))
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	b.WriteString(email.TextBody)
	b.WriteString("\r\n")

	b.WriteString(fmt.Sprintf("--%s\r\n", multipartBoundary))
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	b.WriteString(email.HTMLBody)
	b.WriteString("\r\n")

	b.WriteString(fmt.Sprintf("--%s--\r\n", multipartBoundary))
	return []byte(b.String())
}
