package utils

import (
	"fmt"
	"net/smtp"
	"strings"
)

// SendMail sends a plain-text notification over SMTP. Callers treat this as
// best-effort: a failed send must never fail the request that triggered it.
func SendMail(host, port, user, pass, from, to, subject, body string) error {
	if host == "" {
		return fmt.Errorf("smtp host is not configured")
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%s", host, port)
	var auth smtp.Auth
	if user != "" {
		auth = smtp.PlainAuth("", user, pass, host)
	}

	if err := smtp.SendMail(addr, auth, from, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}
