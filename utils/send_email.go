package utils

import (
	"fmt"
	"net/smtp"
)

type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer gửi email HTML qua SMTP với PLAIN auth.
type SMTPMailer struct {
	host     string
	port     string
	from     string
	password string
}

func NewSMTPMailer(host, port, from, password string) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, from: from, password: password}
}

// Configured cho biết đã có tài khoản gửi hay chưa.
func (m *SMTPMailer) Configured() bool {
	return m.from != "" && m.password != ""
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	// Headers: hỗ trợ UTF-8 & HTML
	msg := ""
	msg += "MIME-Version: 1.0\r\n"
	msg += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	msg += fmt.Sprintf("From: %s\r\n", m.from)
	msg += fmt.Sprintf("To: %s\r\n", to)
	msg += fmt.Sprintf("Subject: %s\r\n", subject)
	msg += "\r\n" + body

	err := smtp.SendMail(
		m.host+":"+m.port,
		smtp.PlainAuth("", m.from, m.password, m.host),
		m.from,
		[]string{to},
		[]byte(msg),
	)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
