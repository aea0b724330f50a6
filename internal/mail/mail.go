package mail

import "net/smtp"

// Sender delivers plain-text mail. Services hold the interface so tests can
// record outbound messages instead of talking SMTP.
type Sender interface {
	Send(to, subject, body string) error
}

type SMTPSender struct {
	Host string
	Port string
	From string
}

func NewSMTPSender(host, port, from string) *SMTPSender {
	return &SMTPSender{Host: host, Port: port, From: from}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	addr := s.Host + ":" + s.Port
	msg := "From: " + s.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n" +
		body
	// no auth: local relay / MailHog-style dev transport
	return smtp.SendMail(addr, nil, s.From, []string{to}, []byte(msg))
}
