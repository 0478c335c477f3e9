package utils

import (
	"BotDisk/config"
	"crypto/tls"
	"errors"
	"net/smtp"

	"github.com/jordan-wright/email"
)

// SendFileLinkMail mails a public file URL to a recipient.
func SendFileLinkMail(to, fileURL, fileName string) error {
	cfg := config.AppConfig
	if cfg.SMTPHost == "" || cfg.SMTPPort == "" || cfg.SMTPUser == "" ||
		cfg.SMTPPass == "" || cfg.SMTPFrom == "" {
		return errors.New("smtp config missing")
	}

	display := fileName
	if display == "" {
		display = fileURL
	}

	e := email.NewEmail()
	e.From = cfg.SMTPFrom
	e.To = []string{to}
	e.Subject = "File shared with you"
	e.HTML = []byte(`
		<h2>A file was shared with you</h2>
		<p><a href="` + fileURL + `">` + display + `</a></p>
	`)

	addr := cfg.SMTPHost + ":" + cfg.SMTPPort
	auth := smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost)
	tlsConfig := &tls.Config{ServerName: cfg.SMTPHost}

	if cfg.SMTPTLS || cfg.SMTPPort == "465" {
		return e.SendWithTLS(addr, auth, tlsConfig)
	}
	if cfg.SMTPStartTLS {
		return e.SendWithStartTLS(addr, auth, tlsConfig)
	}
	return e.Send(addr, auth)
}
