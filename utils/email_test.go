package utils

import (
	"BotDisk/config"
	"testing"
)

func TestSendFileLinkMailRequiresConfig(t *testing.T) {
	old := config.AppConfig
	defer func() { config.AppConfig = old }()

	config.AppConfig.SMTPHost = ""
	config.AppConfig.SMTPPort = "587"
	config.AppConfig.SMTPUser = "u"
	config.AppConfig.SMTPPass = "p"
	config.AppConfig.SMTPFrom = "relay@example.com"

	err := SendFileLinkMail("dst@example.com", "https://relay.example.com/1.png", "a.png")
	if err == nil || err.Error() != "smtp config missing" {
		t.Fatalf("err = %v, want smtp config missing", err)
	}

	config.AppConfig.SMTPHost = "smtp.example.com"
	config.AppConfig.SMTPFrom = ""
	err = SendFileLinkMail("dst@example.com", "https://relay.example.com/1.png", "a.png")
	if err == nil || err.Error() != "smtp config missing" {
		t.Fatalf("err = %v, want smtp config missing", err)
	}
}
