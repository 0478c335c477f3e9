package utils

import (
	"BotDisk/config"
	"testing"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	old := config.AppConfig.JWTSecret
	defer func() { config.AppConfig.JWTSecret = old }()
	config.AppConfig.JWTSecret = "unit-test-secret"

	token, err := GenerateToken("operator")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	claims, err := VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.Username != "operator" {
		t.Errorf("Username = %q, want operator", claims.Username)
	}
	if claims.ID == "" {
		t.Error("token id must be set")
	}
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	old := config.AppConfig.JWTSecret
	defer func() { config.AppConfig.JWTSecret = old }()

	config.AppConfig.JWTSecret = "secret-a"
	token, err := GenerateToken("operator")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	config.AppConfig.JWTSecret = "secret-b"
	if _, err := VerifyToken(token); err == nil {
		t.Fatal("token signed with another secret must be rejected")
	}
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	old := config.AppConfig.JWTSecret
	defer func() { config.AppConfig.JWTSecret = old }()
	config.AppConfig.JWTSecret = "unit-test-secret"

	if _, err := VerifyToken("not.a.token"); err == nil {
		t.Fatal("garbage token must be rejected")
	}
}
