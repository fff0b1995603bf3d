package auth

import (
	"errors"
	"testing"
	"time"
)

func TestGenerateAndValidateToken(t *testing.T) {
	a := NewAuthenticator("test-secret", "go-huddle", time.Hour)

	token, err := a.GenerateToken(42, "wendy", "Wendy O")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	identity, err := a.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if identity.UserID != 42 {
		t.Fatalf("expected user id 42, got %d", identity.UserID)
	}
	if identity.Username != "wendy" {
		t.Fatalf("expected username wendy, got %q", identity.Username)
	}
	if identity.DisplayName != "Wendy O" {
		t.Fatalf("expected display name Wendy O, got %q", identity.DisplayName)
	}
	if identity.Issuer != "go-huddle" {
		t.Fatalf("expected issuer go-huddle, got %q", identity.Issuer)
	}
}

func TestValidateExpiredToken(t *testing.T) {
	a := NewAuthenticator("test-secret", "go-huddle", -time.Minute)

	token, err := a.GenerateToken(1, "wendy", "Wendy O")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := a.ValidateToken(token); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	issuer := NewAuthenticator("secret-one", "go-huddle", time.Hour)
	verifier := NewAuthenticator("secret-two", "go-huddle", time.Hour)

	token, err := issuer.GenerateToken(1, "wendy", "Wendy O")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := verifier.ValidateToken(token); err == nil {
		t.Fatal("expected validation to fail with wrong secret")
	}
}

func TestValidateGarbageToken(t *testing.T) {
	a := NewAuthenticator("test-secret", "go-huddle", time.Hour)
	if _, err := a.ValidateToken("not.a.token"); err == nil {
		t.Fatal("expected validation to fail for malformed token")
	}
}
