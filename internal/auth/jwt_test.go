package auth

import (
	"testing"
	"time"
)

func TestTokenManager_SignParse(t *testing.T) {
	t.Parallel()

	m := NewTokenManager("test-secret")

	tok, err := m.Sign("user_2abc", time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	claims, err := m.Parse(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "user_2abc" {
		t.Fatalf("unexpected user id: %s", claims.UserID)
	}
}

func TestTokenManager_Expired(t *testing.T) {
	t.Parallel()

	m := NewTokenManager("test-secret")

	tok, err := m.Sign("user_2abc", -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := m.Parse(tok); err == nil {
		t.Fatal("expected expired token to fail")
	}
}

func TestTokenManager_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenManager("secret-a").Sign("user_2abc", time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := NewTokenManager("secret-b").Parse(tok); err == nil {
		t.Fatal("expected parse with wrong secret to fail")
	}
}
