package auth_test

import (
	"testing"
	"time"

	"github.com/campusbook/appointments/pkg/auth"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := auth.NewAccessToken(42, "PROFESSOR", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	claims, err := auth.Parse(token, "test-secret")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.Sub != 42 {
		t.Errorf("sub = %d, want 42", claims.Sub)
	}
	if claims.Role != "PROFESSOR" {
		t.Errorf("role = %q, want PROFESSOR", claims.Role)
	}

	exp := claims.ExpiresAt.Time
	if d := time.Until(exp); d < 55*time.Minute || d > time.Hour {
		t.Errorf("expiry %v not about an hour out", d)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := auth.NewAccessToken(1, "STUDENT", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if _, err := auth.Parse(token, "other-secret"); err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	token, err := auth.NewAccessToken(1, "STUDENT", "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if _, err := auth.Parse(token, "test-secret"); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := auth.Parse("not.a.token", "test-secret"); err == nil {
		t.Error("expected error for malformed token")
	}
}
