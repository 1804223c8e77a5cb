// README: Tests for JWT signing and verification.
package auth

import (
	"errors"
	"testing"
)

func TestSignAndVerifyRoundTrip(t *testing.T) {
	tokens := NewTokens("access-secret", "refresh-secret")

	access, err := tokens.SignAccess("user-1", "a@example.com")
	if err != nil {
		t.Fatalf("SignAccess: %v", err)
	}
	claims, err := tokens.VerifyAccess(access)
	if err != nil {
		t.Fatalf("VerifyAccess: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "a@example.com" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestVerifyRejectsCrossSecretTokens(t *testing.T) {
	tokens := NewTokens("access-secret", "refresh-secret")

	refresh, err := tokens.SignRefresh("user-1", "a@example.com")
	if err != nil {
		t.Fatalf("SignRefresh: %v", err)
	}
	if _, err := tokens.VerifyAccess(refresh); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("access verifier accepted a refresh token: %v", err)
	}
	if _, err := tokens.VerifyRefresh(refresh); err != nil {
		t.Errorf("VerifyRefresh: %v", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	tokens := NewTokens("a", "b")
	if _, err := tokens.VerifyAccess("not.a.jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("error = %v, want ErrInvalidToken", err)
	}
}
