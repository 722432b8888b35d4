package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 15*time.Minute, 7*24*time.Hour)
	userID := uuid.New()

	token, err := issuer.CreateAccessToken(userID)
	if err != nil {
		t.Fatalf("failed to create access token: %v", err)
	}

	claims := issuer.VerifyToken(token)
	if claims == nil {
		t.Fatal("expected valid claims, got nil")
	}
	if claims.Subject != userID.String() {
		t.Errorf("expected subject %s, got %s", userID, claims.Subject)
	}
	if claims.TokenType != TokenTypeAccess {
		t.Errorf("expected token type %q, got %q", TokenTypeAccess, claims.TokenType)
	}
}

func TestRefreshTokenHasDistinctType(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 15*time.Minute, 7*24*time.Hour)

	token, err := issuer.CreateRefreshToken(uuid.New())
	if err != nil {
		t.Fatalf("failed to create refresh token: %v", err)
	}

	claims := issuer.VerifyToken(token)
	if claims == nil {
		t.Fatal("expected valid claims, got nil")
	}
	if claims.TokenType != TokenTypeRefresh {
		t.Errorf("expected token type %q, got %q", TokenTypeRefresh, claims.TokenType)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", -time.Minute, 7*24*time.Hour)

	token, err := issuer.CreateAccessToken(uuid.New())
	if err != nil {
		t.Fatalf("failed to create token: %v", err)
	}

	if claims := issuer.VerifyToken(token); claims != nil {
		t.Error("expected expired token to fail verification")
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("secret-a", 15*time.Minute, 7*24*time.Hour)
	other := NewTokenIssuer("secret-b", 15*time.Minute, 7*24*time.Hour)

	token, err := issuer.CreateAccessToken(uuid.New())
	if err != nil {
		t.Fatalf("failed to create token: %v", err)
	}

	if claims := other.VerifyToken(token); claims != nil {
		t.Error("expected token signed with a different secret to fail verification")
	}
}

func TestVerifyMalformedToken(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", 15*time.Minute, 7*24*time.Hour)

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		if claims := issuer.VerifyToken(tok); claims != nil {
			t.Errorf("expected malformed token %q to fail verification", tok)
		}
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if hash == "s3cret" {
		t.Fatal("hash must not equal the plain password")
	}

	if !VerifyPassword(hash, "s3cret") {
		t.Error("expected correct password to verify")
	}
	if VerifyPassword(hash, "wrong") {
		t.Error("expected wrong password to fail verification")
	}
}
