package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mirkamary/schoolhub/internal/auth"
)

func TestNewIssuerRequiresSecret(t *testing.T) {
	_, err := auth.NewIssuer("", time.Hour)

	if !errors.Is(err, auth.ErrNoSecret) {
		t.Fatalf("got %v, want ErrNoSecret", err)
	}
}

func TestIssueSignsClaimsWithExpiry(t *testing.T) {
	issuer, err := auth.NewIssuer("test-secret", time.Hour)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	signed, err := issuer.Issue(map[string]any{
		"email":       "a@x.com",
		"displayName": "Ann",
	})

	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	parsed, err := jwt.Parse(signed, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})

	if err != nil || !parsed.Valid {
		t.Fatalf("token did not verify: %v", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatalf("unexpected claims type %T", parsed.Claims)
	}

	if claims["email"] != "a@x.com" {
		t.Fatalf("claim lost: %v", claims["email"])
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		t.Fatalf("missing exp: %v", err)
	}

	ttl := time.Until(exp.Time)
	if ttl <= 55*time.Minute || ttl > time.Hour {
		t.Fatalf("unexpected ttl %v", ttl)
	}
}

func TestIssueEmptyClaims(t *testing.T) {
	issuer, err := auth.NewIssuer("test-secret", 0)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// issuance is unvalidated: an empty payload still signs
	signed, err := issuer.Issue(nil)

	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if signed == "" {
		t.Fatalf("empty token")
	}
}
