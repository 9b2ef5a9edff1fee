package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	in := Identity{Subject: "a@x.com", UserID: "u-1", IsAdmin: true}

	tok, err := m.Issue(in)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := m.Verify(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	if got := claims.Identity(); got != in {
		t.Fatalf("got %+v, want %+v", got, in)
	}
	if claims.ID == "" {
		t.Fatalf("expected a jti")
	}
}

func TestVerify_ExpiresExactlyAtTTL(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := issuedAt

	m := NewManager("test-secret", 7*24*time.Hour).WithClock(func() time.Time { return clock })

	tok, err := m.Issue(Identity{Subject: "a@x.com", UserID: "u-1"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	clock = issuedAt.Add(7*24*time.Hour - time.Second)
	if _, err := m.Verify(tok); err != nil {
		t.Fatalf("token should still be valid one second before expiry: %v", err)
	}

	clock = issuedAt.Add(7 * 24 * time.Hour)
	if _, err := m.Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken at expiry", err)
	}

	clock = issuedAt.Add(30 * 24 * time.Hour)
	if _, err := m.Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken after expiry", err)
	}
}

func TestVerify_Rejects(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	other := NewManager("other-secret", time.Hour)

	foreign, err := other.Issue(Identity{Subject: "a@x.com", UserID: "u-1"})
	if err != nil {
		t.Fatal(err)
	}

	good, err := m.Issue(Identity{Subject: "a@x.com", UserID: "u-1"})
	if err != nil {
		t.Fatal(err)
	}
	parts := strings.Split(good, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: "u-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "a@x.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:           "u-1",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "a@x.com"},
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}

	tests := map[string]string{
		"empty":        "",
		"garbage":      "not.a.token",
		"wrong_secret": foreign,
		"tampered":     tampered,
		"alg_none":     unsigned,
		"missing_exp":  noExp,
	}

	for name, tok := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := m.Verify(tok); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("got %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestIssue_UsesConfiguredClock(t *testing.T) {
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewManager("s", 2*time.Hour).WithClock(fixedClock(at))

	tok, err := m.Issue(Identity{Subject: "a@x.com", UserID: "u"})
	if err != nil {
		t.Fatal(err)
	}

	claims, err := m.Verify(tok)
	if err != nil {
		t.Fatal(err)
	}

	if !claims.ExpiresAt.Time.Equal(at.Add(2 * time.Hour)) {
		t.Fatalf("got exp %v", claims.ExpiresAt.Time)
	}
	if !claims.IssuedAt.Time.Equal(at) {
		t.Fatalf("got iat %v", claims.IssuedAt.Time)
	}
}
