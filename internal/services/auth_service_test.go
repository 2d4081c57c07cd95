package services

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

var testSigningKey = []byte("test-signing-key")

func signHS256(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSigningKey)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func validClaims() jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"sub":                "kc-123",
		"iss":                "https://issuer/realms/tasks",
		"aud":                "task-api",
		"exp":                now.Add(5 * time.Minute).Unix(),
		"iat":                now.Add(-time.Minute).Unix(),
		"preferred_username": "alice",
		"realm_access":       map[string]any{"roles": []string{"role_manage_task"}},
		"roles":              []string{"extra"},
	}
}

func newTestAuthService(t *testing.T) AuthService {
	t.Helper()
	auth, err := NewAuthService(zerolog.Nop(), "https://issuer/realms/tasks", "task-api", testSigningKey, nil)
	if err != nil {
		t.Fatalf("new auth service: %v", err)
	}
	return auth
}

func TestParseIdentityHS256(t *testing.T) {
	auth := newTestAuthService(t)

	identity, err := auth.ParseIdentity(signHS256(t, validClaims()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identity.Subject != "kc-123" || identity.Username != "alice" {
		t.Fatalf("unexpected identity: %+v", identity)
	}
	if !identity.HasAnyRole("role_manage_task") || !identity.HasAnyRole("extra") {
		t.Fatalf("expected realm and top-level roles, got %v", identity.Roles)
	}
	if identity.HasAnyRole("role_admin") {
		t.Fatal("unexpected admin role")
	}
}

func TestParseIdentityRejects(t *testing.T) {
	auth := newTestAuthService(t)

	expired := validClaims()
	expired["exp"] = time.Now().Add(-time.Minute).Unix()

	wrongIssuer := validClaims()
	wrongIssuer["iss"] = "https://elsewhere/"

	wrongAudience := validClaims()
	wrongAudience["aud"] = "other-api"

	noSubject := validClaims()
	delete(noSubject, "sub")

	noExpiry := validClaims()
	delete(noExpiry, "exp")

	otherKey, err := jwt.NewWithClaims(jwt.SigningMethodHS256, validClaims()).SignedString([]byte("other-key"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	tests := map[string]string{
		"empty":          "",
		"garbage":        "not.a.token",
		"expired":        signHS256(t, expired),
		"wrong issuer":   signHS256(t, wrongIssuer),
		"wrong audience": signHS256(t, wrongAudience),
		"no subject":     signHS256(t, noSubject),
		"no expiry":      signHS256(t, noExpiry),
		"wrong key":      otherKey,
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := auth.ParseIdentity(token); !errors.Is(err, ErrUnauthenticated) {
				t.Fatalf("expected ErrUnauthenticated, got %v", err)
			}
		})
	}
}

func TestParseIdentityRS256(t *testing.T) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	der, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	if err != nil {
		t.Fatalf("marshal public key: %v", err)
	}
	publicPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})

	auth, err := NewAuthService(zerolog.Nop(), "", "", nil, publicPEM)
	if err != nil {
		t.Fatalf("new auth service: %v", err)
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, validClaims()).SignedString(privateKey)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	identity, err := auth.ParseIdentity(signed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identity.Subject != "kc-123" {
		t.Fatalf("unexpected subject: %s", identity.Subject)
	}

	// An HS256 token must not pass an RS256 verifier.
	if _, err := auth.ParseIdentity(signHS256(t, validClaims())); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected algorithm mismatch to fail, got %v", err)
	}
}

func TestNewAuthServiceRequiresKey(t *testing.T) {
	if _, err := NewAuthService(zerolog.Nop(), "", "", nil, nil); err == nil {
		t.Fatal("expected error without keys")
	}
	if _, err := NewAuthService(zerolog.Nop(), "", "", nil, []byte("not pem")); err == nil {
		t.Fatal("expected error for malformed pem")
	}
}
