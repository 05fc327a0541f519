package jwt

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate RSA key: %v", err)
	}
	return NewTestService(privateKey, "test-issuer", 15*time.Minute)
}

func TestClaims_Valid_NoExpiration_ReturnsNil(t *testing.T) {
	t.Parallel()
	claims := Claims{
		UserID: "user:123",
		Email:  "raidlead@example.com",
	}

	if err := claims.Valid(); err != nil {
		t.Errorf("expected no error for claims without expiration, got %v", err)
	}
}

func TestClaims_Valid_Expired_ReturnsErrTokenExpired(t *testing.T) {
	t.Parallel()
	claims := Claims{
		UserID:    "user:123",
		ExpiresAt: time.Now().Add(-1 * time.Hour).Unix(),
	}

	if err := claims.Valid(); err != ErrTokenExpired {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestClaims_Valid_NotYetValid_ReturnsErrTokenNotYetValid(t *testing.T) {
	t.Parallel()
	claims := Claims{
		UserID:    "user:123",
		NotBefore: time.Now().Add(1 * time.Hour).Unix(),
	}

	if err := claims.Valid(); err != ErrTokenNotYetValid {
		t.Errorf("expected ErrTokenNotYetValid, got %v", err)
	}
}

func TestClaims_IsAdmin(t *testing.T) {
	t.Parallel()
	admin := Claims{Role: "admin"}
	member := Claims{Role: "member"}

	if !admin.IsAdmin() {
		t.Error("expected admin claims to report IsAdmin")
	}
	if member.IsAdmin() {
		t.Error("expected member claims not to report IsAdmin")
	}
}

func TestService_SignAndValidate_RoundTrip(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	token, err := svc.Sign(Claims{
		Subject:  "user:olof",
		UserID:   "user:olof",
		Email:    "olof@example.com",
		Username: "olof",
		Role:     "member",
	})
	if err != nil {
		t.Fatalf("failed to sign: %v", err)
	}

	if len(strings.Split(token, ".")) != 3 {
		t.Fatalf("expected three token segments, got %q", token)
	}

	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("failed to validate: %v", err)
	}

	if claims.UserID != "user:olof" {
		t.Errorf("expected user ID to survive the round trip, got %q", claims.UserID)
	}
	if claims.Issuer != "test-issuer" {
		t.Errorf("expected issuer to be stamped on sign, got %q", claims.Issuer)
	}
	if claims.ExpiresAt == 0 {
		t.Error("expected expiration to be stamped on sign")
	}
}

func TestService_Validate_TamperedPayload_ReturnsErrInvalidSignature(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	token, err := svc.Sign(Claims{UserID: "user:123", Role: "member"})
	if err != nil {
		t.Fatalf("failed to sign: %v", err)
	}

	parts := strings.Split(token, ".")
	forgedJSON, err := json.Marshal(Claims{UserID: "user:123", Role: "admin"})
	if err != nil {
		t.Fatalf("failed to marshal forged claims: %v", err)
	}
	parts[1] = base64URLEncode(forgedJSON)

	if _, err := svc.Validate(strings.Join(parts, ".")); err != ErrInvalidSignature {
		t.Errorf("expected ErrInvalidSignature for tampered payload, got %v", err)
	}
}

func TestService_Validate_WrongIssuer_ReturnsErrInvalidToken(t *testing.T) {
	t.Parallel()
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate RSA key: %v", err)
	}
	signer := NewTestService(privateKey, "other-issuer", 15*time.Minute)
	verifier := NewTestService(privateKey, "guildhall-api", 15*time.Minute)

	token, err := signer.Sign(Claims{UserID: "user:123"})
	if err != nil {
		t.Fatalf("failed to sign: %v", err)
	}

	if _, err := verifier.Validate(token); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken for issuer mismatch, got %v", err)
	}
}

func TestService_Validate_WrongKey_ReturnsErrInvalidSignature(t *testing.T) {
	t.Parallel()
	signer := newTestService(t)
	verifier := newTestService(t)

	token, err := signer.Sign(Claims{UserID: "user:123"})
	if err != nil {
		t.Fatalf("failed to sign: %v", err)
	}

	if _, err := verifier.Validate(token); err != ErrInvalidSignature {
		t.Errorf("expected ErrInvalidSignature for wrong key, got %v", err)
	}
}

func TestService_Validate_Garbage_ReturnsErrInvalidToken(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	for _, token := range []string{"", "abc", "a.b", "a.b.c.d"} {
		if _, err := svc.Validate(token); err != ErrInvalidToken {
			t.Errorf("expected ErrInvalidToken for %q, got %v", token, err)
		}
	}
}

func TestService_Sign_WithoutPrivateKey_ReturnsErrInvalidKey(t *testing.T) {
	t.Parallel()
	svc := &Service{}

	if _, err := svc.Sign(Claims{UserID: "user:123"}); err != ErrInvalidKey {
		t.Errorf("expected ErrInvalidKey, got %v", err)
	}
}

func TestGenerateKeyPair_FilesLoadable(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	privPath := filepath.Join(dir, "jwt.pem")
	pubPath := filepath.Join(dir, "jwt.pub.pem")

	if err := GenerateKeyPair(privPath, pubPath); err != nil {
		t.Fatalf("failed to generate key pair: %v", err)
	}

	if info, err := os.Stat(privPath); err != nil {
		t.Fatalf("private key not written: %v", err)
	} else if info.Mode().Perm() != 0600 {
		t.Errorf("expected private key mode 0600, got %v", info.Mode().Perm())
	}

	svc, err := NewService(Config{
		PrivateKeyPath: privPath,
		Issuer:         "guildhall-api",
		ExpirationMins: 60,
	})
	if err != nil {
		t.Fatalf("failed to load generated keys: %v", err)
	}

	token, err := svc.Sign(Claims{UserID: "user:123"})
	if err != nil {
		t.Fatalf("failed to sign with generated key: %v", err)
	}
	if _, err := svc.Validate(token); err != nil {
		t.Fatalf("failed to validate with generated key: %v", err)
	}

	verifier, err := NewService(Config{
		PublicKeyPath:  pubPath,
		Issuer:         "guildhall-api",
		ExpirationMins: 60,
	})
	if err != nil {
		t.Fatalf("failed to load public key: %v", err)
	}
	if _, err := verifier.Validate(token); err != nil {
		t.Fatalf("validation-only service rejected a valid token: %v", err)
	}
	if _, err := verifier.Sign(Claims{}); err != ErrInvalidKey {
		t.Errorf("expected validation-only service to refuse signing, got %v", err)
	}
}
