package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ravenshold/guildhall/api/pkg/jwt"
)

func newTestValidator(t *testing.T) *jwt.Service {
	t.Helper()
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate RSA key: %v", err)
	}
	return jwt.NewTestService(privateKey, "test-issuer", 15*time.Minute)
}

func signToken(t *testing.T, svc *jwt.Service, role string) string {
	t.Helper()
	token, err := svc.Sign(jwt.Claims{
		UserID: "user:1",
		Email:  "olof@example.com",
		Role:   role,
	})
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

// ============================================================================
// Auth Tests
// ============================================================================

func TestAuth_ValidToken_SetsContext(t *testing.T) {
	t.Parallel()
	svc := newTestValidator(t)

	var userID, email string
	handler := Auth(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID = GetUserID(r.Context())
		email = GetUserEmail(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, svc, "member"))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if userID != "user:1" {
		t.Errorf("expected user ID in context, got %q", userID)
	}
	if email != "olof@example.com" {
		t.Errorf("expected email in context, got %q", email)
	}
}

func TestAuth_MissingHeader_Returns401(t *testing.T) {
	t.Parallel()
	svc := newTestValidator(t)

	handler := Auth(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run without credentials")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rr.Code)
	}
}

func TestAuth_MalformedHeader_Returns401(t *testing.T) {
	t.Parallel()
	svc := newTestValidator(t)

	handler := Auth(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	for _, header := range []string{"Bearer", "Basic dXNlcjpwYXNz", "token-without-scheme"} {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", header)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("expected 401 for header %q, got %d", header, rr.Code)
		}
	}
}

func TestAuth_TokenFromOtherKey_Returns401(t *testing.T) {
	t.Parallel()
	signer := newTestValidator(t)
	verifier := newTestValidator(t)

	handler := Auth(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, signer, "member"))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rr.Code)
	}
}

// ============================================================================
// AdminAuth Tests
// ============================================================================

func TestAdminAuth_AdminRole_Passes(t *testing.T) {
	t.Parallel()
	svc := newTestValidator(t)

	called := false
	handler := AdminAuth(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, svc, "admin"))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if !called {
		t.Error("expected handler to run for admin token")
	}
}

func TestAdminAuth_MemberRole_Returns403(t *testing.T) {
	t.Parallel()
	svc := newTestValidator(t)

	handler := AdminAuth(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run for non-admin token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, svc, "member"))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rr.Code)
	}
}
