package middleware

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestSecurityHeadersSet(t *testing.T) {
	handler := SecurityHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/plans", nil))

	for header, want := range map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Referrer-Policy":        "no-referrer",
	} {
		if got := rec.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
}

// The request log must carry the authenticated user id, which means the
// logger has to sit inside the auth chain where the derived request
// context holds the claims.
func TestRequestLoggerSeesAuthenticatedUser(t *testing.T) {
	var buf bytes.Buffer
	orig := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(orig)

	auth := NewAuth("test-secret")
	userID := uuid.New().String()
	token, err := auth.GenerateToken(userID, uuid.New().String(), "operator", "", "")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	handler := auth.Middleware(RequestLogger(inner))

	req := httptest.NewRequest("GET", "/api/v1/water-tests", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !strings.Contains(buf.String(), "user="+userID) {
		t.Errorf("request log = %q, want user=%s", buf.String(), userID)
	}
}
