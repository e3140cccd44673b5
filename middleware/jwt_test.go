package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestTokenRoundTrip(t *testing.T) {
	auth := NewAuth("test-secret")
	userID := uuid.New().String()
	orgID := uuid.New().String()

	token, err := auth.GenerateToken(userID, orgID, "compliance_manager", "Aroha Ngata", "aroha@example.nz")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	var got *Claims
	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetClaims(r)
	}))

	req := httptest.NewRequest("GET", "/api/v1/plans", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %q)", rec.Code, rec.Body.String())
	}
	if got == nil {
		t.Fatal("claims not stashed in context")
	}
	if got.UserID != userID || got.OrgID != orgID {
		t.Errorf("claims = user %s org %s, want user %s org %s", got.UserID, got.OrgID, userID, orgID)
	}
	if got.Role != "compliance_manager" {
		t.Errorf("role = %q, want compliance_manager", got.Role)
	}
}

func TestMiddlewareRejections(t *testing.T) {
	auth := NewAuth("test-secret")
	other := NewAuth("different-secret")
	foreign, err := other.GenerateToken(uuid.New().String(), uuid.New().String(), "viewer", "", "")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc123"},
		{"garbage token", "Bearer not.a.jwt"},
		{"wrong signing key", "Bearer " + foreign},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))
			req := httptest.NewRequest("GET", "/api/v1/plans", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
			if called {
				t.Error("inner handler ran on a rejected request")
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	auth := NewAuth("test-secret")

	tests := []struct {
		role    string
		allowed []string
		want    int
	}{
		{"org_admin", []string{"org_admin", "compliance_manager"}, http.StatusOK},
		{"compliance_manager", []string{"org_admin", "compliance_manager"}, http.StatusOK},
		{"operator", []string{"org_admin", "compliance_manager"}, http.StatusForbidden},
		{"viewer", []string{"org_admin"}, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			token, err := auth.GenerateToken(uuid.New().String(), uuid.New().String(), tt.role, "", "")
			if err != nil {
				t.Fatalf("GenerateToken: %v", err)
			}
			inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
			handler := auth.Middleware(RequireRole(tt.allowed, inner))

			req := httptest.NewRequest("POST", "/api/v1/plans", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("role %s with allowed %v: status = %d, want %d", tt.role, tt.allowed, rec.Code, tt.want)
			}
		})
	}
}

func TestGetOrgIDUnauthenticated(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/plans", nil)
	if got := GetOrgID(req); got != uuid.Nil {
		t.Errorf("GetOrgID on bare request = %s, want uuid.Nil", got)
	}
	if got := GetUserID(req); got != uuid.Nil {
		t.Errorf("GetUserID on bare request = %s, want uuid.Nil", got)
	}
}

func TestResourceFromPath(t *testing.T) {
	tests := []struct {
		path     string
		resource string
		id       string
	}{
		{"/api/v1/plans", "plans", ""},
		{"/api/v1/plans/123e4567-e89b-12d3-a456-426614174000", "plans", "123e4567-e89b-12d3-a456-426614174000"},
		{"/api/v1/dwqar/2024-Annual/submit", "dwqar", ""},
		{"/api/v1/organization/zones", "organization", ""},
		{"/register", "register", ""},
	}
	for _, tt := range tests {
		resource, id := resourceFromPath(tt.path)
		if resource != tt.resource || id != tt.id {
			t.Errorf("resourceFromPath(%q) = (%q, %q), want (%q, %q)",
				tt.path, resource, id, tt.resource, tt.id)
		}
	}
}
