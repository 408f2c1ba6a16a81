package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/parkease/parking-console/internal/core/domain"
	"github.com/parkease/parking-console/internal/core/ports"
)

func TestAuthAPI_Login_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["username"] != "alice" || body["password"] != "secret" {
			t.Fatalf("unexpected payload: %v", body)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"user":    map[string]any{"id": 1, "username": "alice", "role": "ADMIN"},
			"token":   "tok123",
		})
	}))
	defer srv.Close()

	api := NewAuthAPI(newGateway(srv.URL, seededStore(t, ""), Options{}))

	res, err := api.Login(context.Background(), ports.Credentials{Username: "alice", Password: "secret"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if res.Token != "tok123" || res.User.Role != domain.RoleAdmin {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestAuthAPI_Login_JWTFieldFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"user":    map[string]any{"id": 2, "username": "bob", "role": "CUSTOMER"},
			"jwt":     "jwt-token",
		})
	}))
	defer srv.Close()

	api := NewAuthAPI(newGateway(srv.URL, seededStore(t, ""), Options{}))

	res, err := api.Login(context.Background(), ports.Credentials{Username: "bob", Password: "pw"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if res.Token != "jwt-token" {
		t.Fatalf("expected jwt field fallback, got %q", res.Token)
	}
}

func TestAuthAPI_Login_SuccessFalseIsRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "invalid credentials",
		})
	}))
	defer srv.Close()

	api := NewAuthAPI(newGateway(srv.URL, seededStore(t, ""), Options{}))

	_, err := api.Login(context.Background(), ports.Credentials{Username: "eve", Password: "bad"})
	if !domain.Unauthorized(err) {
		t.Fatalf("expected 401-shaped rejection, got %v", err)
	}
	ae := err.(*domain.APIError)
	if ae.Message != "invalid credentials" {
		t.Fatalf("backend message must pass through verbatim, got %q", ae.Message)
	}
}

func TestAuthAPI_ListUsers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"users": []map[string]any{
				{"id": 1, "username": "alice", "role": "ADMIN"},
				{"id": 2, "username": "bob", "role": "CUSTOMER"},
			},
		})
	}))
	defer srv.Close()

	api := NewAuthAPI(newGateway(srv.URL, seededStore(t, "tok"), Options{}))

	users, err := api.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers returned error: %v", err)
	}
	if len(users) != 2 || users[0].Username != "alice" || users[1].Role != domain.RoleCustomer {
		t.Fatalf("unexpected users: %+v", users)
	}
}
