package service

import (
	"testing"

	"github.com/parkease/parking-console/internal/core/domain"
)

func TestEvaluate(t *testing.T) {
	admin := &domain.Session{User: domain.User{Role: domain.RoleAdmin}, Token: "tok"}
	customer := &domain.Session{User: domain.User{Role: domain.RoleCustomer}, Token: "tok"}

	tests := []struct {
		name     string
		session  *domain.Session
		allowed  []string
		decision Decision
		redirect domain.Route
	}{
		{"nil session redirects to login", nil, []string{domain.RoleAdmin}, Unauthenticated, domain.RouteLogin},
		{"tokenless session redirects to login", &domain.Session{User: domain.User{Role: domain.RoleAdmin}}, nil, Unauthenticated, domain.RouteLogin},
		{"empty allowed set admits any authenticated role", customer, nil, AuthorizedForRoute, ""},
		{"matching role admitted", admin, []string{domain.RoleAdmin}, AuthorizedForRoute, ""},
		{"role in multi-role set admitted", customer, []string{domain.RoleAdmin, domain.RoleCustomer}, AuthorizedForRoute, ""},
		{"wrong role redirects to default, not login", customer, []string{domain.RoleAdmin}, AuthorizedWrongRole, domain.RouteDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, redirect := Evaluate(tt.session, tt.allowed)
			if decision != tt.decision {
				t.Fatalf("decision = %v, want %v", decision, tt.decision)
			}
			if redirect != tt.redirect {
				t.Fatalf("redirect = %q, want %q", redirect, tt.redirect)
			}
		})
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	session := &domain.Session{User: domain.User{Role: domain.RoleCustomer}, Token: "tok"}
	allowed := []string{domain.RoleAdmin}

	firstDecision, firstRedirect := Evaluate(session, allowed)
	for i := 0; i < 5; i++ {
		decision, redirect := Evaluate(session, allowed)
		if decision != firstDecision || redirect != firstRedirect {
			t.Fatalf("evaluation %d diverged: %v %q", i, decision, redirect)
		}
	}
}
