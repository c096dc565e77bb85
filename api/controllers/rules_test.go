package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/tripdesk/tripdesk-backend/pkg/db/models"
	"github.com/tripdesk/tripdesk-backend/pkg/enums"
)

type testRulesService struct {
	listFn       func(ctx context.Context) ([]models.AssignmentRule, error)
	setEnabledFn func(ctx context.Context, name enums.AssignmentRuleName, enabled bool) error
}

func (s *testRulesService) EnabledMap(context.Context, []enums.AssignmentRuleName) (map[enums.AssignmentRuleName]*bool, error) {
	return nil, nil
}

func (s *testRulesService) List(ctx context.Context) ([]models.AssignmentRule, error) {
	if s.listFn != nil {
		return s.listFn(ctx)
	}
	return nil, nil
}

func (s *testRulesService) SetEnabled(ctx context.Context, name enums.AssignmentRuleName, enabled bool) error {
	if s.setEnabledFn != nil {
		return s.setEnabledFn(ctx, name, enabled)
	}
	return nil
}

func withRuleName(req *http.Request, name string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("ruleName", name)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestToggleRuleSuccess(t *testing.T) {
	var gotName enums.AssignmentRuleName
	var gotEnabled bool
	svc := &testRulesService{
		setEnabledFn: func(ctx context.Context, name enums.AssignmentRuleName, enabled bool) error {
			gotName = name
			gotEnabled = enabled
			return nil
		},
	}

	body := strings.NewReader(`{"enabled": false}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/assignment/rules/round-robin", body)
	req = withRuleName(req, "round-robin")

	resp := httptest.NewRecorder()
	ToggleRule(svc, testLogg())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if gotName != enums.RuleRoundRobin {
		t.Fatalf("unexpected rule %s", gotName)
	}
	if gotEnabled {
		t.Fatal("expected rule disabled")
	}
}

func TestToggleRuleUnknownName(t *testing.T) {
	body := strings.NewReader(`{"enabled": true}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/assignment/rules/bogus", body)
	req = withRuleName(req, "bogus")

	resp := httptest.NewRecorder()
	ToggleRule(&testRulesService{}, testLogg())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}

func TestToggleRuleMissingEnabledField(t *testing.T) {
	body := strings.NewReader(`{}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/assignment/rules/round-robin", body)
	req = withRuleName(req, "round-robin")

	resp := httptest.NewRecorder()
	ToggleRule(&testRulesService{}, testLogg())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}
