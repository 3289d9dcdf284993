package tools

import (
	"net/http"
	"reflect"
	"testing"
)

func TestListManualTestCases_Filters(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `{"success":true}`)
	deps := testDeps(api.URL, "pat_test")

	_, err := callTool(t, deps, "list_manual_test_cases", map[string]any{
		"projectId": "proj_123",
		"search":    "login flow",
		"priority":  "high",
		"tags":      "smoke,regression",
		"isFlaky":   false,
		"limit":     float64(50),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := api.Last(t)
	if req.Path != "/api/mcp/manual-tests/proj_123/test-cases" {
		t.Errorf("unexpected path %s", req.Path)
	}
	want := "search=login+flow&priority=high&tags=smoke%2Cregression&isFlaky=false&limit=50"
	if req.RawQuery != want {
		t.Errorf("expected query\n%s\ngot\n%s", want, req.RawQuery)
	}
}

func TestGetManualTestCase(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `{"success":true,"data":{"caseId":"TC-123"}}`)
	deps := testDeps(api.URL, "pat_test")

	result, err := callTool(t, deps, "get_manual_test_case", map[string]any{"projectId": "proj_123", "caseId": "TC-123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decodeText(t, result)["success"] != true {
		t.Error("expected payload passed through")
	}

	req := api.Last(t)
	if req.Method != http.MethodGet || req.Path != "/api/mcp/manual-tests/proj_123/test-cases/TC-123" {
		t.Errorf("unexpected request %s %s", req.Method, req.Path)
	}
}

func TestCreateManualTestCase_BodyHasOnlySuppliedFields(t *testing.T) {
	api := newFakeAPI(t, http.StatusCreated, `{"success":true}`)
	deps := testDeps(api.URL, "pat_test")

	steps := []any{
		map[string]any{"action": "Open login page", "expectedResult": "Form shown"},
	}
	_, err := callTool(t, deps, "create_manual_test_case", map[string]any{
		"projectId":   "proj_123",
		"title":       "User can log in",
		"suiteId":     "suite_1",
		"priority":    "high",
		"steps":       steps,
		"description": "",
		"token":       "ignored",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := api.Last(t)
	if req.Method != http.MethodPost {
		t.Errorf("expected POST, got %s", req.Method)
	}
	if req.Path != "/api/mcp/manual-tests/proj_123/test-cases" {
		t.Errorf("unexpected path %s", req.Path)
	}

	want := map[string]any{
		"projectId": "proj_123",
		"title":     "User can log in",
		"suiteId":   "suite_1",
		"priority":  "high",
		"steps":     steps,
	}
	if !reflect.DeepEqual(req.Body, want) {
		t.Errorf("expected body %v, got %v", want, req.Body)
	}
}

func TestCreateManualTestCase_MissingSuite(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `{}`)
	deps := testDeps(api.URL, "pat_test")

	_, err := callTool(t, deps, "create_manual_test_case", map[string]any{"projectId": "p", "title": "T"})
	if err == nil || err.Error() != "suiteId is required" {
		t.Errorf("expected suiteId is required, got %v", err)
	}
}

func TestUpdateManualTestCase_MergesUpdates(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `{"success":true}`)
	deps := testDeps(api.URL, "pat_test")

	_, err := callTool(t, deps, "update_manual_test_case", map[string]any{
		"projectId": "proj_123",
		"caseId":    "TC-9",
		"updates":   map[string]any{"status": "deprecated", "priority": "low"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := api.Last(t)
	if req.Method != http.MethodPatch {
		t.Errorf("expected PATCH, got %s", req.Method)
	}
	if req.Path != "/api/mcp/manual-tests/proj_123/test-cases/TC-9" {
		t.Errorf("unexpected path %s", req.Path)
	}
	want := map[string]any{
		"projectId": "proj_123",
		"caseId":    "TC-9",
		"status":    "deprecated",
		"priority":  "low",
	}
	if !reflect.DeepEqual(req.Body, want) {
		t.Errorf("expected body %v, got %v", want, req.Body)
	}
}

func TestUpdateManualTestCase_RequiresUpdatesObject(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `{}`)
	deps := testDeps(api.URL, "pat_test")

	_, err := callTool(t, deps, "update_manual_test_case", map[string]any{"projectId": "p", "caseId": "TC-1"})
	if err == nil || err.Error() != "updates object is required" {
		t.Errorf("expected updates object is required, got %v", err)
	}

	_, err = callTool(t, deps, "update_manual_test_case", map[string]any{"projectId": "p", "caseId": "TC-1", "updates": "title"})
	if err == nil || err.Error() != "updates must be an object" {
		t.Errorf("expected updates must be an object, got %v", err)
	}
	if len(api.Requests()) != 0 {
		t.Error("expected no request")
	}
}

func TestListManualTestSuites(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `{"success":true,"data":[]}`)
	deps := testDeps(api.URL, "pat_test")

	_, err := callTool(t, deps, "list_manual_test_suites", map[string]any{"projectId": "proj_123", "parentSuiteId": "root_1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := api.Last(t)
	if req.Path != "/api/mcp/manual-tests/proj_123/test-suites" || req.RawQuery != "parentSuiteId=root_1" {
		t.Errorf("unexpected request %s?%s", req.Path, req.RawQuery)
	}
}

func TestCreateManualTestSuite(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `{"success":true}`)
	deps := testDeps(api.URL, "pat_test")

	_, err := callTool(t, deps, "create_manual_test_suite", map[string]any{"projectId": "proj_123", "name": "Checkout"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := api.Last(t)
	if req.Method != http.MethodPost || req.Path != "/api/mcp/manual-tests/proj_123/test-suites" {
		t.Errorf("unexpected request %s %s", req.Method, req.Path)
	}
	want := map[string]any{"projectId": "proj_123", "name": "Checkout"}
	if !reflect.DeepEqual(req.Body, want) {
		t.Errorf("expected body %v, got %v", want, req.Body)
	}
}

func TestCreateManualTestSuite_MissingName(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `{}`)
	deps := testDeps(api.URL, "pat_test")

	_, err := callTool(t, deps, "create_manual_test_suite", map[string]any{"projectId": "proj_123"})
	if err == nil || err.Error() != "name is required" {
		t.Errorf("expected name is required, got %v", err)
	}
}
