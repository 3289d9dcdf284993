package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcpgo "github.com/mark3labs/mcp-go/mcp"

	"github.com/testdino/testdino-mcp/internal/client"
	"github.com/testdino/testdino-mcp/internal/common"
	"github.com/testdino/testdino-mcp/internal/credential"
	"github.com/testdino/testdino-mcp/internal/endpoints"
	"github.com/testdino/testdino-mcp/internal/mcp"
	"github.com/testdino/testdino-mcp/internal/tools"
	testcommon "github.com/testdino/testdino-mcp/tests/common"
)

const testToken = "pat_integration"

func newRouter(t *testing.T, baseURL, token string) *mcp.Router {
	t.Helper()
	logger := common.NewSilentLogger()
	router, err := mcp.NewRouter(&tools.Deps{
		Endpoints:   endpoints.NewBuilder(baseURL),
		Client:      client.New(logger, 0),
		Credentials: credential.NewResolver(token),
		Logger:      logger,
	})
	require.NoError(t, err)
	return router
}

func call(t *testing.T, router *mcp.Router, name string, args map[string]any) (string, error) {
	t.Helper()
	req := mcpgo.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	result, err := router.CallTool(context.Background(), req)
	if err != nil {
		return "", err
	}
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcpgo.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text, nil
}

func authHeader() map[string]string {
	return map[string]string{"Authorization": "Bearer " + testToken}
}

func TestHealthAgainstMockAPI(t *testing.T) {
	mock := testcommon.StartMockAPI(t)
	mock.Stub(t, testcommon.Stub{
		Method:  http.MethodGet,
		URLPath: "/api/mcp/hello",
		Headers: authHeader(),
		Body: `{"success":true,"data":{
			"user":{"firstName":"Ada","fullName":"Ada Lovelace"},
			"pat":{"name":"CI token"},
			"access":[{"organizationId":"org_1","organizationName":"Acme","projects":[
				{"projectId":"proj_1","projectName":"Web","modules":{"testRuns":true},"permissions":{"canWrite":true,"role":"admin"}}
			]}]}}`,
	})

	text, err := call(t, newRouter(t, mock.URL(), testToken), "health", map[string]any{})
	require.NoError(t, err)

	assert.Contains(t, text, "✅ **TestDino Connection Successful!**")
	assert.Contains(t, text, "Project ID: `proj_1`")
	assert.Contains(t, text, "Hello👋 Ada!")
}

func TestHealthReportsRejectedKey(t *testing.T) {
	mock := testcommon.StartMockAPI(t)
	mock.Stub(t, testcommon.Stub{
		Method:  http.MethodGet,
		URLPath: "/api/mcp/hello",
		Status:  http.StatusUnauthorized,
		Body:    `{"error":"invalid token"}`,
	})

	text, err := call(t, newRouter(t, mock.URL(), "bad"), "health", map[string]any{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "❌ **Error validating API key**"), text)
	assert.Contains(t, text, "401")
}

func TestListTestRunsQueryReachesAPI(t *testing.T) {
	mock := testcommon.StartMockAPI(t)
	mock.Stub(t, testcommon.Stub{
		Method:  http.MethodGet,
		URLPath: "/api/mcp/proj_1/list-testruns",
		QueryParams: map[string]string{
			"by_branch": "feature/login",
			"limit":     "5",
		},
		Headers: authHeader(),
		Body:    `{"testRuns":[{"id":"run_1","counter":42}]}`,
	})

	text, err := call(t, newRouter(t, mock.URL(), testToken), "list_testruns", map[string]any{
		"projectId": "proj_1",
		"by_branch": "feature/login",
		"limit":     float64(5),
	})
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(text), &out))
	runs := out["testRuns"].([]any)
	assert.Len(t, runs, 1)
	assert.Contains(t, text, "\n  \"testRuns\"")
}

func TestDebugTestCaseEncodesName(t *testing.T) {
	mock := testcommon.StartMockAPI(t)
	mock.Stub(t, testcommon.Stub{
		Method:      http.MethodGet,
		URLPath:     "/api/mcp/proj_1/debug-testcase",
		QueryParams: map[string]string{"testcase_name": "login & logout works"},
		Headers:     authHeader(),
		Body:        `{"executions":[],"debugging_prompt":"Look at the selector"}`,
	})

	text, err := call(t, newRouter(t, mock.URL(), testToken), "debug_testcase", map[string]any{
		"projectId":     "proj_1",
		"testcase_name": "login & logout works",
	})
	require.NoError(t, err)
	assert.Contains(t, text, "Look at the selector")
}

func TestManualTestCaseLifecycle(t *testing.T) {
	mock := testcommon.StartMockAPI(t)
	mock.Stub(t, testcommon.Stub{
		Method:  http.MethodPost,
		URLPath: "/api/mcp/manual-tests/proj_1/test-suites",
		Headers: authHeader(),
		Status:  http.StatusCreated,
		Body:    `{"id":"suite_1","name":"Checkout"}`,
	})
	mock.Stub(t, testcommon.Stub{
		Method:  http.MethodPost,
		URLPath: "/api/mcp/manual-tests/proj_1/test-cases",
		Headers: authHeader(),
		Status:  http.StatusCreated,
		Body:    `{"id":"case_1","caseId":"TC-1"}`,
	})
	mock.Stub(t, testcommon.Stub{
		Method:  http.MethodPatch,
		URLPath: "/api/mcp/manual-tests/proj_1/test-cases/TC-1",
		Headers: authHeader(),
		Body:    `{"id":"case_1","priority":"high"}`,
	})

	router := newRouter(t, mock.URL(), testToken)

	text, err := call(t, router, "create_manual_test_suite", map[string]any{"projectId": "proj_1", "name": "Checkout"})
	require.NoError(t, err)
	assert.Contains(t, text, `"suite_1"`)

	text, err = call(t, router, "create_manual_test_case", map[string]any{
		"projectId": "proj_1",
		"title":     "Pay with card",
		"suiteId":   "suite_1",
		"steps":     []any{map[string]any{"action": "Pay", "expectedResult": "Receipt shown"}},
	})
	require.NoError(t, err)
	assert.Contains(t, text, `"TC-1"`)

	text, err = call(t, router, "update_manual_test_case", map[string]any{
		"projectId": "proj_1",
		"caseId":    "TC-1",
		"updates":   map[string]any{"priority": "high"},
	})
	require.NoError(t, err)
	assert.Contains(t, text, `"high"`)
}

func TestAPIErrorIsPrefixed(t *testing.T) {
	mock := testcommon.StartMockAPI(t)
	mock.Stub(t, testcommon.Stub{
		Method:  http.MethodGet,
		URLPath: "/api/mcp/manual-tests/proj_1/test-cases/TC-404",
		Status:  http.StatusNotFound,
		Body:    `{"error":"not found"}`,
	})

	_, err := call(t, newRouter(t, mock.URL(), testToken), "get_manual_test_case", map[string]any{
		"projectId": "proj_1",
		"caseId":    "TC-404",
	})
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "Failed to get manual test case details: API request failed: 404"), err.Error())
	assert.Contains(t, err.Error(), `{"error":"not found"}`)
}

func TestValidationSendsNothing(t *testing.T) {
	mock := testcommon.StartMockAPI(t)
	router := newRouter(t, mock.URL(), testToken)

	_, err := call(t, router, "get_run_details", map[string]any{})
	require.EqualError(t, err, "projectId is required")

	_, err = call(t, newRouter(t, mock.URL(), ""), "list_testruns", map[string]any{"projectId": "proj_1"})
	require.ErrorIs(t, err, credential.ErrMissing)

	assert.Equal(t, 0, mock.RequestCount(t))
}
