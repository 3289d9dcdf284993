package tools

import (
	"context"
	"net/http"

	"github.com/testdino/testdino-mcp/internal/params"
)

func listTestRunsTool() Definition {
	return Definition{
		Name: "list_testruns",
		Description: "Browse and filter your test runs to find specific test executions. Filter by git branch (e.g., 'develop', 'main'), " +
			"time interval ('1d', '3d', 'weekly', 'monthly', or custom date ranges), commit author, or environment " +
			"(e.g., 'production', 'staging', 'development'). Supports pagination using page/limit, or use get_all=true " +
			"to fetch all results (up to 1000). Returns test run summaries with statistics (total, passed, failed, skipped, " +
			"flaky counts), duration, status, branch, author, and PR information when available. The API key should be " +
			"configured in mcp.json as the TESTDINO_API_KEY environment variable.",
		Policy:      Propagating,
		ErrorPrefix: "Failed to list test runs",
		Fields: []params.Field{
			projectField(),
			str("by_branch", "Filter by git branch name (e.g., 'main', 'develop', 'feature/login')."),
			str("by_time_interval", "Filter by time: '1d' (last day), '3d' (last 3 days), 'weekly' (last 7 days), 'monthly' (last 30 days), or '2024-01-01,2024-01-31' (date range)."),
			str("by_author", "Filter by commit author name (case-insensitive, partial match)."),
			str("by_commit", "Filter by git commit hash (full or partial)."),
			str("by_environment", "Filter by environment. Example: 'production', 'staging', 'development'."),
			withDefault(num("limit", "Number of results per page (default: 20, max: 1000)."), 20),
			withDefault(num("page", "Page number (default: 1)."), 1),
			withDefault(boolean("get_all", "Get all results up to 1000 (default: false)."), false),
		},
		Run: runListTestRuns,
	}
}

func runListTestRuns(ctx context.Context, deps *Deps, call Call) (string, error) {
	url := deps.Endpoints.ListTestRuns(call.ProjectID(), call.Params.Without("projectId"))
	return fetchJSON(ctx, deps, call.Logger, url, call.Auth(http.MethodGet, nil))
}

func getRunDetailsTool() Definition {
	return Definition{
		Name: "get_run_details",
		Description: "Get detailed information about test runs. Shows test statistics (passed, failed, skipped, flaky), " +
			"all test suites and cases, git metadata, and error details. Supports batch operations (comma-separated IDs, max 20). " +
			"Use this to analyze test execution health or debug specific failures.",
		Policy:      Propagating,
		ErrorPrefix: "Failed to retrieve test run details",
		Fields: []params.Field{
			projectField(),
			str("testrun_id", "Test run ID(s). Single ID or comma-separated for batch (max 20). Example: 'test_run_123' or 'run1,run2,run3'."),
			num("counter", "Filter by test run counter (sequential number)."),
		},
		Run: runGetRunDetails,
	}
}

func runGetRunDetails(ctx context.Context, deps *Deps, call Call) (string, error) {
	url := deps.Endpoints.GetRunDetails(call.ProjectID(), call.Params.Without("projectId"))
	return fetchJSON(ctx, deps, call.Logger, url, call.Auth(http.MethodGet, nil))
}
