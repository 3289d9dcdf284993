package tools

import (
	"context"
	"net/http"

	"github.com/testdino/testdino-mcp/internal/params"
)

func listTestCasesTool() Definition {
	return Definition{
		Name: "list_testcase",
		Description: "List test cases across one or more test runs with rich filtering. Identify the runs by ID " +
			"(by_testrun_id, comma-separated for batch, max 20) or by counter, or narrow by branch, time interval, " +
			"environment, author or commit. Filter cases by status ('passed', 'failed', 'skipped', 'flaky'), spec file, " +
			"error category, browser, tag, runtime, artifacts, error message or attempt number. Use this to find failing " +
			"or flaky tests before drilling into them with get_testcase_details.",
		Policy:      Propagating,
		ErrorPrefix: "Failed to list test cases",
		Fields: []params.Field{
			projectField(),
			str("by_testrun_id", "Test run ID(s). Single ID or comma-separated for batch (max 20)."),
			num("counter", "Filter by test run counter (sequential number)."),
			str("by_status", "Filter by test case status: 'passed', 'failed', 'skipped', 'flaky'."),
			str("by_spec_file_name", "Filter by spec file name (partial match)."),
			str("by_error_category", "Filter by error category (e.g., 'timeout_issues', 'element_not_found', 'assertion_failures')."),
			str("by_browser_name", "Filter by browser name (e.g., 'chromium', 'firefox', 'webkit')."),
			str("by_tag", "Filter by tag(s). Comma-separated for multiple tags."),
			str("by_total_runtime", "Filter by total runtime using comparison operators (e.g., '>60', '<30')."),
			boolean("by_artifacts", "Only return test cases that have artifacts (screenshots, videos, traces)."),
			str("by_error_message", "Filter by error message text (partial match)."),
			num("by_attempt_number", "Filter by retry attempt number."),
			num("by_pages", "Page number when listing across multiple test runs."),
			str("by_branch", "Filter test runs by git branch name."),
			str("by_time_interval", "Filter test runs by time: '1d', '3d', 'weekly', 'monthly', or a 'YYYY-MM-DD,YYYY-MM-DD' range."),
			withDefault(num("limit", "Number of results per page (default: 20, max: 1000)."), 20),
			str("by_environment", "Filter test runs by environment. Example: 'production', 'staging'."),
			str("by_author", "Filter test runs by commit author name."),
			str("by_commit", "Filter test runs by git commit hash."),
			withDefault(num("page", "Page number (default: 1)."), 1),
			withDefault(boolean("get_all", "Get all results up to 1000 (default: false)."), false),
		},
		Run: runListTestCases,
	}
}

func runListTestCases(ctx context.Context, deps *Deps, call Call) (string, error) {
	url := deps.Endpoints.ListTestCases(call.ProjectID(), call.Params.Without("projectId"))
	return fetchJSON(ctx, deps, call.Logger, url, call.Auth(http.MethodGet, nil))
}

func getTestCaseDetailsTool() Definition {
	return Definition{
		Name: "get_testcase_details",
		Description: "Get full details for a test case: status, duration, error message and stack trace, retry attempts, " +
			"steps and artifacts. Look it up by testcaseid alone (comma-separated for batch, max 20), or by by_title " +
			"combined with by_testrun_id or counter.",
		Policy:      Propagating,
		ErrorPrefix: "Failed to get test case details",
		Fields: []params.Field{
			projectField(),
			str("testcaseid", "Test case ID(s). Can be used alone. Comma-separated for batch (max 20)."),
			str("by_title", "Test case title. Must be combined with by_testrun_id or counter."),
			str("by_testrun_id", "Test run ID. Required when using by_title without counter."),
			num("counter", "Test run counter. Required when using by_title without by_testrun_id."),
		},
		Run: runGetTestCaseDetails,
	}
}

func runGetTestCaseDetails(ctx context.Context, deps *Deps, call Call) (string, error) {
	url := deps.Endpoints.GetTestCaseDetails(call.ProjectID(), call.Params.Without("projectId"))
	return fetchJSON(ctx, deps, call.Logger, url, call.Auth(http.MethodGet, nil))
}

func debugTestCaseTool() Definition {
	return Definition{
		Name: "debug_testcase",
		Description: "Fetch historical execution and failure data for a specific test case. Returns raw historical data " +
			"and a debugging prompt from the API. The AI client will analyze the data to identify failure patterns, " +
			"find root causes, and provide fix suggestions. Use this when you need to debug a failing test case. " +
			"Example: 'Debug test case \"Verify user login\"'.",
		Policy:      Propagating,
		ErrorPrefix: "Failed to debug test case",
		Fields: []params.Field{
			projectField(),
			required(str("testcase_name", "Test case name/title to debug (Required). Example: 'Verify user can logout and login'.")),
		},
		Run: runDebugTestCase,
	}
}

func runDebugTestCase(ctx context.Context, deps *Deps, call Call) (string, error) {
	url := deps.Endpoints.DebugTestCase(call.ProjectID(), call.Params.Str("testcase_name"))
	return fetchJSON(ctx, deps, call.Logger, url, call.Auth(http.MethodGet, nil))
}
