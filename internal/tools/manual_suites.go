package tools

import (
	"context"
	"net/http"

	"github.com/testdino/testdino-mcp/internal/params"
)

func listManualTestSuitesTool() Definition {
	return Definition{
		Name: "list_manual_test_suites",
		Description: "List the test suite hierarchy to help users find suiteIds for test case creation. " +
			"Use this to navigate the test suite structure and understand test organization.",
		Policy:      Propagating,
		ErrorPrefix: "Failed to list manual test suites",
		Fields: []params.Field{
			projectField(),
			str("parentSuiteId", "Optional parent suite ID to fetch only children of a specific suite. If not provided, returns the root-level suites."),
		},
		Run: runListManualTestSuites,
	}
}

func runListManualTestSuites(ctx context.Context, deps *Deps, call Call) (string, error) {
	url := deps.Endpoints.ListManualTestSuites(call.ProjectID(), call.Params.Without("projectId"))
	return fetchJSON(ctx, deps, call.Logger, url, call.Auth(http.MethodGet, nil))
}

func createManualTestSuiteTool() Definition {
	return Definition{
		Name: "create_manual_test_suite",
		Description: "Create a new test suite folder to organize test cases. Use this to create a logical grouping for " +
			"related test cases. Suites can be nested by providing a parentSuiteId.",
		Policy:      Propagating,
		ErrorPrefix: "Failed to create manual test suite",
		Fields: []params.Field{
			projectField(),
			required(str("name", "Suite name (Required). A descriptive name for the test suite.")),
			str("parentSuiteId", "Optional parent suite ID to create this suite as a child of another suite. If not provided, creates a root-level suite."),
		},
		Run: runCreateManualTestSuite,
	}
}

func runCreateManualTestSuite(ctx context.Context, deps *Deps, call Call) (string, error) {
	url := deps.Endpoints.CreateManualTestSuite(call.ProjectID())
	return fetchJSON(ctx, deps, call.Logger, url, call.Auth(http.MethodPost, call.Params.Map()))
}
