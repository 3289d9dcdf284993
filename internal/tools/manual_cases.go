package tools

import (
	"context"
	"net/http"

	"github.com/testdino/testdino-mcp/internal/params"
)

func listManualTestCasesTool() Definition {
	return Definition{
		Name: "list_manual_test_cases",
		Description: "Search and list manual test cases with filtering capabilities. Use this to find specific manual test " +
			"cases for QA testing, auditing, or test case management. Supports filtering by project, suite, status, " +
			"priority, severity, type, layer, behavior, automation status, tags, and flaky status.",
		Policy:      Propagating,
		ErrorPrefix: "Failed to list manual test cases",
		Fields: []params.Field{
			projectField(),
			str("search", "Search term to match against title, description, or caseId. Example: 'login' or 'TC-123'."),
			str("suiteId", "Filter by specific test suite ID. Use list_manual_test_suites to find suite IDs."),
			enum("status", "Filter by test case status.", caseStatuses),
			enum("priority", "Filter by priority level.", priorities),
			enum("severity", "Filter by severity level.", severities),
			enum("type", "Filter by test case type.", caseTypes),
			enum("layer", "Filter by test layer.", layers),
			enum("behavior", "Filter by test behavior type.", behaviors),
			enum("automationStatus", "Filter by automation status.", automationStates),
			str("tags", "Filter by tags (comma-separated list). Example: 'smoke,regression' or 'critical'."),
			boolean("isFlaky", "Filter test cases marked as flaky. Set to true to show only flaky tests, false for non-flaky."),
			withDefault(num("limit", "Maximum number of results to return (default: 50, max: 1000)."), 50),
		},
		Run: runListManualTestCases,
	}
}

func runListManualTestCases(ctx context.Context, deps *Deps, call Call) (string, error) {
	url := deps.Endpoints.ListManualTestCases(call.ProjectID(), call.Params.Without("projectId"))
	return fetchJSON(ctx, deps, call.Logger, url, call.Auth(http.MethodGet, nil))
}

func getManualTestCaseTool() Definition {
	return Definition{
		Name: "get_manual_test_case",
		Description: "Retrieve detailed information of a single manual test case, including steps, custom fields, " +
			"preconditions, and all metadata. Use this to get comprehensive details about a specific test case for execution or review.",
		Policy:      Propagating,
		ErrorPrefix: "Failed to get manual test case details",
		Fields:      []params.Field{projectField(), caseIDField()},
		Run:         runGetManualTestCase,
	}
}

func runGetManualTestCase(ctx context.Context, deps *Deps, call Call) (string, error) {
	url := deps.Endpoints.GetManualTestCase(call.ProjectID(), call.Params.Str("caseId"))
	return fetchJSON(ctx, deps, call.Logger, url, call.Auth(http.MethodGet, nil))
}

func createManualTestCaseTool() Definition {
	return Definition{
		Name: "create_manual_test_case",
		Description: "Create a new manual test case. Use this to document new test scenarios, features, or requirements. " +
			"Supports adding test steps, preconditions, postconditions, and metadata like priority, severity, and type.",
		Policy:      Propagating,
		ErrorPrefix: "Failed to create manual test case",
		Fields: []params.Field{
			projectField(),
			required(str("title", "Test case title (Required). A clear, descriptive title for the test case.")),
			required(str("suiteId", "Test suite ID (Required). The suite where this test case will be created. Use list_manual_test_suites to find suite IDs.")),
			str("description", "Detailed description of what this test case validates."),
			str("preconditions", "Prerequisites or setup required before executing this test case."),
			str("postconditions", "Expected state or cleanup actions after executing this test case."),
			{
				Name:        "steps",
				Kind:        params.Array,
				Description: "Array of test steps. Each step should have action, expectedResult, and optional data fields.",
				Items:       stepFields(true),
			},
			enum("priority", "Test case priority level.", priorities),
			enum("severity", "Test case severity level.", severities),
			enum("type", "Test case type.", caseTypes),
			enum("layer", "Test layer.", layers),
			enum("behavior", "Test behavior type.", behaviors),
		},
		Run: runCreateManualTestCase,
	}
}

func runCreateManualTestCase(ctx context.Context, deps *Deps, call Call) (string, error) {
	url := deps.Endpoints.CreateManualTestCase(call.ProjectID())
	return fetchJSON(ctx, deps, call.Logger, url, call.Auth(http.MethodPost, call.Params.Map()))
}

func updateManualTestCaseTool() Definition {
	return Definition{
		Name: "update_manual_test_case",
		Description: "Update an existing manual test case. Use this to modify test case details, steps, status, priority, " +
			"or any other fields. Provide only the fields you want to update in the updates object.",
		Policy:      Propagating,
		ErrorPrefix: "Failed to update manual test case",
		Fields: []params.Field{
			projectField(),
			caseIDField(),
			{
				Name:     "updates",
				Kind:     params.Object,
				Required: true,
				Message:  "updates object is required",
				Description: "Object containing the fields to update. Can include: title, description, steps, status, " +
					"priority, severity, type, layer, behavior, preconditions, postconditions, etc.",
				Properties: []params.Field{
					str("title", "Updated test case title."),
					str("description", "Updated description."),
					str("preconditions", "Updated preconditions."),
					str("postconditions", "Updated postconditions."),
					{Name: "steps", Kind: params.Array, Description: "Updated test steps array.", Items: stepFields(false)},
					enum("status", "Updated status.", caseStatuses),
					enum("priority", "Updated priority.", priorities),
					enum("severity", "Updated severity.", severities),
					enum("type", "Updated type.", caseTypes),
					enum("layer", "Updated layer.", layers),
					enum("behavior", "Updated behavior.", behaviors),
				},
			},
		},
		Run: runUpdateManualTestCase,
	}
}

// runUpdateManualTestCase sends projectId and caseId followed by the updates
// object; keys in updates override the identifiers.
func runUpdateManualTestCase(ctx context.Context, deps *Deps, call Call) (string, error) {
	caseID := call.Params.Str("caseId")
	body := map[string]any{
		"projectId": call.ProjectID(),
		"caseId":    caseID,
	}
	if updates, ok := call.Params.Get("updates"); ok {
		for k, v := range updates.(map[string]any) {
			body[k] = v
		}
	}

	url := deps.Endpoints.UpdateManualTestCase(call.ProjectID(), caseID)
	return fetchJSON(ctx, deps, call.Logger, url, call.Auth(http.MethodPatch, body))
}
