// Package endpoints builds TestDino REST API URLs.
package endpoints

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/testdino/testdino-mcp/internal/params"
)

// Path templates relative to the API base URL. Each %s is one path segment.
const (
	HelloPath              = "/api/mcp/hello"
	ListTestRunsPath       = "/api/mcp/%s/list-testruns"
	GetRunDetailsPath      = "/api/mcp/%s/get-run-details"
	ListTestCasesPath      = "/api/mcp/%s/list-testcase"
	GetTestCaseDetailsPath = "/api/mcp/%s/get-testcase-details"
	DebugTestCasePath      = "/api/mcp/%s/debug-testcase"
	ManualTestCasesPath    = "/api/mcp/manual-tests/%s/test-cases"
	ManualTestCasePath     = "/api/mcp/manual-tests/%s/test-cases/%s"
	ManualTestSuitesPath   = "/api/mcp/manual-tests/%s/test-suites"
)

// Builder produces absolute URLs under a fixed base.
type Builder struct {
	baseURL string
}

// NewBuilder returns a Builder rooted at baseURL. Trailing slashes are trimmed.
func NewBuilder(baseURL string) *Builder {
	return &Builder{baseURL: strings.TrimRight(baseURL, "/")}
}

// BaseURL returns the normalized base URL.
func (b *Builder) BaseURL() string {
	return b.baseURL
}

// Build interpolates segments into template verbatim and appends query.
// Segments must already be free of '/', '?' and '#'.
func (b *Builder) Build(template string, segments []string, query params.Values) string {
	path := template
	if len(segments) > 0 {
		args := make([]any, len(segments))
		for i, s := range segments {
			args[i] = s
		}
		path = fmt.Sprintf(template, args...)
	}
	return b.baseURL + path + QueryString(query)
}

// QueryString encodes query in order using form rules. Nil values are
// dropped; an empty result yields "" with no leading '?'.
func QueryString(query params.Values) string {
	var sb strings.Builder
	for _, p := range query {
		if p.Value == nil {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(p.Key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(params.Format(p.Value)))
	}
	if sb.Len() == 0 {
		return ""
	}
	return "?" + sb.String()
}

// Hello returns the URL of the connection check endpoint.
func (b *Builder) Hello() string {
	return b.Build(HelloPath, nil, nil)
}

// ListTestRuns returns the URL listing a project's test runs.
func (b *Builder) ListTestRuns(projectID string, query params.Values) string {
	return b.Build(ListTestRunsPath, []string{projectID}, query)
}

// GetRunDetails returns the URL for the details of one or more runs.
func (b *Builder) GetRunDetails(projectID string, query params.Values) string {
	return b.Build(GetRunDetailsPath, []string{projectID}, query)
}

// ListTestCases returns the URL listing test cases across runs.
func (b *Builder) ListTestCases(projectID string, query params.Values) string {
	return b.Build(ListTestCasesPath, []string{projectID}, query)
}

// GetTestCaseDetails returns the URL for a single test case's details.
func (b *Builder) GetTestCaseDetails(projectID string, query params.Values) string {
	return b.Build(GetTestCaseDetailsPath, []string{projectID}, query)
}

// DebugTestCase returns the URL of the failure history for testCaseName.
func (b *Builder) DebugTestCase(projectID, testCaseName string) string {
	var q params.Values
	q.Add("testcase_name", testCaseName)
	return b.Build(DebugTestCasePath, []string{projectID}, q)
}

// ListManualTestCases returns the URL listing manual test cases.
func (b *Builder) ListManualTestCases(projectID string, query params.Values) string {
	return b.Build(ManualTestCasesPath, []string{projectID}, query)
}

// GetManualTestCase returns the URL of one manual test case.
func (b *Builder) GetManualTestCase(projectID, caseID string) string {
	return b.Build(ManualTestCasePath, []string{projectID, caseID}, nil)
}

// CreateManualTestCase returns the URL that manual test cases are POSTed to.
func (b *Builder) CreateManualTestCase(projectID string) string {
	return b.Build(ManualTestCasesPath, []string{projectID}, nil)
}

// UpdateManualTestCase returns the URL that a manual test case is PATCHed at.
func (b *Builder) UpdateManualTestCase(projectID, caseID string) string {
	return b.Build(ManualTestCasePath, []string{projectID, caseID}, nil)
}

// ListManualTestSuites returns the URL listing manual test suites.
func (b *Builder) ListManualTestSuites(projectID string, query params.Values) string {
	return b.Build(ManualTestSuitesPath, []string{projectID}, query)
}

// CreateManualTestSuite returns the URL that manual test suites are POSTed to.
func (b *Builder) CreateManualTestSuite(projectID string) string {
	return b.Build(ManualTestSuitesPath, []string{projectID}, nil)
}
