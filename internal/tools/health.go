package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/testdino/testdino-mcp/internal/client"
	"github.com/testdino/testdino-mcp/internal/credential"
)

const (
	summaryRule = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"
	orgRule     = "─────────────────────────────────────"
)

// helloResponse is the payload of GET /api/mcp/hello, possibly wrapped in
// {"success": ..., "data": ...}.
type helloResponse struct {
	User *helloUser `json:"user"`
	PAT  struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"pat"`
	Access []helloOrg `json:"access"`
}

type helloUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	FullName  string `json:"fullName"`
}

type helloOrg struct {
	OrganizationID   string         `json:"organizationId"`
	OrganizationName string         `json:"organizationName"`
	Projects         []helloProject `json:"projects"`
}

type helloProject struct {
	ProjectID   string `json:"projectId"`
	ProjectName string `json:"projectName"`
	Modules     struct {
		TestRuns        bool `json:"testRuns"`
		ManualTestCases bool `json:"manualTestCases"`
	} `json:"modules"`
	Permissions struct {
		CanRead  bool   `json:"canRead"`
		CanWrite bool   `json:"canWrite"`
		Role     string `json:"role"`
	} `json:"permissions"`
}

func healthTool() Definition {
	return Definition{
		Name: "health",
		Description: "Check if your TestDino connection is working. Verifies your API key, shows your account information, " +
			"and lists available organizations and projects. Use this first to make sure everything is set up correctly " +
			"and to get organization/project IDs for other tools.",
		Policy: Reporting,
		Run:    runHealth,
		Report: reportHealthError,
	}
}

func runHealth(ctx context.Context, deps *Deps, call Call) (string, error) {
	raw, err := client.RequestJSON[json.RawMessage](ctx, deps.Client, deps.Endpoints.Hello(), call.Auth(http.MethodGet, nil))
	if err != nil {
		return "", err
	}

	payload := unwrapData(raw)

	var hello helloResponse
	if err := json.Unmarshal(payload, &hello); err != nil || hello.User == nil {
		return "❌ **Error**: Unexpected response from TestDino server.\n\n" + compactJSON(payload), nil
	}
	return formatHello(hello), nil
}

// unwrapData returns raw.data when raw is an object with a non-null data member.
func unwrapData(raw json.RawMessage) json.RawMessage {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return raw
	}
	if data, ok := envelope["data"]; ok && !isNullish(data) {
		return data
	}
	return raw
}

func isNullish(raw json.RawMessage) bool {
	switch strings.TrimSpace(string(raw)) {
	case "", "null", "false", "0", `""`:
		return true
	}
	return false
}

func compactJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

func reportHealthError(err error) string {
	if errors.Is(err, credential.ErrMissing) {
		return "❌ **Error**: Missing " + credential.EnvVar + " environment variable.\n\n" +
			"Please configure it in your .cursor/mcp.json file under the 'env' section."
	}
	return fmt.Sprintf("❌ **Error validating API key**\n\n%s\n\nPlease check your API key and try again.", err.Error())
}

func formatHello(h helloResponse) string {
	var b strings.Builder

	b.WriteString("✅ **TestDino Connection Successful!**\n\n")
	fmt.Fprintf(&b, "👤 **Account**: %s\n", h.User.FullName)
	fmt.Fprintf(&b, "🔑 **PAT**: %s\n\n", h.PAT.Name)

	if len(h.Access) == 0 {
		b.WriteString("⚠️ **No Organizations Found**\n\n")
		b.WriteString("Your API key doesn't have access to any organizations or projects.\n")
		b.WriteString("Please contact your administrator to grant access.")
		return b.String()
	}

	totalProjects := 0
	for _, org := range h.Access {
		totalProjects += len(org.Projects)
	}

	b.WriteString("📊 **Access Summary**\n")
	b.WriteString(summaryRule + "\n")
	fmt.Fprintf(&b, "Organizations: %d | Projects: %d\n", len(h.Access), totalProjects)
	b.WriteString(summaryRule + "\n\n")

	for i, org := range h.Access {
		fmt.Fprintf(&b, "**%d. %s**\n", i+1, org.OrganizationName)
		fmt.Fprintf(&b, "   📋 Org ID: `%s`\n", org.OrganizationID)

		if len(org.Projects) == 0 {
			b.WriteString("   ℹ️ No projects available\n\n")
		} else {
			fmt.Fprintf(&b, "   📁 Projects (%d):\n\n", len(org.Projects))
			for j, p := range org.Projects {
				icon, label := "👁️", "Read"
				if p.Permissions.CanWrite {
					icon, label = "✏️", "Write"
				}
				fmt.Fprintf(&b, "   %d.%d %s **%s**\n", i+1, j+1, icon, p.ProjectName)
				fmt.Fprintf(&b, "       • Project ID: `%s`\n", p.ProjectID)
				fmt.Fprintf(&b, "       • Access: %s (%s)\n", label, p.Permissions.Role)
				if p.Modules.TestRuns {
					b.WriteString("       • Modules: Test Runs ✓\n")
				}
				if p.Modules.ManualTestCases {
					b.WriteString("       • Modules: Test Case Management ✓\n")
				}
				b.WriteString("\n")
			}
		}

		if i < len(h.Access)-1 {
			b.WriteString("   " + orgRule + "\n\n")
		}
	}

	b.WriteString("\n" + summaryRule + "\n")
	fmt.Fprintf(&b, "\nHello👋 %s!\n", h.User.FirstName)
	b.WriteString("You can use organisation Id and project Id in other MCP tools.\n")
	b.WriteString("Happy Testing!😀")
	return b.String()
}
