package tools

import "github.com/testdino/testdino-mcp/internal/params"

var (
	priorities       = []string{"critical", "high", "medium", "low"}
	severities       = []string{"critical", "major", "minor", "trivial"}
	caseStatuses     = []string{"actual", "draft", "deprecated"}
	caseTypes        = []string{"functional", "smoke", "regression", "security", "performance", "e2e"}
	layers           = []string{"e2e", "api", "unit"}
	behaviors        = []string{"positive", "negative", "destructive"}
	automationStates = []string{"automated", "manual", "not_automated"}
)

func projectField() params.Field {
	return params.Field{
		Name:        "projectId",
		Kind:        params.String,
		Required:    true,
		InPath:      true,
		Description: "Project ID (Required). The TestDino project identifier.",
	}
}

func caseIDField() params.Field {
	return params.Field{
		Name:        "caseId",
		Kind:        params.String,
		Required:    true,
		InPath:      true,
		Description: "Test case ID (Required). Can be internal _id or human-readable ID like 'TC-123'.",
	}
}

func str(name, description string) params.Field {
	return params.Field{Name: name, Kind: params.String, Description: description}
}

func num(name, description string) params.Field {
	return params.Field{Name: name, Kind: params.Number, Description: description}
}

func boolean(name, description string) params.Field {
	return params.Field{Name: name, Kind: params.Boolean, Description: description}
}

func enum(name, description string, values []string) params.Field {
	return params.Field{Name: name, Kind: params.String, Description: description, Enum: values}
}

func withDefault(f params.Field, v any) params.Field {
	f.Default = v
	return f
}

func required(f params.Field) params.Field {
	f.Required = true
	return f
}

func stepFields(described bool) []params.Field {
	if !described {
		return []params.Field{
			{Name: "action", Kind: params.String},
			{Name: "expectedResult", Kind: params.String},
			{Name: "data", Kind: params.String},
		}
	}
	return []params.Field{
		required(str("action", "The action to perform in this step.")),
		required(str("expectedResult", "The expected outcome of this action.")),
		str("data", "Optional test data for this step."),
	}
}
