// Package tools defines the TestDino MCP tool catalogue and the shared
// pipeline every tool call runs through.
package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/testdino/testdino-mcp/internal/client"
	"github.com/testdino/testdino-mcp/internal/common"
	"github.com/testdino/testdino-mcp/internal/credential"
	"github.com/testdino/testdino-mcp/internal/endpoints"
	"github.com/testdino/testdino-mcp/internal/params"
)

// Policy selects how a tool surfaces failures.
type Policy int

const (
	// Propagating returns failures to the protocol boundary as errors.
	Propagating Policy = iota
	// Reporting turns every failure into readable text content.
	Reporting
)

func (p Policy) String() string {
	if p == Reporting {
		return "reporting"
	}
	return "propagating"
}

// Deps are the collaborators shared by all tools.
type Deps struct {
	Endpoints   *endpoints.Builder
	Client      *client.Client
	Credentials *credential.Resolver
	Logger      *common.Logger
}

// Call is a validated invocation handed to a tool's Run function.
type Call struct {
	Token  string
	Params params.Values
	// Logger carries the call's correlation ID.
	Logger *common.Logger
}

// Auth returns request options carrying the call's bearer token.
func (c Call) Auth(method string, body any) client.Options {
	return client.Options{
		Method:  method,
		Headers: client.BearerAuth(c.Token),
		Body:    body,
	}
}

// ProjectID returns the bound projectId.
func (c Call) ProjectID() string {
	return c.Params.Str("projectId")
}

// Definition describes one tool.
type Definition struct {
	Name        string
	Description string
	Policy      Policy
	Fields      []params.Field
	// ErrorPrefix is prepended to failures raised after validation.
	ErrorPrefix string
	Run         func(ctx context.Context, deps *Deps, call Call) (string, error)
	// Report renders a failure as text for Reporting tools.
	Report func(err error) string
}

// Tool renders the definition as an mcp.Tool.
func (d Definition) Tool() (mcp.Tool, error) {
	schema, err := params.RawSchema(d.Fields)
	if err != nil {
		return mcp.Tool{}, fmt.Errorf("tool %s: %w", d.Name, err)
	}
	return mcp.NewToolWithRawSchema(d.Name, d.Description, schema), nil
}

// Invoke runs the pipeline: credential, validation, then the tool itself.
// No request is sent unless both earlier steps succeed.
func (d Definition) Invoke(ctx context.Context, deps *Deps, logger *common.Logger, args map[string]any) (string, error) {
	token, ok := deps.Credentials.Resolve(args)
	if !ok {
		return "", credential.ErrMissing
	}

	values, err := params.Bind(d.Fields, args)
	if err != nil {
		return "", err
	}

	text, err := d.Run(ctx, deps, Call{Token: token, Params: values, Logger: logger})
	if err != nil {
		if d.ErrorPrefix == "" {
			return "", err
		}
		return "", fmt.Errorf("%s: %w", d.ErrorPrefix, err)
	}
	return text, nil
}

// Handler adapts the definition to an mcp-go tool handler.
func (d Definition) Handler(deps *Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if ctx == nil {
			ctx = context.Background()
		}
		args := request.GetArguments()
		logger := deps.Logger.WithCorrelationId(uuid.NewString())

		logger.Info().
			Str("tool", d.Name).
			Str("arguments", fmt.Sprint(common.RedactArguments(args))).
			Msg("Tool call")

		start := time.Now()
		text, err := d.Invoke(ctx, deps, logger, args)
		duration := time.Since(start)

		if err != nil {
			logger.Warn().
				Err(err).
				Str("tool", d.Name).
				Str("policy", d.Policy.String()).
				Dur("duration", duration).
				Msg("Tool call failed")

			if d.Policy == Reporting && d.Report != nil {
				return textResult(d.Report(err)), nil
			}
			return nil, err
		}

		logger.Debug().Str("tool", d.Name).Dur("duration", duration).Msg("Tool call complete")
		return textResult(text), nil
	}
}

// Catalog returns every tool in listing order.
func Catalog() []Definition {
	return []Definition{
		healthTool(),
		listTestRunsTool(),
		getRunDetailsTool(),
		listTestCasesTool(),
		getTestCaseDetailsTool(),
		debugTestCaseTool(),
		listManualTestCasesTool(),
		getManualTestCaseTool(),
		createManualTestCaseTool(),
		updateManualTestCaseTool(),
		listManualTestSuitesTool(),
		createManualTestSuiteTool(),
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

// formatJSON re-indents a JSON document with two spaces, keeping the
// server's key order.
func formatJSON(raw json.RawMessage) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return "", fmt.Errorf("failed to format response: %w", err)
	}
	return buf.String(), nil
}

// fetchJSON sends one request and returns the response pretty-printed.
func fetchJSON(ctx context.Context, deps *Deps, logger *common.Logger, url string, opts client.Options) (string, error) {
	resp, err := client.RequestJSON[json.RawMessage](ctx, deps.Client, url, opts)
	if err != nil {
		return "", err
	}
	if logger != nil {
		logger.Debug().
			Str("method", opts.Method).
			Int("response_bytes", len(resp)).
			Msg("API response received")
	}
	return formatJSON(resp)
}
