package tools

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/testdino/testdino-mcp/internal/client"
	"github.com/testdino/testdino-mcp/internal/common"
	"github.com/testdino/testdino-mcp/internal/credential"
	"github.com/testdino/testdino-mcp/internal/endpoints"
)

// recordedRequest captures what the fake TestDino API received.
type recordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Auth     string
	Body     map[string]any
}

// fakeAPI is an httptest server that records every request and answers
// with a fixed status and body.
type fakeAPI struct {
	*httptest.Server
	mu       sync.Mutex
	requests []recordedRequest
	status   int
	body     string
}

func newFakeAPI(t *testing.T, status int, body string) *fakeAPI {
	t.Helper()
	f := &fakeAPI{status: status, body: body}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{
			Method:   r.Method,
			Path:     r.URL.Path,
			RawQuery: r.URL.RawQuery,
			Auth:     r.Header.Get("Authorization"),
		}
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			if err := json.Unmarshal(data, &rec.Body); err != nil {
				t.Errorf("request body is not a JSON object: %s", data)
			}
		}
		f.mu.Lock()
		f.requests = append(f.requests, rec)
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.status)
		w.Write([]byte(f.body))
	}))
	t.Cleanup(f.Close)
	return f
}

func (f *fakeAPI) Requests() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedRequest(nil), f.requests...)
}

func (f *fakeAPI) Last(t *testing.T) recordedRequest {
	t.Helper()
	reqs := f.Requests()
	if len(reqs) == 0 {
		t.Fatal("expected at least one request to the API")
	}
	return reqs[len(reqs)-1]
}

func testDeps(baseURL, token string) *Deps {
	logger := common.NewSilentLogger()
	return &Deps{
		Endpoints:   endpoints.NewBuilder(baseURL),
		Client:      client.New(logger, 0),
		Credentials: credential.NewResolver(token),
		Logger:      logger,
	}
}

func lookup(t *testing.T, name string) Definition {
	t.Helper()
	for _, d := range Catalog() {
		if d.Name == name {
			return d
		}
	}
	t.Fatalf("tool %s not in catalog", name)
	return Definition{}
}

func callTool(t *testing.T, deps *Deps, name string, args map[string]any) (*mcp.CallToolResult, error) {
	t.Helper()
	return lookup(t, name).Handler(deps)(context.Background(), newRequest(name, args))
}

func newRequest(name string, args map[string]any) mcp.CallToolRequest {
	request := mcp.CallToolRequest{}
	request.Params.Name = name
	request.Params.Arguments = args
	return request
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil {
		t.Fatal("expected a result, got nil")
	}
	if len(result.Content) != 1 {
		t.Fatalf("expected one content block, got %d", len(result.Content))
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected TextContent, got %T", result.Content[0])
	}
	return text.Text
}

func decodeText(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal([]byte(resultText(t, result)), &out); err != nil {
		t.Fatalf("result is not JSON: %v", err)
	}
	return out
}
