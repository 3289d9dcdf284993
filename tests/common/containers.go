package common

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const wiremockPort = "8080/tcp"

// MockAPI is a WireMock instance standing in for the TestDino REST API.
type MockAPI struct {
	container testcontainers.Container
	url       string
}

// URL returns the base URL of the mock API.
func (m *MockAPI) URL() string {
	return m.url
}

// Stub describes one WireMock mapping.
type Stub struct {
	Method      string
	URLPath     string
	QueryParams map[string]string
	Headers     map[string]string
	Status      int
	Body        string
}

// Stub registers a mapping with the running WireMock.
func (m *MockAPI) Stub(t *testing.T, s Stub) {
	t.Helper()

	request := map[string]any{
		"method":  s.Method,
		"urlPath": s.URLPath,
	}
	if len(s.QueryParams) > 0 {
		query := make(map[string]any, len(s.QueryParams))
		for k, v := range s.QueryParams {
			query[k] = map[string]string{"equalTo": v}
		}
		request["queryParameters"] = query
	}
	if len(s.Headers) > 0 {
		headers := make(map[string]any, len(s.Headers))
		for k, v := range s.Headers {
			headers[k] = map[string]string{"equalTo": v}
		}
		request["headers"] = headers
	}
	status := s.Status
	if status == 0 {
		status = http.StatusOK
	}

	mapping := map[string]any{
		"request": request,
		"response": map[string]any{
			"status":  status,
			"body":    s.Body,
			"headers": map[string]string{"Content-Type": "application/json"},
		},
	}
	m.admin(t, http.MethodPost, "/__admin/mappings", mapping, http.StatusCreated)
}

// Reset removes all mappings and the request journal.
func (m *MockAPI) Reset(t *testing.T) {
	t.Helper()
	m.admin(t, http.MethodPost, "/__admin/reset", nil, http.StatusOK)
}

// RequestCount returns how many requests WireMock has received.
func (m *MockAPI) RequestCount(t *testing.T) int {
	t.Helper()
	var out struct {
		Requests []json.RawMessage `json:"requests"`
	}
	data := m.admin(t, http.MethodGet, "/__admin/requests", nil, http.StatusOK)
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decode request journal: %v", err)
	}
	return len(out.Requests)
}

func (m *MockAPI) admin(t *testing.T, method, path string, body any, want int) []byte {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal admin request: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(t.Context(), method, m.url+path, reader)
	if err != nil {
		t.Fatalf("build admin request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("wiremock admin %s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != want {
		t.Fatalf("wiremock admin %s %s: status %d: %s", method, path, resp.StatusCode, data)
	}
	return data
}

// CollectLogs saves the container output to dir/wiremock.log.
func (m *MockAPI) CollectLogs(dir string) {
	if m == nil || m.container == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	reader, err := m.container.Logs(ctx)
	if err != nil {
		return
	}
	defer reader.Close()

	logs, err := io.ReadAll(reader)
	if err != nil {
		return
	}
	os.MkdirAll(dir, 0755)
	os.WriteFile(filepath.Join(dir, "wiremock.log"), logs, 0644)
}

// Cleanup terminates the container.
// Uses a fresh context for teardown in case the test context expired.
func (m *MockAPI) Cleanup() {
	if m == nil || m.container == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	m.container.Terminate(ctx)
}

// StartMockAPI starts WireMock for the test, or reuses an external one
// when TESTDINO_TEST_MOCK_URL is set.
func StartMockAPI(t *testing.T) *MockAPI {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	if url := GetMockURL(); url != "" {
		m := &MockAPI{url: url}
		m.Reset(t)
		return m
	}

	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	ctr, err := testcontainers.Run(ctx, LoadTestConfig().WireMock.Image,
		testcontainers.WithExposedPorts(wiremockPort),
		testcontainers.WithWaitStrategy(
			wait.ForHTTP("/__admin/health").WithPort(wiremockPort).WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("start wiremock: %v", err)
	}

	m := &MockAPI{container: ctr}
	t.Cleanup(func() {
		if t.Failed() {
			m.CollectLogs(filepath.Join(GetResultsDir(), t.Name()))
		}
		m.Cleanup()
	})

	host, err := ctr.Host(ctx)
	if err != nil {
		t.Fatalf("get wiremock host: %v", err)
	}
	mapped, err := ctr.MappedPort(ctx, wiremockPort)
	if err != nil {
		t.Fatalf("get wiremock mapped port: %v", err)
	}
	m.url = fmt.Sprintf("http://%s:%s", host, mapped.Port())
	return m
}
