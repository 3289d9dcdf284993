package handlers

import (
	"net/http"

	"github.com/testdino/testdino-mcp/internal/common"
)

// HealthHandler handles liveness requests for the HTTP transport.
// It does not call the TestDino API; the health tool does that.
type HealthHandler struct {
	logger *common.Logger
	tools  int
}

// NewHealthHandler creates a new health handler reporting the number of registered tools.
func NewHealthHandler(logger *common.Logger, tools int) *HealthHandler {
	return &HealthHandler{logger: logger, tools: tools}
}

// ServeHTTP handles GET /api/health.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"tools":  h.tools,
	})
}
