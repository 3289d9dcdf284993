package mcp

import (
	"net/http"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/testdino/testdino-mcp/internal/common"
)

// Handler is the HTTP handler for the MCP endpoint.
// It wraps mcp-go's StreamableHTTPServer and delegates to it.
type Handler struct {
	streamable *mcpserver.StreamableHTTPServer
	logger     *common.Logger
}

// NewHandler creates a stateless streamable HTTP handler for the router's server.
func NewHandler(router *Router, name, version string, logger *common.Logger) *Handler {
	mcpSrv := router.NewServer(name, version)

	streamable := mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithStateLess(true),
	)

	logger.Info().
		Int("tools", len(router.ListTools())).
		Int("resources", len(router.ListResources())).
		Msg("MCP handler initialized")

	return &Handler{
		streamable: streamable,
		logger:     logger,
	}
}

// ServeHTTP delegates to the mcp-go StreamableHTTPServer.
// Per-call credentials come from configuration or the token argument,
// so no request authentication happens here.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.streamable.ServeHTTP(w, r)
}
