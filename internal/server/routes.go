package server

import (
	"net/http"

	"github.com/testdino/testdino-mcp/internal/handlers"
)

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// MCP endpoint (JSON-RPC over streamable HTTP)
	if s.app.MCPHandler != nil {
		mux.Handle("/mcp", s.app.MCPHandler)
	}

	// API routes
	if s.app.HealthHandler != nil {
		mux.HandleFunc("/api/health", s.app.HealthHandler.ServeHTTP)
	}
	if s.app.VersionHandler != nil {
		mux.HandleFunc("/api/version", s.app.VersionHandler.ServeHTTP)
	}

	mux.HandleFunc("/", s.handleNotFound)

	return mux
}

// handleNotFound returns a JSON 404 for unmatched routes.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	handlers.WriteJSON(w, http.StatusNotFound, map[string]string{
		"error":   "Not Found",
		"message": "The requested endpoint does not exist",
	})
}
