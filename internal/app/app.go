package app

import (
	"fmt"
	"log"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/testdino/testdino-mcp/internal/client"
	"github.com/testdino/testdino-mcp/internal/common"
	"github.com/testdino/testdino-mcp/internal/config"
	"github.com/testdino/testdino-mcp/internal/credential"
	"github.com/testdino/testdino-mcp/internal/endpoints"
	"github.com/testdino/testdino-mcp/internal/handlers"
	"github.com/testdino/testdino-mcp/internal/mcp"
	"github.com/testdino/testdino-mcp/internal/tools"
)

// App holds all application components and dependencies.
type App struct {
	Config *config.Config
	Logger *common.Logger
	Router *mcp.Router

	// HTTP handlers
	HealthHandler  *handlers.HealthHandler
	VersionHandler *handlers.VersionHandler
	MCPHandler     *mcp.Handler
}

// New initializes the application with all dependencies.
func New(cfg *config.Config, logger *common.Logger) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
	}

	if cfg.API.Key == "" {
		logger.Warn().
			Str("env", credential.EnvVar).
			Msg("no API key configured, tools will require a token argument")
	}

	deps := &tools.Deps{
		Endpoints:   endpoints.NewBuilder(cfg.API.BaseURL()),
		Client:      client.New(logger, cfg.API.Timeout()),
		Credentials: credential.NewResolver(cfg.API.Key),
		Logger:      logger,
	}

	router, err := mcp.NewRouter(deps)
	if err != nil {
		return nil, fmt.Errorf("failed to build tool catalog: %w", err)
	}
	a.Router = router

	if cfg.Server.Transport == config.TransportHTTP {
		a.initHandlers()
	}

	logger.Info().
		Int("tools", len(router.ListTools())).
		Str("api_url", cfg.API.BaseURL()).
		Msg("application initialization complete")

	return a, nil
}

// initHandlers initializes all HTTP handlers.
func (a *App) initHandlers() {
	name := a.Config.Server.Name

	a.HealthHandler = handlers.NewHealthHandler(a.Logger, len(a.Router.ListTools()))
	a.VersionHandler = handlers.NewVersionHandler(a.Logger, name)
	a.MCPHandler = mcp.NewHandler(a.Router, name, config.GetVersion(), a.Logger)

	a.Logger.Debug().Msg("HTTP handlers initialized")
}

// StdioServer returns a stdio transport for the router's server.
// Protocol errors are written to stderr; stdout carries JSON-RPC only.
func (a *App) StdioServer() *mcpserver.StdioServer {
	stdio := mcpserver.NewStdioServer(a.Router.NewServer(a.Config.Server.Name, config.GetVersion()))
	stdio.SetErrorLogger(log.New(os.Stderr, "", log.LstdFlags))
	return stdio
}

// Close closes all application resources.
func (a *App) Close() error {
	return nil
}
