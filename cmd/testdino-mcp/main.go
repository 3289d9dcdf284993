package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/testdino/testdino-mcp/internal/app"
	"github.com/testdino/testdino-mcp/internal/common"
	"github.com/testdino/testdino-mcp/internal/config"
	"github.com/testdino/testdino-mcp/internal/server"
)

const configFileName = "testdino-mcp.toml"

type options struct {
	configFiles []string
	http        bool
	port        int
	logLevel    string
	verbose     bool
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "testdino-mcp",
		Short: "MCP server for the TestDino test reporting API",
		Long: `testdino-mcp exposes TestDino test runs, test cases and manual test case
management as Model Context Protocol tools.

By default it speaks JSON-RPC over stdin/stdout. Use --http to serve the
streamable HTTP transport instead. The API key is read from TESTDINO_API_KEY.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.configFiles, "config", "c", nil, "Configuration file path (can be specified multiple times)")
	cmd.Flags().BoolVar(&opts.http, "http", false, "Serve the streamable HTTP transport instead of stdio")
	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "HTTP port (overrides config)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging to stderr")

	cmd.Version = config.GetFullVersion()
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "testdino-mcp version %s\n", config.GetFullVersion())
		},
	}
}

// loadConfig resolves config files, then applies flag overrides.
func loadConfig(opts options) (*config.Config, error) {
	files := opts.configFiles
	if len(files) == 0 {
		for _, path := range configSearchPaths() {
			if _, err := os.Stat(path); err == nil {
				files = append(files, path)
				break
			}
		}
	}

	cfg, err := config.LoadFromFiles(files...)
	if err != nil {
		return nil, err
	}

	transport := ""
	if opts.http {
		transport = config.TransportHTTP
	}
	level := opts.logLevel
	if opts.verbose {
		level = "debug"
	}
	config.ApplyFlagOverrides(cfg, transport, opts.port, level)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, opts options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger := common.NewLoggerFromConfig(cfg.Logging)
	logger.Info().
		Str("version", config.GetVersion()).
		Str("transport", cfg.Server.Transport).
		Str("api_url", cfg.API.BaseURL()).
		Bool("api_key_configured", cfg.API.Key != "").
		Msg("configuration loaded")

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error().Str("error", err.Error()).Msg("failed to initialize application")
		return err
	}
	defer application.Close()

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	switch cfg.Server.Transport {
	case config.TransportHTTP:
		srv := server.New(application)
		g.Go(srv.Start)
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	default:
		stdio := application.StdioServer()
		g.Go(func() error {
			logger.Info().Msg("serving MCP over stdio")
			if err := stdio.Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("stdio server error: %w", err)
			}
			return nil
		})
	}

	err = g.Wait()
	logger.Info().Msg("server stopped")
	return err
}

// configSearchPaths returns TOML files to auto-discover (first match wins).
// Binary-relative paths come first, then the working directory.
func configSearchPaths() []string {
	candidates := []string{
		configFileName,
		filepath.Join("config", configFileName),
	}

	exe, err := os.Executable()
	if err != nil {
		return candidates
	}
	binDir := filepath.Dir(exe)

	paths := []string{
		filepath.Join(binDir, configFileName),
		filepath.Join(binDir, "config", configFileName),
	}
	paths = append(paths, candidates...)

	seen := make(map[string]bool, len(paths))
	deduped := make([]string, 0, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = p
		}
		if seen[abs] {
			continue
		}
		seen[abs] = true
		deduped = append(deduped, p)
	}
	return deduped
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
