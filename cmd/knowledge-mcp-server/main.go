package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/qdrant/go-client/qdrant"
	"github.com/spf13/cobra"

	"github.com/radutopala/knowledge-mcp/internal/config"
	"github.com/radutopala/knowledge-mcp/internal/embeddings"
	"github.com/radutopala/knowledge-mcp/internal/neo4jtools"
	"github.com/radutopala/knowledge-mcp/internal/server"
)

const version = "0.1.0"

var (
	cfgFile string
	addr    string
	stdio   bool
)

var rootCmd = &cobra.Command{
	Use:   "knowledge-mcp-server",
	Short: "Unified Neo4j and Qdrant tool server with shared embeddings",
	Long: `knowledge-mcp-server exposes graph operations, vector-similarity
operations, and text-embedding generation through a single tool-calling
protocol endpoint. One embedding model is shared across both backends so
graph queries and vector searches compute against identical vectors.`,
	Version: version,
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the knowledge server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("knowledge-mcp-server %s\n", version)
		return nil
	},
}

func init() {
	serverCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default knowledge-mcp.json)")
	serverCmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	serverCmd.Flags().BoolVar(&stdio, "stdio", false, "serve MCP over stdio instead of HTTP")

	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(versionCmd)
}

func runServer() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	logger, closeLog := newLogger(cfg.Server.LogFile)
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Graph store: one pooled driver for the process lifetime.
	driver, err := neo4j.NewDriverWithContext(cfg.Neo4j.URI, neo4j.BasicAuth(cfg.Neo4j.Username, cfg.Neo4j.Password, ""))
	if err != nil {
		return fmt.Errorf("failed to create Neo4j driver: %w", err)
	}
	defer driver.Close(ctx)
	if err := driver.VerifyConnectivity(ctx); err != nil {
		logger.Warn("Neo4j connectivity check failed, continuing", "uri", cfg.Neo4j.URI, "error", err)
	} else {
		logger.Info("Connected to Neo4j", "uri", cfg.Neo4j.URI)
	}

	// Vector store: one pooled gRPC client for the process lifetime.
	qdrantClient, err := qdrant.NewClient(&qdrant.Config{
		Host:   cfg.Qdrant.Host,
		Port:   cfg.Qdrant.Port,
		APIKey: cfg.Qdrant.APIKey,
		UseTLS: cfg.Qdrant.UseTLS,
	})
	if err != nil {
		return fmt.Errorf("failed to create Qdrant client: %w", err)
	}
	defer qdrantClient.Close()
	logger.Info("Connected to Qdrant", "host", cfg.Qdrant.Host, "port", cfg.Qdrant.Port)

	// Embedding model: exactly one per process.
	encoder, err := embeddings.NewWordVectorEncoder(cfg.Embeddings.Model, cfg.Embeddings.VectorsPath, logger)
	if err != nil {
		return fmt.Errorf("failed to load embedding model: %w", err)
	}
	gateway := embeddings.NewGateway(encoder, cfg.Embeddings.Normalize, logger)
	logger.Info("Embedding model ready", "model", gateway.ModelName(), "dimension", gateway.Dimension(), "normalized", gateway.Normalized())

	registry, err := server.NewRegistry(server.Backends{
		Graph:   neo4jtools.NewSessionRunner(driver, cfg.Neo4j.Database),
		Vector:  qdrantClient,
		Gateway: gateway,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to build tool registry: %w", err)
	}

	if stdio {
		logger.Info("Serving MCP over stdio", "tools", registry.Len())
		return server.RunStdio(ctx, server.MCPServer(registry, "knowledge-mcp-server", version))
	}

	front := server.New(registry, logger,
		server.WithHeartbeatInterval(time.Duration(cfg.Server.HeartbeatSeconds)*time.Second))

	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: front.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting knowledge server", "addr", cfg.Server.Addr, "tools", registry.Len())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// newLogger writes to the configured log file, falling back to stderr.
func newLogger(logFile string) (*slog.Logger, func()) {
	out := os.Stderr
	closeLog := func() {}

	if logFile != "" {
		if f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
			out = f
			closeLog = func() { f.Close() }
		}
	}

	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})), closeLog
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
