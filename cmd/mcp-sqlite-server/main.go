// mcp-sqlite-server exposes SQL tools over the MCP JSON-RPC protocol,
// backed by a local SQLite business database. The database is seeded on
// first start.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/strudel0209/ai-foundry-agents-practical/pkg/config"
	"github.com/strudel0209/ai-foundry-agents-practical/pkg/console"
	"github.com/strudel0209/ai-foundry-agents-practical/pkg/logging"
	"github.com/strudel0209/ai-foundry-agents-practical/pkg/mcpserver"
	"github.com/strudel0209/ai-foundry-agents-practical/pkg/tracing"
)

const (
	serverName    = "sqlite-business-server"
	serverVersion = "1.0.0"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Get()

	port := flag.Int("port", cfg.MCPServerPort, "listen port")
	dbPath := flag.String("db", cfg.MCPDatabasePath, "SQLite database path")
	flag.Parse()

	if err := run(*port, *dbPath); err != nil {
		console.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(port int, dbPath string) error {
	logger := logging.New()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, serverName)
	if err != nil {
		return fmt.Errorf("tracing init: %w", err)
	}
	defer shutdownTracing(context.Background())

	counts, err := mcpserver.Seed(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("seed database: %w", err)
	}
	for table, n := range counts {
		if n > 0 {
			logger.Info(ctx, "seeded table", map[string]interface{}{"table": table, "rows": n})
		}
	}

	store, err := mcpserver.OpenStore(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	server := mcpserver.NewServer(serverName, serverVersion,
		mcpserver.SQLToolset(store),
		mcpserver.WithResources(mcpserver.NewSQLResources(store)),
		mcpserver.WithServerLogger(logger),
	)

	addr := fmt.Sprintf(":%d", port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "server listening", map[string]interface{}{
			"addr": addr,
			"db":   dbPath,
		})
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		logger.Info(context.Background(), "shutting down", nil)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}
	return nil
}
