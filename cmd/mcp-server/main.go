package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"galvani/internal/catalog"
	"galvani/internal/cell"
	"galvani/internal/logging"
	"galvani/internal/mcptools"
	"galvani/internal/redox"
	"galvani/pkg/utils"
)

var version = "dev"

func main() {
	cfg, err := utils.LoadServerConfig()
	if err != nil {
		logging.Must("info", "production").Fatal("load config", zap.Error(err))
	}

	transport := flag.String("transport", "stdio", "Transport mode: stdio or http")
	addr := flag.String("addr", cfg.MCPAddr, "HTTP listen address (only used with -transport http)")
	catalogName := flag.String("catalog", cfg.Catalog, "Species table: daniell or extended")
	flag.Parse()

	// stdout carries the protocol in stdio mode; production logs go to stderr
	logger := logging.Must(cfg.LogLevel, "production")
	defer func() { _ = logger.Sync() }()

	cat, err := catalog.ByName(*catalogName)
	if err != nil {
		logger.Fatal("select catalog", zap.Error(err))
	}
	srv := mcptools.NewServer(cell.NewService(redox.NewEngine(cat), nil, nil, logger), version)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	switch *transport {
	case "stdio":
		logger.Info("mcp server starting", zap.String("transport", "stdio"), zap.String("catalog", cat.Name()))
		if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
			logger.Fatal("mcp server", zap.Error(err))
		}
	case "http":
		handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
			return srv
		}, nil)
		httpSrv := &http.Server{Addr: *addr, Handler: handler, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			<-ctx.Done()
			shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
			defer done()
			_ = httpSrv.Shutdown(shutdownCtx)
		}()

		logger.Info("mcp server listening", zap.String("addr", *addr), zap.String("catalog", cat.Name()))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("mcp http server", zap.Error(err))
		}
	default:
		logger.Fatal("unknown transport (use stdio or http)", zap.String("transport", *transport))
	}
}
