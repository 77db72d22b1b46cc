package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"galvani/internal/auth"
	"galvani/internal/catalog"
	"galvani/internal/cell"
	"galvani/internal/live"
	"galvani/internal/logging"
	"galvani/internal/metrics"
	"galvani/internal/notebook"
	"galvani/internal/redox"
	"galvani/pkg/database"
	"galvani/pkg/utils"
)

type app struct {
	db      *sql.DB
	dbPath  string
	hub     *live.Hub
	cells   *cell.Service
	metrics *metrics.Collector
	tokens  auth.TokenService
	logger  *zap.Logger
}

func main() {
	cfg, err := utils.LoadServerConfig()
	if err != nil {
		logging.Must("info", "development").Fatal("load config", zap.Error(err))
	}
	logger := logging.Must(cfg.LogLevel, cfg.Environment)
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("api server", zap.Error(err))
	}
}

func run(cfg utils.ServerConfig, logger *zap.Logger) error {
	cat, err := catalog.ByName(cfg.Catalog)
	if err != nil {
		return err
	}

	dbCfg := database.DefaultConfig()
	db, err := database.OpenAndMigrate(dbCfg)
	if err != nil {
		return err
	}
	defer db.Close()

	a := newApp(db, dbCfg.Path, cat, auth.NewTokenService(utils.LoadAuthConfig()), logger)
	router := a.router()
	tcpSrv := live.NewServer(cfg.LiveAddr, a.hub)

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := tcpSrv.Run(ctx); err != nil {
			errCh <- err
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("http api listening",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("catalog", cat.Name()),
			zap.String("db", dbCfg.Path),
		)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}

	wg.Wait()
	logger.Info("servers stopped")
	return nil
}

func newApp(db *sql.DB, dbPath string, cat *catalog.Catalog, tokens auth.TokenService, logger *zap.Logger) *app {
	m := metrics.NewCollector("galvani")
	hub := live.NewHub(logger)
	hub.OnChange(func(st live.Stats) {
		m.LiveClients.WithLabelValues("tcp").Set(float64(st.TCPClients))
		m.LiveClients.WithLabelValues("websocket").Set(float64(st.WSClients))
	})

	return &app{
		db:      db,
		dbPath:  dbPath,
		hub:     hub,
		cells:   cell.NewService(redox.NewEngine(cat), hub, m, logger),
		metrics: m,
		tokens:  tokens,
		logger:  logger,
	}
}

func (a *app) router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), logging.Gin(a.logger), a.metrics.Gin())
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "catalog": a.cells.CatalogName()})
	})

	router.GET("/ready", func(c *gin.Context) {
		stats := a.hub.Stats()
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := a.db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":      "not_ready",
				"db_error":    err.Error(),
				"tcp_clients": stats.TCPClients,
				"ws_clients":  stats.WSClients,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":      "ready",
			"db":          "ok",
			"species":     a.cells.Engine.Catalog.Len(),
			"tcp_clients": stats.TCPClients,
			"ws_clients":  stats.WSClients,
		})
	})

	router.GET("/metrics", gin.WrapH(a.metrics.Handler()))
	router.GET("/ws", live.WSHandler(a.hub))

	cell.NewHandler(a.cells).RegisterRoutes(router.Group(""))

	authRepo := auth.NewRepo(a.db)
	authHandler := auth.NewHandler(authRepo, a.tokens, a.logger)
	authHandler.RegisterRoutes(router.Group("/auth"))

	protected := router.Group("/users")
	protected.Use(authHandler.Middleware())
	notebook.NewHandler(notebook.NewRepo(a.db), a.cells, a.hub, a.logger).RegisterRoutes(protected)

	return router
}
