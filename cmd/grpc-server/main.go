package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"galvani/internal/catalog"
	"galvani/internal/cell"
	"galvani/internal/grpcserver"
	"galvani/internal/logging"
	"galvani/internal/redox"
	"galvani/pkg/utils"
)

func main() {
	cfg, err := utils.LoadServerConfig()
	if err != nil {
		logging.Must("info", "development").Fatal("load config", zap.Error(err))
	}
	logger := logging.Must(cfg.LogLevel, cfg.Environment)
	defer func() { _ = logger.Sync() }()

	cat, err := catalog.ByName(cfg.Catalog)
	if err != nil {
		logger.Fatal("select catalog", zap.Error(err))
	}

	listener, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		logger.Fatal("grpc listen failed", zap.String("addr", cfg.GRPCAddr), zap.Error(err))
	}

	cells := cell.NewService(redox.NewEngine(cat), nil, nil, logger)

	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(grpcserver.LoggingInterceptor(logger)))
	grpcserver.RegisterCellServiceServer(grpcServer, grpcserver.NewServer(cells))

	hs := health.NewServer()
	hs.SetServingStatus(grpcserver.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, hs)
	reflection.Register(grpcServer)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		logger.Info("shutting down grpc server")
		hs.Shutdown()
		grpcServer.GracefulStop()
	}()

	logger.Info("grpc server listening", zap.String("addr", cfg.GRPCAddr), zap.String("catalog", cat.Name()))
	if err := grpcServer.Serve(listener); err != nil {
		logger.Fatal("grpc server stopped", zap.Error(err))
	}
}
