package commands

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"decor_admin/internal/delivery"
	grpcHandler "decor_admin/internal/delivery/grpc"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the gRPC health endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(parent context.Context) error {
	if err := cfg.ValidateServe(); err != nil {
		return err
	}
	logger.Info("Starting decor admin service...")

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := openDatabase(ctx)
	if err != nil {
		return err
	}
	defer closeDatabase()

	svc := buildServices(database)
	logger.Info("Use cases initialized.")

	if logger.IsLevelEnabled(logrus.DebugLevel) {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := delivery.NewRouter(delivery.Handlers{
		Category: delivery.NewCategoryHandler(svc.categories, logger),
		Product:  delivery.NewProductHandler(svc.products, logger),
		Catalog:  delivery.NewCatalogHandler(svc.categories, svc.products, logger),
		Upload:   delivery.NewUploadHandler(svc.images, logger),
		Auth:     delivery.NewAuthHandler(svc.auth, cfg.CookieSecure, logger),
		Settings: delivery.NewSettingsHandler(svc.settings, logger),
		Order:    delivery.NewOrderHandler(svc.orders, logger),
		Stats:    delivery.NewStatsHandler(svc.stats, logger),
	}, svc.auth, database, logger)

	httpServer := &http.Server{
		Addr:              cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lis, err := net.Listen("tcp", cfg.GrpcPort)
	if err != nil {
		return err
	}
	grpcServer := grpc.NewServer()
	health := grpcHandler.NewHealthHandler(database, cfg.HealthCheckInterval, logger)
	health.Register(grpcServer)
	logger.Info("gRPC health and reflection services registered")

	errCh := make(chan error, 2)
	go health.Watch(ctx)
	go func() {
		logger.Infof("gRPC server listening on %s", cfg.GrpcPort)
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errCh <- err
		}
	}()
	go func() {
		logger.Infof("HTTP server listening on %s", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Warn("Shutdown signal received...")
	case err := <-errCh:
		logger.Errorf("Server failed: %v", err)
		stop()
		shutdown(httpServer, grpcServer)
		return err
	}

	shutdown(httpServer, grpcServer)
	logger.Info("Decor admin service shut down gracefully.")
	return nil
}

func shutdown(httpServer *http.Server, grpcServer *grpc.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Info("Attempting graceful shutdown of HTTP server...")
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Errorf("HTTP server shutdown error: %v", err)
	}

	logger.Info("Attempting graceful shutdown of gRPC server...")
	stopped := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-ctx.Done():
		grpcServer.Stop()
	}
	logger.Info("Servers stopped.")
}
