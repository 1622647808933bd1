package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"github.com/corray333/backend-labs/admin/internal/dal/filestore"
	"github.com/corray333/backend-labs/admin/internal/dal/mongodb"
	"github.com/corray333/backend-labs/admin/internal/dal/rabbitmq"
	auditrepo "github.com/corray333/backend-labs/admin/internal/dal/repositories/audit"
	customerrepo "github.com/corray333/backend-labs/admin/internal/dal/repositories/customer/mongo"
	orderrepo "github.com/corray333/backend-labs/admin/internal/dal/repositories/order/mongo"
	outboxrepo "github.com/corray333/backend-labs/admin/internal/dal/repositories/outbox/mongo"
	uploadrepo "github.com/corray333/backend-labs/admin/internal/dal/repositories/upload/mongo"
	"github.com/corray333/backend-labs/admin/internal/dal/uow"
	"github.com/corray333/backend-labs/admin/internal/metrics"
	"github.com/corray333/backend-labs/admin/internal/otel"
	"github.com/corray333/backend-labs/admin/internal/service/services/authsvc"
	"github.com/corray333/backend-labs/admin/internal/service/services/customersvc"
	"github.com/corray333/backend-labs/admin/internal/service/services/ordersvc"
	"github.com/corray333/backend-labs/admin/internal/service/services/uploadsvc"
	httptransport "github.com/corray333/backend-labs/admin/internal/transport/http"
	outboxworker "github.com/corray333/backend-labs/admin/internal/worker/outbox"
)

// App represents the application.
type App struct {
	transport      *httptransport.HTTPTransport
	outboxWorker   *outboxworker.Worker
	mongoClient    *mongodb.Client
	rabbitMqClient *rabbitmq.Client
	otelController *otel.OtelController
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	otelController := otel.MustInitOtel()
	mongoClient := mongodb.MustNewClient()
	rabbitMqClient := rabbitmq.MustNewClient()

	m := metrics.NewRegistry()

	orderRepository := orderrepo.NewMongoOrderRepository(mongoClient, orderrepo.DefaultListConfig())

	customerListCfg := customerrepo.DefaultListConfig()
	if maxLen := viper.GetInt("customers.search_max_length"); maxLen > 0 {
		customerListCfg.SearchMaxLen = maxLen
	}
	customerRepository := customerrepo.NewMongoCustomerRepository(mongoClient, customerListCfg)

	outboxRepository := outboxrepo.NewOutboxRepository(mongoClient)
	uploadRepository := uploadrepo.NewMongoUploadRepository(mongoClient)
	auditRepository := auditrepo.NewAuditRabbitMQRepository(rabbitMqClient, outboxRepository, m)

	transactor := uow.NewTransactor(mongoClient)

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithOrderRepository(orderRepository),
		ordersvc.WithCustomerRepository(customerRepository),
		ordersvc.WithAuditRepository(auditRepository),
		ordersvc.WithTransactor(transactor),
	)

	customerSvc := customersvc.MustNewCustomerService(
		customersvc.WithCustomerRepository(customerRepository),
		customersvc.WithAuditRepository(auditRepository),
		customersvc.WithDefaultRegion(defaultRegion()),
	)

	uploadSvc := uploadsvc.MustNewUploadService(
		uploadsvc.WithFileStore(newFileStore()),
		uploadsvc.WithUploadRepository(uploadRepository),
		uploadsvc.WithMaxDimensions(maxImageDimensions()),
		uploadsvc.WithJPEGQuality(jpegQuality()),
	)

	authSvc := authsvc.MustNewAuthService(
		authsvc.WithAdminCredentials(os.Getenv("ADMIN_EMAIL"), os.Getenv("ADMIN_PASSWORD_HASH")),
		authsvc.WithSecret(os.Getenv("ADMIN_JWT_SECRET")),
		authsvc.WithTokenTTL(tokenTTL()),
	)

	transport := httptransport.NewHTTPTransport(m, orderSvc, customerSvc, uploadSvc, authSvc, mongoClient)
	transport.RegisterRoutes()

	outboxWorker := outboxworker.NewWorker(outboxRepository, rabbitMqClient, m)

	return &App{
		transport:      transport,
		outboxWorker:   outboxWorker,
		mongoClient:    mongoClient,
		rabbitMqClient: rabbitMqClient,
		otelController: otelController,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	// Create a channel to receive OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	go func() {
		slog.Info("Starting outbox worker")
		a.outboxWorker.Start(ctx)
	}()

	<-stop
	slog.Info("Shutdown signal received")
	cancel()

	a.gracefulShutdown()
}

// gracefulShutdown performs graceful shutdown of all application components.
// It shuts down components sequentially: outbox worker, HTTP server,
// RabbitMQ, MongoDB, and OpenTelemetry.
func (a *App) gracefulShutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a.outboxWorker.Stop()
	slog.Info("Outbox worker stopped gracefully")

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	if err := a.rabbitMqClient.Close(); err != nil {
		slog.Error("RabbitMQ connection close error", "error", err)
	} else {
		slog.Info("RabbitMQ connection closed gracefully")
	}

	if err := a.mongoClient.Close(); err != nil {
		slog.Error("Database connection close error", "error", err)
	} else {
		slog.Info("Database connection closed gracefully")
	}

	if err := a.otelController.Shutdown(); err != nil {
		slog.Error("Otel trace provider connection close error", "error", err)
	} else {
		slog.Info("Otel trace provider connection closed gracefully")
	}

	select {
	case <-ctx.Done():
		slog.Warn("Shutdown timeout exceeded")
	default:
		slog.Info("Application shutdown complete")
	}
}

func newFileStore() *filestore.LocalStore {
	tempDir := viper.GetString("uploads.temp_dir")
	if tempDir == "" {
		tempDir = "/var/lib/admin-svc/uploads/tmp"
	}
	permDir := viper.GetString("uploads.dir")
	if permDir == "" {
		permDir = "/var/lib/admin-svc/uploads"
	}

	return filestore.MustNewLocalStore(tempDir, permDir)
}

func defaultRegion() string {
	region := viper.GetString("customers.default_region")
	if region == "" {
		region = "RU"
	}

	return region
}

func maxImageDimensions() (int, int) {
	width := viper.GetInt("uploads.max_width")
	if width == 0 {
		width = 1920
	}
	height := viper.GetInt("uploads.max_height")
	if height == 0 {
		height = 1080
	}

	return width, height
}

func jpegQuality() int {
	quality := viper.GetInt("uploads.jpeg_quality")
	if quality == 0 {
		quality = 85
	}

	return quality
}

func tokenTTL() time.Duration {
	minutes := viper.GetInt("auth.token_ttl_minutes")
	if minutes == 0 {
		minutes = 720
	}

	return time.Duration(minutes) * time.Minute
}
